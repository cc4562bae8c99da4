package theme

import "testing"

func TestBuiltinPalettesAreValid(t *testing.T) {
	for _, id := range BuiltinIDs() {
		p, ok := Builtin(id)
		if !ok {
			t.Fatalf("missing builtin %s", id)
		}
		if len(p) != 16 {
			t.Fatalf("%s: expected 16 slots, got %d", id, len(p))
		}
		if err := p.Validate(); err != nil {
			t.Fatalf("%s: %v", id, err)
		}
	}
}

func TestBuiltinReturnsCopy(t *testing.T) {
	p, _ := Builtin(Dark)
	p[0] = "#123456"
	again, _ := Builtin(Dark)
	if again[0] == "#123456" {
		t.Fatalf("builtin palette was mutated through a returned copy")
	}
}

func TestPaletteSlot(t *testing.T) {
	p := Palette{"#000000"}
	if p.Slot(0) != "#000000" || p.Slot(1) != "" || p.Slot(-1) != "" {
		t.Fatalf("unexpected slot lookups")
	}
}

func TestFromPaletteKeepsDefaultsForShortPalette(t *testing.T) {
	s := FromPalette(Palette{"#000000"})
	if s.ActiveTab == nil || s.Tab == nil {
		t.Fatalf("expected styles to be populated")
	}
	if len(SlotStyles(Palette{"#000000", "#ffffff"})) != 2 {
		t.Fatalf("expected one style per slot")
	}
}
