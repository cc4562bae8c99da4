package terminal

import tea "github.com/charmbracelet/bubbletea"

var keySequences = map[tea.KeyType]string{
	tea.KeyUp:       "\x1b[A",
	tea.KeyDown:     "\x1b[B",
	tea.KeyRight:    "\x1b[C",
	tea.KeyLeft:     "\x1b[D",
	tea.KeyHome:     "\x1b[H",
	tea.KeyEnd:      "\x1b[F",
	tea.KeyPgUp:     "\x1b[5~",
	tea.KeyPgDown:   "\x1b[6~",
	tea.KeyDelete:   "\x1b[3~",
	tea.KeyInsert:   "\x1b[2~",
	tea.KeyShiftTab: "\x1b[Z",
	tea.KeyF1:       "\x1bOP",
	tea.KeyF2:       "\x1bOQ",
	tea.KeyF3:       "\x1bOR",
	tea.KeyF4:       "\x1bOS",
	tea.KeyF5:       "\x1b[15~",
	tea.KeyF6:       "\x1b[17~",
	tea.KeyF7:       "\x1b[18~",
	tea.KeyF8:       "\x1b[19~",
	tea.KeyF9:       "\x1b[20~",
	tea.KeyF10:      "\x1b[21~",
	tea.KeyF11:      "\x1b[23~",
	tea.KeyF12:      "\x1b[24~",
}

// EncodeKey translates a Bubble Tea key event into the bytes a shell expects.
// Unknown keys encode to nil.
func EncodeKey(k tea.KeyMsg) []byte {
	var out []byte
	switch {
	case k.Type == tea.KeyRunes:
		out = []byte(string(k.Runes))
		if k.Paste {
			out = append(append([]byte("\x1b[200~"), out...), "\x1b[201~"...)
		}
	case k.Type == tea.KeySpace:
		out = []byte{' '}
	case (k.Type >= 0 && k.Type < 32) || k.Type == 127:
		out = []byte{byte(k.Type)}
	default:
		if seq, ok := keySequences[k.Type]; ok {
			out = []byte(seq)
		}
	}
	if k.Alt && len(out) > 0 {
		out = append([]byte{0x1b}, out...)
	}
	return out
}
