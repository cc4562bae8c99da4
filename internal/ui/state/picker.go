package state

import "strings"

// Picker holds the state of a filterable list: the full item set, the
// filtered view, the cursor and the viewport offset.
type Picker struct {
	ID             string
	Title          string
	Items          []Item
	Full           []Item
	Filter         string
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewPicker constructs a picker over items with the cursor on selected.
func NewPicker(id, title string, items []Item, selected int) *Picker {
	p := &Picker{
		ID:         id,
		Title:      title,
		Cursor:     selected,
		LastCursor: -1,
	}
	p.UpdateItems(items)
	return p
}

// IndexOf returns the filtered index for a given item identifier.
func (p *Picker) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range p.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// UpdateItems replaces the item set and re-applies the filter.
func (p *Picker) UpdateItems(items []Item) {
	prevOffset := p.ViewportOffset
	p.Full = CloneItems(items)
	p.applyFilter()
	if len(p.Items) == 0 {
		p.ViewportOffset = 0
		return
	}
	if prevOffset < 0 || prevOffset > len(p.Items)-1 {
		p.ViewportOffset = 0
		return
	}
	p.ViewportOffset = prevOffset
}

// Selected returns the item under the cursor.
func (p *Picker) Selected() (Item, bool) {
	if p.Cursor < 0 || p.Cursor >= len(p.Items) {
		return Item{}, false
	}
	return p.Items[p.Cursor], true
}

// SetFilter updates the filter query. While a query is active the cursor
// follows the best match; clearing it restores the previous cursor.
func (p *Picker) SetFilter(query string) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(p.Filter)
	restore := -1
	p.Filter = query
	if trimmed != "" {
		if prevTrimmed == "" {
			p.LastCursor = p.Cursor
		}
		p.Cursor = 0
	} else if prevTrimmed != "" {
		restore = p.LastCursor
	}
	p.applyFilter()
	if trimmed != "" && len(p.Items) > 0 {
		if idx := BestMatchIndex(p.Items, trimmed); idx >= 0 {
			p.Cursor = idx
		}
	}
	if trimmed == "" && prevTrimmed != "" {
		if restore >= 0 && restore < len(p.Items) {
			p.Cursor = restore
		} else if len(p.Items) > 0 {
			p.Cursor = len(p.Items) - 1
		}
		p.LastCursor = -1
	}
}

func (p *Picker) applyFilter() {
	p.Items = FilterItems(p.Full, p.Filter)
	if len(p.Items) == 0 {
		p.Cursor = 0
		p.ViewportOffset = 0
		return
	}
	if p.Cursor < 0 {
		p.Cursor = len(p.Items) - 1
		return
	}
	if p.Cursor >= len(p.Items) {
		p.Cursor = len(p.Items) - 1
	}
	if p.ViewportOffset > len(p.Items)-1 {
		p.ViewportOffset = 0
	}
}
