package suggest

// Popup is the open suggestion list and its selected row.
type Popup struct {
	Items    []Suggestion
	Selected int
}

// Show replaces the list; an empty list closes the popup.
func (p *Popup) Show(items []Suggestion) {
	p.Items = items
	p.Selected = 0
}

// Active reports whether the popup is open.
func (p *Popup) Active() bool {
	return len(p.Items) > 0
}

// Close empties the popup.
func (p *Popup) Close() {
	p.Items = nil
	p.Selected = 0
}

// SelectNext moves the selection down, wrapping to the top.
func (p *Popup) SelectNext() {
	if len(p.Items) > 0 {
		p.Selected = (p.Selected + 1) % len(p.Items)
	}
}

// SelectPrev moves the selection up, wrapping to the bottom.
func (p *Popup) SelectPrev() {
	if len(p.Items) > 0 {
		p.Selected = (p.Selected - 1 + len(p.Items)) % len(p.Items)
	}
}

// SelectedItem returns the highlighted suggestion, or nil when closed.
func (p *Popup) SelectedItem() *Suggestion {
	if len(p.Items) > 0 && p.Selected >= 0 && p.Selected < len(p.Items) {
		return &p.Items[p.Selected]
	}
	return nil
}
