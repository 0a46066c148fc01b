package geometry

// Viewport is the visible window of the scrolled text area. BottomReserve
// is covered by a toolbar and does not count as visible.
type Viewport struct {
	ScrollTop     float64
	Height        float64
	BottomReserve float64
}

func (v Viewport) visibleHeight() float64 {
	return v.Height - v.BottomReserve
}

// Placement says where a popup anchored to the caret line goes.
// When Above is set, Top is the caret line's top and the popup's bottom edge
// should sit there; otherwise Top is the line below the caret.
type Placement struct {
	Above bool
	Top   float64
}

// PlacePopup flips the popup above the caret once the caret is in the lower
// half of the visible viewport.
func PlacePopup(caretTop float64, frame Frame, vp Viewport) Placement {
	if caretTop-vp.ScrollTop > vp.visibleHeight()/2 {
		return Placement{Above: true, Top: caretTop}
	}
	return Placement{Top: caretTop + frame.LineHeight}
}

// ScrollIntoView returns the scroll position that keeps the caret line
// visible with margin around it. It returns vp.ScrollTop when no scrolling
// is needed.
func ScrollIntoView(caretTop float64, frame Frame, vp Viewport, margin float64) float64 {
	if caretTop < vp.ScrollTop {
		return max(0, caretTop-margin)
	}
	bottom := caretTop + frame.LineHeight
	if bottom > vp.ScrollTop+vp.visibleHeight() {
		return max(0, bottom+margin-vp.visibleHeight())
	}
	return vp.ScrollTop
}

// ScrollRows is ScrollIntoView for cell-based hosts: it returns the first
// visible row so that row stays on screen, never scrolling past the content.
func ScrollRows(row, scroll, height, total int) int {
	if total <= height || height <= 0 {
		return 0
	}
	if row < scroll {
		scroll = row
	}
	if row >= scroll+height {
		scroll = row - height + 1
	}
	return min(max(scroll, 0), total-height)
}
