package outline

import "fmt"

// InvalidOffsetError reports a page shift that would move a bookmark to
// a negative page number.
type InvalidOffsetError struct {
	// Title is the title of the first offending bookmark.
	Title string

	// Page is the page number the shift would have produced.
	Page int
}

func (e *InvalidOffsetError) Error() string {
	return fmt.Sprintf("shift would move bookmark %q to page %d", e.Title, e.Page)
}

// ShiftPages adds offset to the page number of every page destination
// in the subtree below n, including destinations inside remote links.
// Named and URI destinations are left alone.
//
// The shift is atomic: if any resulting page number would turn
// negative, ShiftPages returns an *InvalidOffsetError and the tree is
// unchanged.
func (n *Node) ShiftPages(offset int) error {
	if offset == 0 {
		return nil
	}
	for entry := range n.All() {
		if err := checkShift(entry.Title, entry.Dest, offset); err != nil {
			return err
		}
	}
	for entry := range n.All() {
		applyShift(entry.Dest, offset)
	}
	return nil
}

func checkShift(title string, d Destination, offset int) error {
	switch d := d.(type) {
	case *PageView:
		if p := d.Page + offset; p < 0 {
			return &InvalidOffsetError{Title: title, Page: p}
		}
	case *Remote:
		return checkShift(title, d.Target, offset)
	}
	return nil
}

func applyShift(d Destination, offset int) {
	switch d := d.(type) {
	case *PageView:
		d.Page += offset
	case *Remote:
		applyShift(d.Target, offset)
	}
}
