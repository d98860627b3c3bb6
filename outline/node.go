// Package outline holds the document outline model that all bookmark
// formats parse into and serialize from: a tree of titled entries, each
// with an optional destination, display attributes and children.
//
// A tree always hangs below a root node obtained from [NewRoot]. The
// root itself carries no bookmark data and is never serialized; the
// top-level bookmarks of a document are the root's children, at level 1.
package outline

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// Node is a single bookmark entry, or the root of an outline tree.
type Node struct {
	// Title is the text shown in the viewer's outline panel.
	Title string

	// Dest is the target of the bookmark, or nil for an entry that
	// performs no action.
	Dest Destination

	// Open reports whether the entry's children start out expanded in
	// the viewer. Entries created through NewRoot, NewChild or the
	// Builder start open.
	Open bool

	// Bold and Italic select the font style of the title.
	Bold   bool
	Italic bool

	// Color is the title color, or nil for the viewer default.
	Color *Color

	parent   *Node
	children []*Node
}

// NewRoot returns the root of an empty outline tree.
func NewRoot() *Node {
	return &Node{Open: true}
}

// IsRoot reports whether n is the root of its tree.
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// Parent returns the parent of n, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children of n in document order. The
// returned slice is shared with the node and must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Level returns the depth of n: 0 for the root, 1 for top-level
// bookmarks, and so on.
func (n *Node) Level() int {
	level := 0
	for p := n.parent; p != nil; p = p.parent {
		level++
	}
	return level
}

// NewChild appends a new entry with the given title below n and
// returns it. The new entry starts open, with no destination.
func (n *Node) NewChild(title string) *Node {
	child := &Node{Title: title, Open: true, parent: n}
	n.children = append(n.children, child)
	return child
}

// AppendChild appends child below n. The child is detached from its
// previous parent first.
func (n *Node) AppendChild(child *Node) {
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
}

// Detach removes n from its parent. Detaching the root is a no-op.
func (n *Node) Detach() {
	if n.parent == nil {
		return
	}
	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			n.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Copy returns a deep copy of n and its subtree. The copy is detached:
// its parent is nil regardless of n's position.
func (n *Node) Copy() *Node {
	c := &Node{
		Title:  n.Title,
		Dest:   copyDest(n.Dest),
		Open:   n.Open,
		Bold:   n.Bold,
		Italic: n.Italic,
	}
	if n.Color != nil {
		col := *n.Color
		c.Color = &col
	}
	for _, child := range n.children {
		cc := child.Copy()
		cc.parent = c
		c.children = append(c.children, cc)
	}
	return c
}

func copyDest(d Destination) Destination {
	switch d := d.(type) {
	case nil:
		return nil
	case *PageView:
		c := *d
		return &c
	case *Named:
		c := *d
		return &c
	case *URI:
		c := *d
		return &c
	case *Remote:
		return &Remote{File: d.File, Target: copyDest(d.Target)}
	}
	return d
}

// Append adds a deep copy of every top-level entry of other as a child
// of n, merging the two trees.
func (n *Node) Append(other *Node) {
	for _, child := range other.children {
		cc := child.Copy()
		cc.parent = n
		n.children = append(n.children, cc)
	}
}

// All returns the entries of the subtree below n in depth-first
// document order, not including n itself.
//
// Example:
//
//	for entry := range root.All() {
//		fmt.Println(entry.Title)
//	}
func (n *Node) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walk(yield)
	}
}

func (n *Node) walk(yield func(*Node) bool) bool {
	for _, c := range n.children {
		if !yield(c) {
			return false
		}
		if !c.walk(yield) {
			return false
		}
	}
	return true
}

// Len returns the number of entries in the subtree below n, not
// counting n itself.
func (n *Node) Len() int {
	total := 0
	for _, c := range n.children {
		total += 1 + c.Len()
	}
	return total
}

// Equal reports whether two subtrees hold the same data: titles,
// destinations, attributes and children, compared recursively. The
// nodes' positions within their enclosing trees are ignored.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Title != other.Title ||
		n.Open != other.Open ||
		n.Bold != other.Bold ||
		n.Italic != other.Italic {
		return false
	}
	if (n.Color == nil) != (other.Color == nil) {
		return false
	}
	if n.Color != nil && *n.Color != *other.Color {
		return false
	}
	if !destEqual(n.Dest, other.Dest) {
		return false
	}
	if len(n.children) != len(other.children) {
		return false
	}
	for i := range n.children {
		if !n.children[i].Equal(other.children[i]) {
			return false
		}
	}
	return true
}

func destEqual(a, b Destination) bool {
	switch a := a.(type) {
	case nil:
		return b == nil
	case *PageView:
		b, ok := b.(*PageView)
		return ok && *a == *b
	case *Named:
		b, ok := b.(*Named)
		return ok && *a == *b
	case *URI:
		b, ok := b.(*URI)
		return ok && *a == *b
	case *Remote:
		b, ok := b.(*Remote)
		return ok && a.File == b.File && destEqual(a.Target, b.Target)
	}
	return false
}

// Dump writes an indented listing of the subtree below n, one entry
// per line. It is meant for debugging and tests, not for file output.
func (n *Node) Dump(w io.Writer) error {
	for entry := range n.All() {
		indent := strings.Repeat("  ", entry.Level()-1)
		if _, err := fmt.Fprintf(w, "%s%s%s\n", indent, entry.Title, dumpDest(entry.Dest)); err != nil {
			return err
		}
	}
	return nil
}

func dumpDest(d Destination) string {
	switch d := d.(type) {
	case nil:
		return ""
	case *PageView:
		if d.View != "" {
			return fmt.Sprintf(" -> page %d (%s)", d.Page, d.View)
		}
		return fmt.Sprintf(" -> page %d", d.Page)
	case *Named:
		return fmt.Sprintf(" -> name %q", d.Name)
	case *URI:
		return fmt.Sprintf(" -> uri %q", d.URI)
	case *Remote:
		return fmt.Sprintf(" -> file %q%s", d.File, dumpDest(d.Target))
	}
	return ""
}
