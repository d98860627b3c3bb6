package outline

import "fmt"

// Builder reconstructs an outline tree from a flat sequence of entries
// annotated with levels, the shape the line-oriented formats store.
// Entries arrive in document order; each entry's level must be at most
// one deeper than the previous entry's.
type Builder struct {
	root    *Node
	current *Node
}

// NewBuilder returns a builder holding a fresh empty tree.
func NewBuilder() *Builder {
	root := NewRoot()
	return &Builder{root: root, current: root}
}

// Add appends a new entry with the given 1-based level and title, and
// returns it so the caller can fill in the remaining fields. It fails
// when the level is below 1 or deeper than one past the previous entry.
func (b *Builder) Add(level int, title string) (*Node, error) {
	if level < 1 {
		return nil, fmt.Errorf("level %d is below 1", level)
	}
	if cur := b.current.Level(); level > cur+1 {
		return nil, fmt.Errorf("level jumps from %d to %d", cur, level)
	}
	for b.current.Level() >= level {
		b.current = b.current.Parent()
	}
	b.current = b.current.NewChild(title)
	return b.current, nil
}

// Root returns the tree built so far.
func (b *Builder) Root() *Node {
	return b.root
}
