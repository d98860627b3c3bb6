package outline

// Destination is the target a bookmark jumps to when activated.
// A nil Destination means the bookmark performs no action.
//
// The concrete types are [PageView], [Named], [Remote] and [URI].
type Destination interface {
	isDestination()
}

// PageView targets a page of the current document, optionally with a
// view directive describing how the viewer should display it.
type PageView struct {
	// Page is the 1-based page number.
	Page int

	// View is the viewer directive, for example "XYZ 0 100 null" or
	// "FitB". Empty means the viewer keeps its current view.
	View string
}

// Named targets a named destination defined in the current document.
type Named struct {
	Name string
}

// Remote targets a destination in another file.
type Remote struct {
	// File is the path of the target document.
	File string

	// Target is the destination within the target document, either a
	// *PageView or a *Named. A nil Target opens the file at its start.
	Target Destination
}

// URI targets an arbitrary resource, usually a web address.
type URI struct {
	URI string
}

func (*PageView) isDestination() {}
func (*Named) isDestination()    {}
func (*Remote) isDestination()   {}
func (*URI) isDestination()      {}
