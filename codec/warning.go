package codec

import "fmt"

// Warning describes information that is lost or ignored during a
// conversion, such as a destination attribute the target format cannot
// represent. Warnings never abort a conversion.
type Warning struct {
	Message string
}

func (w Warning) String() string {
	return w.Message
}

// Warnings collects warnings during a single parse or write pass,
// keeping the first occurrence of each message and dropping duplicates.
type Warnings struct {
	seen bool
	set  map[string]struct{}
	list []Warning
}

// Add records msg unless an identical message was already recorded.
func (ws *Warnings) Add(msg string) {
	if !ws.seen {
		ws.set = make(map[string]struct{})
		ws.seen = true
	}
	if _, dup := ws.set[msg]; dup {
		return
	}
	ws.set[msg] = struct{}{}
	ws.list = append(ws.list, Warning{Message: msg})
}

// Addf formats a message and records it like Add.
func (ws *Warnings) Addf(format string, args ...any) {
	ws.Add(fmt.Sprintf(format, args...))
}

// List returns the recorded warnings in first-seen order. The returned
// slice is nil when nothing was recorded.
func (ws *Warnings) List() []Warning {
	return ws.list
}
