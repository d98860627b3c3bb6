package codec

import "testing"

func TestWarningsDeduplicate(t *testing.T) {
	var ws Warnings
	ws.Add("lost destination")
	ws.Add("lost color")
	ws.Add("lost destination")
	ws.Addf("lost %s", "color")

	got := ws.List()
	want := []string{"lost destination", "lost color"}
	if len(got) != len(want) {
		t.Fatalf("got %d warnings, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Message != want[i] {
			t.Errorf("warning %d: got %q, want %q", i, got[i].Message, want[i])
		}
	}
}

func TestWarningsEmpty(t *testing.T) {
	var ws Warnings
	if got := ws.List(); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestFormatError(t *testing.T) {
	err := &FormatError{Line: 12, Reason: "missing page number"}
	want := "line 12: missing page number"
	if got := err.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSyntaxError(t *testing.T) {
	err := &SyntaxError{Pos: 341, Reason: "unexpected end of list"}
	want := "offset 341: unexpected end of list"
	if got := err.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
