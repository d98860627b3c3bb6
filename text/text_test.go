package text

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tsawler/rubrica/codec"
	"github.com/tsawler/rubrica/outline"
)

const sampleInput = `Page 1 :: 1
Sub :: 2
    SubSub :: 3
`

func TestParse(t *testing.T) {
	root, warnings, err := Parse(strings.NewReader(sampleInput))
	if err != nil {
		t.Fatal(err)
	}
	if warnings != nil {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	top := root.Children()
	if len(top) != 2 {
		t.Fatalf("got %d top-level entries, want 2", len(top))
	}
	if top[0].Title != "Page 1" || top[1].Title != "Sub" {
		t.Errorf("got titles %q, %q", top[0].Title, top[1].Title)
	}
	sub := top[1].Children()
	if len(sub) != 1 || sub[0].Title != "SubSub" {
		t.Fatalf("got %d children under Sub, want SubSub", len(sub))
	}
	if got := sub[0].Level(); got != 2 {
		t.Errorf("SubSub level: got %d, want 2", got)
	}
	if got := sub[0].Dest.(*outline.PageView).Page; got != 3 {
		t.Errorf("SubSub page: got %d, want 3", got)
	}
}

func TestParseViewTail(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want outline.PageView
	}{
		{"xyz", "A :: 5 XYZ 0 100 null\n", outline.PageView{Page: 5, View: "XYZ 0 100 null"}},
		{"fit", "A :: 12 FitB\n", outline.PageView{Page: 12, View: "FitB"}},
		{"bare", "A :: 7\n", outline.PageView{Page: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, _, err := Parse(strings.NewReader(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			got := root.Children()[0].Dest.(*outline.PageView)
			if *got != tt.want {
				t.Errorf("got %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestParseLastSeparatorWins(t *testing.T) {
	root, _, err := Parse(strings.NewReader("A :: B :: 5\n"))
	if err != nil {
		t.Fatal(err)
	}
	node := root.Children()[0]
	if node.Title != "A :: B" {
		t.Errorf("got title %q, want %q", node.Title, "A :: B")
	}
	if got := node.Dest.(*outline.PageView).Page; got != 5 {
		t.Errorf("got page %d, want 5", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantLine int
	}{
		{"no separator", "BadLine without separator\n", 1},
		{"no separator later", "Good :: 1\nBadLine without separator\n", 2},
		{"missing page", "Title :: \n", 1},
		{"page not numeric", "Title :: five\n", 1},
		{"page out of range", "Title :: 99999999999999999999\n", 1},
		{"odd indent", "A :: 1\n   B :: 2\n", 2},
		{"tab indent", "A :: 1\n\tB :: 2\n", 2},
		{"level jump", "A :: 1\n        B :: 2\n", 2},
		{"first entry nested", "    A :: 1\n", 1},
		{"missing title", " :: 5\n", 1},
		{"blank line", "A :: 1\n\nB :: 2\n", 2},
		{"view tail not a view", "A :: 5 sideways\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(strings.NewReader(tt.in))
			var ferr *codec.FormatError
			if !errors.As(err, &ferr) {
				t.Fatalf("got %v, want *codec.FormatError", err)
			}
			if ferr.Line != tt.wantLine {
				t.Errorf("got line %d, want %d", ferr.Line, tt.wantLine)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	root := outline.NewRoot()
	ch := root.NewChild("Chapter 1")
	ch.Dest = &outline.PageView{Page: 5, View: "XYZ 0 100 null"}
	sec := ch.NewChild("Section 1.1")
	sec.Dest = &outline.PageView{Page: 7}

	var sb strings.Builder
	warnings, err := Write(&sb, root, false)
	if err != nil {
		t.Fatal(err)
	}
	want := "Chapter 1 :: 5\n    Section 1.1 :: 7\n"
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "long output") {
		t.Errorf("want a dropped-view warning, got %v", warnings)
	}
}

func TestWriteLong(t *testing.T) {
	root := outline.NewRoot()
	ch := root.NewChild("Chapter 1")
	ch.Dest = &outline.PageView{Page: 5, View: "XYZ 0 100 null"}

	var sb strings.Builder
	warnings, err := Write(&sb, root, true)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := sb.String(), "Chapter 1 :: 5 XYZ 0 100 null\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if warnings != nil {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestWriteLosses(t *testing.T) {
	root := outline.NewRoot()
	uri := root.NewChild("External")
	uri.Dest = &outline.URI{URI: "http://example.com/"}
	uri.Bold = true
	uri.Open = false
	blank := root.NewChild("   ")
	blank.Dest = &outline.PageView{Page: 2}

	var sb strings.Builder
	warnings, err := Write(&sb, root, false)
	if err != nil {
		t.Fatal(err)
	}
	want := "External :: 0\n_ :: 2\n"
	if got := sb.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	for _, substr := range []string{"actions other than GoTo", "formatting", "closed", "whitespace-only"} {
		found := false
		for _, w := range warnings {
			if strings.Contains(w.Message, substr) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing warning about %q in %v", substr, warnings)
		}
	}
}

func TestRoundTripLong(t *testing.T) {
	const in = `Introduction :: 1
Chapter 1 :: 5 XYZ 0 100 null
    Section 1.1 :: 7 FitB
    Section 1.2 :: 9
Appendix :: 20 Fit
`
	root, _, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	if _, err := Write(&sb, root, true); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, sb.String()); diff != "" {
		t.Errorf("round trip not byte-identical (-want +got):\n%s", diff)
	}
}

func TestOffsetConversion(t *testing.T) {
	root, _, err := Parse(strings.NewReader(sampleInput))
	if err != nil {
		t.Fatal(err)
	}
	if err := root.ShiftPages(10); err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	if _, err := Write(&sb, root, false); err != nil {
		t.Fatal(err)
	}
	want := `Page 1 :: 11
Sub :: 12
    SubSub :: 13
`
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("shifted output mismatch (-want +got):\n%s", diff)
	}
}
