package djvused

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tsawler/rubrica/codec"
	"github.com/tsawler/rubrica/outline"
)

func sample() *outline.Node {
	root := outline.NewRoot()
	intro := root.NewChild("Intro")
	intro.Dest = &outline.PageView{Page: 1}
	ch := root.NewChild("Ch1")
	ch.Dest = &outline.PageView{Page: 5}
	sec := ch.NewChild("Sec")
	sec.Dest = &outline.Named{Name: "sec"}
	rem := ch.NewChild("Rem")
	rem.Dest = &outline.Remote{File: "o.djvu", Target: &outline.PageView{Page: 3}}
	link := root.NewChild("Link")
	link.Dest = &outline.URI{URI: "https://example.com/"}
	root.NewChild("Notes")
	return root
}

const sampleSexpr = `(bookmarks
 ("Intro"
  "#1" )
 ("Ch1"
  "#5"
  ("Sec"
   "#sec" )
  ("Rem"
   "o.djvu#3" ) )
 ("Link"
  "https://example.com/" )
 ("Notes"
  "" ) )
`

func TestWrite(t *testing.T) {
	var sb strings.Builder
	warnings, err := Write(&sb, sample())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if diff := cmp.Diff(sampleSexpr, sb.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	root, warnings, err := Parse(strings.NewReader(sampleSexpr))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if want := sample(); !root.Equal(want) {
		t.Errorf("tree mismatch:\ngot:\n%s\nwant:\n%s", dump(root), dump(want))
	}
}

func TestParseTargets(t *testing.T) {
	tests := []struct {
		url  string
		want outline.Destination
	}{
		{"", nil},
		{"#3", &outline.PageView{Page: 3}},
		{"#top", &outline.Named{Name: "top"}},
		{"doc.djvu#4", &outline.Remote{File: "doc.djvu", Target: &outline.PageView{Page: 4}}},
		{"doc.djvu#top", &outline.Remote{File: "doc.djvu", Target: &outline.Named{Name: "top"}}},
		{"a#b#3", &outline.Remote{File: "a#b", Target: &outline.PageView{Page: 3}}},
		{"http://example.com/", &outline.URI{URI: "http://example.com/"}},
	}
	for _, tc := range tests {
		t.Run(tc.url, func(t *testing.T) {
			input := "(bookmarks\n (\"A\"\n  \"" + tc.url + "\" ) )\n"
			root, _, err := Parse(strings.NewReader(input))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if diff := cmp.Diff(tc.want, root.Children()[0].Dest); diff != "" {
				t.Errorf("Dest mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no opening paren", `bookmarks ("A" "#1" )`},
		{"wrong keyword", `(outline ("A" "#1" ) )`},
		{"missing title", `(bookmarks ( ) )`},
		{"missing target", `(bookmarks ("A" ) )`},
		{"unbalanced", `(bookmarks ("A" "#1"`},
		{"trailing data", `(bookmarks ("A" "#1" ) ) x`},
		{"bare atom in list", `(bookmarks x )`},
		{"page out of range", `(bookmarks ("A" "#99999999999999999999" ) )`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(strings.NewReader(tc.input))
			var serr *codec.SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("Parse error = %v, want *codec.SyntaxError", err)
			}
		})
	}
}

func TestWriteEscapes(t *testing.T) {
	root := outline.NewRoot()
	root.NewChild(`Café "quoted" back\slash`)

	var sb strings.Builder
	if _, err := Write(&sb, root); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `("Caf\303\251 \"quoted\" back\\slash"`
	if !strings.Contains(sb.String(), want) {
		t.Errorf("output does not contain %q:\n%s", want, sb.String())
	}
}

func TestWriteLosses(t *testing.T) {
	root := outline.NewRoot()
	node := root.NewChild("Styled")
	node.Bold = true
	node.Open = false
	node.Dest = &outline.PageView{Page: 2, View: "FitB"}

	var sb strings.Builder
	warnings, err := Write(&sb, root)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(sb.String(), `"#2"`) {
		t.Errorf("view specification not dropped from target:\n%s", sb.String())
	}
	if len(warnings) != 3 {
		t.Errorf("got %d warnings %v, want 3", len(warnings), warnings)
	}
}

func TestRoundTrip(t *testing.T) {
	root := sample()
	root.Children()[0].Title = "Café ☕ \"x\" a\\b"

	var sb strings.Builder
	if _, err := Write(&sb, root); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _, err := Parse(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("Parse: %v\noutput:\n%s", err, sb.String())
	}
	if !got.Equal(root) {
		t.Errorf("round trip changed the tree:\ngot:\n%s\nwant:\n%s", dump(got), dump(root))
	}
}

func dump(root *outline.Node) string {
	var sb strings.Builder
	root.Dump(&sb)
	return sb.String()
}
