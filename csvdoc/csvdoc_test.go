package csvdoc

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tsawler/rubrica/codec"
	"github.com/tsawler/rubrica/outline"
)

func TestParse(t *testing.T) {
	input := "0;O;Intro;1\n" +
		"0;OB;Chapter 1;5 XYZ 0 0\n" +
		"1;;Quiet;7\n" +
		"2;I;Deep;0\n"
	root, warnings, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	want := outline.NewRoot()
	intro := want.NewChild("Intro")
	intro.Dest = &outline.PageView{Page: 1}
	ch := want.NewChild("Chapter 1")
	ch.Bold = true
	ch.Dest = &outline.PageView{Page: 5, View: "XYZ 0 0"}
	quiet := ch.NewChild("Quiet")
	quiet.Open = false
	quiet.Dest = &outline.PageView{Page: 7}
	deep := quiet.NewChild("Deep")
	deep.Open = false
	deep.Italic = true

	if !root.Equal(want) {
		t.Errorf("tree mismatch:\ngot:\n%s\nwant:\n%s", dump(root), dump(want))
	}
}

func TestParseEscapedTitleAndColor(t *testing.T) {
	input := `0;OB;Chapter\3A1;5 XYZ 0 0;Color=1 0 0` + "\n"
	root, _, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	node := root.Children()[0]
	if node.Title != "Chapter:1" {
		t.Errorf("Title = %q, want %q", node.Title, "Chapter:1")
	}
	if !node.Open || !node.Bold || node.Italic {
		t.Errorf("flags = open %t bold %t italic %t, want open bold", node.Open, node.Bold, node.Italic)
	}
	wantDest := &outline.PageView{Page: 5, View: "XYZ 0 0"}
	if diff := cmp.Diff(wantDest, node.Dest); diff != "" {
		t.Errorf("Dest mismatch (-want +got):\n%s", diff)
	}
	wantColor := outline.Color{R: 1}
	if node.Color == nil || *node.Color != wantColor {
		t.Errorf("Color = %v, want %v", node.Color, wantColor)
	}
}

func TestParseRemote(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  outline.Destination
	}{
		{
			name:  "page moreopt",
			input: `0;;A;0;Action=\22GoToR\22 Page=\223 FitB\22 File=\22a.pdf\22`,
			want:  &outline.Remote{File: "a.pdf", Target: &outline.PageView{Page: 3, View: "FitB"}},
		},
		{
			name:  "fixed page fallback",
			input: `0;;A;7;Action=\22GoToR\22 File=\22b.pdf\22`,
			want:  &outline.Remote{File: "b.pdf", Target: &outline.PageView{Page: 7}},
		},
		{
			name:  "no target",
			input: `0;;A;0;Action=\22GoToR\22 File=\22c.pdf\22`,
			want:  &outline.Remote{File: "c.pdf"},
		},
		{
			name:  "unquoted values",
			input: `0;;A;0;Action=GoToR File=a b.pdf Page=3 XYZ 0 0`,
			want:  &outline.Remote{File: "a b.pdf", Target: &outline.PageView{Page: 3, View: "XYZ 0 0"}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root, _, err := Parse(strings.NewReader(tc.input + "\n"))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			got := root.Children()[0].Dest
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Dest mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseURI(t *testing.T) {
	input := `0;;Link;0;Action=\22URI\22 URI=\22https\3A//example.com/\22` + "\n"
	root, _, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := &outline.URI{URI: "https://example.com/"}
	if diff := cmp.Diff(outline.Destination(want), root.Children()[0].Dest); diff != "" {
		t.Errorf("Dest mismatch (-want +got):\n%s", diff)
	}
}

func TestParseUnknownAction(t *testing.T) {
	input := `0;;X;3;Action=\22Launch\22` + "\n"
	root, warnings, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Children()[0].Dest != nil {
		t.Errorf("Dest = %v, want nil", root.Children()[0].Dest)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "Launch") {
		t.Errorf("warnings = %v, want one naming the action", warnings)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
	}{
		{"non-numeric depth", "x;;T;1\n", 1},
		{"missing page", "0;;T;\n", 1},
		{"negative depth", "-1;;T;1\n", 1},
		{"negative page", "0;;T;-2\n", 1},
		{"first entry nested", "1;;T;1\n", 1},
		{"depth jump", "0;;T;1\n2;;U;2\n", 2},
		{"bad title escape", `0;;Bad\GG;1` + "\n", 1},
		{"truncated title escape", `0;;Bad\3;1` + "\n", 1},
		{"unterminated quote", `0;;T;1;Action=\22x` + "\n", 1},
		{"moreopts without value", "0;;T;1;Color\n", 1},
		{"flags out of order", "0;BO;T;1\n", 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(strings.NewReader(tc.input))
			var ferr *codec.FormatError
			if !errors.As(err, &ferr) {
				t.Fatalf("Parse error = %v, want *codec.FormatError", err)
			}
			if ferr.Line != tc.wantLine {
				t.Errorf("error line = %d, want %d (%v)", ferr.Line, tc.wantLine, err)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	root := outline.NewRoot()
	intro := root.NewChild("Introduction")
	intro.Dest = &outline.PageView{Page: 1}
	ch := root.NewChild("Chapter:1")
	ch.Bold = true
	ch.Dest = &outline.PageView{Page: 5, View: "XYZ 0 0"}
	ch.Color = &outline.Color{R: 1}
	sec := ch.NewChild("Section 1.1")
	sec.Dest = &outline.Named{Name: "sec11"}
	app := root.NewChild("Appendix")
	app.Open = false
	app.Italic = true
	app.Dest = &outline.Remote{File: "other.pdf", Target: &outline.PageView{Page: 3}}

	var sb strings.Builder
	warnings, err := Write(&sb, root)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "0;O;Introduction;1\n" +
		`0;OB;Chapter\3A1;5 XYZ 0 0;Color=\221 0 0\22` + "\n" +
		"1;O;Section 1.1;0\n" +
		`0;I;Appendix;0;Action=\22GoToR\22 Page=\223\22 File=\22other.pdf\22` + "\n"
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "named destinations") {
		t.Errorf("warnings = %v, want one about named destinations", warnings)
	}
}

func TestWriteURI(t *testing.T) {
	root := outline.NewRoot()
	link := root.NewChild("Home")
	link.Dest = &outline.URI{URI: "https://example.com/"}

	var sb strings.Builder
	if _, err := Write(&sb, root); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `0;O;Home;0;Action=\22URI\22 URI=\22https\3A//example.com/\22` + "\n"
	if sb.String() != want {
		t.Errorf("output = %q, want %q", sb.String(), want)
	}
}

func TestRoundTrip(t *testing.T) {
	root := outline.NewRoot()
	intro := root.NewChild("Intro; a \"quoted\" start")
	intro.Dest = &outline.PageView{Page: 1}
	ch := root.NewChild("Chapter:1")
	ch.Bold = true
	ch.Italic = true
	ch.Open = false
	ch.Dest = &outline.PageView{Page: 5, View: "XYZ 0 100 null"}
	ch.Color = &outline.Color{R: 0.25, G: 0.5, B: 1}
	sub := ch.NewChild("Remote")
	sub.Dest = &outline.Remote{File: "a;b.pdf", Target: &outline.PageView{Page: 3, View: "FitB"}}
	link := root.NewChild("Link")
	link.Dest = &outline.URI{URI: "https://example.com/?a=1&b=2"}

	var sb strings.Builder
	if _, err := Write(&sb, root); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _, err := Parse(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("Parse: %v\ninput:\n%s", err, sb.String())
	}
	if !got.Equal(root) {
		t.Errorf("round trip changed the tree:\noutput:\n%s\ngot:\n%s\nwant:\n%s", sb.String(), dump(got), dump(root))
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain title",
		"semi;colon",
		`back\slash`,
		"colon:quote\"tick'",
		"control\x01\x1f chars",
		"tab\tand newline\n",
		"unicode é is kept",
	}
	for _, in := range inputs {
		esc := escape(in)
		if strings.ContainsAny(esc, ";:\"'\t\n") {
			t.Errorf("escape(%q) = %q still contains reserved characters", in, esc)
		}
		got, err := unescape(esc)
		if err != nil {
			t.Fatalf("unescape(escape(%q)): %v", in, err)
		}
		if got != in {
			t.Errorf("unescape(escape(%q)) = %q", in, got)
		}
	}
}

func dump(root *outline.Node) string {
	var sb strings.Builder
	root.Dump(&sb)
	return sb.String()
}
