package latexdoc

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/rubrica/codec"
	"github.com/tsawler/rubrica/outline"
)

var bookmarkPattern = regexp.MustCompile(`^\s*\\bookmark\[(.*)\]\{(.*)\}\s*$`)

// Parse reads the \bookmark commands from a LaTeX document. All other
// lines are skipped. A bad level sequence, an unparsable page number
// or a malformed option list fails with a *codec.FormatError naming
// the line.
func Parse(r io.Reader) (*outline.Node, []codec.Warning, error) {
	var ws codec.Warnings
	b := outline.NewBuilder()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNr := 0
	for scanner.Scan() {
		lineNr++
		m := bookmarkPattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		if err := addBookmark(b, &ws, m[1], m[2]); err != nil {
			return nil, nil, &codec.FormatError{Line: lineNr, Reason: err.Error()}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading input: %w", err)
	}
	return b.Root(), ws.List(), nil
}

func addBookmark(b *outline.Builder, ws *codec.Warnings, options, title string) error {
	opts, flags := parseOptions(options)

	level := 1
	if v, ok := opts["level"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("level %q could not be parsed", v)
		}
		level = n + 1
	}
	node, err := b.Add(level, titleUnescaper.Replace(strings.TrimSpace(title)))
	if err != nil {
		return err
	}
	node.Bold = flags["bold"]
	node.Italic = flags["italic"]
	if v, ok := opts["color"]; ok {
		col, err := parseColor(v)
		if err != nil {
			ws.Addf("ignoring unparsable color %q", v)
		} else {
			node.Color = &col
		}
	}
	node.Dest, err = optionDest(opts)
	return err
}

// parseOptions splits the option list into valued keys and bare
// flags. Commas nested inside braces or brackets do not split, so
// view={XYZ 0 100 null} and color=[rgb]{1,0,0} stay whole.
func parseOptions(s string) (opts map[string]string, flags map[string]bool) {
	opts = make(map[string]string)
	flags = make(map[string]bool)
	for _, part := range splitTop(s) {
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if !ok {
			flags[key] = true
			continue
		}
		opts[key] = strings.TrimSpace(value)
	}
	return opts, flags
}

// splitTop splits at commas outside of any braces or brackets.
func splitTop(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}

// optionDest resolves the destination from the action keys. dest and
// named are synonyms for a named target.
func optionDest(opts map[string]string) (outline.Destination, error) {
	gotor, hasGotor := opts["gotor"]
	name, hasName := opts["dest"]
	if !hasName {
		name, hasName = opts["named"]
	}
	uri, hasURI := opts["uri"]
	pageValue, hasPage := opts["page"]

	page := 0
	view := ""
	if hasPage {
		n, err := strconv.Atoi(pageValue)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("page %q could not be parsed", pageValue)
		}
		page = n
		view = stripBraces(opts["view"])
	}

	switch {
	case hasGotor && hasName:
		return &outline.Remote{File: gotor, Target: &outline.Named{Name: name}}, nil
	case hasGotor && hasPage:
		return &outline.Remote{File: gotor, Target: &outline.PageView{Page: page, View: view}}, nil
	case hasGotor:
		return &outline.Remote{File: gotor}, nil
	case hasName:
		return &outline.Named{Name: name}, nil
	case hasURI:
		return &outline.URI{URI: uri}, nil
	case hasPage:
		return &outline.PageView{Page: page, View: view}, nil
	}
	return nil, nil
}

func stripBraces(s string) string {
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// parseColor reads a color option of the form [rgb]{r,g,b}.
func parseColor(s string) (outline.Color, error) {
	rest, ok := strings.CutPrefix(s, "[rgb]")
	if !ok {
		return outline.Color{}, fmt.Errorf("color %q does not use the rgb model", s)
	}
	rest = stripBraces(strings.TrimSpace(rest))
	return outline.ParseColor(strings.ReplaceAll(rest, ",", " "))
}
