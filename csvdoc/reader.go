package csvdoc

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

var linePattern = regexp.MustCompile(`^(-?[0-9]+);(O?B?I?);([^;]*);(-?[0-9]+)( [^;]+)?(?:;(.*))?$`)

// knownKeyPattern locates the next moreopts key so an unquoted value
// knows where it ends.
var knownKeyPattern = regexp.MustCompile(`(?i) (action|file|page|uri|color)=`)

// Parse reads bookmarks in the jpdftweak CSV format. A line that does
// not match the grammar, a negative depth or page, a bad escape, or a
// depth jump of more than one fails with a *codec.FormatError naming
// the line.
func Parse(r io.Reader) (*outline.Node, []codec.Warning, error) {
	var ws codec.Warnings
	b := outline.NewBuilder()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNr := 0
	for scanner.Scan() {
		lineNr++
		m := linePattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			return nil, nil, &codec.FormatError{
				Line:   lineNr,
				Reason: `line does not match "depth;flags;title;page[ view][;moreopts]"`,
			}
		}
		if err := addLine(b, &ws, m); err != nil {
			return nil, nil, &codec.FormatError{Line: lineNr, Reason: err.Error()}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading input: %w", err)
	}
	return b.Root(), ws.List(), nil
}

func addLine(b *outline.Builder, ws *codec.Warnings, m []string) error {
	depth, err := strconv.Atoi(m[1])
	if err != nil {
		return fmt.Errorf("depth %q is out of range", m[1])
	}
	if depth < 0 {
		return fmt.Errorf("depth %d is negative", depth)
	}
	title, err := unescape(m[3])
	if err != nil {
		return fmt.Errorf("title: %v", err)
	}
	node, err := b.Add(depth+1, title)
	if err != nil {
		return err
	}
	flags := m[2]
	node.Open = strings.Contains(flags, "O")
	node.Bold = strings.Contains(flags, "B")
	node.Italic = strings.Contains(flags, "I")

	page, err := strconv.Atoi(m[4])
	if err != nil {
		return fmt.Errorf("page %q is out of range", m[4])
	}
	if page < 0 {
		return fmt.Errorf("page %d is negative", page)
	}
	view := ""
	if m[5] != "" {
		view, err = unescape(strings.TrimSpace(m[5]))
		if err != nil {
			return fmt.Errorf("view: %v", err)
		}
	}
	opts, err := parseMoreopts(m[6])
	if err != nil {
		return err
	}
	node.Dest, err = destFromOpts(page, view, opts, ws)
	if err != nil {
		return err
	}
	if c, ok := opts["color"]; ok {
		col, err := outline.ParseColor(c)
		if err != nil {
			ws.Addf("ignoring unparsable color %q", c)
		} else {
			node.Color = &col
		}
	}
	return nil
}

func destFromOpts(page int, view string, opts map[string]string, ws *codec.Warnings) (outline.Destination, error) {
	action := "GoTo"
	if a, ok := opts["action"]; ok {
		action = a
	}
	switch action {
	case "GoTo":
		if page == 0 && view == "" {
			return nil, nil
		}
		return &outline.PageView{Page: page, View: view}, nil
	case "GoToR":
		target, err := remoteTarget(page, view, opts)
		if err != nil {
			return nil, err
		}
		return &outline.Remote{File: opts["file"], Target: target}, nil
	case "URI":
		uri, ok := opts["uri"]
		if !ok {
			ws.Add("URI action without a URI value")
		}
		return &outline.URI{URI: uri}, nil
	default:
		ws.Addf("dropping unsupported action %q", action)
		return nil, nil
	}
}

// remoteTarget resolves the destination inside a GoToR file: the Page
// moreopt when present, the fixed page field otherwise.
func remoteTarget(page int, view string, opts map[string]string) (outline.Destination, error) {
	if p, ok := opts["page"]; ok {
		num, tail, _ := strings.Cut(p, " ")
		n, err := strconv.Atoi(num)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("page reference %q could not be parsed", p)
		}
		return &outline.PageView{Page: n, View: tail}, nil
	}
	if page != 0 || view != "" {
		return &outline.PageView{Page: page, View: view}, nil
	}
	return nil, nil
}

// parseMoreopts decodes the moreopts field. jpdftweak writes values
// quoted, doubling embedded quotes; hand-written files may leave them
// unquoted, in which case a value extends to the start of the next
// known key.
func parseMoreopts(raw string) (map[string]string, error) {
	opts := make(map[string]string)
	if raw == "" {
		return opts, nil
	}
	s, err := unescape(raw)
	if err != nil {
		return nil, fmt.Errorf("moreopts: %v", err)
	}
	s = strings.TrimSpace(s)
	for s != "" {
		eq := strings.IndexByte(s, '=')
		if eq < 0 {
			return nil, fmt.Errorf("moreopts: no value in %q", s)
		}
		key := strings.ToLower(strings.TrimSpace(s[:eq]))
		s = s[eq+1:]
		var value string
		if strings.HasPrefix(s, `"`) {
			value, s, err = scanQuoted(s[1:])
			if err != nil {
				return nil, fmt.Errorf("moreopts: %v", err)
			}
		} else if loc := knownKeyPattern.FindStringIndex(s); loc != nil {
			value, s = strings.TrimSpace(s[:loc[0]]), s[loc[0]+1:]
		} else {
			value, s = strings.TrimSpace(s), ""
		}
		opts[key] = value
		s = strings.TrimSpace(s)
	}
	return opts, nil
}

// scanQuoted reads a quoted value whose opening quote is already
// consumed. A doubled quote stands for a literal quote.
func scanQuoted(s string) (value, rest string, err error) {
	var sb strings.Builder
	for {
		q := strings.IndexByte(s, '"')
		if q < 0 {
			return "", "", fmt.Errorf("unterminated quoted value")
		}
		if q+1 < len(s) && s[q+1] == '"' {
			sb.WriteString(s[:q+1])
			s = s[q+2:]
			continue
		}
		sb.WriteString(s[:q])
		return sb.String(), s[q+1:], nil
	}
}
