// Package xmldoc reads and writes the iText XML bookmark format.
//
// Bookmarks are nested Title elements below a Bookmark root:
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<Bookmark>
//	  <Title Action="GoTo" Page="1" >Introduction</Title>
//	</Bookmark>
//
// The Action attribute selects the destination kind (GoTo, GoToR, URI,
// Named); Page carries "page [view]"; Open, Style and Color carry the
// display attributes. Input may be in any encoding named by the XML
// declaration; output is always UTF-8.
package xmldoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/tsawler/rubrica/codec"
	"github.com/tsawler/rubrica/outline"
)

// frame is one open element during parsing. Only Title frames carry a
// node and collect character data.
type frame struct {
	node  *outline.Node
	title strings.Builder
}

// Parse reads an iText XML bookmark file. Elements other than Title
// are ignored, so the Bookmark wrapper is not required. Malformed
// markup and unparsable Page attributes fail with a
// *codec.SyntaxError carrying the input offset.
func Parse(r io.Reader) (*outline.Node, []codec.Warning, error) {
	var ws codec.Warnings
	root := outline.NewRoot()
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel

	parent := root
	var stack []*frame
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, syntaxError(d, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			f := &frame{}
			if t.Name.Local == "Title" {
				node, err := titleNode(parent, t, &ws)
				if err != nil {
					return nil, nil, syntaxError(d, err)
				}
				f.node = node
				parent = node
			}
			stack = append(stack, f)
		case xml.EndElement:
			// the decoder guarantees starts and ends pair up
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if f.node != nil {
				f.node.Title = strings.TrimSpace(f.title.String())
				parent = f.node.Parent()
			}
		case xml.CharData:
			if len(stack) > 0 {
				if f := stack[len(stack)-1]; f.node != nil {
					f.title.Write(t)
				}
			}
		}
	}
	return root, ws.List(), nil
}

func syntaxError(d *xml.Decoder, err error) error {
	reason := err.Error()
	var xerr *xml.SyntaxError
	if errors.As(err, &xerr) {
		reason = xerr.Msg
	}
	return &codec.SyntaxError{Pos: d.InputOffset(), Reason: reason}
}

func titleNode(parent *outline.Node, elem xml.StartElement, ws *codec.Warnings) (*outline.Node, error) {
	attrs := make(map[string]string, len(elem.Attr))
	for _, a := range elem.Attr {
		attrs[a.Name.Local] = a.Value
	}
	node := parent.NewChild("")
	if strings.EqualFold(attrs["Open"], "false") {
		node.Open = false
	}
	if _, ok := attrs["NewWindow"]; ok {
		ws.Add("the NewWindow attribute is not preserved")
	}
	style := strings.ToLower(attrs["Style"])
	node.Italic = strings.Contains(style, "italic")
	node.Bold = strings.Contains(style, "bold")
	if c, ok := attrs["Color"]; ok {
		col, err := outline.ParseColor(c)
		if err != nil {
			ws.Addf("ignoring unparsable color %q", c)
		} else {
			node.Color = &col
		}
	}
	dest, err := titleDest(attrs, ws)
	if err != nil {
		return nil, err
	}
	node.Dest = dest
	return node, nil
}

func titleDest(attrs map[string]string, ws *codec.Warnings) (outline.Destination, error) {
	switch action := attrs["Action"]; action {
	case "":
		return nil, nil
	case "GoTo":
		if name, ok := attrs["Named"]; ok {
			return &outline.Named{Name: name}, nil
		}
		p, ok := attrs["Page"]
		if !ok {
			ws.Add("GoTo action without a page reference")
			return nil, nil
		}
		page, view, err := splitPage(p)
		if err != nil {
			return nil, err
		}
		return &outline.PageView{Page: page, View: view}, nil
	case "GoToR":
		file := attrs["File"]
		if name, ok := attrs["Named"]; ok {
			return &outline.Remote{File: file, Target: &outline.Named{Name: name}}, nil
		}
		// NamedN is iText's name-object flavor of a named destination.
		if name, ok := attrs["NamedN"]; ok {
			return &outline.Remote{File: file, Target: &outline.Named{Name: name}}, nil
		}
		if p, ok := attrs["Page"]; ok {
			page, view, err := splitPage(p)
			if err != nil {
				return nil, err
			}
			return &outline.Remote{File: file, Target: &outline.PageView{Page: page, View: view}}, nil
		}
		return &outline.Remote{File: file}, nil
	case "URI":
		return &outline.URI{URI: attrs["URI"]}, nil
	case "Named":
		return &outline.Named{Name: attrs["Named"]}, nil
	default:
		ws.Addf("dropping unsupported action %q", action)
		return nil, nil
	}
}

// splitPage parses a Page attribute of the form "page" or "page view".
func splitPage(s string) (page int, view string, err error) {
	num, tail, _ := strings.Cut(s, " ")
	page, err = strconv.Atoi(num)
	if err != nil || page < 0 {
		return 0, "", fmt.Errorf("page reference %q could not be parsed", s)
	}
	return page, tail, nil
}
