// Package htmldoc reads and writes bookmark trees as nested HTML
// lists, the layout produced by the DjVu tool chain.
//
// Each bookmark is a li element holding exactly one a element whose
// href names the destination, optionally followed by a nested list
// with the children:
//
//	<ul>
//	  <li><a href="#1">Introduction</a></li>
//	</ul>
//
// href forms are "#page", "file#page", "#name", "file#name", an
// arbitrary URI, or the empty string for a title-only entry.
package htmldoc

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/rubrica/codec"
	"github.com/tsawler/rubrica/outline"
)

// frame is one open structural element. Lists carry the node new
// items attach to, items carry the node their link created, anchors
// collect the link text.
type frame struct {
	tag    string
	parent *outline.Node
	node   *outline.Node
	title  strings.Builder
}

type parser struct {
	root   *outline.Node
	stack  []*frame
	ws     codec.Warnings
	offset int64
}

// Parse reads bookmarks from nested HTML lists. Elements other than
// ul, ol, li and a are treated as decoration. Structural violations,
// including a list item without a link, fail with a
// *codec.SyntaxError carrying the byte offset of the offending token.
func Parse(r io.Reader) (*outline.Node, []codec.Warning, error) {
	p := &parser{root: outline.NewRoot()}
	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != io.EOF {
				return nil, nil, &codec.SyntaxError{Pos: p.offset, Reason: err.Error()}
			}
			break
		}
		if err := p.token(z, tt); err != nil {
			return nil, nil, err
		}
		p.offset += int64(len(z.Raw()))
	}
	if len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		return nil, nil, &codec.SyntaxError{Pos: p.offset, Reason: fmt.Sprintf("unclosed <%s> at end of input", top.tag)}
	}
	return p.root, p.ws.List(), nil
}

func (p *parser) token(z *html.Tokenizer, tt html.TokenType) error {
	switch tt {
	case html.StartTagToken, html.SelfClosingTagToken:
		name, hasAttr := z.TagName()
		tag := string(name)
		var err error
		switch tag {
		case "ul", "ol":
			err = p.openList(tag)
		case "li":
			err = p.openItem()
		case "a":
			err = p.openAnchor(z, hasAttr)
		default:
			return nil
		}
		if err != nil {
			return err
		}
		if tt == html.SelfClosingTagToken {
			return p.close(tag)
		}
	case html.EndTagToken:
		name, _ := z.TagName()
		tag := string(name)
		switch tag {
		case "ul", "ol", "li", "a":
			return p.close(tag)
		}
	case html.TextToken:
		return p.text(z.Text())
	}
	return nil
}

func (p *parser) top() *frame {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *parser) openList(tag string) error {
	parent := p.root
	if top := p.top(); top != nil {
		switch top.tag {
		case "ul", "ol":
			return p.syntaxf("<%s> nested directly inside a list", tag)
		case "a":
			return p.syntaxf("<%s> inside a link", tag)
		case "li":
			if top.node == nil {
				return p.syntaxf("nested list before the item's link")
			}
			parent = top.node
		}
	}
	p.stack = append(p.stack, &frame{tag: tag, parent: parent})
	return nil
}

func (p *parser) openItem() error {
	top := p.top()
	if top == nil || (top.tag != "ul" && top.tag != "ol") {
		return p.syntaxf("<li> must be directly inside a list")
	}
	p.stack = append(p.stack, &frame{tag: "li"})
	return nil
}

func (p *parser) openAnchor(z *html.Tokenizer, hasAttr bool) error {
	item := p.top()
	if item == nil || item.tag != "li" {
		return p.syntaxf("<a> outside a list item")
	}
	if item.node != nil {
		return p.syntaxf("second <a> in one list item")
	}
	href := ""
	for hasAttr {
		key, val, more := z.TagAttr()
		if string(key) == "href" {
			href = string(val)
		}
		hasAttr = more
	}
	dest, err := parseHref(href)
	if err != nil {
		return p.syntaxf("%v", err)
	}
	list := p.stack[len(p.stack)-2]
	item.node = list.parent.NewChild("")
	item.node.Dest = dest
	p.stack = append(p.stack, &frame{tag: "a"})
	return nil
}

func (p *parser) close(tag string) error {
	top := p.top()
	if top == nil {
		return p.syntaxf("unexpected </%s>", tag)
	}
	if top.tag != tag {
		return p.syntaxf("unexpected </%s> inside <%s>", tag, top.tag)
	}
	p.stack = p.stack[:len(p.stack)-1]
	switch tag {
	case "li":
		if top.node == nil {
			return p.syntaxf("list item without a link")
		}
	case "a":
		item := p.top()
		item.node.Title = strings.TrimSpace(top.title.String())
	}
	return nil
}

func (p *parser) text(data []byte) error {
	top := p.top()
	if top == nil {
		return nil
	}
	switch top.tag {
	case "a":
		top.title.Write(data)
	case "ul", "ol":
		if len(bytes.TrimSpace(data)) > 0 {
			return p.syntaxf("text %q directly inside a list", bytes.TrimSpace(data))
		}
	}
	return nil
}

func (p *parser) syntaxf(format string, args ...any) error {
	return &codec.SyntaxError{Pos: p.offset, Reason: fmt.Sprintf(format, args...)}
}

var (
	pageHref        = regexp.MustCompile(`^#([0-9]+)$`)
	remotePageHref  = regexp.MustCompile(`^(.+)#([0-9]+)$`)
	namedHref       = regexp.MustCompile(`^#(.+)$`)
	remoteNamedHref = regexp.MustCompile(`^(.+)#(.+)$`)
)

// parseHref maps a link target to a destination. The forms are tried
// in order, so a URL carrying a fragment parses as a remote link
// rather than a URI.
func parseHref(href string) (outline.Destination, error) {
	if href == "" {
		return nil, nil
	}
	if m := pageHref.FindStringSubmatch(href); m != nil {
		page, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("page reference %q could not be parsed", href)
		}
		return &outline.PageView{Page: page}, nil
	}
	if m := remotePageHref.FindStringSubmatch(href); m != nil {
		page, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("page reference %q could not be parsed", href)
		}
		return &outline.Remote{File: m[1], Target: &outline.PageView{Page: page}}, nil
	}
	if m := namedHref.FindStringSubmatch(href); m != nil {
		return &outline.Named{Name: m[1]}, nil
	}
	if m := remoteNamedHref.FindStringSubmatch(href); m != nil {
		return &outline.Remote{File: m[1], Target: &outline.Named{Name: m[2]}}, nil
	}
	return &outline.URI{URI: href}, nil
}
