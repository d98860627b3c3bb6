// Package djvused reads and writes the outline s-expressions used by
// the djvused tool:
//
//	(bookmarks
//	 ("Introduction"
//	  "#1" )
//	 ("Chapter 1"
//	  "#5"
//	  ("Section 1.1"
//	   "#7" ) ) )
//
// Each entry is a list holding the quoted title, the quoted target
// URL and the child entries. Target forms are "#page", "#name",
// "file#page", "file#name", an arbitrary URI, or the empty string for
// a title-only entry.
package djvused

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/rubrica/codec"
	"github.com/tsawler/rubrica/outline"
)

type parser struct {
	lex *lexer
	tok *token
}

// Parse reads a djvused outline. Unbalanced parentheses, missing
// titles or targets, bad string escapes and trailing data fail with a
// *codec.SyntaxError carrying the byte offset.
func Parse(r io.Reader) (*outline.Node, []codec.Warning, error) {
	p := &parser{lex: newLexer(r)}
	if err := p.advance(); err != nil {
		return nil, nil, err
	}
	if p.tok.typ != tokenLParen {
		return nil, nil, p.errorf("expected ( at the start of the bookmark list")
	}
	if err := p.advance(); err != nil {
		return nil, nil, err
	}
	if p.tok.typ != tokenSymbol || string(p.tok.val) != "bookmarks" {
		return nil, nil, p.errorf("expected the bookmarks keyword")
	}
	if err := p.advance(); err != nil {
		return nil, nil, err
	}
	root := outline.NewRoot()
	if err := p.entries(root); err != nil {
		return nil, nil, err
	}
	if err := p.advance(); err != nil {
		return nil, nil, err
	}
	if p.tok.typ != tokenEOF {
		return nil, nil, p.errorf("trailing data after the bookmark list")
	}
	return root, nil, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &codec.SyntaxError{Pos: p.tok.pos, Reason: fmt.Sprintf(format, args...)}
}

// entries parses child entries until the closing parenthesis of the
// surrounding list, which is the current token when it returns.
func (p *parser) entries(parent *outline.Node) error {
	for {
		switch p.tok.typ {
		case tokenRParen:
			return nil
		case tokenLParen:
			if err := p.entry(parent); err != nil {
				return err
			}
			if err := p.advance(); err != nil {
				return err
			}
		case tokenEOF:
			return p.errorf("unexpected end of input inside the bookmark list")
		default:
			return p.errorf("unexpected %s inside the bookmark list", p.tok)
		}
	}
}

// entry parses one ("title" "url" child*) list starting at its
// opening parenthesis. The closing parenthesis is the current token
// when it returns.
func (p *parser) entry(parent *outline.Node) error {
	if err := p.advance(); err != nil {
		return err
	}
	if p.tok.typ != tokenString {
		return p.errorf("expected a quoted title")
	}
	node := parent.NewChild(string(p.tok.val))
	if err := p.advance(); err != nil {
		return err
	}
	if p.tok.typ != tokenString {
		return p.errorf("expected a quoted target after the title")
	}
	dest, err := p.urlDest(string(p.tok.val))
	if err != nil {
		return err
	}
	node.Dest = dest
	if err := p.advance(); err != nil {
		return err
	}
	return p.entries(node)
}

var (
	pageURL       = regexp.MustCompile(`^#([0-9]+)$`)
	remotePageURL = regexp.MustCompile(`^(.+)#([0-9]+)$`)
	remoteNameURL = regexp.MustCompile(`^(.+)#(.+)$`)
)

// urlDest maps a target URL to a destination. The forms are tried in
// order, so a URL carrying a fragment parses as a remote link rather
// than a URI.
func (p *parser) urlDest(url string) (outline.Destination, error) {
	if url == "" {
		return nil, nil
	}
	if m := pageURL.FindStringSubmatch(url); m != nil {
		page, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, p.errorf("page reference %q could not be parsed", url)
		}
		return &outline.PageView{Page: page}, nil
	}
	if m := remotePageURL.FindStringSubmatch(url); m != nil {
		page, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, p.errorf("page reference %q could not be parsed", url)
		}
		return &outline.Remote{File: m[1], Target: &outline.PageView{Page: page}}, nil
	}
	if name, ok := strings.CutPrefix(url, "#"); ok {
		return &outline.Named{Name: name}, nil
	}
	if m := remoteNameURL.FindStringSubmatch(url); m != nil {
		return &outline.Remote{File: m[1], Target: &outline.Named{Name: m[2]}}, nil
	}
	return &outline.URI{URI: url}, nil
}
