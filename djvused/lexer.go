package djvused

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/tsawler/rubrica/codec"
)

// tokenType classifies the s-expression tokens of a djvused outline.
type tokenType int

const (
	tokenEOF tokenType = iota
	tokenLParen
	tokenRParen
	tokenString // "quoted text"
	tokenSymbol // bookmarks
)

// token is one lexical token with its byte offset in the input.
type token struct {
	typ tokenType
	val []byte
	pos int64
}

func (t *token) String() string {
	switch t.typ {
	case tokenEOF:
		return "end of input"
	case tokenString:
		return fmt.Sprintf("string %q", t.val)
	default:
		return fmt.Sprintf("%q", t.val)
	}
}

// lexer splits a djvused outline into s-expression tokens.
type lexer struct {
	reader *bufio.Reader
	pos    int64
}

func newLexer(r io.Reader) *lexer {
	return &lexer{reader: bufio.NewReader(r)}
}

// next returns the next token from the input.
func (l *lexer) next() (*token, error) {
	if err := l.skipWhitespace(); err != nil && err != io.EOF {
		return nil, err
	}
	b, err := l.peek()
	if err == io.EOF {
		return &token{typ: tokenEOF, pos: l.pos}, nil
	}
	if err != nil {
		return nil, err
	}
	switch b {
	case '(':
		l.readByte()
		return &token{typ: tokenLParen, val: []byte{'('}, pos: l.pos - 1}, nil
	case ')':
		l.readByte()
		return &token{typ: tokenRParen, val: []byte{')'}, pos: l.pos - 1}, nil
	case '"':
		return l.readString()
	default:
		return l.readSymbol()
	}
}

// readString reads a quoted string, decoding the escapes \" \\ \t \n
// \r and one to three octal digits for a raw byte. Multi-byte UTF-8
// sequences arrive as consecutive octal escapes and reassemble here.
func (l *lexer) readString() (*token, error) {
	startPos := l.pos
	var buf bytes.Buffer
	l.readByte()
	for {
		b, err := l.readByte()
		if err == io.EOF {
			return nil, &codec.SyntaxError{Pos: startPos, Reason: "unterminated string"}
		}
		if err != nil {
			return nil, err
		}
		switch b {
		case '"':
			return &token{typ: tokenString, val: buf.Bytes(), pos: startPos}, nil
		case '\\':
			next, err := l.readByte()
			if err == io.EOF {
				return nil, &codec.SyntaxError{Pos: startPos, Reason: "unterminated string"}
			}
			if err != nil {
				return nil, err
			}
			switch {
			case next == '"' || next == '\\':
				buf.WriteByte(next)
			case next == 't':
				buf.WriteByte('\t')
			case next == 'n':
				buf.WriteByte('\n')
			case next == 'r':
				buf.WriteByte('\r')
			case isOctalDigit(next):
				val := next - '0'
				for i := 0; i < 2; i++ {
					peek, err := l.peek()
					if err != nil || !isOctalDigit(peek) {
						break
					}
					d, _ := l.readByte()
					val = val*8 + (d - '0')
				}
				buf.WriteByte(val)
			default:
				return nil, &codec.SyntaxError{
					Pos:    l.pos - 1,
					Reason: fmt.Sprintf("unknown escape %q in string", `\`+string(next)),
				}
			}
		default:
			buf.WriteByte(b)
		}
	}
}

// readSymbol reads a bare atom such as the bookmarks keyword.
func (l *lexer) readSymbol() (*token, error) {
	startPos := l.pos
	var buf bytes.Buffer
	for {
		b, err := l.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if isWhitespace(b) || b == '(' || b == ')' || b == '"' {
			break
		}
		b, _ = l.readByte()
		buf.WriteByte(b)
	}
	return &token{typ: tokenSymbol, val: buf.Bytes(), pos: startPos}, nil
}

// readByte reads a single byte and advances the position.
func (l *lexer) readByte() (byte, error) {
	b, err := l.reader.ReadByte()
	if err != nil {
		return 0, err
	}
	l.pos++
	return b, nil
}

// peek looks at the next byte without consuming it.
func (l *lexer) peek() (byte, error) {
	bs, err := l.reader.Peek(1)
	if err != nil {
		return 0, err
	}
	return bs[0], nil
}

func (l *lexer) skipWhitespace() error {
	for {
		b, err := l.peek()
		if err != nil {
			return err
		}
		if !isWhitespace(b) {
			return nil
		}
		l.readByte()
	}
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func isOctalDigit(b byte) bool {
	return b >= '0' && b <= '7'
}
