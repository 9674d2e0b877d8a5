package rtf

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// tokenType represents the type of token
type tokenType int

const (
	tokenEOF tokenType = iota
	tokenGroupStart
	tokenGroupEnd
	tokenControlWord   // \b, \fs24, \u-3913
	tokenControlSymbol // \~, \*, \{
	tokenHex           // \'e9
	tokenText
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenGroupStart:
		return "{"
	case tokenGroupEnd:
		return "}"
	case tokenControlWord:
		return "control word"
	case tokenControlSymbol:
		return "control symbol"
	case tokenHex:
		return "hex escape"
	case tokenText:
		return "text"
	default:
		return "unknown"
	}
}

// token represents a lexical token
type token struct {
	typ      tokenType
	word     string // control word name
	param    int    // control word parameter
	hasParam bool
	symbol   byte   // control symbol, or the byte of a hex escape
	text     []byte // raw text bytes, CR and LF removed
	pos      int64
}

// maxWordLen is the longest control word the format allows.
const maxWordLen = 32

// lexer splits RTF input into tokens
type lexer struct {
	reader *bufio.Reader
	pos    int64
}

func newLexer(r io.Reader) *lexer {
	return &lexer{reader: bufio.NewReader(r)}
}

func newLexerBytes(data []byte) *lexer {
	return newLexer(bytes.NewReader(data))
}

// next returns the next token from the input
func (l *lexer) next() (token, error) {
	for {
		b, err := l.peek()
		if err == io.EOF {
			return token{typ: tokenEOF, pos: l.pos}, nil
		}
		if err != nil {
			return token{}, err
		}

		switch b {
		case '{':
			l.readByte()
			return token{typ: tokenGroupStart, pos: l.pos - 1}, nil
		case '}':
			l.readByte()
			return token{typ: tokenGroupEnd, pos: l.pos - 1}, nil
		case '\\':
			return l.readControl()
		case '\r', '\n':
			// Raw line breaks carry no meaning in RTF text.
			l.readByte()
			continue
		}
		return l.readText()
	}
}

// readControl reads a control word, control symbol or hex escape.
func (l *lexer) readControl() (token, error) {
	start := l.pos
	l.readByte() // backslash

	b, err := l.readByte()
	if err == io.EOF {
		return token{}, fmt.Errorf("dangling backslash at position %d: %w", start, io.ErrUnexpectedEOF)
	}
	if err != nil {
		return token{}, err
	}

	if !isLetter(b) {
		switch b {
		case '\'':
			return l.readHex(start)
		case '\r', '\n':
			// A backslash before a line break is equivalent to \par.
			return token{typ: tokenControlWord, word: "par", pos: start}, nil
		}
		return token{typ: tokenControlSymbol, symbol: b, pos: start}, nil
	}

	name := []byte{b}
	for {
		c, err := l.peek()
		if err != nil || !isLetter(c) {
			break
		}
		if len(name) >= maxWordLen {
			return token{}, fmt.Errorf("control word too long at position %d", start)
		}
		l.readByte()
		name = append(name, c)
	}

	tok := token{typ: tokenControlWord, word: string(name), pos: start}

	c, err := l.peek()
	if err == nil && (c == '-' || isDigit(c)) {
		negative := c == '-'
		if negative {
			l.readByte()
		}
		digits := 0
		n := 0
		for {
			d, err := l.peek()
			if err != nil || !isDigit(d) {
				break
			}
			l.readByte()
			n = n*10 + int(d-'0')
			digits++
			if digits > 10 {
				return token{}, fmt.Errorf("control word parameter too long at position %d", start)
			}
		}
		if digits == 0 {
			return token{}, fmt.Errorf("malformed parameter for \\%s at position %d", tok.word, start)
		}
		if negative {
			n = -n
		}
		tok.param = n
		tok.hasParam = true
	}

	// A single space delimits a control word and is not part of the text.
	if c, err := l.peek(); err == nil && c == ' ' {
		l.readByte()
	}
	return tok, nil
}

// readHex reads the two hex digits of a \'hh escape.
func (l *lexer) readHex(start int64) (token, error) {
	var v byte
	for i := 0; i < 2; i++ {
		c, err := l.readByte()
		if err != nil {
			return token{}, fmt.Errorf("truncated hex escape at position %d: %w", start, io.ErrUnexpectedEOF)
		}
		d, ok := hexValue(c)
		if !ok {
			return token{}, fmt.Errorf("invalid hex escape at position %d", start)
		}
		v = v<<4 | d
	}
	return token{typ: tokenHex, symbol: v, pos: start}, nil
}

// readText reads plain text up to the next delimiter.
func (l *lexer) readText() (token, error) {
	tok := token{typ: tokenText, pos: l.pos}
	for {
		b, err := l.peek()
		if err != nil || b == '{' || b == '}' || b == '\\' {
			break
		}
		l.readByte()
		if b == '\r' || b == '\n' {
			continue
		}
		tok.text = append(tok.text, b)
	}
	return tok, nil
}

// skipBytes consumes n raw bytes, used for \bin data.
func (l *lexer) skipBytes(n int) error {
	discarded, err := l.reader.Discard(n)
	l.pos += int64(discarded)
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// readByte reads a single byte and advances position
func (l *lexer) readByte() (byte, error) {
	b, err := l.reader.ReadByte()
	if err != nil {
		return 0, err
	}
	l.pos++
	return b, nil
}

// peek looks at the next byte without consuming it
func (l *lexer) peek() (byte, error) {
	b, err := l.reader.Peek(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func hexValue(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}
