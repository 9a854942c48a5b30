package bbf

import "strconv"

type lexMode uint8

const (
	modeNormal lexMode = iota
	modeTag
)

// Lexer turns BBCode source into tokens, one Next call at a time.
//
// The lexer has two modes. In normal mode it produces text, line breaks and
// tags. After an opening tag name it switches to tag mode, where it reads
// attributes until the closing ']'. Modes live on a stack; an empty stack
// means normal mode.
type Lexer struct {
	cur   charCursor
	modes []lexMode
	done  bool
}

// NewLexer returns a lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{cur: newCharCursor(src)}
}

func (l *Lexer) mode() lexMode {
	if len(l.modes) == 0 {
		return modeNormal
	}
	return l.modes[len(l.modes)-1]
}

func (l *Lexer) pushMode(m lexMode) {
	l.modes = append(l.modes, m)
}

func (l *Lexer) popMode() lexMode {
	last := len(l.modes) - 1
	m := l.modes[last]
	l.modes = l.modes[:last]
	return m
}

// Next returns the next token. Once TokenEnd has been returned every further
// call returns it again. Any error is final: the lexer does not resynchronize.
func (l *Lexer) Next() (Token, error) {
	if l.done {
		return Token{Kind: tokenEnd, Offset: l.cur.offset()}, nil
	}
	for l.mode() == modeTag {
		switch l.cur.peek(1) {
		case eof:
			return Token{}, lexicalError(l.cur.offset(), "unterminated tag")
		case ']':
			l.cur.consume()
			l.popMode()
		default:
			return l.attribute()
		}
	}
	switch r := l.cur.peek(1); r {
	case eof:
		l.done = true
		return Token{Kind: tokenEnd, Offset: l.cur.offset()}, nil
	case '[':
		if l.cur.peek(2) == '/' {
			return l.closeTag()
		}
		tok := l.openTag()
		l.pushMode(modeTag)
		return tok, nil
	case '\r', '\n':
		return l.newline()
	default:
		return l.text(), nil
	}
}

func (l *Lexer) match(want rune) error {
	if got := l.cur.peek(1); got != want {
		return lexicalError(l.cur.offset(), "unexpected %s, want %q", describeRune(got), want)
	}
	l.cur.consume()
	return nil
}

func (l *Lexer) openTag() Token {
	off := l.cur.offset()
	l.cur.consume()
	l.cur.setMark()
	for isTagNameRune(l.cur.peek(1)) {
		l.cur.consume()
	}
	name := l.cur.marked()
	switch name {
	case tagURL, tagEmail:
		return Token{Kind: tokenLink, Text: name, Offset: off}
	case tagImage:
		return Token{Kind: tokenImage, Text: name, Offset: off}
	case tagBreak:
		return Token{Kind: tokenLineBreak, Text: name, Offset: off}
	default:
		return Token{Kind: tokenStartTag, Text: name, Offset: off}
	}
}

func (l *Lexer) closeTag() (Token, error) {
	off := l.cur.offset()
	l.cur.consume()
	l.cur.consume()
	l.cur.setMark()
	for isTagNameRune(l.cur.peek(1)) {
		l.cur.consume()
	}
	tok := Token{Kind: tokenEndTag, Text: l.cur.marked(), Offset: off}
	if err := l.match(']'); err != nil {
		return Token{}, err
	}
	return tok, nil
}

func (l *Lexer) attribute() (Token, error) {
	if err := l.match('='); err != nil {
		return Token{}, err
	}
	l.skipBlanks()
	var tok Token
	if q := l.cur.peek(1); q == '"' || q == '\'' {
		open := l.cur.offset()
		l.cur.consume()
		l.cur.setMark()
		for {
			r := l.cur.peek(1)
			if r == q {
				break
			}
			if r == eof {
				return Token{}, lexicalError(open, "missing closing quote %q", q)
			}
			l.cur.consume()
		}
		tok = Token{Kind: tokenAttribute, Text: l.cur.marked(), Offset: open + 1}
		l.cur.consume()
	} else {
		l.cur.setMark()
		for {
			r := l.cur.peek(1)
			if isBlank(r) || r == ']' || r == eof {
				break
			}
			l.cur.consume()
		}
		tok = Token{Kind: tokenAttribute, Text: l.cur.marked(), Offset: l.cur.mark}
	}
	l.skipBlanks()
	return tok, nil
}

func (l *Lexer) newline() (Token, error) {
	off := l.cur.offset()
	if l.cur.peek(1) == '\r' {
		l.cur.consume()
	}
	if err := l.match('\n'); err != nil {
		return Token{}, err
	}
	return Token{Kind: tokenLineBreak, Offset: off}, nil
}

func (l *Lexer) text() Token {
	off := l.cur.offset()
	l.cur.setMark()
	for {
		r := l.cur.peek(1)
		if r == '[' || r == '\r' || r == '\n' || r == eof {
			break
		}
		l.cur.consume()
	}
	return Token{Kind: tokenText, Text: l.cur.marked(), Offset: off}
}

func (l *Lexer) skipBlanks() {
	for isBlank(l.cur.peek(1)) {
		l.cur.consume()
	}
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

func isTagNameRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '*'
}

func describeRune(r rune) string {
	if r == eof {
		return "end of input"
	}
	return strconv.QuoteRune(r)
}
