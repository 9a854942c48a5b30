package bbf

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrSyntax matches every *ParseError via errors.Is.
var ErrSyntax = errors.New("bbcode syntax error")

// ErrorKind tells lexical failures from grammatical ones.
type ErrorKind uint8

const (
	// KindLexical reports a malformed character sequence.
	KindLexical ErrorKind = iota + 1
	// KindGrammar reports a token the parser cannot handle where it appears.
	KindGrammar
)

func (k ErrorKind) String() string {
	switch k {
	case KindLexical:
		return "lexical"
	case KindGrammar:
		return "grammar"
	default:
		return "unknown"
	}
}

// ParseError is the single failure type of Parse and Tokenize. Offset is the
// byte offset in the source where the failure was detected.
type ParseError struct {
	Kind   ErrorKind
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bbcode: %s error at offset %d: %s", e.Kind, e.Offset, e.Msg)
}

// Is reports whether target is ErrSyntax.
func (e *ParseError) Is(target error) bool {
	return target == ErrSyntax
}

func lexicalError(offset int, format string, args ...any) error {
	return &ParseError{Kind: KindLexical, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func grammarError(offset int, format string, args ...any) error {
	return &ParseError{Kind: KindGrammar, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// FormatError renders a *ParseError as a caret snippet of src:
//
//	bbcode: lexical error at 1:9: missing closing quote '"'
//
//	   1 | [font="Arial]x
//	     |         ^
//
// Other errors are returned as err.Error().
func FormatError(err error, src string) string {
	var perr *ParseError
	if !errors.As(err, &perr) {
		if err == nil {
			return ""
		}
		return err.Error()
	}
	line, col, text := locate(src, perr.Offset)
	gutter := fmt.Sprintf("%4d", line)
	var b strings.Builder
	fmt.Fprintf(&b, "bbcode: %s error at %d:%d: %s\n\n", perr.Kind, line, col, perr.Msg)
	fmt.Fprintf(&b, "%s | %s\n", gutter, text)
	fmt.Fprintf(&b, "%s | %s^", strings.Repeat(" ", len(gutter)), strings.Repeat(" ", col-1))
	return b.String()
}

// locate maps a byte offset to a 1-based line and rune column and returns the
// text of that line. Offsets outside src are clamped.
func locate(src string, offset int) (line, col int, text string) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(src) {
		offset = len(src)
	}
	start := strings.LastIndexByte(src[:offset], '\n') + 1
	end := strings.IndexByte(src[start:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += start
	}
	line = strings.Count(src[:start], "\n") + 1
	col = utf8.RuneCountInString(src[start:offset]) + 1
	text = strings.TrimSuffix(src[start:end], "\r")
	return line, col, text
}
