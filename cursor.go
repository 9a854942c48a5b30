package bbf

import "unicode/utf8"

// eof is returned by charCursor.peek past the end of the input.
const eof rune = -1

// charCursor scans a string rune by rune. It never fails: lookahead past the
// end yields eof.
type charCursor struct {
	src  string
	pos  int
	mark int
}

func newCharCursor(src string) charCursor {
	return charCursor{src: src}
}

// peek returns the rune n positions ahead; peek(1) is the current rune.
func (c *charCursor) peek(n int) rune {
	i := c.pos
	for ; n > 1; n-- {
		if i >= len(c.src) {
			return eof
		}
		_, size := utf8.DecodeRuneInString(c.src[i:])
		i += size
	}
	if i >= len(c.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(c.src[i:])
	return r
}

func (c *charCursor) consume() {
	if c.pos >= len(c.src) {
		return
	}
	_, size := utf8.DecodeRuneInString(c.src[c.pos:])
	c.pos += size
}

func (c *charCursor) setMark() {
	c.mark = c.pos
}

// marked returns the text between the mark and the current position.
func (c *charCursor) marked() string {
	if c.mark >= c.pos {
		return ""
	}
	return c.src[c.mark:c.pos]
}

func (c *charCursor) offset() int {
	return c.pos
}
