package bbf

import "fmt"

// Token is a lexical unit produced by the Lexer.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int
}

type tokenKind uint8

// TokenKind is the exported alias of tokenKind for tooling.
type TokenKind = tokenKind

const (
	tokenStartTag tokenKind = iota
	tokenEndTag
	tokenText
	tokenAttribute
	tokenLineBreak
	tokenImage
	tokenLink
	tokenEnd
)

const (
	// TokenStartTag is an opening tag such as [b]; Text holds the tag name.
	TokenStartTag TokenKind = tokenStartTag
	// TokenEndTag is a closing tag such as [/b]; Text holds the tag name.
	TokenEndTag TokenKind = tokenEndTag
	// TokenText is literal text between tags.
	TokenText TokenKind = tokenText
	// TokenAttribute is the value following '=' inside a tag.
	TokenAttribute TokenKind = tokenAttribute
	// TokenLineBreak is a newline in the source or a [br] tag.
	TokenLineBreak TokenKind = tokenLineBreak
	// TokenImage is an opening [img] tag.
	TokenImage TokenKind = tokenImage
	// TokenLink is an opening [url] or [email] tag.
	TokenLink TokenKind = tokenLink
	// TokenEnd terminates every token sequence.
	TokenEnd TokenKind = tokenEnd
)

var tokenKindNames = [...]string{
	tokenStartTag:  "StartTag",
	tokenEndTag:    "EndTag",
	tokenText:      "Text",
	tokenAttribute: "Attribute",
	tokenLineBreak: "LineBreak",
	tokenImage:     "Image",
	tokenLink:      "Link",
	tokenEnd:       "End",
}

func (k tokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", uint8(k))
}

// EndToken is returned by lookahead past the end of a token sequence.
var EndToken = Token{Kind: tokenEnd}

func (t Token) String() string {
	return fmt.Sprintf("%s: %s", t.Kind, t.Text)
}
