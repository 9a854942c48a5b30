package bbf

import "strings"

// Parse converts BBCode markup into a document tree. The whole source is
// tokenized before parsing starts; any lexical or grammatical failure aborts
// the parse and is returned as a *ParseError with no tree.
//
// Closing tags are optional: "[b]bold to the end" parses, with every
// following run bold.
func Parse(src string) (*Container, error) {
	tokens, err := newTokenStream(NewLexer(src))
	if err != nil {
		return nil, err
	}
	return newParser(tokens).parse()
}

// Tokenize returns the complete token sequence of src, ending with a
// TokenEnd token.
func Tokenize(src string) ([]Token, error) {
	s, err := newTokenStream(NewLexer(src))
	if err != nil {
		return nil, err
	}
	return s.tokens, nil
}

// Literal returns the document that displays src verbatim: one unstyled run
// holding the whole source, line endings included.
func Literal(src string) *Container {
	root := &Container{}
	if src != "" {
		root.add(&Run{Text: src})
	}
	return root
}

// ParseOrLiteral parses src and substitutes Literal(src) when parsing fails.
// The parse error is still returned so callers can report it. Input that is
// empty or whitespace only yields an empty container without parsing.
func ParseOrLiteral(src string) (*Container, error) {
	if strings.TrimSpace(src) == "" {
		return &Container{}, nil
	}
	root, err := Parse(src)
	if err != nil {
		return Literal(src), err
	}
	return root, nil
}
