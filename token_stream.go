package bbf

// tokenStream holds the complete token sequence of one source. The lexer runs
// to completion up front so the parser can look ahead any distance.
type tokenStream struct {
	tokens []Token
	pos    int
}

func newTokenStream(lex *Lexer) (*tokenStream, error) {
	s := &tokenStream{}
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		s.tokens = append(s.tokens, tok)
		if tok.Kind == tokenEnd {
			return s, nil
		}
	}
}

// peek returns the token n positions ahead; peek(1) is the next unread token.
func (s *tokenStream) peek(n int) Token {
	i := s.pos + n - 1
	if i < 0 || i >= len(s.tokens) {
		return EndToken
	}
	return s.tokens[i]
}

func (s *tokenStream) consume() {
	s.pos++
}
