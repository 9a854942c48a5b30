package bbf

import (
	"errors"
	"testing"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeSequences(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Token
	}{
		{
			name: "plain text",
			src:  "hello",
			want: []Token{{Kind: TokenText, Text: "hello"}, {Kind: TokenEnd}},
		},
		{
			name: "bold",
			src:  "[b]x[/b]",
			want: []Token{
				{Kind: TokenStartTag, Text: "b"},
				{Kind: TokenText, Text: "x"},
				{Kind: TokenEndTag, Text: "b"},
				{Kind: TokenEnd},
			},
		},
		{
			name: "link with attribute",
			src:  "[url=https://a.b]c[/url]",
			want: []Token{
				{Kind: TokenLink, Text: "url"},
				{Kind: TokenAttribute, Text: "https://a.b"},
				{Kind: TokenText, Text: "c"},
				{Kind: TokenEndTag, Text: "url"},
				{Kind: TokenEnd},
			},
		},
		{
			name: "email is a link",
			src:  "[email]a@b.c[/email]",
			want: []Token{
				{Kind: TokenLink, Text: "email"},
				{Kind: TokenText, Text: "a@b.c"},
				{Kind: TokenEndTag, Text: "email"},
				{Kind: TokenEnd},
			},
		},
		{
			name: "image",
			src:  "[img=x.png,width=3]",
			want: []Token{
				{Kind: TokenImage, Text: "img"},
				{Kind: TokenAttribute, Text: "x.png,width=3"},
				{Kind: TokenEnd},
			},
		},
		{
			name: "br tag and newlines",
			src:  "a[br]b\r\nc\nd",
			want: []Token{
				{Kind: TokenText, Text: "a"},
				{Kind: TokenLineBreak, Text: "br"},
				{Kind: TokenText, Text: "b"},
				{Kind: TokenLineBreak},
				{Kind: TokenText, Text: "c"},
				{Kind: TokenLineBreak},
				{Kind: TokenText, Text: "d"},
				{Kind: TokenEnd},
			},
		},
		{
			name: "quoted attribute keeps inner quote of other kind",
			src:  `[font="It's Sans"]x`,
			want: []Token{
				{Kind: TokenStartTag, Text: "font"},
				{Kind: TokenAttribute, Text: "It's Sans"},
				{Kind: TokenText, Text: "x"},
				{Kind: TokenEnd},
			},
		},
		{
			name: "blanks around attribute",
			src:  "[size= \t12 ]x",
			want: []Token{
				{Kind: TokenStartTag, Text: "size"},
				{Kind: TokenAttribute, Text: "12"},
				{Kind: TokenText, Text: "x"},
				{Kind: TokenEnd},
			},
		},
		{
			name: "empty attribute",
			src:  "[color=]x",
			want: []Token{
				{Kind: TokenStartTag, Text: "color"},
				{Kind: TokenAttribute, Text: ""},
				{Kind: TokenText, Text: "x"},
				{Kind: TokenEnd},
			},
		},
		{
			name: "list item",
			src:  "[list][*]a[/list]",
			want: []Token{
				{Kind: TokenStartTag, Text: "list"},
				{Kind: TokenStartTag, Text: "*"},
				{Kind: TokenText, Text: "a"},
				{Kind: TokenEndTag, Text: "list"},
				{Kind: TokenEnd},
			},
		},
		{
			name: "empty input",
			src:  "",
			want: []Token{{Kind: TokenEnd}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.src)
			if err != nil {
				t.Fatalf("tokenize %q: %v", tt.src, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d tokens, got %d: %v", len(tt.want), len(got), got)
			}
			for i := range got {
				if got[i].Kind != tt.want[i].Kind || got[i].Text != tt.want[i].Text {
					t.Fatalf("token %d: expected %v, got %v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestTokenizeOffsets(t *testing.T) {
	got, err := Tokenize("[b]x[/b]")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	want := []int{0, 3, 4, 8}
	for i, tok := range got {
		if tok.Offset != want[i] {
			t.Fatalf("token %d (%v): expected offset %d, got %d", i, tok, want[i], tok.Offset)
		}
	}
}

func TestTokenizeUTF8Text(t *testing.T) {
	got, err := Tokenize("[i]smörgåsbord ✓[/i]")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if got[1].Text != "smörgåsbord ✓" {
		t.Fatalf("unexpected text %q", got[1].Text)
	}
	if got[2].Offset != len("[i]smörgåsbord ✓") {
		t.Fatalf("unexpected end tag offset %d", got[2].Offset)
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		offset int
	}{
		{name: "unterminated tag", src: "[b", offset: 2},
		{name: "missing closing quote", src: `[font="Arial]x`, offset: 6},
		{name: "mismatched quote", src: `[font="Arial']x`, offset: 6},
		{name: "close tag without bracket", src: "[/b x", offset: 3},
		{name: "tag without equals", src: "[b x]", offset: 2},
		{name: "lone carriage return", src: "a\rb", offset: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.src)
			if err == nil {
				t.Fatalf("expected error for %q", tt.src)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if perr.Kind != KindLexical {
				t.Fatalf("expected lexical error, got %v", perr.Kind)
			}
			if perr.Offset != tt.offset {
				t.Fatalf("expected offset %d, got %d (%v)", tt.offset, perr.Offset, err)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Fatalf("expected errors.Is(err, ErrSyntax)")
			}
		})
	}
}

func TestLexerEndIsSticky(t *testing.T) {
	lex := NewLexer("x")
	if tok, err := lex.Next(); err != nil || tok.Kind != TokenText {
		t.Fatalf("expected text token, got %v %v", tok, err)
	}
	for i := 0; i < 3; i++ {
		tok, err := lex.Next()
		if err != nil || tok.Kind != TokenEnd {
			t.Fatalf("expected end token, got %v %v", tok, err)
		}
	}
}

func TestTokenStreamPeek(t *testing.T) {
	s, err := newTokenStream(NewLexer("[b]x"))
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	if got := kinds(s.tokens); len(got) != 3 {
		t.Fatalf("expected 3 tokens, got %v", got)
	}
	if s.peek(1).Kind != TokenStartTag || s.peek(2).Kind != TokenText || s.peek(3).Kind != TokenEnd {
		t.Fatalf("unexpected lookahead %v %v %v", s.peek(1), s.peek(2), s.peek(3))
	}
	if s.peek(10) != EndToken {
		t.Fatalf("expected EndToken past the end, got %v", s.peek(10))
	}
	s.consume()
	if s.peek(1).Kind != TokenText {
		t.Fatalf("expected text after consume, got %v", s.peek(1))
	}
}

func TestTokenKindString(t *testing.T) {
	if TokenStartTag.String() != "StartTag" || TokenEnd.String() != "End" {
		t.Fatalf("unexpected names %s %s", TokenStartTag, TokenEnd)
	}
	if got := TokenKind(99).String(); got != "TokenKind(99)" {
		t.Fatalf("unexpected unknown kind name %q", got)
	}
}
