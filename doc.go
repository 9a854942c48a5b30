// Package bbf converts BBCode markup into a tree of styled inline nodes and
// renders that tree to ANSI for terminal display.
//
// Parsing is a two-mode lexer feeding an eager token stream and a
// recursive-descent parser that keeps one accumulating style context. Every
// text run in the result carries a fully resolved TextStyle; hyperlinks,
// images and line breaks are separate nodes.
//
//	root, err := bbf.Parse("[b]bold[/b] and [url=https://example.com]a link[/url]")
//	if err != nil {
//		root = bbf.Literal(src)
//	}
//
// Parse failures are *ParseError values of kind lexical or grammar; both match
// ErrSyntax with errors.Is. Closing tags are optional and nested tags of the
// same kind are not stacked: the inner close clears the attribute for the rest
// of the outer span.
//
// Render reads markup from an io.Reader, falls back to literal text when it
// does not parse, and writes word-wrapped ANSI output:
//
//	err := bbf.Render(bbf.RenderRequest{
//		Reader: strings.NewReader("[i]Hello[/i] [color=red]world[/color]"),
//		Writer: os.Stdout,
//		Width:  80,
//		Theme:  bbf.DefaultTheme(),
//	})
//
// RenderOptions control OSC 8 hyperlinks, the color profile, soft wrapping of
// long words and the logger used for fallback warnings.
package bbf
