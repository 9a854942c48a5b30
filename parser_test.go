package bbf

import (
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string) *Container {
	t.Helper()
	root, err := Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return root
}

func runAt(t *testing.T, root *Container, i int) *Run {
	t.Helper()
	if i >= len(root.Children) {
		t.Fatalf("expected child %d, have %d children", i, len(root.Children))
	}
	run, ok := root.Children[i].(*Run)
	if !ok {
		t.Fatalf("child %d: expected *Run, got %T", i, root.Children[i])
	}
	return run
}

func types(root *Container) string {
	names := make([]string, len(root.Children))
	for i, n := range root.Children {
		names[i] = n.NodeType()
	}
	return strings.Join(names, ",")
}

func TestParseTextWithoutTags(t *testing.T) {
	root := mustParse(t, "one\ntwo\r\nthree")
	if got := types(root); got != "run,linebreak,run,linebreak,run" {
		t.Fatalf("unexpected layout %s", got)
	}
	for i, want := range map[int]string{0: "one", 2: "two", 4: "three"} {
		run := runAt(t, root, i)
		if run.Text != want || !run.Style.IsZero() {
			t.Fatalf("child %d: expected unstyled %q, got %q %+v", i, want, run.Text, run.Style)
		}
	}
}

func TestParseBold(t *testing.T) {
	root := mustParse(t, "[b]x[/b]")
	if len(root.Children) != 1 {
		t.Fatalf("expected one child, got %s", types(root))
	}
	run := runAt(t, root, 0)
	if run.Text != "x" || run.Style.Weight != WeightBold {
		t.Fatalf("expected bold x, got %q %+v", run.Text, run.Style)
	}
}

func TestParseInlineStyles(t *testing.T) {
	tests := []struct {
		src   string
		check func(TextStyle) bool
	}{
		{"[i]x[/i]", func(s TextStyle) bool { return s.Slant == SlantItalic }},
		{"[u]x[/u]", func(s TextStyle) bool { return s.Decoration == DecorationUnderline }},
		{"[s]x[/s]", func(s TextStyle) bool { return s.Decoration == DecorationStrikethrough }},
		{"[font=Georgia]x[/font]", func(s TextStyle) bool { return s.FontFamily == "Georgia" }},
		{"[size=14]x[/size]", func(s TextStyle) bool { return s.FontSize != nil && *s.FontSize == 14 }},
		{"[size=1.5]x[/size]", func(s TextStyle) bool { return s.FontSize != nil && *s.FontSize == 1.5 }},
		{"[size=big]x[/size]", func(s TextStyle) bool { return s.FontSize == nil }},
		{"[color=#00FF00]x[/color]", func(s TextStyle) bool {
			return s.Foreground != nil && *s.Foreground == Color{G: 0xff, A: 0xff}
		}},
		{"[color=Blue]x[/color]", func(s TextStyle) bool {
			return s.Foreground != nil && *s.Foreground == Color{B: 0xff, A: 0xff}
		}},
		{"[b][i][u]x", func(s TextStyle) bool {
			return s.Weight == WeightBold && s.Slant == SlantItalic && s.Decoration == DecorationUnderline
		}},
		{"[u][s]x", func(s TextStyle) bool { return s.Decoration == DecorationStrikethrough }},
	}
	for _, tt := range tests {
		root := mustParse(t, tt.src)
		run := runAt(t, root, 0)
		if run.Text != "x" || !tt.check(run.Style) {
			t.Fatalf("%s: unexpected run %q %+v", tt.src, run.Text, run.Style)
		}
	}
}

func TestParseColorThenUnstyledSibling(t *testing.T) {
	root := mustParse(t, "[color=red]r[/color]n")
	if len(root.Children) != 2 {
		t.Fatalf("expected two runs, got %s", types(root))
	}
	red := runAt(t, root, 0)
	if red.Style.Foreground == nil || *red.Style.Foreground != (Color{R: 0xff, A: 0xff}) {
		t.Fatalf("expected red foreground, got %+v", red.Style.Foreground)
	}
	if plain := runAt(t, root, 1); plain.Style.Foreground != nil {
		t.Fatalf("expected no foreground after close, got %+v", plain.Style.Foreground)
	}
}

func TestParseNestedSameKindClearsOuter(t *testing.T) {
	root := mustParse(t, "[b]a[b]b[/b]c[/b]")
	if got := runAt(t, root, 2); got.Text != "c" || got.Style.Weight != WeightUnset {
		t.Fatalf("expected inner close to clear bold, got %q %+v", got.Text, got.Style)
	}
}

func TestParseUnterminatedTagStaysOpen(t *testing.T) {
	root := mustParse(t, "[b]unterminated")
	run := runAt(t, root, 0)
	if run.Text != "unterminated" || run.Style.Weight != WeightBold {
		t.Fatalf("expected bold run, got %q %+v", run.Text, run.Style)
	}
}

func TestParseUnknownTagIgnored(t *testing.T) {
	root := mustParse(t, "[blink]x[/blink]")
	run := runAt(t, root, 0)
	if len(root.Children) != 1 || run.Text != "x" || !run.Style.IsZero() {
		t.Fatalf("expected plain x, got %s", types(root))
	}
}

func TestParseTagNamesAreCaseSensitive(t *testing.T) {
	root := mustParse(t, "[B]x[/B]")
	if run := runAt(t, root, 0); run.Style.Weight != WeightUnset {
		t.Fatalf("expected [B] to be ignored, got %+v", run.Style)
	}
}

func hyperlinkAt(t *testing.T, root *Container, i int) *Hyperlink {
	t.Helper()
	if i >= len(root.Children) {
		t.Fatalf("expected child %d, have %s", i, types(root))
	}
	link, ok := root.Children[i].(*Hyperlink)
	if !ok {
		t.Fatalf("child %d: expected *Hyperlink, got %T", i, root.Children[i])
	}
	return link
}

func TestParseExplicitURL(t *testing.T) {
	root := mustParse(t, "[url=https://a.b]c[/url]")
	if len(root.Children) != 1 {
		t.Fatalf("expected one hyperlink, got %s", types(root))
	}
	link := hyperlinkAt(t, root, 0)
	if link.Target != "https://a.b" || PlainText(&Container{Children: link.Display}) != "c" {
		t.Fatalf("unexpected link %+v", link)
	}
}

func TestParseQuotedURL(t *testing.T) {
	root := mustParse(t, `[url="https://a.b/x y"]c[/url]`)
	if link := hyperlinkAt(t, root, 0); link.Target != "https://a.b/x y" {
		t.Fatalf("unexpected target %q", link.Target)
	}
}

func TestParseExplicitURLWithoutText(t *testing.T) {
	root := mustParse(t, "[url=https://a.b][/url]")
	link := hyperlinkAt(t, root, 0)
	if PlainText(&Container{Children: link.Display}) != "https://a.b" {
		t.Fatalf("expected target as display text, got %+v", link.Display)
	}
}

func TestParseAutoURL(t *testing.T) {
	root := mustParse(t, "[url]https://a.b[/url] after")
	if got := types(root); got != "hyperlink,run" {
		t.Fatalf("unexpected layout %s", got)
	}
	link := hyperlinkAt(t, root, 0)
	if link.Target != "https://a.b" || PlainText(&Container{Children: link.Display}) != "https://a.b" {
		t.Fatalf("unexpected link %+v", link)
	}
	if run := runAt(t, root, 1); run.Text != " after" {
		t.Fatalf("unexpected trailing text %q", run.Text)
	}
}

func TestParseLinkInheritsStyle(t *testing.T) {
	root := mustParse(t, "[b][url=https://a.b]c[/url][/b]")
	link := hyperlinkAt(t, root, 0)
	run, ok := link.Display[0].(*Run)
	if !ok || run.Style.Weight != WeightBold {
		t.Fatalf("expected bold display run, got %+v", link.Display)
	}
}

func TestParseEmail(t *testing.T) {
	tests := []struct {
		src     string
		display string
		target  string
	}{
		{"[email]a@b.c[/email]", "a@b.c", "mailto:a@b.c"},
		{"[email=a@b.c]write me[/email]", "write me", "mailto:a@b.c"},
		{"[email=mailto:a@b.c]x[/email]", "x", "mailto:a@b.c"},
	}
	for _, tt := range tests {
		link := hyperlinkAt(t, mustParse(t, tt.src), 0)
		if link.Target != tt.target || PlainText(&Container{Children: link.Display}) != tt.display {
			t.Fatalf("%s: unexpected link %q -> %q", tt.src, PlainText(&Container{Children: link.Display}), link.Target)
		}
	}
}

func TestParseLinkWithEmptyTarget(t *testing.T) {
	link := hyperlinkAt(t, mustParse(t, "[url=]x[/url]"), 0)
	if link.Target != "" || PlainText(&Container{Children: link.Display}) != "x" {
		t.Fatalf("expected empty target with display x, got %q -> %q",
			PlainText(&Container{Children: link.Display}), link.Target)
	}

	root := mustParse(t, "[url=][/url]")
	if got := types(root); got != "hyperlink" {
		t.Fatalf("unexpected layout %s", got)
	}
	link = hyperlinkAt(t, root, 0)
	if link.Target != "" || PlainText(&Container{Children: link.Display}) != "" {
		t.Fatalf("expected empty link, got %q -> %q",
			PlainText(&Container{Children: link.Display}), link.Target)
	}

	link = hyperlinkAt(t, mustParse(t, "[email=]x[/email]"), 0)
	if link.Target != "" {
		t.Fatalf("expected empty email target, got %q", link.Target)
	}
}

func TestParseLinkWithoutTargetIsLiteral(t *testing.T) {
	root := mustParse(t, "[url][b]x[/b][/url]")
	if run := runAt(t, root, 0); run.Text != "url" {
		t.Fatalf("expected literal tag name, got %q", run.Text)
	}
	if run := runAt(t, root, 1); run.Text != "x" || run.Style.Weight != WeightBold {
		t.Fatalf("expected bold x after literal, got %q %+v", run.Text, run.Style)
	}
}

func imageAt(t *testing.T, root *Container, i int) *Image {
	t.Helper()
	if i >= len(root.Children) {
		t.Fatalf("expected child %d, have %s", i, types(root))
	}
	img, ok := root.Children[i].(*Image)
	if !ok {
		t.Fatalf("child %d: expected *Image, got %T", i, root.Children[i])
	}
	return img
}

func TestParseImage(t *testing.T) {
	root := mustParse(t, "[img=pic.png,width=10,height=7.5,border=1]A caption[/img]")
	if len(root.Children) != 1 {
		t.Fatalf("expected one image, got %s", types(root))
	}
	img := imageAt(t, root, 0)
	if img.URI != "pic.png" {
		t.Fatalf("unexpected uri %q", img.URI)
	}
	if img.Width == nil || *img.Width != 10 || img.Height == nil || *img.Height != 7.5 {
		t.Fatalf("unexpected size %v %v", img.Width, img.Height)
	}
	if img.Caption == nil || img.Caption.Text != "A caption" {
		t.Fatalf("unexpected caption %+v", img.Caption)
	}
}

func TestParseImageWithoutCaptionOrSize(t *testing.T) {
	img := imageAt(t, mustParse(t, "[img=pic.png][/img]"), 0)
	if img.Width != nil || img.Height != nil || img.Caption != nil {
		t.Fatalf("expected bare image, got %+v", img)
	}
}

func TestParseImageWithoutAttributeIsLiteral(t *testing.T) {
	root := mustParse(t, "[img]pic.png[/img]")
	if got := types(root); got != "run,run" {
		t.Fatalf("unexpected layout %s", got)
	}
	if runAt(t, root, 0).Text != "img" || runAt(t, root, 1).Text != "pic.png" {
		t.Fatalf("unexpected runs %q %q", runAt(t, root, 0).Text, runAt(t, root, 1).Text)
	}
}

func TestParseList(t *testing.T) {
	root := mustParse(t, "[list][*]a[*]b[/list]")
	if got := types(root); got != "linebreak,run,run,linebreak,run,run,linebreak" {
		t.Fatalf("unexpected layout %s", got)
	}
	want := map[int]string{1: "• ", 2: "a", 4: "• ", 5: "b"}
	for i, text := range want {
		if got := runAt(t, root, i).Text; got != text {
			t.Fatalf("child %d: expected %q, got %q", i, text, got)
		}
	}
}

func TestParseListMarksBullets(t *testing.T) {
	root := mustParse(t, "[list][*]a[/list][b]• [/b]")
	if run := runAt(t, root, 1); run.Text != bulletGlyph || !run.Bullet {
		t.Fatalf("expected bullet run, got %+v", run)
	}
	if run := runAt(t, root, 2); run.Bullet {
		t.Fatalf("item text marked as bullet")
	}
	last := runAt(t, root, len(root.Children)-1)
	if last.Text != bulletGlyph || last.Bullet {
		t.Fatalf("plain text equal to the glyph marked as bullet: %+v", last)
	}
}

func TestParseListItemOutsideListIgnored(t *testing.T) {
	root := mustParse(t, "[*]a")
	if got := types(root); got != "run" || runAt(t, root, 0).Text != "a" {
		t.Fatalf("unexpected layout %s", got)
	}
}

func TestParseListCounterResets(t *testing.T) {
	root := mustParse(t, "[list][*]a[/list][list][*]b[/list]")
	if got := types(root); got != "linebreak,run,run,linebreak,linebreak,run,run,linebreak" {
		t.Fatalf("unexpected layout %s", got)
	}
}

func TestParseQuote(t *testing.T) {
	root := mustParse(t, "[quote=ann]hi[/quote]")
	if got := types(root); got != "linebreak,run,linebreak,run,linebreak" {
		t.Fatalf("unexpected layout %s", got)
	}
	author := runAt(t, root, 1)
	if author.Text != "ann wrote:" || author.Style.Weight != WeightBold {
		t.Fatalf("unexpected author line %q %+v", author.Text, author.Style)
	}
	body := runAt(t, root, 3)
	if body.Style.Slant != SlantItalic || body.Style.Foreground == nil || *body.Style.Foreground != quoteColor {
		t.Fatalf("unexpected quote style %+v", body.Style)
	}
}

func TestParseQuoteWithoutAuthor(t *testing.T) {
	root := mustParse(t, "[quote]hi[/quote]x")
	if got := types(root); got != "run,linebreak,run" {
		t.Fatalf("unexpected layout %s", got)
	}
	if runAt(t, root, 2).Style.Slant != SlantUnset {
		t.Fatalf("expected quote close to clear italic")
	}
}

func TestParseCode(t *testing.T) {
	root := mustParse(t, "[code]x := 1[/code]y")
	if got := types(root); got != "run,linebreak,run" {
		t.Fatalf("unexpected layout %s", got)
	}
	code := runAt(t, root, 0)
	if code.Style.FontFamily != "Consolas" || code.Style.Background == nil || *code.Style.Background != codeBackground {
		t.Fatalf("unexpected code style %+v", code.Style)
	}
	if after := runAt(t, root, 2); after.Style.FontFamily != "" || after.Style.Background != nil {
		t.Fatalf("expected code close to clear style, got %+v", after.Style)
	}
}

func TestParseGrammarErrors(t *testing.T) {
	tests := []string{
		"[color=]x",
		"[color=notacolor]x",
		"[color=#12345]x",
	}
	for _, src := range tests {
		_, err := Parse(src)
		var perr *ParseError
		if !errors.As(err, &perr) || perr.Kind != KindGrammar {
			t.Fatalf("%s: expected grammar error, got %v", src, err)
		}
		if !errors.Is(err, ErrSyntax) {
			t.Fatalf("%s: expected ErrSyntax", src)
		}
	}
}

func TestParseUnexpectedAttribute(t *testing.T) {
	_, err := Parse("[b=1]x")
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Kind != KindGrammar || perr.Offset != 3 {
		t.Fatalf("expected grammar error at 3, got %v", err)
	}
}

func TestParseLexicalErrorReturnsNoTree(t *testing.T) {
	root, err := Parse(`[font="Arial]x`)
	if err == nil || root != nil {
		t.Fatalf("expected error and no tree, got %v %v", root, err)
	}
}

func TestParseOrLiteral(t *testing.T) {
	root, err := ParseOrLiteral("[b")
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if got := PlainText(root); got != "[b" {
		t.Fatalf("expected literal text, got %q", got)
	}
	root, err = ParseOrLiteral(" \n\t")
	if err != nil || len(root.Children) != 0 {
		t.Fatalf("expected empty document, got %v %v", root, err)
	}
	root, err = ParseOrLiteral("[i]ok")
	if err != nil || runAt(t, root, 0).Style.Slant != SlantItalic {
		t.Fatalf("expected parsed document, got %v", err)
	}
}

func TestLiteralKeepsSourceVerbatim(t *testing.T) {
	src := "a\r\n[b\nc"
	root := Literal(src)
	if got := types(root); got != "run" {
		t.Fatalf("unexpected layout %s", got)
	}
	run := runAt(t, root, 0)
	if run.Text != src || !run.Style.IsZero() {
		t.Fatalf("expected one unstyled run, got %q %+v", run.Text, run.Style)
	}
	if got := PlainText(root); got != src {
		t.Fatalf("unexpected text %q", got)
	}
	if got := len(Literal("").Children); got != 0 {
		t.Fatalf("expected empty document, got %d children", got)
	}
}

func TestParseRunStylesAreIndependent(t *testing.T) {
	root := mustParse(t, "[size=10]a[/size]b")
	a := runAt(t, root, 0)
	*a.Style.FontSize = 99
	root2 := mustParse(t, "[size=10]a[/size]b")
	if *runAt(t, root2, 0).Style.FontSize != 10 {
		t.Fatalf("expected independent style values")
	}
	if runAt(t, root, 1).Style.FontSize != nil {
		t.Fatalf("expected size cleared on b")
	}
}

func TestParseForumSample(t *testing.T) {
	root := mustParse(t, string(readForum(t)))
	var links, images int
	Walk(root, func(n Node) bool {
		switch n.(type) {
		case *Hyperlink:
			links++
		case *Image:
			images++
		}
		return true
	})
	if links != 3 || images != 1 {
		t.Fatalf("expected 3 links and 1 image, got %d and %d", links, images)
	}
}
