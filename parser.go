package bbf

import (
	"strconv"
	"strings"
)

const (
	tagBold          = "b"
	tagItalic        = "i"
	tagUnderline     = "u"
	tagStrikethrough = "s"
	tagColor         = "color"
	tagFont          = "font"
	tagSize          = "size"
	tagURL           = "url"
	tagEmail         = "email"
	tagImage         = "img"
	tagQuote         = "quote"
	tagCode          = "code"
	tagList          = "list"
	tagListItem      = "*"
	tagBreak         = "br"
)

const (
	bulletGlyph    = "• "
	codeFontFamily = "Consolas"
	quoteSuffix    = " wrote:"
	mailtoScheme   = "mailto:"
)

type parser struct {
	tokens *tokenStream
	ctx    styleContext
	root   *Container
}

func newParser(tokens *tokenStream) *parser {
	return &parser{tokens: tokens, root: &Container{}}
}

func (p *parser) next() Token {
	tok := p.tokens.peek(1)
	p.tokens.consume()
	return tok
}

// attribute consumes and returns the next token if it is an attribute.
func (p *parser) attribute() (Token, bool) {
	tok := p.tokens.peek(1)
	if tok.Kind != tokenAttribute {
		return Token{}, false
	}
	p.tokens.consume()
	return tok, true
}

func (p *parser) parse() (*Container, error) {
	for {
		tok := p.next()
		switch tok.Kind {
		case tokenStartTag:
			if tok.Text == tagListItem && p.ctx.listMode {
				p.listItem()
				continue
			}
			if err := p.tag(tok.Text, true); err != nil {
				return nil, err
			}
		case tokenEndTag:
			if err := p.tag(tok.Text, false); err != nil {
				return nil, err
			}
		case tokenText:
			p.root.add(p.ctx.run(tok.Text))
		case tokenLineBreak:
			p.root.add(&LineBreak{})
		case tokenLink:
			p.link(tok.Text)
		case tokenImage:
			p.image(tok.Text)
		case tokenAttribute:
			return nil, grammarError(tok.Offset, "unexpected attribute %q", tok.Text)
		case tokenEnd:
			return p.root, nil
		default:
			return nil, grammarError(tok.Offset, "unknown token kind %s", tok.Kind)
		}
	}
}

func (p *parser) listItem() {
	if p.ctx.listItems > 0 {
		p.root.add(&LineBreak{})
	}
	p.ctx.listItems++
	bullet := p.ctx.run(bulletGlyph)
	bullet.Bullet = true
	p.root.add(bullet)
}

// link handles [url] and [email]. An explicit attribute is the target, even
// when empty. With no attribute, a text token directly followed by the
// matching close tag is both display text and target. A tag that resolves no
// target degrades to its own name as text.
func (p *parser) link(name string) {
	p.openLink(name)
	if !p.ctx.hasLink {
		text, end := p.tokens.peek(1), p.tokens.peek(2)
		if text.Kind == tokenText && end.Kind == tokenEndTag && end.Text == name {
			p.tokens.consume()
			p.tokens.consume()
			target := text.Text
			if name == tagEmail {
				target = withMailto(target)
			}
			p.root.add(&Hyperlink{Display: []Node{p.ctx.run(text.Text)}, Target: target})
			return
		}
		p.root.add(p.ctx.run(name))
		return
	}
	display := p.ctx.linkTarget
	if next := p.tokens.peek(1); next.Kind == tokenText {
		p.tokens.consume()
		display = next.Text
	}
	p.root.add(&Hyperlink{Display: []Node{p.ctx.run(display)}, Target: p.ctx.linkTarget})
}

func (p *parser) openLink(name string) {
	attr, ok := p.attribute()
	if !ok {
		p.ctx.linkTarget = ""
		p.ctx.hasLink = false
		return
	}
	target := attr.Text
	if name == tagEmail && target != "" {
		target = withMailto(target)
	}
	p.ctx.linkTarget = target
	p.ctx.hasLink = true
}

func withMailto(addr string) string {
	if len(addr) >= len(mailtoScheme) && strings.EqualFold(addr[:len(mailtoScheme)], mailtoScheme) {
		return addr
	}
	return mailtoScheme + addr
}

// image handles [img=uri,width=w,height=h]. A following text token becomes
// the caption.
func (p *parser) image(name string) {
	p.openImage()
	pending := p.ctx.image
	if pending == nil {
		p.root.add(p.ctx.run(name))
		return
	}
	img := &Image{URI: pending.uri, Width: copyFloat(pending.width), Height: copyFloat(pending.height)}
	if next := p.tokens.peek(1); next.Kind == tokenText {
		p.tokens.consume()
		img.Caption = p.ctx.run(next.Text)
	}
	p.root.add(img)
}

func (p *parser) openImage() {
	attr, ok := p.attribute()
	if !ok {
		p.ctx.image = nil
		return
	}
	fields := strings.Split(attr.Text, ",")
	uri := strings.TrimSpace(fields[0])
	if uri == "" {
		p.ctx.image = nil
		return
	}
	img := &pendingImage{uri: uri}
	for _, field := range fields[1:] {
		key, value, found := strings.Cut(field, "=")
		if !found {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			continue
		}
		switch strings.TrimSpace(key) {
		case "width":
			img.width = &n
		case "height":
			img.height = &n
		}
	}
	p.ctx.image = img
}

// tag applies the effect of an open (start) or close tag to the style context
// and, for structural tags, to the root container. Unknown names are ignored.
func (p *parser) tag(name string, start bool) error {
	ctx := &p.ctx
	switch name {
	case tagBold:
		ctx.weight = WeightUnset
		if start {
			ctx.weight = WeightBold
		}
	case tagItalic:
		ctx.slant = SlantUnset
		if start {
			ctx.slant = SlantItalic
		}
	case tagUnderline:
		ctx.decoration = DecorationNone
		if start {
			ctx.decoration = DecorationUnderline
		}
	case tagStrikethrough:
		ctx.decoration = DecorationNone
		if start {
			ctx.decoration = DecorationStrikethrough
		}
	case tagColor:
		if !start {
			ctx.foreground = nil
			break
		}
		if attr, ok := p.attribute(); ok {
			c, err := ParseColor(attr.Text)
			if err != nil {
				return grammarError(attr.Offset, "color: %v", err)
			}
			ctx.foreground = &c
		}
	case tagFont:
		if !start {
			ctx.fontFamily = ""
			break
		}
		if attr, ok := p.attribute(); ok {
			ctx.fontFamily = attr.Text
		}
	case tagSize:
		if !start {
			ctx.fontSize = nil
			break
		}
		if attr, ok := p.attribute(); ok {
			if n, err := strconv.ParseFloat(strings.TrimSpace(attr.Text), 64); err == nil {
				ctx.fontSize = &n
			}
		}
	case tagURL, tagEmail:
		if !start {
			ctx.linkTarget = ""
			ctx.hasLink = false
		}
	case tagImage:
		if !start {
			ctx.image = nil
		}
	case tagQuote:
		if !start {
			ctx.slant = SlantUnset
			ctx.foreground = nil
			p.root.add(&LineBreak{})
			break
		}
		if attr, ok := p.attribute(); ok {
			p.root.add(&LineBreak{})
			p.root.add(&Run{Text: attr.Text + quoteSuffix, Style: TextStyle{Weight: WeightBold}})
			p.root.add(&LineBreak{})
		}
		c := quoteColor
		ctx.slant = SlantItalic
		ctx.foreground = &c
	case tagCode:
		if !start {
			ctx.fontFamily = ""
			ctx.background = nil
			p.root.add(&LineBreak{})
			break
		}
		c := codeBackground
		ctx.fontFamily = codeFontFamily
		ctx.background = &c
	case tagList:
		ctx.listMode = start
		if start {
			ctx.listItems = 0
		}
		p.root.add(&LineBreak{})
	}
	return nil
}
