package dump

import (
	"io"
	"strconv"

	"github.com/beevik/etree"
)

func newXMLDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return doc
}

func writeXML(w io.Writer, doc *etree.Document) error {
	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

func writeTokensXML(w io.Writer, tokens []TokenView) error {
	doc := newXMLDocument()
	root := doc.CreateElement("tokens")
	for _, tok := range tokens {
		el := root.CreateElement("token")
		el.CreateAttr("kind", tok.Kind)
		el.CreateAttr("offset", strconv.Itoa(tok.Offset))
		if tok.Text != "" {
			el.SetText(tok.Text)
		}
	}
	return writeXML(w, doc)
}

func writeTreeXML(w io.Writer, view NodeView) error {
	doc := newXMLDocument()
	addNodeXML(&doc.Element, view)
	return writeXML(w, doc)
}

func addNodeXML(parent *etree.Element, v NodeView) {
	el := parent.CreateElement(v.Type)
	if v.Style != nil {
		setAttr(el, "font-family", v.Style.FontFamily)
		if v.Style.FontSize != nil {
			el.CreateAttr("font-size", formatFloat(*v.Style.FontSize))
		}
		setAttr(el, "weight", v.Style.Weight)
		setAttr(el, "slant", v.Style.Slant)
		setAttr(el, "decoration", v.Style.Decoration)
		setAttr(el, "foreground", v.Style.Foreground)
		setAttr(el, "background", v.Style.Background)
	}
	setAttr(el, "target", v.Target)
	setAttr(el, "uri", v.URI)
	if v.Width != nil {
		el.CreateAttr("width", formatFloat(*v.Width))
	}
	if v.Height != nil {
		el.CreateAttr("height", formatFloat(*v.Height))
	}
	if v.Bullet {
		el.CreateAttr("bullet", "true")
	}
	if v.Type == "run" {
		el.SetText(v.Text)
	}
	if v.Caption != nil {
		caption := el.CreateElement("caption")
		addNodeXML(caption, *v.Caption)
	}
	for _, child := range v.Children {
		addNodeXML(el, child)
	}
}

func setAttr(el *etree.Element, key, value string) {
	if value != "" {
		el.CreateAttr(key, value)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
