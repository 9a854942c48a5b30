package bbf

import "strings"

// Node is one element of the inline document tree. The concrete types are
// *Run, *LineBreak, *Hyperlink, *Image and *Container.
type Node interface {
	// NodeType returns the variant name, e.g. "run" or "hyperlink".
	NodeType() string
	node()
}

// Run is a span of text with one resolved style. Bullet marks the glyph that
// starts a list item.
type Run struct {
	Text   string
	Style  TextStyle
	Bullet bool
}

// LineBreak ends the current line.
type LineBreak struct{}

// Hyperlink is a link to Target displayed as Display.
type Hyperlink struct {
	Display []Node
	Target  string
}

// Image is an image reference with optional size and caption.
type Image struct {
	URI     string
	Width   *float64
	Height  *float64
	Caption *Run
}

// Container is an ordered group of nodes. Parse returns one as the root.
type Container struct {
	Children []Node
}

func (*Run) NodeType() string       { return "run" }
func (*LineBreak) NodeType() string { return "linebreak" }
func (*Hyperlink) NodeType() string { return "hyperlink" }
func (*Image) NodeType() string     { return "image" }
func (*Container) NodeType() string { return "container" }

func (*Run) node()       {}
func (*LineBreak) node() {}
func (*Hyperlink) node() {}
func (*Image) node()     {}
func (*Container) node() {}

func (c *Container) add(n Node) {
	c.Children = append(c.Children, n)
}

// Walk calls fn for n and, depth first, for every node below it: container
// children, hyperlink display nodes and image captions. Returning false from
// fn skips the subtree.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch v := n.(type) {
	case *Container:
		for _, child := range v.Children {
			Walk(child, fn)
		}
	case *Hyperlink:
		for _, child := range v.Display {
			Walk(child, fn)
		}
	case *Image:
		if v.Caption != nil {
			Walk(v.Caption, fn)
		}
	}
}

// PlainText concatenates the text of every run below n in document order,
// writing line breaks as "\n". Styles, link targets and images without
// captions are dropped.
func PlainText(n Node) string {
	var b strings.Builder
	Walk(n, func(n Node) bool {
		switch v := n.(type) {
		case *Run:
			b.WriteString(v.Text)
		case *LineBreak:
			b.WriteByte('\n')
		}
		return true
	})
	return b.String()
}
