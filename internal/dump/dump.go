// Package dump writes BBCode token lists and document trees in text, JSON,
// YAML or XML form for inspection.
package dump

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
	"pkt.systems/bbf"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXML  Format = "xml"
)

// Formats lists the supported formats.
func Formats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML), string(FormatXML)}
}

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML, FormatXML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want %s)", s, strings.Join(Formats(), "|"))
}

// TokenView is the encoded form of a token.
type TokenView struct {
	Kind   string `json:"kind" yaml:"kind"`
	Text   string `json:"text,omitempty" yaml:"text,omitempty"`
	Offset int    `json:"offset" yaml:"offset"`
}

// StyleView is the encoded form of a TextStyle. Unset attributes are omitted.
type StyleView struct {
	FontFamily string   `json:"font_family,omitempty" yaml:"font_family,omitempty"`
	FontSize   *float64 `json:"font_size,omitempty" yaml:"font_size,omitempty"`
	Weight     string   `json:"weight,omitempty" yaml:"weight,omitempty"`
	Slant      string   `json:"slant,omitempty" yaml:"slant,omitempty"`
	Decoration string   `json:"decoration,omitempty" yaml:"decoration,omitempty"`
	Foreground string   `json:"foreground,omitempty" yaml:"foreground,omitempty"`
	Background string   `json:"background,omitempty" yaml:"background,omitempty"`
}

// NodeView is the encoded form of a document node.
type NodeView struct {
	Type     string     `json:"type" yaml:"type"`
	Text     string     `json:"text,omitempty" yaml:"text,omitempty"`
	Style    *StyleView `json:"style,omitempty" yaml:"style,omitempty"`
	Bullet   bool       `json:"bullet,omitempty" yaml:"bullet,omitempty"`
	Target   string     `json:"target,omitempty" yaml:"target,omitempty"`
	URI      string     `json:"uri,omitempty" yaml:"uri,omitempty"`
	Width    *float64   `json:"width,omitempty" yaml:"width,omitempty"`
	Height   *float64   `json:"height,omitempty" yaml:"height,omitempty"`
	Caption  *NodeView  `json:"caption,omitempty" yaml:"caption,omitempty"`
	Children []NodeView `json:"children,omitempty" yaml:"children,omitempty"`
}

// Tokens converts tokens to their encoded form.
func Tokens(tokens []bbf.Token) []TokenView {
	out := make([]TokenView, len(tokens))
	for i, tok := range tokens {
		out[i] = TokenView{Kind: tok.Kind.String(), Text: tok.Text, Offset: tok.Offset}
	}
	return out
}

// Style converts a style; it returns nil for an unstyled run.
func Style(s bbf.TextStyle) *StyleView {
	if s.IsZero() {
		return nil
	}
	v := &StyleView{
		FontFamily: s.FontFamily,
		FontSize:   s.FontSize,
		Weight:     s.Weight.String(),
		Slant:      s.Slant.String(),
		Decoration: s.Decoration.String(),
	}
	if s.Foreground != nil {
		v.Foreground = s.Foreground.String()
	}
	if s.Background != nil {
		v.Background = s.Background.String()
	}
	return v
}

// Tree converts a document node and everything below it.
func Tree(n bbf.Node) NodeView {
	v := NodeView{Type: n.NodeType()}
	switch n := n.(type) {
	case *bbf.Run:
		v.Text = n.Text
		v.Style = Style(n.Style)
		v.Bullet = n.Bullet
	case *bbf.Hyperlink:
		v.Target = n.Target
		v.Children = views(n.Display)
	case *bbf.Image:
		v.URI = n.URI
		v.Width = n.Width
		v.Height = n.Height
		if n.Caption != nil {
			caption := Tree(n.Caption)
			v.Caption = &caption
		}
	case *bbf.Container:
		v.Children = views(n.Children)
	}
	return v
}

func views(nodes []bbf.Node) []NodeView {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]NodeView, len(nodes))
	for i, n := range nodes {
		out[i] = Tree(n)
	}
	return out
}

// WriteTokens writes tokens to w in the given format.
func WriteTokens(w io.Writer, tokens []bbf.Token, format Format) error {
	views := Tokens(tokens)
	switch format {
	case FormatJSON:
		return writeJSON(w, views)
	case FormatYAML:
		return writeYAML(w, views)
	case FormatXML:
		return writeTokensXML(w, views)
	}
	for _, v := range views {
		if _, err := fmt.Fprintf(w, "%5d  %-9s  %q\n", v.Offset, v.Kind, v.Text); err != nil {
			return err
		}
	}
	return nil
}

// WriteTree writes the document rooted at root to w in the given format.
func WriteTree(w io.Writer, root bbf.Node, format Format) error {
	view := Tree(root)
	switch format {
	case FormatJSON:
		return writeJSON(w, view)
	case FormatYAML:
		return writeYAML(w, view)
	case FormatXML:
		return writeTreeXML(w, view)
	}
	return writeTreeText(w, view, 0)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeTreeText(w io.Writer, v NodeView, depth int) error {
	if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), describe(v)); err != nil {
		return err
	}
	if v.Caption != nil {
		if err := writeTreeText(w, *v.Caption, depth+1); err != nil {
			return err
		}
	}
	for _, child := range v.Children {
		if err := writeTreeText(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// describe renders one node as a single line, e.g. `run "x" weight=bold`.
func describe(v NodeView) string {
	var b strings.Builder
	b.WriteString(v.Type)
	switch v.Type {
	case "run":
		fmt.Fprintf(&b, " %q", v.Text)
		if v.Bullet {
			b.WriteString(" bullet")
		}
		for _, attr := range styleAttrs(v.Style) {
			b.WriteByte(' ')
			b.WriteString(attr)
		}
	case "hyperlink":
		b.WriteString(" -> ")
		b.WriteString(v.Target)
	case "image":
		b.WriteByte(' ')
		b.WriteString(v.URI)
		if v.Width != nil {
			fmt.Fprintf(&b, " width=%g", *v.Width)
		}
		if v.Height != nil {
			fmt.Fprintf(&b, " height=%g", *v.Height)
		}
	}
	return b.String()
}

func styleAttrs(s *StyleView) []string {
	if s == nil {
		return nil
	}
	attrs := map[string]string{
		"font":       s.FontFamily,
		"weight":     s.Weight,
		"slant":      s.Slant,
		"decoration": s.Decoration,
		"fg":         s.Foreground,
		"bg":         s.Background,
	}
	if s.FontSize != nil {
		attrs["size"] = fmt.Sprintf("%g", *s.FontSize)
	}
	out := make([]string, 0, len(attrs))
	for k, v := range attrs {
		if v != "" {
			out = append(out, k+"="+v)
		}
	}
	sort.Strings(out)
	return out
}
