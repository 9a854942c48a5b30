package bbf

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/termenv"
)

var streamRendererPool = sync.Pool{
	New: func() any {
		return &StreamRenderer{}
	},
}

// RenderRequest configures Render.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Width   int
	Theme   Theme
	Options []RenderOption
}

// Render reads BBCode from Reader and writes it as ANSI text to Writer,
// wrapped at Width (0 disables wrapping). Markup that does not parse is
// rendered verbatim.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	data, err := io.ReadAll(io.LimitReader(req.Reader, MaxInputSize+1))
	if err != nil {
		return fmt.Errorf("render: read: %w", err)
	}
	if err := ValidateInput(data); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	cfg := newRenderConfig(req.Options)
	root, err := ParseOrLiteral(string(data))
	if err != nil {
		event := cfg.logger.Warn().Err(err)
		var perr *ParseError
		if errors.As(err, &perr) {
			event = event.Str("kind", perr.Kind.String()).Int("offset", perr.Offset)
		}
		event.Msg("markup rendered as literal text")
	}
	return renderDocument(req.Writer, root, req.Width, req.Theme, cfg)
}

// RenderDocument writes an already parsed document as ANSI text.
func RenderDocument(w io.Writer, root Node, width int, theme Theme, opts ...RenderOption) error {
	if w == nil {
		return fmt.Errorf("render: writer is nil")
	}
	return renderDocument(w, root, width, theme, newRenderConfig(opts))
}

func renderDocument(w io.Writer, root Node, width int, theme Theme, cfg renderConfig) error {
	stream := streamRendererPool.Get().(*StreamRenderer)
	stream.resetWithConfig(w, width, cfg)
	err := writeDocument(stream, root, theme, cfg)
	stream.Reset(io.Discard, 0)
	streamRendererPool.Put(stream)
	return err
}

// WriteDocument renders root onto any Stream and flushes it.
func WriteDocument(s Stream, root Node, theme Theme, opts ...RenderOption) error {
	if s == nil {
		return fmt.Errorf("render: stream is nil")
	}
	return writeDocument(s, root, theme, newRenderConfig(opts))
}

func writeDocument(s Stream, root Node, theme Theme, cfg renderConfig) error {
	if theme == nil {
		theme = DefaultTheme()
	}
	lip := lipgloss.NewRenderer(io.Discard)
	lip.SetColorProfile(cfg.profile)
	r := &documentRenderer{
		stream:  s,
		styles:  theme.Styles(),
		profile: cfg.profile,
		osc8:    cfg.osc8,
		lip:     lip,
	}
	if root != nil {
		if err := r.node(root); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}
	if err := s.Flush(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	cfg.logger.Debug().Str("theme", theme.Name()).Int("width", s.Width()).Msg("document rendered")
	return nil
}

type documentRenderer struct {
	stream  Stream
	styles  Styles
	profile termenv.Profile
	osc8    bool
	lip     *lipgloss.Renderer
	// afterBlock is set while the last output was a block, which already
	// ends its line.
	afterBlock bool
}

func (r *documentRenderer) node(n Node) error {
	if _, ok := n.(*Container); !ok {
		afterBlock := r.afterBlock
		r.afterBlock = false
		if _, ok := n.(*LineBreak); ok && afterBlock {
			return nil
		}
	}
	switch v := n.(type) {
	case *Container:
		for _, child := range v.Children {
			if err := r.node(child); err != nil {
				return err
			}
		}
	case *Run:
		if err := r.run(v, r.styles.Text); err != nil {
			return err
		}
		if v.Bullet {
			r.stream.SetWrapIndent(strings.Repeat(" ", ansi.PrintableRuneWidth(v.Text)))
		}
	case *LineBreak:
		return r.stream.Newline()
	case *Hyperlink:
		return r.hyperlink(v)
	case *Image:
		r.afterBlock = true
		return r.stream.WriteBlock(r.image(v))
	}
	return nil
}

func (r *documentRenderer) run(run *Run, base TextStyle) error {
	return r.stream.WriteSegment(Segment{
		Text:  run.Text,
		Style: Style{Prefix: stylePrefix(run.Style.Over(base), r.profile)},
	})
}

func (r *documentRenderer) display(nodes []Node) error {
	for _, n := range nodes {
		if run, ok := n.(*Run); ok {
			if err := r.run(run, r.styles.LinkText); err != nil {
				return err
			}
			continue
		}
		if err := r.node(n); err != nil {
			return err
		}
	}
	return nil
}

// hyperlink writes an OSC 8 link when enabled, otherwise the display text
// followed by the target in parentheses unless they are the same.
func (r *documentRenderer) hyperlink(link *Hyperlink) error {
	target := sanitizeLine(link.Target)
	if r.osc8 && target != "" {
		if err := r.stream.WriteSegment(Segment{Kind: SegmentLinkStart, LinkURL: target}); err != nil {
			return err
		}
		if err := r.display(link.Display); err != nil {
			return err
		}
		return r.stream.WriteSegment(Segment{Kind: SegmentLinkEnd})
	}
	if err := r.display(link.Display); err != nil {
		return err
	}
	text := PlainText(&Container{Children: link.Display})
	if text == link.Target || mailtoScheme+text == link.Target || target == "" {
		return nil
	}
	style := Style{Prefix: stylePrefix(r.styles.LinkURL, r.profile)}
	if err := r.stream.WriteSegment(Segment{Text: " ", Style: style}); err != nil {
		return err
	}
	return r.stream.WriteSegment(Segment{Text: "(" + target + ")", Style: style, Kind: SegmentURL})
}

// image draws a rounded box naming the image and its size, with the caption
// centered below it.
func (r *documentRenderer) image(img *Image) string {
	label := sanitizeLine(img.URI)
	if size := imageSize(img); size != "" {
		label += " " + size
	}
	if width := r.stream.Width(); width > 4 {
		label = fitURL(label, width-4)
	}
	box := r.lip.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if c := r.styles.ImageFrame.Foreground; c != nil && r.profile != termenv.Ascii {
		box = box.BorderForeground(lipgloss.Color(c.Hex()))
	}
	out := box.Render(label)
	if img.Caption == nil {
		return out
	}
	caption := sanitizeLine(img.Caption.Text)
	if caption == "" {
		return out
	}
	if prefix := stylePrefix(img.Caption.Style.Over(r.styles.Caption), r.profile); prefix != "" {
		caption = prefix + caption + ansiReset
	}
	return out + "\n" + r.lip.PlaceHorizontal(lipgloss.Width(out), lipgloss.Center, caption)
}

func imageSize(img *Image) string {
	format := func(f *float64) string {
		if f == nil {
			return "?"
		}
		return strconv.FormatFloat(*f, 'f', -1, 64)
	}
	if img.Width == nil && img.Height == nil {
		return ""
	}
	return format(img.Width) + "x" + format(img.Height)
}

// stylePrefix builds the SGR sequence for st. Font family and size have no
// terminal equivalent and are ignored.
func stylePrefix(st TextStyle, profile termenv.Profile) string {
	if profile == termenv.Ascii {
		return ""
	}
	var seqs []string
	if st.Weight == WeightBold {
		seqs = append(seqs, termenv.BoldSeq)
	}
	if st.Slant == SlantItalic {
		seqs = append(seqs, termenv.ItalicSeq)
	}
	switch st.Decoration {
	case DecorationUnderline:
		seqs = append(seqs, termenv.UnderlineSeq)
	case DecorationStrikethrough:
		seqs = append(seqs, termenv.CrossOutSeq)
	}
	if seq := colorSequence(st.Foreground, profile, false); seq != "" {
		seqs = append(seqs, seq)
	}
	if seq := colorSequence(st.Background, profile, true); seq != "" {
		seqs = append(seqs, seq)
	}
	if len(seqs) == 0 {
		return ""
	}
	return termenv.CSI + strings.Join(seqs, ";") + "m"
}

func colorSequence(c *Color, profile termenv.Profile, bg bool) string {
	if c == nil || c.A == 0 {
		return ""
	}
	tc := profile.Color(c.Hex())
	if tc == nil {
		return ""
	}
	return tc.Sequence(bg)
}
