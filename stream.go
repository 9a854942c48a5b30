package bbf

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/muesli/reflow/ansi"
)

const ansiReset = "\x1b[0m"

// Style is a terminal style expressed as an ANSI prefix sequence.
type Style struct {
	Prefix string
}

// Segment is a piece of output text with a style applied.
type Segment struct {
	Text    string
	Style   Style
	Kind    SegmentKind
	LinkURL string
}

type segmentKind uint8

// SegmentKind is the exported alias of segmentKind.
type SegmentKind = segmentKind

const (
	segmentText segmentKind = iota
	segmentURL
	segmentLinkStart
	segmentLinkEnd
)

const (
	// SegmentText is plain styled text.
	SegmentText SegmentKind = segmentText
	// SegmentURL is a URL printed after link text; overlong URLs are shortened
	// instead of split.
	SegmentURL SegmentKind = segmentURL
	// SegmentLinkStart opens an OSC 8 hyperlink to LinkURL.
	SegmentLinkStart SegmentKind = segmentLinkStart
	// SegmentLinkEnd closes the open OSC 8 hyperlink.
	SegmentLinkEnd SegmentKind = segmentLinkEnd
)

// StreamRenderer writes styled segments to an io.Writer, wrapping at word
// boundaries when a width is set. Style prefixes are switched only when the
// style changes and are reset at every line end.
type StreamRenderer struct {
	w          io.Writer
	width      int
	osc8       bool
	softWrap   bool
	lineWidth  int
	style      string
	pending    wordBuffer
	spaces     []Segment
	wrapIndent string
	lastNL     bool
	err        error

	spacesArr [64]Segment
	atomsArr  [256]Segment
}

// NewStreamRenderer creates a stream renderer writing to w.
func NewStreamRenderer(w io.Writer, width int, opts ...RenderOption) *StreamRenderer {
	cfg := newRenderConfig(opts)
	s := &StreamRenderer{}
	s.resetWithConfig(w, width, cfg)
	return s
}

// Reset clears stream state for reuse with a new writer or width.
func (s *StreamRenderer) Reset(w io.Writer, width int) {
	cfg := renderConfig{osc8: s.osc8, softWrap: s.softWrap}
	s.resetWithConfig(w, width, cfg)
}

func (s *StreamRenderer) resetWithConfig(w io.Writer, width int, cfg renderConfig) {
	s.w = w
	s.width = width
	s.osc8 = cfg.osc8
	s.softWrap = cfg.softWrap
	s.lineWidth = 0
	s.style = ""
	s.pending.atoms = s.atomsArr[:0]
	s.pending.reset()
	s.spaces = s.spacesArr[:0]
	s.wrapIndent = ""
	s.lastNL = true
	s.err = nil
}

// Width returns the configured wrap width.
func (s *StreamRenderer) Width() int {
	return s.width
}

// SetWidth updates the wrap width.
func (s *StreamRenderer) SetWidth(width int) {
	s.width = width
}

// SetWrapIndent sets the indentation written after a soft wrap until the
// next hard line break.
func (s *StreamRenderer) SetWrapIndent(indent string) {
	s.wrapIndent = indent
}

// WriteSegment writes one segment. Newlines in Text end the line.
func (s *StreamRenderer) WriteSegment(seg Segment) error {
	if seg.Kind == segmentLinkStart || seg.Kind == segmentLinkEnd {
		return s.writeLink(seg)
	}
	for i := 0; i < len(seg.Text); {
		r, size := utf8.DecodeRuneInString(seg.Text[i:])
		part := seg.Text[i : i+size]
		i += size
		switch {
		case r == utf8.RuneError && size == 1:
			continue
		case r == '\r':
			continue
		case r == '\n':
			s.flushWord()
			s.spaces = s.spaces[:0]
			s.newline(true)
		case r == ' ' || r == '\t':
			s.flushWord()
			if s.lineWidth == 0 && s.wrapIndent == "" {
				s.emit(part, seg.Style)
				continue
			}
			s.spaces = append(s.spaces, Segment{Text: part, Style: seg.Style})
		case isControlRune(r):
			continue
		default:
			s.pending.append(Segment{Text: part, Style: seg.Style, Kind: seg.Kind})
		}
	}
	return s.err
}

// WriteBlock writes pre-rendered lines on their own, starting a new line
// first when the current one is not empty.
func (s *StreamRenderer) WriteBlock(block string) error {
	s.flushWord()
	s.spaces = s.spaces[:0]
	if s.lineWidth > 0 {
		s.newline(true)
	}
	s.resetStyle()
	for _, line := range strings.Split(strings.TrimRight(block, "\n"), "\n") {
		s.write(line)
		s.lineWidth = ansi.PrintableRuneWidth(line)
		s.newline(true)
	}
	return s.err
}

// Newline ends the current line.
func (s *StreamRenderer) Newline() error {
	s.flushWord()
	s.spaces = s.spaces[:0]
	s.newline(true)
	return s.err
}

// Flush writes buffered text, resets the style and terminates the last line.
func (s *StreamRenderer) Flush() error {
	s.flushWord()
	if len(s.spaces) > 0 {
		s.emitSegments(s.spaces)
		s.spaces = s.spaces[:0]
	}
	s.resetStyle()
	if !s.lastNL {
		s.write("\n")
		s.lastNL = true
	}
	return s.err
}

type wordBuffer struct {
	atoms  []Segment
	width  int
	hasURL bool
	style  Style
}

func (b *wordBuffer) reset() {
	b.atoms = b.atoms[:0]
	b.width = 0
	b.hasURL = false
	b.style = Style{}
}

func (b *wordBuffer) append(seg Segment) {
	if len(b.atoms) == 0 {
		b.style = seg.Style
	}
	if seg.Kind == segmentURL {
		b.hasURL = true
	}
	b.atoms = append(b.atoms, seg)
	b.width += ansi.PrintableRuneWidth(seg.Text)
}

func (b *wordBuffer) text() string {
	var sb strings.Builder
	for _, a := range b.atoms {
		sb.WriteString(a.Text)
	}
	return sb.String()
}

func (s *StreamRenderer) writeLink(seg Segment) error {
	s.flushWord()
	if len(s.spaces) > 0 {
		s.emitSegments(s.spaces)
		s.spaces = s.spaces[:0]
	}
	if !s.osc8 {
		return s.err
	}
	if seg.Kind == segmentLinkStart {
		if target := sanitizeLine(seg.LinkURL); target != "" {
			s.write(osc8Start + target + "\x1b\\")
		}
		return s.err
	}
	s.write(osc8End)
	return s.err
}

func (s *StreamRenderer) flushWord() {
	if len(s.pending.atoms) == 0 {
		return
	}
	wordWidth := s.pending.width
	spacesWidth := 0
	for _, sp := range s.spaces {
		spacesWidth += ansi.PrintableRuneWidth(sp.Text)
	}
	if s.width > 0 && s.lineWidth > 0 && s.lineWidth+spacesWidth+wordWidth > s.width {
		if s.lineWidth > ansi.PrintableRuneWidth(s.wrapIndent) {
			s.wrapNewline()
			s.spaces = s.spaces[:0]
		}
	}
	if len(s.spaces) > 0 {
		s.emitSegments(s.spaces)
		s.spaces = s.spaces[:0]
	}
	switch {
	case s.width > 0 && s.pending.hasURL && s.lineWidth+wordWidth > s.width:
		s.emitURL(s.pending.text(), s.pending.style)
	case s.width > 0 && s.softWrap && s.lineWidth+wordWidth > s.width:
		s.emitSplit()
	default:
		s.emitSegments(s.pending.atoms)
	}
	s.pending.reset()
}

// emitURL shortens an overlong URL word to the space left on the line.
func (s *StreamRenderer) emitURL(text string, style Style) {
	limit := s.width - s.lineWidth
	if prefix, url, suffix, ok := splitURLWrapper(text); ok {
		available := limit - ansi.PrintableRuneWidth(prefix) - ansi.PrintableRuneWidth(suffix)
		if available > 0 {
			s.emit(prefix+fitURL(url, available)+suffix, style)
			return
		}
	}
	s.emit(fitURL(text, limit), style)
}

// emitSplit breaks an overlong word across lines, rune by rune.
func (s *StreamRenderer) emitSplit() {
	for _, a := range s.pending.atoms {
		w := ansi.PrintableRuneWidth(a.Text)
		if s.lineWidth > 0 && s.lineWidth+w > s.width {
			s.wrapNewline()
		}
		s.emit(a.Text, a.Style)
	}
}

func (s *StreamRenderer) emitSegments(segs []Segment) {
	for _, seg := range segs {
		s.emit(seg.Text, seg.Style)
	}
}

func (s *StreamRenderer) emit(text string, style Style) {
	if text == "" {
		return
	}
	if style.Prefix != s.style {
		s.resetStyle()
		s.style = style.Prefix
		if s.style != "" {
			s.write(s.style)
		}
	}
	s.write(text)
	s.lineWidth += ansi.PrintableRuneWidth(text)
	s.lastNL = false
}

func (s *StreamRenderer) wrapNewline() {
	s.newline(false)
	if s.wrapIndent != "" {
		s.write(s.wrapIndent)
		s.lineWidth = ansi.PrintableRuneWidth(s.wrapIndent)
	}
}

// newline ends the line. A hard newline also clears the wrap indent.
func (s *StreamRenderer) newline(hard bool) {
	s.resetStyle()
	s.write("\n")
	s.lineWidth = 0
	s.lastNL = true
	if hard {
		s.wrapIndent = ""
	}
}

func (s *StreamRenderer) resetStyle() {
	if s.style != "" {
		s.write(ansiReset)
		s.style = ""
	}
}

func (s *StreamRenderer) write(text string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, text)
}
