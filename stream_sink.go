package bbf

// Stream receives styled segments from the document renderer.
type Stream interface {
	WriteSegment(Segment) error
	WriteBlock(string) error
	Newline() error
	Flush() error
	Width() int
	SetWidth(int)
	SetWrapIndent(string)
}

var _ Stream = (*StreamRenderer)(nil)
