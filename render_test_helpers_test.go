package bbf

import (
	"bytes"
	"os"
	"regexp"
	"testing"

	"github.com/muesli/termenv"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m|\x1b\]8;;[^\x1b]*\x1b\\`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func renderString(t *testing.T, src string, width int, opts ...RenderOption) string {
	t.Helper()
	var out bytes.Buffer
	err := Render(RenderRequest{
		Reader:  bytes.NewReader([]byte(src)),
		Writer:  &out,
		Width:   width,
		Theme:   DefaultTheme(),
		Options: opts,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out.String()
}

// renderPlain renders without any escape sequences.
func renderPlain(t *testing.T, src string, width int) string {
	t.Helper()
	return renderString(t, src, width, WithColorProfile(termenv.Ascii), WithOSC8(false))
}

func readForum(t testing.TB) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/forum.bbcode")
	if err != nil {
		t.Fatalf("read forum.bbcode: %v", err)
	}
	return data
}
