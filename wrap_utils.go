package bbf

import (
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

const ellipsis = "…"

func truncateWithEllipsis(text string, limit int) string {
	if ansi.PrintableRuneWidth(text) <= limit {
		return text
	}
	if limit <= 0 {
		return ""
	}
	if limit == 1 {
		return ellipsis
	}
	return truncate.StringWithTail(text, uint(limit), ellipsis)
}

// fitURL drops the scheme and then truncates until url fits in limit cells.
func fitURL(url string, limit int) string {
	if ansi.PrintableRuneWidth(url) <= limit {
		return url
	}
	short := url
	if _, rest, ok := strings.Cut(url, "://"); ok {
		short = rest
	} else if rest, ok := strings.CutPrefix(url, mailtoScheme); ok {
		short = rest
	}
	return truncateWithEllipsis(short, limit)
}

// splitURLWrapper splits "(url)" style text into its brackets and the URL.
func splitURLWrapper(text string) (prefix, url, suffix string, ok bool) {
	if len(text) < 2 {
		return "", "", "", false
	}
	var want byte
	switch text[0] {
	case '(':
		want = ')'
	case '[':
		want = ']'
	case '<':
		want = '>'
	default:
		return "", "", "", false
	}
	if text[len(text)-1] != want {
		return "", "", "", false
	}
	return text[:1], text[1 : len(text)-1], text[len(text)-1:], true
}
