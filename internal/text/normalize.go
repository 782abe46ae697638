package text

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrEmptyText is returned when the input text is empty or whitespace-only.
var ErrEmptyText = errors.New("text is empty")

// Normalize checks raw lyric input before it enters the pipeline.
// It composes the text to NFC, drops a leading byte-order mark, folds CRLF
// and bare CR line breaks to LF, trims surrounding whitespace and rejects
// empty input.
func Normalize(s string) (string, error) {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = norm.NFC.String(strings.TrimSpace(s))

	if s == "" {
		return "", ErrEmptyText
	}

	return s, nil
}
