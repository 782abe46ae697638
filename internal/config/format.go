package config

import (
	"fmt"
	"strings"
)

const (
	FormatAuto          = "auto"
	FormatJSON          = "json"
	FormatSentencePiece = "sentencepiece"
)

func NormalizeVocabFormat(raw string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(raw))
	if format == "" {
		format = FormatAuto
	}
	switch format {
	case FormatAuto, FormatJSON, FormatSentencePiece:
		return format, nil
	case "spm", "model":
		return FormatSentencePiece, nil
	default:
		return "", fmt.Errorf(
			"invalid vocab format %q (expected %s|%s|%s|spm)",
			raw,
			FormatAuto,
			FormatJSON,
			FormatSentencePiece,
		)
	}
}
