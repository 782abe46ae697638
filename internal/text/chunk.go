package text

import (
	"strings"
	"unicode/utf8"
)

// DefaultSplitLength is the chunk size, in characters, used when long lyrics
// are encoded piecewise.
const DefaultSplitLength = 250

// SplitSentences splits text into chunks of at most maxChars characters.
// Text shorter than maxChars (or any text when maxChars <= 0) is returned as
// one chunk. Otherwise sentences and lyric lines are packed greedily, and a
// sentence longer than maxChars is wrapped at word boundaries.
func SplitSentences(text string, maxChars int) []string {
	if maxChars <= 0 || utf8.RuneCountInString(text) < maxChars {
		return []string{strings.TrimLeft(text, " \t\n\r")}
	}

	var chunks []string
	current := ""

	for _, s := range splitSentences(text) {
		n := utf8.RuneCountInString(s)
		switch {
		case current == "":
			if n > maxChars {
				chunks = append(chunks, wrapWords(s, maxChars)...)
				continue
			}
			current = s
		case utf8.RuneCountInString(current)+1+n <= maxChars:
			current += " " + s
		case n > maxChars:
			chunks = append(chunks, current)
			current = ""
			chunks = append(chunks, wrapWords(s, maxChars)...)
		default:
			chunks = append(chunks, current)
			current = s
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}

	return chunks
}

// splitSentences splits text on sentence-ending punctuation (., !, ?, ।)
// and line breaks, keeping the terminator attached to its sentence.
// Empty segments are dropped.
func splitSentences(text string) []string {
	var sentences []string
	start := 0

	for i, r := range text {
		if r == '.' || r == '!' || r == '?' || r == '।' || r == '\n' {
			s := strings.TrimSpace(text[start : i+utf8.RuneLen(r)])
			if s != "" {
				sentences = append(sentences, s)
			}
			start = i + utf8.RuneLen(r)
		}
	}

	// Trailing text after the last terminator (if any).
	if start < len(text) {
		s := strings.TrimSpace(text[start:])
		if s != "" {
			sentences = append(sentences, s)
		}
	}

	return sentences
}

// wrapWords breaks s into lines of at most width characters. A single word
// longer than width is cut.
func wrapWords(s string, width int) []string {
	var lines []string
	line := ""

	for _, w := range strings.Fields(s) {
		for utf8.RuneCountInString(w) > width {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			r := []rune(w)
			lines = append(lines, string(r[:width]))
			w = string(r[width:])
		}
		switch {
		case w == "":
		case line == "":
			line = w
		case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(w) <= width:
			line += " " + w
		default:
			lines = append(lines, line)
			line = w
		}
	}
	if line != "" {
		lines = append(lines, line)
	}

	return lines
}
