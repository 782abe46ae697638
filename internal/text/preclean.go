package text

import (
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// punctuationReplacer turns hyphens and ideographic spaces into spaces and
// deletes sentence punctuation, including full-width forms.
var punctuationReplacer = strings.NewReplacer(
	"-", " ",
	"\u3000", " ",
	",", "",
	".", "",
	"，", "",
	"。", "",
	"!", "",
	"！", "",
	"?", "",
	"？", "",
	"…", "",
	";", "",
	"；", "",
	":", "",
	"：", "",
)

// emoticons is the Unicode Emoticons block.
var emoticons = &unicode.RangeTable{
	R32: []unicode.Range32{{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1}},
}

// PreClean strips punctuation, emoticons and redundant whitespace, lowercases
// the text and canonicalises informal Hinglish spellings.
func PreClean(s string) string {
	s = punctuationReplacer.Replace(s)
	s, _, _ = transform.String(runes.Remove(runes.In(emoticons)), s)
	s = collapseWhitespace(s)
	s = lower(s)

	// Word rules never fail.
	s, _ = applyRules(spellingRules, s)
	s = collapseRepeats(s)
	s, _ = applyRules(chatRules, s)

	return s
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// collapseWhitespace replaces every whitespace run with one space and trims
// both ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// repeatedRune matches a rune followed by at least two copies of itself.
var repeatedRune = regexp2.MustCompile(`(.)\1{2,}`, regexp2.None)

// collapseRepeats shortens runs of three or more identical runes to two, so
// "heyyyy" becomes "heyy".
func collapseRepeats(s string) string {
	out, err := repeatedRune.Replace(s, "$1$1", -1, -1)
	if err != nil {
		return s
	}
	return out
}
