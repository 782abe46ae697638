package text

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// Rule is one ordered rewrite: a matcher over text spans and the producer of
// the replacement. Rules in a table run in slice order, each on the output
// of the one before.
type Rule struct {
	Name string

	// Pattern matches spans anywhere in the text. When nil the rule matches
	// whole words: maximal runs of letters, marks, digits and '_'.
	Pattern *regexp.Regexp

	// Words is the closed variant set of a word rule.
	Words []string

	// Replace is a literal, or a $1-style template for Pattern rules.
	Replace string

	// Func, when set, produces the replacement for a matched span and takes
	// precedence over Replace. A word rule calls it for every word not in
	// Words.
	Func func(span string) (string, error)
}

// Apply runs the rule over s.
func (r Rule) Apply(s string) (string, error) {
	if r.Pattern != nil {
		if r.Func == nil {
			return r.Pattern.ReplaceAllString(s, r.Replace), nil
		}
		return replaceAll(r.Pattern, s, r.Func)
	}

	return rewriteWords(s, func(w string) (string, error) {
		if slices.Contains(r.Words, w) {
			return r.Replace, nil
		}
		if r.Func != nil {
			return r.Func(w)
		}
		return w, nil
	})
}

func applyRules(rules []Rule, s string) (string, error) {
	for _, r := range rules {
		var err error
		s, err = r.Apply(s)
		if err != nil {
			return s, err
		}
	}
	return s, nil
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r)
}

// rewriteWords passes every word of s through fn and keeps the separators.
func rewriteWords(s string, fn func(string) (string, error)) (string, error) {
	var b strings.Builder
	b.Grow(len(s))

	start := -1
	flush := func(end int) error {
		if start < 0 {
			return nil
		}
		w, err := fn(s[start:end])
		if err != nil {
			return err
		}
		b.WriteString(w)
		start = -1
		return nil
	}

	for i, r := range s {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if err := flush(i); err != nil {
			return s, err
		}
		b.WriteRune(r)
	}
	if err := flush(len(s)); err != nil {
		return s, err
	}
	return b.String(), nil
}

// replaceAll is regexp.ReplaceAllStringFunc with a fallible replacement.
// The first error abandons the substitution and returns s unchanged.
func replaceAll(re *regexp.Regexp, s string, fn func(string) (string, error)) (string, error) {
	var firstErr error
	out := re.ReplaceAllStringFunc(s, func(m string) string {
		if firstErr != nil {
			return m
		}
		r, err := fn(m)
		if err != nil {
			firstErr = err
			return m
		}
		return r
	})
	if firstErr != nil {
		return s, firstErr
	}
	return out, nil
}

func variant(canonical string, variants ...string) Rule {
	return Rule{Name: canonical, Words: variants, Replace: canonical}
}

// stripSuffix drops one trailing suffix from words that are longer than it.
//
// This mirrors the informal-writing rule for diminutive "wa" and respectful
// "ji" endings. It also fires on genuine words ("hawa" becomes "ha"), which
// is a known source of false positives.
func stripSuffix(suffix string) Rule {
	return Rule{
		Name: "suffix-" + suffix,
		Func: func(w string) (string, error) {
			if len(w) > len(suffix) && strings.HasSuffix(w, suffix) {
				return strings.TrimSuffix(w, suffix), nil
			}
			return w, nil
		},
	}
}

// spellingRules canonicalises informal Hinglish spellings. Order matters.
var spellingRules = []Rule{
	variant("hai", "hai", "he", "hein"),
	variant("mein", "me", "mei", "mein"),
	variant("ko", "ko", "ku", "koo"),
	variant("aur", "aur", "or", "arr"),
	variant("nahi", "nahi", "nhi", "nahin", "nay", "naa"),
	variant("kya", "kya", "kia", "kiya"),
	variant("bahut", "bohot", "bhot", "bahut", "bohut"),
	variant("pyaar", "pyar", "pyaar", "piyar"),

	variant("karna", "karna", "krna"),
	variant("hona", "hona", "hna"),
	variant("jana", "jana", "jna"),
	variant("dena", "dena", "dna"),
	variant("lena", "lena", "lna"),

	variant("raha", "raha", "rha"),
	variant("rahi", "rahi", "rhi"),
	variant("rahe", "rahe", "rhe"),

	variant("wala", "wala", "vala", "walla"),
	variant("kar", "kar", "kr"),

	variant("accha", "acha", "accha", "achchha"),
	variant("theek", "thik", "theek", "teek", "thek"),

	variant("please", "plz", "pls", "plij"),
	variant("you", "u"),
	variant("and", "nd", "n"),

	stripSuffix("wa"),
	stripSuffix("ji"),
}

// chatRules replace chat-style number words.
var chatRules = []Rule{
	variant("to", "2"),
	variant("for", "4"),
	variant("great", "gr8", "gr8t"),
}

// informalSpellings maps a lowercase informal spelling to its canonical form
// for the code-mixed word pass.
var informalSpellings = map[string]string{
	"he":    "hai",
	"hein":  "hai",
	"hey":   "hai",
	"nhi":   "nahi",
	"nahin": "nahi",
	"nay":   "nahi",
	"naa":   "nahi",
	"kia":   "kya",
	"kiya":  "kya",
	"or":    "aur",
	"arr":   "aur",
	"bohot": "bahut",
	"bhot":  "bahut",
	"bohut": "bahut",
	"pyar":  "pyaar",
	"piyar": "pyaar",
	"krna":  "karna",
	"hna":   "hona",
	"jna":   "jana",
	"dna":   "dena",
	"lna":   "lena",
}

func abbreviation(abbr, word string) Rule {
	return Rule{
		Name:    abbr,
		Pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(abbr) + `\.`),
		Replace: word,
	}
}

// abbreviationRules expand title and organisational abbreviations that end
// with a period.
var abbreviationRules = []Rule{
	abbreviation("dr", "doctor"),
	abbreviation("mr", "mister"),
	abbreviation("mrs", "missus"),
	abbreviation("prof", "professor"),
	abbreviation("govt", "government"),
	abbreviation("pvt", "private"),
	abbreviation("sr", "senior"),
	abbreviation("jr", "junior"),
	abbreviation("dept", "department"),
	abbreviation("asst", "assistant"),
	abbreviation("eng", "engineer"),
	abbreviation("min", "minute"),
	abbreviation("sec", "second"),
	abbreviation("hrs", "hours"),
}

// symbolWords maps glyphs to spoken words, in application order.
var symbolWords = []struct {
	glyph string
	word  string
}{
	{"&", "and"},
	{"@", "at"},
	{"%", "percent"},
	{"#", "number"},
	{"$", "dollar"},
	{"₹", "rupees"},
	{"£", "pound"},
	{"°", "degree"},
	{"+", "plus"},
	{"=", "equal"},
	{"~", "approximately"},
}
