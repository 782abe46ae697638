package text

import (
	"regexp"
	"strings"

	"github.com/example/go-lyric-tokenizer/internal/numeral"
)

// Expansion step names, in pipeline order.
const (
	StepNumbers       = "numbers"
	StepAbbreviations = "abbreviations"
	StepSymbols       = "symbols"
)

// StepResult is the outcome of one best-effort expansion step. On failure
// Text holds the step's input and Err the cause.
type StepResult struct {
	Step string
	Text string
	Err  error
}

// OK reports whether the step succeeded.
func (r StepResult) OK() bool { return r.Err == nil }

func runStep(step, in string, fn func(string) (string, error)) StepResult {
	out, err := fn(in)
	if err != nil {
		return StepResult{Step: step, Text: in, Err: err}
	}
	return StepResult{Step: step, Text: out}
}

type expansionStep struct {
	name string
	fn   func(string) (string, error)
}

var expansionSteps = []expansionStep{
	{StepNumbers, expandNumbers},
	{StepAbbreviations, expandAbbreviations},
	{StepSymbols, expandSymbols},
}

var quoteReplacer = strings.NewReplacer(`"`, "", "“", "", "”", "")

// Expand lowercases s, strips quotes and then expands numbers,
// abbreviations and symbols in that order before collapsing whitespace.
// A failing step leaves the text as it was before that step and the
// remaining steps still run.
func Expand(s string) (string, []StepResult) {
	s = lower(quoteReplacer.Replace(s))

	results := make([]StepResult, 0, len(expansionSteps))
	for _, step := range expansionSteps {
		r := runStep(step.name, s, step.fn)
		results = append(results, r)
		s = r.Text
	}

	return collapseWhitespace(s), results
}

var (
	commaNumberPattern    = regexp.MustCompile(`\b\d{1,3}(,\d{3})*(\.\d+)?\b`)
	englishOrdinalPattern = regexp.MustCompile(`([0-9]+)(st|nd|rd|th|va|wa)`)
	englishDecimalPattern = regexp.MustCompile(`[0-9]+[.,][0-9]+`)
	englishNumberPattern  = regexp.MustCompile(`[0-9]+`)
)

// currencyPatterns match a glyph on either side of a digit group.
var currencyPatterns = []struct {
	code string
	re   *regexp.Regexp
}{
	{"INR", regexp.MustCompile(`(₹[0-9.,]*[0-9]+)|([0-9.,]*[0-9]+₹)`)},
	{"USD", regexp.MustCompile(`(\$[0-9.,]*[0-9]+)|([0-9.,]*[0-9]+\$)`)},
	{"GBP", regexp.MustCompile(`(£[0-9.,]*[0-9]+)|([0-9.,]*[0-9]+£)`)},
	{"EUR", regexp.MustCompile(`([0-9.,]*[0-9]+€)|(€[0-9.,]*[0-9]+)`)},
}

// expandNumbers runs the Hindi numeral engine over the whole text, then
// spells whatever digit spans remain in English: ordinals, currency amounts,
// decimals and finally bare digit runs. The Hindi engine converts every ASCII
// and Devanagari digit run, so on pipeline text the English pass is a no-op;
// it only sees digits when numeral.Expand fails.
func expandNumbers(s string) (string, error) {
	s, err := numeral.Expand(s)
	if err != nil {
		return s, err
	}

	s = commaNumberPattern.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ReplaceAll(m, ",", "")
	})

	s, err = replaceAll(englishOrdinalPattern, s, func(m string) (string, error) {
		return englishOrdinal(englishOrdinalPattern.FindStringSubmatch(m)[1])
	})
	if err != nil {
		return s, err
	}

	s = expandCurrencies(s)

	if s, err = replaceAll(englishDecimalPattern, s, englishDecimal); err != nil {
		return s, err
	}
	return replaceAll(englishNumberPattern, s, englishCardinal)
}

// expandCurrencies is best-effort on its own: the first currency that fails
// to convert stops the remaining ones, keeping what was already expanded.
func expandCurrencies(s string) string {
	for _, c := range currencyPatterns {
		out, err := replaceAll(c.re, s, func(m string) (string, error) {
			return englishCurrency(m, c.code)
		})
		if err != nil {
			return s
		}
		s = out
	}
	return s
}

func expandAbbreviations(s string) (string, error) {
	return applyRules(abbreviationRules, s)
}

func expandSymbols(s string) (string, error) {
	for _, sym := range symbolWords {
		s = strings.ReplaceAll(s, sym.glyph, " "+sym.word+" ")
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return strings.TrimSpace(s), nil
}
