package numeral

import "regexp"

const digitClass = `[0-9\x{0966}-\x{096F}]`

var (
	ordinalPattern  = regexp.MustCompile(digitClass + `+(?:st|nd|rd|th)`)
	currencyPattern = regexp.MustCompile(`[₹$£]\s*` + digitClass + `+(?:\.` + digitClass + `{2})?`)
	decimalPattern  = regexp.MustCompile(digitClass + `*\.` + digitClass + `+`)
	numberPattern   = regexp.MustCompile(digitClass + `+`)
)

// Expand rewrites every numeral span in text: ordinals first, then currency
// amounts, then decimals, then the remaining digit runs. Every digit run is
// converted, so nothing numeric survives a successful call. On error text is
// returned unchanged.
func Expand(text string) (string, error) {
	if text == "" {
		return text, nil
	}

	steps := []struct {
		re *regexp.Regexp
		fn func(string) (string, error)
	}{
		{ordinalPattern, Ordinal},
		{currencyPattern, func(m string) (string, error) { return Currency(m, "") }},
		{decimalPattern, Decimal},
		{numberPattern, CardinalString},
	}

	out := text
	for _, step := range steps {
		next, err := replaceAll(step.re, out, step.fn)
		if err != nil {
			return text, err
		}
		out = next
	}
	return out, nil
}

// replaceAll is regexp.ReplaceAllStringFunc with a fallible replacement.
// The first error aborts the whole substitution.
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
