package text

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	ntw "moul.io/number-to-words"
)

// The English expander handles digit spans the Hindi numeral engine leaves
// behind.

var englishDigits = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
}

var irregularOrdinals = map[string]string{
	"one":    "first",
	"two":    "second",
	"three":  "third",
	"five":   "fifth",
	"eight":  "eighth",
	"nine":   "ninth",
	"twelve": "twelfth",
}

type englishUnit struct {
	main, mains string
	sub, subs   string
}

var englishCurrencies = map[string]englishUnit{
	"INR": {"rupee", "rupees", "paisa", "paise"},
	"USD": {"dollar", "dollars", "cent", "cents"},
	"GBP": {"pound", "pounds", "penny", "pence"},
	"EUR": {"euro", "euro", "cent", "cents"},
}

func englishCardinal(digits string) (string, error) {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return "", fmt.Errorf("english cardinal %q: %w", digits, err)
	}
	return ntw.IntegerToEnUs(n), nil
}

// englishOrdinal turns the last word of the cardinal into its ordinal form:
// "twenty-two" becomes "twenty-second".
func englishOrdinal(digits string) (string, error) {
	cardinal, err := englishCardinal(digits)
	if err != nil {
		return "", err
	}

	cut := strings.LastIndexAny(cardinal, " -") + 1
	head, last := cardinal[:cut], cardinal[cut:]
	switch {
	case irregularOrdinals[last] != "":
		last = irregularOrdinals[last]
	case strings.HasSuffix(last, "y"):
		last = strings.TrimSuffix(last, "y") + "ieth"
	default:
		last += "th"
	}
	return head + last, nil
}

// englishDecimal reads the fraction digit by digit: "3.14" is
// "three point one four".
func englishDecimal(amount string) (string, error) {
	whole, frac, _ := strings.Cut(strings.ReplaceAll(amount, ",", "."), ".")
	words, err := englishCardinal(whole)
	if err != nil {
		return "", err
	}

	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		frac = "0"
	}
	parts := []string{words, "point"}
	for _, r := range frac {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("english decimal %q: non-digit fraction", amount)
		}
		parts = append(parts, englishDigits[r-'0'])
	}
	return strings.Join(parts, " "), nil
}

// englishCurrency spells an amount in the named currency. Whole amounts
// omit the fractional unit.
func englishCurrency(span, code string) (string, error) {
	unit, ok := englishCurrencies[code]
	if !ok {
		return "", fmt.Errorf("english currency: unknown code %q", code)
	}

	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, strings.ReplaceAll(span, ",", "."))
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return "", fmt.Errorf("english currency %q: %w", span, err)
	}

	whole := math.Floor(amount)
	sub := int(math.Round((amount - whole) * 100))
	if sub == 100 {
		whole, sub = whole+1, 0
	}
	if whole > math.MaxInt32 {
		return "", fmt.Errorf("english currency %q: amount out of range", span)
	}

	n := int(whole)
	words := ntw.IntegerToEnUs(n) + " " + plural(n, unit.main, unit.mains)
	if sub > 0 {
		words += " " + ntw.IntegerToEnUs(sub) + " " + plural(sub, unit.sub, unit.subs)
	}
	return words, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
