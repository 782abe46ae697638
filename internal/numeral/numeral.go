// Package numeral spells digit strings as romanised Hindi words using the
// Indian numbering system (hazaar, lakh, crore).
package numeral

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FormatError reports a digit span the engine cannot convert. Callers only
// pass regex-validated spans, so a FormatError indicates a defect upstream.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("numeral: %s: %q", e.Reason, e.Input)
}

// Cardinal spells n with HindiLexicon.
func Cardinal(n uint64) string {
	s, err := Spell(HindiLexicon, n)
	if err != nil {
		// HindiLexicon is complete; see TestHindiLexiconValidates.
		panic(err)
	}
	return s
}

// CardinalString spells a digit string of any length. ASCII and Devanagari
// digits are accepted; anything else is a FormatError.
func CardinalString(digits string) (string, error) {
	d, err := canonicalDigits(digits)
	if err != nil {
		return "", err
	}
	words, err := spellDigits(HindiLexicon, d)
	if err != nil {
		return "", err
	}
	return strings.Join(words, " "), nil
}

// Spell renders n with the given lexicon, most significant scale first.
func Spell(lex Lexicon, n uint64) (string, error) {
	words, err := spell(lex, n)
	if err != nil {
		return "", err
	}
	return strings.Join(words, " "), nil
}

func spell(lex Lexicon, n uint64) ([]string, error) {
	if n == 0 {
		w, err := lex.word("0")
		if err != nil {
			return nil, err
		}
		return []string{w}, nil
	}
	if w, ok := lex[strconv.FormatUint(n, 10)]; ok {
		return []string{w}, nil
	}
	return spellScaled(lex, nil, n)
}

// spellScaled appends the words for n > 0 to words, largest scale first.
// Unlike spell it never uses a direct lexicon hit for n itself, so a
// remainder of 100000 reads "ek lakh" rather than "lakh".
func spellScaled(lex Lexicon, words []string, n uint64) ([]string, error) {
	for _, s := range indianScales {
		q := n / s.value
		if q == 0 {
			continue
		}
		qw, err := spell(lex, q)
		if err != nil {
			return nil, err
		}
		sw, err := lex.word(s.key)
		if err != nil {
			return nil, err
		}
		words = append(words, qw...)
		words = append(words, sw)
		n %= s.value
	}
	if n == 0 {
		return words, nil
	}

	if w, ok := lex[strconv.FormatUint(n, 10)]; ok {
		return append(words, w), nil
	}
	tens, ones := n/10*10, n%10
	if tens > 0 {
		w, err := lex.word(strconv.FormatUint(tens, 10))
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	if ones > 0 {
		w, err := lex.word(strconv.FormatUint(ones, 10))
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, nil
}

// uint64Digits is the longest digit string that always fits in a uint64.
const uint64Digits = 19

// croreDigits is the number of digits below one crore.
const croreDigits = 7

// spellDigits spells a canonical digit string (ASCII, no leading zeros).
// Strings too long for a uint64 are split at the crore: the count of crores
// is spelled recursively and the remainder as an ordinary number, matching
// what spell produces for values that do fit.
func spellDigits(lex Lexicon, digits string) ([]string, error) {
	if len(digits) <= uint64Digits {
		n, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			return nil, &FormatError{Input: digits, Reason: "non-numeric"}
		}
		return spell(lex, n)
	}

	cut := len(digits) - croreDigits
	words, err := spellDigits(lex, digits[:cut])
	if err != nil {
		return nil, err
	}
	sw, err := lex.word(indianScales[0].key)
	if err != nil {
		return nil, err
	}
	words = append(words, sw)

	low, err := strconv.ParseUint(digits[cut:], 10, 64)
	if err != nil {
		return nil, &FormatError{Input: digits, Reason: "non-numeric"}
	}
	if low == 0 {
		return words, nil
	}
	return spellScaled(lex, words, low)
}

// Decimal spells "int.frac": the integer part as a cardinal, then PointWord
// and each fractional digit on its own. A fraction of exactly "0" is dropped
// and a missing integer part (".5") reads as zero.
func Decimal(text string) (string, error) {
	whole, frac, _ := strings.Cut(text, ".")
	if whole == "" && frac != "" {
		whole = "0"
	}
	result, err := CardinalString(whole)
	if err != nil {
		return "", err
	}
	if frac == "" || frac == "0" {
		return result, nil
	}

	words := []string{result, PointWord}
	for _, r := range frac {
		d, ok := digitValue(r)
		if !ok {
			return "", &FormatError{Input: text, Reason: "non-numeric fraction"}
		}
		w, err := HindiLexicon.word(strconv.Itoa(d))
		if err != nil {
			return "", err
		}
		words = append(words, w)
	}
	return strings.Join(words, " "), nil
}

// Currency spells an amount such as "₹1234.56". When code is empty the unit
// is taken from the glyph in the amount, falling back to DefaultCurrency.
func Currency(text, code string) (string, error) {
	amount := text
	for _, c := range currencyOrder {
		u := Currencies[c]
		if strings.Contains(amount, u.Symbol) {
			if code == "" {
				code = u.Code
			}
			amount = strings.ReplaceAll(amount, u.Symbol, "")
		}
	}
	amount = strings.Join(strings.Fields(amount), "")
	if code == "" {
		code = DefaultCurrency
	}
	unit, ok := Currencies[strings.ToUpper(code)]
	if !ok {
		return "", &FormatError{Input: code, Reason: "unknown currency"}
	}

	whole, dec, _ := strings.Cut(amount, ".")
	mainWords, err := CardinalString(whole)
	if err != nil {
		return "", err
	}
	result := mainWords + " " + unit.Main

	if dec == "" {
		return result, nil
	}
	d, err := canonicalDigits(dec)
	if err != nil {
		return "", err
	}
	if d != "0" {
		decWords, err := CardinalString(d)
		if err != nil {
			return "", err
		}
		result += " " + decWords + " " + unit.Decimal
	}
	return result, nil
}

// Ordinal spells a rank such as "22nd". Non-digit characters are ignored;
// 1..10 use OrdinalSuffixes and larger ranks append OrdinalSuffix.
func Ordinal(text string) (string, error) {
	var digits strings.Builder
	for _, r := range text {
		if d, ok := digitValue(r); ok {
			digits.WriteByte(byte('0' + d))
		}
	}
	d, err := canonicalDigits(digits.String())
	if err != nil {
		return "", &FormatError{Input: text, Reason: "no digits in ordinal"}
	}
	if w, ok := OrdinalSuffixes[d]; ok {
		return w, nil
	}
	words, err := CardinalString(d)
	if err != nil {
		return "", err
	}
	return words + OrdinalSuffix, nil
}

// digitValue maps ASCII and Devanagari digits to their value.
func digitValue(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= '०' && r <= '९':
		return int(r - '०'), true
	}
	return 0, false
}

// canonicalDigits maps s to ASCII digits without leading zeros ("0" for
// zero).
func canonicalDigits(s string) (string, error) {
	if s == "" {
		return "", &FormatError{Input: s, Reason: "empty digit string"}
	}
	var b strings.Builder
	for _, r := range s {
		d, ok := digitValue(r)
		if !ok {
			if r == utf8.RuneError {
				return "", &FormatError{Input: s, Reason: "invalid utf-8"}
			}
			return "", &FormatError{Input: s, Reason: "non-numeric"}
		}
		if d == 0 && b.Len() == 0 {
			continue
		}
		b.WriteByte(byte('0' + d))
	}
	if b.Len() == 0 {
		return "0", nil
	}
	return b.String(), nil
}
