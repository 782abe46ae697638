package text

import "testing"

func TestEnglishCardinal(t *testing.T) {
	tests := map[string]string{
		"5":  "five",
		"42": "forty-two",
	}

	for in, want := range tests {
		got, err := englishCardinal(in)
		if err != nil {
			t.Fatalf("englishCardinal(%q): %v", in, err)
		}

		if got != want {
			t.Errorf("englishCardinal(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := englishCardinal("99999999999999999999999"); err == nil {
		t.Error("expected overflow error")
	}
}

func TestEnglishOrdinal(t *testing.T) {
	tests := map[string]string{
		"1":  "first",
		"2":  "second",
		"3":  "third",
		"4":  "fourth",
		"5":  "fifth",
		"8":  "eighth",
		"12": "twelfth",
		"20": "twentieth",
		"21": "twenty-first",
		"22": "twenty-second",
	}

	for in, want := range tests {
		got, err := englishOrdinal(in)
		if err != nil {
			t.Fatalf("englishOrdinal(%q): %v", in, err)
		}

		if got != want {
			t.Errorf("englishOrdinal(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEnglishDecimal(t *testing.T) {
	tests := map[string]string{
		"3.14":  "three point one four",
		"12,50": "twelve point five",
		"7.00":  "seven point zero",
	}

	for in, want := range tests {
		got, err := englishDecimal(in)
		if err != nil {
			t.Fatalf("englishDecimal(%q): %v", in, err)
		}

		if got != want {
			t.Errorf("englishDecimal(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEnglishCurrency(t *testing.T) {
	tests := []struct {
		span string
		code string
		want string
	}{
		{"$12.50", "USD", "twelve dollars fifty cents"},
		{"₹1", "INR", "one rupee"},
		{"5€", "EUR", "five euro"},
		{"£2.01", "GBP", "two pounds one penny"},
		{"$3.999", "USD", "four dollars"},
	}

	for _, tt := range tests {
		got, err := englishCurrency(tt.span, tt.code)
		if err != nil {
			t.Fatalf("englishCurrency(%q): %v", tt.span, err)
		}

		if got != tt.want {
			t.Errorf("englishCurrency(%q, %s) = %q, want %q", tt.span, tt.code, got, tt.want)
		}
	}

	for _, span := range []string{"$", "$1.2.3"} {
		if _, err := englishCurrency(span, "USD"); err == nil {
			t.Errorf("englishCurrency(%q) expected error", span)
		}
	}

	if _, err := englishCurrency("¥5", "JPY"); err == nil {
		t.Error("expected unknown currency error")
	}
}
