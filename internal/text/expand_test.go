package text

import (
	"errors"
	"strings"
	"testing"

	"github.com/example/go-lyric-tokenizer/internal/numeral"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"abbreviation", "Dr. Sharma ne kaha", "doctor sharma ne kaha"},
		{"abbreviations and symbols", "mr. & mrs. khanna", "mister and missus khanna"},
		{"quotes stripped", `"pyaar" & “dosti”`, "pyaar and dosti"},
		{"percent", "100% sach", "sau percent sach"},
		{"arithmetic symbols", "a+b=c", "a plus b equal c"},
		{"currency before ordinal words", "₹500 ka 3rd gaana", "paanch sau rupaye ka teesra gaana"},
		{"bare glyph", "$ aur ₹", "dollar aur rupees"},
		{"collapses whitespace", "a   b\n c", "a b c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, results := Expand(tt.input)
			if got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.input, got, tt.want)
			}

			if len(results) != 3 {
				t.Fatalf("got %d step results, want 3", len(results))
			}

			for _, r := range results {
				if !r.OK() {
					t.Errorf("step %s failed: %v", r.Step, r.Err)
				}
			}
		})
	}
}

// failNumbers replaces the numbers step with one that always fails.
func failNumbers(t *testing.T, err error) {
	t.Helper()
	saved := expansionSteps
	t.Cleanup(func() { expansionSteps = saved })

	steps := append([]expansionStep(nil), saved...)
	steps[0] = expansionStep{StepNumbers, func(string) (string, error) { return "", err }}
	expansionSteps = steps
}

func TestExpand_FailedStepKeepsPriorText(t *testing.T) {
	failNumbers(t, &numeral.FormatError{Input: "5", Reason: "rejected"})

	got, results := Expand("5 aur dr. x")

	if got != "5 aur doctor x" {
		t.Errorf("Expand = %q, want %q", got, "5 aur doctor x")
	}

	if results[0].Step != StepNumbers || results[0].OK() {
		t.Fatalf("numbers step = %+v, want failure", results[0])
	}

	var fe *numeral.FormatError
	if !errors.As(results[0].Err, &fe) {
		t.Errorf("numbers error = %v, want *numeral.FormatError", results[0].Err)
	}

	if results[0].Text != "5 aur dr. x" {
		t.Errorf("failed step text = %q, want its input", results[0].Text)
	}

	if !results[1].OK() || !results[2].OK() {
		t.Errorf("later steps should still run: %+v", results[1:])
	}
}

func TestExpand_LongAndLeadingPointNumbers(t *testing.T) {
	got, results := Expand("1 aur 12345678901234567890123 aur .5")

	for _, r := range results {
		if !r.OK() {
			t.Fatalf("step %s failed: %v", r.Step, r.Err)
		}
	}
	if strings.ContainsAny(got, "0123456789") {
		t.Fatalf("Expand = %q, want every digit spelled", got)
	}
	if !strings.HasPrefix(got, "ek aur barah crore ") {
		t.Errorf("Expand = %q, want short number spelled beside the long one", got)
	}
	if !strings.HasSuffix(got, " aur zero point paanch") {
		t.Errorf("Expand = %q, want leading point decimal spelled", got)
	}
}

func TestExpandNumbers_HindiTakesPrecedence(t *testing.T) {
	// Every digit span the English pass knows is already Hindi by the time
	// it runs.
	got, err := expandNumbers("3rd $5 3.14 1,234")
	if err != nil {
		t.Fatalf("expandNumbers: %v", err)
	}

	want := "teesra paanch dollar teen point ek char ek,do sau chautees"
	if got != want {
		t.Errorf("expandNumbers = %q, want %q", got, want)
	}
}

func TestExpandNumbers_NoDigitSurvives(t *testing.T) {
	got, err := expandNumbers("₹1234 aur 3rd aur 12 aur १२")
	if err != nil {
		t.Fatalf("expandNumbers: %v", err)
	}

	want := "ek hazaar do sau chautees rupaye aur teesra aur barah aur barah"
	if got != want {
		t.Errorf("expandNumbers = %q, want %q", got, want)
	}
}

func TestExpandCurrencies(t *testing.T) {
	got := expandCurrencies("costs $5 or 3€ or ₹2.50")
	want := "costs five dollars or three euro or two rupees fifty paise"

	if got != want {
		t.Errorf("expandCurrencies = %q, want %q", got, want)
	}
}

func TestExpandCurrencies_StopsAtFirstFailure(t *testing.T) {
	got := expandCurrencies("$1.2.3 and ₹5")
	want := "$1.2.3 and five rupees"

	if got != want {
		t.Errorf("expandCurrencies = %q, want %q", got, want)
	}
}

func TestExpandSymbols(t *testing.T) {
	got, err := expandSymbols(" 30° ~ 40 ")
	if err != nil {
		t.Fatalf("expandSymbols: %v", err)
	}

	if got != "30 degree approximately 40" {
		t.Errorf("expandSymbols = %q", got)
	}
}
