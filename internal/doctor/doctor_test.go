package doctor_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/go-lyric-tokenizer/internal/doctor"
	"github.com/example/go-lyric-tokenizer/internal/testutil"
	"github.com/example/go-lyric-tokenizer/internal/tokenizer"
)

// ---------------------------------------------------------------------------
// all-pass scenario
// ---------------------------------------------------------------------------

func TestRun_AllChecksPass(t *testing.T) {
	cfg := doctor.Config{VocabPath: testutil.WriteVocab(t)}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if result.Failed() {
		t.Errorf("expected all checks to pass; failures: %v", result.Failures())
	}

	body := out.String()
	for _, want := range []string{"vocabulary load: 30 symbols", "unknown fallback: id 3", "round trip: ok"} {
		if !strings.Contains(body, want) {
			t.Errorf("output missing %q:\n%s", want, body)
		}
	}
}

// ---------------------------------------------------------------------------
// vocabulary file
// ---------------------------------------------------------------------------

func TestRun_MissingVocabularyFails(t *testing.T) {
	cfg := doctor.Config{VocabPath: "/nonexistent/vocab.json"}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure for missing vocabulary")
	}

	if !hasFailureContaining(result.Failures(), "vocabulary file") {
		t.Errorf("expected failure mentioning vocabulary file, got: %v", result.Failures())
	}

	if strings.Contains(out.String(), "round trip") {
		t.Error("later checks should not run without a vocabulary")
	}
}

func TestRun_LoadErrorFails(t *testing.T) {
	cfg := doctor.Config{
		VocabPath: "doctor_test.go", // exists
		Load: func(_, _ string) (*tokenizer.Vocabulary, error) {
			return nil, sentinelError("corrupt")
		},
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !hasFailureContaining(result.Failures(), "corrupt") {
		t.Errorf("expected load failure, got: %v", result.Failures())
	}
}

func TestRun_ExplicitFormatPassedToLoader(t *testing.T) {
	var gotFormat string

	path := testutil.WriteVocab(t)
	cfg := doctor.Config{
		VocabPath:   path,
		VocabFormat: tokenizer.FormatJSON,
		Load: func(p, format string) (*tokenizer.Vocabulary, error) {
			gotFormat = format
			return tokenizer.LoadVocabularyFormat(p, format)
		},
	}

	var out strings.Builder
	if result := doctor.Run(cfg, &out); result.Failed() {
		t.Fatalf("unexpected failures: %v", result.Failures())
	}

	if gotFormat != tokenizer.FormatJSON {
		t.Errorf("format = %q; want %q", gotFormat, tokenizer.FormatJSON)
	}
}

// ---------------------------------------------------------------------------
// reserved markers
// ---------------------------------------------------------------------------

func TestRun_MissingMarkersFail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.json")
	if err := os.WriteFile(path, []byte(`{"[hi]":0,"a":1,"<unk>":2}`), 0o600); err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	result := doctor.Run(doctor.Config{VocabPath: path}, &out)

	if !hasFailureContaining(result.Failures(), "[SPACE] [STOP]") {
		t.Errorf("expected missing marker failure, got: %v", result.Failures())
	}
}

func TestRun_CustomMarkers(t *testing.T) {
	cfg := doctor.Config{
		VocabPath: testutil.WriteVocab(t),
		Markers:   []string{"[en]"},
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !hasFailureContaining(result.Failures(), "[en]") {
		t.Errorf("expected [en] to be reported missing, got: %v", result.Failures())
	}
}

// ---------------------------------------------------------------------------
// round trip
// ---------------------------------------------------------------------------

func TestRun_RoundTripFailsOnUnknownSymbols(t *testing.T) {
	cfg := doctor.Config{
		VocabPath: testutil.WriteVocab(t),
		Sample:    "दिल",
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !hasFailureContaining(result.Failures(), "round trip") {
		t.Errorf("expected round trip failure, got: %v", result.Failures())
	}
}

// ---------------------------------------------------------------------------
// colour-coded output
// ---------------------------------------------------------------------------

func TestRun_OutputContainsPassAndFailMarkers(t *testing.T) {
	cfg := doctor.Config{
		VocabPath: testutil.WriteVocab(t),
		Markers:   []string{"[hi]", "[en]"},
	}

	var out strings.Builder
	doctor.Run(cfg, &out)

	body := out.String()
	if !strings.Contains(body, doctor.PassMark) {
		t.Errorf("output missing pass marker %q:\n%s", doctor.PassMark, body)
	}

	if !strings.Contains(body, doctor.FailMark) {
		t.Errorf("output missing fail marker %q:\n%s", doctor.FailMark, body)
	}
}

func TestResult_AddFailure(t *testing.T) {
	var r doctor.Result
	if r.Failed() {
		t.Fatal("zero Result should not be failed")
	}

	r.AddFailure("config: bad")

	if !r.Failed() || r.Failures()[0] != "config: bad" {
		t.Errorf("Failures() = %v", r.Failures())
	}
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

type sentinelError string

func (e sentinelError) Error() string { return string(e) }

func hasFailureContaining(failures []string, substr string) bool {
	substr = strings.ToLower(substr)
	for _, f := range failures {
		if strings.Contains(strings.ToLower(f), substr) {
			return true
		}
	}

	return false
}
