// Package doctor provides preflight checks for a lyrictok installation.
package doctor

import (
	"fmt"
	"io"
	"os"

	"github.com/example/go-lyric-tokenizer/internal/tokenizer"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// DefaultSample is encoded and decoded by the round-trip check when
// Config.Sample is empty.
const DefaultSample = "Main tumse bohot pyar karta hu 22nd time"

// LoadFunc loads a vocabulary file in the given format.
type LoadFunc func(path, format string) (*tokenizer.Vocabulary, error)

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// VocabPath is the vocabulary file to verify.
	VocabPath string
	// VocabFormat is passed to Load. Empty means auto detection.
	VocabFormat string
	// Load reads the vocabulary. Defaults to tokenizer.LoadVocabularyFormat.
	Load LoadFunc
	// Markers must all be present in the vocabulary. Defaults to the
	// language, space and stop markers.
	Markers []string
	// Sample is the lyric used for the round-trip check.
	Sample string
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark. Checks that need a
// loaded vocabulary are skipped when loading fails.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	if cfg.Load == nil {
		cfg.Load = tokenizer.LoadVocabularyFormat
	}
	if cfg.Markers == nil {
		cfg.Markers = []string{tokenizer.LanguageMarker, tokenizer.SpaceMarker, tokenizer.StopMarker}
	}
	if cfg.Sample == "" {
		cfg.Sample = DefaultSample
	}

	// ---- vocabulary file --------------------------------------------------
	if _, err := os.Stat(cfg.VocabPath); err != nil {
		res.fail(fmt.Sprintf("vocabulary file %q: %v", cfg.VocabPath, err))
		fmt.Fprintf(w, "%s vocabulary file %s: not found\n", FailMark, cfg.VocabPath)
		return res
	}
	fmt.Fprintf(w, "%s vocabulary file: %s\n", PassMark, cfg.VocabPath)

	// ---- vocabulary load --------------------------------------------------
	vocab, err := cfg.Load(cfg.VocabPath, cfg.VocabFormat)
	if err != nil {
		res.fail(fmt.Sprintf("vocabulary load: %v", err))
		fmt.Fprintf(w, "%s vocabulary load: %v\n", FailMark, err)
		return res
	}
	fmt.Fprintf(w, "%s vocabulary load: %d symbols, %d ids\n", PassMark, vocab.Size(), vocab.NumberTokens())

	// ---- reserved markers -------------------------------------------------
	if missing := missingMarkers(vocab, cfg.Markers); len(missing) > 0 {
		res.fail(fmt.Sprintf("reserved markers missing: %v", missing))
		fmt.Fprintf(w, "%s reserved markers: missing %v\n", FailMark, missing)
	} else {
		fmt.Fprintf(w, "%s reserved markers: %v\n", PassMark, cfg.Markers)
	}

	// ---- unknown fallback -------------------------------------------------
	if id, ok := vocab.Unknown(); ok {
		fmt.Fprintf(w, "%s unknown fallback: id %d\n", PassMark, id)
	} else {
		fmt.Fprintf(w, "%s unknown fallback: none (uncovered symbols fail to encode)\n", PassMark)
	}

	// ---- round trip -------------------------------------------------------
	if err := roundTrip(tokenizer.NewCodecFromVocabulary(vocab), cfg.Sample); err != nil {
		res.fail(fmt.Sprintf("round trip: %v", err))
		fmt.Fprintf(w, "%s round trip: %v\n", FailMark, err)
	} else {
		fmt.Fprintf(w, "%s round trip: ok\n", PassMark)
	}

	return res
}

func missingMarkers(v *tokenizer.Vocabulary, markers []string) []string {
	var missing []string
	for _, m := range markers {
		if _, ok := v.ID(m); !ok {
			missing = append(missing, m)
		}
	}
	return missing
}

// roundTrip encodes sample and checks that decoding gives back the language
// marker followed by the canonical text.
func roundTrip(c *tokenizer.Codec, sample string) error {
	canonical := c.Canonicalize(sample)

	ids, err := c.EncodeCanonical(canonical)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	got, err := c.Decode(ids)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if want := tokenizer.LanguageMarker + canonical; got != want {
		return fmt.Errorf("decoded %q, want %q", got, want)
	}
	return nil
}
