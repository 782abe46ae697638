// Package bench measures lyric tokenization latency for the bench command.
package bench

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime/pprof"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/example/go-lyric-tokenizer/internal/text"
)

// Encoder maps canonical text to ids. It is satisfied by *tokenizer.Codec.
type Encoder interface {
	EncodeCanonical(canonical string) ([]int64, error)
}

// ---------------------------------------------------------------------------
// Run result and stats
// ---------------------------------------------------------------------------

// StageTimings splits one run into its pipeline stages.
type StageTimings struct {
	PreClean  time.Duration
	CodeMixed time.Duration
	Expand    time.Duration
	Encode    time.Duration
}

// Total is the sum of all stages.
func (s StageTimings) Total() time.Duration {
	return s.PreClean + s.CodeMixed + s.Expand + s.Encode
}

// RunResult holds the timing and size metadata for a single encode run.
type RunResult struct {
	Index      int
	Cold       bool // true for the first run (cold-start)
	Duration   time.Duration
	Stages     StageTimings
	Runes      int
	Tokens     int
	Skipped    int     // expansion steps that failed and were skipped
	Throughput float64 // input runes per second
}

// Stats holds aggregate timing statistics across all runs.
type Stats struct {
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// ComputeStats calculates min, max and mean over a slice of durations.
func ComputeStats(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}
	mn, mx := durations[0], durations[0]
	var sum time.Duration
	for _, d := range durations {
		mn = min(mn, d)
		mx = max(mx, d)
		sum += d
	}
	return Stats{
		Min:  mn,
		Max:  mx,
		Mean: sum / time.Duration(len(durations)),
	}
}

// Durations returns the wall time of every run.
func Durations(runs []RunResult) []time.Duration {
	out := make([]time.Duration, len(runs))
	for i, r := range runs {
		out[i] = r.Duration
	}
	return out
}

// ---------------------------------------------------------------------------
// Throughput helpers
// ---------------------------------------------------------------------------

// CalcThroughput returns runes processed per second.
// Returns 0 if d is zero to avoid division by zero.
func CalcThroughput(runes int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(runes) / d.Seconds()
}

// MeanThroughput averages the throughput of all runs.
func MeanThroughput(runs []RunResult) float64 {
	if len(runs) == 0 {
		return 0
	}
	var total float64
	for _, r := range runs {
		total += r.Throughput
	}
	return total / float64(len(runs))
}

// CheckThroughputThreshold returns an error if mean falls below threshold.
// A threshold of 0 disables the gate.
func CheckThroughputThreshold(mean, threshold float64) error {
	if threshold <= 0 {
		return nil
	}
	if mean < threshold {
		return fmt.Errorf("mean throughput %.0f runes/s is below threshold %.0f", mean, threshold)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Runner
// ---------------------------------------------------------------------------

// Run encodes input the given number of times. Each stage runs under a pprof
// "stage" label so CPU profiles can be split by stage.
func Run(ctx context.Context, enc Encoder, input string, runs int) ([]RunResult, error) {
	if runs < 1 {
		return nil, errors.New("runs must be at least 1")
	}
	if strings.TrimSpace(input) == "" {
		return nil, text.ErrEmptyText
	}

	results := make([]RunResult, 0, runs)
	for i := range runs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		r, err := runOnce(ctx, enc, input)
		if err != nil {
			return nil, fmt.Errorf("run %d failed: %w", i+1, err)
		}
		r.Index = i
		r.Cold = i == 0
		results = append(results, r)
	}
	return results, nil
}

func runOnce(ctx context.Context, enc Encoder, input string) (RunResult, error) {
	var (
		out    RunResult
		s      string
		ids    []int64
		encErr error
	)

	startTotal := time.Now()

	pprof.Do(ctx, pprof.Labels("stage", "preclean"), func(context.Context) {
		start := time.Now()
		s = text.PreClean(norm.NFC.String(input))
		out.Stages.PreClean = time.Since(start)
	})

	pprof.Do(ctx, pprof.Labels("stage", "codemix"), func(context.Context) {
		start := time.Now()
		s = text.CodeMixed(s)
		out.Stages.CodeMixed = time.Since(start)
	})

	pprof.Do(ctx, pprof.Labels("stage", "expand"), func(context.Context) {
		start := time.Now()
		var steps []text.StepResult
		s, steps = text.Expand(s)
		for _, st := range steps {
			if !st.OK() {
				out.Skipped++
			}
		}
		out.Stages.Expand = time.Since(start)
	})

	pprof.Do(ctx, pprof.Labels("stage", "encode"), func(context.Context) {
		start := time.Now()
		ids, encErr = enc.EncodeCanonical(s)
		out.Stages.Encode = time.Since(start)
	})

	if encErr != nil {
		return out, fmt.Errorf("encode: %w", encErr)
	}

	out.Duration = time.Since(startTotal)
	out.Runes = utf8.RuneCountInString(input)
	out.Tokens = len(ids)
	out.Throughput = CalcThroughput(out.Runes, out.Duration)

	return out, nil
}

// ---------------------------------------------------------------------------
// Output formatters
// ---------------------------------------------------------------------------

func ms(d time.Duration) float64 { return float64(d.Microseconds()) / 1000 }

// FormatTable writes a human-readable ASCII table of bench results to w.
func FormatTable(runs []RunResult, stats Stats, w io.Writer) {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%-5s  %-5s  %10s  %8s  %12s\n", "Run", "Cold", "MS", "Tokens", "Runes/s")
	fmt.Fprintln(sb, strings.Repeat("-", 48))

	for _, r := range runs {
		cold := ""
		if r.Cold {
			cold = "yes"
		}
		fmt.Fprintf(sb, "%-5d  %-5s  %10.3f  %8d  %12.0f\n",
			r.Index+1,
			cold,
			ms(r.Duration),
			r.Tokens,
			r.Throughput,
		)
	}

	fmt.Fprintln(sb, strings.Repeat("-", 48))
	fmt.Fprintf(sb, "%-5s  %-5s  %10.3f  (min)\n", "", "", ms(stats.Min))
	fmt.Fprintf(sb, "%-5s  %-5s  %10.3f  (mean)\n", "", "", ms(stats.Mean))
	fmt.Fprintf(sb, "%-5s  %-5s  %10.3f  (max)\n", "", "", ms(stats.Max))

	fmt.Fprint(w, sb.String())
}

// jsonReport is the top-level JSON structure emitted by FormatJSON.
type jsonReport struct {
	Runs  []jsonRun `json:"runs"`
	Stats jsonStats `json:"stats"`
}

type jsonRun struct {
	Index       int     `json:"index"`
	Cold        bool    `json:"cold"`
	DurationMS  float64 `json:"duration_ms"`
	PreCleanMS  float64 `json:"preclean_ms"`
	CodeMixedMS float64 `json:"codemix_ms"`
	ExpandMS    float64 `json:"expand_ms"`
	EncodeMS    float64 `json:"encode_ms"`
	Tokens      int     `json:"tokens"`
	Skipped     int     `json:"skipped_steps"`
	Throughput  float64 `json:"runes_per_sec"`
}

type jsonStats struct {
	MinMS  float64 `json:"min_ms"`
	MeanMS float64 `json:"mean_ms"`
	MaxMS  float64 `json:"max_ms"`
}

// FormatJSON writes a JSON report of bench results to w.
func FormatJSON(runs []RunResult, stats Stats, w io.Writer) {
	jr := jsonReport{
		Runs: make([]jsonRun, len(runs)),
		Stats: jsonStats{
			MinMS:  ms(stats.Min),
			MeanMS: ms(stats.Mean),
			MaxMS:  ms(stats.Max),
		},
	}
	for i, r := range runs {
		jr.Runs[i] = jsonRun{
			Index:       r.Index,
			Cold:        r.Cold,
			DurationMS:  ms(r.Duration),
			PreCleanMS:  ms(r.Stages.PreClean),
			CodeMixedMS: ms(r.Stages.CodeMixed),
			ExpandMS:    ms(r.Stages.Expand),
			EncodeMS:    ms(r.Stages.Encode),
			Tokens:      r.Tokens,
			Skipped:     r.Skipped,
			Throughput:  r.Throughput,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(jr)
}
