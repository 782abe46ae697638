package text

import (
	"fmt"
	"log/slog"

	"golang.org/x/text/unicode/norm"
)

// Stage selects how far Pipeline.RunTo takes the text.
type Stage string

const (
	StagePreClean  Stage = "preclean"
	StageCodeMixed Stage = "codemix"
	StageFull      Stage = "full"
)

// ParseStage validates a stage name. The empty string selects StageFull.
func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case "", StageFull:
		return StageFull, nil
	case StagePreClean, StageCodeMixed:
		return Stage(s), nil
	default:
		return "", fmt.Errorf("unknown stage %q (want %s|%s|%s)", s, StagePreClean, StageCodeMixed, StageFull)
	}
}

// Pipeline turns raw lyric text into its canonical form. It holds no mutable
// state and is safe for concurrent use.
type Pipeline struct {
	log *slog.Logger
}

// NewPipeline returns a Pipeline that reports swallowed step failures to
// logger, or to slog.Default when logger is nil.
func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{log: logger}
}

// Run applies every stage.
func (p *Pipeline) Run(raw string) string {
	return p.RunTo(raw, StageFull)
}

// RunTo applies the stages up to and including stage.
func (p *Pipeline) RunTo(raw string, stage Stage) string {
	s := PreClean(norm.NFC.String(raw))
	if stage == StagePreClean {
		return s
	}

	s = CodeMixed(s)
	if stage == StageCodeMixed {
		return s
	}

	s, results := Expand(s)
	for _, r := range results {
		if !r.OK() {
			p.log.Debug("expansion step skipped",
				slog.String("step", r.Step),
				slog.String("error", r.Err.Error()),
			)
		}
	}
	return s
}

// Canonicalize runs the full pipeline with the default logger.
func Canonicalize(raw string) string {
	return NewPipeline(nil).Run(raw)
}
