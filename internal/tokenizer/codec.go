package tokenizer

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/example/go-lyric-tokenizer/internal/text"
)

// Codec turns raw lyric text into id sequences and back. It is safe for
// concurrent use.
type Codec struct {
	vocab     *Vocabulary
	pipeline  *text.Pipeline
	log       *slog.Logger
	charLimit int
	format    string
}

var _ Tokenizer = (*Codec)(nil)

// Option configures a Codec.
type Option func(*Codec)

// WithLogger sets the logger for length warnings and skipped rewrite steps.
func WithLogger(l *slog.Logger) Option {
	return func(c *Codec) {
		if l != nil {
			c.log = l
		}
	}
}

// WithCharLimit sets the soft input length limit. Non-positive values keep
// DefaultCharLimit.
func WithCharLimit(n int) Option {
	return func(c *Codec) {
		if n > 0 {
			c.charLimit = n
		}
	}
}

// WithFormat sets the vocabulary file format used by NewCodec.
func WithFormat(format string) Option {
	return func(c *Codec) { c.format = format }
}

// NewCodec loads the vocabulary at path and returns a Codec over it.
func NewCodec(path string, opts ...Option) (*Codec, error) {
	c := newCodec(opts)

	v, err := LoadVocabularyFormat(path, c.format)
	if err != nil {
		return nil, err
	}
	c.vocab = v

	return c, nil
}

// NewCodecFromVocabulary returns a Codec sharing an already loaded vocabulary.
func NewCodecFromVocabulary(v *Vocabulary, opts ...Option) *Codec {
	c := newCodec(opts)
	c.vocab = v
	return c
}

func newCodec(opts []Option) *Codec {
	c := &Codec{
		log:       slog.Default(),
		charLimit: DefaultCharLimit,
		format:    FormatAuto,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.pipeline = text.NewPipeline(c.log)
	return c
}

// Vocabulary returns the codec's vocabulary.
func (c *Codec) Vocabulary() *Vocabulary { return c.vocab }

// VocabSize returns the number of symbols in the vocabulary.
func (c *Codec) VocabSize() int { return c.vocab.Size() }

// NumberTokens returns the largest id plus one.
func (c *Codec) NumberTokens() int64 { return c.vocab.NumberTokens() }

// Canonicalize runs the rewrite pipeline over raw, warning when raw is
// longer than the character limit. Long input is still processed.
func (c *Codec) Canonicalize(raw string) string {
	if n := utf8.RuneCountInString(raw); n > c.charLimit {
		c.log.Warn("input exceeds character limit",
			slog.Int("length", n),
			slog.Int("limit", c.charLimit),
		)
	}
	return c.pipeline.Run(raw)
}

// Encode canonicalizes raw and maps it to ids, prefixed by the language
// marker.
func (c *Codec) Encode(raw string) ([]int64, error) {
	return c.EncodeCanonical(c.Canonicalize(raw))
}

// EncodeCanonical maps text that is already in canonical form to ids.
func (c *Codec) EncodeCanonical(canonical string) ([]int64, error) {
	return c.vocab.Lookup(c.vocab.Segment(LanguageMarker + EncodeRawSymbols(canonical)))
}

// Decode maps ids back to text. Reserved markers are kept except that
// [SPACE] becomes a space and [STOP] is dropped.
func (c *Codec) Decode(ids []int64) (string, error) {
	symbols, err := c.vocab.Symbols(ids)
	if err != nil {
		return "", err
	}
	return DecodeSymbols(strings.Join(symbols, " ")), nil
}

// BatchDecode decodes each sequence in turn.
func (c *Codec) BatchDecode(seqs [][]int64) ([]string, error) {
	out := make([]string, 0, len(seqs))
	for i, ids := range seqs {
		s, err := c.Decode(ids)
		if err != nil {
			return nil, fmt.Errorf("sequence %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// EncodeRawSymbols applies the space marker substitution of Encode without
// touching the vocabulary.
func EncodeRawSymbols(canonical string) string {
	return strings.ReplaceAll(canonical, " ", SpaceMarker)
}

// DecodeSymbols undoes symbol-level spacing: literal spaces are removed,
// [SPACE] becomes a space and [STOP] is deleted.
func DecodeSymbols(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, SpaceMarker, " ")
	return strings.ReplaceAll(s, StopMarker, "")
}
