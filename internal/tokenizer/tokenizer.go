// Package tokenizer maps canonical lyric text to vocabulary ids and back.
//
// A Vocabulary is loaded once from a tokenizer.json, a flat symbol map or a
// SentencePiece model and is read-only afterwards, so a single Codec can be
// shared by concurrent callers.
package tokenizer

// Reserved marker symbols.
const (
	LanguageMarker = "[hi]"
	SpaceMarker    = "[SPACE]"
	StopMarker     = "[STOP]"
	UnknownMarker  = "[UNK]"
)

// DefaultCharLimit is the input length above which Encode logs a warning.
const DefaultCharLimit = 2000

// Tokenizer encodes text into vocabulary ids.
type Tokenizer interface {
	Encode(text string) ([]int64, error)
}
