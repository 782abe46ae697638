package text

import (
	"fmt"
	"strings"
)

// Tokenizer is the minimal interface required by EncodeChunks.
// It is satisfied by *tokenizer.Codec.
type Tokenizer interface {
	Canonicalize(raw string) string
	EncodeCanonical(canonical string) ([]int64, error)
}

// Chunk holds one piece of split lyric input and its token IDs.
type Chunk struct {
	Text      string  // raw chunk text, before canonicalisation
	Canonical string  // Text after the rewrite pipeline
	TokenIDs  []int64 // ids produced by the tokenizer
}

// NumTokens returns len(TokenIDs).
func (c Chunk) NumTokens() int { return len(c.TokenIDs) }

// EncodeChunks splits input with SplitSentences, then canonicalises and
// encodes every chunk. Each chunk is canonicalised exactly once.
func EncodeChunks(input string, tok Tokenizer, maxChars int) ([]Chunk, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyText
	}

	parts := SplitSentences(input, maxChars)
	chunks := make([]Chunk, 0, len(parts))
	for i, part := range parts {
		canonical := tok.Canonicalize(part)
		ids, err := tok.EncodeCanonical(canonical)
		if err != nil {
			return nil, fmt.Errorf("encode chunk %d %q: %w", i, part, err)
		}
		chunks = append(chunks, Chunk{Text: part, Canonical: canonical, TokenIDs: ids})
	}

	return chunks, nil
}
