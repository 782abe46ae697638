// Package testutil provides shared fixtures and skip helpers for tests.
//
// Typical usage:
//
//	func TestEncode(t *testing.T) {
//	    path := testutil.WriteVocab(t)
//	    codec, err := tokenizer.NewCodec(path)
//	    ...
//	}
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// VocabEnv names the environment variable pointing at a real vocabulary.
const VocabEnv = "LYRICTOK_VOCAB"

// Markers are the reserved symbols every fixture vocabulary carries, in id
// order starting at zero.
var Markers = []string{"[hi]", "[SPACE]", "[STOP]", "[UNK]"}

// Letters are the single-character symbols of the fixture vocabulary.
const Letters = "abcdefghijklmnopqrstuvwxyz"

type fixtureAddedToken struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	Special bool   `json:"special"`
}

type fixtureModel struct {
	Type     string           `json:"type"`
	Vocab    map[string]int64 `json:"vocab"`
	Merges   []string         `json:"merges"`
	UnkToken string           `json:"unk_token"`
}

type fixtureTokenizer struct {
	AddedTokens []fixtureAddedToken `json:"added_tokens"`
	Model       fixtureModel        `json:"model"`
}

// WriteVocab writes a character-level tokenizer.json into a temp dir and
// returns its path. Ids are assigned in order: Markers, Letters, then extra.
func WriteVocab(tb testing.TB, extra ...string) string {
	tb.Helper()

	return writeTokenizer(tb, extra, nil)
}

// WriteBPEVocab is WriteVocab with merge rules. Every merge result must be
// listed in extra so that the merge can fire.
func WriteBPEVocab(tb testing.TB, merges []string, extra ...string) string {
	tb.Helper()

	return writeTokenizer(tb, extra, merges)
}

func writeTokenizer(tb testing.TB, extra, merges []string) string {
	tb.Helper()

	doc := fixtureTokenizer{
		Model: fixtureModel{
			Type:     "BPE",
			Vocab:    make(map[string]int64),
			Merges:   merges,
			UnkToken: "[UNK]",
		},
	}

	var next int64
	for _, m := range Markers {
		doc.AddedTokens = append(doc.AddedTokens, fixtureAddedToken{ID: next, Content: m, Special: true})
		doc.Model.Vocab[m] = next
		next++
	}
	for _, r := range Letters {
		doc.Model.Vocab[string(r)] = next
		next++
	}
	for _, s := range extra {
		if _, ok := doc.Model.Vocab[s]; ok {
			continue
		}
		doc.Model.Vocab[s] = next
		next++
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		tb.Fatalf("marshal fixture vocabulary: %v", err)
	}

	path := filepath.Join(tb.TempDir(), "tokenizer.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		tb.Fatalf("write fixture vocabulary: %v", err)
	}

	return path
}

// RequireVocabFile returns the path of a real vocabulary, taken from
// LYRICTOK_VOCAB or found as models/vocab.json in the working directory or
// one of its parents. The test is skipped when neither exists.
func RequireVocabFile(tb testing.TB) string {
	tb.Helper()

	if p := os.Getenv(VocabEnv); p != "" {
		if _, err := os.Stat(p); err != nil {
			tb.Skipf("vocabulary not found at %s=%q", VocabEnv, p)
		}
		return p
	}

	dir, err := filepath.Abs(".")
	if err != nil {
		tb.Fatalf("abs path: %v", err)
	}

	for {
		candidate := filepath.Join(dir, "models", "vocab.json")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	tb.Skipf("models/vocab.json not found; set %s to run this test", VocabEnv)

	return ""
}
