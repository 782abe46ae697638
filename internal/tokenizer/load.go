package tokenizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gosp "github.com/vikesh-raj/go-sentencepiece-encoder/sentencepiece"
	"google.golang.org/protobuf/proto"
)

// Vocabulary file formats.
const (
	FormatAuto          = "auto"
	FormatJSON          = "json"
	FormatSentencePiece = "sentencepiece"
)

// LoadVocabulary reads the vocabulary at path, picking the format from the
// file extension: .model files are SentencePiece protobufs, anything else is
// JSON, either a tokenizer.json document or a flat {"symbol": id} map.
//
// All failures are reported as *ConfigError.
func LoadVocabulary(path string) (*Vocabulary, error) {
	return LoadVocabularyFormat(path, FormatAuto)
}

// LoadVocabularyFormat is LoadVocabulary with an explicit format.
func LoadVocabularyFormat(path, format string) (*Vocabulary, error) {
	if path == "" {
		return nil, &ConfigError{Path: path, Err: ErrEmptyPath}
	}

	if format == "" || format == FormatAuto {
		format = FormatJSON
		if strings.EqualFold(filepath.Ext(path), ".model") {
			format = FormatSentencePiece
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	var d VocabularyData
	switch format {
	case FormatJSON:
		d, err = parseJSONVocabulary(data)
	case FormatSentencePiece:
		d, err = parseSentencePiece(data)
	default:
		err = fmt.Errorf("unknown vocabulary format %q", format)
	}
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	v, err := NewVocabulary(d)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return v, nil
}

type addedToken struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	Special bool   `json:"special"`
}

type bpeModel struct {
	Type     string            `json:"type"`
	Vocab    map[string]int64  `json:"vocab"`
	Merges   []json.RawMessage `json:"merges"`
	UnkToken string            `json:"unk_token"`
}

type tokenizerJSON struct {
	AddedTokens []addedToken `json:"added_tokens"`
	Model       *bpeModel    `json:"model"`
}

func parseJSONVocabulary(data []byte) (VocabularyData, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return VocabularyData{}, fmt.Errorf("parse vocabulary json: %w", err)
	}

	if _, ok := doc["model"]; !ok {
		var flat map[string]int64
		if err := json.Unmarshal(data, &flat); err != nil {
			return VocabularyData{}, fmt.Errorf("parse flat vocabulary: %w", err)
		}
		return VocabularyData{Symbols: flat}, nil
	}

	var tj tokenizerJSON
	if err := json.Unmarshal(data, &tj); err != nil {
		return VocabularyData{}, fmt.Errorf("parse tokenizer.json: %w", err)
	}
	if tj.Model == nil || len(tj.Model.Vocab) == 0 {
		return VocabularyData{}, errors.New("tokenizer.json has no model vocab")
	}

	d := VocabularyData{
		Symbols: make(map[string]int64, len(tj.Model.Vocab)+len(tj.AddedTokens)),
		Unknown: tj.Model.UnkToken,
	}
	for sym, id := range tj.Model.Vocab {
		d.Symbols[sym] = id
	}
	for _, t := range tj.AddedTokens {
		if id, ok := d.Symbols[t.Content]; ok && id != t.ID {
			return VocabularyData{}, fmt.Errorf("added token %q has id %d, vocab has %d", t.Content, t.ID, id)
		}
		d.Symbols[t.Content] = t.ID
		d.Specials = append(d.Specials, t.Content)
	}

	for i, raw := range tj.Model.Merges {
		m, err := parseMerge(raw)
		if err != nil {
			return VocabularyData{}, fmt.Errorf("merge %d: %w", i, err)
		}
		d.Merges = append(d.Merges, m)
	}

	return d, nil
}

// parseMerge accepts both merge encodings found in tokenizer.json files:
// "left right" and ["left", "right"].
func parseMerge(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var pair []string
	if err := json.Unmarshal(raw, &pair); err != nil {
		return "", fmt.Errorf("unsupported merge %s", raw)
	}
	if len(pair) != 2 {
		return "", fmt.Errorf("merge has %d parts, want 2", len(pair))
	}
	return pair[0] + " " + pair[1], nil
}

// parseSentencePiece reads a SentencePiece ModelProto. Ids are piece indices.
func parseSentencePiece(data []byte) (VocabularyData, error) {
	if len(data) == 0 {
		return VocabularyData{}, errors.New("sentencepiece model is empty")
	}

	var model gosp.ModelProto
	if err := proto.Unmarshal(data, &model); err != nil {
		return VocabularyData{}, fmt.Errorf("unmarshal sentencepiece model: %w", err)
	}

	pieces := model.GetPieces()
	d := VocabularyData{Symbols: make(map[string]int64, len(pieces))}
	for i, piece := range pieces {
		sym := piece.GetPiece()
		d.Symbols[sym] = int64(i)

		switch piece.GetType() {
		case gosp.ModelProto_SentencePiece_UNKNOWN:
			d.Unknown = sym
		case gosp.ModelProto_SentencePiece_CONTROL, gosp.ModelProto_SentencePiece_USER_DEFINED:
			d.Specials = append(d.Specials, sym)
		}
	}
	return d, nil
}
