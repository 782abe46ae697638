package doctor

import (
	"slices"
	"testing"

	"github.com/example/go-lyric-tokenizer/internal/tokenizer"
)

func TestMissingMarkers(t *testing.T) {
	v, err := tokenizer.NewVocabulary(tokenizer.VocabularyData{Symbols: map[string]int64{
		"[hi]": 0, "[STOP]": 1, "a": 2,
	}})
	if err != nil {
		t.Fatalf("NewVocabulary: %v", err)
	}

	tests := []struct {
		name    string
		markers []string
		want    []string
	}{
		{"none", nil, nil},
		{"all present", []string{"[hi]", "[STOP]"}, nil},
		{"one missing", []string{"[hi]", "[SPACE]", "[STOP]"}, []string{"[SPACE]"}},
		{"order kept", []string{"[b]", "[a]"}, []string{"[b]", "[a]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := missingMarkers(v, tt.markers)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("missingMarkers(%v) = %v; want %v", tt.markers, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	symbols := map[string]int64{"[hi]": 0, "[SPACE]": 1, "[UNK]": 2}
	for i, r := range "abcdefghijklmnopqrstuvwxyz" {
		symbols[string(r)] = int64(3 + i)
	}

	v, err := tokenizer.NewVocabulary(tokenizer.VocabularyData{Symbols: symbols})
	if err != nil {
		t.Fatalf("NewVocabulary: %v", err)
	}

	c := tokenizer.NewCodecFromVocabulary(v)

	tests := []struct {
		sample  string
		wantErr bool
	}{
		{"Dil se 1st", false},
		{"", false},
		{"ñ", true}, // decodes as [UNK]
	}

	for _, tt := range tests {
		err := roundTrip(c, tt.sample)
		if (err != nil) != tt.wantErr {
			t.Errorf("roundTrip(%q) = %v; wantErr=%v", tt.sample, err, tt.wantErr)
		}
	}
}
