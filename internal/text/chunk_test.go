package text

import (
	"reflect"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
		want     []string
	}{
		{
			name:     "short text is one chunk",
			text:     "  Hello world.",
			maxChars: 250,
			want:     []string{"Hello world."},
		},
		{
			name:     "zero limit disables splitting",
			text:     "Hello. World.",
			maxChars: 0,
			want:     []string{"Hello. World."},
		},
		{
			name:     "two sentences exceeding limit",
			text:     "Hello. World.",
			maxChars: 8,
			want:     []string{"Hello.", "World."},
		},
		{
			name:     "packs sentences greedily",
			text:     "First. Second! Third?",
			maxChars: 15,
			want:     []string{"First. Second!", "Third?"},
		},
		{
			name:     "splits on lyric lines",
			text:     "tum ho\nmeri jaan\nsun lo",
			maxChars: 12,
			want:     []string{"tum ho", "meri jaan", "sun lo"},
		},
		{
			name:     "wraps an over-long sentence",
			text:     "ek do teen char paanch.",
			maxChars: 10,
			want:     []string{"ek do teen", "char", "paanch."},
		},
		{
			name:     "splits on danda",
			text:     "दिल है। जान है।",
			maxChars: 5,
			want:     []string{"दिल", "है।", "जान", "है।"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text, tt.maxChars)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSentences(%q, %d) = %q, want %q", tt.text, tt.maxChars, got, tt.want)
			}
		})
	}
}

func TestWrapWords_CutsLongWord(t *testing.T) {
	got := wrapWords("abcdefghij", 4)
	want := []string{"abcd", "efgh", "ij"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("wrapWords = %q, want %q", got, want)
	}
}

func TestSplitSentences_ChunksRespectLimit(t *testing.T) {
	text := "Tujhe dekha to ye jaana sanam. Pyaar hota hai deewana sanam. " +
		"Ab yahan se kahan jaayein hum. Teri baahon mein mar jaayein hum."

	for _, c := range SplitSentences(text, 40) {
		if n := len([]rune(c)); n > 40 {
			t.Errorf("chunk %q has %d chars, want <= 40", c, n)
		}
	}
}
