package tokenizer

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// VocabularyData is the raw content of a vocabulary resource.
type VocabularyData struct {
	// Symbols maps every symbol to its id.
	Symbols map[string]int64

	// Specials are matched verbatim before segmentation. Every bracketed
	// symbol such as [SPACE] is treated as special as well.
	Specials []string

	// Merges are BPE merge rules "left right", highest priority first.
	Merges []string

	// Unknown names the fallback symbol. When empty, [UNK] or <unk> is used
	// if the vocabulary defines one.
	Unknown string
}

// Vocabulary is an immutable bijection between symbols and ids.
type Vocabulary struct {
	ids     map[string]int64
	symbols map[int64]string
	maxID   int64
	longest int

	unk    int64
	hasUnk bool

	// specials sorted longest first so overlapping markers resolve greedily.
	specials []string
	merges   map[string]int
}

var bracketSymbol = regexp.MustCompile(`^\[[^\[\]\s]+\]$`)

var defaultUnknowns = []string{UnknownMarker, "<unk>"}

// NewVocabulary validates d and builds a Vocabulary from it.
func NewVocabulary(d VocabularyData) (*Vocabulary, error) {
	if len(d.Symbols) == 0 {
		return nil, errors.New("vocabulary is empty")
	}

	v := &Vocabulary{
		ids:     make(map[string]int64, len(d.Symbols)),
		symbols: make(map[int64]string, len(d.Symbols)),
		maxID:   -1,
	}
	for sym, id := range d.Symbols {
		if sym == "" {
			return nil, errors.New("vocabulary contains an empty symbol")
		}
		if id < 0 {
			return nil, fmt.Errorf("symbol %q has negative id %d", sym, id)
		}
		if other, dup := v.symbols[id]; dup {
			return nil, fmt.Errorf("id %d is shared by %q and %q", id, other, sym)
		}
		v.ids[sym] = id
		v.symbols[id] = sym
		v.maxID = max(v.maxID, id)
		v.longest = max(v.longest, utf8.RuneCountInString(sym))
	}

	specials := make(map[string]struct{})
	for _, s := range d.Specials {
		if _, ok := v.ids[s]; !ok {
			return nil, fmt.Errorf("special token %q has no id", s)
		}
		specials[s] = struct{}{}
	}
	for sym := range v.ids {
		if bracketSymbol.MatchString(sym) {
			specials[sym] = struct{}{}
		}
	}
	for s := range specials {
		v.specials = append(v.specials, s)
	}
	slices.SortFunc(v.specials, func(a, b string) int {
		return cmp.Or(cmp.Compare(len(b), len(a)), cmp.Compare(a, b))
	})

	if d.Unknown != "" {
		id, ok := v.ids[d.Unknown]
		if !ok {
			return nil, fmt.Errorf("unknown token %q has no id", d.Unknown)
		}
		v.unk, v.hasUnk = id, true
	} else {
		for _, s := range defaultUnknowns {
			if id, ok := v.ids[s]; ok {
				v.unk, v.hasUnk = id, true
				break
			}
		}
	}

	if len(d.Merges) > 0 {
		v.merges = make(map[string]int, len(d.Merges))
		for rank, m := range d.Merges {
			left, right, ok := strings.Cut(m, " ")
			if !ok || left == "" || right == "" {
				return nil, fmt.Errorf("merge %d %q is not a pair", rank, m)
			}
			if _, seen := v.merges[m]; !seen {
				v.merges[m] = rank
			}
		}
	}

	return v, nil
}

// Size returns the number of symbols.
func (v *Vocabulary) Size() int { return len(v.ids) }

// NumberTokens returns the largest id plus one, which exceeds Size when the
// id space has gaps.
func (v *Vocabulary) NumberTokens() int64 { return v.maxID + 1 }

// ID looks up the id of sym.
func (v *Vocabulary) ID(sym string) (int64, bool) {
	id, ok := v.ids[sym]
	return id, ok
}

// Symbol looks up the symbol for id.
func (v *Vocabulary) Symbol(id int64) (string, bool) {
	sym, ok := v.symbols[id]
	return sym, ok
}

// Unknown returns the fallback id for symbols outside the vocabulary.
func (v *Vocabulary) Unknown() (int64, bool) { return v.unk, v.hasUnk }

// Specials returns the symbols matched before segmentation, longest first.
func (v *Vocabulary) Specials() []string { return slices.Clone(v.specials) }

// HasMerges reports whether segmentation uses BPE merge ranks.
func (v *Vocabulary) HasMerges() bool { return len(v.merges) > 0 }

// Lookup maps symbols to ids, substituting the unknown id where needed.
func (v *Vocabulary) Lookup(symbols []string) ([]int64, error) {
	ids := make([]int64, 0, len(symbols))
	for _, sym := range symbols {
		id, ok := v.ids[sym]
		if !ok {
			if !v.hasUnk {
				return nil, &UnknownSymbolError{Symbol: sym}
			}
			id = v.unk
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Symbols maps ids back to symbols.
func (v *Vocabulary) Symbols(ids []int64) ([]string, error) {
	symbols := make([]string, 0, len(ids))
	for _, id := range ids {
		sym, ok := v.symbols[id]
		if !ok {
			return nil, &InvalidIDError{ID: id}
		}
		symbols = append(symbols, sym)
	}
	return symbols, nil
}
