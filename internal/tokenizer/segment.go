package tokenizer

import (
	"cmp"
	"slices"
	"strings"

	heap "github.com/emirpasic/gods/v2/trees/binaryheap"
)

// Segment splits s into vocabulary symbols. Special symbols are cut out
// first; the spans between them are segmented by BPE merges when the
// vocabulary has any, otherwise by greedy longest match. Characters that no
// symbol covers come out as single-rune symbols.
func (v *Vocabulary) Segment(s string) []string {
	var out []string
	for s != "" {
		special, at := v.nextSpecial(s)
		if at < 0 {
			out = append(out, v.split(s)...)
			break
		}
		if at > 0 {
			out = append(out, v.split(s[:at])...)
		}
		out = append(out, special)
		s = s[at+len(special):]
	}
	return out
}

// nextSpecial finds the earliest special in s. Ties go to the longest.
func (v *Vocabulary) nextSpecial(s string) (string, int) {
	best, at := "", -1
	for _, sp := range v.specials {
		i := strings.Index(s, sp)
		if i >= 0 && (at < 0 || i < at) {
			best, at = sp, i
		}
	}
	return best, at
}

func (v *Vocabulary) split(s string) []string {
	if v.HasMerges() {
		return v.bpe(s)
	}
	return v.greedy(s)
}

func (v *Vocabulary) greedy(s string) []string {
	runes := []rune(s)
	var out []string
	for i := 0; i < len(runes); {
		n := min(v.longest, len(runes)-i)
		for ; n > 1; n-- {
			if _, ok := v.ids[string(runes[i:i+n])]; ok {
				break
			}
		}
		n = max(n, 1)
		out = append(out, string(runes[i:i+n]))
		i += n
	}
	return out
}

type bpeSymbol struct {
	prev, next int
	runes      []rune
}

type bpePair struct {
	a, b  int
	rank  int
	value string
}

func (v *Vocabulary) bpe(s string) []string {
	if _, ok := v.ids[s]; ok {
		return []string{s}
	}

	runes := []rune(s)
	symbols := make([]bpeSymbol, len(runes))
	for i, r := range runes {
		symbols[i] = bpeSymbol{prev: i - 1, next: i + 1, runes: []rune{r}}
	}

	pairwise := func(a, b int) *bpePair {
		if a < 0 || b >= len(symbols) {
			return nil
		}
		left, right := string(symbols[a].runes), string(symbols[b].runes)
		rank, ok := v.merges[left+" "+right]
		if !ok {
			return nil
		}
		return &bpePair{a: a, b: b, rank: rank, value: left + right}
	}

	pairs := heap.NewWith(func(x, y *bpePair) int {
		return cmp.Or(cmp.Compare(x.rank, y.rank), cmp.Compare(x.a, y.a))
	})
	for i := range len(symbols) - 1 {
		if p := pairwise(i, i+1); p != nil {
			pairs.Push(p)
		}
	}

	for !pairs.Empty() {
		p, _ := pairs.Pop()

		left, right := symbols[p.a], symbols[p.b]
		if len(left.runes) == 0 || len(right.runes) == 0 || left.next != p.b ||
			string(left.runes)+string(right.runes) != p.value {
			continue
		}
		if _, ok := v.ids[p.value]; !ok {
			continue
		}

		symbols[p.a].runes = slices.Concat(left.runes, right.runes)
		symbols[p.b].runes = nil
		symbols[p.a].next = right.next
		if right.next < len(symbols) {
			symbols[right.next].prev = p.a
		}

		if q := pairwise(symbols[p.a].prev, p.a); q != nil {
			pairs.Push(q)
		}
		if q := pairwise(p.a, symbols[p.a].next); q != nil {
			pairs.Push(q)
		}
	}

	out := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		if len(sym.runes) > 0 {
			out = append(out, string(sym.runes))
		}
	}
	return out
}
