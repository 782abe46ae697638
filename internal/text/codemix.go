package text

import "strings"

// isDevanagari reports whether r lies in the Devanagari block.
func isDevanagari(r rune) bool {
	return r >= 0x0900 && r <= 0x097F
}

// CodeMixed canonicalises Latin-script words through the informal spelling
// table. Words containing any Devanagari character pass through untouched.
func CodeMixed(s string) string {
	return codeMixed(s, informalSpellings)
}

func codeMixed(s string, table map[string]string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if strings.IndexFunc(w, isDevanagari) >= 0 {
			continue
		}
		if canonical, ok := table[lower(w)]; ok {
			words[i] = canonical
		}
	}
	return strings.Join(words, " ")
}
