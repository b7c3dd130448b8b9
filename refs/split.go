package refs

import (
	"unicode"
	"unicode/utf8"
)

// LetterGroup is the run of entries sharing an upper-cased first letter.
type LetterGroup struct {
	Letter  string
	Entries []Entry
}

// SplitByLetter groups entries by the upper-cased first rune of the word.
// Groups appear in first-seen order and keep the input order within each
// group. Entries with an empty word are skipped.
func SplitByLetter(entries []Entry) []LetterGroup {
	var groups []LetterGroup
	index := make(map[string]int)
	for _, e := range entries {
		r, size := utf8.DecodeRuneInString(e.Word)
		if size == 0 {
			continue
		}
		letter := string(unicode.ToUpper(r))
		i, ok := index[letter]
		if !ok {
			i = len(groups)
			index[letter] = i
			groups = append(groups, LetterGroup{Letter: letter})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

// GroupByAlphagram maps each alphagram to the words that share it, in
// input order.
func GroupByAlphagram(entries []Entry) map[string][]string {
	out := make(map[string][]string)
	for _, e := range entries {
		out[e.Alphagram] = append(out[e.Alphagram], e.Word)
	}
	return out
}
