package refs

import (
	"strings"
	"unicode/utf8"

	"github.com/tsawler/wordrefs/model"
)

// Default headword length bounds, matching the Scrabble board.
const (
	DefaultMinLength = 2
	DefaultMaxLength = 8
)

// FilterByLength keeps records whose first word token has between minLen
// and maxLen runes inclusive, replacing the word with that token. Records
// with an empty word are dropped.
func FilterByLength(records []model.Record, minLen, maxLen int) []model.Record {
	var out []model.Record
	for _, r := range records {
		tokens := strings.Fields(r.Word)
		if len(tokens) == 0 {
			continue
		}
		n := utf8.RuneCountInString(tokens[0])
		if n < minLen || n > maxLen {
			continue
		}
		r.Word = tokens[0]
		out = append(out, r)
	}
	return out
}
