package refs

import "github.com/tsawler/wordrefs/model"

// MergeWordList returns one record per entry of words, in list order.
// Each word takes the record from refs with the same headword; when refs
// repeats a headword the last occurrence wins. Words absent from refs get
// a record with only the word set.
func MergeWordList(words []string, refs []model.Record) []model.Record {
	byWord := make(map[string]model.Record, len(refs))
	for _, r := range refs {
		byWord[r.Word] = r
	}

	out := make([]model.Record, 0, len(words))
	for _, w := range words {
		if r, ok := byWord[w]; ok {
			out = append(out, r)
			continue
		}
		out = append(out, model.Record{Word: w})
	}
	return out
}
