package refs

import (
	"strings"

	"github.com/tsawler/wordrefs/model"
)

// Fix repairs records whose lemma or dictionary cell was merged into the
// cell to its left. When the lemma is empty and the word holds more than
// one token, the last token moves into the lemma. Then, when the
// dictionary is empty and the lemma holds more than one token, the last
// lemma token moves into the dictionary.
//
// Records with both lemma and dictionary empty carry nothing to shift
// and are returned as they are.
func Fix(records []model.Record) []model.Record {
	out := make([]model.Record, len(records))
	for i, r := range records {
		out[i] = fixRecord(r)
	}
	return out
}

func fixRecord(r model.Record) model.Record {
	if r.Lemma == "" && r.Dictionary == "" {
		return r
	}
	if r.Lemma == "" {
		r.Word, r.Lemma = splitLast(r.Word, r.Lemma)
	}
	if r.Dictionary == "" {
		r.Lemma, r.Dictionary = splitLast(r.Lemma, r.Dictionary)
	}
	return r
}

// splitLast moves the last whitespace token of src into dst when src has
// more than one token. Otherwise both are returned unchanged.
func splitLast(src, dst string) (string, string) {
	tokens := strings.Fields(src)
	if len(tokens) < 2 {
		return src, dst
	}
	return strings.Join(tokens[:len(tokens)-1], " "), tokens[len(tokens)-1]
}
