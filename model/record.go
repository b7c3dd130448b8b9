package model

// Record is the four-field unit reconstructed from one logical table row.
type Record struct {
	Word       string `json:"word"`
	Lemma      string `json:"lemma"`
	Dictionary string `json:"dictionary"`
	Comments   string `json:"comments"`
}

// IsEmpty reports whether the record has no headword yet. Records are only
// emitted once Word is non-empty.
func (r Record) IsEmpty() bool {
	return r.Word == ""
}
