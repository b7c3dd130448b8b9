package refs

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/wordrefs/model"
)

// Points holds the Greek Scrabble tile values, keyed by capital letter.
var Points = map[rune]int{
	'Α': 1, 'Ο': 1, 'Ε': 1, 'Ι': 1, 'Τ': 1, 'Η': 1, 'Σ': 1, 'Ν': 1,
	'Ρ': 2, 'Κ': 2, 'Π': 2, 'Υ': 2,
	'Λ': 3, 'Μ': 3, 'Ω': 3,
	'Γ': 4, 'Δ': 4,
	'Β': 8, 'Φ': 8, 'Χ': 8,
	'Ζ': 10, 'Θ': 10, 'Ξ': 10, 'Ψ': 10,
}

// Entry is a record with the derived Scrabble fields.
type Entry struct {
	model.Record
	Alphagram string `json:"alphagram"`
	Length    int    `json:"length"`
	Points    int    `json:"points"`
}

// Metadata summarizes a set of enriched entries.
type Metadata struct {
	TotalWords int `json:"total_words"`
	MinLength  int `json:"min_length"`
	MaxLength  int `json:"max_length"`
}

// Alphagram returns the letters of the upper-cased word sorted by code
// point.
func Alphagram(word string) string {
	runes := []rune(strings.ToUpper(word))
	slices.Sort(runes)
	return string(runes)
}

// Score sums the tile values of word. Letters without a tile score 0.
func Score(word string) int {
	total := 0
	for _, r := range word {
		total += Points[unicode.ToUpper(r)]
	}
	return total
}

// Enrich derives the alphagram, length and score of every record. The
// returned Metadata has zero lengths when records is empty.
func Enrich(records []model.Record) ([]Entry, Metadata) {
	entries := make([]Entry, 0, len(records))
	var meta Metadata
	for i, r := range records {
		n := utf8.RuneCountInString(r.Word)
		entries = append(entries, Entry{
			Record:    r,
			Alphagram: Alphagram(r.Word),
			Length:    n,
			Points:    Score(r.Word),
		})
		if i == 0 || n < meta.MinLength {
			meta.MinLength = n
		}
		if n > meta.MaxLength {
			meta.MaxLength = n
		}
	}
	meta.TotalWords = len(entries)
	return entries, meta
}
