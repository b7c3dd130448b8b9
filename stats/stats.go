// Package stats accumulates data-quality counters over the records emitted
// during one extraction run and renders them as text.
package stats

import (
	"fmt"
	"strings"

	"github.com/tsawler/wordrefs/model"
)

// SummaryExampleLimit caps the word examples listed in Summary.
const SummaryExampleLimit = 10

// WordList counts records with a missing field and lists their headwords.
// Count always equals len(Words).
type WordList struct {
	Count int      `json:"count"`
	Words []string `json:"words"`
}

func (w *WordList) add(word string) {
	w.Count++
	w.Words = append(w.Words, word)
}

// Stats is a snapshot of the counters for a run.
type Stats struct {
	PagesToProcess     int      `json:"total_pages_to_process"`
	PagesProcessed     int      `json:"total_pages_processed"`
	TotalEntries       int      `json:"total_entries_extracted"`
	MissingFieldCount  int      `json:"entries_missing_fields"`
	EmptyCommentsCount int      `json:"empty_comments_count"`
	EmptyLemma         WordList `json:"empty_lemma"`
	EmptyDictionary    WordList `json:"empty_dictionary"`
	UniqueDictionaries []string `json:"unique_dictionaries"`

	// Unclassified counts line-leading fragments that matched no band.
	// Their text is not merged into any field.
	Unclassified int `json:"unclassified_line_starts"`
}

// Aggregator is the single writer for a run's counters. It is not safe for
// concurrent use; parallel runs give each worker its own Aggregator and
// combine them with Merge.
type Aggregator struct {
	stats Stats
	seen  map[string]struct{}
}

// NewAggregator creates an empty aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{seen: make(map[string]struct{})}
}

// Observe records one emitted record. Records without a word are ignored
// because they are never emitted.
func (a *Aggregator) Observe(r model.Record) {
	if r.IsEmpty() {
		return
	}
	if r.Lemma == "" {
		a.stats.MissingFieldCount++
		a.stats.EmptyLemma.add(r.Word)
	}
	if r.Dictionary == "" {
		a.stats.MissingFieldCount++
		a.stats.EmptyDictionary.add(r.Word)
	} else {
		a.addDictionary(r.Dictionary)
	}
	if r.Comments == "" {
		a.stats.EmptyCommentsCount++
	}
	a.stats.TotalEntries++
}

func (a *Aggregator) addDictionary(code string) {
	if _, ok := a.seen[code]; ok {
		return
	}
	a.seen[code] = struct{}{}
	a.stats.UniqueDictionaries = append(a.stats.UniqueDictionaries, code)
}

// ObserveUnclassified counts a line whose leading fragment matched no band
func (a *Aggregator) ObserveUnclassified() {
	a.stats.Unclassified++
}

// PageProcessed counts a walked page
func (a *Aggregator) PageProcessed() {
	a.stats.PagesProcessed++
}

// SetPagesToProcess records how many pages the run selected
func (a *Aggregator) SetPagesToProcess(n int) {
	a.stats.PagesToProcess = n
}

// Merge folds other into a. Counters are summed, word lists are appended in
// order and dictionary codes are unioned keeping first-seen order, so merging
// per-page aggregators in page order reproduces a sequential run.
func (a *Aggregator) Merge(other *Aggregator) {
	if other == nil {
		return
	}
	o := other.stats
	a.stats.PagesProcessed += o.PagesProcessed
	a.stats.TotalEntries += o.TotalEntries
	a.stats.MissingFieldCount += o.MissingFieldCount
	a.stats.EmptyCommentsCount += o.EmptyCommentsCount
	a.stats.Unclassified += o.Unclassified
	for _, w := range o.EmptyLemma.Words {
		a.stats.EmptyLemma.add(w)
	}
	for _, w := range o.EmptyDictionary.Words {
		a.stats.EmptyDictionary.add(w)
	}
	for _, code := range o.UniqueDictionaries {
		a.addDictionary(code)
	}
}

// Snapshot returns a copy of the current counters
func (a *Aggregator) Snapshot() Stats {
	s := a.stats
	s.EmptyLemma.Words = append([]string(nil), a.stats.EmptyLemma.Words...)
	s.EmptyDictionary.Words = append([]string(nil), a.stats.EmptyDictionary.Words...)
	s.UniqueDictionaries = append([]string(nil), a.stats.UniqueDictionaries...)
	return s
}

// Summary renders the fixed-format human-readable report.
func (s Stats) Summary() string {
	var sb strings.Builder
	sb.WriteString("\nExtraction Statistics:\n")
	sb.WriteString("======================\n")
	fmt.Fprintf(&sb, "Total Pages Processed: %d\n", s.PagesProcessed)
	fmt.Fprintf(&sb, "Total Entries Extracted: %d\n", s.TotalEntries)
	fmt.Fprintf(&sb, "Unique Dictionary Values: %d\n", len(s.UniqueDictionaries))
	fmt.Fprintf(&sb, "Entries Missing Fields: %d\n", s.MissingFieldCount)
	fmt.Fprintf(&sb, "Entries with Empty Comments: %d\n", s.EmptyCommentsCount)
	fmt.Fprintf(&sb, "Entries with Empty Lemma: %d\n", s.EmptyLemma.Count)
	fmt.Fprintf(&sb, "Words with Empty Lemma: %s ...\n", joinFirst(s.EmptyLemma.Words, SummaryExampleLimit))
	fmt.Fprintf(&sb, "Entries with Empty Dictionary: %d\n", s.EmptyDictionary.Count)
	fmt.Fprintf(&sb, "Words with Empty Dictionary: %s ...\n", joinFirst(s.EmptyDictionary.Words, SummaryExampleLimit))
	fmt.Fprintf(&sb, "Unique Dictionary Entries: %s\n", strings.Join(s.UniqueDictionaries, " | "))
	fmt.Fprintf(&sb, "Unclassified Line Starts: %d\n", s.Unclassified)
	return sb.String()
}

// EmptyFieldsReport lists every word with an empty lemma or dictionary,
// without the truncation applied by Summary.
func (s Stats) EmptyFieldsReport() string {
	return fmt.Sprintf("Empty Lemma Entries:\n%s\n\nEmpty Dictionary Entries:\n%s\n",
		strings.Join(s.EmptyLemma.Words, ", "),
		strings.Join(s.EmptyDictionary.Words, ", "))
}

func joinFirst(words []string, n int) string {
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, ", ")
}
