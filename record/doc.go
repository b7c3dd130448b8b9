// Package record reconstructs four-field records from the positioned lines
// of a tabular page.
//
// Each text block is walked line by line. The leading fragment of a line is
// classified by its x0 into a column band, and that band drives a small state
// machine whose state is the field that most recently received text. The
// remaining fragments on the line continue that field.
//
// # State machine
//
// The transitions are exposed through [Transition] so they can be tested in
// isolation:
//
//   - A Word lead starts a new row. The record in progress is emitted first
//     when it already has a word and has moved past the word column.
//   - Lemma and Dictionary leads merge into their field.
//   - A Comment lead merges when the comment field is already active and
//     overwrites the stale value otherwise.
//   - An Unclassified lead is dropped and leaves the active field unchanged.
//     Drops are counted and logged at Debug level.
//
// State never crosses a block boundary. The last record of a block is
// emitted when the block ends.
//
// Example usage:
//
//	agg := stats.NewAggregator()
//	rc := record.New(record.Config{Layout: column.DefaultLayout()}, agg)
//	res := rc.Page(page)
//	for _, r := range res.Records {
//	    fmt.Println(r.Word, r.Lemma)
//	}
package record
