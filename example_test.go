package wordrefs_test

import (
	"context"
	"fmt"
	"log"

	"github.com/tsawler/wordrefs"
	"github.com/tsawler/wordrefs/column"
	"github.com/tsawler/wordrefs/export"
	"github.com/tsawler/wordrefs/refs"
)

// These examples show typical calls. They have no Output comments and are
// compiled but not run, since they need a PDF on disk.

func Example_extractRecords() {
	res, warnings, err := wordrefs.Open("scrabble-word-refs.pdf").
		PageRange(4, 67).
		Encoding("windows-1253").
		Records(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Print(res.Stats.Summary())
	for _, w := range warnings {
		fmt.Println("Warning:", w)
	}
}

func Example_customBands() {
	columns := column.MustLayout(
		column.Band{Kind: column.Word, Lo: 40, Hi: 41},
		column.Band{Kind: column.Lemma, Lo: 120, Hi: 121},
		column.Band{Kind: column.Dictionary, Lo: 200, Hi: 201},
		column.Band{Kind: column.Comment, Lo: 260, Hi: 261},
	)
	res, _, err := wordrefs.Open("refs.pdf").
		Layout(columns).
		HeaderBlocks(0, 1).
		Workers(4).
		Records(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	_ = export.WriteJSON("refs.json", res.Records)
}

func Example_processRecords() {
	records, err := refs.LoadRecords("scrabble_word_refs_raw.json")
	if err != nil {
		log.Fatal(err)
	}
	kept := refs.FilterByLength(refs.Fix(records), refs.DefaultMinLength, refs.DefaultMaxLength)
	entries, meta := refs.Enrich(kept)
	fmt.Println(meta.TotalWords, len(refs.SplitByLetter(entries)))
}
