// Package wordrefs reconstructs word reference records from the fixed
// four-column tables of a PDF word list.
//
// Basic usage:
//
//	res, warnings, err := wordrefs.Open("refs.pdf").
//	    PageRange(4, 67).
//	    Encoding("windows-1253").
//	    Records(ctx)
//	if err != nil {
//	    // the document could not be read
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", wordrefs.FormatWarnings(warnings))
//	}
//	fmt.Print(res.Stats.Summary())
//
// Each row of the table is rendered as independent fragments aligned to
// fixed column bands (word, lemma, dictionary, comment). Records are built
// by the record package; the column package classifies positions and the
// stats package counts data-quality gaps. Any [PageSource] can feed the
// extractor, which is how tests drive it without a PDF.
package wordrefs

import (
	"github.com/tsawler/wordrefs/model"
	"github.com/tsawler/wordrefs/stats"
)

// PageSource supplies laid-out pages. Page numbers are 1-based.
type PageSource interface {
	PageCount() int
	Page(n int) (*model.Page, error)
	Close() error
}

// Result is the outcome of one extraction run.
type Result struct {
	Records []model.Record
	Stats   stats.Stats
}

// Open returns an Extractor for the PDF at filename. The file is opened by
// the terminal operation and closed when it returns.
//
// Example:
//
//	res, _, err := wordrefs.Open("refs.pdf").Records(ctx)
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromSource returns an Extractor over an already open source. The caller
// keeps ownership and must close it.
func FromSource(src PageSource) *Extractor {
	return &Extractor{
		source:  src,
		opened:  true,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call returning (T, error) and panics if the
// error is non-nil. It is intended for scripts and tests.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRecords wraps Records and panics on error, discarding warnings.
//
// Example:
//
//	res := wordrefs.MustRecords(wordrefs.Open("refs.pdf").Records(ctx))
func MustRecords(res *Result, _ []Warning, err error) *Result {
	if err != nil {
		panic(err)
	}
	return res
}
