package wordrefs

import (
	"log/slog"

	"github.com/tsawler/wordrefs/column"
	"github.com/tsawler/wordrefs/layout"
)

// ExtractOptions holds configuration for record extraction.
type ExtractOptions struct {
	// Page selection (1-indexed); nil means all pages
	pages []int

	// Column bands and skipped block indices (nil means block 0)
	columns      column.Layout
	headerBlocks []int

	// PDF decoding, only used when the extractor opens the file itself
	encoding string
	layout   layout.Config

	workers int
	logger  *slog.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		columns: column.DefaultLayout(),
		layout:  layout.DefaultConfig(),
		workers: 1,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	c := o
	if o.pages != nil {
		c.pages = append([]int(nil), o.pages...)
	}
	if o.headerBlocks != nil {
		c.headerBlocks = append([]int{}, o.headerBlocks...)
	}
	return c
}
