package wordrefs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/wordrefs/column"
	"github.com/tsawler/wordrefs/layout"
	"github.com/tsawler/wordrefs/reader"
	"github.com/tsawler/wordrefs/record"
	"github.com/tsawler/wordrefs/stats"
)

// ErrPageOutOfRange is returned when a selected page is not in the document.
var ErrPageOutOfRange = errors.New("page out of range")

// pageNoter is implemented by sources that report per-page anomalies.
type pageNoter interface {
	PageNotes(n int) []string
}

// Extractor provides a fluent interface for reconstructing records.
// Each configuration method returns a new Extractor, so chains can be
// shared and extended safely.
type Extractor struct {
	// Source
	filename string
	source   PageSource

	// Lifecycle
	ownsSource bool
	opened     bool

	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:   e.filename,
		source:     e.source,
		ownsSource: e.ownsSource,
		opened:     e.opened,
		options:    e.options.clone(),
		err:        e.err,
	}
}

// ensureSource opens the PDF if no source is open yet.
func (e *Extractor) ensureSource() error {
	if e.opened {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}
	r, err := reader.Open(e.filename,
		reader.WithEncoding(e.options.encoding),
		reader.WithLayout(e.options.layout))
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	e.source = r
	e.ownsSource = true
	e.opened = true
	return nil
}

// Close releases the source if the extractor opened it. It is safe to call
// Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsSource && e.source != nil {
		err := e.source.Close()
		e.source = nil
		e.ownsSource = false
		e.opened = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages selects pages to extract (1-indexed). Multiple calls are cumulative.
func (e *Extractor) Pages(pages ...int) *Extractor {
	ext := e.clone()
	ext.options.pages = append(ext.options.pages, pages...)
	return ext
}

// PageRange selects a range of pages (1-indexed, inclusive).
//
// Example:
//
//	res, _, err := wordrefs.Open("refs.pdf").PageRange(4, 67).Records(ctx)
func (e *Extractor) PageRange(start, end int) *Extractor {
	ext := e.clone()
	if end < start {
		ext.err = fmt.Errorf("%w: range %d-%d is empty", ErrPageOutOfRange, start, end)
		return ext
	}
	for i := start; i <= end; i++ {
		ext.options.pages = append(ext.options.pages, i)
	}
	return ext
}

// Layout sets the column bands. An invalid layout fails the chain.
func (e *Extractor) Layout(l column.Layout) *Extractor {
	ext := e.clone()
	if err := l.Validate(); err != nil {
		ext.err = fmt.Errorf("column layout: %w", err)
		return ext
	}
	ext.options.columns = l
	return ext
}

// HeaderBlocks sets the block indices skipped on every page. Calling it with
// no arguments disables header skipping.
func (e *Extractor) HeaderBlocks(indices ...int) *Extractor {
	ext := e.clone()
	ext.options.headerBlocks = append([]int{}, indices...)
	return ext
}

// Encoding sets the single-byte encoding of the PDF strings.
func (e *Extractor) Encoding(name string) *Extractor {
	ext := e.clone()
	ext.options.encoding = name
	return ext
}

// Tolerances sets the layout tolerances used to group fragments.
func (e *Extractor) Tolerances(cfg layout.Config) *Extractor {
	ext := e.clone()
	ext.options.layout = cfg
	return ext
}

// Workers sets how many pages are reconstructed concurrently. The output is
// identical to a sequential run.
func (e *Extractor) Workers(n int) *Extractor {
	ext := e.clone()
	if n < 1 {
		ext.err = fmt.Errorf("workers must be at least 1, got %d", n)
		return ext
	}
	ext.options.workers = n
	return ext
}

// Logger sets the logger for run and debug events.
func (e *Extractor) Logger(l *slog.Logger) *Extractor {
	ext := e.clone()
	ext.options.logger = l
	return ext
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the number of pages in the source. It does not close
// the source.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureSource(); err != nil {
		return 0, err
	}
	return e.source.PageCount(), nil
}

// pageResult is the output of one page before merging
type pageResult struct {
	record.PageResult
	agg      *stats.Aggregator
	warnings []Warning
}

// Records reconstructs the records of the selected pages in page order. A
// page that cannot be read aborts the run; anomalies are returned as
// warnings.
func (e *Extractor) Records(ctx context.Context) (*Result, []Warning, error) {
	if e.err != nil {
		e.Close()
		return nil, nil, e.err
	}
	if err := e.ensureSource(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	pages, err := e.resolvePages()
	if err != nil {
		return nil, nil, err
	}

	logger := e.options.logger
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]pageResult, len(pages))
	if e.options.workers > 1 && len(pages) > 1 {
		err = e.runParallel(ctx, pages, results, logger)
	} else {
		err = e.runSequential(ctx, pages, results, logger)
	}
	if err != nil {
		return nil, nil, err
	}

	agg := stats.NewAggregator()
	agg.SetPagesToProcess(len(pages))
	res := &Result{}
	var warnings []Warning
	for _, pr := range results {
		res.Records = append(res.Records, pr.Records...)
		agg.Merge(pr.agg)
		warnings = append(warnings, pr.warnings...)
	}
	res.Stats = agg.Snapshot()

	logger.Info("extraction complete",
		"pages", res.Stats.PagesProcessed,
		"records", res.Stats.TotalEntries,
		"missing_fields", res.Stats.MissingFieldCount,
		"unclassified", res.Stats.Unclassified,
		"warnings", len(warnings))

	return res, warnings, nil
}

func (e *Extractor) runSequential(ctx context.Context, pages []int, results []pageResult, logger *slog.Logger) error {
	for i, n := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		pr, err := e.processPage(n, logger)
		if err != nil {
			return err
		}
		results[i] = pr
	}
	return nil
}

func (e *Extractor) runParallel(ctx context.Context, pages []int, results []pageResult, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.options.workers)
	for i, n := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pr, err := e.processPage(n, logger)
			if err != nil {
				return err
			}
			results[i] = pr
			return nil
		})
	}
	return g.Wait()
}

// processPage reads and reconstructs one page with its own aggregator
func (e *Extractor) processPage(n int, logger *slog.Logger) (pageResult, error) {
	page, err := e.source.Page(n)
	if err != nil {
		return pageResult{}, fmt.Errorf("page %d: %w", n, err)
	}

	agg := stats.NewAggregator()
	rc := record.New(record.Config{
		Layout:       e.options.columns,
		HeaderBlocks: e.options.headerBlocks,
		Logger:       logger,
	}, agg)
	pr := pageResult{PageResult: rc.Page(page), agg: agg}

	if page.FragmentCount() == 0 {
		pr.warnings = append(pr.warnings, Warning{Page: n, Code: WarnNoText, Message: "no text found"})
	}
	if pr.Unclassified > 0 {
		pr.warnings = append(pr.warnings, Warning{
			Page:    n,
			Code:    WarnUnclassified,
			Message: fmt.Sprintf("%d line starts outside every column band were dropped", pr.Unclassified),
		})
	}
	if noter, ok := e.source.(pageNoter); ok {
		for _, note := range noter.PageNotes(n) {
			pr.warnings = append(pr.warnings, Warning{Page: n, Code: WarnContent, Message: note})
		}
	}

	logger.Debug("page reconstructed", "page", n, "blocks", page.BlockCount(), "records", len(pr.Records))
	return pr, nil
}

// resolvePages validates the selection and returns it sorted and unique
func (e *Extractor) resolvePages() ([]int, error) {
	count := e.source.PageCount()

	if len(e.options.pages) == 0 {
		pages := make([]int, count)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages, nil
	}

	seen := make(map[int]bool)
	var pages []int
	for _, p := range e.options.pages {
		if p < 1 || p > count {
			return nil, fmt.Errorf("%w: page %d (1-%d)", ErrPageOutOfRange, p, count)
		}
		if !seen[p] {
			seen[p] = true
			pages = append(pages, p)
		}
	}
	sort.Ints(pages)
	return pages, nil
}

var _ PageSource = (*reader.Reader)(nil)
