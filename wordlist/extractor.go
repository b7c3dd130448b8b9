package wordlist

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/tsawler/wordrefs/model"
)

// PageSource supplies pages by 1-based number.
type PageSource interface {
	PageCount() int
	Page(n int) (*model.Page, error)
}

// Config controls an extraction run.
type Config struct {
	// Cleaner strips page furniture; nil uses DefaultCleaner.
	Cleaner *Cleaner

	// Logger receives per-page Debug events; nil uses slog.Default.
	Logger *slog.Logger
}

// PageWords is the outcome for one page.
type PageWords struct {
	Number int
	// Text is the raw page text before cleaning.
	Text  string
	Words []string
}

// Result holds the words of a run.
type Result struct {
	Pages []PageWords

	// Words is the sorted list of distinct words across all pages.
	Words []string

	PagesToProcess int
	TotalWords     int
}

// Extract reads the given pages in order. A page that cannot be read
// aborts the run. Context cancellation is checked between pages.
func Extract(ctx context.Context, src PageSource, pages []int, cfg Config) (*Result, error) {
	cleaner := cfg.Cleaner
	if cleaner == nil {
		cleaner = DefaultCleaner()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	count := src.PageCount()
	res := &Result{PagesToProcess: len(pages)}
	seen := make(map[string]struct{})
	for _, n := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if n < 1 || n > count {
			return nil, fmt.Errorf("page %d out of range (1-%d)", n, count)
		}
		page, err := src.Page(n)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", n, err)
		}

		text := strings.TrimSpace(page.Text())
		words := cleaner.Words(text)
		res.Pages = append(res.Pages, PageWords{Number: n, Text: text, Words: words})
		res.TotalWords += len(words)
		for _, w := range words {
			if _, ok := seen[w]; !ok {
				seen[w] = struct{}{}
				res.Words = append(res.Words, w)
			}
		}
		logger.Debug("page words extracted", "page", n, "words", len(words))
	}
	slices.Sort(res.Words)
	if res.Words == nil {
		res.Words = []string{}
	}
	return res, nil
}

// Summary renders the per-page counts followed by the run totals.
func (r *Result) Summary() string {
	var lines []string
	for _, p := range r.Pages {
		lines = append(lines, fmt.Sprintf("Page %d: %d words extracted", p.Number, len(p.Words)))
	}
	lines = append(lines,
		fmt.Sprintf("Total pages to process: %d", r.PagesToProcess),
		fmt.Sprintf("Total pages actually processed: %d", len(r.Pages)),
		fmt.Sprintf("Total words extracted (including duplicates): %d", r.TotalWords),
		fmt.Sprintf("Total unique words: %d", len(r.Words)),
	)
	return strings.Join(lines, "\n")
}

// Document is the JSON form of a word list, the input of refs.ReadWordList.
type Document struct {
	Words []string `json:"words"`
}

// Document returns the word list document for the run.
func (r *Result) Document() Document {
	return Document{Words: r.Words}
}
