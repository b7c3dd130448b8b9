package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tsawler/wordrefs/export"
	"github.com/tsawler/wordrefs/reader"
	"github.com/tsawler/wordrefs/wordlist"
)

var wordsCmd = &cobra.Command{
	Use:   "words [pdf]",
	Short: "Extract the sorted accepted-word list from a word list PDF",
	Long: `Words reads the configured pages of the accepted-word list, strips the
running header, dates and page numbers, and writes the distinct upper-cased
words as {"words": [...]}, the word list that merge consumes. Each page's
raw text and a statistics file are written alongside.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWords,
}

func init() {
	f := wordsCmd.Flags()
	f.Int("start", 0, "first page to process (1-based)")
	f.Int("end", 0, "last page to process, 0 for the last page of the document")
	f.String("encoding", "", "encoding of the PDF strings (IANA name)")
	f.String("words-json", "", "word list JSON output path")
	f.String("pages-dir", "", "directory for per-page text dumps")
	f.String("stats", "", "statistics output path")
	bindFlags(f, map[string]string{
		"start":      "words.start_page",
		"end":        "words.end_page",
		"encoding":   "words.encoding",
		"words-json": "words.words_json",
		"pages-dir":  "words.pages_dir",
		"stats":      "words.stats_text",
	})
}

func runWords(cmd *cobra.Command, args []string) error {
	cleaner, err := cfg.ValidateWords()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	path := cfg.Words.Path
	if len(args) == 1 {
		path = args[0]
	}

	src, err := reader.Open(path, reader.WithEncoding(cfg.Words.Encoding))
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	defer src.Close()

	end := cfg.Words.EndPage
	if end == 0 {
		end = src.PageCount()
	}
	var pages []int
	for n := cfg.Words.StartPage; n <= end; n++ {
		pages = append(pages, n)
	}
	logger.Info("extracting words", "pdf", path, "start", cfg.Words.StartPage, "end", end)

	res, err := wordlist.Extract(cmd.Context(), src, pages, wordlist.Config{Cleaner: cleaner, Logger: logger})
	if err != nil {
		return err
	}

	if dir := cfg.Words.PagesDir; dir != "" {
		for _, p := range res.Pages {
			name := filepath.Join(dir, fmt.Sprintf("page_%d_full_text.txt", p.Number))
			if err := export.WriteText(name, p.Text, fmt.Sprintf("Full text from page %d:", p.Number)); err != nil {
				return err
			}
		}
	}
	summary := res.Summary()
	if out := cfg.Words.StatsText; out != "" {
		if err := export.WriteText(out, summary, "Scrabble Words Extraction Statistics"); err != nil {
			return err
		}
	}
	if out := cfg.Words.WordsJSON; out != "" {
		if err := export.WriteJSON(out, res.Document()); err != nil {
			return err
		}
		logger.Info("word list written", "path", out, "words", len(res.Words))
	}

	fmt.Fprintln(cmd.OutOrStdout(), summary)
	return nil
}
