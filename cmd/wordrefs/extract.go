package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/wordrefs"
	"github.com/tsawler/wordrefs/export"
	"github.com/tsawler/wordrefs/model"
)

var extractCmd = &cobra.Command{
	Use:   "extract [pdf]",
	Short: "Rebuild records from the PDF and write the raw artifacts",
	Long: `Extract reads the configured page range, rebuilds one record per table
row and writes the records JSON, the statistics summary and the empty
fields report. The summary is also printed to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	f := extractCmd.Flags()
	f.Int("start", 0, "first page to process (1-based)")
	f.Int("end", 0, "last page to process, 0 for the last page of the document")
	f.String("encoding", "", "encoding of the PDF strings (IANA name)")
	f.Int("workers", 1, "pages reconstructed concurrently")
	f.String("records", "", "records JSON output path")
	f.String("stats", "", "statistics summary output path")
	f.String("empty-fields", "", "empty fields report output path")
	f.String("sqlite", "", "SQLite database output path (optional)")
	bindFlags(f, map[string]string{
		"start":        "input.start_page",
		"end":          "input.end_page",
		"encoding":     "input.encoding",
		"workers":      "workers",
		"records":      "output.records_json",
		"stats":        "output.stats_text",
		"empty-fields": "output.empty_fields_text",
		"sqlite":       "output.sqlite",
	})
}

func runExtract(cmd *cobra.Command, args []string) error {
	columns, err := cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	path := cfg.Input.Path
	if len(args) == 1 {
		path = args[0]
	}

	ext := wordrefs.Open(path).
		Encoding(cfg.Input.Encoding).
		Tolerances(cfg.Tolerances()).
		Layout(columns).
		HeaderBlocks(cfg.Layout.HeaderBlocks...).
		Workers(cfg.Workers).
		Logger(logger)

	end := cfg.Input.EndPage
	if end == 0 {
		n, err := ext.PageCount()
		if err != nil {
			return err
		}
		end = n
	}
	logger.Info("extracting", "pdf", path, "start", cfg.Input.StartPage, "end", end)

	res, warnings, err := ext.PageRange(cfg.Input.StartPage, end).Records(cmd.Context())
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warn(w.Message, "page", w.Page, "code", w.Code.String())
	}

	records := res.Records
	if records == nil {
		records = []model.Record{}
	}
	if out := cfg.Output.RecordsJSON; out != "" {
		if err := export.WriteJSON(out, records); err != nil {
			return err
		}
		logger.Info("records written", "path", out, "records", len(res.Records))
	}
	summary := res.Stats.Summary()
	if out := cfg.Output.StatsText; out != "" {
		if err := export.WriteText(out, summary, ""); err != nil {
			return err
		}
	}
	if out := cfg.Output.EmptyFieldsText; out != "" {
		if err := export.WriteText(out, res.Stats.EmptyFieldsReport(), ""); err != nil {
			return err
		}
	}
	if out := cfg.Output.SQLite; out != "" {
		if err := export.WriteSQLite(cmd.Context(), out, res.Records, res.Stats.UniqueDictionaries); err != nil {
			return err
		}
		logger.Info("sqlite written", "path", out)
	}

	fmt.Fprint(cmd.OutOrStdout(), summary)
	return nil
}
