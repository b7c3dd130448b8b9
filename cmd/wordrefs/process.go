package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tsawler/wordrefs/export"
	"github.com/tsawler/wordrefs/model"
	"github.com/tsawler/wordrefs/refs"
)

var fixCmd = &cobra.Command{
	Use:   "fix IN OUT",
	Short: "Move trailing tokens into empty lemma and dictionary fields",
	Args:  exactArgs("IN", "OUT"),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := refs.LoadRecords(args[0])
		if err != nil {
			return err
		}
		if err := export.WriteJSON(args[1], refs.Fix(records)); err != nil {
			return err
		}
		logger.Info("records fixed", "in", args[0], "out", args[1], "records", len(records))
		return nil
	},
}

var filterCmd = &cobra.Command{
	Use:   "filter IN OUT",
	Short: "Keep records whose headword length is within bounds",
	Args:  exactArgs("IN", "OUT"),
	RunE: func(cmd *cobra.Command, args []string) error {
		lo, _ := cmd.Flags().GetInt("min")
		hi, _ := cmd.Flags().GetInt("max")
		if lo < 1 || hi < lo {
			return fmt.Errorf("invalid length bounds %d-%d", lo, hi)
		}
		records, err := refs.LoadRecords(args[0])
		if err != nil {
			return err
		}
		kept := refs.FilterByLength(records, lo, hi)
		if kept == nil {
			kept = []model.Record{}
		}
		if err := export.WriteJSON(args[1], kept); err != nil {
			return err
		}
		logger.Info("records filtered", "in", len(records), "kept", len(kept), "min", lo, "max", hi)
		return nil
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge WORDS REFS OUT",
	Short: "Produce one record per word of a word list",
	Args:  exactArgs("WORDS", "REFS", "OUT"),
	RunE: func(cmd *cobra.Command, args []string) error {
		words, err := refs.LoadWordList(args[0])
		if err != nil {
			return err
		}
		records, err := refs.LoadRecords(args[1])
		if err != nil {
			return err
		}
		merged := refs.MergeWordList(words, records)
		if err := export.WriteJSON(args[2], merged); err != nil {
			return err
		}
		logger.Info("word list merged", "words", len(words), "refs", len(records), "out", args[2])
		return nil
	},
}

var enrichCmd = &cobra.Command{
	Use:   "enrich IN OUT",
	Short: "Add alphagram, length and points to every record",
	Args:  exactArgs("IN", "OUT"),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := refs.LoadRecords(args[0])
		if err != nil {
			return err
		}
		entries, meta := refs.Enrich(records)
		if err := export.WriteJSON(args[1], entries); err != nil {
			return err
		}
		if path, _ := cmd.Flags().GetString("metadata"); path != "" {
			if err := export.WriteJSON(path, meta); err != nil {
				return err
			}
		}
		logger.Info("records enriched",
			"total_words", meta.TotalWords, "min_length", meta.MinLength, "max_length", meta.MaxLength)
		return nil
	},
}

var splitCmd = &cobra.Command{
	Use:   "split IN DIR",
	Short: "Write enriched entries grouped by first letter and by alphagram",
	Args:  exactArgs("IN", "DIR"),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := refs.LoadEntries(args[0])
		if err != nil {
			return err
		}
		dir := args[1]

		byLetter := filepath.Join(dir, "words_by_starting_letter")
		groups := refs.SplitByLetter(entries)
		for _, g := range groups {
			base := filepath.Join(byLetter, "words_starting_with_"+g.Letter)
			if err := writeBoth(base, g.Entries); err != nil {
				return err
			}
		}

		anagrams := filepath.Join(dir, "words_by_anagram", "words_grouped_by_anagrams")
		if err := writeBoth(anagrams, refs.GroupByAlphagram(entries)); err != nil {
			return err
		}
		logger.Info("entries split", "entries", len(entries), "letters", len(groups), "dir", dir)
		return nil
	},
}

// writeBoth writes a readable and a minified copy of v.
func writeBoth(base string, v any) error {
	if err := export.WriteJSONIndent(base+".json", v, "  "); err != nil {
		return err
	}
	return export.WriteJSONIndent(base+"_min.json", v, "")
}

func init() {
	filterCmd.Flags().Int("min", refs.DefaultMinLength, "minimum headword length in letters")
	filterCmd.Flags().Int("max", refs.DefaultMaxLength, "maximum headword length in letters")
	enrichCmd.Flags().String("metadata", "", "write total and length bounds as JSON to this path")
}
