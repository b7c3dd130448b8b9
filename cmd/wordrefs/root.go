package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tsawler/wordrefs/internal/config"
)

var (
	cfgFile  string
	logLevel string

	cfg    *config.Config
	logger *slog.Logger
)

// configKey is the flag annotation naming the config key a flag overrides.
const configKey = "wordrefs_config_key"

// bindFlags records which config key each named flag overrides.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		if err := fs.SetAnnotation(name, configKey, []string{key}); err != nil {
			panic(err)
		}
	}
}

var rootCmd = &cobra.Command{
	Use:   "wordrefs",
	Short: "Rebuild word reference records from a positional PDF table",
	Long: `wordrefs reads a PDF word reference list laid out as a four column
table (word, lemma, dictionary, comments) and rebuilds one record per row
from the position of each text fragment.

The processing commands then repair, filter, merge and enrich the records
for publication.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./wordrefs.yaml or ~/.wordrefs/wordrefs.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "log level: debug, info, warn or error",
	)

	bindFlags(rootCmd.PersistentFlags(), map[string]string{"log-level": "log_level"})

	rootCmd.AddCommand(extractCmd, wordsCmd, fixCmd, filterCmd, mergeCmd, enrichCmd, splitCmd, configCmd, versionCmd)
}

// setup loads the configuration and builds the run logger.
func setup(cmd *cobra.Command, args []string) error {
	var bindings []config.FlagBinding
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if keys := f.Annotations[configKey]; len(keys) == 1 {
			bindings = append(bindings, config.FlagBinding{Key: keys[0], Flag: f})
		}
	})

	loaded, err := config.Load(cfgFile, bindings...)
	if err != nil {
		return err
	}
	level, err := loaded.Level()
	if err != nil {
		return err
	}
	cfg = loaded

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})).With("run_id", uuid.NewString())
	slog.SetDefault(logger)
	return nil
}

// exactArgs is cobra.ExactArgs with the expected arguments named.
func exactArgs(names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != len(names) {
			return fmt.Errorf("%s expects %d arguments (%v), got %d", cmd.Name(), len(names), names, len(args))
		}
		return nil
	}
}
