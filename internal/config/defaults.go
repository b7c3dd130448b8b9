package config

import (
	"github.com/tsawler/wordrefs/column"
	"github.com/tsawler/wordrefs/wordlist"
)

// Default returns the configuration of the reference runs over the 2020
// word reference list and the 2024 accepted-word list.
func Default() Config {
	var bands []BandConfig
	for _, b := range column.DefaultLayout().Bands() {
		bands = append(bands, BandConfig{Name: b.Kind.String(), Lo: b.Lo, Hi: b.Hi})
	}
	return Config{
		Input: InputConfig{
			Path:      "assets/pdf/scrabble-word-refs-2020-02-12.pdf",
			StartPage: 4,
			EndPage:   67,
			Encoding:  "windows-1253",
		},
		Layout: LayoutConfig{
			Bands:         bands,
			HeaderBlocks:  []int{0},
			LineTolerance: 0.5,
			ColumnGap:     1.0,
			BlockGap:      1.5,
		},
		Output: OutputConfig{
			RecordsJSON:     "assets/data/json/scrabble_word_refs_raw.json",
			StatsText:       "assets/data/txt/scrabble_word_refs_raw_stats.txt",
			EmptyFieldsText: "assets/data/txt/empty_fields_stats.txt",
		},
		Words: WordsConfig{
			Path:              "assets/pdf/scrabble-acceptable-greek-words-2-8-2024_09_01.pdf",
			StartPage:         4,
			EndPage:           463,
			Encoding:          "windows-1253",
			HeaderPattern:     wordlist.DefaultHeaderPattern,
			DatePattern:       wordlist.DefaultDatePattern,
			PageNumberPattern: wordlist.DefaultPageNumberPattern,
			WordsJSON:         "assets/data/json/scrabble_words.json",
			PagesDir:          "assets/data/txt/scrabble_words",
			StatsText:         "assets/data/txt/scrabble_words_stats.txt",
		},
		Workers:  1,
		LogLevel: "info",
	}
}
