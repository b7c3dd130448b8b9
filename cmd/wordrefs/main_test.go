package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/wordrefs/model"
	"github.com/tsawler/wordrefs/refs"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("wordrefs %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func writeRecords(t *testing.T, path string, records []model.Record) {
	t.Helper()
	data, err := json.Marshal(records)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestVersion(t *testing.T) {
	isolate(t)
	if out := execute(t, "version"); !strings.HasPrefix(out, "wordrefs dev") {
		t.Errorf("version output = %q", out)
	}
}

func TestConfigInit(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "wordrefs.yaml")
	execute(t, "config", "init", path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "windows-1253") {
		t.Errorf("default config missing encoding:\n%s", data)
	}
}

func TestProcessingPipeline(t *testing.T) {
	dir := isolate(t)
	raw := filepath.Join(dir, "raw.json")
	writeRecords(t, raw, []model.Record{
		{Word: "ΑΒΑΚΑΣ ΑΒΑΞ", Dictionary: "ΛΚΝ"},
		{Word: "Α", Lemma: "Α", Dictionary: "ΠΑΠ"},
		{Word: "ΘΑΛΑΣΣΑ", Lemma: "ΘΑΛΑΣΣΑ ΜΕΓ"},
	})
	words := filepath.Join(dir, "words.json")
	if err := os.WriteFile(words, []byte(`{"words":["ΑΒΑΚΑΣ","ΘΑΛΑΣΣΑ","ΖΩΗ"]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	fixed := filepath.Join(dir, "fixed.json")
	filtered := filepath.Join(dir, "filtered.json")
	merged := filepath.Join(dir, "merged.json")
	enriched := filepath.Join(dir, "enriched.json")
	meta := filepath.Join(dir, "meta.json")
	web := filepath.Join(dir, "web")

	execute(t, "fix", raw, fixed)
	execute(t, "filter", fixed, filtered, "--min", "2", "--max", "8")
	execute(t, "merge", words, filtered, merged)
	execute(t, "enrich", merged, enriched, "--metadata", meta)
	execute(t, "split", enriched, web)

	entries, err := refs.LoadEntries(enriched)
	if err != nil {
		t.Fatalf("LoadEntries() error = %v", err)
	}
	want := []model.Record{
		{Word: "ΑΒΑΚΑΣ", Lemma: "ΑΒΑΞ", Dictionary: "ΛΚΝ"},
		{Word: "ΘΑΛΑΣΣΑ", Lemma: "ΘΑΛΑΣΣΑ", Dictionary: "ΜΕΓ"},
		{Word: "ΖΩΗ"},
	}
	if len(entries) != len(want) {
		t.Fatalf("len(entries) = %d, want %d", len(entries), len(want))
	}
	for i := range want {
		if entries[i].Record != want[i] {
			t.Errorf("entries[%d] = %+v, want %+v", i, entries[i].Record, want[i])
		}
	}

	var m refs.Metadata
	data, _ := os.ReadFile(meta)
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if m != (refs.Metadata{TotalWords: 3, MinLength: 3, MaxLength: 7}) {
		t.Errorf("metadata = %+v", m)
	}

	for _, name := range []string{
		"words_by_starting_letter/words_starting_with_Α.json",
		"words_by_starting_letter/words_starting_with_Θ_min.json",
		"words_by_starting_letter/words_starting_with_Ζ.json",
		"words_by_anagram/words_grouped_by_anagrams.json",
		"words_by_anagram/words_grouped_by_anagrams_min.json",
	} {
		if _, err := os.Stat(filepath.Join(web, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

// buildPDF writes a Helvetica PDF with one page per content stream.
func buildPDF(streams ...string) []byte {
	var b bytes.Buffer
	n := len(streams)
	total := 3 + 2*n
	offsets := make([]int, total+1)

	b.WriteString("%PDF-1.4\n")
	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	kids := make([]string, n)
	for i := range streams {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	offsets[2] = b.Len()
	fmt.Fprintf(&b, "2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", strings.Join(kids, " "), n)
	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")
	for i, s := range streams {
		page, content := 4+2*i, 5+2*i
		offsets[page] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Contents %d 0 R /Resources << /Font << /F1 3 0 R >> >> >>\nendobj\n", page, content)
		offsets[content] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", content, len(s), s)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", total+1)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= total; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%EOF\n", total+1, xref)
	return b.Bytes()
}

func TestWordsFeedsMerge(t *testing.T) {
	dir := isolate(t)
	pdf := filepath.Join(dir, "words.pdf")
	data := buildPDF(
		"BT /F1 10 Tf 1 0 0 1 30 700 Tm (zoi aba) Tj 1 0 0 1 30 650 Tm (12) Tj ET",
		"BT /F1 10 Tf 1 0 0 1 30 700 Tm (aba) Tj 1 0 0 1 30 680 Tm (beta) Tj 1 0 0 1 30 650 Tm (13) Tj ET",
	)
	if err := os.WriteFile(pdf, data, 0o644); err != nil {
		t.Fatal(err)
	}

	words := filepath.Join(dir, "json", "words.json")
	pagesDir := filepath.Join(dir, "pages")
	stats := filepath.Join(dir, "words_stats.txt")
	out := execute(t, "words", pdf, "--start", "1", "--end", "2",
		"--words-json", words, "--pages-dir", pagesDir, "--stats", stats)
	if !strings.Contains(out, "Total unique words: 3") {
		t.Errorf("summary = %q", out)
	}

	list, err := refs.LoadWordList(words)
	if err != nil {
		t.Fatalf("LoadWordList() error = %v", err)
	}
	if want := []string{"ABA", "BETA", "ZOI"}; strings.Join(list, ",") != strings.Join(want, ",") {
		t.Errorf("words = %v, want %v", list, want)
	}

	dump, err := os.ReadFile(filepath.Join(pagesDir, "page_1_full_text.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(dump), "Full text from page 1:\n\n") {
		t.Errorf("page dump = %q", dump)
	}
	statsText, _ := os.ReadFile(stats)
	if !strings.HasPrefix(string(statsText), "Scrabble Words Extraction Statistics\n\nPage 1: 2 words extracted") {
		t.Errorf("stats = %q", statsText)
	}

	refsFile := filepath.Join(dir, "refs.json")
	writeRecords(t, refsFile, []model.Record{{Word: "BETA", Lemma: "BETA", Dictionary: "ΛΚΝ"}})
	merged := filepath.Join(dir, "merged.json")
	execute(t, "merge", words, refsFile, merged)
	records, err := refs.LoadRecords(merged)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 || records[1].Dictionary != "ΛΚΝ" || records[0].Lemma != "" {
		t.Errorf("merged = %+v", records)
	}
}
