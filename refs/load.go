package refs

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tsawler/wordrefs/model"
)

// ErrSchema is wrapped by load errors for documents that do not match
// their schema.
var ErrSchema = errors.New("refs: document does not match schema")

//go:embed schema/*.json
var schemaFS embed.FS

var (
	recordsSchema  = sync.OnceValues(func() (*jsonschema.Schema, error) { return compileSchema("records.json") })
	wordListSchema = sync.OnceValues(func() (*jsonschema.Schema, error) { return compileSchema("wordlist.json") })
	entriesSchema  = sync.OnceValues(func() (*jsonschema.Schema, error) { return compileSchema("entries.json") })
)

func compileSchema(name string) (*jsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile("schema/" + name)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to load schema %s: %w", name, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}
	return schema, nil
}

// decode validates data against schema and then unmarshals it into v.
func decode(schema func() (*jsonschema.Schema, error), data []byte, v any) error {
	s, err := schema()
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return json.Unmarshal(data, v)
}

// ReadRecords decodes a JSON array of records.
func ReadRecords(r io.Reader) ([]model.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var out []model.Record
	if err := decode(recordsSchema, data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadWordList decodes a word list document of the form {"words": [...]}.
func ReadWordList(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Words []string `json:"words"`
	}
	if err := decode(wordListSchema, data, &doc); err != nil {
		return nil, err
	}
	return doc.Words, nil
}

// ReadEntries decodes a JSON array of enriched entries.
func ReadEntries(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var out []Entry
	if err := decode(entriesSchema, data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadRecords reads a records file.
func LoadRecords(path string) ([]model.Record, error) {
	return loadFile(path, ReadRecords)
}

// LoadWordList reads a word list file.
func LoadWordList(path string) ([]string, error) {
	return loadFile(path, ReadWordList)
}

// LoadEntries reads an enriched entries file.
func LoadEntries(path string) ([]Entry, error) {
	return loadFile(path, ReadEntries)
}

func loadFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	v, err := read(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
