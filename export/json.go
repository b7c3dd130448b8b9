package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Indent is the indentation used by WriteJSON.
const Indent = "    "

// WriteJSON writes v to path as indented JSON. Non-ASCII text is written
// literally and HTML characters are not escaped.
func WriteJSON(path string, v any) error {
	return WriteJSONIndent(path, v, Indent)
}

// WriteJSONIndent is WriteJSON with a caller-chosen indent. An empty
// indent writes compact JSON.
func WriteJSONIndent(path string, v any, indent string) error {
	return writeAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if indent != "" {
			enc.SetIndent("", indent)
		}
		return enc.Encode(v)
	})
}

// WriteText writes body to path. A non-empty intro is written first,
// followed by a blank line.
func WriteText(path, body, intro string) error {
	return writeAtomic(path, func(w io.Writer) error {
		if intro != "" {
			if _, err := io.WriteString(w, intro+"\n\n"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, body)
		return err
	})
}

// writeAtomic creates the parent directories of path, streams fill into a
// temporary file beside it and renames the file into place. On failure the
// temporary file is removed and any existing file at path is untouched.
func writeAtomic(path string, fill func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	bw := bufio.NewWriterSize(tmp, 64*1024)
	if err = fill(bw); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err = os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename into %s: %w", path, err)
	}
	return nil
}
