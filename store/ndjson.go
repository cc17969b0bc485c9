// Package store persists extraction results: NDJSON as the canonical
// interchange format, CSV for spreadsheets and SQLite for ad-hoc
// querying.
package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"vuadocau-analyzer/internal/types"
)

// WriteNDJSON writes one JSON object per record, one record per line.
func WriteNDJSON(w io.Writer, records []types.ProductRecord) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to encode record %s: %w", rec.ProductURL, err)
		}
	}
	return nil
}

// ReadNDJSON reads records written by WriteNDJSON. Blank lines are
// skipped; a malformed line is an error.
func ReadNDJSON(r io.Reader) ([]types.ProductRecord, error) {
	var records []types.ProductRecord
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var rec types.ProductRecord
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, fmt.Errorf("malformed record on line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return records, nil
}

// SaveNDJSON writes records to path, replacing any existing file.
func SaveNDJSON(path string, records []types.ProductRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteNDJSON(f, records); err != nil {
		return err
	}
	return f.Close()
}

// LoadNDJSON reads records from path.
func LoadNDJSON(path string) ([]types.ProductRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadNDJSON(f)
}
