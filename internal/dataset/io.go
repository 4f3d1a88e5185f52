package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SelectionRow is one balanced example as written to selection JSONL.
type SelectionRow struct {
	Text     string   `json:"text"`
	Label    int      `json:"label"`
	Language Language `json:"language"`
}

// WriteSelection writes the balanced selection as JSONL, one row per
// example in selection order, token values joined by single spaces.
func WriteSelection(path string, sel Selection) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create selection: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)
	for i := range sel.Labels {
		row := SelectionRow{
			Text:     strings.Join(sel.Texts[i], " "),
			Label:    sel.Labels[i],
			Language: sel.Langs[i],
		}
		if err := encoder.Encode(row); err != nil {
			return fmt.Errorf("encode selection row: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush selection: %w", err)
	}
	return nil
}

// WriteJSON writes an indented JSON document.
func WriteJSON(path string, value any) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}
	content, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	content = append(content, '\n')
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}
