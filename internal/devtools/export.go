package devtools

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Session dump. Human-readable, written once on exit; nothing reads it back.

type session struct {
	Entries []Entry `json:"entries"`
}

// Export writes the recorded history as indented JSON.
func (m *Monitor) Export(w io.Writer) error {
	b, err := json.MarshalIndent(session{Entries: m.Entries()}, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// SaveFile writes the history to path, creating parent directories.
func (m *Monitor) SaveFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := m.Export(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}
