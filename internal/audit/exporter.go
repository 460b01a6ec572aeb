package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"versekeeper/internal/entities"
)

// Snapshot is a full dump of the application data, written by the debug
// export endpoint so a broken client database can be inspected offline.
type Snapshot struct {
	ExportedAt entities.Timestamp `json:"exportedAt"`
	Users      []entities.User    `json:"users"`
	Verses     []entities.Verse   `json:"verses"`
}

// Exporter writes JSON snapshots to a directory on disk.
type Exporter struct {
	ExportDir string
}

func NewExporter(exportDir string) *Exporter {
	return &Exporter{ExportDir: exportDir}
}

// SaveSnapshot writes the snapshot as an indented JSON file with a UUID4
// filename and returns the filename.
func (e *Exporter) SaveSnapshot(snapshot *Snapshot) (string, error) {
	if err := e.ensureExportDir(); err != nil {
		return "", fmt.Errorf("failed to ensure export directory: %w", err)
	}

	filename := fmt.Sprintf("%s.json", uuid.New().String())
	path := filepath.Join(e.ExportDir, filename)

	jsonData, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot file: %w", err)
	}

	return filename, nil
}

func (e *Exporter) ensureExportDir() error {
	if _, err := os.Stat(e.ExportDir); os.IsNotExist(err) {
		if err := os.MkdirAll(e.ExportDir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	return nil
}
