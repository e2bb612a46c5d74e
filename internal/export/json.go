package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"frontiergen/internal/engine"
)

// WriteJSON writes the dataset document to path, creating parent directories
// as needed. The document shape is the visualization contract: metadata,
// per-asset stats, the full grid, and the frontier.
func WriteJSON(path string, ds *engine.Dataset) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}
