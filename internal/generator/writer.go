package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteTexts serializes texts as a JSON array into path, creating parent
// directories as needed.
func WriteTexts(texts []string, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(texts); err != nil {
		return fmt.Errorf("encode json for %s: %w", path, err)
	}
	return nil
}

// ReadTexts loads a JSON array of texts written by WriteTexts.
func ReadTexts(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	var texts []string
	if err := json.NewDecoder(file).Decode(&texts); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return texts, nil
}
