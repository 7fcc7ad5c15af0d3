package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Dir returns ~/.enginecycle/<sub>, falling back to the working directory
// when the home directory is unknown.
func Dir(sub string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return sub
	}
	return filepath.Join(home, ".enginecycle", sub)
}

// SaveScreenshot writes a plain-text capture of the view into dir.
func SaveScreenshot(dir, name, text string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", name, timestamp))
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return path, nil
}
