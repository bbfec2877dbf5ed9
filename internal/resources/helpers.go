package resources

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rkuprin/automaker/internal/config"
)

// findRoot walks up from cwd looking for a .automaker directory.
// Falls back to cwd when no marker is found.
func findRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	current := dir
	for {
		candidate := filepath.Join(current, config.AutomakerDir)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return dir, nil
		}
		current = parent
	}
}
