package pathutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ToAbsolutePath expands a leading "~" to the user's home directory.
func ToAbsolutePath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
