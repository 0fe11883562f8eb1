package utils

import (
	"github.com/MrSnakeDoc/skipsel/internal/logger"
)

// Try runs a deferred cleanup and logs its failure instead of dropping it.
func Try(f func() error) {
	if err := f(); err != nil {
		logger.LogError("deferred cleanup failed: %v", err)
	}
}
