package middleware

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/skipsel/internal/globalconfig"
	"github.com/spf13/cobra"
)

// LoadConfig resolves the effective configuration from --config (or the
// default location) and stores it under CtxKeyConfig.
func LoadConfig(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := globalconfig.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.WithValue(cmd.Context(), CtxKeyConfig, cfg)
	cmd.SetContext(ctx)

	return next(cmd, args)
}
