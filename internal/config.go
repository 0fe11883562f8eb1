package internal

import (
	"fmt"

	"github.com/MrSnakeDoc/skipsel/internal/config"
	"github.com/MrSnakeDoc/skipsel/internal/globalconfig"
	"github.com/MrSnakeDoc/skipsel/internal/middleware"

	"github.com/spf13/cobra"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration skipsel runs with: defaults overlaid with the
config file, as YAML. The output is a valid config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.Get[config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}

			data, err := globalconfig.Marshal(cfg)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			return nil
		},
	}
	return cmd
}
