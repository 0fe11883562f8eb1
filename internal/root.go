package internal

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/MrSnakeDoc/skipsel/internal/logger"
	"github.com/MrSnakeDoc/skipsel/internal/metrics"
	"github.com/MrSnakeDoc/skipsel/internal/middleware"
	"github.com/MrSnakeDoc/skipsel/internal/version"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skipsel",
		Short: "Pick a skip size for your location",
		Long: `Skipsel lists the skips available for a postcode and area, shows their
VAT-inclusive prices and lets you pick one to continue your booking.`,
		Example: `skipsel select --postcode NR32 --area Lowestoft`,
		Run: func(cmd *cobra.Command, _ []string) {
			versionFlag, _ := cmd.Flags().GetBool("version")
			if versionFlag {
				fmt.Fprintf(cmd.OutOrStdout(), "Version: %s (%s, %s)\n", version.Version, version.Commit, version.Date)
				return
			}
			_ = cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger.ConfigureLoggerFromFlags()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if _, ok := ctx.Value(middleware.CtxKeyRegistry).(*prometheus.Registry); !ok {
				ctx = context.WithValue(ctx, middleware.CtxKeyRegistry, prometheus.NewRegistry())
			}
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("metrics-file")
			if path == "" {
				return nil
			}

			reg, err := middleware.Get[*prometheus.Registry](cmd, middleware.CtxKeyRegistry)
			if err != nil {
				return err
			}
			if err := metrics.WriteTextfile(path, reg); err != nil {
				return fmt.Errorf("failed to write metrics to %s: %w", path, err)
			}
			logger.Debug("metrics written to %s", path)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolP("version", "v", false, "Print version information")

	pf := cmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file (default ~/.config/skipsel/config.yml)")
	pf.String("metrics-file", "", "Write Prometheus metrics to this file on exit")
	pf.CountVarP(&logger.FlagVerboseCount, "verbose", "V", "Verbose output (debug logs)")
	pf.BoolVarP(&logger.FlagQuiet, "quiet", "q", false, "Only print errors")
	pf.BoolVarP(&logger.FlagSilent, "silent", "s", false, "Print nothing")
	pf.BoolVar(&logger.FlagJSON, "json-logs", false, "Emit logs as JSON")

	RegisterSubCommands(cmd)

	return cmd
}

func Execute() error {
	root := NewRootCmd()

	if os.Getenv("COMP_LINE") != "" ||
		(len(os.Args) > 1 && strings.HasPrefix(os.Args[1], "__complete")) {
		return root.Execute()
	}

	if err := root.Execute(); err != nil {
		logger.Debug("Failed to execute root command: %v", err)
		return err
	}
	return nil
}
