package middleware

import (
	"context"

	"github.com/MrSnakeDoc/skipsel/internal/catalog"
	"github.com/MrSnakeDoc/skipsel/internal/config"
	"github.com/MrSnakeDoc/skipsel/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// ProvideCatalog stores a catalog client built from the loaded config under
// CtxKeyCatalog, unless one was injected already. Must run after LoadConfig.
func ProvideCatalog(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	if _, err := Get[*catalog.Client](cmd, CtxKeyCatalog); err == nil {
		return next(cmd, args)
	}

	cfg, err := Get[config.Config](cmd, CtxKeyConfig)
	if err != nil {
		return err
	}

	var opts []catalog.Option
	if reg, err := Get[*prometheus.Registry](cmd, CtxKeyRegistry); err == nil {
		opts = append(opts, catalog.WithMetrics(metrics.New(reg)))
	}

	ctx := context.WithValue(cmd.Context(), CtxKeyCatalog, catalog.FromConfig(cfg, opts...))
	cmd.SetContext(ctx)

	return next(cmd, args)
}
