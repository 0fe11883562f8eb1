package middleware

import (
	"context"
	"strings"

	"github.com/MrSnakeDoc/skipsel/internal/config"
	"github.com/MrSnakeDoc/skipsel/internal/errs"
	"github.com/MrSnakeDoc/skipsel/internal/models"
	"github.com/spf13/cobra"
)

// RequireLocation builds the LocationParams from --postcode/--area, falling
// back to the configured defaults. Must run after LoadConfig.
func RequireLocation(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	cfg, err := Get[config.Config](cmd, CtxKeyConfig)
	if err != nil {
		return err
	}

	loc := cfg.Location()
	if v, _ := cmd.Flags().GetString("postcode"); v != "" {
		loc.Postcode = v
	}
	if v, _ := cmd.Flags().GetString("area"); v != "" {
		loc.Area = v
	}
	loc.Postcode = strings.TrimSpace(loc.Postcode)
	loc.Area = strings.TrimSpace(loc.Area)

	if loc.Postcode == "" || loc.Area == "" {
		return FlagComboError(errs.MissingLocation, cmd.Name(), loc.Postcode, loc.Area)
	}

	ctx := context.WithValue(cmd.Context(), CtxKeyLocation, loc)
	cmd.SetContext(ctx)

	return next(cmd, args)
}

// Location is a typed accessor for the value stored by RequireLocation.
func Location(cmd *cobra.Command) (models.LocationParams, error) {
	return Get[models.LocationParams](cmd, CtxKeyLocation)
}
