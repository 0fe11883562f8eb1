package internal

import (
	"github.com/MrSnakeDoc/skipsel/internal/middleware"
	"github.com/spf13/cobra"
)

var defaultCommands = []middleware.CommandFactory{
	middleware.UseMiddlewareChain(middleware.LoadConfig, middleware.RequireLocation, middleware.ProvideCatalog)(NewListCmd),
	middleware.UseMiddlewareChain(middleware.LoadConfig, middleware.RequireLocation, middleware.ProvideCatalog)(NewSelectCmd),
	middleware.UseMiddlewareChain(middleware.LoadConfig)(NewConfigCmd),
	NewPriceCmd,
}

func RegisterSubCommands(cmd *cobra.Command) {
	for _, factory := range defaultCommands {
		cmd.AddCommand(factory())
	}
}

func addLocationFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("postcode", "p", "", "Postcode to list skips for (default from config)")
	cmd.Flags().StringP("area", "a", "", "Area to list skips for (default from config)")
}
