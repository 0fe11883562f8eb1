package internal

import (
	"fmt"
	"math"
	"strconv"

	"github.com/MrSnakeDoc/skipsel/internal/errs"
	"github.com/MrSnakeDoc/skipsel/internal/middleware"
	"github.com/MrSnakeDoc/skipsel/internal/pricing"

	"github.com/spf13/cobra"
)

func NewPriceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price <price_before_vat> <vat_percent>",
		Short: "Compute a VAT-inclusive price",
		Long: `Compute the price shown to customers from a pre-VAT price and a VAT rate.

Examples:
  skipsel price 278 20             # £334
  skipsel price 278 20 --breakdown # pre-VAT, VAT and total`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := strconv.ParseFloat(args[0], 64)
			if err != nil || before < 0 || math.IsInf(before, 0) || math.IsNaN(before) {
				return middleware.FlagComboError(errs.InvalidPrice, args[0])
			}
			vat, err := strconv.ParseFloat(args[1], 64)
			if err != nil || vat < 0 || vat > 100 || math.IsNaN(vat) {
				return middleware.FlagComboError(errs.InvalidVAT, args[1])
			}

			total := pricing.PriceWithVAT(before, vat)

			breakdown, err := cmd.Flags().GetBool("breakdown")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !breakdown {
				_, err := fmt.Fprintln(out, pricing.FormatPrice(total))
				return err
			}

			beforeRounded := math.Round(before)
			_, err = fmt.Fprintf(out, "Before VAT: %s\nVAT (%g%%): %s\nTotal:      %s\n",
				pricing.FormatPrice(beforeRounded), vat, pricing.FormatPrice(total-beforeRounded), pricing.FormatPrice(total))
			return err
		},
	}

	cmd.Flags().BoolP("breakdown", "b", false, "Show the pre-VAT and VAT parts")
	return cmd
}
