// Package pricing turns pre-tax skip prices into the VAT-inclusive amounts
// shown to customers.
package pricing

import (
	"math"

	"github.com/MrSnakeDoc/skipsel/internal/models"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	displayLocale   = language.BritishEnglish
	displayCurrency = currency.GBP
)

// Quote is the price breakdown of a single skip, in whole pounds.
type Quote struct {
	BeforeVAT float64 `json:"before_vat"`
	VAT       float64 `json:"vat"`
	Total     float64 `json:"total"`
}

// PriceWithVAT returns priceBeforeVAT increased by vatPercent, rounded to the
// nearest whole unit with halves rounded away from zero.
// Inputs must be finite.
func PriceWithVAT(priceBeforeVAT, vatPercent float64) float64 {
	return math.Round(priceBeforeVAT * (1 + vatPercent/100))
}

// FormatPrice renders amount as a whole-pound en-GB currency string, e.g. "£1,250".
// The rounded value is formatted as a float so very large amounts keep their digits.
func FormatPrice(amount float64) string {
	p := message.NewPrinter(displayLocale)

	r := math.Round(amount)
	sign := ""
	if r < 0 {
		sign = "-"
	}
	return p.Sprintf("%s%v%v", sign, currency.Symbol(displayCurrency), number.Decimal(math.Abs(r), number.MaxFractionDigits(0)))
}

// Breakdown splits the displayed total of a skip into its pre-VAT and VAT parts.
func Breakdown(s models.Skip) Quote {
	total := PriceWithVAT(s.PriceBeforeVAT, s.VAT)
	before := math.Round(s.PriceBeforeVAT)
	return Quote{
		BeforeVAT: before,
		VAT:       total - before,
		Total:     total,
	}
}

// Display is shorthand for FormatPrice(PriceWithVAT(...)) on a skip.
func Display(s models.Skip) string {
	return FormatPrice(PriceWithVAT(s.PriceBeforeVAT, s.VAT))
}
