package page

import (
	"fmt"
	"io"
	"strings"

	"github.com/MrSnakeDoc/skipsel/internal/printer"
)

type step struct {
	Label     string
	Completed bool
	Current   bool
}

// wizardSteps is the booking flow this page sits in; only "Select Skip" is handled here.
var wizardSteps = []step{
	{Label: "Postcode", Completed: true},
	{Label: "Waste Type", Completed: true},
	{Label: "Select Skip", Current: true},
	{Label: "Permit check"},
	{Label: "Choose date"},
	{Label: "Payment"},
}

func renderSteps(w io.Writer, p *printer.ColorPrinter) error {
	parts := make([]string, 0, len(wizardSteps))
	for i, s := range wizardSteps {
		label := fmt.Sprintf("%d %s", i+1, s.Label)
		switch {
		case s.Current:
			parts = append(parts, p.Highlight("[%s]", label))
		case s.Completed:
			parts = append(parts, p.Success("✓ %s", s.Label))
		default:
			parts = append(parts, p.Muted("%s", label))
		}
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, p.Muted(" → ")))
	return err
}
