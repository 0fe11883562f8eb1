package page

import (
	"fmt"
	"io"
	"strings"

	"github.com/MrSnakeDoc/skipsel/internal/models"
	"github.com/MrSnakeDoc/skipsel/internal/pricing"
	"github.com/MrSnakeDoc/skipsel/internal/printer"
	"github.com/MrSnakeDoc/skipsel/internal/utils"
)

const (
	padding    = 2
	disclaimer = "Please note: Imagery and information shown throughout this website may not reflect the exact shape or size specification, colours may vary, options and/or accessories may be featured at additional cost."
)

// renderDrawer draws the selection summary box shown under the grid.
func renderDrawer(w io.Writer, p *printer.ColorPrinter, s models.Skip) error {
	var badges []string
	if s.AllowedOnRoad {
		badges = append(badges, p.Success("[Road Placement]"))
	}
	if s.AllowsHeavyWaste {
		badges = append(badges, p.Info("[Heavy Waste OK]"))
	}

	lines := []string{
		p.Highlight("%d Yard Skip", s.Size),
		fmt.Sprintf("%d day hire period", s.HirePeriodDays),
	}
	if len(badges) > 0 {
		lines = append(lines, strings.Join(badges, " "))
	}
	lines = append(lines, fmt.Sprintf("%s %s", p.Highlight("%s", pricing.Display(s)), p.Muted("Inc. VAT & Delivery")))

	maxWidth := utils.GetMaxWidth(lines) + padding*2
	var b strings.Builder
	b.WriteString(p.Info("╭" + strings.Repeat("─", maxWidth) + "╮"))
	b.WriteByte('\n')
	for _, line := range lines {
		right := maxWidth - padding - utils.VisibleWidth(line)
		fmt.Fprintf(&b, "%s%s%s%s%s\n", p.Info("│"), strings.Repeat(" ", padding), line, strings.Repeat(" ", right), p.Info("│"))
	}
	b.WriteString(p.Info("╰" + strings.Repeat("─", maxWidth) + "╯"))
	b.WriteByte('\n')
	b.WriteString(p.Muted("%s", disclaimer))
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}
