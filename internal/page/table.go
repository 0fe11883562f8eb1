package page

import (
	"fmt"
	"io"

	"github.com/MrSnakeDoc/skipsel/internal/logger"
	"github.com/MrSnakeDoc/skipsel/internal/models"
	"github.com/MrSnakeDoc/skipsel/internal/pricing"
	"github.com/MrSnakeDoc/skipsel/internal/printer"
)

// RenderSkips writes the skip grid as a table. selectedID marks one row.
func RenderSkips(w io.Writer, p *printer.ColorPrinter, skips []models.Skip, selectedID string) error {
	table := logger.CreateTableOn(w, []string{"#", "Skip", "Hire period", "Road", "Heavy waste", "Price inc. VAT", ""})

	for i, s := range skips {
		marker := ""
		if s.ID == selectedID {
			marker = p.Highlight("● selected")
		}
		row := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d Yard Skip", s.Size),
			fmt.Sprintf("%d days", s.HirePeriodDays),
			yesNo(p, s.AllowedOnRoad),
			yesNo(p, s.AllowsHeavyWaste),
			pricing.Display(s),
			marker,
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("an error occurred while appending to the table: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("an error occurred while rendering the table: %w", err)
	}
	return nil
}

func yesNo(p *printer.ColorPrinter, ok bool) string {
	if ok {
		return p.Success("✓ yes")
	}
	return p.Error("✗ no")
}
