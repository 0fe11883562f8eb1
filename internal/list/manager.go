package list

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MrSnakeDoc/skipsel/internal/fetcher"
	"github.com/MrSnakeDoc/skipsel/internal/logger"
	"github.com/MrSnakeDoc/skipsel/internal/models"
	"github.com/MrSnakeDoc/skipsel/internal/pricing"
	"github.com/MrSnakeDoc/skipsel/internal/printer"
	"github.com/MrSnakeDoc/skipsel/internal/utils"
)

// row is a view model for rendering and JSON output.
type row struct {
	models.Skip
	Price   pricing.Quote `json:"price"`
	Display string        `json:"display_price"`
}

type Options struct {
	JSON bool
	Sort string // "size" (default) | "price" | "hire"
}

type Lister struct {
	Catalog fetcher.Fetcher
	Out     io.Writer
}

func New(f fetcher.Fetcher, out io.Writer) *Lister {
	if out == nil {
		out = logger.Out()
	}
	return &Lister{
		Catalog: f,
		Out:     out,
	}
}

// Execute fetches the skips for params and renders them once, as a table or
// as a JSON array.
func (l *Lister) Execute(ctx context.Context, params models.LocationParams, opts Options) error {
	skips, err := l.Catalog.FetchByLocation(ctx, params)
	if err != nil {
		return fmt.Errorf("an error occurred while fetching skips for %s: %w", params, err)
	}

	rows := utils.Map(skips, func(s models.Skip) row {
		return row{Skip: s, Price: pricing.Breakdown(s), Display: pricing.Display(s)}
	})

	if err := sortRows(rows, opts.Sort); err != nil {
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(l.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		logger.Warn("No skips available for %s", params)
		return nil
	}
	return l.renderTable(rows)
}

func (l *Lister) renderTable(rows []row) error {
	p := printer.NewColorPrinter()
	table := logger.CreateTableOn(l.Out, []string{"ID", "Skip", "Hire period", "Road", "Heavy waste", "Before VAT", "VAT", "Total"})

	for _, r := range rows {
		if err := table.Append([]string{
			r.ID,
			fmt.Sprintf("%d Yard Skip", r.Size),
			fmt.Sprintf("%d days", r.HirePeriodDays),
			flag(p, r.AllowedOnRoad),
			flag(p, r.AllowsHeavyWaste),
			pricing.FormatPrice(r.Price.BeforeVAT),
			fmt.Sprintf("%s (%g%%)", pricing.FormatPrice(r.Price.VAT), r.VAT),
			r.Display,
		}); err != nil {
			return fmt.Errorf("an error occurred while appending to the table: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("an error occurred while rendering the table: %w", err)
	}
	return nil
}

func sortRows(rows []row, key string) error {
	switch utils.ParseSortKey(key) {
	case "", "size":
		utils.SortBy(rows, func(r row) int { return r.Size })
	case "price":
		utils.SortBy(rows, func(r row) float64 { return r.Price.Total })
	case "hire":
		utils.SortBy(rows, func(r row) int { return r.HirePeriodDays })
	default:
		return fmt.Errorf("unknown sort key %q (use size, price or hire)", key)
	}
	return nil
}

func flag(p *printer.ColorPrinter, ok bool) string {
	if ok {
		return p.Success("✓")
	}
	return p.Error("✗")
}
