// Package page hosts the "Select Skip" step in a terminal: it drives the fetch
// controller and the selection machine from line-based user input.
package page

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/skipsel/internal/fetcher"
	"github.com/MrSnakeDoc/skipsel/internal/logger"
	"github.com/MrSnakeDoc/skipsel/internal/models"
	"github.com/MrSnakeDoc/skipsel/internal/printer"
	"github.com/MrSnakeDoc/skipsel/internal/prompter"
	"github.com/MrSnakeDoc/skipsel/internal/selection"
)

const supportEmail = "support@wewantwaste.co.uk"

const commandPrompt = "Select a skip (# or id), [x] clear, [r]efresh, [b]ack, [c]ontinue, [q]uit: "

// Outcome tells the caller how the page was left.
type Outcome int

const (
	Quit Outcome = iota
	Back
	Continued
)

func (o Outcome) String() string {
	switch o {
	case Back:
		return "back"
	case Continued:
		return "continue"
	default:
		return "quit"
	}
}

type Page struct {
	ctrl    *fetcher.Controller
	machine *selection.Machine
	prompt  prompter.Prompter
	out     io.Writer
	p       *printer.ColorPrinter

	// displayed is the listing the user is looking at. The selection points
	// into it, so it only changes after a fetch cycle.
	displayed []models.Skip
}

func New(ctrl *fetcher.Controller, machine *selection.Machine, pr prompter.Prompter, out io.Writer) *Page {
	return &Page{
		ctrl:    ctrl,
		machine: machine,
		prompt:  pr,
		out:     out,
		p:       printer.NewColorPrinter(),
	}
}

// Printer exposes the colour printer so callers can force colours on or off.
func (pg *Page) Printer() *printer.ColorPrinter {
	return pg.p
}

// Execute loads the listing and runs the command loop until the user
// continues, goes back, quits or closes the input.
func (pg *Page) Execute(ctx context.Context) (Outcome, error) {
	if err := pg.load(ctx, pg.ctrl.Load); err != nil {
		return Quit, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return Quit, err
		}

		st := pg.ctrl.State()
		if st.Status == fetcher.Failed {
			retry, err := pg.renderFailure(st.Err)
			if err != nil {
				return endOfInput(err)
			}
			if !retry {
				return Quit, nil
			}
			if err := pg.load(ctx, pg.ctrl.Refetch); err != nil {
				return Quit, err
			}
			continue
		}

		if err := pg.render(); err != nil {
			return Quit, err
		}

		input, err := pg.prompt.Prompt(commandPrompt)
		if err != nil {
			return endOfInput(err)
		}

		switch cmd := strings.ToLower(strings.TrimSpace(input)); cmd {
		case "":
		case "q", "quit":
			return Quit, nil
		case "b", "back":
			pg.machine.Back()
			return Back, nil
		case "c", "continue":
			if pg.machine.Continue() {
				return Continued, nil
			}
			pg.notice(pg.p.Warning("Select a skip before continuing."))
		case "x", "clear":
			pg.machine.Clear()
		case "r", "refresh":
			if err := pg.load(ctx, pg.ctrl.Refetch); err != nil {
				return Quit, err
			}
		default:
			skip, ok := pg.lookup(strings.TrimSpace(input))
			if !ok {
				pg.notice(pg.p.Warning("Unknown skip or command %q.", input))
				continue
			}
			pg.machine.Select(skip)
		}
	}
}

func (pg *Page) load(ctx context.Context, cycle func(context.Context)) error {
	if _, err := fmt.Fprintln(pg.out, pg.p.Muted("Loading skip options...")); err != nil {
		return err
	}
	cycle(ctx)

	pg.displayed = pg.ctrl.Skips()
	pg.machine.Rebind(pg.displayed)
	logger.Debug("page: %s with %d skips for %s", pg.ctrl.State().Status, len(pg.displayed), pg.ctrl.Params())
	return nil
}

// lookup resolves a 1-based row number first, then a skip ID.
func (pg *Page) lookup(token string) (*models.Skip, bool) {
	if n, err := strconv.Atoi(token); err == nil && n >= 1 && n <= len(pg.displayed) {
		return &pg.displayed[n-1], true
	}
	for i := range pg.displayed {
		if strings.EqualFold(pg.displayed[i].ID, token) {
			return &pg.displayed[i], true
		}
	}
	return nil, false
}

func (pg *Page) render() error {
	if err := renderSteps(pg.out, pg.p); err != nil {
		return err
	}

	fmt.Fprintln(pg.out, pg.p.Highlight("Choose Your Perfect Skip Size"))
	fmt.Fprintln(pg.out, pg.p.Muted("Select the skip size that best fits your project needs. All prices include VAT and delivery."))
	fmt.Fprintln(pg.out, pg.p.Muted("Location: %s", pg.ctrl.Params()))

	if err := pg.renderListing(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(pg.out, pg.p.Muted("Need help choosing? Contact our team at %s", supportEmail))
	return err
}

func (pg *Page) renderListing() error {
	if len(pg.displayed) == 0 {
		_, err := fmt.Fprintln(pg.out, pg.p.Warning("No skips available for this location."))
		return err
	}

	selectedID := ""
	selected, ok := pg.machine.Selected()
	if ok {
		selectedID = selected.ID
	}
	if err := RenderSkips(pg.out, pg.p, pg.displayed, selectedID); err != nil {
		return err
	}
	if ok {
		return renderDrawer(pg.out, pg.p, *selected)
	}
	return nil
}

func (pg *Page) renderFailure(msg string) (bool, error) {
	fmt.Fprintln(pg.out, pg.p.Error("Error Loading Skips"))
	fmt.Fprintln(pg.out, msg)
	return pg.prompt.Confirm("Try Again?")
}

func (pg *Page) notice(msg string) {
	fmt.Fprintln(pg.out, msg)
}

func endOfInput(err error) (Outcome, error) {
	if errors.Is(err, io.EOF) {
		return Quit, nil
	}
	return Quit, fmt.Errorf("failed to read input: %w", err)
}
