package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/skipsel/internal/catalog"
	"github.com/MrSnakeDoc/skipsel/internal/errs"
	"github.com/MrSnakeDoc/skipsel/internal/fetcher"
	"github.com/MrSnakeDoc/skipsel/internal/logger"
	"github.com/MrSnakeDoc/skipsel/internal/middleware"
	"github.com/MrSnakeDoc/skipsel/internal/models"
	"github.com/MrSnakeDoc/skipsel/internal/page"
	"github.com/MrSnakeDoc/skipsel/internal/pricing"
	"github.com/MrSnakeDoc/skipsel/internal/prompter"
	"github.com/MrSnakeDoc/skipsel/internal/selection"
	"github.com/MrSnakeDoc/skipsel/internal/utils"

	"github.com/spf13/cobra"
)

type chosenSkip struct {
	models.Skip
	Price pricing.Quote `json:"price"`
}

func NewSelectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Choose a skip for your booking",
		Long: `Show the "Select Skip" step: the available skips with their prices and a
summary of the one you pick.

Examples:
  skipsel select                        # Interactive page
  skipsel select --skip 17933 --json    # Pick by id, print the choice as JSON`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			skipID, _ := cmd.Flags().GetString("skip")
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut && strings.TrimSpace(skipID) == "" {
				return middleware.FlagComboError(errs.JSONNeedsNoPrompt)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := middleware.Get[*catalog.Client](cmd, middleware.CtxKeyCatalog)
			if err != nil {
				return err
			}
			loc, err := middleware.Location(cmd)
			if err != nil {
				return err
			}
			skipID, _ := cmd.Flags().GetString("skip")
			jsonOut, _ := cmd.Flags().GetBool("json")

			var chosen *models.Skip
			machine := selection.New(selection.Callbacks{
				OnSkipSelected: func(s *models.Skip) {
					if s == nil {
						logger.Debug("Selection cleared")
						return
					}
					logger.Debug("Skip selected: %s (%d yard)", s.ID, s.Size)
				},
				OnBack: func() {
					logger.Info("Back to waste type selection")
				},
				OnContinue: func(s models.Skip) {
					chosen = &s
				},
			})
			ctrl := fetcher.New(client, loc)

			skipID = strings.TrimSpace(skipID)
			if skipID != "" {
				if err := selectByID(cmd, ctrl, machine, skipID); err != nil {
					return err
				}
			} else {
				pg := page.New(ctrl, machine, prompter.New(cmd.InOrStdin(), cmd.OutOrStdout()), cmd.OutOrStdout())
				outcome, err := pg.Execute(cmd.Context())
				if err != nil {
					return err
				}
				logger.Debug("select page left with %s", outcome)
			}

			if chosen == nil {
				return nil
			}
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(chosenSkip{Skip: *chosen, Price: pricing.Breakdown(*chosen)})
			}
			logger.Success("Continue with the %d Yard Skip (id %s) at %s", chosen.Size, chosen.ID, pricing.Display(*chosen))
			return nil
		},
	}

	addLocationFlags(cmd)
	cmd.Flags().String("skip", "", "Select the skip with this id without prompting")
	cmd.Flags().Bool("json", false, "Print the chosen skip as JSON (requires --skip)")
	return cmd
}

func selectByID(cmd *cobra.Command, ctrl *fetcher.Controller, machine *selection.Machine, id string) error {
	ctrl.Load(cmd.Context())
	if msg, failed := ctrl.Error(); failed {
		return errors.New(msg)
	}

	skips := ctrl.Skips()
	i := utils.IndexFunc(skips, func(s models.Skip) bool { return s.ID == id })
	if i < 0 {
		return fmt.Errorf("skip %q is not offered for %s", id, ctrl.Params())
	}
	machine.Select(&skips[i])
	machine.Continue()
	return nil
}
