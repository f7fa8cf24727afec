package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/expense-tracer/backend/internal/models"
	"github.com/expense-tracer/backend/internal/types"
	"github.com/spf13/cobra"
)

func (a *app) summaryCommand() *cobra.Command {
	var today string

	summary := &cobra.Command{
		Use:   "summary MONTH",
		Short: "Show budget, spent and remaining money of a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(args[0])
			if err != nil {
				return err
			}

			// Validated with the configuration
			location, _ := a.cfg.TimeLocation()

			day := time.Now().In(location)
			if today != "" {
				d, err := types.ParseDate(today)
				if err != nil {
					return fmt.Errorf("%w: %w", models.ErrInvalidInput, err)
				}

				day, err = time.ParseInLocation(types.DateLayout, d.String(), location)
				if err != nil {
					return fmt.Errorf("%w: %w", models.ErrInvalidInput, err)
				}
			}

			return a.withStore(func(store *models.Store) error {
				overview, err := store.Overview(cmd.Context(), a.session(), month, day)
				if err != nil {
					return err
				}

				c := overview.Balance.Currency
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintf(w, "Month\t%s\n", overview.Month)
				fmt.Fprintf(w, "Today\t%s\n", overview.Today)
				fmt.Fprintf(w, "Budget\t%s\n", c.Format(overview.Balance.TotalMoney))
				fmt.Fprintf(w, "Spent\t%s\n", c.Format(overview.Summary.Spent))
				fmt.Fprintf(w, "Remaining\t%s\n", c.Format(overview.Summary.Remaining))
				fmt.Fprintf(w, "Future\t%s\n", c.Format(overview.Summary.Future))

				if len(overview.Summary.Rows) > 0 {
					fmt.Fprintln(w)
				}

				for _, row := range overview.Summary.Rows {
					date := "unknown"
					if row.Date != nil {
						date = row.Date.Format(types.DateLayout)
					}

					fmt.Fprintf(w, "%s\t%s\t%s\n", date, row.Description, c.Format(row.Amount))
				}

				return w.Flush()
			})
		},
	}
	summary.Flags().StringVar(&today, "today", "", "Day to compute the summary for in YYYY-MM-DD format. Defaults to the current day")

	return summary
}
