package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/expense-tracer/backend/internal/models"
	"github.com/expense-tracer/backend/internal/types"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/spf13/cobra"
)

func (a *app) expensesCommand() *cobra.Command {
	expenses := &cobra.Command{
		Use:   "expenses",
		Short: "List, add, edit and delete expenses",
	}

	var description string
	list := &cobra.Command{
		Use:   "list MONTH",
		Short: "List the expenses of a month, ordered by date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(args[0])
			if err != nil {
				return err
			}

			return a.withStore(func(store *models.Store) error {
				ctx := cmd.Context()

				balance, err := store.GetBalance(ctx, a.session(), month)
				if err != nil {
					return err
				}

				all, err := store.ListExpenses(ctx, a.session(), month)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, e := range all {
					if cmd.Flags().Changed("description") && !glob.Glob(description, e.Description) {
						continue
					}

					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, dateOrUnknown(e.Date), e.Description, balance.Currency.Format(e.Amount))
				}
				return w.Flush()
			})
		},
	}
	list.Flags().StringVar(&description, "description", "", "Only list expenses with a matching description. Supports * as wildcard")

	var date string
	add := &cobra.Command{
		Use:   "add MONTH DESCRIPTION AMOUNT",
		Short: "Add an expense to a month",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(args[0])
			if err != nil {
				return err
			}

			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}

			var d *types.Date
			if date != "" {
				value := types.Date(date)
				d = &value
			}

			err = models.ValidateExpense(args[1], amount, d)
			if err != nil {
				return err
			}

			return a.withStore(func(store *models.Store) error {
				expense, err := store.AddExpense(cmd.Context(), a.session(), args[1], amount, d, month)
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), expense.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&date, "date", "", "Day of the expense in YYYY-MM-DD format. Omit if unknown")

	edit := &cobra.Command{
		Use:   "edit ID DESCRIPTION AMOUNT",
		Short: "Change description and amount of an expense",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}

			err = models.ValidateEdit(args[1], amount)
			if err != nil {
				return err
			}

			return a.withStore(func(store *models.Store) error {
				return store.EditExpense(cmd.Context(), a.session(), id, args[1], amount)
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return a.withStore(func(store *models.Store) error {
				return store.DeleteExpense(cmd.Context(), a.session(), id)
			})
		},
	}

	expenses.AddCommand(list, add, edit, del)
	return expenses
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: '%s' is not a valid UUID", models.ErrInvalidInput, s)
	}

	return id, nil
}

func dateOrUnknown(d *types.Date) string {
	if d == nil {
		return "unknown"
	}

	return d.String()
}
