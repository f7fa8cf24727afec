package cmd

import (
	"fmt"

	"github.com/expense-tracer/backend/internal/models"
	"github.com/spf13/cobra"
)

func (a *app) monthsCommand() *cobra.Command {
	months := &cobra.Command{
		Use:   "months",
		Short: "List, add and remove months",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all months, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(store *models.Store) error {
				all, err := store.ListMonths(cmd.Context(), a.session())
				if err != nil {
					return err
				}

				for _, month := range all {
					fmt.Fprintln(cmd.OutOrStdout(), month)
				}
				return nil
			})
		},
	}

	var currency string
	add := &cobra.Command{
		Use:   "add MONTH",
		Short: "Add a month with a budget of zero",
		Long:  "Add a month with a budget of zero. Adding a month that exists already does not change it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(args[0])
			if err != nil {
				return err
			}

			c, err := parseCurrency(currency)
			if err != nil {
				return err
			}

			return a.withStore(func(store *models.Store) error {
				balance, err := store.AddMonth(cmd.Context(), a.session(), month, c)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", balance.Month, balance.Currency.Format(balance.TotalMoney))
				return nil
			})
		},
	}
	add.Flags().StringVar(&currency, "currency", "", "Currency of the budget. One of kr, $, € or their ISO codes")

	remove := &cobra.Command{
		Use:   "remove MONTH",
		Short: "Remove a month and all of its expenses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(args[0])
			if err != nil {
				return err
			}

			return a.withStore(func(store *models.Store) error {
				return store.RemoveMonth(cmd.Context(), a.session(), month)
			})
		},
	}

	months.AddCommand(list, add, remove)
	return months
}
