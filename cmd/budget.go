package cmd

import (
	"fmt"

	"github.com/expense-tracer/backend/internal/models"
	"github.com/spf13/cobra"
)

func (a *app) budgetCommand() *cobra.Command {
	budget := &cobra.Command{
		Use:   "budget",
		Short: "Show and set the budget of a month",
	}

	get := &cobra.Command{
		Use:   "get MONTH",
		Short: "Show the budget of a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(args[0])
			if err != nil {
				return err
			}

			return a.withStore(func(store *models.Store) error {
				balance, err := store.GetBalance(cmd.Context(), a.session(), month)
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), balance.Currency.Format(balance.TotalMoney))
				return nil
			})
		},
	}

	var currency string
	set := &cobra.Command{
		Use:   "set MONTH AMOUNT",
		Short: "Set the budget of a month",
		Long:  "Set the budget of a month. The month must have been added. Without --currency, the currency is kept.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(args[0])
			if err != nil {
				return err
			}

			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			return a.withStore(func(store *models.Store) error {
				ctx := cmd.Context()

				current, err := store.GetBalance(ctx, a.session(), month)
				if err != nil {
					return err
				}

				c := current.Currency
				if cmd.Flags().Changed("currency") {
					c, err = parseCurrency(currency)
					if err != nil {
						return err
					}
				}

				rows, err := store.UpdateBalance(ctx, a.session(), month, amount, c)
				if err != nil {
					return err
				}

				if rows == 0 {
					return models.ErrBalanceNotFound
				}

				fmt.Fprintln(cmd.OutOrStdout(), c.Format(amount))
				return nil
			})
		},
	}
	set.Flags().StringVar(&currency, "currency", "", "Currency of the budget. One of kr, $, € or their ISO codes")

	budget.AddCommand(get, set)
	return budget
}
