// Package cmd implements the expense-tracer CLI commands.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/expense-tracer/backend/internal/config"
	"github.com/expense-tracer/backend/internal/models"
	"github.com/expense-tracer/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	configPath string
	owner      string
	cfg        config.Config
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// NewRootCommand returns the root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "expense-tracer",
		Short:         "Track expenses against a monthly budget",
		Long:          "Track expenses against a monthly budget. Run 'serve' for the HTTP API or use the other commands to work with the store directly.",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}

			a.cfg = cfg
			setupLogging(cfg, cmd.ErrOrStderr())
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", fmt.Sprintf("Configuration file in TOML format. Defaults to $%s", config.EnvConfigFile))
	root.PersistentFlags().StringVarP(&a.owner, "owner", "o", "", "Owner to act for. Required in multi-tenant mode")

	root.AddCommand(
		a.serveCommand(),
		a.monthsCommand(),
		a.budgetCommand(),
		a.expensesCommand(),
		a.summaryCommand(),
	)

	return root
}

// setupLogging configures gin and the global logger.
func setupLogging(cfg config.Config, out io.Writer) {
	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.Server.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	if (cfg.Log.Format == "" && gin.IsDebugging()) || cfg.Log.Format == "human" {
		out = zerolog.ConsoleWriter{Out: out}
	}

	// The level has been validated with the configuration
	level, _ := zerolog.ParseLevel(cfg.Log.Level)
	if gin.IsDebugging() && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(out).With().Timestamp().Logger()
}

// session returns the session for the owner passed on the command line.
func (a *app) session() models.Session {
	return models.NewSession(a.owner)
}

// openStore connects to the configured database.
func (a *app) openStore() (*models.Store, error) {
	driver := models.Driver(a.cfg.Database.Driver)

	// Create the directory for the database file
	if driver == models.DriverSQLite {
		path, _, _ := strings.Cut(a.cfg.Database.DSN, "?")
		if dir := filepath.Dir(path); dir != "." {
			err := os.MkdirAll(dir, os.ModePerm)
			if err != nil {
				return nil, err
			}
		}
	}

	db, err := models.Connect(driver, a.cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	return models.NewStore(db, a.cfg.StoreOptions()), nil
}

// withStore runs fn with a connected store and closes it afterwards.
func (a *app) withStore(fn func(*models.Store) error) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(store)
}

func parseMonth(s string) (types.Month, error) {
	month, err := types.ParseMonth(s)
	if err != nil {
		return types.Month{}, fmt.Errorf("%w: %w", models.ErrInvalidInput, err)
	}

	return month, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: '%s' is not a number", models.ErrInvalidInput, s)
	}

	return amount, nil
}

func parseCurrency(s string) (types.Currency, error) {
	currency, err := types.ParseCurrency(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrInvalidInput, err)
	}

	return currency, nil
}
