package models

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Context is the type for values the store reads from a context.Context.
type Context string

const (
	ContextURL       Context = "expense-tracer-url"
	ContextRequestID Context = "expense-tracer-request-id"
)

// Driver names a supported database driver.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// ErrUnknownDriver is returned by Connect for drivers that are not supported.
var ErrUnknownDriver = errors.New("unknown database driver")

// pqUniqueViolation is the SQLSTATE postgres reports for unique index violations.
const pqUniqueViolation = "23505"

// Connect opens the database, migrates the schema and configures the
// connection pool.
func Connect(drv Driver, dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
	}

	var dialector gorm.Dialector
	switch drv {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.New(postgres.Config{
			DriverName: "postgres",
			DSN:        dsn,
		})
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownDriver, drv)
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to database: %v", ErrStoreUnavailable, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// This is done to prevent SQLITE_BUSY errors.
	if drv == DriverSQLite {
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	}

	err = migrate(db)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	err = registerCallbacks(db)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	return db, nil
}

func registerCallbacks(db *gorm.DB) error {
	// Query callbacks
	err := db.Callback().Query().After("*").Register("expense_tracer:after_query_general", generalCallback)
	if err != nil {
		return err
	}

	// Create callbacks
	err = db.Callback().Create().After("*").Register("expense_tracer:after_create", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Create().After("*").Register("expense_tracer:after_create_general", generalCallback)
	if err != nil {
		return err
	}

	// Update callbacks
	err = db.Callback().Update().After("*").Register("expense_tracer:after_update", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Update().After("*").Register("expense_tracer:after_update_general", generalCallback)
	if err != nil {
		return err
	}

	// Delete callbacks
	return db.Callback().Delete().After("*").Register("expense_tracer:after_delete_general", generalCallback)
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// One balance per owner and month
	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: balance.owner_id, balance.month") {
		db.Error = ErrMonthNotUnique
		return
	}

	var pqErr *pq.Error
	if errors.As(db.Error, &pqErr) && string(pqErr.Code) == pqUniqueViolation && pqErr.Table == "balance" {
		db.Error = ErrMonthNotUnique
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the caller with a helpful message.
// Instead, the error is logged and ErrStoreUnavailable is returned.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if isUnavailable(db.Error) {
		log.Error().Str("table", db.Statement.Table).Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrStoreUnavailable
	}
}

// isUnavailable reports whether err is an error of the database itself
// rather than a problem with the data sent to it.
func isUnavailable(err error) bool {
	// "sql: database is closed" is hard-coded in the sql module
	if err.Error() == "sql: database is closed" {
		return true
	}

	if reflect.TypeOf(err) == reflect.TypeOf(&go_sqlite.Error{}) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn)
}

// unavailable converts errors gorm does not pass through callbacks,
// e.g. from committing a transaction.
func unavailable(err error) error {
	if err == nil || errors.Is(err, ErrStoreUnavailable) {
		return err
	}

	if isUnavailable(err) {
		log.Error().Msgf("%T: %v", err, err.Error())
		return ErrStoreUnavailable
	}

	return err
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(Balance{}, Expense{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
