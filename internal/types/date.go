package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// DateLayout is the layout of a Date, RFC3339 full-date.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when a date is not in YYYY-MM-DD format.
var ErrInvalidDate = errors.New("could not parse the date, did you use YYYY-MM-DD format?")

// Date is a calendar day in YYYY-MM-DD format.
//
// Dates are validated when they are parsed with ParseDate. Values read
// from the database are kept verbatim so that rows written by other
// tools can always be loaded.
type Date string

// ParseDate validates s and returns it as a Date.
func ParseDate(s string) (Date, error) {
	if !datePattern.MatchString(s) {
		return "", fmt.Errorf("%w: '%s'", ErrInvalidDate, s)
	}

	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("%w: '%s'", ErrInvalidDate, s)
	}

	return Date(s), nil
}

// DateOf returns the Date of t in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Time parses the date. ok is false if the date cannot be parsed.
func (d Date) Time() (t time.Time, ok bool) {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// String returns the date as string.
func (d Date) String() string {
	return string(d)
}

// OnOrBefore reports whether d is on or before the day o.
//
// The comparison is lexical, which for the fixed-width, zero-padded
// YYYY-MM-DD format is the same as comparing chronologically.
func (d Date) OnOrBefore(o Date) bool {
	return d <= o
}

// Scan reads the date from the database.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = ""
	case string:
		*d = Date(v)
	case []byte:
		*d = Date(v)
	case time.Time:
		*d = DateOf(v)
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}

	return nil
}

// Value returns the value for the SQL driver to write to the database.
func (d Date) Value() (driver.Value, error) {
	return string(d), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Date) GormDataType() string {
	return "text"
}
