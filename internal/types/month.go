// Package types implements special types for Expense Tracer.
package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidMonth is returned when a month key is not in YYYY-MM format.
var ErrInvalidMonth = errors.New("could not parse the month, did you use YYYY-MM format?")

var (
	monthPattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}$`)
	datePattern  = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
)

// Month is a month in a specific year. It is identified by its
// canonical key YYYY-MM, which is also how it is persisted.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which a time occurs.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return NewMonth(year, month)
}

// ParseMonth parses a "YYYY-MM" string and returns the Month value it represents.
func ParseMonth(s string) (Month, error) {
	if !monthPattern.MatchString(s) {
		return Month{}, fmt.Errorf("%w: '%s'", ErrInvalidMonth, s)
	}

	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: '%s'", ErrInvalidMonth, s)
	}

	return MonthOf(t), nil
}

// ParseDateToMonth parses a string in RFC3339 full-date format and returns the Month value it represents.
func ParseDateToMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: '%s'", ErrInvalidMonth, s)
	}

	return MonthOf(t), nil
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// MarshalJSON implements the json.Marshaler interface.
// The output is the month key in YYYY-MM format.
func (m Month) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
//
// The month is expected in YYYY-MM format. A full date in YYYY-MM-DD
// format is accepted as well, everything except year and month is
// then ignored.
func (m *Month) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`) // get rid of "
	if value == "" || value == "null" {
		return nil
	}

	parse := ParseMonth
	if datePattern.MatchString(value) {
		parse = ParseDateToMonth
	}

	month, err := parse(value)
	if err != nil {
		return err
	}

	*m = month
	return nil
}

// UnmarshalParam implements gin's BindUnmarshaler so that months can be
// bound from URI and query parameters.
func (m *Month) UnmarshalParam(p string) error {
	month, err := ParseMonth(p)
	if err != nil {
		return err
	}

	*m = month
	return nil
}

// Scan reads the month key from the database.
func (m *Month) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case nil:
		*m = Month{}
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		*m = MonthOf(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Month", value)
	}

	month, err := ParseMonth(s)
	if err != nil {
		return err
	}

	*m = month
	return nil
}

// Value returns the month key for the SQL driver to write to the database.
func (m Month) Value() (driver.Value, error) {
	return m.String(), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Month) GormDataType() string {
	return "text"
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return Month(time.Time(m).AddDate(years, months, 0))
}
