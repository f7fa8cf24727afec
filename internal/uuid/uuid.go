// Package uuid wraps google/uuid so that resource IDs can be bound
// from URI parameters by gin.
package uuid

import (
	"errors"
	"fmt"

	google_uuid "github.com/google/uuid"
)

// ErrInvalidUUID is returned when a parameter is not a valid UUID.
var ErrInvalidUUID = errors.New("the specified resource ID is not a valid UUID")

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

// Parse parses s into a UUID.
func Parse(s string) (UUID, error) {
	parsed, err := google_uuid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("%w: '%s'", ErrInvalidUUID, s)
	}

	return UUID{parsed}, nil
}

// IsNil reports whether u is the nil UUID.
func (u UUID) IsNil() bool {
	return u.UUID == google_uuid.Nil
}

// UnmarshalParam implements gin's BindUnmarshaler for URI and
// query parameters. The empty string parses to Nil.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, err := Parse(p)
	if err != nil {
		return err
	}

	*u = parsed
	return nil
}
