package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/expense-tracer/backend/internal/types"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// BindData binds the JSON body of the request to data.
//
// Values of the wrong type are reported with the name of their field and
// malformed months or dates with their parse error. All other decoding
// errors are logged and returned as ErrInvalidBody.
func BindData(c *gin.Context, data any) error {
	err := c.ShouldBindJSON(data)
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) {
		return ErrRequestBodyEmpty
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return fmt.Errorf("%w: expected %s, got %s", ErrInvalidBody, typeErr.Type, typeErr.Value)
		}
		return fmt.Errorf("%w: '%s' must be %s, got %s", ErrInvalidBody, typeErr.Field, typeErr.Type, typeErr.Value)
	}

	if errors.Is(err, types.ErrInvalidMonth) || errors.Is(err, types.ErrInvalidDate) {
		return fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}

	log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	return ErrInvalidBody
}
