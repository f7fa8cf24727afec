package httputil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/url"
	"reflect"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// GetURLFields returns the names of all fields of filter that are set
// as query parameters in url.
func GetURLFields(url *url.URL, filter any) []string {
	query := url.Query()

	return setFields(filter, "form", func(name string) bool {
		return query.Has(name)
	})
}

// GetBodyFields returns a slice of strings with the field names
// of the resource passed in. Only names of fields which are set
// in the body are contained in that slice, "null" counts as set.
//
// This function reads and copies the request body, it must always
// be called before any of gin's c.*Bind methods.
func GetBodyFields(c *gin.Context, resource any) ([]string, error) {
	// Copy the body to be able to use it multiple times
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrRequestBodyEmpty
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return nil, ErrInvalidBody
	}

	return setFields(resource, "json", func(name string) bool {
		_, ok := keys[name]
		return ok
	}), nil
}

// setFields returns the names of the struct fields of v whose tag name
// is reported as set by isSet.
func setFields(v any, tag string, isSet func(string) bool) []string {
	var fields []string

	typ := reflect.Indirect(reflect.ValueOf(v)).Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name == "" || name == "-" {
			continue
		}

		if isSet(name) {
			fields = append(fields, field.Name)
		}
	}

	return fields
}
