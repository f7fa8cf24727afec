package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/expense-tracer/backend/internal/models"
	"github.com/expense-tracer/backend/internal/router"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// BaseURL is the URL the API is served at in tests.
const BaseURL = "http://example.com"

// Location is the time zone used for summaries in tests.
var Location = time.UTC

// Request is a helper method to simplify making a HTTP request for tests.
//
// body can be a string, a struct, a map or a slice. Everything but strings
// is marshalled to JSON.
func Request(t *testing.T, store *models.Store, method, reqURL string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	var byteBuffer *bytes.Buffer

	switch reflect.TypeOf(body).Kind() {
	case reflect.String:
		byteBuffer = bytes.NewBufferString(body.(string))
	case reflect.Struct, reflect.Map, reflect.Slice:
		byteStr, err := json.Marshal(body)
		if err != nil {
			assert.Fail(t, "Request body could not be marshalled from struct input", err)
		}
		byteBuffer = bytes.NewBuffer(byteStr)
	default:
		// Assume we got sent a *bytes.Buffer
		byteBuffer = body.(*bytes.Buffer)
	}

	baseURL, err := url.Parse(BaseURL)
	require.Nil(t, err)

	r, teardown, err := router.Config(baseURL)
	defer teardown()

	if err != nil {
		assert.FailNow(t, "Router could not be initialized", err.Error())
	}
	router.AttachRoutes(r.Group("/"), store, Location)

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest(method, reqURL, byteBuffer)

	for _, headerMap := range headers {
		for header, value := range headerMap {
			req.Header.Set(header, value)
		}
	}

	r.ServeHTTP(recorder, req)

	return *recorder
}

// DecodeResponse decodes an HTTP response into a target struct.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target any) {
	err := json.Unmarshal(r.Body.Bytes(), &target)
	if err != nil {
		assert.FailNow(t, "Parsing error", "Unable to parse response from server %q into %v, '%v', Request ID: %s", r.Body, reflect.TypeOf(target), err, r.Result().Header.Get("x-request-id"))
	}
}

// DecodeError returns the error message of an HTTP response.
func DecodeError(t *testing.T, s []byte) string {
	var r struct {
		Error string `json:"error"`
	}

	if err := json.Unmarshal(s, &r); err != nil {
		assert.Fail(t, "Not valid JSON!", "%s", s)
	}

	return r.Error
}

// AssertHTTPStatus verifies that the HTTP response status is correct
func AssertHTTPStatus(t *testing.T, r *httptest.ResponseRecorder, expectedStatus ...int) {
	require.Contains(t, expectedStatus, r.Code, "HTTP status is wrong. Request ID: '%s' Response body: %s", r.Result().Header.Get("x-request-id"), r.Body.String())
}

// TmpFile returns the path to a unique file to be used in tests
func TmpFile(t *testing.T) string {
	dir := t.TempDir()
	return filepath.Join(dir, uuid.New().String())
}
