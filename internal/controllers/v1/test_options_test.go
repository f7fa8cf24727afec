package v1_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOptionsHeaderResources() {
	optionsHeaderTests := []struct {
		path     string
		response string
	}{
		{"/v1", "OPTIONS, GET"},
		{"/v1/months", "OPTIONS, GET, POST"},
		{"/v1/months/2024-03", "OPTIONS, GET, PATCH, DELETE"},
		{"/v1/months/2024-03/expenses", "OPTIONS, GET, POST"},
		{"/v1/months/2024-03/summary", "OPTIONS, GET"},
	}

	for _, tt := range optionsHeaderTests {
		suite.T().Run(tt.path, func(t *testing.T) {
			recorder := suite.request(t, http.MethodOptions, tt.path, "")

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			assert.Equal(t, tt.response, recorder.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestOptionsMonthInvalid() {
	recorder := suite.request(suite.T(), http.MethodOptions, "/v1/months/March", "")
	assert.Equal(suite.T(), http.StatusBadRequest, recorder.Code)
}

func (suite *TestSuiteStandard) TestGetV1() {
	recorder := suite.request(suite.T(), http.MethodGet, "/v1", "")
	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
	assert.Contains(suite.T(), recorder.Body.String(), `"months":"http://example.com/v1/months"`)
}
