package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/expense-tracer/backend/internal/controllers/v1"
	"github.com/expense-tracer/backend/internal/models"
	"github.com/expense-tracer/backend/internal/types"
	"github.com/expense-tracer/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestSummary() {
	suite.createTestMonth(suite.T(), v1.MonthEditable{Month: month("2024-03")})
	r := suite.request(suite.T(), http.MethodPatch, "/v1/months/2024-03", `{ "totalMoney": 1000 }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	suite.createTestExpense(suite.T(), "2024-03", v1.ExpenseEditable{Description: "rent", Amount: decimal.NewFromInt(500), Date: date("2024-03-14")})
	suite.createTestExpense(suite.T(), "2024-03", v1.ExpenseEditable{Description: "gift", Amount: decimal.NewFromInt(200), Date: date("2024-03-16")})

	tests := []struct {
		name      string
		today     string
		spent     int64
		remaining int64
		future    int64
		formatted v1.SummaryFormatted
	}{
		{"Between expenses", "2024-03-15", 500, 500, 200, v1.SummaryFormatted{Budget: "€1,000.00", Spent: "€500.00", Remaining: "€500.00", Future: "€200.00"}},
		{"On the day of the gift", "2024-03-16", 700, 300, 0, v1.SummaryFormatted{Budget: "€1,000.00", Spent: "€700.00", Remaining: "€300.00", Future: "€0.00"}},
		{"Before all expenses", "2024-02-01", 0, 1000, 700, v1.SummaryFormatted{Budget: "€1,000.00", Spent: "€0.00", Remaining: "€1,000.00", Future: "€700.00"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, "/v1/months/2024-03/summary?today="+tt.today, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.SummaryResponse
			test.DecodeResponse(t, &r, &response)

			s := response.Data
			assert.Equal(t, types.Date(tt.today), s.Today)
			assert.Equal(t, month("2024-03"), s.Month)
			assert.True(t, decimal.NewFromInt(tt.spent).Equal(s.Summary.Spent), "spent: %s", s.Summary.Spent)
			assert.True(t, decimal.NewFromInt(tt.remaining).Equal(s.Summary.Remaining), "remaining: %s", s.Summary.Remaining)
			assert.True(t, decimal.NewFromInt(tt.future).Equal(s.Summary.Future), "future: %s", s.Summary.Future)
			assert.Equal(t, tt.formatted, s.Formatted)
			assert.Len(t, s.Expenses, 2)
			require.Len(t, s.Summary.Rows, 2)
			assert.Equal(t, "rent", s.Summary.Rows[0].Description)
			assert.Equal(t, "http://example.com/v1/months/2024-03", s.Links.Self)
		})
	}
}

// TestSummaryOverspent verifies that a negative remaining budget is no error.
func (suite *TestSuiteStandard) TestSummaryOverspent() {
	suite.createTestExpense(suite.T(), "2024-03", v1.ExpenseEditable{Description: "Undated", Amount: decimal.NewFromInt(50)})

	r := suite.request(suite.T(), http.MethodGet, "/v1/months/2024-03/summary?today=2024-03-01", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SummaryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), decimal.NewFromInt(-50).Equal(response.Data.Summary.Remaining))
	assert.Equal(suite.T(), "-€50.00", response.Data.Formatted.Remaining)
}

// TestSummaryToday verifies that the summary is computed for the current
// day when no day is given.
func (suite *TestSuiteStandard) TestSummaryToday() {
	r := suite.request(suite.T(), http.MethodGet, "/v1/months/2024-03/summary", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SummaryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	_, err := types.ParseDate(string(response.Data.Today))
	assert.Nil(suite.T(), err)
	assert.NotNil(suite.T(), response.Data.Expenses)
	assert.True(suite.T(), response.Data.Summary.Remaining.IsZero())
}

func (suite *TestSuiteStandard) TestSummaryFails() {
	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"Not a month", "/v1/months/2024-3/summary", http.StatusBadRequest},
		{"Not a day", "/v1/months/2024-03/summary?today=tomorrow", http.StatusBadRequest},
		{"Invalid day", "/v1/months/2024-03/summary?today=2024-02-30", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, tt.path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.SummaryResponse
			test.DecodeResponse(t, &r, &response)
			assert.NotNil(t, response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestSummaryDBClosed() {
	suite.CloseDB()

	r := suite.request(suite.T(), http.MethodGet, "/v1/months/2024-03/summary", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
	assert.Equal(suite.T(), models.ErrStoreUnavailable.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))
}
