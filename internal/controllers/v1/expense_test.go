package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/expense-tracer/backend/internal/controllers/v1"
	"github.com/expense-tracer/backend/internal/models"
	"github.com/expense-tracer/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestExpensesCreate() {
	suite.createTestMonth(suite.T(), v1.MonthEditable{Month: month("2024-03"), Currency: "$"})

	e := suite.createTestExpense(suite.T(), "2024-03", v1.ExpenseEditable{
		Description: "Rent",
		Amount:      decimal.NewFromFloat(1234.5),
		Date:        date("2024-03-01"),
	})

	assert.Equal(suite.T(), "Rent", e.Data.Description)
	assert.True(suite.T(), e.Data.Amount.Equal(decimal.NewFromFloat(1234.5)))
	assert.Equal(suite.T(), date("2024-03-01"), e.Data.Date)
	assert.Equal(suite.T(), month("2024-03"), e.Data.Month)
	assert.Equal(suite.T(), "$1,234.50", e.Data.Formatted)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/expenses/%s", e.Data.ID), e.Data.Links.Self)
	assert.Equal(suite.T(), "http://example.com/v1/months/2024-03", e.Data.Links.Month)
}

// TestExpensesCreateWithoutMonth verifies that expenses can be added to
// months that have not been added.
func (suite *TestSuiteStandard) TestExpensesCreateWithoutMonth() {
	e := suite.createTestExpense(suite.T(), "2024-05", v1.ExpenseEditable{Description: "Gift"})
	assert.Nil(suite.T(), e.Data.Date)
	assert.Equal(suite.T(), "€10.00", e.Data.Formatted)

	r := suite.request(suite.T(), http.MethodGet, "/v1/months", "")
	var months v1.MonthListResponse
	test.DecodeResponse(suite.T(), &r, &months)
	assert.Len(suite.T(), months.Data, 0)
}

func (suite *TestSuiteStandard) TestExpensesCreateFails() {
	tests := []struct {
		name   string
		month  string
		body   any
		status int
	}{
		{"Empty body", "2024-03", "", http.StatusBadRequest},
		{"Broken JSON", "2024-03", `[{ "description": "Rent"`, http.StatusBadRequest},
		{"Not a month", "March", `[{ "description": "Rent", "amount": 10 }]`, http.StatusBadRequest},
		{"Empty description", "2024-03", `[{ "description": " ", "amount": 10 }]`, http.StatusBadRequest},
		{"Zero amount", "2024-03", `[{ "description": "Rent", "amount": 0 }]`, http.StatusBadRequest},
		{"Negative amount", "2024-03", `[{ "description": "Rent", "amount": -5 }]`, http.StatusBadRequest},
		{"Invalid date", "2024-03", `[{ "description": "Rent", "amount": 5, "date": "2024-02-30" }]`, http.StatusBadRequest},
		{"Date in wrong format", "2024-03", `[{ "description": "Rent", "amount": 5, "date": "01.03.2024" }]`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodPost, fmt.Sprintf("/v1/months/%s/expenses", tt.month), tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}

	expenses, err := suite.store.ListExpenses(suite.T().Context(), models.Session{}, month("2024-03"))
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), expenses, 0, "no invalid expense must be stored")
}

func (suite *TestSuiteStandard) TestExpensesGetList() {
	suite.createTestExpense(suite.T(), "2024-03", v1.ExpenseEditable{Description: "Late", Date: date("2024-03-20")})
	suite.createTestExpense(suite.T(), "2024-03", v1.ExpenseEditable{Description: "Undated"})
	suite.createTestExpense(suite.T(), "2024-03", v1.ExpenseEditable{Description: "Early", Date: date("2024-03-02")})
	suite.createTestExpense(suite.T(), "2024-04", v1.ExpenseEditable{Description: "Next month"})

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"All", "", []string{"Undated", "Early", "Late"}},
		{"Exact description", "?description=Late", []string{"Late"}},
		{"Glob", "?description=*a*", []string{"Undated", "Early", "Late"}},
		{"Prefix", "?description=E*", []string{"Early"}},
		{"No match", "?description=Rent", []string{}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, "/v1/months/2024-03/expenses"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ExpenseListResponse
			test.DecodeResponse(t, &r, &response)

			descriptions := []string{}
			for _, e := range response.Data {
				descriptions = append(descriptions, e.Description)
			}
			assert.Equal(t, tt.expected, descriptions)
		})
	}
}

func (suite *TestSuiteStandard) TestExpensesOptions() {
	e := suite.createTestExpense(suite.T(), "2024-03", v1.ExpenseEditable{})

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No expense with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Expense exists", e.Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodOptions, "/v1/expenses/"+tt.id, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestExpensesGetSingle() {
	suite.createTestMonth(suite.T(), v1.MonthEditable{Month: month("2024-03"), Currency: "kr"})
	e := suite.createTestExpense(suite.T(), "2024-03", v1.ExpenseEditable{Amount: decimal.NewFromInt(99)})

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing expense", e.Data.ID.String(), http.StatusOK},
		{"ID nil", uuid.Nil.String(), http.StatusNotFound},
		{"No expense with ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "Definitely-an-invalid-UUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, "/v1/expenses/"+tt.id, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusOK {
				var response v1.ExpenseResponse
				test.DecodeResponse(t, &r, &response)
				assert.Equal(t, "kr99.00", response.Data.Formatted)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestExpensesUpdate() {
	e := suite.createTestExpense(suite.T(), "2024-03", v1.ExpenseEditable{
		Description: "Rent",
		Amount:      decimal.NewFromInt(500),
		Date:        date("2024-03-01"),
	})
	path := "/v1/expenses/" + e.Data.ID.String()

	tests := []struct {
		name        string
		body        any
		status      int
		description string
		amount      decimal.Decimal
	}{
		{"Description only", `{ "description": "Rent March" }`, http.StatusOK, "Rent March", decimal.NewFromInt(500)},
		{"Amount only", `{ "amount": 550.25 }`, http.StatusOK, "Rent March", decimal.NewFromFloat(550.25)},
		{"Both", map[string]any{"description": "Flat", "amount": "600"}, http.StatusOK, "Flat", decimal.NewFromInt(600)},
		{"Date is ignored", `{ "date": "2024-03-30", "month": "2024-04" }`, http.StatusOK, "Flat", decimal.NewFromInt(600)},
		{"Empty description", `{ "description": "" }`, http.StatusBadRequest, "", decimal.Zero},
		{"Zero amount", `{ "amount": 0 }`, http.StatusBadRequest, "", decimal.Zero},
		{"Broken JSON", `{ "amount": 2`, http.StatusBadRequest, "", decimal.Zero},
		{"Wrong type", `{ "description": 2 }`, http.StatusBadRequest, "", decimal.Zero},
		{"Empty body", "", http.StatusBadRequest, "", decimal.Zero},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodPatch, path, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status != http.StatusOK {
				return
			}

			var response v1.ExpenseResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.description, response.Data.Description)
			assert.True(t, tt.amount.Equal(response.Data.Amount), "expected %s, got %s", tt.amount, response.Data.Amount)
			assert.Equal(t, date("2024-03-01"), response.Data.Date)
			assert.Equal(t, month("2024-03"), response.Data.Month)
		})
	}

	// Failed updates must not have changed the expense
	expense, err := suite.store.GetExpense(suite.T().Context(), models.Session{}, e.Data.ID)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), "Flat", expense.Description)
}

func (suite *TestSuiteStandard) TestExpensesUpdateNotFound() {
	r := suite.request(suite.T(), http.MethodPatch, "/v1/expenses/"+uuid.New().String(), `{ "description": "Rent" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var response v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrExpenseNotFound.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestExpensesDelete() {
	e := suite.createTestExpense(suite.T(), "2024-03", v1.ExpenseEditable{})
	path := "/v1/expenses/" + e.Data.ID.String()

	r := suite.request(suite.T(), http.MethodDelete, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(suite.T(), http.MethodDelete, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	assert.Equal(suite.T(), models.ErrExpenseNotFound.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))

	r = suite.request(suite.T(), http.MethodGet, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.request(suite.T(), http.MethodDelete, "/v1/expenses/not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestExpensesDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestExpensesDBClosed() {
	id := uuid.New().String()

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"GET list", http.MethodGet, "/v1/months/2024-03/expenses", ""},
		{"POST", http.MethodPost, "/v1/months/2024-03/expenses", `[{ "description": "Rent", "amount": 5 }]`},
		{"OPTIONS", http.MethodOptions, "/v1/expenses/" + id, ""},
		{"GET", http.MethodGet, "/v1/expenses/" + id, ""},
		{"PATCH", http.MethodPatch, "/v1/expenses/" + id, `{ "amount": 5 }`},
		{"DELETE", http.MethodDelete, "/v1/expenses/" + id, ""},
	}

	suite.CloseDB()

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, tt.method, tt.path, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)
			assert.Contains(t, r.Body.String(), models.ErrStoreUnavailable.Error())
		})
	}
}
