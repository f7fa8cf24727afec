// Package api contains the OpenAPI documentation of the backend.
//
// The paths listed here are maintained alongside the swag annotations
// of the handlers.
package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Entrypoint for the API, listing all endpoints",
                "tags": ["General"],
                "summary": "API root",
                "responses": {"200": {"description": "OK"}}
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": ["General"],
                "summary": "Allowed HTTP verbs",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/healthz": {
            "get": {
                "description": "Returns the application health and, if not healthy, an error",
                "tags": ["General"],
                "summary": "Get health",
                "responses": {"204": {"description": "No Content"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/version": {
            "get": {
                "description": "Returns the software version of the API",
                "tags": ["General"],
                "summary": "API version",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1": {
            "get": {
                "description": "Returns general information about the v1 API",
                "tags": ["v1"],
                "summary": "v1 API",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/months": {
            "get": {
                "description": "Returns all months that have been added, newest first",
                "tags": ["Months"],
                "summary": "Get months",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "500": {"description": "Internal Server Error"}}
            },
            "post": {
                "description": "Adds months with a budget of zero. Months that already exist are returned unchanged.",
                "tags": ["Months"],
                "summary": "Add months",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/v1/months/{month}": {
            "get": {
                "description": "Returns the budget of a month. Months that have not been added have a budget of zero.",
                "tags": ["Months"],
                "summary": "Get month",
                "parameters": [{"type": "string", "description": "Year and month in YYYY-MM format", "name": "month", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "500": {"description": "Internal Server Error"}}
            },
            "patch": {
                "description": "Updates the budget of a month. Only values to be updated need to be specified.",
                "tags": ["Months"],
                "summary": "Update month",
                "parameters": [{"type": "string", "description": "Year and month in YYYY-MM format", "name": "month", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}, "500": {"description": "Internal Server Error"}}
            },
            "delete": {
                "description": "Deletes the budget of a month and all of its expenses",
                "tags": ["Months"],
                "summary": "Delete month",
                "parameters": [{"type": "string", "description": "Year and month in YYYY-MM format", "name": "month", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/v1/months/{month}/expenses": {
            "get": {
                "description": "Returns the expenses of a month, ordered by date. Expenses without a date are listed first.",
                "tags": ["Expenses"],
                "summary": "Get expenses",
                "parameters": [
                    {"type": "string", "description": "Year and month in YYYY-MM format", "name": "month", "in": "path", "required": true},
                    {"type": "string", "description": "Filter by description. Supports * as wildcard", "name": "description", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "500": {"description": "Internal Server Error"}}
            },
            "post": {
                "description": "Creates new expenses in a month. The month does not need to be added first.",
                "tags": ["Expenses"],
                "summary": "Create expenses",
                "parameters": [{"type": "string", "description": "Year and month in YYYY-MM format", "name": "month", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/v1/months/{month}/summary": {
            "get": {
                "description": "Returns budget, expenses and their totals for a month. Expenses after the current day are projected as future spending.",
                "tags": ["Summary"],
                "summary": "Get summary",
                "parameters": [
                    {"type": "string", "description": "Year and month in YYYY-MM format", "name": "month", "in": "path", "required": true},
                    {"type": "string", "description": "Day to compute the summary for in YYYY-MM-DD format", "name": "today", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/v1/expenses/{id}": {
            "get": {
                "description": "Returns a specific expense",
                "tags": ["Expenses"],
                "summary": "Get expense",
                "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}, "500": {"description": "Internal Server Error"}}
            },
            "patch": {
                "description": "Updates description and amount of an expense. Only values to be updated need to be specified. Date and month of an expense cannot be changed.",
                "tags": ["Expenses"],
                "summary": "Update expense",
                "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}, "500": {"description": "Internal Server Error"}}
            },
            "delete": {
                "description": "Deletes an expense",
                "tags": ["Expenses"],
                "summary": "Delete expense",
                "parameters": [{"type": "string", "format": "uuid", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}, "500": {"description": "Internal Server Error"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "Expense Tracer",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
