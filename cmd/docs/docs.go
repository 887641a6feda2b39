// Package docs holds the OpenAPI description served under /swagger.
// Regenerate it from the handler annotations with:
//
//	swag init -g cmd/splitbalance/main.go -o cmd/docs
package docs

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
        "/groups": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["groups"], "summary": "Create a new group", "responses": {"201": {"description": "Created"}}},
            "get": {"security": [{"BearerAuth": []}], "tags": ["groups"], "summary": "List groups for current user", "responses": {"200": {"description": "OK"}}}
        },
        "/groups/join": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["groups"], "summary": "Join a group with an invite code", "responses": {"200": {"description": "OK"}}}
        },
        "/groups/{group_id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["groups"], "summary": "Get a group", "responses": {"200": {"description": "OK"}}}
        },
        "/groups/{group_id}/members": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["groups"], "summary": "Add a member to a group", "responses": {"201": {"description": "Created"}}}
        },
        "/groups/{group_id}/expenses": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["expenses"], "summary": "Record an expense", "responses": {"201": {"description": "Created"}}},
            "get": {"security": [{"BearerAuth": []}], "tags": ["expenses"], "summary": "List expenses", "responses": {"200": {"description": "OK"}}}
        },
        "/groups/{group_id}/expenses/{expense_id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["expenses"], "summary": "Get an expense", "responses": {"200": {"description": "OK"}}}
        },
        "/groups/{group_id}/settlements": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["settlements"], "summary": "Record a settlement", "responses": {"201": {"description": "Created"}}}
        },
        "/groups/{group_id}/balance-data": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["balances"], "summary": "Get group balances", "responses": {"200": {"description": "OK"}}}
        },
        "/groups/{group_id}/export": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["balances"], "summary": "Export a group as CSV", "produces": ["text/csv"], "responses": {"200": {"description": "OK"}}}
        },
        "/splits/preview": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["splits"], "summary": "Preview a split", "responses": {"200": {"description": "OK"}}}
        },
        "/splits/validate": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["splits"], "summary": "Validate percentages", "responses": {"200": {"description": "OK"}}}
        },
        "/currencies": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["currencies"], "summary": "Create a new currency", "responses": {"201": {"description": "Created"}}},
            "get": {"security": [{"BearerAuth": []}], "tags": ["currencies"], "summary": "List all currencies", "responses": {"200": {"description": "OK"}}}
        },
        "/currencies/{code}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["currencies"], "summary": "Get a currency by code", "responses": {"200": {"description": "OK"}}}
        },
        "/exchange-rates": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["exchange rates"], "summary": "Get the current rate table", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["exchange rates"], "summary": "Create a new exchange rate", "responses": {"201": {"description": "Created"}}}
        },
        "/exchange-rates/{from}/{to}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["exchange rates"], "summary": "Get an exchange rate", "responses": {"200": {"description": "OK"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Split Balance API",
	Description:      "Shared expense tracking with multi-currency balances.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
