// Package docs is generated by swag init; regenerate with `swag init -g cmd/api/main.go`.
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
        "/work-orders": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["work-orders"],
                "summary": "Create a work order",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "422": {"description": "Unprocessable Entity"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/work-orders/active": {
            "get": {
                "produces": ["application/json"],
                "tags": ["work-orders"],
                "summary": "Active dashboard",
                "parameters": [
                    {"type": "string", "name": "customer_class", "in": "query"},
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "string", "name": "search", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/work-orders/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["work-orders"],
                "summary": "Get a work order",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/work-orders/{id}/advance": {
            "post": {
                "produces": ["application/json"],
                "tags": ["work-orders"],
                "summary": "Advance to the next status",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            }
        },
        "/work-orders/{id}/cancel": {
            "post": {
                "produces": ["application/json"],
                "tags": ["work-orders"],
                "summary": "Cancel a work order",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/work-orders/{id}/archive": {
            "post": {
                "produces": ["application/json"],
                "tags": ["work-orders"],
                "summary": "Archive a work order",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/work-orders/{id}/invoice": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["work-orders"],
                "summary": "Issue the invoice of a work order",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/statuses": {
            "get": {
                "produces": ["application/json"],
                "tags": ["statuses"],
                "summary": "List the status ledger",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["statuses"],
                "summary": "Add a status to the ledger",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/statuses/next": {
            "get": {
                "produces": ["application/json"],
                "tags": ["statuses"],
                "summary": "Next status in the workflow",
                "parameters": [{"type": "string", "name": "current", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/statuses/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["statuses"],
                "summary": "Replace a status entry",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/invoices/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Get an invoice",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/invoices/by-work-order/{work_order_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Get the invoice of a work order",
                "parameters": [{"type": "string", "name": "work_order_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/payment-methods": {
            "get": {
                "produces": ["application/json"],
                "tags": ["payment-methods"],
                "summary": "List payment methods",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payment-methods"],
                "summary": "Register a payment method",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/payment-methods/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["payment-methods"],
                "summary": "Get a payment method",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/payments/{invoice_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Latest payment of an invoice",
                "parameters": [{"type": "string", "name": "invoice_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Pay an invoice",
                "parameters": [
                    {"type": "string", "name": "invoice_id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/audit": {
            "get": {
                "produces": ["application/json"],
                "tags": ["audit"],
                "summary": "Invoice numbering audit",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/audit/export": {
            "get": {
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["audit"],
                "summary": "Download the numbering audit",
                "parameters": [{"type": "string", "name": "format", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/audit/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["audit"],
                "summary": "Work order counts by status, class and month",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/audit/numbers/{customer_class}/{number}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["audit"],
                "summary": "Work orders holding an invoice number",
                "parameters": [
                    {"type": "string", "name": "customer_class", "in": "path", "required": true},
                    {"type": "integer", "name": "number", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/audit/counters/{customer_class}/resync": {
            "post": {
                "produces": ["application/json"],
                "tags": ["audit"],
                "summary": "Resync an invoice counter",
                "parameters": [{"type": "string", "name": "customer_class", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Work Order Invoicing API",
	Description:      "Work orders, per-class invoice numbering, invoices and payments backed by DynamoDB.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
