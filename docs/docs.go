// Package docs registers the OpenAPI description of the console API with swag.
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
        "/v1/state": {
            "get": {
                "produces": ["application/json"],
                "tags": ["state"],
                "summary": "Console state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ConsoleState"}}
                }
            }
        },
        "/v1/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}
                }
            }
        },
        "/v1/session/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.credentialsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/session/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Register a customer",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.credentialsRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.sessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/session/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Log out",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}
                }
            }
        },
        "/v1/payments/form": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Edit the order form",
                "parameters": [
                    {"description": "Form fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.orderFormRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.OrderForm"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/payments/form/submit": {
            "post": {
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Submit the order form",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.orderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/payments/order": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Create a payment order",
                "parameters": [
                    {"description": "Order", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.orderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/payments/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Query a payment status",
                "parameters": [
                    {"type": "string", "description": "Payment ID", "name": "payment_id", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.statusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Cached dashboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.dashboardResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/dashboard/refresh": {
            "post": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Refresh the dashboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.dashboardResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List accounts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.usersResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Payment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "amount": {"type": "number"},
                "currency": {"type": "string"},
                "description": {"type": "string"},
                "status": {"type": "string", "enum": ["PENDING", "PROCESSING", "COMPLETED", "FAILED", "RETRYING", "DUPLICATE"]},
                "createdAt": {"type": "string"},
                "lastUpdatedAt": {"type": "string"}
            }
        },
        "domain.Session": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "enum": ["anonymous", "authenticating", "authenticated"]},
                "authenticated": {"type": "boolean"},
                "username": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "customer"]},
                "message": {"type": "string"}
            }
        },
        "domain.OrderForm": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "currency": {"type": "string", "enum": ["USD", "EUR", "GBP"]},
                "description": {"type": "string"}
            }
        },
        "domain.ConsoleState": {
            "type": "object",
            "properties": {
                "session": {"$ref": "#/definitions/domain.Session"},
                "registerMessage": {"type": "string"},
                "orderForm": {"$ref": "#/definitions/domain.OrderForm"},
                "creationMessage": {"type": "string"},
                "receipt": {"$ref": "#/definitions/domain.Payment"},
                "queryId": {"type": "string"},
                "queryMessage": {"type": "string"},
                "queriedStatus": {"$ref": "#/definitions/domain.Payment"},
                "payments": {"type": "array", "items": {"$ref": "#/definitions/domain.Payment"}},
                "dashboardMessage": {"type": "string"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.credentialsRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.orderFormRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "currency": {"type": "string", "enum": ["USD", "EUR", "GBP"]},
                "description": {"type": "string", "maxLength": 255}
            }
        },
        "handler.createOrderRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "currency": {"type": "string", "enum": ["USD", "EUR", "GBP"]},
                "description": {"type": "string", "maxLength": 255}
            }
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "session": {"$ref": "#/definitions/domain.Session"},
                "registerMessage": {"type": "string"}
            }
        },
        "handler.orderResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "payment": {"$ref": "#/definitions/domain.Payment"}
            }
        },
        "handler.statusResponse": {
            "type": "object",
            "properties": {
                "paymentId": {"type": "string"},
                "message": {"type": "string"},
                "payment": {"$ref": "#/definitions/domain.Payment"}
            }
        },
        "handler.dashboardResponse": {
            "type": "object",
            "properties": {
                "payments": {"type": "array", "items": {"$ref": "#/definitions/domain.Payment"}},
                "message": {"type": "string"},
                "total": {"type": "integer"},
                "open": {"type": "integer"}
            }
        },
        "handler.usersResponse": {
            "type": "object",
            "properties": {
                "users": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "username": {"type": "string"},
                            "role": {"type": "string", "enum": ["admin", "customer"]}
                        }
                    }
                },
                "total": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Payment Console API",
	Description:      "Session, payment order and dashboard state of a payment service client.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
