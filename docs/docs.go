// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/talentika/main.go -o docs
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
        "/admin/plans": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List all plans",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.APIResponse"},
                                {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/usecases.PlanView"}}}}
                            ]
                        }
                    }
                }
            }
        },
        "/admin/transactions": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "string", "description": "pending, completed or failed", "name": "status", "in": "query"},
                    {"type": "string", "description": "Filter by user", "name": "user_id", "in": "query"},
                    {"type": "boolean", "description": "Only transactions awaiting activation", "name": "activation_pending", "in": "query"},
                    {"type": "integer", "description": "Page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.APIResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/utils.ListResponse"}}}
                            ]
                        }
                    }
                }
            }
        },
        "/admin/transactions/{id}/events": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List gateway events for a transaction",
                "parameters": [
                    {"type": "string", "description": "Transaction ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.APIResponse"},
                                {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/usecases.GatewayEventView"}}}}
                            ]
                        }
                    }
                }
            }
        },
        "/admin/transactions/{id}/retry-activation": {
            "post": {
                "security": [{"Bearer": []}],
                "description": "Run the activator again for a completed transaction still awaiting activation",
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Retry subscription activation",
                "parameters": [
                    {"type": "string", "description": "Transaction ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "409": {"description": "Already activated or not completed", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/payments/invoices": {
            "post": {
                "security": [{"Bearer": []}],
                "description": "Record a pending transaction and open a hosted invoice for it",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Create invoice",
                "parameters": [
                    {"description": "Invoice request", "name": "invoice", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateInvoiceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CreateInvoiceResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.CreateInvoiceResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.CreateInvoiceResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.CreateInvoiceResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handlers.CreateInvoiceResponse"}}
                }
            }
        },
        "/payments/transactions/{id}": {
            "get": {
                "security": [{"Bearer": []}],
                "description": "Poll the state of a checkout. Owners and operators only.",
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Get transaction",
                "parameters": [
                    {"type": "string", "description": "Transaction ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.APIResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/usecases.TransactionView"}}}
                            ]
                        }
                    },
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/payments/webhook": {
            "post": {
                "description": "Reconcile an invoice status change. Responds in plain text.",
                "consumes": ["application/json"],
                "produces": ["text/plain"],
                "tags": ["payments"],
                "summary": "Gateway invoice callback",
                "parameters": [
                    {"type": "string", "description": "Callback verification token", "name": "X-CALLBACK-TOKEN", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "404": {"description": "Not Found"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/plans": {
            "get": {
                "produces": ["application/json"],
                "tags": ["plans"],
                "summary": "List plans",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.APIResponse"},
                                {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/usecases.PlanView"}}}}
                            ]
                        }
                    }
                }
            }
        },
        "/subscriptions/me": {
            "get": {
                "security": [{"Bearer": []}],
                "description": "Effective subscription status of the caller",
                "produces": ["application/json"],
                "tags": ["subscriptions"],
                "summary": "Get my subscription",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.APIResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/usecases.SubscriptionView"}}}
                            ]
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "handlers.CreateInvoiceRequest": {
            "type": "object",
            "required": ["amount", "billingCycle", "paymentMethod", "planId", "userId"],
            "properties": {
                "amount": {"type": "integer"},
                "billingCycle": {"type": "string"},
                "paymentMethod": {"type": "string"},
                "planId": {"type": "string", "maxLength": 64},
                "userId": {"type": "string"},
                "voucherId": {"type": "string", "maxLength": 64}
            }
        },
        "handlers.CreateInvoiceResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "invoice_id": {"type": "string"},
                "invoice_url": {"type": "string"},
                "success": {"type": "boolean"},
                "transaction_id": {"type": "string"}
            }
        },
        "usecases.GatewayEventView": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "external_id": {"type": "string"},
                "id": {"type": "string"},
                "invoice_id": {"type": "string"},
                "outcome": {"type": "string"},
                "paid_amount": {"type": "integer"},
                "received_at": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "usecases.PlanView": {
            "type": "object",
            "properties": {
                "billing_cycle": {"type": "string"},
                "id": {"type": "string"},
                "is_active": {"type": "boolean"},
                "name": {"type": "string"},
                "price": {"type": "integer"},
                "type": {"type": "string"}
            }
        },
        "usecases.SubscriptionView": {
            "type": "object",
            "properties": {
                "billing_cycle": {"type": "string"},
                "expires_at": {"type": "string"},
                "is_entitled": {"type": "boolean"},
                "plan_id": {"type": "string"},
                "plan_type": {"type": "string"},
                "starts_at": {"type": "string"},
                "status": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "usecases.TransactionView": {
            "type": "object",
            "properties": {
                "activation_error": {"type": "string"},
                "activation_pending": {"type": "boolean"},
                "amount": {"type": "integer"},
                "billing_cycle": {"type": "string"},
                "created_at": {"type": "string"},
                "currency": {"type": "string"},
                "external_transaction_id": {"type": "string"},
                "failure_reason": {"type": "string"},
                "gateway": {"type": "string"},
                "id": {"type": "string"},
                "invoice_url": {"type": "string"},
                "paid_amount": {"type": "integer"},
                "paid_at": {"type": "string"},
                "payment_method": {"type": "string"},
                "plan_id": {"type": "string"},
                "status": {"type": "string"},
                "updated_at": {"type": "string"},
                "user_id": {"type": "string"},
                "voucher_id": {"type": "string"}
            }
        },
        "utils.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/utils.ErrorInfo"},
                "message": {"type": "string"},
                "request_id": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "utils.ErrorInfo": {
            "type": "object",
            "properties": {
                "details": {"type": "string"},
                "message": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "utils.ListResponse": {
            "type": "object",
            "properties": {
                "items": {},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Identity provider access token, as \"Bearer <token>\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Talentika API",
	Description:      "Subscription checkout, payment webhooks and entitlement reads.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
