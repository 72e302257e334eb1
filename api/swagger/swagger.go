package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Scholarship Intake API",
        "description": "Scholarship eligibility intake and admin panel backend",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Applications", "description": "Application submission and lifecycle"},
        {"name": "Admins", "description": "Admin directory and session management"},
        {"name": "Settings", "description": "Logo settings store"},
        {"name": "Health", "description": "Service health"}
    ],
    "paths": {
        "/applications": {
            "get": {
                "tags": ["Applications"],
                "summary": "List applications newest first",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Applications"],
                "summary": "Submit an application",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation failure"}
                }
            }
        },
        "/applications/{id}": {
            "delete": {
                "tags": ["Applications"],
                "summary": "Delete one application",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/applications/bulk-delete": {
            "delete": {
                "tags": ["Applications"],
                "summary": "Bulk delete by date range and eligibility",
                "parameters": [
                    {"name": "startDate", "in": "query", "type": "string"},
                    {"name": "endDate", "in": "query", "type": "string"},
                    {"name": "eligibilityStatus", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "Deleted count"}
                }
            }
        },
        "/applications/export": {
            "get": {
                "tags": ["Applications"],
                "summary": "Download the application table as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/admins": {
            "get": {
                "tags": ["Admins"],
                "summary": "List admins",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Admins"],
                "summary": "Create an admin",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/admins/verify": {
            "post": {
                "tags": ["Admins"],
                "summary": "Verify credentials and issue a session token",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/admins/{id}": {
            "put": {
                "tags": ["Admins"],
                "summary": "Replace an admin password",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Updated"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Admins"],
                "summary": "Delete an admin (super admin protected)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "403": {"description": "Cannot delete super admin"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/settings/logo": {
            "get": {
                "tags": ["Settings"],
                "summary": "Fetch the configured logo",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "put": {
                "tags": ["Settings"],
                "summary": "Create or replace the logo",
                "responses": {
                    "200": {"description": "Updated"}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health check with store connectivity and counts",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Store unavailable"}
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "errors": {"type": "array", "items": {"type": "object"}},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
