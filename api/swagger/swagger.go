package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Diario Preescolar API",
        "description": "Daily activity reporting for preschool campuses",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "auth", "description": "Staff authentication"},
        {"name": "reports", "description": "Daily activity reports and summaries"},
        {"name": "students", "description": "Student roster"},
        {"name": "groups", "description": "Classroom groups"},
        {"name": "campuses", "description": "Campus administration"},
        {"name": "guardians", "description": "Guardian contacts"},
        {"name": "users", "description": "Staff accounts"},
        {"name": "feedback", "description": "Free-text feedback"},
        {"name": "exports", "description": "CSV/PDF exports"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unavailable"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Authenticate a staff member",
                "responses": {
                    "200": {"description": "Token pair", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports": {
            "get": {
                "tags": ["reports"],
                "summary": "List reports within the caller's scope",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Report list", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["reports"],
                "summary": "Create or update the report for a student and date",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Saved report", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Student outside caller scope", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/summary": {
            "get": {
                "tags": ["reports"],
                "summary": "Per-group report completeness for one date",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Completeness summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/{id}/send": {
            "post": {
                "tags": ["reports"],
                "summary": "Send a report summary to the student's guardians",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Delivery outcomes", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["students"],
                "summary": "List students within the caller's scope",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Student list", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
