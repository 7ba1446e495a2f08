package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Exam Board API",
        "description": "Examination board distribution service",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Boards", "description": "Exam board inspection"},
        {"name": "Distribution", "description": "Board distribution runs"}
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
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/exam-boards": {
            "get": {
                "tags": ["Boards"],
                "summary": "List exam boards",
                "parameters": [
                    {"name": "kind", "in": "query", "type": "string", "enum": ["FINAL", "COLLOQUIUM"]},
                    {"name": "status", "in": "query", "type": "string", "enum": ["CREATED", "FINALIZED"]},
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "subjectId", "in": "query", "type": "string"},
                    {"name": "courseId", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/exam-boards/distribute": {
            "post": {
                "tags": ["Distribution"],
                "summary": "Distribute CREATED boards over a business-day range",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DistributeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"},
                    "412": {"description": "Capacity shortfall"}
                }
            }
        },
        "/api/v1/exam-boards/distribution/summary": {
            "get": {
                "tags": ["Distribution"],
                "summary": "Last distribution run summary",
                "parameters": [
                    {"name": "kind", "in": "query", "required": true, "type": "string", "enum": ["FINAL", "COLLOQUIUM"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No summary recorded"}
                }
            }
        }
    },
    "definitions": {
        "DistributeRequest": {
            "type": "object",
            "required": ["kind", "dateRangeStart", "dateRangeEnd"],
            "properties": {
                "kind": {"type": "string", "enum": ["FINAL", "COLLOQUIUM"]},
                "dateRangeStart": {"type": "string", "format": "date"},
                "dateRangeEnd": {"type": "string", "format": "date"},
                "turnsPerDay": {"type": "integer"},
                "dayStartTime": {"type": "string"},
                "turnIntervalMinutes": {"type": "integer"},
                "assignRooms": {"type": "boolean"}
            }
        },
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
