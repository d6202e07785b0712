package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Combine API",
        "description": "Combines LMS course sections into a single section for a chosen semester",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Session", "description": "Workflow session lifecycle"},
        {"name": "Combine", "description": "Course combination workflow steps"}
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
        "/auth/callback": {
            "post": {
                "tags": ["Session"],
                "summary": "Open a combine workflow session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StartSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "LMS unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/combine/semester": {
            "post": {
                "tags": ["Combine"],
                "summary": "Scope the workflow to one semester",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectSemesterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "No sections for that semester", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/combine/sections": {
            "get": {
                "tags": ["Combine"],
                "summary": "List pickable sections for the scoped semester",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Combine"],
                "summary": "Add one more section by its identifying fields",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddSectionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Section not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/combine/selection": {
            "post": {
                "tags": ["Combine"],
                "summary": "Submit the chosen sections and the base section",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitSelectionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Too few sections", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/combine/confirm": {
            "post": {
                "tags": ["Combine"],
                "summary": "Acknowledge the merge set and confirm the combination",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Nothing pending review", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/combine": {
            "delete": {
                "tags": ["Combine"],
                "summary": "Abandon the combine workflow",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "Section": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "code": {"type": "string"},
                "label": {"type": "string"}
            }
        },
        "Choice": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "label": {"type": "string"}
            }
        },
        "Selection": {
            "type": "object",
            "properties": {
                "semester": {"type": "string"},
                "chosen": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/Section"}
                },
                "base": {"$ref": "#/definitions/Section"},
                "merge_set": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/Section"}
                }
            }
        },
        "StartSessionRequest": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "unique_name": {"type": "string"}
            },
            "required": ["user_id", "first_name", "last_name", "unique_name"]
        },
        "SelectSemesterRequest": {
            "type": "object",
            "properties": {
                "term": {"type": "string", "enum": ["Fall", "Spring", "Summer"]},
                "year": {"type": "integer"}
            },
            "required": ["term", "year"]
        },
        "AddSectionRequest": {
            "type": "object",
            "properties": {
                "session_length": {"type": "string"},
                "subject": {"type": "string"},
                "catalog_number": {"type": "string"},
                "section": {"type": "string"},
                "class_number": {"type": "string"}
            },
            "required": ["session_length", "subject", "catalog_number", "section", "class_number"]
        },
        "SubmitSelectionRequest": {
            "type": "object",
            "properties": {
                "section_ids": {
                    "type": "array",
                    "items": {"type": "integer"}
                },
                "base_id": {"type": "integer"}
            },
            "required": ["section_ids", "base_id"]
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
