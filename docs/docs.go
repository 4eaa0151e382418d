// Package docs provides the generated Swagger/OpenAPI documentation.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness check including the database",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/limits": {
            "get": {
                "produces": ["application/json"],
                "tags": ["limits"],
                "summary": "Document quota and remaining counts for the caller",
                "parameters": [
                    {"type": "string", "name": "team-id", "in": "header", "required": true, "description": "Team scope for the limit computation"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.QuotaResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/teams": {
            "get": {
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "List the caller's teams, paginated",
                "parameters": [
                    {"type": "string", "name": "organisationId", "in": "query", "description": "Restrict to one organisation"},
                    {"type": "string", "name": "query", "in": "query", "description": "Case-insensitive name filter"},
                    {"type": "integer", "name": "page", "in": "query", "description": "Page number, 1-based"},
                    {"type": "integer", "name": "perPage", "in": "query", "description": "Page size"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.TeamListResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/files/presign": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Issue a signed upload URL for a new storage key",
                "parameters": [
                    {"type": "string", "name": "team-id", "in": "header", "description": "Team scope; when present the document quota is checked"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.presignRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.SignedURLGrant"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/files/represign": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Re-sign an upload URL for an existing storage key",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.presignRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.SignedURLGrant"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/files/download-url": {
            "get": {
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Issue a signed download URL for a storage key",
                "parameters": [
                    {"type": "string", "name": "key", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.SignedURLGrant"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/files/content": {
            "get": {
                "produces": ["application/octet-stream"],
                "tags": ["files"],
                "summary": "Stream an object's bytes through the server",
                "parameters": [
                    {"type": "string", "name": "key", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/files": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Server-side direct upload",
                "parameters": [
                    {"type": "file", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "delete": {
                "tags": ["files"],
                "summary": "Remove an object by key",
                "parameters": [
                    {"type": "string", "name": "key", "in": "query", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "handler.presignRequest": {
            "type": "object",
            "properties": {
                "fileName": {"type": "string"},
                "contentType": {"type": "string"},
                "key": {"type": "string"}
            }
        },
        "model.Limits": {
            "type": "object",
            "properties": {
                "documents": {"type": "integer"},
                "recipients": {"type": "integer"},
                "directTemplates": {"type": "integer"}
            }
        },
        "model.QuotaResult": {
            "type": "object",
            "properties": {
                "quota": {"$ref": "#/definitions/model.Limits"},
                "remaining": {"$ref": "#/definitions/model.Limits"},
                "maximumEnvelopeItemCount": {"type": "integer"}
            }
        },
        "model.Team": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "organisationId": {"type": "string"},
                "name": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "service.SignedURLGrant": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "url": {"type": "string"},
                "expiresAt": {"type": "string"}
            }
        },
        "service.TeamListResult": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.Team"}},
                "count": {"type": "integer"},
                "currentPage": {"type": "integer"},
                "perPage": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Nomia API",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
