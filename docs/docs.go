// Package docs registers the operator API description with swag.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/servo/state": {
            "get": {
                "description": "Last reflected device status. Placeholders (\"--\") while disconnected.",
                "produces": ["application/json"],
                "tags": ["servo"],
                "summary": "Current display",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Display"}}
                }
            }
        },
        "/api/v1/servo/manual": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["servo"],
                "summary": "Move to angle",
                "parameters": [
                    {"description": "Manual payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ManualRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/servo/mode": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["servo"],
                "summary": "Switch mode",
                "parameters": [
                    {"description": "Mode payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ModeRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/servo/sequence": {
            "post": {
                "description": "Only digits, whitespace and commas are accepted. Empty input is ignored.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["servo"],
                "summary": "Play angle sequence",
                "parameters": [
                    {"description": "Sequence payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SequenceRequest"}}
                ],
                "responses": {
                    "200": {"description": "ignored", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "202": {"description": "Accepted", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ManualRequest": {
            "type": "object",
            "properties": {"angle": {"description": "Target angle in degrees, 0..180", "type": "integer", "example": 90}}
        },
        "handlers.ModeRequest": {
            "type": "object",
            "properties": {"mode": {"description": "Device mode identifier", "type": "string", "example": "sweep"}}
        },
        "handlers.SequenceRequest": {
            "type": "object",
            "properties": {"angles": {"description": "Angles separated by commas and/or whitespace", "type": "string", "example": "0, 90, 180"}}
        },
        "models.Display": {
            "type": "object",
            "properties": {
                "angle": {"type": "string"},
                "class": {"type": "string"},
                "connection": {"type": "string"},
                "degrees": {"type": "integer"},
                "mode": {"type": "string"},
                "state": {"type": "string"},
                "updated_at": {"type": "string"},
                "validation_error": {"type": "string"}
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
	Title:            "Servo Control API",
	Description:      "Operator API for a single networked servo: status reflection and command dispatch.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
