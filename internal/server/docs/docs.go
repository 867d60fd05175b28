// Package docs holds the OpenAPI document served at /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "a11ylens Maintainers",
            "url": "https://github.com/raysh454/a11ylens"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/analyze": {
            "post": {
                "description": "Fetches the page, tallies accessibility issues and optionally attaches WCAG guideline links.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analysis"],
                "summary": "Analyze a page",
                "parameters": [
                    {
                        "description": "Target page",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/server.AnalyzeRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.RunOutcome"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/guidelines": {
            "get": {
                "produces": ["application/json"],
                "tags": ["guidelines"],
                "summary": "WCAG guideline links",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.GuidelinesResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Analyzer health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/server.HealthResponse"}}
                }
            }
        },
        "/status": {
            "get": {
                "description": "Reports the configured fetch backend and whether the Firecrawl API key is set.",
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Fetch backend status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.StatusResponse"}}
                }
            }
        },
        "/ws/analyze": {
            "get": {
                "description": "Upgrades to a WebSocket and sends one RunEvent per stage; the last event carries the outcome.",
                "tags": ["analysis"],
                "summary": "Stream an analysis run",
                "parameters": [
                    {"type": "string", "description": "Target page", "name": "url", "in": "query", "required": true},
                    {"type": "boolean", "description": "Attach guideline links (default true)", "name": "guidelines", "in": "query"}
                ],
                "responses": {
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "model.AnalysisResult": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "url": {"type": "string"},
                "final_url": {"type": "string"},
                "status_code": {"type": "integer"},
                "backend": {"type": "string"},
                "report": {
                    "type": "object",
                    "additionalProperties": {"type": "integer"},
                    "example": {"missing_alt_text": 1, "low_contrast": 0, "missing_lang": 0, "empty_links": 1, "missing_labels": 1}
                },
                "fetched_at": {"type": "string"},
                "duration_ns": {"type": "integer"}
            }
        },
        "model.Guideline": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "example": "Non-text Content"},
                "link": {"type": "string", "example": "https://www.w3.org/WAI/WCAG21/quickref/#non-text-content"}
            }
        },
        "model.RunOutcome": {
            "type": "object",
            "properties": {
                "target": {"type": "string"},
                "result": {"$ref": "#/definitions/model.AnalysisResult"},
                "guidelines": {"type": "array", "items": {"$ref": "#/definitions/model.Guideline"}},
                "error": {"type": "string"}
            }
        },
        "server.AnalyzeRequest": {
            "type": "object",
            "properties": {
                "url": {"type": "string", "example": "https://example.com"},
                "guidelines": {"type": "boolean", "example": true}
            }
        },
        "server.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Error analyzing https://example.com: unexpected status 404"}
            }
        },
        "server.GuidelinesResponse": {
            "type": "object",
            "properties": {
                "guidelines": {"type": "array", "items": {"$ref": "#/definitions/model.Guideline"}}
            }
        },
        "server.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "error": {"type": "string"}
            }
        },
        "server.StatusResponse": {
            "type": "object",
            "properties": {
                "firecrawl_api_key_set": {"type": "boolean", "example": true},
                "message": {"type": "string", "example": "Firecrawl API key is set"},
                "backend": {"type": "string", "example": "firecrawl"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "a11ylens API",
	Description:      "Run static accessibility checks against a web page and fetch WCAG reference links.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
