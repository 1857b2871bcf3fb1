package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Library Portal",
        "description": "Catalog browsing portal for question papers and research papers",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Catalog", "description": "Resource types, filtered listings and item details"},
        {"name": "Ops", "description": "Health and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Ops"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Ops"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is unreachable"}
                }
            }
        },
        "/api/v1/catalog/types": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List resource types",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/catalog/{type}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Filtered listing of a resource type",
                "description": "Query parameters named after schema fields filter the listing. Enumerated fields (course, semester, status) match exactly; others match case-insensitive substrings.",
                "parameters": [
                    {"name": "type", "in": "path", "required": true, "type": "string"},
                    {"name": "course", "in": "query", "type": "string", "enum": ["bcom", "bscit", "bvoc sd", "bms"]},
                    {"name": "semester", "in": "query", "type": "string", "enum": ["1", "2", "3", "4", "5", "6", "7", "8"]},
                    {"name": "status", "in": "query", "type": "string", "enum": ["available", "in shelf", "demolished"]},
                    {"name": "subject", "in": "query", "type": "string"},
                    {"name": "title", "in": "query", "type": "string"},
                    {"name": "author", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Failed to fetch resources.", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/catalog/{type}/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Resource detail",
                "parameters": [
                    {"name": "type", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Failed to fetch resource details.", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/resources/{type}/export.csv": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Export a filtered listing as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "type", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV document"}
                }
            }
        },
        "/resources/{type}/export.pdf": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Export a filtered listing as PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "type", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF document"}
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
