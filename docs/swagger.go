// Package docs holds the Swagger description of the study sheets API.
//
//	@title			Study Sheets API
//	@version		1.0.0
//	@description	Search, create, update and delete study sheets and the keywords attached to them.
//	@description	Failures are reported as 400 with a JSON body {"status", "message", "fields"}.
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//	@basePath		/
//	@schemes		http https
package docs

import (
	"github.com/swaggo/swag"
)

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object"}}
                }
            }
        },
        "/sheets": {
            "get": {
                "description": "With id, returns that sheet or {}. Otherwise returns the sheets matching any of title, author, teacher or subject, merged with the sheets owning a matching keyword.",
                "produces": ["application/json"],
                "tags": ["Sheets"],
                "summary": "Get or search study sheets",
                "parameters": [
                    {"type": "integer", "description": "Sheet ID", "name": "id", "in": "query"},
                    {"type": "string", "description": "Title substring", "name": "title", "in": "query"},
                    {"type": "string", "description": "Author substring", "name": "author", "in": "query"},
                    {"type": "string", "description": "Teacher substring", "name": "teacher", "in": "query"},
                    {"type": "string", "description": "Subject substring", "name": "subject", "in": "query"},
                    {"type": "string", "description": "Keyword substring", "name": "keyword", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Sheet"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apiutil.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Sheets"],
                "summary": "Update a study sheet",
                "parameters": [
                    {"description": "Sheet id and new values", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.UpdateSheetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UpdateSheetResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apiutil.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Sheets"],
                "summary": "Add a study sheet",
                "parameters": [
                    {"description": "Sheet metadata, url is required", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateSheetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CreateSheetResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apiutil.ErrorResponse"}}
                }
            }
        },
        "/sheets/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["Sheets"],
                "summary": "Delete a study sheet",
                "parameters": [
                    {"type": "integer", "description": "Sheet ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DeleteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apiutil.ErrorResponse"}}
                }
            }
        },
        "/sheets/keywords": {
            "get": {
                "description": "With id, returns that keyword or {}. Otherwise returns the keywords matching both sheetId and keyword when given.",
                "produces": ["application/json"],
                "tags": ["Keywords"],
                "summary": "Get or list sheet keywords",
                "parameters": [
                    {"type": "integer", "description": "Keyword ID", "name": "id", "in": "query"},
                    {"type": "integer", "description": "Owning sheet ID", "name": "sheetId", "in": "query"},
                    {"type": "string", "description": "Keyword substring", "name": "keyword", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Attribute"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apiutil.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Keywords"],
                "summary": "Update a sheet keyword",
                "parameters": [
                    {"description": "Keyword id and new value", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.UpdateAttributeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UpdateAttributeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apiutil.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Keywords"],
                "summary": "Add a keyword to a sheet",
                "parameters": [
                    {"description": "Sheet id and keyword", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateAttributeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CreateAttributeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apiutil.ErrorResponse"}}
                }
            }
        },
        "/sheets/keywords/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["Keywords"],
                "summary": "Delete a sheet keyword",
                "parameters": [
                    {"type": "integer", "description": "Keyword ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DeleteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apiutil.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "apiutil.ErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "integer", "example": 400},
                "message": {"type": "string", "example": "Sheet url not found, but is required"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/errors.FieldError"}}
            }
        },
        "errors.FieldError": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.Sheet": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "url": {"type": "string"},
                "title": {"type": "string"},
                "author": {"type": "string"},
                "subject": {"type": "string"},
                "teacher": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "models.Attribute": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "keyword": {"type": "string"},
                "SheetId": {"type": "integer"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "models.SheetFields": {
            "type": "object",
            "properties": {
                "url": {"type": "string"},
                "title": {"type": "string"},
                "author": {"type": "string"},
                "subject": {"type": "string"},
                "teacher": {"type": "string"}
            }
        },
        "models.CreateSheetRequest": {
            "type": "object",
            "required": ["url"],
            "properties": {
                "url": {"type": "string"},
                "title": {"type": "string"},
                "author": {"type": "string"},
                "subject": {"type": "string"},
                "teacher": {"type": "string"}
            }
        },
        "models.CreateSheetResponse": {
            "type": "object",
            "properties": {
                "created": {"type": "boolean"},
                "url": {"type": "string"},
                "title": {"type": "string"},
                "author": {"type": "string"},
                "subject": {"type": "string"},
                "teacher": {"type": "string"}
            }
        },
        "models.UpdateSheetRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "url": {"type": "string"},
                "title": {"type": "string"},
                "author": {"type": "string"},
                "subject": {"type": "string"},
                "teacher": {"type": "string"}
            }
        },
        "models.UpdateSheetResponse": {
            "type": "object",
            "properties": {
                "found": {"type": "boolean"},
                "old": {"$ref": "#/definitions/models.SheetFields"},
                "url": {"type": "string"},
                "title": {"type": "string"},
                "author": {"type": "string"},
                "subject": {"type": "string"},
                "teacher": {"type": "string"}
            }
        },
        "models.CreateAttributeRequest": {
            "type": "object",
            "required": ["id"],
            "properties": {
                "id": {"type": "integer"},
                "keyword": {"type": "string"}
            }
        },
        "models.CreateAttributeResponse": {
            "type": "object",
            "properties": {
                "created": {"type": "boolean"},
                "keyword": {"type": "string"},
                "id": {"type": "integer"}
            }
        },
        "models.UpdateAttributeRequest": {
            "type": "object",
            "required": ["id"],
            "properties": {
                "id": {"type": "integer"},
                "keyword": {"type": "string"}
            }
        },
        "models.UpdateAttributeResponse": {
            "type": "object",
            "properties": {
                "found": {"type": "boolean"},
                "old": {
                    "type": "object",
                    "properties": {"keyword": {"type": "string"}}
                },
                "keyword": {"type": "string"}
            }
        },
        "models.DeleteResponse": {
            "type": "object",
            "properties": {
                "deleted": {"type": "boolean"},
                "id": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Study Sheets API",
	Description:      "Search, create, update and delete study sheets and the keywords attached to them.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
