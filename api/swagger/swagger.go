package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Marginalia API",
        "description": "Cookie-session backend for capturing and annotating web selections",
        "version": "0.1.0"
    },
    "basePath": "/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Session", "description": "Login, logout and token rotation"},
        {"name": "Accounts", "description": "Signup and account management"},
        {"name": "Selections", "description": "Captured highlights"},
        {"name": "Comments", "description": "Annotations on selections"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Session"],
                "summary": "Authenticate and set token cookies",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Not authorized"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Session"],
                "summary": "Revoke the current token pair",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Not authorized"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Session"],
                "summary": "Rotate the token pair",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Not authorized"}
                }
            }
        },
        "/accounts": {
            "post": {
                "tags": ["Accounts"],
                "summary": "Sign up",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAccountRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/accounts/me": {
            "get": {
                "tags": ["Accounts"],
                "summary": "Get the authenticated account",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Not authorized"}
                }
            },
            "delete": {
                "tags": ["Accounts"],
                "summary": "Delete the authenticated account",
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Not authorized"}
                }
            }
        },
        "/selections": {
            "post": {
                "tags": ["Selections"],
                "summary": "Capture a selection",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSelectionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selections/{id}": {
            "get": {
                "tags": ["Selections"],
                "summary": "Fetch a selection",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Selections"],
                "summary": "Delete a selection",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selections/{id}/comments": {
            "get": {
                "tags": ["Comments"],
                "summary": "List comments on a selection",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Comments"],
                "summary": "Comment on a selection",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCommentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/comments/{id}": {
            "delete": {
                "tags": ["Comments"],
                "summary": "Delete a comment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "login": {"type": "string", "description": "Handle or email"},
                "password": {"type": "string"}
            },
            "required": ["login", "password"]
        },
        "CreateAccountRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "handle": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "handle", "name", "password"]
        },
        "CreateSelectionRequest": {
            "type": "object",
            "properties": {
                "page_url": {"type": "string"},
                "raw_text": {"type": "string"}
            },
            "required": ["page_url", "raw_text"]
        },
        "CreateCommentRequest": {
            "type": "object",
            "properties": {
                "body": {"type": "string"},
                "highlight_beginning": {"type": "integer"},
                "highlight_end": {"type": "integer"}
            },
            "required": ["body"]
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
                "error": {"$ref": "#/definitions/APIError"}
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
