// Package docs registers the generated OpenAPI description with swag.
// Regenerate with `swag init -g cmd/api/main.go -o docs`.
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
        "/api/v1/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Create user",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "invalid input"},
                    "409": {"description": "email already registered"}
                }
            }
        },
        "/api/v1/users/email": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get user by email",
                "parameters": [
                    {"type": "string", "name": "email", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "user not found"}
                }
            },
            "delete": {
                "tags": ["users"],
                "summary": "Delete user by email",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"type": "string", "name": "email", "in": "query", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "not authenticated"},
                    "403": {"description": "insufficient permissions"},
                    "404": {"description": "user not found"}
                }
            }
        },
        "/api/v1/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get user by id",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "invalid id"},
                    "404": {"description": "user not found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update user by id",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "invalid input"},
                    "401": {"description": "not authenticated"},
                    "403": {"description": "insufficient permissions"},
                    "404": {"description": "user not found"},
                    "409": {"description": "email already registered"}
                }
            }
        },
        "/api/v1/users/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Login",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "invalid input"},
                    "401": {"description": "invalid email or password"}
                }
            }
        },
        "/api/v1/users/logout": {
            "post": {
                "tags": ["users"],
                "summary": "Logout",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "not authenticated"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "User Directory API",
	Description:      "User account management service: registration, lookup, partial update and deletion of users, with JWT login.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
