// Package docs registers the OpenAPI document served at /v1/swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
            "get": {"tags": ["system"], "summary": "Health check", "responses": {"200": {"description": "OK"}, "503": {"description": "Degraded"}}}
        },
        "/auth/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Get current user", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/onboarding/status": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["onboarding"], "summary": "Get onboarding status", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "User not found"}}}
        },
        "/profile": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["onboarding"], "summary": "Get profile", "responses": {"200": {"description": "OK"}}},
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["onboarding"],
                "summary": "Update profile",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/domain.ProfileUpdateRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Validation failed"}, "409": {"description": "Concurrent update"}, "504": {"description": "Timeout"}}
            }
        },
        "/insights": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["insights"], "summary": "Get industry insight", "responses": {"200": {"description": "OK"}, "404": {"description": "Complete onboarding first"}}}
        },
        "/resume": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["resume"], "summary": "Get resume", "responses": {"200": {"description": "OK"}}},
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["resume"],
                "summary": "Save resume",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/domain.SaveResumeRequest"}}],
                "responses": {"200": {"description": "OK"}, "500": {"description": "Failed to save resume"}}
            }
        },
        "/resume/improve": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["resume"],
                "summary": "Improve a resume section with AI",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/domain.ImproveRequest"}}],
                "responses": {"200": {"description": "OK"}, "429": {"description": "Rate limited"}, "502": {"description": "Failed to improve content"}}
            }
        },
        "/interview/quiz": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["interview"], "summary": "Generate a mock interview quiz", "responses": {"200": {"description": "OK"}, "502": {"description": "Provider failure"}}}
        },
        "/interview/assessments": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["interview"], "summary": "List assessments", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["interview"], "summary": "Save quiz answers", "responses": {"201": {"description": "Created"}, "400": {"description": "Validation failed"}}}
        },
        "/internal/insights/refresh": {
            "post": {
                "tags": ["internal"],
                "summary": "Refresh all industry insights",
                "parameters": [{"type": "string", "in": "header", "name": "X-Cron-Secret", "required": true}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "409": {"description": "Already running"}}
            }
        }
    },
    "definitions": {
        "domain.ProfileUpdateRequest": {
            "type": "object",
            "properties": {
                "industry": {"type": "string"},
                "experience": {"type": "integer"},
                "skills": {"type": "array", "items": {"type": "string"}},
                "bio": {"type": "string"}
            }
        },
        "domain.SaveResumeRequest": {
            "type": "object",
            "properties": {"content": {"type": "string"}}
        },
        "domain.ImproveRequest": {
            "type": "object",
            "properties": {
                "current": {"type": "string"},
                "type": {"type": "string", "enum": ["summary", "experience", "education", "project", "skills"]}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Career Coach API",
	Description:      "Backend for the AI career coach: onboarding, resumes, industry insights and mock interviews.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
