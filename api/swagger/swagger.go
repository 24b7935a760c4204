package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus API",
        "description": "Education-management REST backend",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Users", "description": "Users and their role-dependent relations"},
        {"name": "Departments", "description": "Department catalog"},
        {"name": "Subjects", "description": "Subjects and their classes/users"},
        {"name": "Classes", "description": "Classes and their rosters"},
        {"name": "Enrollments", "description": "Student enrollment"}
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
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "role", "in": "query", "type": "string", "enum": ["admin", "teacher", "student"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Paginated users", "schema": {"$ref": "#/definitions/ListEnvelope"}}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create user",
                "responses": {
                    "201": {"description": "Created id", "schema": {"$ref": "#/definitions/CreatedEnvelope"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get user by id",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "User"},
                    "400": {"description": "Invalid id", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/users/{id}/departments": {
            "get": {
                "tags": ["Users"],
                "summary": "Departments visible to the user by role",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "Paginated departments", "schema": {"$ref": "#/definitions/ListEnvelope"}}
                }
            }
        },
        "/users/{id}/subjects": {
            "get": {
                "tags": ["Users"],
                "summary": "Subjects visible to the user by role",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "Paginated subjects", "schema": {"$ref": "#/definitions/ListEnvelope"}}
                }
            }
        },
        "/departments": {
            "get": {
                "tags": ["Departments"],
                "summary": "List departments",
                "responses": {
                    "200": {"description": "Paginated departments", "schema": {"$ref": "#/definitions/ListEnvelope"}}
                }
            },
            "post": {
                "tags": ["Departments"],
                "summary": "Create department",
                "responses": {
                    "201": {"description": "Created id", "schema": {"$ref": "#/definitions/CreatedEnvelope"}}
                }
            }
        },
        "/departments/{id}/subjects": {
            "get": {
                "tags": ["Departments"],
                "summary": "Subjects of a department",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "Paginated subjects", "schema": {"$ref": "#/definitions/ListEnvelope"}}
                }
            }
        },
        "/subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List subjects",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "department", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Paginated subjects", "schema": {"$ref": "#/definitions/ListEnvelope"}}
                }
            },
            "post": {
                "tags": ["Subjects"],
                "summary": "Create subject",
                "responses": {
                    "201": {"description": "Created id", "schema": {"$ref": "#/definitions/CreatedEnvelope"}}
                }
            }
        },
        "/subjects/{id}/classes": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Classes of a subject",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "Paginated classes", "schema": {"$ref": "#/definitions/ListEnvelope"}}
                }
            }
        },
        "/subjects/{id}/users": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Teachers or students of a subject",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "role", "in": "query", "required": true, "type": "string", "enum": ["teacher", "student"]}
                ],
                "responses": {
                    "200": {"description": "Paginated users", "schema": {"$ref": "#/definitions/ListEnvelope"}},
                    "400": {"description": "Invalid role", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "List classes",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "subject", "in": "query", "type": "integer"},
                    {"name": "teacher", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Paginated classes", "schema": {"$ref": "#/definitions/ListEnvelope"}}
                }
            },
            "post": {
                "tags": ["Classes"],
                "summary": "Create class",
                "responses": {
                    "201": {"description": "Created id", "schema": {"$ref": "#/definitions/CreatedEnvelope"}}
                }
            }
        },
        "/classes/{id}/users": {
            "get": {
                "tags": ["Classes"],
                "summary": "Teacher or students of a class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "role", "in": "query", "required": true, "type": "string", "enum": ["teacher", "student"]}
                ],
                "responses": {
                    "200": {"description": "Paginated users", "schema": {"$ref": "#/definitions/ListEnvelope"}},
                    "400": {"description": "Invalid role", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/enrollments": {
            "post": {
                "tags": ["Enrollments"],
                "summary": "Enroll a student in a class",
                "responses": {
                    "201": {"description": "Created id", "schema": {"$ref": "#/definitions/CreatedEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "total": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "ListEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"type": "object"}},
                "pagination": {"$ref": "#/definitions/Pagination"}
            }
        },
        "CreatedEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object",
                    "properties": {"id": {"type": "integer"}}
                }
            }
        },
        "ErrorEnvelope": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
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
