// Package docs holds the OpenAPI document served under /api/docs
//
// Paths are relative to /api/v1. Bearer security is attached at serve time
// for every route mounted behind httpkit.Protected.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.0.3",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "servers": [
        {
            "url": "{{.BasePath}}"
        }
    ],
    "paths": {
        "/intakes": {
            "get": {
                "tags": [
                    "Intakes"
                ],
                "summary": "List intakes, newest first",
                "parameters": [
                    {
                        "name": "limit",
                        "in": "query",
                        "description": "page size (1-200)",
                        "schema": {
                            "type": "integer"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            },
            "post": {
                "tags": [
                    "Intakes"
                ],
                "summary": "Create an intake",
                "description": "Validates the questionnaire and stores its canonical form. Every invalid field is reported in data.issues.",
                "requestBody": {
                    "description": "Intake",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "type": "object"
                            }
                        }
                    }
                },
                "responses": {
                    "201": {
                        "description": "created"
                    },
                    "400": {
                        "description": "invalid intake",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/intakes/{id}": {
            "get": {
                "tags": [
                    "Intakes"
                ],
                "summary": "Get an intake",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "intake id",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "404": {
                        "description": "not found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "Intakes"
                ],
                "summary": "Merge-patch an intake",
                "description": "The patched intake is validated as a whole; null members remove optional fields.",
                "requestBody": {
                    "description": "merge patch",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "type": "object"
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "intake id",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "400": {
                        "description": "invalid intake",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "not found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Intakes"
                ],
                "summary": "Delete an intake and its scope documents",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "intake id",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "deleted"
                    },
                    "404": {
                        "description": "not found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/intakes/{id}/generate": {
            "post": {
                "tags": [
                    "Scopes"
                ],
                "summary": "Generate the next scope document version for an intake",
                "description": "Runs the generation pipeline and stores the result as version max+1.",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "intake id",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "created",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ScopeRecord"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "intake not found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    },
                    "502": {
                        "description": "backend output unusable",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    },
                    "503": {
                        "description": "generator not configured",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/intakes/{id}/scopes": {
            "get": {
                "tags": [
                    "Scopes"
                ],
                "summary": "List an intake's scope documents, newest version first",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "intake id",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "404": {
                        "description": "intake not found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/scopes/generate": {
            "post": {
                "tags": [
                    "Scopes"
                ],
                "summary": "Generate a scope document from a stored intake",
                "requestBody": {
                    "description": "intake reference",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/GenerateInput"
                            }
                        }
                    }
                },
                "responses": {
                    "201": {
                        "description": "created",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ScopeRecord"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "intake not found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    },
                    "502": {
                        "description": "backend output unusable",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    },
                    "503": {
                        "description": "generator not configured",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/scopes/{id}": {
            "get": {
                "tags": [
                    "Scopes"
                ],
                "summary": "Get a scope document",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "scope document id",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ScopeRecord"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "not found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            },
            "patch": {
                "tags": [
                    "Scopes"
                ],
                "summary": "Save an edited variant and/or change status",
                "description": "editedJson is validated against the scope document schema and stored beside the generated document. Saving an edit without a status moves the document to draft.",
                "requestBody": {
                    "description": "edit",
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/PatchInput"
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "scope document id",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ScopeRecord"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "not found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Scopes"
                ],
                "summary": "Delete one scope document version",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "description": "scope document id",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "deleted"
                    },
                    "404": {
                        "description": "not found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/meta/health": {
            "get": {
                "tags": [
                    "Meta"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        },
        "/meta/ready": {
            "get": {
                "tags": [
                    "Meta"
                ],
                "summary": "Readiness probe with dependency checks",
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        },
        "/meta/version": {
            "get": {
                "tags": [
                    "Meta"
                ],
                "summary": "Build and version info",
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        },
        "/meta/service": {
            "get": {
                "tags": [
                    "Meta"
                ],
                "summary": "Service info and uptime",
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        },
        "/meta/generator": {
            "get": {
                "tags": [
                    "Meta"
                ],
                "summary": "Generation backend settings (never the key)",
                "responses": {
                    "200": {
                        "description": "ok"
                    }
                }
            }
        },
        "/meta/generator/stats": {
            "get": {
                "tags": [
                    "Meta"
                ],
                "summary": "Generation run outcomes over a recent window",
                "parameters": [
                    {
                        "name": "hours",
                        "in": "query",
                        "description": "window in hours (1-720)",
                        "schema": {
                            "type": "integer"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok"
                    },
                    "503": {
                        "description": "telemetry disabled or unreachable",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Envelope"
                                }
                            }
                        }
                    }
                }
            }
        }
    },
    "components": {
        "schemas": {
            "Envelope": {
                "type": "object",
                "properties": {
                    "status_code": {
                        "type": "integer"
                    },
                    "status": {
                        "type": "string"
                    },
                    "code": {
                        "type": "integer"
                    },
                    "error": {
                        "type": "string"
                    },
                    "request_id": {
                        "type": "string"
                    },
                    "data": {}
                }
            },
            "GenerateInput": {
                "type": "object",
                "required": [
                    "intakeId"
                ],
                "properties": {
                    "intakeId": {
                        "type": "string",
                        "format": "uuid"
                    }
                }
            },
            "PatchInput": {
                "type": "object",
                "properties": {
                    "editedJson": {
                        "type": "object"
                    },
                    "status": {
                        "type": "string",
                        "enum": [
                            "draft",
                            "generated",
                            "final"
                        ]
                    }
                }
            },
            "ScopeRecord": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string"
                    },
                    "intakeId": {
                        "type": "string"
                    },
                    "version": {
                        "type": "integer"
                    },
                    "status": {
                        "type": "string"
                    },
                    "generatedJson": {
                        "type": "object"
                    },
                    "editedJson": {
                        "type": "object"
                    },
                    "exportCount": {
                        "type": "integer"
                    },
                    "createdAt": {
                        "type": "string"
                    },
                    "updatedAt": {
                        "type": "string"
                    }
                }
            }
        },
        "securitySchemes": {
            "BearerAuth": {
                "type": "http",
                "scheme": "bearer"
            }
        }
    }
}`

// SwaggerInfo holds the document metadata; callers may adjust it before serving
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	BasePath:         "/api/v1",
	Title:            "scopegen API",
	Description:      "Client intakes in, scope of work documents out",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
