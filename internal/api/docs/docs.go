// Package docs holds the swagger document served at /swagger.
// Regenerate with: swag init -g internal/api/handlers/base.go -o internal/api/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
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
                "description": "Returns server health status",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.StatusResponse"}}
                }
            }
        },
        "/stats": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Returns runtime statistics and mDNS engine counters",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Server statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ServerStatsResponse"}}
                }
            }
        },
        "/config": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Returns the current configuration (sensitive fields redacted)",
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Get current configuration",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ConfigResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/services": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Discovers instances of a DNS-SD service type on the local network",
                "produces": ["application/json"],
                "tags": ["services"],
                "summary": "Browse services",
                "parameters": [
                    {"type": "string", "default": "_semcache._tcp", "description": "Service type", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.BrowseResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Probes for conflicts, advertises the service from this host and persists it for restarts",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["services"],
                "summary": "Register a service",
                "parameters": [
                    {"description": "Service to advertise", "name": "service", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.RegisterServiceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.ServiceInfoResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/services/advertised": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Returns the services persisted for re-registration on start",
                "produces": ["application/json"],
                "tags": ["services"],
                "summary": "List advertised services",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.AdvertisedServiceResponse"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Removes a persisted service so it is not re-registered on the next start. Live records are left to expire.",
                "produces": ["application/json"],
                "tags": ["services"],
                "summary": "Forget an advertised service",
                "parameters": [
                    {"type": "string", "description": "Instance name", "name": "name", "in": "query", "required": true},
                    {"type": "string", "default": "_semcache._tcp", "description": "Service type", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.StatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/records": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Returns the records this host answers mDNS queries with",
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "List local records",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RecordsResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Drops every record this host advertises; peers see them expire by TTL",
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Clear local records",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.StatusResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/settings": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "List settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SettingsResponse"}}
                }
            }
        },
        "/settings/{key}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Get a setting",
                "parameters": [
                    {"type": "string", "description": "Setting key", "name": "key", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SettingResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Set a setting",
                "parameters": [
                    {"type": "string", "description": "Setting key", "name": "key", "in": "path", "required": true},
                    {"description": "New value", "name": "setting", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.SettingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SettingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Delete a setting",
                "parameters": [
                    {"type": "string", "description": "Setting key", "name": "key", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.StatusResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "models.StatusResponse": {
            "type": "object",
            "properties": {"status": {"type": "string"}}
        },
        "models.InterfaceResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "address": {"type": "string"},
                "prefix_length": {"type": "integer"}
            }
        },
        "models.MDNSStatsResponse": {
            "type": "object",
            "properties": {
                "state": {"type": "string"},
                "received": {"type": "integer"},
                "decode_errors": {"type": "integer"},
                "queries_seen": {"type": "integer"},
                "queries_answered": {"type": "integer"},
                "sent": {"type": "integer"},
                "send_errors": {"type": "integer"},
                "rate_limited": {"type": "integer"},
                "local_records": {"type": "integer"},
                "interfaces": {"type": "array", "items": {"$ref": "#/definitions/models.InterfaceResponse"}}
            }
        },
        "models.ServerStatsResponse": {
            "type": "object",
            "properties": {
                "uptime": {"type": "string"},
                "uptime_seconds": {"type": "integer"},
                "start_time": {"type": "string"},
                "goroutines": {"type": "integer"},
                "memory_alloc_mb": {"type": "number"},
                "num_cpu": {"type": "integer"},
                "mdns": {"$ref": "#/definitions/models.MDNSStatsResponse"}
            }
        },
        "models.ConfigResponse": {
            "type": "object",
            "properties": {
                "server": {"type": "object"},
                "discovery": {"type": "object"},
                "logging": {"type": "object"},
                "api": {"type": "object"},
                "services": {"type": "array", "items": {"type": "object"}}
            }
        },
        "models.RegisterServiceRequest": {
            "type": "object",
            "required": ["name", "port"],
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string"},
                "port": {"type": "integer", "minimum": 1, "maximum": 65535}
            }
        },
        "models.ServiceInfoResponse": {
            "type": "object",
            "properties": {
                "service_name": {"type": "string"},
                "type": {"type": "string"},
                "domain": {"type": "string"},
                "port": {"type": "integer"}
            }
        },
        "models.ServiceInstanceResponse": {
            "type": "object",
            "properties": {
                "service_type": {"type": "string"},
                "instance_name": {"type": "string"},
                "domain_name": {"type": "string"},
                "ip_address": {"type": "string"},
                "port": {"type": "integer"}
            }
        },
        "models.BrowseResponse": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "instances": {"type": "array", "items": {"$ref": "#/definitions/models.ServiceInstanceResponse"}},
                "count": {"type": "integer"}
            }
        },
        "models.AdvertisedServiceResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string"},
                "port": {"type": "integer"},
                "created_at": {"type": "string"}
            }
        },
        "models.RecordResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string"},
                "class": {"type": "integer"},
                "ttl": {"type": "integer"},
                "data": {"type": "string"}
            }
        },
        "models.RecordsResponse": {
            "type": "object",
            "properties": {
                "records": {"type": "array", "items": {"$ref": "#/definitions/models.RecordResponse"}},
                "count": {"type": "integer"}
            }
        },
        "models.SettingRequest": {
            "type": "object",
            "properties": {"value": {"type": "string"}}
        },
        "models.SettingResponse": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "models.SettingsResponse": {
            "type": "object",
            "properties": {
                "settings": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "semcache Management API",
	Description:      "REST API for the semcache mDNS/DNS-SD engine: service registration, browsing and settings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
