// Package docs holds the OpenAPI description served under /swagger/.
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
        "/api/events/submit": {
            "post": {
                "description": "Creates or edits an event. Overlapping single events are not saved unless force is set; recurring creates are expanded into instances and never overlap-checked.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Save the event form",
                "parameters": [
                    {"description": "Form submission", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.SubmitEventRequest"}}
                ],
                "responses": {
                    "200": {"description": "edit saved, or saved=false with overlaps", "schema": {"$ref": "#/definitions/controllers.SubmitEventSuccessResponse"}},
                    "201": {"description": "created", "schema": {"$ref": "#/definitions/controllers.SubmitEventSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/events/overlaps": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List events overlapping a candidate",
                "parameters": [
                    {"description": "Candidate event", "name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.Event"}}
                ],
                "responses": {
                    "200": {"description": "data contains the overlapping events", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/events/search": {
            "get": {
                "description": "Case-insensitive match on title, description and location, limited to the week or month containing date.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Search events",
                "parameters": [
                    {"type": "string", "description": "Search term", "name": "q", "in": "query"},
                    {"type": "string", "description": "week or month", "name": "view", "in": "query"},
                    {"type": "string", "description": "Reference date (YYYY-MM-DD), defaults to today", "name": "date", "in": "query"},
                    {"type": "integer", "description": "Page (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default 20, max 100)", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "data contains events and pagination", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/events/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Get an event",
                "parameters": [{"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data contains the event", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["store"],
                "summary": "Replace one event",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true},
                    {"description": "Event", "name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.Event"}}
                ],
                "responses": {
                    "200": {"description": "data contains the stored event", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["store"],
                "summary": "Delete one event",
                "parameters": [{"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/events/{id}/move": {
            "post": {
                "description": "Recurring events need single_only; without it nothing is saved and 409 decision_required is returned.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Move an event to another day",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true},
                    {"description": "Target date", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.MoveEventRequest"}}
                ],
                "responses": {
                    "200": {"description": "data.moved reports whether the event changed", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: decision_required", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/events/{id}/recurring": {
            "put": {
                "description": "Edits one instance (detaching it from its series) or the whole series. A changed date shifts every instance by the same number of days.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["recurring"],
                "summary": "Edit a recurring event",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true},
                    {"description": "Edited event and decision", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.EditRecurringRequest"}}
                ],
                "responses": {
                    "200": {"description": "data contains the edited event", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["recurring"],
                "summary": "Delete a recurring event",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Delete only this instance", "name": "single_only", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/notifications": {
            "get": {
                "description": "Events whose start is within their notification time from now.",
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "List due reminders",
                "responses": {
                    "200": {"description": "data contains the notifications", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/calendar/week": {
            "get": {
                "produces": ["application/json"],
                "tags": ["calendar"],
                "summary": "Week view",
                "parameters": [{"type": "string", "description": "Reference date (YYYY-MM-DD), defaults to today", "name": "date", "in": "query"}],
                "responses": {
                    "200": {"description": "data contains the week view", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/calendar/month": {
            "get": {
                "produces": ["application/json"],
                "tags": ["calendar"],
                "summary": "Month view",
                "parameters": [{"type": "string", "description": "Reference date (YYYY-MM-DD), defaults to today", "name": "date", "in": "query"}],
                "responses": {
                    "200": {"description": "data contains the month view", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/events.ics": {
            "get": {
                "produces": ["text/calendar"],
                "tags": ["calendar"],
                "summary": "Export events as iCalendar",
                "responses": {
                    "200": {"description": "VCALENDAR document", "schema": {"type": "string"}}
                }
            }
        },
        "/api/events/import": {
            "post": {
                "description": "Stores every VEVENT that fits on a single day; the rest are skipped.",
                "consumes": ["text/calendar"],
                "produces": ["application/json"],
                "tags": ["calendar"],
                "summary": "Import events from iCalendar",
                "responses": {
                    "201": {"description": "data contains the imported events", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/settings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["calendar"],
                "summary": "Calendar settings",
                "responses": {
                    "200": {"description": "data contains the settings", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["store"],
                "summary": "List all events",
                "responses": {
                    "200": {"description": "data contains the events", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["store"],
                "summary": "Store one event",
                "parameters": [{"description": "Event", "name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.Event"}}],
                "responses": {
                    "201": {"description": "data contains the stored event with its id", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/events-list": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["store"],
                "summary": "Store several events atomically",
                "parameters": [{"description": "Events", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.EventsListRequest"}}],
                "responses": {
                    "201": {"description": "data contains the stored events with their ids", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["store"],
                "summary": "Replace several events atomically",
                "parameters": [{"description": "Events", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.EventsListRequest"}}],
                "responses": {
                    "200": {"description": "data contains the stored events", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/recurring-events/{seriesID}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["store"],
                "summary": "Update the metadata of a series",
                "parameters": [
                    {"type": "string", "description": "Series ID", "name": "seriesID", "in": "path", "required": true},
                    {"description": "Fields to set", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.SeriesUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["store"],
                "summary": "Delete every instance of a series",
                "parameters": [{"type": "string", "description": "Series ID", "name": "seriesID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.EditRecurringRequest": {
            "type": "object",
            "properties": {
                "event": {"$ref": "#/definitions/domain.Event"},
                "single_only": {"type": "boolean"}
            }
        },
        "controllers.EventsListRequest": {
            "type": "object",
            "properties": {
                "events": {"type": "array", "items": {"$ref": "#/definitions/domain.Event"}}
            }
        },
        "controllers.MoveEventRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2025-11-03"},
                "single_only": {"type": "boolean"}
            }
        },
        "controllers.SeriesUpdateRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "location": {"type": "string"},
                "category": {"type": "string"},
                "notification_time": {"type": "integer"}
            }
        },
        "controllers.SubmitEventRequest": {
            "type": "object",
            "properties": {
                "event": {"$ref": "#/definitions/domain.Event"},
                "force": {"type": "boolean"},
                "single_only": {"type": "boolean"}
            }
        },
        "controllers.SubmitEventResponse": {
            "type": "object",
            "properties": {
                "saved": {"type": "boolean"},
                "events": {"type": "array", "items": {"$ref": "#/definitions/domain.Event"}},
                "overlaps": {"type": "array", "items": {"$ref": "#/definitions/domain.Event"}}
            }
        },
        "controllers.SubmitEventSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/controllers.SubmitEventResponse"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "domain.Event": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "date": {"type": "string", "example": "2025-11-03"},
                "start_time": {"type": "string", "example": "09:00"},
                "end_time": {"type": "string", "example": "09:30"},
                "description": {"type": "string"},
                "location": {"type": "string"},
                "category": {"type": "string"},
                "notification_time": {"type": "integer"},
                "repeat": {"$ref": "#/definitions/domain.RepeatRule"}
            }
        },
        "domain.RepeatRule": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["none", "daily", "weekly", "monthly", "yearly"]},
                "interval": {"type": "integer"},
                "end_date": {"type": "string", "example": "2025-12-31"},
                "id": {"type": "string"}
            }
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/helpers.APIError"}
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
	Title:            "Event Calendar API",
	Description:      "Calendar events with recurring series, overlap checks, reminders and iCalendar import/export.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
