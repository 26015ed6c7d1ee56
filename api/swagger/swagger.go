package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Reservation HTTP API",
        "description": "Business reservation and slot availability engine",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Availability", "description": "Slot availability resolution"},
        {"name": "Reservations", "description": "Booking flow"},
        {"name": "Businesses", "description": "Business and roster management"},
        {"name": "AvailabilityRules", "description": "Availability rule authoring"},
        {"name": "Settings", "description": "Per-business reservation settings"},
        {"name": "Users", "description": "User pool"}
    ],
    "paths": {
        "/businesses/{id}/availability/date/{date}": {
            "get": {
                "tags": ["Availability"],
                "summary": "Get slot availability for one date",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "date", "in": "path", "required": true, "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Business not found"}
                }
            }
        },
        "/businesses/{id}/availability/today": {
            "get": {
                "tags": ["Availability"],
                "summary": "Get slot availability for today",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/businesses/{id}/availability/tomorrow": {
            "get": {
                "tags": ["Availability"],
                "summary": "Get slot availability for tomorrow",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/businesses/{id}/availability/range": {
            "get": {
                "tags": ["Availability"],
                "summary": "Get slot availability for an inclusive date range",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "startDate", "in": "query", "required": true, "type": "string", "format": "date"},
                    {"name": "endDate", "in": "query", "required": true, "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid or oversized range"}
                }
            }
        },
        "/businesses/{id}/availability/week": {
            "get": {
                "tags": ["Availability"],
                "summary": "Get slot availability for seven days from a start date",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "startDate", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/businesses/{id}/availability/month": {
            "get": {
                "tags": ["Availability"],
                "summary": "Get slot availability for one calendar month",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "month", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/businesses/{id}/availability/export": {
            "get": {
                "tags": ["Availability"],
                "summary": "Export availability for a date range as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "startDate", "in": "query", "required": true, "type": "string", "format": "date"},
                    {"name": "endDate", "in": "query", "required": true, "type": "string", "format": "date"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/reservations": {
            "post": {
                "tags": ["Reservations"],
                "summary": "Book a reservation slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateReservationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slot already booked or booking closed"}
                }
            }
        },
        "/reservations/{id}": {
            "get": {
                "tags": ["Reservations"],
                "summary": "Get a reservation",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Reservations"],
                "summary": "Move or reassign a reservation",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateReservationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slot already booked"}
                }
            }
        },
        "/reservations/{id}/cancel": {
            "post": {
                "tags": ["Reservations"],
                "summary": "Cancel a reservation",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Cancelled"}
                }
            }
        },
        "/businesses": {
            "get": {
                "tags": ["Businesses"],
                "summary": "List businesses",
                "parameters": [
                    {"name": "ownerUserId", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Businesses"],
                "summary": "Register a business",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBusinessRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/businesses/{id}": {
            "get": {
                "tags": ["Businesses"],
                "summary": "Get a business with its roster",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Businesses"],
                "summary": "Update a business",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateBusinessRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Businesses"],
                "summary": "Delete a business",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/businesses/{id}/employees": {
            "get": {
                "tags": ["Businesses"],
                "summary": "List a business's roster",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Businesses"],
                "summary": "Add a user to a business roster",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddEmployeeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability-rules": {
            "post": {
                "tags": ["AvailabilityRules"],
                "summary": "Author an availability rule",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAvailabilityRuleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reservation-settings": {
            "get": {
                "tags": ["Settings"],
                "summary": "List reservation settings across businesses",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Settings"],
                "summary": "Create or update a business's reservation settings",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertSettingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Register a user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "TimeSlot": {
            "type": "object",
            "properties": {
                "startTime": {"type": "string", "example": "09:00"},
                "endTime": {"type": "string", "example": "09:30"}
            }
        },
        "CreateReservationRequest": {
            "type": "object",
            "required": ["userId", "businessId", "reservationDate", "timeSlot"],
            "properties": {
                "userId": {"type": "string"},
                "businessId": {"type": "string"},
                "reservationDate": {"type": "string", "format": "date-time"},
                "timeSlot": {"$ref": "#/definitions/TimeSlot"},
                "assignedEmployeeUserId": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "UpdateReservationRequest": {
            "type": "object",
            "properties": {
                "reservationDate": {"type": "string", "format": "date-time"},
                "timeSlot": {"$ref": "#/definitions/TimeSlot"},
                "assignedEmployeeUserId": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "CreateBusinessRequest": {
            "type": "object",
            "required": ["name", "ownerUserId"],
            "properties": {
                "name": {"type": "string"},
                "ownerUserId": {"type": "string"},
                "city": {"type": "string"},
                "district": {"type": "string"},
                "address": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "UpdateBusinessRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "city": {"type": "string"},
                "district": {"type": "string"},
                "address": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "AddEmployeeRequest": {
            "type": "object",
            "required": ["userId"],
            "properties": {
                "userId": {"type": "string"}
            }
        },
        "CreateAvailabilityRuleRequest": {
            "type": "object",
            "required": ["businessId", "availabilityType"],
            "properties": {
                "businessId": {"type": "string"},
                "availabilityType": {"type": "string", "enum": ["WEEKLY_RECURRING", "SPECIFIC_DATE", "DATE_RANGE"]},
                "dayOfWeek": {"type": "string"},
                "specificDate": {"type": "string", "format": "date-time"},
                "startDate": {"type": "string", "format": "date-time"},
                "endDate": {"type": "string", "format": "date-time"},
                "availableSlots": {"type": "array", "items": {"$ref": "#/definitions/TimeSlot"}},
                "blockedSlots": {"type": "array", "items": {"$ref": "#/definitions/TimeSlot"}},
                "isActive": {"type": "boolean"},
                "blockReason": {"type": "string"}
            }
        },
        "UpsertSettingsRequest": {
            "type": "object",
            "required": ["businessId"],
            "properties": {
                "businessId": {"type": "string"},
                "defaultStartTime": {"type": "string", "example": "08:00"},
                "defaultEndTime": {"type": "string", "example": "00:00"},
                "slotDurationMinutes": {"type": "integer"},
                "maxAdvanceBookingDays": {"type": "integer"},
                "minAdvanceBookingHours": {"type": "integer"},
                "acceptReservations": {"type": "boolean"},
                "autoConfirm": {"type": "boolean"}
            }
        },
        "CreateUserRequest": {
            "type": "object",
            "required": ["email", "fullName"],
            "properties": {
                "email": {"type": "string"},
                "fullName": {"type": "string"},
                "gsm": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
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
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
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
