package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Vijaya Electrics Repair Shop API",
        "description": "Job card admission, technician capacity, and repair tracking service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Jobs", "description": "Job card ledger and admission"},
        {"name": "Technicians", "description": "Technician roster and availability"},
        {"name": "Notifications", "description": "Admin notifications for customer edits"},
        {"name": "Exports", "description": "Job card PDF and CSV downloads"}
    ],
    "paths": {
        "/jobs": {
            "get": {
                "tags": ["Jobs"],
                "summary": "List jobs ordered by job number",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Jobs"],
                "summary": "Create a job card",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateJobRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Capacity exceeded or numbering conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Technician inactive", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/jobs/search": {
            "get": {
                "tags": ["Jobs"],
                "summary": "Search a job by number or NIC",
                "parameters": [
                    {"name": "jobNo", "in": "query", "type": "integer"},
                    {"name": "nic", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/jobs/{jobNo}": {
            "get": {
                "tags": ["Jobs"],
                "summary": "Get a job by number",
                "parameters": [
                    {"name": "jobNo", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Jobs"],
                "summary": "Delete a job by number",
                "parameters": [
                    {"name": "jobNo", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/jobs/{jobNo}/status": {
            "put": {
                "tags": ["Jobs"],
                "summary": "Update job status",
                "parameters": [
                    {"name": "jobNo", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateJobStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/jobs/{jobNo}/pdf": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download the job card PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "jobNo", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "PDF document"}
                }
            }
        },
        "/jobs/export/csv": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export the job ledger as CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV document"}
                }
            }
        },
        "/jobs/id/{id}": {
            "put": {
                "tags": ["Jobs"],
                "summary": "Update customer fields of a job",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateCustomerJobRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Jobs"],
                "summary": "Delete a job by internal id",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/technicians": {
            "get": {
                "tags": ["Technicians"],
                "summary": "List technicians",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Technicians"],
                "summary": "Register a technician",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTechnicianRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/technicians/available": {
            "get": {
                "tags": ["Technicians"],
                "summary": "List active technicians with spare capacity",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/technicians/{id}": {
            "get": {
                "tags": ["Technicians"],
                "summary": "Get a technician",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Technicians"],
                "summary": "Update a technician",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTechnicianRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Technicians"],
                "summary": "Delete a technician",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List notifications",
                "parameters": [
                    {"name": "unread", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/{id}": {
            "delete": {
                "tags": ["Notifications"],
                "summary": "Delete a notification",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/notifications/{id}/read": {
            "put": {
                "tags": ["Notifications"],
                "summary": "Mark a notification as read",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/downloads": {
            "get": {
                "tags": ["Exports"],
                "summary": "Fetch a rendered document via a signed token",
                "parameters": [
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Document"}
                }
            }
        }
    },
    "definitions": {
        "Job": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "job_number": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "nic": {"type": "string"},
                "mobile": {"type": "string"},
                "technician_id": {"type": "string"},
                "technician_name": {"type": "string"},
                "description": {"type": "string"},
                "status": {"type": "string", "enum": ["Pending", "In Progress", "Completed", "Cancelled"]},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "Technician": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "mobile": {"type": "string"},
                "specialization": {"type": "string"},
                "is_active": {"type": "boolean"},
                "max_jobs": {"type": "integer"},
                "current_active_jobs": {"type": "integer"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "CreateJobRequest": {
            "type": "object",
            "properties": {
                "technician_id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "nic": {"type": "string"},
                "mobile": {"type": "string"},
                "description": {"type": "string"}
            },
            "required": ["technician_id", "name", "email", "nic", "mobile"]
        },
        "UpdateJobStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["Pending", "In Progress", "Completed", "Cancelled"]}
            },
            "required": ["status"]
        },
        "UpdateCustomerJobRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "nic": {"type": "string"},
                "mobile": {"type": "string"},
                "description": {"type": "string"}
            },
            "required": ["name", "email", "nic", "mobile"]
        },
        "CreateTechnicianRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "mobile": {"type": "string"},
                "specialization": {"type": "string"},
                "max_jobs": {"type": "integer"}
            },
            "required": ["name"]
        },
        "UpdateTechnicianRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "mobile": {"type": "string"},
                "specialization": {"type": "string"},
                "max_jobs": {"type": "integer"},
                "is_active": {"type": "boolean"}
            },
            "required": ["name"]
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
