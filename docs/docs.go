// Package docs registers the OpenAPI document served by fiber-swagger at /docs/*.
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
        "/dashboard": {
            "get": {
                "description": "Daily orders/revenue, daily spend and category breakdowns with dominant keys",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Dashboard"
                ],
                "summary": "Dashboard views for a date range",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Start date (YYYY-MM-DD or RFC3339), defaults to the first approved order",
                        "name": "start",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "End date (YYYY-MM-DD covers the whole day, or RFC3339), defaults to the last approved order",
                        "name": "end",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Comma separated order statuses",
                        "name": "status",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/fiber.DashboardResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/dashboard/bounds": {
            "get": {
                "description": "Earliest and latest order approval date, used as the default range",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Dashboard"
                ],
                "summary": "Date range of the data",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/fiber.BoundsResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/dashboard/breakdowns/{dimension}": {
            "get": {
                "description": "Rows sorted by count desc (ties by key asc) plus the dominant key",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Dashboard"
                ],
                "summary": "One categorical breakdown",
                "parameters": [
                    {
                        "type": "string",
                        "description": "product_category | customer_state | customer_city | order_status",
                        "name": "dimension",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Start date",
                        "name": "start",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "End date",
                        "name": "end",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Comma separated order statuses",
                        "name": "status",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Max rows",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/fiber.BreakdownResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/fiber.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "fiber.BoundsResponse": {
            "type": "object",
            "properties": {
                "empty": {
                    "type": "boolean"
                },
                "max": {
                    "type": "string",
                    "example": "2018-09-03"
                },
                "min": {
                    "type": "string",
                    "example": "2016-09-15"
                }
            }
        },
        "fiber.BreakdownResponse": {
            "type": "object",
            "properties": {
                "dimension": {
                    "type": "string",
                    "example": "customer_state"
                },
                "dominant": {
                    "type": "string",
                    "example": "SP"
                },
                "empty": {
                    "type": "boolean"
                },
                "message": {
                    "type": "string"
                },
                "rows": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/fiber.GroupCountResponse"
                    }
                }
            }
        },
        "fiber.DailyOrdersResponse": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string",
                    "example": "2018-01-01"
                },
                "order_count": {
                    "type": "integer"
                },
                "revenue": {
                    "type": "string",
                    "example": "162.49"
                }
            }
        },
        "fiber.DailySpendResponse": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string",
                    "example": "2018-01-01"
                },
                "total_spend": {
                    "type": "string",
                    "example": "162.49"
                }
            }
        },
        "fiber.DashboardResponse": {
            "type": "object",
            "properties": {
                "customer_cities": {
                    "$ref": "#/definitions/fiber.BreakdownResponse"
                },
                "customer_states": {
                    "$ref": "#/definitions/fiber.BreakdownResponse"
                },
                "daily_orders": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/fiber.DailyOrdersResponse"
                    }
                },
                "daily_spend": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/fiber.DailySpendResponse"
                    }
                },
                "empty": {
                    "type": "boolean"
                },
                "end": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "order_statuses": {
                    "$ref": "#/definitions/fiber.BreakdownResponse"
                },
                "product_categories": {
                    "$ref": "#/definitions/fiber.BreakdownResponse"
                },
                "start": {
                    "type": "string"
                },
                "totals": {
                    "$ref": "#/definitions/fiber.TotalsResponse"
                }
            }
        },
        "fiber.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "example": "invalid_query"
                },
                "message": {
                    "type": "string",
                    "example": "start is after end"
                }
            }
        },
        "fiber.GroupCountResponse": {
            "type": "object",
            "properties": {
                "count": {
                    "type": "integer"
                },
                "key": {
                    "type": "string"
                }
            }
        },
        "fiber.TotalsResponse": {
            "type": "object",
            "properties": {
                "order_count": {
                    "type": "integer"
                },
                "revenue": {
                    "type": "string",
                    "example": "1234567.89"
                },
                "revenue_display": {
                    "type": "string",
                    "example": "Rp 1.234.567,89"
                }
            }
        }
    }
}`

// SwaggerInfo is the registered document. Host and BasePath may be overridden before serving.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Order Dashboard API",
	Description:      "Date-filtered order, revenue and category analytics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
