// Package docs holds the OpenAPI description of the journal API served at /swagger.
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
		"/trades": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"trades"
				],
				"summary": "List trades",
				"parameters": [
					{
						"type": "string",
						"description": "Entry date from (YYYY-MM-DD)",
						"name": "from",
						"in": "query",
						"required": false
					},
					{
						"type": "string",
						"description": "Entry date to (YYYY-MM-DD)",
						"name": "to",
						"in": "query",
						"required": false
					},
					{
						"type": "string",
						"description": "Stock symbol",
						"name": "symbol",
						"in": "query",
						"required": false
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/entity.TradeRecord"
							}
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"trades"
				],
				"summary": "Record a trade",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Trade to record",
						"name": "trade",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.TradeRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/dto.SaveResult"
						}
					},
					"202": {
						"description": "Accepted",
						"schema": {
							"$ref": "#/definitions/dto.SaveResult"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/trades/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"trades"
				],
				"summary": "Get a trade by ID",
				"parameters": [
					{
						"type": "string",
						"description": "Trade ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/entity.TradeRecord"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"trades"
				],
				"summary": "Edit a trade",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Trade ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Trade fields",
						"name": "trade",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.TradeRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/entity.TradeRecord"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"trades"
				],
				"summary": "Delete a trade",
				"parameters": [
					{
						"type": "string",
						"description": "Trade ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/positions": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"positions"
				],
				"summary": "List positions",
				"parameters": [
					{
						"type": "string",
						"description": "open or closed",
						"name": "status",
						"in": "query",
						"required": false
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/entity.Position"
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"positions"
				],
				"summary": "Open a position",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Initial entry",
						"name": "position",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.OpenPositionRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/dto.SaveResult"
						}
					},
					"202": {
						"description": "Accepted",
						"schema": {
							"$ref": "#/definitions/dto.SaveResult"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/positions/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"positions"
				],
				"summary": "Get a position by ID",
				"parameters": [
					{
						"type": "string",
						"description": "Position ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/entity.Position"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/positions/{id}/entries": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"positions"
				],
				"summary": "Add to a position",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Position ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Additional entry",
						"name": "entry",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.AddToPositionRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/dto.SaveResult"
						}
					},
					"202": {
						"description": "Accepted",
						"schema": {
							"$ref": "#/definitions/dto.SaveResult"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/positions/{id}/exits": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"positions"
				],
				"summary": "Exit a position",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Position ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Exit",
						"name": "exit",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.ExitPositionRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/dto.SaveResult"
						}
					},
					"202": {
						"description": "Accepted",
						"schema": {
							"$ref": "#/definitions/dto.SaveResult"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/positions/{id}/preview-exit": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"positions"
				],
				"summary": "Preview an exit",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Position ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Exit price and lots (0 for all remaining)",
						"name": "preview",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.ExitPreviewRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.ExitPreviewResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/sync": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"sync"
				],
				"summary": "Drain pending queues",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.SyncResponse"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/sync/status": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"sync"
				],
				"summary": "Sync status",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.SyncStatusResponse"
						}
					}
				}
			}
		},
		"/portfolio/summary": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"portfolio"
				],
				"summary": "Portfolio summary",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.PortfolioResponse"
						}
					}
				}
			}
		},
		"/portfolio/transactions": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"portfolio"
				],
				"summary": "List cash flows",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/entity.PortfolioTransaction"
							}
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"portfolio"
				],
				"summary": "Record a top-up or withdrawal",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Cash flow",
						"name": "transaction",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.PortfolioTransactionRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/entity.PortfolioTransaction"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/portfolio/transactions/{id}": {
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"portfolio"
				],
				"summary": "Delete a cash flow",
				"parameters": [
					{
						"type": "string",
						"description": "Transaction ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/portfolio/sync": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"portfolio"
				],
				"summary": "Push the portfolio summary",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.PortfolioResponse"
						}
					},
					"202": {
						"description": "Accepted",
						"schema": {
							"$ref": "#/definitions/dto.PortfolioResponse"
						}
					}
				}
			}
		},
		"/metrics": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"metrics"
				],
				"summary": "Trading metrics",
				"parameters": [
					{
						"type": "string",
						"description": "7days, 30days, thismonth, lastmonth, thisyear or all",
						"name": "range",
						"in": "query",
						"required": false
					},
					{
						"type": "string",
						"description": "Entry date from (YYYY-MM-DD)",
						"name": "from",
						"in": "query",
						"required": false
					},
					{
						"type": "string",
						"description": "Entry date to (YYYY-MM-DD)",
						"name": "to",
						"in": "query",
						"required": false
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/dto.MetricsResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"dto.AddToPositionRequest": {
			"type": "object",
			"properties": {
				"entry_date": {
					"type": "string"
				},
				"entry_price": {
					"type": "number"
				},
				"lot": {
					"type": "integer"
				},
				"buy_fee": {
					"type": "number"
				},
				"method": {
					"type": "string"
				},
				"notes": {
					"type": "string"
				}
			}
		},
		"dto.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				},
				"field": {
					"type": "string"
				}
			}
		},
		"dto.ExitPositionRequest": {
			"type": "object",
			"properties": {
				"exit_type": {
					"type": "string"
				},
				"exit_date": {
					"type": "string"
				},
				"exit_price": {
					"type": "number"
				},
				"lot": {
					"type": "integer"
				},
				"sell_fee": {
					"type": "number"
				},
				"method": {
					"type": "string"
				},
				"notes": {
					"type": "string"
				}
			}
		},
		"dto.ExitPreviewRequest": {
			"type": "object",
			"properties": {
				"exit_price": {
					"type": "number"
				},
				"lot": {
					"type": "integer"
				}
			}
		},
		"dto.ExitPreviewResponse": {
			"type": "object",
			"properties": {
				"position_id": {
					"type": "string"
				},
				"lot": {
					"type": "integer"
				},
				"exit_price": {
					"type": "number"
				},
				"allocated_buy_fee": {
					"type": "number"
				},
				"estimated_sell_fee": {
					"type": "number"
				},
				"profit_loss": {
					"type": "number"
				}
			}
		},
		"dto.GroupPerformance": {
			"type": "object",
			"properties": {
				"key": {
					"type": "string"
				},
				"trades": {
					"type": "integer"
				},
				"wins": {
					"type": "integer"
				},
				"losses": {
					"type": "integer"
				},
				"total_pl": {
					"type": "number"
				},
				"win_rate": {
					"type": "number"
				},
				"avg_pl": {
					"type": "number"
				},
				"best_trade": {
					"type": "number"
				},
				"worst_trade": {
					"type": "number"
				}
			}
		},
		"dto.Metrics": {
			"type": "object",
			"properties": {
				"total_pl": {
					"type": "number"
				},
				"win_rate": {
					"type": "number"
				},
				"total_trades": {
					"type": "integer"
				},
				"avg_profit": {
					"type": "number"
				},
				"max_profit": {
					"type": "number"
				},
				"max_loss": {
					"type": "number"
				}
			}
		},
		"dto.MetricsResponse": {
			"type": "object",
			"properties": {
				"from": {
					"type": "string"
				},
				"to": {
					"type": "string"
				},
				"metrics": {
					"$ref": "#/definitions/dto.Metrics"
				},
				"by_symbol": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/dto.GroupPerformance"
					}
				},
				"by_method": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/dto.GroupPerformance"
					}
				}
			}
		},
		"dto.OpenPositionRequest": {
			"type": "object",
			"properties": {
				"entry_date": {
					"type": "string"
				},
				"symbol": {
					"type": "string"
				},
				"entry_price": {
					"type": "number"
				},
				"lot": {
					"type": "integer"
				},
				"buy_fee": {
					"type": "number"
				},
				"method": {
					"type": "string"
				},
				"notes": {
					"type": "string"
				}
			}
		},
		"dto.PortfolioResponse": {
			"type": "object",
			"properties": {
				"summary": {
					"$ref": "#/definitions/entity.PortfolioSummary"
				},
				"transactions": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/entity.PortfolioTransaction"
					}
				}
			}
		},
		"dto.PortfolioTransactionRequest": {
			"type": "object",
			"properties": {
				"type": {
					"type": "string"
				},
				"amount": {
					"type": "integer"
				},
				"method": {
					"type": "string"
				},
				"notes": {
					"type": "string"
				}
			}
		},
		"dto.SaveResult": {
			"type": "object",
			"properties": {
				"record": {
					"$ref": "#/definitions/entity.TradeRecord"
				},
				"queued": {
					"type": "boolean"
				},
				"pending_id": {
					"type": "string"
				},
				"state": {
					"type": "string"
				},
				"message": {
					"type": "string"
				}
			}
		},
		"dto.SyncResponse": {
			"type": "object",
			"properties": {
				"trades_synced": {
					"type": "integer"
				},
				"portfolio_synced": {
					"type": "boolean"
				}
			}
		},
		"dto.SyncStatusResponse": {
			"type": "object",
			"properties": {
				"state": {
					"type": "string"
				},
				"online": {
					"type": "boolean"
				},
				"pending_trades": {
					"type": "integer"
				},
				"pending_portfolio": {
					"type": "integer"
				},
				"last_sync_attempt": {
					"type": "string"
				},
				"last_error": {
					"type": "string"
				},
				"transaction_log_records": {
					"type": "integer"
				}
			}
		},
		"dto.TradeRequest": {
			"type": "object",
			"properties": {
				"entry_date": {
					"type": "string"
				},
				"exit_date": {
					"type": "string"
				},
				"symbol": {
					"type": "string"
				},
				"entry_price": {
					"type": "number"
				},
				"exit_price": {
					"type": "number"
				},
				"lot": {
					"type": "integer"
				},
				"buy_fee": {
					"type": "number"
				},
				"sell_fee": {
					"type": "number"
				},
				"method": {
					"type": "string"
				},
				"notes": {
					"type": "string"
				}
			}
		},
		"entity.PortfolioSummary": {
			"type": "object",
			"properties": {
				"total_top_up": {
					"type": "integer"
				},
				"total_withdraw": {
					"type": "integer"
				},
				"total_pl": {
					"type": "integer"
				},
				"total_equity": {
					"type": "integer"
				},
				"available_cash": {
					"type": "integer"
				},
				"growth_percent": {
					"type": "number"
				},
				"last_updated": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"entity.PortfolioTransaction": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"type": {
					"type": "string"
				},
				"amount": {
					"type": "integer"
				},
				"method": {
					"type": "string"
				},
				"notes": {
					"type": "string"
				},
				"timestamp": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"entity.Position": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"symbol": {
					"type": "string"
				},
				"status": {
					"type": "string"
				},
				"entries": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/entity.PositionEntry"
					}
				},
				"exits": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/entity.PositionExit"
					}
				},
				"total_lot": {
					"type": "integer"
				},
				"total_fee_buy": {
					"type": "number"
				},
				"remaining_lot": {
					"type": "integer"
				},
				"average_price": {
					"type": "number"
				},
				"total_investment": {
					"type": "number"
				}
			}
		},
		"entity.PositionData": {
			"type": "object",
			"properties": {
				"positionId": {
					"type": "string"
				},
				"transactionType": {
					"type": "string"
				},
				"entryType": {
					"type": "string"
				},
				"exitType": {
					"type": "string"
				},
				"currentAvgPrice": {
					"type": "number"
				},
				"currentTotalLot": {
					"type": "integer"
				},
				"avgPrice": {
					"type": "number"
				},
				"totalLot": {
					"type": "integer"
				},
				"remainingLot": {
					"type": "integer"
				},
				"parentPosition": {
					"type": "string"
				}
			}
		},
		"entity.PositionEntry": {
			"type": "object",
			"properties": {
				"record_id": {
					"type": "string"
				},
				"date": {
					"type": "string"
				},
				"lot": {
					"type": "integer"
				},
				"price": {
					"type": "number"
				},
				"fee": {
					"type": "number"
				}
			}
		},
		"entity.PositionExit": {
			"type": "object",
			"properties": {
				"record_id": {
					"type": "string"
				},
				"date": {
					"type": "string"
				},
				"lot": {
					"type": "integer"
				},
				"exit_price": {
					"type": "number"
				},
				"fee": {
					"type": "number"
				},
				"profit_loss": {
					"type": "number"
				}
			}
		},
		"entity.TradeRecord": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"entry_date": {
					"type": "string"
				},
				"exit_date": {
					"type": "string"
				},
				"symbol": {
					"type": "string"
				},
				"entry_price": {
					"type": "number"
				},
				"exit_price": {
					"type": "number"
				},
				"lot": {
					"type": "integer"
				},
				"buy_fee": {
					"type": "number"
				},
				"sell_fee": {
					"type": "number"
				},
				"total_fee": {
					"type": "number"
				},
				"profit_loss": {
					"type": "number"
				},
				"method": {
					"type": "string"
				},
				"notes": {
					"type": "string"
				},
				"position_data": {
					"$ref": "#/definitions/entity.PositionData"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Trading Journal API",
	Description:      "IDX trading journal: trades, positions, portfolio, metrics and offline sync.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
