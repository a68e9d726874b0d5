// Package docs holds the Swagger document served under /swagger/. It mirrors the
// annotations on the handlers in internal/handler and the types in internal/model.
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
		"/xrp/balance": {
			"get": {
				"description": "Gets the validated XRP balance of a wallet with its advisory USD value. available is false when the ledger is unreachable",
				"produces": [
					"application/json"
				],
				"tags": [
					"xrp"
				],
				"summary": "Get wallet balance (USD = XRP * price)",
				"parameters": [
					{
						"type": "string",
						"description": "Wallet id",
						"name": "id",
						"in": "query",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/model.BalanceResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				}
			}
		},
		"/xrp/contacts": {
			"get": {
				"description": "GET lists contacts, POST saves one, DELETE removes the contact given by id",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"contacts"
				],
				"summary": "Address book",
				"parameters": [
					{
						"description": "Contact (POST only)",
						"name": "request",
						"in": "body",
						"required": false,
						"schema": {
							"$ref": "#/definitions/model.ContactRequest"
						}
					},
					{
						"type": "string",
						"description": "Contact id (DELETE only)",
						"name": "id",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/model.Contact"
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"description": "GET lists contacts, POST saves one, DELETE removes the contact given by id",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"contacts"
				],
				"summary": "Address book",
				"parameters": [
					{
						"description": "Contact (POST only)",
						"name": "request",
						"in": "body",
						"required": false,
						"schema": {
							"$ref": "#/definitions/model.ContactRequest"
						}
					},
					{
						"type": "string",
						"description": "Contact id (DELETE only)",
						"name": "id",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/model.Contact"
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"description": "GET lists contacts, POST saves one, DELETE removes the contact given by id",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"contacts"
				],
				"summary": "Address book",
				"parameters": [
					{
						"description": "Contact (POST only)",
						"name": "request",
						"in": "body",
						"required": false,
						"schema": {
							"$ref": "#/definitions/model.ContactRequest"
						}
					},
					{
						"type": "string",
						"description": "Contact id (DELETE only)",
						"name": "id",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/model.Contact"
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				}
			}
		},
		"/xrp/network": {
			"get": {
				"description": "GET returns the active network. POST switches it; live networks need acknowledgeIrreversible",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"network"
				],
				"summary": "Active network",
				"parameters": [
					{
						"description": "Network to activate (POST only)",
						"name": "request",
						"in": "body",
						"required": false,
						"schema": {
							"$ref": "#/definitions/model.NetworkRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/model.NetworkConfig"
						}
					},
					"428": {
						"description": "Precondition Required",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"description": "GET returns the active network. POST switches it; live networks need acknowledgeIrreversible",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"network"
				],
				"summary": "Active network",
				"parameters": [
					{
						"description": "Network to activate (POST only)",
						"name": "request",
						"in": "body",
						"required": false,
						"schema": {
							"$ref": "#/definitions/model.NetworkRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/model.NetworkConfig"
						}
					},
					"428": {
						"description": "Precondition Required",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				}
			}
		},
		"/xrp/networks": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"network"
				],
				"summary": "Selectable networks",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/model.NetworkConfig"
							}
						}
					}
				}
			}
		},
		"/xrp/pay": {
			"post": {
				"description": "Signs a payment locally, submits it and waits for validation",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"xrp"
				],
				"summary": "Send XRP",
				"parameters": [
					{
						"description": "Payment data",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/model.PayRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/model.PayResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"428": {
						"description": "Precondition Required",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"429": {
						"description": "Too Many Requests",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				}
			}
		},
		"/xrp/price": {
			"get": {
				"description": "Advisory XRP/USD price, 0 when unavailable",
				"produces": [
					"application/json"
				],
				"tags": [
					"xrp"
				],
				"summary": "XRP price",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/model.PriceResponse"
						}
					}
				}
			}
		},
		"/xrp/transactions": {
			"get": {
				"description": "Gets recent wallet transactions with filtering capability",
				"produces": [
					"application/json"
				],
				"tags": [
					"xrp"
				],
				"summary": "Get wallet transactions",
				"parameters": [
					{
						"type": "string",
						"description": "Wallet id",
						"name": "id",
						"in": "query",
						"required": true
					},
					{
						"type": "string",
						"description": "Transaction type: DEBIT (received) or CREDIT (sent)",
						"name": "type",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Transaction hash",
						"name": "txId",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Start date (YYYY-MM-DD)",
						"name": "from",
						"in": "query"
					},
					{
						"type": "string",
						"description": "End date (YYYY-MM-DD)",
						"name": "to",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Minimum amount",
						"name": "minAmount",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Maximum amount",
						"name": "maxAmount",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Transactions to fetch (default 20)",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/model.LogResponse"
						}
					}
				}
			}
		},
		"/xrp/wallets": {
			"get": {
				"description": "GET lists stored wallets with balances. DELETE removes the wallet given by id",
				"produces": [
					"application/json"
				],
				"tags": [
					"wallets"
				],
				"summary": "List or remove wallets",
				"parameters": [
					{
						"type": "string",
						"description": "Wallet id (DELETE only)",
						"name": "id",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/model.WalletSummary"
							}
						}
					}
				}
			},
			"delete": {
				"description": "GET lists stored wallets with balances. DELETE removes the wallet given by id",
				"produces": [
					"application/json"
				],
				"tags": [
					"wallets"
				],
				"summary": "List or remove wallets",
				"parameters": [
					{
						"type": "string",
						"description": "Wallet id (DELETE only)",
						"name": "id",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/model.WalletSummary"
							}
						}
					}
				}
			}
		},
		"/xrp/wallets/clear": {
			"post": {
				"description": "Irreversibly deletes every stored wallet. Requires confirm=true",
				"produces": [
					"application/json"
				],
				"tags": [
					"wallets"
				],
				"summary": "Remove all wallets",
				"parameters": [
					{
						"type": "boolean",
						"description": "Must be true",
						"name": "confirm",
						"in": "query",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "boolean"
							}
						}
					},
					"428": {
						"description": "Precondition Required",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				}
			}
		},
		"/xrp/wallets/fund": {
			"post": {
				"description": "Asks the test network faucet to fund the wallet. Refused on live networks",
				"produces": [
					"application/json"
				],
				"tags": [
					"wallets"
				],
				"summary": "Fund from testnet faucet",
				"parameters": [
					{
						"type": "string",
						"description": "Wallet id",
						"name": "id",
						"in": "query",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/model.FundResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				}
			}
		},
		"/xrp/wallets/generate": {
			"post": {
				"description": "Generates a new XRP wallet and stores it encrypted under the given password",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"wallets"
				],
				"summary": "Generate new wallet",
				"parameters": [
					{
						"description": "Wallet name and password",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/model.GenerateRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/model.GenerateResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				}
			}
		},
		"/xrp/wallets/import": {
			"post": {
				"description": "Restores a wallet from its family seed and stores it encrypted",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"wallets"
				],
				"summary": "Import wallet",
				"parameters": [
					{
						"description": "Wallet name, secret and password",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/model.ImportRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/model.GenerateResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				}
			}
		},
		"/xrp/wallets/receive": {
			"get": {
				"description": "Returns the wallet address with a base64 PNG QR code",
				"produces": [
					"application/json"
				],
				"tags": [
					"wallets"
				],
				"summary": "Receive address",
				"parameters": [
					{
						"type": "string",
						"description": "Wallet id",
						"name": "id",
						"in": "query",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/model.ReceiveResponse"
						}
					}
				}
			}
		},
		"/xrp/wallets/unlock": {
			"post": {
				"description": "Checks the password of a stored wallet and returns its public data",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"wallets"
				],
				"summary": "Unlock wallet",
				"parameters": [
					{
						"description": "Wallet id and password",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/model.UnlockRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/model.UnlockResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/model.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"model.BalanceResponse": {
			"type": "object",
			"properties": {
				"address": {
					"type": "string"
				},
				"available": {
					"description": "Available is false when the ledger could not be reached and Drops is a placeholder 0.",
					"type": "boolean"
				},
				"drops": {
					"type": "integer"
				},
				"network": {
					"type": "string"
				},
				"priceUsd": {
					"type": "number"
				},
				"xrp": {
					"type": "string"
				},
				"xrp_amount_in_usd": {
					"type": "string"
				}
			}
		},
		"model.Contact": {
			"type": "object",
			"properties": {
				"address": {
					"type": "string"
				},
				"createdAt": {
					"type": "string"
				},
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"tag": {
					"type": "integer"
				}
			}
		},
		"model.ContactRequest": {
			"type": "object",
			"properties": {
				"address": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"tag": {
					"type": "integer"
				}
			}
		},
		"model.ErrorResponse": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string"
				},
				"error": {
					"type": "string"
				},
				"outcomeCode": {
					"type": "string"
				}
			}
		},
		"model.FundResponse": {
			"type": "object",
			"properties": {
				"address": {
					"type": "string"
				},
				"amount": {
					"type": "string"
				}
			}
		},
		"model.GenerateRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"model.GenerateResponse": {
			"type": "object",
			"properties": {
				"address": {
					"type": "string"
				},
				"id": {
					"type": "string"
				},
				"message": {
					"type": "string"
				},
				"success": {
					"type": "boolean"
				}
			}
		},
		"model.ImportRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"secret": {
					"type": "string"
				}
			}
		},
		"model.LogResponse": {
			"type": "object",
			"properties": {
				"address": {
					"type": "string"
				},
				"total_income_XRP": {
					"type": "string"
				},
				"total_spent_XRP": {
					"type": "string"
				},
				"transactions": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/model.Transaction"
					}
				}
			}
		},
		"model.NetworkConfig": {
			"type": "object",
			"properties": {
				"displayName": {
					"type": "string"
				},
				"endpointUrl": {
					"type": "string"
				},
				"faucetUrl": {
					"type": "string"
				},
				"isLive": {
					"type": "boolean"
				},
				"key": {
					"type": "string"
				}
			}
		},
		"model.NetworkRequest": {
			"type": "object",
			"properties": {
				"acknowledgeIrreversible": {
					"type": "boolean"
				},
				"network": {
					"type": "string"
				}
			}
		},
		"model.PayRequest": {
			"type": "object",
			"properties": {
				"acknowledgeIrreversible": {
					"type": "boolean"
				},
				"amount": {
					"type": "string"
				},
				"destinationTag": {
					"type": "integer"
				},
				"password": {
					"type": "string"
				},
				"toAddress": {
					"type": "string"
				},
				"walletId": {
					"type": "string"
				}
			}
		},
		"model.PayResponse": {
			"type": "object",
			"properties": {
				"refreshAfterSeconds": {
					"type": "integer"
				},
				"result": {
					"type": "string"
				},
				"txId": {
					"type": "string"
				},
				"validated": {
					"type": "boolean"
				}
			}
		},
		"model.PriceResponse": {
			"type": "object",
			"properties": {
				"usd": {
					"type": "number"
				}
			}
		},
		"model.ReceiveResponse": {
			"type": "object",
			"properties": {
				"QR": {
					"description": "base64 PNG",
					"type": "string"
				},
				"address": {
					"type": "string"
				}
			}
		},
		"model.Transaction": {
			"type": "object",
			"properties": {
				"amount": {
					"type": "string"
				},
				"currency": {
					"type": "string"
				},
				"destinationTag": {
					"type": "integer"
				},
				"from": {
					"type": "string"
				},
				"kind": {
					"description": "ledger TransactionType, e.g. \"Payment\"",
					"type": "string"
				},
				"ledgerIndex": {
					"type": "integer"
				},
				"ourFeeXRP": {
					"description": "XRP we paid as fee",
					"type": "string"
				},
				"status": {
					"type": "string"
				},
				"timestamp": {
					"type": "string"
				},
				"to": {
					"type": "string"
				},
				"txId": {
					"type": "string"
				},
				"type": {
					"$ref": "#/definitions/model.TransactionType"
				}
			}
		},
		"model.TransactionType": {
			"type": "string",
			"enum": [
				"DEBIT",
				"CREDIT"
			],
			"x-enum-varnames": [
				"TransactionTypeDebit",
				"TransactionTypeCredit"
			]
		},
		"model.UnlockRequest": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"model.UnlockResponse": {
			"type": "object",
			"properties": {
				"address": {
					"type": "string"
				},
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"publicKey": {
					"type": "string"
				}
			}
		},
		"model.WalletSummary": {
			"type": "object",
			"properties": {
				"address": {
					"type": "string"
				},
				"balanceXrp": {
					"type": "string"
				},
				"createdAt": {
					"type": "string"
				},
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				}
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
	Title:            "XRP Wallet API",
	Description:      "Local XRP Ledger wallet: encrypted key custody, balances, history and payments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
