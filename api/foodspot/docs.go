// Package foodspot holds the OpenAPI document served at /swagger/.
// Regenerate with: swag init -g internal/foodspot/http/router.go -o api/foodspot
package foodspot

import "github.com/swaggo/swag"

const docTemplate = `
{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/foodspot"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/auth/login": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "Log in",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/foodsdk.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.SessionResponse"
                        }
                    },
                    "400": {
                        "description": "missing_credentials",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "invalid_credentials",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "ambiguous_account",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "rate_limit_exceeded",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "Log out",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.LogoutResponse"
                        }
                    }
                }
            }
        },
        "/api/auth/session": {
            "get": {
                "tags": [
                    "Auth"
                ],
                "summary": "Current session",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.SessionResponse"
                        }
                    },
                    "401": {
                        "description": "unauthenticated",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/auth/revoke": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "Log out everywhere",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.RevokeResponse"
                        }
                    },
                    "401": {
                        "description": "unauthenticated",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/register": {
            "post": {
                "tags": [
                    "Accounts"
                ],
                "summary": "Register a user",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/foodsdk.RegisterUserRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.User"
                        }
                    },
                    "400": {
                        "description": "validation_error",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "email_taken",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "rate_limit_exceeded",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/businesses": {
            "get": {
                "tags": [
                    "Businesses"
                ],
                "summary": "List businesses",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Case-insensitive substring of the address",
                        "name": "city",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/foodsdk.Business"
                            }
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Accounts"
                ],
                "summary": "Register a business",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/foodsdk.RegisterBusinessRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.Business"
                        }
                    },
                    "400": {
                        "description": "validation_error",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "email_taken",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "rate_limit_exceeded",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/businesses/me": {
            "get": {
                "tags": [
                    "Profiles"
                ],
                "summary": "Own business profile",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.Business"
                        }
                    },
                    "401": {
                        "description": "unauthenticated",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "role_mismatch",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Profiles"
                ],
                "summary": "Update own business profile",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/foodsdk.UpdateBusinessRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.Business"
                        }
                    },
                    "400": {
                        "description": "validation_error",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "unauthenticated",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "role_mismatch",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/businesses/{id}": {
            "get": {
                "tags": [
                    "Businesses"
                ],
                "summary": "Business with menu",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Business id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.BusinessDetail"
                        }
                    },
                    "404": {
                        "description": "not_found",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/users/me": {
            "get": {
                "tags": [
                    "Profiles"
                ],
                "summary": "Own user profile",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.UserProfile"
                        }
                    },
                    "401": {
                        "description": "unauthenticated",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "role_mismatch",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Profiles"
                ],
                "summary": "Update own user profile",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/foodsdk.UpdateUserRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.User"
                        }
                    },
                    "400": {
                        "description": "validation_error",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "unauthenticated",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "role_mismatch",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "email_taken",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/foods": {
            "get": {
                "tags": [
                    "Foods"
                ],
                "summary": "List foods",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "array",
                        "items": {
                            "type": "string"
                        },
                        "collectionFormat": "multi",
                        "description": "Category, repeatable",
                        "name": "category",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Case-insensitive substring of the business address",
                        "name": "city",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Case-insensitive substring of the name or a category",
                        "name": "q",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/foodsdk.Food"
                            }
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Foods"
                ],
                "summary": "Create food",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/foodsdk.FoodRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.Food"
                        }
                    },
                    "400": {
                        "description": "validation_error",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "unauthenticated",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "role_mismatch",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/foods/business": {
            "get": {
                "tags": [
                    "Foods"
                ],
                "summary": "Own menu",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/foodsdk.Food"
                            }
                        }
                    },
                    "401": {
                        "description": "unauthenticated",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "role_mismatch",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/foods/{id}": {
            "get": {
                "tags": [
                    "Foods"
                ],
                "summary": "Food detail",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Food id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.FoodDetail"
                        }
                    },
                    "404": {
                        "description": "not_found",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Foods"
                ],
                "summary": "Update own food",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Food id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/foodsdk.FoodRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.Food"
                        }
                    },
                    "400": {
                        "description": "validation_error",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "unauthenticated",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "role_mismatch or forbidden",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "not_found",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Foods"
                ],
                "summary": "Delete own food",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Food id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "unauthenticated",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "role_mismatch or forbidden",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "not_found",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/foods/{id}/comments": {
            "post": {
                "tags": [
                    "Engagement"
                ],
                "summary": "Comment on a food",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Food id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/foodsdk.CommentRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.Comment"
                        }
                    },
                    "400": {
                        "description": "validation_error",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "unauthenticated",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "role_mismatch",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "not_found",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/foods/{id}/reviews": {
            "post": {
                "tags": [
                    "Engagement"
                ],
                "summary": "Review a food",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Food id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ReviewRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.Review"
                        }
                    },
                    "400": {
                        "description": "validation_error",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "unauthenticated",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "role_mismatch",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "not_found",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/comments/{id}": {
            "delete": {
                "tags": [
                    "Engagement"
                ],
                "summary": "Delete own comment",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Comment id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "unauthenticated",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "role_mismatch or forbidden",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "not_found",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/likes": {
            "post": {
                "tags": [
                    "Engagement"
                ],
                "summary": "Like a food",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/foodsdk.LikeRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.LikeResponse"
                        }
                    },
                    "401": {
                        "description": "unauthenticated",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "role_mismatch",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "not_found",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Engagement"
                ],
                "summary": "Unlike a food",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/foodsdk.LikeRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.LikeResponse"
                        }
                    },
                    "401": {
                        "description": "unauthenticated",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "role_mismatch",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/upload": {
            "post": {
                "tags": [
                    "Uploads"
                ],
                "summary": "Upload an image",
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "multipart/form-data"
                ],
                "parameters": [
                    {
                        "type": "file",
                        "description": "Image",
                        "name": "file",
                        "in": "formData",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.UploadResponse"
                        }
                    },
                    "400": {
                        "description": "invalid_request",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "unauthenticated",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "413": {
                        "description": "invalid_request",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "415": {
                        "description": "invalid_request",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Uploads"
                ],
                "summary": "Delete an uploaded image",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "URL returned by the upload",
                        "name": "url",
                        "in": "query",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "SessionCookie": []
                    }
                ],
                "responses": {
                    "204": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "invalid_request",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "unauthenticated",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "not_found",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/livez": {
            "get": {
                "tags": [
                    "Health"
                ],
                "summary": "Health Check Endpoint",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "status, uptime, version",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.HealthResponse"
                        }
                    }
                }
            }
        },
        "/readyz": {
            "get": {
                "tags": [
                    "Health"
                ],
                "summary": "Readiness Check Endpoint",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "status, uptime, version, checks",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.HealthResponse"
                        }
                    },
                    "503": {
                        "description": "service not ready",
                        "schema": {
                            "$ref": "#/definitions/foodsdk.HealthResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "error_description": {
                    "type": "string"
                },
                "details": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                }
            }
        },
        "SessionResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                },
                "role": {
                    "type": "string",
                    "enum": [
                        "user",
                        "business"
                    ]
                },
                "expiresAt": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "accountKind": {
                    "type": "string",
                    "enum": [
                        "user",
                        "business"
                    ]
                }
            },
            "required": [
                "email",
                "password"
            ]
        },
        "LogoutResponse": {
            "type": "object",
            "properties": {
                "loggedOut": {
                    "type": "boolean"
                }
            }
        },
        "RevokeResponse": {
            "type": "object",
            "properties": {
                "enforced": {
                    "description": "Enforced is false when the server does not check revocations, so other\nsessions stay valid until they expire.",
                    "type": "boolean"
                },
                "revoked": {
                    "type": "boolean"
                }
            }
        },
        "RegisterUserRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                }
            },
            "required": [
                "name",
                "email",
                "password"
            ]
        },
        "RegisterBusinessRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                }
            },
            "required": [
                "name",
                "email",
                "password"
            ]
        },
        "UpdateUserRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                }
            }
        },
        "UpdateBusinessRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                }
            }
        },
        "User": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "UserProfile": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "likedFoods": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/foodsdk.Food"
                    }
                }
            }
        },
        "Business": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "BusinessDetail": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "address": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "foods": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/foodsdk.Food"
                    }
                }
            }
        },
        "Food": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "businessId": {
                    "type": "string"
                },
                "businessName": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "price": {
                    "type": "integer"
                },
                "image": {
                    "type": "string"
                },
                "categories": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "city": {
                    "type": "string"
                },
                "likeCount": {
                    "type": "integer"
                },
                "commentCount": {
                    "type": "integer"
                },
                "reviewCount": {
                    "type": "integer"
                },
                "averageRating": {
                    "type": "number"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "updatedAt": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "FoodDetail": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "businessId": {
                    "type": "string"
                },
                "businessName": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "price": {
                    "type": "integer"
                },
                "image": {
                    "type": "string"
                },
                "categories": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "city": {
                    "type": "string"
                },
                "likeCount": {
                    "type": "integer"
                },
                "commentCount": {
                    "type": "integer"
                },
                "reviewCount": {
                    "type": "integer"
                },
                "averageRating": {
                    "type": "number"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "updatedAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "comments": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/foodsdk.Comment"
                    }
                },
                "reviews": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/foodsdk.Review"
                    }
                }
            }
        },
        "FoodRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "price": {
                    "type": "integer",
                    "minimum": 0
                },
                "image": {
                    "type": "string"
                },
                "categories": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            },
            "required": [
                "name"
            ]
        },
        "LikeRequest": {
            "type": "object",
            "properties": {
                "foodId": {
                    "type": "string"
                }
            },
            "required": [
                "foodId"
            ]
        },
        "LikeResponse": {
            "type": "object",
            "properties": {
                "foodId": {
                    "type": "string"
                },
                "liked": {
                    "type": "boolean"
                }
            }
        },
        "CommentRequest": {
            "type": "object",
            "properties": {
                "body": {
                    "type": "string",
                    "maxLength": 1000
                }
            },
            "required": [
                "body"
            ]
        },
        "Comment": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "foodId": {
                    "type": "string"
                },
                "userId": {
                    "type": "string"
                },
                "userName": {
                    "type": "string"
                },
                "body": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "ReviewRequest": {
            "type": "object",
            "properties": {
                "rating": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 5
                },
                "body": {
                    "type": "string"
                }
            },
            "required": [
                "rating"
            ]
        },
        "Review": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "foodId": {
                    "type": "string"
                },
                "userId": {
                    "type": "string"
                },
                "userName": {
                    "type": "string"
                },
                "rating": {
                    "type": "integer"
                },
                "body": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string",
                    "format": "date-time"
                },
                "updatedAt": {
                    "type": "string",
                    "format": "date-time"
                }
            }
        },
        "UploadResponse": {
            "type": "object",
            "properties": {
                "url": {
                    "type": "string"
                }
            }
        },
        "HealthResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "uptime": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                },
                "checks": {
                    "$ref": "#/definitions/foodsdk.HealthChecks"
                }
            }
        },
        "HealthChecks": {
            "type": "object",
            "properties": {
                "database": {
                    "type": "string"
                },
                "signer": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "SessionCookie": {
            "type": "apiKey",
            "name": "foodspot.session-token",
            "in": "cookie"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "FoodSpot API",
	Description:      "Food discovery backend. Users browse businesses and their menus, like, comment on and review dishes.\nBusinesses manage their menu.\n\nSessions are carried in the foodspot.session-token cookie set by /api/auth/login.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
