package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The response shapes here are part of the external contract: clients
// match on them, so handlers never wrap or extend these bodies.

// ApiResponse is the body of state-changing operations such as signup.
type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AuthResponse is the login success body. TokenType is always "Bearer".
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

// ErrorBody carries a human-readable message. Details is optional and
// holds field-level validation errors; it never exposes internals.
type ErrorBody struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func NewAuthResponse(accessToken string) AuthResponse {
	return AuthResponse{AccessToken: accessToken, TokenType: "Bearer"}
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, location, message string) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, ApiResponse{Success: true, Message: message})
}

func Error(c *gin.Context, status int, message string, details any) {
	c.JSON(status, ErrorBody{Message: message, Details: details})
}

// AbortError is for middleware: it writes the error body and stops the
// handler chain.
func AbortError(c *gin.Context, status int, message string, details any) {
	c.AbortWithStatusJSON(status, ErrorBody{Message: message, Details: details})
}
