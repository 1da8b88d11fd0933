// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response envelope used across all endpoints.
// Every response, success or failure, is an Envelope; clients branch on the
// `success` flag rather than parsing status codes out of bodies.
//
// Conventions:
//   - Success responses carry `data` and usually a human-readable `message`.
//   - List responses additionally carry `count`, the number of items returned.
//   - Failures carry `message` and, for validation rejections, an `errors`
//     array with one entry per violated rule.
//   - Internal error detail is exposed in `error` only when the server runs
//     in development mode; production responses never leak it.
//
// Example success response:
//
//	HTTP/1.1 201 Created
//	{ "success": true, "message": "Ticket created successfully", "data": {...} }
//
// Example failure response:
//
//	HTTP/1.1 400 Bad Request
//	{ "success": false, "message": "Validation failed", "errors": ["Title is required"] }
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weboid/site-backend/internal/http/middleware"
)

// Envelope is the uniform response body returned by every endpoint.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Count   *int     `json:"count,omitempty"`
	// Error carries internal detail in development mode only.
	Error string `json:"error,omitempty"`
}

// ok writes a success envelope with data and an optional message.
func ok(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// list writes a success envelope for a collection, always including count
// (zero for an empty result, never omitted).
func list(c *gin.Context, items any, count int) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: items, Count: &count})
}

// failValidation writes a 400 envelope carrying every violated rule.
func failValidation(c *gin.Context, errs []string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// fail writes a failure envelope. Server errors (>=500) are logged with the
// request-scoped logger, and their detail is echoed to the client only when
// dev is set.
func fail(c *gin.Context, status int, message string, err error, dev bool) {
	resp := Envelope{Success: false, Message: message}

	if status >= http.StatusInternalServerError && err != nil {
		middleware.LoggerFrom(c).Error().
			Err(err).
			Int("status", status).
			Str("message", message).
			Msg("api error")
		if dev {
			resp.Error = err.Error()
		}
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail for use outside the package (router
// fallback routes). It never exposes error detail.
func Fail(c *gin.Context, status int, message string) {
	fail(c, status, message, nil, false)
}
