// Package handlers – service error translation.
//
// This file centralizes the mapping from service-level failures onto the
// response envelope so every endpoint degrades identically: validation
// rejections become 400 with the full violation list, missing records become
// 404 with a resource-specific message, and anything else becomes 500 with
// an operation-specific message (detail exposed in development mode only).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weboid/site-backend/internal/services"
)

// respondServiceError writes the envelope for a failed service call.
// notFoundMsg and failMsg are the resource- and operation-specific messages
// for the 404 and 500 cases.
func (h *Handlers) respondServiceError(c *gin.Context, err error, notFoundMsg, failMsg string) {
	if ve, ok := services.AsValidation(err); ok {
		failValidation(c, ve.Errors)
		return
	}
	if errors.Is(err, services.ErrNotFound) {
		fail(c, http.StatusNotFound, notFoundMsg, nil, false)
		return
	}
	fail(c, http.StatusInternalServerError, failMsg, err, h.dev)
}
