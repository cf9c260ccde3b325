package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mateoAlonso06/educatech-api/internal/models"
	"github.com/mateoAlonso06/educatech-api/internal/repositories"
	"github.com/mateoAlonso06/educatech-api/internal/services"
	"github.com/mateoAlonso06/educatech-api/internal/utils"
	"github.com/mateoAlonso06/educatech-api/internal/validator"
)

// ErrorResponse and SuccessResponse are re-exported so handler code and
// swagger annotations can reference them without the models prefix.
type ErrorResponse = models.ErrorResponse
type SuccessResponse = models.SuccessResponse

// BaseHandler carries the pieces every handler needs.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.FromContext(c).Error(msg, append(args, "error", err)...)
}

// parseIDParam parses a positive integer path parameter. On failure it
// writes a 400 response and returns 0; callers must return when 0.
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) uint {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "bad_request",
			Message:   "Invalid " + name + " parameter",
			Details:   raw,
			Timestamp: time.Now().UTC(),
			Path:      c.Request.URL.Path,
		})
		return 0
	}
	return uint(id)
}

// parsePageFilters reads limit/offset/sort query parameters with defaults.
func (h *BaseHandler) parsePageFilters(c *gin.Context) repositories.PageFilters {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return repositories.PageFilters{
		Limit:     limit,
		Offset:    offset,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
}

// handleServiceError maps service layer errors onto HTTP responses.
// Validation failures carry field details; everything else degrades to a
// generic 500 so internals never leak.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	now := time.Now().UTC()
	path := c.Request.URL.Path

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "validation_failed",
			Message:   "Request validation failed",
			Code:      string(services.CodeInvalidArgument),
			Details:   verrs,
			Timestamp: now,
			Path:      path,
		})
		return
	}

	var serr *services.ServiceError
	if errors.As(err, &serr) {
		status := http.StatusInternalServerError
		switch serr.Code {
		case services.CodeNotFound:
			status = http.StatusNotFound
		case services.CodeRoleMismatch, services.CodeInvalidArgument:
			status = http.StatusBadRequest
		case services.CodeConflict:
			status = http.StatusConflict
		case services.CodeUnauthorized:
			status = http.StatusUnauthorized
		}
		c.JSON(status, ErrorResponse{
			Error:     string(serr.Code),
			Message:   serr.Error(),
			Code:      string(serr.Code),
			Timestamp: now,
			Path:      path,
		})
		return
	}

	h.LogError(c, err, "Unhandled service error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:     string(services.CodeInternal),
		Message:   "Internal server error",
		Code:      string(services.CodeInternal),
		Timestamp: now,
		Path:      path,
	})
}
