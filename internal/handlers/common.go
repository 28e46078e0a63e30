package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides logging and error mapping shared by every handler
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) requestLogger(c *gin.Context) utils.Logger {
	return utils.GetLoggerFromContext(c, h.logger)
}

// LogRequest logs an incoming request with the request-scoped logger
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := append([]interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"remote_addr", c.ClientIP(),
	}, additionalFields...)
	h.requestLogger(c).Info(message, fields...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	fields := append([]interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}, additionalFields...)
	h.requestLogger(c).LogError(err, message, fields...)
}

func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := append([]interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}, additionalFields...)
	h.requestLogger(c).Warn(message, fields...)
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error, details ...interface{}) {
	resp := ErrorResponse{Message: message}
	if len(details) > 0 {
		resp.Details = details[0]
	}

	if err != nil && statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.LogWarn(c, message, "status_code", statusCode)
	}

	c.JSON(statusCode, resp)
}

// RespondWithSuccess sends a consistent success response
func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Message: message,
		Data:    data,
	})
}

// handleServiceError maps service errors onto HTTP statuses
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, validationErrors)
		return
	}

	var validationError *services.ValidationError
	if errors.As(err, &validationError) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, services.ValidationErrors{*validationError})
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		h.RespondWithError(c, http.StatusUnprocessableEntity, businessRuleError.Message, err, map[string]interface{}{
			"rule":    businessRuleError.Rule,
			"context": businessRuleError.Context,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrAccessCodeRequired):
		h.respondCode(c, http.StatusUnauthorized, "Access code required", "ACCESS_CODE_REQUIRED", err)
	case errors.Is(err, services.ErrAccessCodeMismatch):
		h.respondCode(c, http.StatusUnauthorized, "Access code does not match", "ACCESS_CODE_MISMATCH", err)
	case services.IsUnauthorized(err):
		h.respondCode(c, http.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED", err)
	case services.IsNotFound(err):
		h.respondCode(c, http.StatusNotFound, notFoundMessage(err), "NOT_FOUND", err)
	case errors.Is(err, services.ErrAlreadySubmitted):
		h.respondCode(c, http.StatusConflict, "Quiz already submitted", "ALREADY_SUBMITTED", err)
	case services.IsConflict(err):
		h.respondCode(c, http.StatusConflict, err.Error(), "CONFLICT", err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

func (h *BaseHandler) respondCode(c *gin.Context, status int, message, code string, err error) {
	h.LogWarn(c, message, "status_code", status, "error", err)
	c.JSON(status, ErrorResponse{Message: message, Code: code})
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrQuizNotFound):
		return "Quiz not found"
	case errors.Is(err, services.ErrResultNotFound):
		return "Result not found"
	case errors.Is(err, services.ErrSessionNotFound):
		return "Quiz session not found"
	case errors.Is(err, services.ErrTeacherNotFound):
		return "Teacher not found"
	}
	return "Resource not found"
}

// requestContext carries the request id into service logging
func requestContext(c *gin.Context) context.Context {
	return services.WithRequestID(c.Request.Context(), utils.GetRequestID(c))
}

// parseIDParam returns the trimmed path parameter, answering 400 when empty
func (h *BaseHandler) parseIDParam(c *gin.Context, param string) (string, bool) {
	id := strings.TrimSpace(c.Param(param))
	if id == "" {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid "+param, nil, "ID cannot be empty")
		return "", false
	}
	return id, true
}

// HealthCheck reports liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "quiz-service",
	})
}
