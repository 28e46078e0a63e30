package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
	config LogConfig
}

type LogConfig struct {
	Service     string
	Component   string
	EnableDebug bool
}

func NewServiceLogger(logger *slog.Logger, config LogConfig) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", config.Service, "component", config.Component),
		config: config,
	}
}

// Logger returns the underlying slog logger with the service attributes set.
func (l *ServiceLogger) Logger() *slog.Logger {
	return l.logger
}

type requestIDKey struct{}

// WithRequestID stores a request id that LogOperation attaches to every line.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// ===== OPERATION LOGGING =====

// LogOperation writes one line per service call. Expected failures such as
// validation or a missing record are logged below error level.
func (l *ServiceLogger) LogOperation(ctx context.Context, operation, resourceType, resourceID string, duration time.Duration, err error) {
	level := slog.LevelInfo
	status := "success"

	if err != nil {
		level = slog.LevelError
		status = "error"

		switch {
		case IsValidation(err) || IsBusinessRule(err):
			level = slog.LevelWarn
			status = "validation_error"
		case IsUnauthorized(err):
			level = slog.LevelWarn
			status = "unauthorized"
		case IsNotFound(err):
			level = slog.LevelInfo
			status = "not_found"
		case IsConflict(err):
			level = slog.LevelWarn
			status = "conflict"
		}
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("resource_type", resourceType),
		slog.String("resource_id", resourceID),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))

		var validationErrs ValidationErrors
		var businessErr *BusinessRuleError
		if errors.As(err, &validationErrs) {
			attrs = append(attrs, slog.Int("validation_errors_count", len(validationErrs)))
		} else if errors.As(err, &businessErr) {
			attrs = append(attrs, slog.String("business_rule", businessErr.Rule))
		}
	}

	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok && requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

func (l *ServiceLogger) LogValidationError(ctx context.Context, operation string, validationErrors ValidationErrors) {
	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.Int("error_count", len(validationErrors)),
	}

	for i, err := range validationErrors {
		if i >= 5 {
			break
		}
		attrs = append(attrs, slog.Group(fmt.Sprintf("error_%d", i+1),
			slog.String("field", err.Field),
			slog.String("message", err.Message),
		))
	}

	l.logger.LogAttrs(ctx, slog.LevelWarn, "Validation failed", attrs...)
}

// ===== SECURITY LOGGING =====

type SecurityEventType string

const (
	SecurityEventInvalidToken       SecurityEventType = "invalid_token"
	SecurityEventLoginFailed        SecurityEventType = "login_failed"
	SecurityEventAccessCodeMismatch SecurityEventType = "access_code_mismatch"
)

type SecurityEvent struct {
	Type        SecurityEventType
	Subject     string
	Description string
	IPAddress   string
	Metadata    map[string]interface{}
}

func (l *ServiceLogger) LogSecurityEvent(ctx context.Context, event SecurityEvent) {
	attrs := []slog.Attr{
		slog.String("security_event", string(event.Type)),
		slog.String("subject", event.Subject),
		slog.String("description", event.Description),
		slog.Time("timestamp", time.Now()),
	}

	if event.IPAddress != "" {
		attrs = append(attrs, slog.String("ip_address", event.IPAddress))
	}

	for key, value := range event.Metadata {
		attrs = append(attrs, slog.Any("meta_"+key, value))
	}

	l.logger.LogAttrs(ctx, slog.LevelWarn, "Security: "+event.Description, attrs...)
}

// ===== HELPERS =====

// operationTimer measures one service call and logs it when done.
type operationTimer struct {
	logger       *ServiceLogger
	ctx          context.Context
	operation    string
	resourceType string
	start        time.Time
}

func (l *ServiceLogger) start(ctx context.Context, operation, resourceType string) *operationTimer {
	return &operationTimer{
		logger:       l,
		ctx:          ctx,
		operation:    operation,
		resourceType: resourceType,
		start:        time.Now(),
	}
}

func (t *operationTimer) done(resourceID string, err error) {
	t.logger.LogOperation(t.ctx, t.operation, t.resourceType, resourceID, time.Since(t.start), err)

	var validationErrs ValidationErrors
	if err != nil && errors.As(err, &validationErrs) {
		t.logger.LogValidationError(t.ctx, t.operation, validationErrs)
	}
}

// FormatError renders err as a JSON-friendly map for API responses.
func FormatError(err error) map[string]interface{} {
	if err == nil {
		return nil
	}

	result := map[string]interface{}{
		"message": err.Error(),
		"type":    "unknown",
	}

	var validationErrs ValidationErrors
	var businessErr *BusinessRuleError
	switch {
	case errors.As(err, &validationErrs):
		result["type"] = "validation"
		result["count"] = len(validationErrs)
		result["errors"] = validationErrs
	case errors.As(err, &businessErr):
		result["type"] = "business_rule"
		result["rule"] = businessErr.Rule
		if businessErr.Context != nil {
			result["context"] = businessErr.Context
		}
	case IsNotFound(err):
		result["type"] = "not_found"
	case IsUnauthorized(err):
		result["type"] = "unauthorized"
	case IsConflict(err):
		result["type"] = "conflict"
	}

	return result
}
