package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/userkit/pkg/binder"
	"github.com/dmitrymomot/userkit/pkg/logger"
	"github.com/dmitrymomot/userkit/pkg/validator"
)

// invalidBodyMessage is shown for any malformed request body.
const invalidBodyMessage = "Invalid request body"

// ErrorInfo contains classified error information
type ErrorInfo struct {
	StatusCode int
	Message    string
	Detail     string
	LogLevel   slog.Level
}

// coder is implemented by provider errors that carry an error code.
type coder interface {
	ErrorCode() string
}

func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

// determineLogLevel maps HTTP status codes to appropriate log levels
func determineLogLevel(statusCode int) slog.Level {
	if isClientError(statusCode) {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// classifyError analyzes the error and returns structured error information.
// Unknown errors are treated as collaborator failures: 400 with their own
// message.
func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusBadRequest,
		Message:    err.Error(),
		Detail:     err.Error(),
	}

	var httpErr HTTPError
	var c coder

	switch {
	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Message
	case validator.IsValidationError(err):
		verr, _ := validator.ExtractValidationError(err)
		info.Message = verr.Message
		info.Detail = validator.ErrValidationFailed.Error()
	case binder.IsBindError(err):
		info.Message = invalidBodyMessage
	case errors.As(err, &c) && c.ErrorCode() != "":
		info.Detail = c.ErrorCode()
	}

	info.LogLevel = determineLogLevel(info.StatusCode)
	return info
}

func errorEnvelope(info ErrorInfo) Response {
	return JSON(info.Message,
		WithJSONStatus(info.StatusCode),
		WithErrorDetail(info.Detail),
	)
}

func logError(log *slog.Logger, ctx Context, err error, info ErrorInfo) {
	r := ctx.Request()

	log.LogAttrs(r.Context(), info.LogLevel, "request error",
		logger.RequestID(ctx.RequestID()),
		logger.Error(err),
		slog.Int("status_code", info.StatusCode),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		logger.Component("error_handler"),
	)
}

// NewErrorHandler creates the error handler shared by all account routes.
// It logs every failure with the request id and renders the error envelope.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		info := classifyError(err)
		logError(log, ctx, err, info)

		if renderErr := errorEnvelope(info).Render(ctx.ResponseWriter(), ctx.Request()); renderErr != nil {
			log.Error("failed to render error response",
				logger.RequestID(ctx.RequestID()),
				logger.Error(renderErr),
				logger.Event("render_error_response"),
			)
		}
	}
}
