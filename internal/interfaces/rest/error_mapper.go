package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/groupgate/internal/application"
)

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BuildErrorResponse maps an error to its status code and envelope.
// Only the service-level message reaches the client; wrapped causes are logged.
func BuildErrorResponse(err error) (int, ErrorResponse) {
	statusCode := application.ToHTTPStatus(err)
	message := "An internal error occurred"
	if svcErr, ok := application.IsServiceError(err); ok {
		message = svcErr.Message
	}

	return statusCode, ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    application.ToErrorCode(err),
			Message: message,
		},
	}
}

// WriteError maps application errors to HTTP responses
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	statusCode, response := BuildErrorResponse(err)

	switch {
	case application.HasCode(err, application.ErrCodeReconciliationRequired):
		logger.Error("request needs reconciliation", "action", "RECONCILIATION_REQUIRED", "error", err)
	case statusCode >= http.StatusInternalServerError:
		logger.Error("request failed", "code", response.Error.Code, "error", err)
	default:
		logger.Debug("request rejected", "code", response.Error.Code, "error", err)
	}

	WriteJSON(w, statusCode, response, logger)
}

func WriteJSON(w http.ResponseWriter, statusCode int, body any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("failed to encode response", "error", err)
	}
}
