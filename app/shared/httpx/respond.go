// Package httpx holds the JSON envelope shared by every API handler.
// Every body carries a boolean "success" discriminator.
package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Black-And-White-Club/retro-arcade/app/shared/attr"
)

const (
	MessageRouteNotFound   = "Route not found"
	MessageInternalError   = "Internal server error"
	MessageTooManyRequests = "Too many requests"
	MessageInvalidBody     = "Invalid request body"
)

// MessageResponse is the body of acknowledgements and failures.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteJSON encodes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; nothing useful left to tell the caller.
		slog.Default().Error("Failed to encode response", attr.Error(err))
	}
}

// WriteMessage writes {success, message}.
func WriteMessage(w http.ResponseWriter, status int, success bool, message string) {
	WriteJSON(w, status, MessageResponse{Success: success, Message: message})
}

// NotFound writes a 404 failure with message.
func NotFound(w http.ResponseWriter, message string) {
	WriteMessage(w, http.StatusNotFound, false, message)
}

// BadRequest writes a 400 failure with message.
func BadRequest(w http.ResponseWriter, message string) {
	WriteMessage(w, http.StatusBadRequest, false, message)
}

// InternalError logs err server side and writes the generic 500 body.
// The error detail never reaches the client.
func InternalError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.ErrorContext(r.Context(), "Request failed",
		attr.ExtractRequestID(r.Context()),
		attr.String("method", r.Method),
		attr.String("path", r.URL.Path),
		attr.Error(err),
	)
	WriteMessage(w, http.StatusInternalServerError, false, MessageInternalError)
}

// RouteNotFound is the catch-all handler for unmatched routes.
func RouteNotFound(w http.ResponseWriter, _ *http.Request) {
	NotFound(w, MessageRouteNotFound)
}
