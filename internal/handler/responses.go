package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/EasyPost_Go/internal/domain"
	"github.com/osse101/EasyPost_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Log the error - we can't write to response at this point since headers are sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	// Write the buffer to the response
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	// Generic messages
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgUnknownError         = "Unknown error"
	ErrMsgInvalidRequestError  = "Invalid request. Please check your inputs."
	ErrMsgResourceNotFoundErr  = "Resource not found."
	ErrMsgTooManyRequestsError = "Too many requests. Please try again later."

	// User messages
	ErrMsgUserNotFoundError      = "User not found"
	ErrMsgUserAlreadyExistsError = "A user with that username or email already exists"
	ErrMsgInactiveUserError      = "This account has been deactivated"

	// Auth messages
	ErrMsgInvalidCredentialsError = "Invalid username or password"

	// Linking messages
	ErrMsgInvalidPlatformError  = "Invalid platform"
	ErrMsgAccountNotFoundError  = "No linked account found for that platform"
	ErrMsgExchangeFailedError   = "Could not complete the link with the platform. Please try again."
	ErrMsgRefreshFailedError    = "Could not refresh the platform token. Please re-link the account."
	ErrMsgStateInvalidError     = "The linking session expired. Please start over."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
// This function converts internal service errors to appropriate HTTP status codes and messages
// that users can understand and act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	// Check for specific domain errors
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusConflict, ErrMsgUserAlreadyExistsError
	case errors.Is(err, domain.ErrInactiveUser):
		return http.StatusForbidden, ErrMsgInactiveUserError
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrMsgInvalidCredentialsError
	case errors.Is(err, domain.ErrInvalidPlatform):
		return http.StatusBadRequest, ErrMsgInvalidPlatformError
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, ErrMsgAccountNotFoundError
	case errors.Is(err, domain.ErrInvalidOrExpiredState):
		return http.StatusBadRequest, ErrMsgStateInvalidError
	case errors.Is(err, domain.ErrExchangeFailed):
		return http.StatusBadGateway, ErrMsgExchangeFailedError
	case errors.Is(err, domain.ErrRefreshFailed):
		return http.StatusBadGateway, ErrMsgRefreshFailedError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	default:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}
}

// respondServiceError logs a failed service call and writes the mapped
// user-facing error response.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error("Service call failed", "operation", opName, "error", err)
	} else {
		log.Warn("Request rejected", "operation", opName, "error", err)
	}
	respondError(w, status, message)
}
