package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/mixplugin-go/internal/model"
	"github.com/mcoot/mixplugin-go/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeInvalidDays     = "INVALID_DAYS"
	CodeInvalidLocation = "INVALID_LOCATION"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodePlayerNotFound  = "PLAYER_NOT_FOUND"
	CodeWorldNotFound   = "WORLD_NOT_FOUND"
	CodeBanNotFound     = "BAN_NOT_FOUND"
	CodeHostUnavailable = "HOST_UNAVAILABLE"
	CodeInternalError   = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrWorldNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeWorldNotFound, "World not found"}}
	case errors.Is(err, model.ErrBanNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeBanNotFound, "No ban record for that player"}}
	case errors.Is(err, model.ErrInvalidDays):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDays, "Days must be a whole number"}}
	case errors.Is(err, model.ErrInvalidLocation):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidLocation, "Location must name a world"}}

	case errors.Is(err, auth.ErrInvalidAPIKey):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid API key"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewHostUnavailableError reports a failed call to the game server
func NewHostUnavailableError() error {
	return &httpError{http.StatusBadGateway, APIError{CodeHostUnavailable, "Game server did not respond"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
