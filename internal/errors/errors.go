package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrIdeaNotFound is returned when an idea does not exist or the caller
	// is not allowed to see it. Ownership misses collapse into this error on
	// purpose so idea ids cannot be probed for existence.
	ErrIdeaNotFound = errors.New("idea not found")
	// ErrAlreadyReviewed is returned when a decision is attempted on an idea
	// that has already left the pending status.
	ErrAlreadyReviewed = errors.New("idea already reviewed")
	// ErrIdeaNotEditable is returned when an owner edits or deletes an idea
	// that is no longer pending.
	ErrIdeaNotEditable = errors.New("idea is no longer editable")
	// ErrCommentRequired is returned when a decision is submitted without a comment.
	ErrCommentRequired = errors.New("review comment is required")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when registering or updating to an email that
	// already belongs to another account.
	ErrEmailTaken = errors.New("email already in use")
	// ErrForbidden is returned when the caller lacks the role for the operation.
	ErrForbidden = errors.New("forbidden")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrIdeaNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "IDEA_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrAlreadyReviewed):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_REVIEWED")
	case errors.Is(err, ErrIdeaNotEditable):
		return NewHTTPError(http.StatusConflict, err.Error(), "IDEA_NOT_EDITABLE")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrCommentRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "COMMENT_REQUIRED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
