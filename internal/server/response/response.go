// Package response writes JSON bodies for the data service.
//
// Successful responses carry the resource itself (a goal, a goal list, a
// percentage object) so the display client can decode them directly. Errors
// share one envelope: {"error":{"code":...,"message":...,"details":...}}.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"fundraiser-display/internal/apperrors"
	"fundraiser-display/internal/logging"
)

// ErrorBody is the envelope written for every failed request.
type ErrorBody struct {
	Error *Error `json:"error"`
}

// Error represents an API error with code, message, and optional details.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// JSON writes v as JSON with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing useful to do on encode failure.
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes v with 200 status.
func OK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, v)
}

// Created writes v with 201 status.
func Created(w http.ResponseWriter, v any) {
	JSON(w, http.StatusCreated, v)
}

// Fail writes an error envelope.
func Fail(w http.ResponseWriter, status int, code, message, details string) {
	JSON(w, status, ErrorBody{Error: &Error{Code: code, Message: message, Details: details}})
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, message, details string) {
	Fail(w, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

// ValidationFailed writes a 422 error response.
func ValidationFailed(w http.ResponseWriter, message, details string) {
	Fail(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", message, details)
}

// Unauthorized writes a 401 error response.
func Unauthorized(w http.ResponseWriter, message, details string) {
	Fail(w, http.StatusUnauthorized, "UNAUTHORIZED", message, details)
}

// NotFound writes a 404 error response.
func NotFound(w http.ResponseWriter, message, details string) {
	Fail(w, http.StatusNotFound, "NOT_FOUND", message, details)
}

// MethodNotAllowed writes a 405 error response.
func MethodNotAllowed(w http.ResponseWriter, method string) {
	Fail(w, http.StatusMethodNotAllowed,
		"METHOD_NOT_ALLOWED",
		"Method not allowed",
		"Method "+method+" is not supported for this endpoint",
	)
}

// InternalError writes a 500 error response. The cause is logged, never sent.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context()).Error().Err(err).Msg("request failed")
	Fail(w, http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"An unexpected error occurred",
	)
}

// ErrorFromType maps typed errors to the matching HTTP response.
func ErrorFromType(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound   *apperrors.NotFoundError
		validation *apperrors.ValidationError
	)
	switch {
	case errors.As(err, &notFound):
		NotFound(w, notFound.Error(), "")
	case errors.As(err, &validation):
		logging.FromContext(r.Context()).Debug().
			Str("field", validation.Field).
			Interface("value", validation.Value).
			Msg("validation failed")
		ValidationFailed(w, validation.Error(), validation.Field)
	default:
		InternalError(w, r, err)
	}
}
