package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/go-school-insights/internal/errors"
)

const maxBodyBytes = 1 << 20

// errorResponse is the body of every error reply.
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func writeUnauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeDetail(w, http.StatusUnauthorized, detail)
}

// requestError is a client error carrying its HTTP status.
type requestError struct {
	status int
	detail string
}

func (e *requestError) Error() string {
	return e.detail
}

func (e *requestError) Unwrap() error {
	return apperrors.ErrInvalidRequest
}

func malformedBody(format string, args ...any) error {
	return &requestError{status: http.StatusBadRequest, detail: fmt.Sprintf(format, args...)}
}

func unprocessable(format string, args ...any) error {
	return &requestError{status: http.StatusUnprocessableEntity, detail: fmt.Sprintf(format, args...)}
}

// decodeJSONBody reads a JSON object into dst. Syntax errors are malformed
// bodies (400); a missing body, a non-object or a mistyped field is
// unprocessable (422).
func decodeJSONBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &requestError{status: http.StatusRequestEntityTooLarge, detail: "request body too large"}
		}
		return malformedBody("reading request body: %v", err)
	}
	if strings.TrimSpace(string(body)) == "" {
		return unprocessable("request body is required")
	}

	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			if typeErr.Field == "" {
				return unprocessable("request body must be a JSON object")
			}
			return unprocessable("field %s must be of type %s", typeErr.Field, typeErr.Type)
		}
		return malformedBody("JSON decode error: %v", err)
	}
	return nil
}

// writeError maps err onto a status code and detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		writeDetail(w, reqErr.status, reqErr.detail)
		return
	}

	switch {
	case apperrors.Is(err, apperrors.ErrInvalidCredentials):
		writeUnauthorized(w, DetailInvalidCredential)
	case apperrors.Is(err, apperrors.ErrTableNotFound):
		writeDetail(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
