package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/skillshare-client/internal/errors"
)

const maxErrorBody = 1 << 20

// Error is a non-2xx answer from the API.
type Error struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// Unwrap maps well-known statuses onto the shared sentinels.
func (e *Error) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return apperrors.ErrSessionExpired
	case http.StatusNotFound:
		return apperrors.ErrNotFound
	case http.StatusBadRequest:
		return apperrors.ErrInvalidRequest
	default:
		if e.StatusCode >= http.StatusInternalServerError {
			return apperrors.ErrInternal
		}
		return nil
	}
}

// errorFromResponse builds an *Error, preferring the server's message field.
func errorFromResponse(resp *http.Response) *Error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	if resp.Request != nil {
		apiErr.RequestID = resp.Request.Header.Get(RequestIDHeader)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			apiErr.Message = payload.Message
		} else {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))
	return apiErr
}
