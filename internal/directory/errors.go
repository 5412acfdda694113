package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/go-github/v57/github"

	"github.com/Iron-Ham/ghlookup/internal/errors"
)

// mapError converts an error returned by go-github into one of the typed
// lookup errors.
func mapError(op errors.Operation, err error, login, term string, timeout time.Duration) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return errors.NewTimeoutError(string(op), timeout).WithCause(err)
	case errors.Is(err, context.Canceled):
		return newDirectoryError(op, "request canceled", errors.ErrCanceled, login, term).
			WithSeverity(errors.SeverityInfo)
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return newDirectoryError(op, rateErr.Message, errors.ErrRateLimited, login, term).
			WithStatusCode(statusOf(rateErr.Response)).
			WithSeverity(errors.SeverityWarning).
			WithRetryable(true)
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return newDirectoryError(op, abuseErr.Message, errors.ErrRateLimited, login, term).
			WithStatusCode(statusOf(abuseErr.Response)).
			WithSeverity(errors.SeverityWarning).
			WithRetryable(true)
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		status := statusOf(respErr.Response)
		switch {
		case status == http.StatusNotFound && op == errors.OpGetUser:
			return errors.NewNotFoundError("user", login).WithCause(err)
		case status == http.StatusUnprocessableEntity:
			return newDirectoryError(op, respErr.Message, errors.ErrInvalidInput, login, term).
				WithStatusCode(status).
				WithSeverity(errors.SeverityWarning)
		case status >= 500:
			return newDirectoryError(op, respErr.Message, errors.ErrDirectoryUnavailable, login, term).
				WithStatusCode(status)
		default:
			return newDirectoryError(op, respErr.Message, err, login, term).
				WithStatusCode(status)
		}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return newDirectoryError(op, "could not decode response", errors.ErrMalformedResponse, login, term).
			WithSeverity(errors.SeverityError).
			WithUserFacing(false)
	}

	// Anything left is a transport failure.
	return newDirectoryError(op, err.Error(), errors.ErrDirectoryUnavailable, login, term).
		WithRetryable(true).
		WithUserFacing(false)
}

func newDirectoryError(op errors.Operation, message string, cause error, login, term string) *errors.DirectoryError {
	return errors.NewDirectoryError(op, message, cause).WithLogin(login).WithTerm(term)
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
