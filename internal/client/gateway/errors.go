package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuthenticationFailed is terminal: the user is logged out and the
	// call must not be retried.
	ErrAuthenticationFailed = errors.New("authentication failed")

	ErrNotLoggedIn              = errors.New("no stored credentials")
	ErrNoRefreshCredential      = errors.New("no refresh credential")
	ErrRefreshRejected          = errors.New("refresh rejected")
	ErrMalformedRefreshResponse = errors.New("refresh response carries no access credential")
)

// RefreshError is a non-2xx answer of the token refresh endpoint.
type RefreshError struct {
	Status  int
	Message string
}

func (e *RefreshError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("refresh rejected: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("refresh rejected: %d %s", e.Status, e.Message)
}

func (e *RefreshError) Is(target error) bool {
	return target == ErrRefreshRejected
}
