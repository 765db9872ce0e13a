package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/common"
)

var (
	ErrUnavailable       = common.ErrorUnavailable
	ErrUnauthorized      = common.ErrorUnauthorized
	ErrNotFound          = common.ErrorNotFound
	ErrInsufficientStock = errors.New("insufficient stock")
)

// insufficientStockPhrase is what the storefront puts in msg when an order
// line exceeds the available quantity.
const insufficientStockPhrase = "yetarli miqdor mavjud emas"

// APIError is a non-2xx response. Message is the server's msg field.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error: %d %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnavailable:
		return e.Status >= http.StatusInternalServerError
	case ErrInsufficientStock:
		return strings.Contains(e.Message, insufficientStockPhrase)
	}
	return false
}

func mapResponse(status int, body []byte) error {
	if status >= 200 && status <= 299 {
		return nil
	}
	return &APIError{Status: status, Message: common.ServerMessage(body)}
}
