package cancerdx

import (
	"fmt"
	"net/http"

	"github.com/kailas-cloud/cancerdx/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrRecordNotFound     = domain.ErrRecordNotFound
	ErrStoreNotConfigured = domain.ErrStoreNotConfigured
	ErrInvalidRequest     = domain.ErrInvalidRequest
)

// APIError is a non-2xx response from the service.
type APIError struct {
	Status  int
	Message string

	body []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cancerdx: %d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// Is maps HTTP status classes onto the re-exported sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrRecordNotFound:
		return e.Status == http.StatusNotFound
	case ErrStoreNotConfigured:
		return e.Status == http.StatusServiceUnavailable
	case ErrInvalidRequest:
		return e.Status == http.StatusBadRequest
	}
	return false
}
