package placeholder

import (
	"errors"
	"fmt"
	"net/http"

	"postboard/internal/domain/entity"
)

// Sentinel causes wrapped by FetchError.
var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrDecode           = errors.New("decode response")
	ErrBodyTooLarge     = errors.New("response body too large")
)

// FetchError describes a failed accessor call.
type FetchError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("placeholder %s %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("placeholder %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets a 404 match entity.ErrNotFound.
func (e *FetchError) Is(target error) bool {
	return target == entity.ErrNotFound && e.StatusCode == http.StatusNotFound
}
