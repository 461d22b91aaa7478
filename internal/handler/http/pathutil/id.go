package pathutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned for identifiers that are not positive integers.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a positive integer identifier such as a userId form value
// or a {id} path segment.
func ParseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
