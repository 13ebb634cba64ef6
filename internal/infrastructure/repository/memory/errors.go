package memory

import "errors"

// ErrDuplicate is returned when an insert collides with an existing key.
var ErrDuplicate = errors.New("duplicate key")

func compositeKey(left, right string) string {
	return left + "::" + right
}
