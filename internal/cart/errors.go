package cart

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("cart: product not found")
	ErrOutOfStock      = errors.New("cart: product out of stock")
	ErrInvalidQuantity = errors.New("cart: quantity out of range")
	ErrPersist         = errors.New("cart: persist failed")
)

// DeserializationError reports a stored payload that could not be decoded.
// The store is left empty and usable when Restore returns it.
type DeserializationError struct {
	Key string
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("cart: payload under key[%s] is not a valid cart: %v", e.Key, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}
