package types

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidEndpoint = errors.New("invalid endpoint")
	ErrNoEndpoint      = errors.New("no endpoint")
	ErrInvalidProfile  = errors.New("invalid profile")
	ErrInvalidRequest  = errors.New("invalid request")

	ErrInvalidBackend = errors.New("invalid backend")
	ErrRemote         = errors.New("remote error")
	ErrBusInUse       = errors.New("event already served on bus")
)

func Err(typedError error, innerErr error, msgTemplate string, args ...any) error {
	if msgTemplate == "" {
		return errors.Join(typedError, innerErr)
	} else {
		return errors.Join(typedError, innerErr, fmt.Errorf(msgTemplate, args...))
	}
}
