package feed

import (
	"errors"
	"fmt"
)

var (
	ErrMissingRequiredOption = errors.New("missing required option")
	ErrMissingCollections    = errors.New("no collections configured, use collections")
	ErrInvalidOption         = errors.New("invalid option")
	ErrUnsupportedValue      = errors.New("unsupported value")
)

// MissingRequiredOptionError names the absent option. It matches ErrMissingRequiredOption.
type MissingRequiredOptionError struct {
	Option string
}

func (e *MissingRequiredOptionError) Error() string {
	return fmt.Sprintf("%s is required", e.Option)
}

func (e *MissingRequiredOptionError) Is(target error) bool {
	return target == ErrMissingRequiredOption
}
