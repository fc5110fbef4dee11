package shared

import (
	"errors"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOutOfRange      = errors.New("out of range")
	ErrUnsupportedType = errors.New("unsupported type")
)
