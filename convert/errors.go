package convert

import "errors"

// ErrTypeConversion is returned when a node's shape is incompatible with the requested type.
var ErrTypeConversion = errors.New("type conversion failed")

// ErrUnknownType is returned when a structured type ID has no registered Go type.
var ErrUnknownType = errors.New("unknown structured type")

// ErrInvalidValue is returned when a structured value fails its validation.
var ErrInvalidValue = errors.New("invalid configuration value")
