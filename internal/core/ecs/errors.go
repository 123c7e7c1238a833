package ecs

import "errors"

var (
	ErrDuplicateComponent = errors.New("duplicate component")
	ErrMissingComponent   = errors.New("missing component")
	ErrDuplicatePoolType  = errors.New("duplicate pool type")
)
