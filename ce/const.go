package ce

import (
	"errors"
)

var (
	ErrParseFailed       = errors.New("parse configuration document failed")
	ErrIncludeCycle      = errors.New("include cycle detected in configuration document")
	ErrFetchFailed       = errors.New("fetch configuration resource failed")
	ErrUnknownPluginType = errors.New("plugin type is not registered")
	ErrBindFailed        = errors.New("bind plugin parameters failed")
	ErrValidateFailed    = errors.New("plugin validation failed")
)
