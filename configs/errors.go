package configs

import "errors"

var ErrValueNotFound = errors.New("value not found")

// LoadError ties a read, compile or validation failure to its file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return "config " + e.Path + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
