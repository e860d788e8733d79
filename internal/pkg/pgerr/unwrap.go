package pgerr

import "github.com/pkg/errors"

func asAPIError(err error, target **APIError) bool {
	if err == nil {
		return false
	}
	return errors.As(err, target)
}

// From returns the *APIError carried by err, if any.
func From(err error) (*APIError, bool) {
	var pe *APIError
	if !asAPIError(err, &pe) {
		return nil, false
	}
	return pe, true
}
