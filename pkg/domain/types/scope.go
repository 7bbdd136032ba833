package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// Scope is an OAuth access-grant identifier, e.g. the Google Calendar
// readonly scope URL.
type Scope string

// Validate checks if the Scope is valid
func (s Scope) Validate() error {
	if s == "" {
		return goerr.New("scope cannot be empty")
	}
	return nil
}

// String returns the string representation of Scope
func (s Scope) String() string {
	return string(s)
}
