/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Error taxonomy for the bytehunt search engine. Defines the configuration
sentinel used when the target payload cannot drive a search and the payload read
error returned when the target cannot be loaded at all.
*/

package core

import (
	"errors"
	"fmt"
)

// ErrConfiguration is returned when the target payload cannot define a search,
// most commonly because it is empty and the weighted distribution is undefined.
var ErrConfiguration = errors.New("configuration error")

// PayloadReadError reports a target payload that could not be read
// It wraps the underlying filesystem error so errors.Is keeps working
type PayloadReadError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *PayloadReadError) Error() string {
	return fmt.Sprintf("failed to read target payload %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *PayloadReadError) Unwrap() error {
	return e.Err
}
