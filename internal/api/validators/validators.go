package validators

import "github.com/go-playground/validator/v10"

var v = validator.New(validator.WithRequiredStructEnabled())

// New returns the shared validator instance used for request payloads.
func New() *validator.Validate { return v }
