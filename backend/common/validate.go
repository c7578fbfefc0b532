package common

import "github.com/go-playground/validator/v10"

// Validate is the shared validator instance for ad-hoc field checks outside
// gin's binding layer.
var Validate = validator.New()
