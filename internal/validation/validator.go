package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator. Struct rules live in the field tags on
// the request types; cross-field checks (cart totals, measurement
// completeness) belong to the shipping and fx packages, which own those
// invariants.
func New() *validatorv10.Validate {
	return validatorv10.New()
}
