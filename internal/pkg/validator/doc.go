// Package validator checks usecase inputs with go-playground/validator.
//
// Failures come back as V10ValidationError, keyed by snake_case field name,
// which the router renders as the "errors" object of a 400 response.
package validator
