// Package common defines shared constants and sentinel errors used across
// repository, service and transport layers. Callers should use errors.Is to
// match these values, or KindOf to classify them.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Input rejected by a validation schema.
	ErrorValidation = errors.New("validation error")

	// Credential errors.
	ErrInvalidPassword = errors.New("invalid password")

	// Token errors. Expired, tampered and malformed tokens all yield
	// ErrInvalidToken.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenSigning = errors.New("token signing failed")
)
