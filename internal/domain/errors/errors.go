package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrInvalidStatus      = errors.New("invalid status transition")
	ErrSerialConflict     = errors.New("serial block already issued")
)
