package service

import "errors"

// Error kinds raised by services. The HTTP adapter translates each to a
// status code; services never see status codes.
var (
	ErrInvalid       = errors.New("invalid request")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("already exists")
	ErrExpired       = errors.New("expired")
	ErrHasDependents = errors.New("has dependent tasks")
)
