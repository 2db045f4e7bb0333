package entity

import "errors"

// Domain errors surfaced to callers. The transport layer maps these to
// status codes; nothing below this package swallows them.
var (
	ErrValidation        = errors.New("invalid input")
	ErrEmptyDeck         = errors.New("deck has no words")
	ErrInvalidState      = errors.New("session is not active")
	ErrPermission        = errors.New("operation not permitted")
	ErrDeckNotFound      = errors.New("deck not found")
	ErrWordNotFound      = errors.New("word not found")
	ErrMalformedResponse = errors.New("malformed model response")
	ErrRemoteService     = errors.New("remote service failure")
)
