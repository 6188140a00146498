package domain

import "errors"

var (
	// ErrInsufficientDeck is returned when a draw requests more cards than
	// the deck holds. Callers must not silently accept a short layout.
	ErrInsufficientDeck = errors.New("deck has fewer cards than requested")

	// ErrUnknownSpreadSize is returned when no fixed position set exists for
	// the requested layout length.
	ErrUnknownSpreadSize = errors.New("no position set defined for spread size")

	// ErrDiscussionNotFound is returned when a discussion id has no stored record.
	ErrDiscussionNotFound = errors.New("discussion not found")
)
