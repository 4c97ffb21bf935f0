package services

import "errors"

// Domain error sentinels. Handlers map these to HTTP statuses with errors.Is;
// services wrap them with context via fmt.Errorf and %w.
var (
	// ErrNotFound marks a user or match lookup miss.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument marks input the caller must correct (self-play,
	// unknown category, winner not a participant).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrForbidden marks an authorization failure (wrong confirmer,
	// non-admin rollback).
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidState marks a transition attempted on a match that is not
	// in the required status. Expected under confirm races; callers should
	// treat it as "already handled".
	ErrInvalidState = errors.New("invalid state")
)
