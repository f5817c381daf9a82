package service

import (
	"errors"
)

// Sentinel errors for the user-facing outcomes. Store failures are wrapped
// and propagated instead; callers decide whether to reply or log-and-drop.
var (
	// ErrRateLimited means the voter is over their daily ceiling.
	ErrRateLimited = errors.New("daily voting limit reached")

	// ErrUndoExpired means the tracked vote exists but was cast outside the
	// undo window.
	ErrUndoExpired = errors.New("undo window expired")

	// ErrNotFound means a referenced user could not be resolved.
	ErrNotFound = errors.New("not found")
)
