package session

import (
	"context"
	"errors"
)

// ErrNoSession is returned by GetUser when the session has no authenticated
// user. Callers treat it as "anonymous", not as a failure.
var ErrNoSession = errors.New("no session")

// Store persists session state between requests. The identity fields and the
// flash messages live under separate keys so an anonymous visitor can still
// carry a flash message (e.g. after a failed login).
type Store interface {
	// GetUser returns the identity bound to the session, or ErrNoSession.
	GetUser(ctx context.Context, sid string) (userID int64, username string, err error)

	// SetUser binds an identity to the session.
	SetUser(ctx context.Context, sid string, userID int64, username string) error

	// ClearUser removes the identity but leaves flash messages intact.
	ClearUser(ctx context.Context, sid string) error

	// PushFlash queues a one-shot message under key.
	PushFlash(ctx context.Context, sid, key, message string) error

	// DrainFlash returns all queued messages and atomically clears them.
	// A drained message must never reappear on a later request.
	DrainFlash(ctx context.Context, sid string) (map[string]string, error)
}
