package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoSession is returned when Run is called without a wizard session.
	ErrNoSession = errors.New("tui: wizard session is required")
)
