package interact

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("interact: aborted")
	// ErrNoAnswer is returned by non-interactive drivers asked for free input.
	ErrNoAnswer = errors.New("interact: no answer available")
)
