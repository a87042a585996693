package game

import "fmt"

// InvalidActionError reports a command that is illegal in the current state
// (suggesting outside a room, malformed accusation input). Recoverable: the
// driving loop re-prompts, nothing in the core retries.
type InvalidActionError struct {
	Reason string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action: %s", e.Reason)
}
