package game

// InvalidConfigError reports construction parameters that cannot form a
// playable board. Fatal: no Game is returned alongside it.
type InvalidConfigError struct {
	Reason string
}

// [InvalidConfigError] implements [error]
func (e InvalidConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

// InvalidActionError reports an action whose precondition does not hold.
// Recoverable: the action is rejected and the game state is unchanged.
type InvalidActionError struct {
	Reason string
}

// [InvalidActionError] implements [error]
func (e InvalidActionError) Error() string {
	return "invalid action: " + e.Reason
}
