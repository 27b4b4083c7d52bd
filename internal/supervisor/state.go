// Package supervisor launches the worker process and owns its handle for
// the rest of the application's lifetime.
package supervisor

// State represents the worker lifecycle as observed by the supervisor.
type State int

const (
	// StateNotStarted is the initial state, and the state after a failed launch.
	StateNotStarted State = iota

	// StateSpawning indicates a launch is in progress.
	StateSpawning

	// StateRunning indicates the worker was spawned and its handle stored.
	// The supervisor does not watch the worker, so this is not proof of liveness.
	StateRunning

	// StateStopped indicates the host terminated the worker on exit.
	StateStopped
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateSpawning:
		return "spawning"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// IsActive returns true if a worker is, or is about to be, running.
func (s State) IsActive() bool {
	return s == StateSpawning || s == StateRunning
}

// IsTerminal returns true if the state is a terminal state (stopped).
func (s State) IsTerminal() bool {
	return s == StateStopped
}
