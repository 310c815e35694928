package session

// Status represents the connection and execution state of a kernel.
type Status string

const (
	// StatusUnknown indicates the kernel state has not been reported yet.
	StatusUnknown Status = "unknown"

	// StatusStarting indicates the kernel process is starting up.
	StatusStarting Status = "starting"

	// StatusIdle indicates the kernel is ready for execution requests.
	StatusIdle Status = "idle"

	// StatusBusy indicates the kernel is executing code.
	StatusBusy Status = "busy"

	// StatusRestarting indicates a restart request is in progress.
	StatusRestarting Status = "restarting"

	// StatusAutorestarting indicates the kernel died and is being
	// restarted automatically.
	StatusAutorestarting Status = "autorestarting"

	// StatusTerminating indicates the kernel is shutting down.
	StatusTerminating Status = "terminating"

	// StatusDead indicates the kernel process has exited and will not
	// be restarted.
	StatusDead Status = "dead"

	// StatusConnecting indicates the session has started but no kernel
	// connection has been established yet.
	StatusConnecting Status = "connecting"
)

// String returns the status token.
func (s Status) String() string {
	if s == "" {
		return string(StatusUnknown)
	}
	return string(s)
}

// Terminal reports whether the status is a final state.
func (s Status) Terminal() bool {
	return s == StatusDead
}
