package player

// Status represents the current state of the player widget. Media failures
// are logged through the configured logger rather than surfaced as a status.
type Status int

const (
	// StatusEmpty indicates the widget is mounted but no frame has been
	// decoded yet. Only the poster and the center play button are shown.
	StatusEmpty Status = iota

	// StatusLoading indicates the widget is waiting on the media element,
	// either for playback to begin or for a seek back to the start.
	StatusLoading

	// StatusPlaying indicates frames are advancing and the render loop is
	// active.
	StatusPlaying

	// StatusPaused indicates playback is halted with the last decoded frame
	// still on the surface.
	StatusPaused
)

// String returns a human-readable label for the status.
func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "Empty"
	case StatusLoading:
		return "Loading"
	case StatusPlaying:
		return "Playing"
	case StatusPaused:
		return "Paused"
	default:
		return "Unknown"
	}
}
