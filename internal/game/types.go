package game

// State is the screen the manager is showing.
type State int

const (
	StateTitle State = iota
	StatePlaying
	StateCountdown
	StateEditor
)

func (s State) String() string {
	switch s {
	case StateTitle:
		return "title"
	case StatePlaying:
		return "playing"
	case StateCountdown:
		return "countdown"
	case StateEditor:
		return "editor"
	default:
		return "unknown"
	}
}
