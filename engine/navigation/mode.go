package navigation

import "strings"

// Mode is the navigation mode of a controller.
type Mode int

const (
	// ModeEgo is first-person look-around navigation.
	ModeEgo Mode = iota
	// ModeExamine orbits the camera around the revolve point.
	ModeExamine
	// ModeTrackball rotates the camera around the revolve point like an arcball.
	ModeTrackball
	// ModeNone disables navigation; the controller never attaches listeners.
	ModeNone
)

func (m Mode) String() string {
	switch m {
	case ModeEgo:
		return "ego"
	case ModeExamine:
		return "examine"
	case ModeTrackball:
		return "trackball"
	case ModeNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseMode converts a navigation descriptor mode string into a Mode.
// "walk" is the descriptor name of first-person navigation and maps to ModeEgo.
// Unrecognized values fall back to ModeExamine.
//
// Parameters:
//   - s: the mode string (case-insensitive)
//
// Returns:
//   - Mode: the parsed mode
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ego", "walk":
		return ModeEgo
	case "examine":
		return ModeExamine
	case "trackball":
		return ModeTrackball
	case "none":
		return ModeNone
	default:
		return ModeExamine
	}
}

// Action is the pointer gesture in progress.
type Action int

const (
	ActionNone Action = iota
	ActionTranslate
	ActionDolly
	ActionRotate
	ActionLookAround
	ActionTrackball
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionTranslate:
		return "translate"
	case ActionDolly:
		return "dolly"
	case ActionRotate:
		return "rotate"
	case ActionLookAround:
		return "lookaround"
	case ActionTrackball:
		return "trackball"
	default:
		return "unknown"
	}
}

// primaryAction is the gesture the primary button starts in a mode.
func primaryAction(m Mode) Action {
	switch m {
	case ModeExamine:
		return ActionRotate
	case ModeTrackball:
		return ActionTrackball
	default:
		return ActionLookAround
	}
}
