package core

// Action is a semantic user intent, decoupled from the key that produced it.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // move the menu cursor up
	ActionDown           // move the menu cursor down
	ActionConfirm        // Enter
	ActionBack           // Esc, leave the current view
	ActionPause          // Space, toggle the animation
	ActionStep           // advance one cycle while paused
	ActionFaster         // shorten the delay between cycles
	ActionSlower         // lengthen the delay between cycles
	ActionFinish         // run the remaining cycles without animation
	ActionHistory        // open run history
	ActionQuit           // q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionStep:
		return "Step"
	case ActionFaster:
		return "Faster"
	case ActionSlower:
		return "Slower"
	case ActionFinish:
		return "Finish"
	case ActionHistory:
		return "History"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions received between two rendered cycles.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Set marks an action as triggered.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether the action was triggered.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether no action is pending.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets the frame for the next cycle.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
