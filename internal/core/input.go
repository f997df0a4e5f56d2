package core

// Action is a semantic game input, decoupled from physical keys. The
// platform layer translates key presses into actions; games only ever
// see these.
type Action int

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionDown // soft drop
	ActionRotateCW
	ActionRotateCCW
	ActionHardDrop
	ActionHold
	ActionConfirm // menu select
	ActionBack
	ActionRestart
	ActionQuit
	ActionPause

	actionCount
)

var actionNames = [actionCount]string{
	"None", "Left", "Right", "Down", "RotateCW", "RotateCCW",
	"HardDrop", "Hold", "Confirm", "Back", "Restart", "Quit", "Pause",
}

// String returns the action name.
func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame collects the actions pressed during one simulation tick.
// It is a bit set, so frames copy by value and clear without
// allocating.
type InputFrame struct {
	mask uint32
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as pressed this tick.
func (f *InputFrame) Set(a Action) {
	if a > ActionNone && a < actionCount {
		f.mask |= 1 << a
	}
}

// Has reports whether the action was pressed this tick.
func (f InputFrame) Has(a Action) bool {
	if a <= ActionNone || a >= actionCount {
		return false
	}
	return f.mask&(1<<a) != 0
}

// Clear empties the frame for the next tick.
func (f *InputFrame) Clear() {
	f.mask = 0
}
