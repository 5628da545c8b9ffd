package transition

import "fmt"

// Move is an arc-standard transition.
type Move int

const (
	// Shift pushes the buffer front onto the stack.
	Shift Move = iota
	// LeftArc attaches the second stack element under the top.
	LeftArc
	// RightArc attaches the top stack element under the second.
	RightArc
)

var moveNames = [...]string{
	Shift:    "SHIFT",
	LeftArc:  "LEFT-ARC",
	RightArc: "RIGHT-ARC",
}

// String returns the class key used for the move by the classifier.
func (m Move) String() string {
	if m < 0 || int(m) >= len(moveNames) {
		return fmt.Sprintf("Move(%d)", int(m))
	}
	return moveNames[m]
}

// ParseMove is the inverse of Move.String.
func ParseMove(s string) (Move, error) {
	for m, name := range moveNames {
		if name == s {
			return Move(m), nil
		}
	}
	return 0, fmt.Errorf("unknown move %q", s)
}
