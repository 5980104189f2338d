// Package street keeps a fixed set of road blocks, street furniture and
// pedestrians aligned with a camera that advances without bound. Positions
// behind the camera are moved one window length ahead, so every list stays
// the same size for the whole session.
package street

// Side of the street. Looking down +z, Left is at +x.
type Side int

const (
	Left Side = iota
	Right
)

// Sides lists both sides in ledger order
var Sides = [...]Side{Left, Right}

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Direction is the default walking direction of pedestrians on this side
func (s Side) Direction() int {
	if s == Left {
		return 1
	}
	return -1
}
