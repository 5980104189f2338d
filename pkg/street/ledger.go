package street

import (
	"cmp"
	"slices"
)

// Kind of street furniture
type Kind int

const (
	Streetlight Kind = iota
	TrashCan
	Mailbox
	Newsstand
)

func (k Kind) String() string {
	switch k {
	case Streetlight:
		return "streetlight"
	case TrashCan:
		return "trash can"
	case Mailbox:
		return "mailbox"
	case Newsstand:
		return "newsstand"
	default:
		return "unknown"
	}
}

// Obstacle is a prop that pedestrians walk around. The renderer draws it at
// exactly Z.
type Obstacle struct {
	Z       float64
	Side    Side
	Kind    Kind
	Block   int  // block index the prop was generated for
	BusStop bool // streetlight carries a bus stop sign
}

// Ledger holds the obstacles of both sides. After Recycle each side is
// sorted by Z and lies in [cameraZ, cameraZ+windowLength).
type Ledger struct {
	sides     [2][]Obstacle
	positions [2][]float64
}

// Record appends an obstacle to a side. Order is restored by Recycle.
func (l *Ledger) Record(side Side, o Obstacle) {
	o.Side = side
	l.sides[side] = append(l.sides[side], o)
	l.positions[side] = append(l.positions[side], o.Z)
}

// Recycle moves every obstacle behind cameraZ one window ahead and sorts
// each side.
func (l *Ledger) Recycle(cameraZ, windowLength float64) (moved int) {
	for _, side := range Sides {
		obs := l.sides[side]
		for i := range obs {
			if obs[i].Z < cameraZ {
				obs[i].Z += windowLength
				moved++
			}
		}
		slices.SortStableFunc(obs, func(a, b Obstacle) int {
			return cmp.Compare(a.Z, b.Z)
		})

		pos := l.positions[side][:0]
		for _, o := range obs {
			pos = append(pos, o.Z)
		}
		l.positions[side] = pos
	}
	return moved
}

// Obstacles returns the side's obstacles. The slice is owned by the ledger.
func (l *Ledger) Obstacles(side Side) []Obstacle {
	return l.sides[side]
}

// Positions returns the z of each obstacle on a side, in ledger order
func (l *Ledger) Positions(side Side) []float64 {
	return l.positions[side]
}

func (l *Ledger) Len(side Side) int {
	return len(l.sides[side])
}

// Sorted reports whether a side is in ascending z order
func (l *Ledger) Sorted(side Side) bool {
	return slices.IsSortedFunc(l.sides[side], func(a, b Obstacle) int {
		return cmp.Compare(a.Z, b.Z)
	})
}
