package simulation

import (
	"fmt"
	"io"
)

// Run steps the simulation ticks times, writing the readout every n ticks
// (never when every is zero) and a summary of the street at the end.
func (s *Simulation) Run(ticks, every int, w io.Writer) error {
	for i := 1; i <= ticks; i++ {
		s.Step()
		if every > 0 && i%every == 0 {
			if _, err := fmt.Fprintf(w, "tick %6d  z %9.2f  %s\n", s.ticks, s.Viewer.Position.Z(), s.Readout()); err != nil {
				return err
			}
		}
	}
	return s.Summary(w)
}

// Summary writes the world seed and the street statistics
func (s *Simulation) Summary(w io.Writer) error {
	st := s.City.Stats()
	_, err := fmt.Fprintf(w,
		"seed %d\nticks %d\nplaced left %d right %d\nplacement exhausted %d\nturned %d\nrecycled %d\nwindow shifts %d\nviolations %d\ndropped %d\n",
		s.seed, st.Ticks, st.Placed[0], st.Placed[1], st.Exhausted, st.Turned, st.Recycled, st.WindowShifts, st.Violations, st.Dropped)
	return err
}
