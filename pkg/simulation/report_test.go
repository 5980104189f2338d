package simulation

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunPrintsReadoutsAndSummary(t *testing.T) {
	s := newTestSimulation(t, nil)

	var buf bytes.Buffer
	if err := s.Run(30, 10, &buf); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := buf.String()

	if got := strings.Count(out, "tick "); got != 3 {
		t.Errorf("got %d readout lines, want 3:\n%s", got, out)
	}
	for _, want := range []string{"seed 2024", "ticks 30", "violations 0", "dropped 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if s.Ticks() != 30 {
		t.Errorf("Ticks() = %d, want 30", s.Ticks())
	}
}

func TestRunQuiet(t *testing.T) {
	s := newTestSimulation(t, nil)

	var buf bytes.Buffer
	if err := s.Run(5, 0, &buf); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.Contains(buf.String(), "tick ") {
		t.Errorf("readouts written with every=0:\n%s", buf.String())
	}
}
