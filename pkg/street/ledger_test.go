package street

import "testing"

func zs(obs []Obstacle) []float64 {
	out := make([]float64, len(obs))
	for i, o := range obs {
		out[i] = o.Z
	}
	return out
}

func TestLedgerRecycleWrapsAndSorts(t *testing.T) {
	var l Ledger
	for _, z := range []float64{150, 10, 90, 40} {
		l.Record(Left, Obstacle{Z: z, Kind: Streetlight})
	}
	l.Record(Right, Obstacle{Z: 120, Kind: Mailbox})

	moved := l.Recycle(50, 200)
	if moved != 2 {
		t.Errorf("moved = %d, want 2", moved)
	}

	want := []float64{90, 150, 210, 240}
	got := zs(l.Obstacles(Left))
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("left side = %v, want %v", got, want)
		}
	}
	pos := l.Positions(Left)
	for i := range want {
		if pos[i] != want[i] {
			t.Fatalf("positions = %v, want %v", pos, want)
		}
	}
	if !l.Sorted(Left) || !l.Sorted(Right) {
		t.Error("ledger not sorted after recycle")
	}
	if o := l.Obstacles(Right)[0]; o.Side != Right || o.Kind != Mailbox {
		t.Errorf("right obstacle = %+v", o)
	}
}

func TestLedgerRecordDoesNotSort(t *testing.T) {
	var l Ledger
	l.Record(Right, Obstacle{Z: 30})
	l.Record(Right, Obstacle{Z: 20})
	if l.Sorted(Right) {
		t.Error("record sorted the side")
	}
	if l.Len(Right) != 2 || l.Len(Left) != 0 {
		t.Errorf("lengths = %d/%d", l.Len(Left), l.Len(Right))
	}
}

func TestLedgerRecycleSmallSides(t *testing.T) {
	var l Ledger
	if moved := l.Recycle(100, 200); moved != 0 {
		t.Errorf("empty ledger moved %d", moved)
	}
	l.Record(Left, Obstacle{Z: 250})
	l.Recycle(100, 200)
	if got := l.Obstacles(Left)[0].Z; got != 250 {
		t.Errorf("single obstacle ahead of camera moved to %v", got)
	}
}

func TestLedgerRecycleKeepsCount(t *testing.T) {
	var l Ledger
	for i := 0; i < 12; i++ {
		l.Record(Left, Obstacle{Z: float64(i) * 17})
	}
	for cam := 0.0; cam < 5000; cam += 1.7 {
		l.Recycle(cam, 200)
		if l.Len(Left) != 12 {
			t.Fatalf("count changed to %d at camera %v", l.Len(Left), cam)
		}
		if !l.Sorted(Left) {
			t.Fatalf("unsorted at camera %v", cam)
		}
		for _, o := range l.Obstacles(Left) {
			if o.Z < cam || o.Z >= cam+200 {
				t.Fatalf("obstacle at %v outside [%v, %v)", o.Z, cam, cam+200)
			}
		}
	}
}
