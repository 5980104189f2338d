package street

import "testing"

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate(42, 20, 10)
	b := Generate(42, 20, 10)
	if len(a) != 9 {
		t.Fatalf("generated %d blocks, want 9", len(a))
	}
	for i := range a {
		if a[i].Seed != b[i].Seed || len(a[i].Props) != len(b[i].Props) {
			t.Fatalf("block %d differs between runs", a[i].Index)
		}
		for j := range a[i].Props {
			if a[i].Props[j] != b[i].Props[j] {
				t.Fatalf("block %d prop %d differs", a[i].Index, j)
			}
		}
		if a[i].Buildings != b[i].Buildings {
			t.Fatalf("block %d buildings differ", a[i].Index)
		}
	}
}

func TestGenerateVariesWithSeedAndBlock(t *testing.T) {
	a := Generate(1, 20, 10)
	b := Generate(2, 20, 10)
	same := 0
	for i := range a {
		if a[i].Buildings == b[i].Buildings {
			same++
		}
	}
	if same == len(a) {
		t.Error("different world seeds produced identical buildings")
	}
	if a[0].Seed == a[1].Seed {
		t.Error("neighbouring blocks share a seed")
	}
}

func TestGenerateContent(t *testing.T) {
	const l = 20.0
	kinds := map[Kind]int{}
	for seed := uint64(0); seed < 50; seed++ {
		for _, b := range Generate(seed, l, 10) {
			if b.Index < 1 || b.Index > 9 {
				t.Fatalf("block index %d outside 1..9", b.Index)
			}
			if len(b.Props) < 2 || len(b.Props) > 3 {
				t.Fatalf("block has %d props", len(b.Props))
			}
			if b.Props[0].Kind != Streetlight || b.Props[0].Side != Left ||
				b.Props[1].Kind != Streetlight || b.Props[1].Side != Right {
				t.Fatalf("block %d does not start with its streetlights: %+v", b.Index, b.Props)
			}
			if b.Props[0].BusStop {
				t.Fatal("bus stop sign on the left streetlight")
			}
			for _, p := range b.Props[2:] {
				kinds[p.Kind]++
				if p.Kind == Mailbox && p.Side != Right {
					t.Fatal("mailbox on the left side")
				}
				if p.BusStop {
					t.Fatalf("bus stop sign on a %s", p.Kind)
				}
			}
			for _, bd := range b.Buildings {
				if bd.Height < 0.5 || bd.Height >= 2 || bd.Depth < 0.6 || bd.Depth >= 0.9 {
					t.Fatalf("building scale out of range: %+v", bd)
				}
				for _, c := range bd.Color {
					if c < 0.1 || c >= 0.25 {
						t.Fatalf("building colour out of range: %+v", bd.Color)
					}
				}
			}
		}
	}
	for _, k := range []Kind{TrashCan, Mailbox, Newsstand} {
		if kinds[k] == 0 {
			t.Errorf("no %s generated in 450 blocks", k)
		}
	}
}

func TestBlockObstacles(t *testing.T) {
	b := Block{Index: 3, Props: []Prop{
		{Kind: Streetlight, Side: Left, Offset: 0},
		{Kind: Streetlight, Side: Right, Offset: 10, BusStop: true},
		{Kind: Newsstand, Side: Left, Offset: -3},
	}}
	obs := b.Obstacles(40)
	want := []Obstacle{
		{Z: 40, Side: Left, Kind: Streetlight, Block: 3},
		{Z: 50, Side: Right, Kind: Streetlight, Block: 3, BusStop: true},
		{Z: 37, Side: Left, Kind: Newsstand, Block: 3},
	}
	for i := range want {
		if obs[i] != want[i] {
			t.Errorf("obstacle %d = %+v, want %+v", i, obs[i], want[i])
		}
	}
}

func TestGenerateTooFewBlocks(t *testing.T) {
	if got := Generate(1, 20, 1); got != nil {
		t.Errorf("Generate with one block = %v, want nil", got)
	}
}
