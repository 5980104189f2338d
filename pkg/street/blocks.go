package street

import "github.com/iamjwc/driving-without-turning/internal/mathx"

// Prop placement within a block, as fractions of the block length measured
// from the block's left streetlight.
const (
	rightLightAt = 0.5
	trashCanAt   = 0.25
	mailboxAt    = 0.4
	newsstandAt  = -0.15
)

// Prop is a piece of street furniture positioned relative to its block
type Prop struct {
	Kind    Kind
	Side    Side
	Offset  float64
	BusStop bool
}

// Building is the skyscraper drawn beside a block
type Building struct {
	Side       Side
	Height     float64 // scale, 0.5 to 2
	Depth      float64 // scale, 0.6 to 0.9
	Color      [3]float64
	WindowSeed uint64
}

// Block is the generated content of one road block. Blocks are immutable
// once generated.
type Block struct {
	Index     int
	Seed      uint64
	Props     []Prop
	Buildings [2]Building
}

// BlockSeed derives the generator seed of one block
func BlockSeed(worldSeed uint64, index int) uint64 {
	return mathx.Hash2D(worldSeed, index, 0)
}

// Generate builds the content of blocks 1..blockCount-1. The same world
// seed always yields the same blocks.
func Generate(worldSeed uint64, blockLength float64, blockCount int) []Block {
	if blockCount < 2 {
		return nil
	}
	blocks := make([]Block, 0, blockCount-1)
	for i := 1; i < blockCount; i++ {
		blocks = append(blocks, generateBlock(worldSeed, i, blockLength))
	}
	return blocks
}

func generateBlock(worldSeed uint64, index int, blockLength float64) Block {
	seed := BlockSeed(worldSeed, index)
	rng := mathx.NewRand(seed)
	b := Block{Index: index, Seed: seed}

	b.Props = append(b.Props,
		Prop{Kind: Streetlight, Side: Left, Offset: 0},
		Prop{Kind: Streetlight, Side: Right, Offset: rightLightAt * blockLength},
	)

	switch roll := rng.Intn(10); {
	case roll <= 1:
		b.Props = append(b.Props, Prop{Kind: TrashCan, Side: Left, Offset: trashCanAt * blockLength})
	case roll <= 3:
		b.Props = append(b.Props, Prop{Kind: TrashCan, Side: Right, Offset: trashCanAt * blockLength})
	case roll == 4:
		b.Props = append(b.Props, Prop{Kind: Mailbox, Side: Right, Offset: mailboxAt * blockLength})
	case roll <= 6:
		b.Props = append(b.Props, Prop{Kind: Newsstand, Side: Left, Offset: newsstandAt * blockLength})
	case roll <= 8:
		b.Props = append(b.Props, Prop{Kind: Newsstand, Side: Right, Offset: newsstandAt * blockLength})
	}

	if rng.Intn(7) == 0 {
		b.Props[1].BusStop = true
	}

	for _, side := range Sides {
		b.Buildings[side] = Building{
			Side:   side,
			Height: rng.Next(0.5, 2.0),
			Depth:  rng.Next(0.6, 0.9),
			Color: [3]float64{
				rng.Next(0.1, 0.25),
				rng.Next(0.1, 0.25),
				rng.Next(0.1, 0.25),
			},
			WindowSeed: rng.NextU64(),
		}
	}
	return b
}

// Obstacles positions the block's props for a block whose left streetlight
// sits at origin.
func (b *Block) Obstacles(origin float64) []Obstacle {
	obs := make([]Obstacle, 0, len(b.Props))
	for _, p := range b.Props {
		obs = append(obs, Obstacle{
			Z:       origin + p.Offset,
			Side:    p.Side,
			Kind:    p.Kind,
			Block:   b.Index,
			BusStop: p.BusStop,
		})
	}
	return obs
}
