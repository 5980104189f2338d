package engine

// Rect is a viewport in framebuffer pixels, origin bottom left
type Rect struct {
	X, Y          int32
	Width, Height int32
}

// SquareRect is the square viewport the street is drawn into
type SquareRect struct {
	X, Y, Size int32
}

// Layout splits the framebuffer into the street view and the panel
type Layout struct {
	Scene SquareRect
	Panel Rect
}

// panelFraction of the framebuffer height is kept for the gauges
const panelFraction = 6

// ComputeLayout keeps the street view square, centred above a panel that
// takes the lower sixth of the framebuffer.
func ComputeLayout(width, height int) Layout {
	if width <= 0 || height <= 0 {
		return Layout{}
	}
	panelH := height / panelFraction
	sceneH := height - panelH

	size := min(width, sceneH)
	x := (width - size) / 2
	y := panelH + (sceneH-size)/2

	return Layout{
		Scene: SquareRect{X: int32(x), Y: int32(y), Size: int32(size)},
		Panel: Rect{X: int32(x), Y: 0, Width: int32(size), Height: int32(panelH)},
	}
}
