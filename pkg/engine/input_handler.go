package engine

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/iamjwc/driving-without-turning/pkg/simulation"
)

// KeyBinding maps a key press to a command. Shift selects between the
// lower and upper case meaning of a letter key.
type KeyBinding struct {
	Key     glfw.Key
	Shift   bool
	Command simulation.Command
}

// DefaultBindings follows the keyboard map of the panel: +/- change speed,
// i/I incline, t/T time of day, w/W weather.
var DefaultBindings = []KeyBinding{
	{glfw.KeyEqual, true, simulation.Faster},
	{glfw.KeyKPAdd, false, simulation.Faster},
	{glfw.KeyMinus, false, simulation.Slower},
	{glfw.KeyKPSubtract, false, simulation.Slower},
	{glfw.KeyI, false, simulation.InclineDown},
	{glfw.KeyI, true, simulation.InclineUp},
	{glfw.KeyT, false, simulation.TimeBack},
	{glfw.KeyT, true, simulation.TimeForward},
	{glfw.KeyW, false, simulation.WeatherBack},
	{glfw.KeyW, true, simulation.WeatherForward},
}

// InputHandler tracks keyboard state between frames
type InputHandler struct {
	window          *glfw.Window
	bindings        []KeyBinding
	watched         []glfw.Key
	currentKeys     map[glfw.Key]bool
	previousKeys    map[glfw.Key]bool
	mouseWheelDelta float64
}

// NewInputHandler creates an input handler for the given bindings
func NewInputHandler(window *glfw.Window, bindings []KeyBinding) *InputHandler {
	handler := &InputHandler{
		window:       window,
		bindings:     bindings,
		currentKeys:  make(map[glfw.Key]bool),
		previousKeys: make(map[glfw.Key]bool),
	}

	seen := map[glfw.Key]bool{glfw.KeyEscape: true}
	handler.watched = append(handler.watched, glfw.KeyEscape)
	for _, b := range bindings {
		if !seen[b.Key] {
			seen[b.Key] = true
			handler.watched = append(handler.watched, b.Key)
		}
	}

	// The scroll wheel also changes speed
	window.SetScrollCallback(func(_ *glfw.Window, _, yoffset float64) {
		handler.mouseWheelDelta += yoffset
	})

	return handler
}

// Update samples the watched keys
func (ih *InputHandler) Update() {
	for k, v := range ih.currentKeys {
		ih.previousKeys[k] = v
	}
	for _, key := range ih.watched {
		ih.currentKeys[key] = ih.window.GetKey(key) == glfw.Press
	}
}

// IsKeyDown reports whether a key is held
func (ih *InputHandler) IsKeyDown(key glfw.Key) bool {
	return ih.currentKeys[key]
}

// IsKeyPressed reports whether a key went down this frame
func (ih *InputHandler) IsKeyPressed(key glfw.Key) bool {
	return ih.currentKeys[key] && !ih.previousKeys[key]
}

// IsKeyReleased reports whether a key came up this frame
func (ih *InputHandler) IsKeyReleased(key glfw.Key) bool {
	return !ih.currentKeys[key] && ih.previousKeys[key]
}

func (ih *InputHandler) shiftDown() bool {
	return ih.window.GetKey(glfw.KeyLeftShift) == glfw.Press ||
		ih.window.GetKey(glfw.KeyRightShift) == glfw.Press
}

// Commands returns the commands triggered since the last Update
func (ih *InputHandler) Commands() []simulation.Command {
	var cmds []simulation.Command
	shift := ih.shiftDown()
	for _, b := range ih.bindings {
		if b.Shift == shift && ih.IsKeyPressed(b.Key) {
			cmds = append(cmds, b.Command)
		}
	}

	for ; ih.mouseWheelDelta >= 1; ih.mouseWheelDelta-- {
		cmds = append(cmds, simulation.Faster)
	}
	for ; ih.mouseWheelDelta <= -1; ih.mouseWheelDelta++ {
		cmds = append(cmds, simulation.Slower)
	}
	return cmds
}
