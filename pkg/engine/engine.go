package engine

import (
	"fmt"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/iamjwc/driving-without-turning/internal/logger"
	"github.com/iamjwc/driving-without-turning/pkg/config"
	"github.com/iamjwc/driving-without-turning/pkg/simulation"
	"github.com/iamjwc/driving-without-turning/pkg/street"
)

const (
	windowTitle = "Driving Without Turning"

	// maxTicksPerFrame bounds catch-up after a stall
	maxTicksPerFrame = 5
)

// Engine runs the simulation at a fixed tick rate and draws it every frame
type Engine struct {
	window    *glfw.Window
	config    *config.Config
	logger    *logger.Logger
	sim       *simulation.Simulation
	renderer  Renderer
	input     *InputHandler
	ambience  *Ambience
	isRunning bool
	frameRate int

	tickInterval time.Duration
	accumulator  time.Duration
	lastUpdate   time.Time
	particles    []mgl32.Vec3
	title        string
}

// NewEngine opens the window and prepares the renderer. Must be called from
// the main OS thread.
func NewEngine(cfg *config.Config, sim *simulation.Simulation, log *logger.Logger) (*Engine, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor
	if cfg.Graphics.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	window, err := glfw.CreateWindow(cfg.Graphics.Width, cfg.Graphics.Height, windowTitle, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	window.MakeContextCurrent()
	if cfg.Graphics.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	fbWidth, fbHeight := window.GetFramebufferSize()
	renderer, err := NewGLRenderer(cfg.Graphics, fbWidth, fbHeight)
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		renderer.UpdateResolution(width, height)
	})

	e := &Engine{
		window:       window,
		config:       cfg,
		logger:       log,
		sim:          sim,
		renderer:     renderer,
		input:        NewInputHandler(window, DefaultBindings),
		frameRate:    cfg.Graphics.FrameRate,
		tickInterval: time.Second / time.Duration(cfg.Simulation.TickRate),
	}

	// Sound is optional
	if cfg.Audio.Enabled {
		ambience, err := NewAmbience(cfg.Audio, sim.Seed(), log.Named("audio"))
		if err != nil {
			log.Warnf("continuing without sound: %v", err)
		} else {
			e.ambience = ambience
			e.ambience.SetIntensity(sim.Env.Intensity())
		}
	}

	return e, nil
}

// Run starts the main loop and returns when the window closes
func (e *Engine) Run() {
	e.isRunning = true
	e.lastUpdate = time.Now()
	e.logger.Infof("engine running: %d ticks/s, %d fps cap", e.config.Simulation.TickRate, e.frameRate)

	for e.isRunning && !e.window.ShouldClose() {
		currentTime := time.Now()
		e.accumulator += currentTime.Sub(e.lastUpdate)
		e.lastUpdate = currentTime

		e.processInput()
		e.update()
		e.render()

		e.window.SwapBuffers()
		glfw.PollEvents()

		// Cap the frame rate
		if e.frameRate > 0 {
			frameTime := time.Since(currentTime)
			targetFrameTime := time.Second / time.Duration(e.frameRate)
			if frameTime < targetFrameTime {
				time.Sleep(targetFrameTime - frameTime)
			}
		}
	}

	e.cleanup()
}

// processInput handles user input
func (e *Engine) processInput() {
	e.input.Update()

	if e.input.IsKeyPressed(glfw.KeyEscape) {
		e.isRunning = false
		return
	}

	for _, cmd := range e.input.Commands() {
		e.sim.Apply(cmd)
	}
}

// update runs as many ticks as the elapsed time asks for
func (e *Engine) update() {
	ticks := 0
	for e.accumulator >= e.tickInterval {
		if ticks == maxTicksPerFrame {
			e.logger.Debugf("dropping %v of simulation time", e.accumulator)
			e.accumulator = 0
			break
		}
		e.sim.Step()
		e.accumulator -= e.tickInterval
		ticks++
	}

	if e.ambience != nil {
		e.ambience.SetIntensity(e.sim.Env.Intensity())
	}

	readout := e.sim.Readout().String()
	if readout != e.title {
		e.title = readout
		e.window.SetTitle(windowTitle + " | " + readout)
	}
}

// render draws the last completed frame
func (e *Engine) render() {
	v := e.sim.Viewer
	e.particles = e.sim.Env.Particles(v.Position.Z(), e.particles)
	target := v.Target()

	e.sim.City.View(func(f *street.Frame) {
		e.renderer.Render(&SceneData{
			Frame:       f,
			Eye:         toVec3(v.Position.X(), v.Position.Y(), v.Position.Z()),
			Target:      toVec3(target.X(), target.Y(), target.Z()),
			Env:         e.sim.Env,
			Particles:   e.particles,
			Readout:     e.sim.Readout(),
			MaxSpeed:    e.config.Viewer.MaxSpeed * e.config.Viewer.SpeedScale,
			BlockLength: float32(e.config.Street.BlockLength),
		})
	})
}

// cleanup performs necessary cleanup before exiting
func (e *Engine) cleanup() {
	e.logger.Infof("shutting down after %d ticks", e.sim.Ticks())
	if e.ambience != nil {
		e.ambience.Shutdown()
	}
	e.renderer.Close()
	e.window.Destroy()
	glfw.Terminate()
}
