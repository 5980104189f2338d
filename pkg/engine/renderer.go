package engine

// Renderer defines the interface for all renderers
type Renderer interface {
	// Render draws the scene
	Render(scene *SceneData)

	// UpdateResolution updates the framebuffer size in pixels
	UpdateResolution(width, height int)

	// Close releases resources
	Close()
}
