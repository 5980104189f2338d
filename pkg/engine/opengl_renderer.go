package engine

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/iamjwc/driving-without-turning/internal/mathx"
	"github.com/iamjwc/driving-without-turning/pkg/animation"
	"github.com/iamjwc/driving-without-turning/pkg/config"
	"github.com/iamjwc/driving-without-turning/pkg/environment"
	"github.com/iamjwc/driving-without-turning/pkg/street"
)

// Street geometry in world units. The road surface sits on groundY.
const (
	groundY = -3.0

	roadWidth      = 4.0
	roadThickness  = 0.4
	laneLineWidth  = 0.2
	laneLineLength = 2.5
	linesPerBlock  = 4

	intersectionWidth = 40.0
	crosswalkInset    = 2.0
	crosswalkDepth    = 1.5

	sidewalkX     = 17.0
	sidewalkWidth = 30.8
	sidewalkTop   = groundY + 0.5

	lightX       = 1.84
	poleHeight   = 5.0
	lampReach    = 0.94
	lampY        = groundY + 5.4
	lampRadius   = 0.2
	busStopInset = 0.14
	busStopY     = groundY + 2.8

	buildingX       = 13.0
	windowsPerSide  = 5
	windowInset     = 2.9
	farPlaneY       = groundY + 200
	farPlaneExtent  = 20.0
	pedestrianX     = 2.0
	pedestrianScale = 0.6

	ambientLight   = 0.3
	lightIntensity = 0.8
)

var (
	roadColor      = mgl32.Vec3{0.1, 0.1, 0.1}
	lineColor      = mgl32.Vec3{1, 1, 1}
	sidewalkColor  = mgl32.Vec3{0.4, 0.4, 0.4}
	lamppostColor  = mgl32.Vec3{0.2, 0.2, 0.2}
	busStopColor   = mgl32.Vec3{0, 0.4, 0.6}
	trashCanColor  = mgl32.Vec3{0, 0.2, 0.05}
	mailboxColor   = mgl32.Vec3{0, 0.05, 0.25}
	newsstandColor = mgl32.Vec3{1, 1, 0.9}
	skinColor      = mgl32.Vec3{0.8, 0.6, 0.45}
	shirtColor     = mgl32.Vec3{0.5, 0.15, 0.15}
	trouserColor   = mgl32.Vec3{0.15, 0.15, 0.3}
	panelColor     = mgl32.Vec3{0.05, 0.05, 0.05}
	gaugeColor     = mgl32.Vec3{0.2, 0.8, 0.3}

	lightDirection = mgl32.Vec3{2, 5, 2}
)

// GLRenderer draws the street with a single lit shader program
type GLRenderer struct {
	config config.GraphicsConfig
	width  int
	height int

	shaderProgram uint32
	cube          *mesh
	sphere        *mesh
	points        *mesh
	streaks       *mesh
	particleData  []float32

	// Shader uniforms
	projectionLocation int32
	viewLocation       int32
	modelLocation      int32
	colorLocation      int32
	emissionLocation   int32
	litLocation        int32
	lightDirLocation   int32
	lightColorLocation int32
	ambientLocation    int32
	fogColorLocation   int32
	fogDensityLocation int32
	pointSizeLocation  int32

	// Thread safety
	mutex sync.Mutex
}

// NewGLRenderer compiles the shaders and uploads the shared meshes. A GL
// context must be current.
func NewGLRenderer(cfg config.GraphicsConfig, width, height int) (*GLRenderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &GLRenderer{config: cfg, width: width, height: height}
	if err := r.initOpenGL(); err != nil {
		return nil, err
	}
	return r, nil
}

// initOpenGL initializes OpenGL resources
func (r *GLRenderer) initOpenGL() error {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	var err error
	if r.shaderProgram, err = createShaderProgram(sceneVertexShaderSource, sceneFragmentShaderSource); err != nil {
		return err
	}

	uniform := func(name string) int32 {
		return gl.GetUniformLocation(r.shaderProgram, gl.Str(name+"\x00"))
	}
	r.projectionLocation = uniform("projection")
	r.viewLocation = uniform("view")
	r.modelLocation = uniform("model")
	r.colorLocation = uniform("objectColor")
	r.emissionLocation = uniform("emission")
	r.litLocation = uniform("lit")
	r.lightDirLocation = uniform("lightDirection")
	r.lightColorLocation = uniform("lightColor")
	r.ambientLocation = uniform("ambient")
	r.fogColorLocation = uniform("fogColor")
	r.fogDensityLocation = uniform("fogDensity")
	r.pointSizeLocation = uniform("pointSize")

	r.cube = newMesh(cubeVertices(), gl.TRIANGLES, gl.STATIC_DRAW)
	r.sphere = newMesh(sphereVertices(8, 12), gl.TRIANGLES, gl.STATIC_DRAW)
	r.points = newMesh(nil, gl.POINTS, gl.STREAM_DRAW)
	r.streaks = newMesh(nil, gl.LINES, gl.STREAM_DRAW)
	return nil
}

// createShaderProgram links a program from vertex and fragment sources
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		gl.DeleteProgram(program)
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)

		return 0, fmt.Errorf("shader program linking failed: %v", log)
	}

	// Shaders are no longer needed once linked
	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

// compileShader compiles a shader from source
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		gl.DeleteShader(shader)

		return 0, fmt.Errorf("shader compilation failed: %v", log)
	}

	return shader, nil
}

// UpdateResolution updates the renderer resolution
func (r *GLRenderer) UpdateResolution(width, height int) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.width = width
	r.height = height
}

// Close releases resources
func (r *GLRenderer) Close() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, m := range []*mesh{r.cube, r.sphere, r.points, r.streaks} {
		if m != nil {
			m.delete()
		}
	}
	if r.shaderProgram != 0 {
		gl.DeleteProgram(r.shaderProgram)
		r.shaderProgram = 0
	}
}

// Render draws one frame: the street into the square scene viewport, then
// the gauges into the panel below it.
func (r *GLRenderer) Render(scene *SceneData) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if scene == nil || scene.Frame == nil || scene.Env == nil {
		return
	}

	sky := scene.Env.ClearColor()
	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	gl.ClearColor(sky[0], sky[1], sky[2], sky[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.shaderProgram)

	layout := ComputeLayout(r.width, r.height)
	gl.Viewport(layout.Scene.X, layout.Scene.Y, layout.Scene.Size, layout.Scene.Size)

	projection := mgl32.Perspective(mgl32.DegToRad(float32(r.config.FOV)), 1, 0.1, float32(r.config.FarPlane))
	view := mgl32.LookAtV(scene.Eye, scene.Target, mgl32.Vec3{0, 1, 0})
	gl.UniformMatrix4fv(r.projectionLocation, 1, false, &projection[0])
	gl.UniformMatrix4fv(r.viewLocation, 1, false, &view[0])

	light := lightDirection.Normalize()
	gl.Uniform3f(r.lightDirLocation, light[0], light[1], light[2])
	gl.Uniform3f(r.lightColorLocation, lightIntensity, lightIntensity, lightIntensity)
	gl.Uniform1f(r.ambientLocation, ambientLight)

	fog := scene.Env.Fog()
	gl.Uniform4fv(r.fogColorLocation, 1, &fog.Color[0])
	gl.Uniform1f(r.fogDensityLocation, fog.Density)

	f := scene.Frame
	L := float32(scene.BlockLength)
	r.drawIntersection(f, L)
	for _, bv := range f.Blocks {
		r.drawBlock(scene, bv, L)
	}
	r.drawSidewalks(f, L)
	for _, side := range street.Sides {
		for _, o := range f.Obstacles[side] {
			r.drawObstacle(scene, o)
		}
		for _, p := range f.Pedestrians[side] {
			r.drawPedestrian(p)
		}
	}
	r.drawFarPlane(scene, L)
	r.drawPrecipitation(scene)

	r.drawPanel(scene, layout.Panel)
}

// drawBox draws the unit cube scaled and translated, lit
func (r *GLRenderer) drawBox(center, size, color mgl32.Vec3) {
	model := mgl32.Translate3D(center[0], center[1], center[2]).Mul4(mgl32.Scale3D(size[0], size[1], size[2]))
	r.drawMesh(r.cube, model, color, mgl32.Vec3{}, true)
}

func (r *GLRenderer) drawMesh(m *mesh, model mgl32.Mat4, color, emission mgl32.Vec3, lit bool) {
	gl.UniformMatrix4fv(r.modelLocation, 1, false, &model[0])
	gl.Uniform3f(r.colorLocation, color[0], color[1], color[2])
	gl.Uniform3f(r.emissionLocation, emission[0], emission[1], emission[2])
	if lit {
		gl.Uniform1i(r.litLocation, 1)
	} else {
		gl.Uniform1i(r.litLocation, 0)
	}
	m.draw()
}

// drawIntersection draws block 0: the cross street and both crosswalks
func (r *GLRenderer) drawIntersection(f *street.Frame, L float32) {
	blockCount := int(f.WindowLength/float64(L) + 0.5)
	z := float32(street.BlockOffset(f.FirstZ, 0, f.CameraZ, float64(L), blockCount))

	r.drawBox(mgl32.Vec3{0, groundY, z}, mgl32.Vec3{intersectionWidth, roadThickness, L}, roadColor)

	top := float32(groundY + roadThickness/2 + 0.01)
	for _, cz := range []float32{z - L/2 + crosswalkInset, z + L/2 - crosswalkInset} {
		for x := float32(-roadWidth/2 + 0.3); x < roadWidth/2; x += 0.6 {
			r.drawBox(mgl32.Vec3{x, top, cz}, mgl32.Vec3{0.3, 0.02, crosswalkDepth}, lineColor)
		}
	}
}

// drawBlock draws a road block, its lane lines and both skyscrapers
func (r *GLRenderer) drawBlock(scene *SceneData, bv street.BlockView, L float32) {
	z := float32(bv.Offset)
	r.drawBox(mgl32.Vec3{0, groundY, z}, mgl32.Vec3{roadWidth, roadThickness, L}, roadColor)

	lineY := float32(groundY + roadThickness/2 + 0.01)
	for j := 0; j < linesPerBlock; j++ {
		lz := z - 0.375*L + float32(j)*L/linesPerBlock
		r.drawBox(mgl32.Vec3{0, lineY, lz}, mgl32.Vec3{laneLineWidth, 0.02, laneLineLength}, lineColor)
	}

	for _, b := range bv.Block.Buildings {
		r.drawBuilding(scene, b, z, L)
	}
}

func (r *GLRenderer) drawBuilding(scene *SceneData, b street.Building, z, L float32) {
	dir := float32(b.Side.Direction())
	height := float32(b.Height) * L
	depth := float32(b.Depth) * L
	center := mgl32.Vec3{dir * buildingX, groundY + height/2, z}
	r.drawBox(center, mgl32.Vec3{L, height, depth}, scene.Env.BuildingColor(b.Color))

	// Windows face the road
	face := dir*(buildingX-L/2) - dir*0.05
	rng := mathx.NewRand(b.WindowSeed)
	cellH := (height - 2*windowInset) / windowsPerSide
	cellD := (depth - 2*windowInset) / windowsPerSide
	if cellH <= 0 || cellD <= 0 {
		return
	}
	for row := 0; row < windowsPerSide; row++ {
		for col := 0; col < windowsPerSide; col++ {
			wy := groundY + windowInset + (float32(row)+0.5)*cellH
			wz := z - depth/2 + windowInset + (float32(col)+0.5)*cellD
			color := scene.Env.WindowColor(rng)
			model := mgl32.Translate3D(face, wy, wz).Mul4(mgl32.Scale3D(0.05, cellH*0.6, cellD*0.6))
			r.drawMesh(r.cube, model, color, mgl32.Vec3{}, false)
		}
	}
}

func (r *GLRenderer) drawSidewalks(f *street.Frame, L float32) {
	mid := float32(f.CameraZ + f.WindowLength/2)
	length := float32(f.WindowLength) + L
	for _, side := range street.Sides {
		x := float32(side.Direction()) * sidewalkX
		r.drawBox(mgl32.Vec3{x, groundY, mid}, mgl32.Vec3{sidewalkWidth, 1.0, length}, sidewalkColor)
	}
}

// drawObstacle draws a prop at exactly the position the ledger holds
func (r *GLRenderer) drawObstacle(scene *SceneData, o street.Obstacle) {
	dir := float32(o.Side.Direction())
	z := float32(o.Z)

	switch o.Kind {
	case street.Streetlight:
		x := dir * lightX
		r.drawBox(mgl32.Vec3{x, groundY + poleHeight/2, z}, mgl32.Vec3{0.1, poleHeight, 0.1}, lamppostColor)
		r.drawBox(mgl32.Vec3{x - dir*lampReach/2, groundY + poleHeight, z}, mgl32.Vec3{lampReach, 0.08, 0.08}, lamppostColor)

		lamp := mgl32.Translate3D(dir*(lightX-lampReach), lampY, z).Mul4(mgl32.Scale3D(lampRadius, lampRadius, lampRadius))
		r.drawMesh(r.sphere, lamp, scene.Env.LampColor(), mgl32.Vec3{}, false)

		if o.BusStop {
			r.drawBox(mgl32.Vec3{dir * (lightX - busStopInset), busStopY, z}, mgl32.Vec3{0.25, 0.25, 0.05}, busStopColor)
		}
	case street.TrashCan:
		r.drawBox(mgl32.Vec3{dir * lightX, groundY + 0.8, z}, mgl32.Vec3{0.45, 1.5, 0.45}, trashCanColor)
	case street.Mailbox:
		r.drawBox(mgl32.Vec3{dir * 1.8, groundY + 1.0, z}, mgl32.Vec3{0.5, 1.0, 0.5}, mailboxColor)
	case street.Newsstand:
		r.drawBox(mgl32.Vec3{dir * 1.9, groundY + 1.1, z}, mgl32.Vec3{0.6, 1.2, 0.8}, newsstandColor)
	}
}

// limb is one box of the walking figure, hung from a pivot
type limb struct {
	joint  animation.Limb
	parent int // index into the same table, -1 for the hips
	pivot  mgl32.Vec3
	size   mgl32.Vec3
	color  mgl32.Vec3
	sphere bool
}

// figureLimbs is in figure units, feet at y=0 and about three units tall
var figureLimbs = []limb{
	{animation.Pelvis, -1, mgl32.Vec3{0, 1.5, 0}, mgl32.Vec3{0.6, 0.3, 0.3}, trouserColor, false},
	{animation.UpperTorso, 0, mgl32.Vec3{0, 0.15, 0}, mgl32.Vec3{0.7, 0.9, 0.35}, shirtColor, false},
	{animation.Head, 1, mgl32.Vec3{0, 0.9, 0}, mgl32.Vec3{0.25, 0.25, 0.25}, skinColor, true},
	{animation.UpperLeftArm, 1, mgl32.Vec3{0.45, 0.85, 0}, mgl32.Vec3{0.18, 0.5, 0.18}, shirtColor, false},
	{animation.UpperRightArm, 1, mgl32.Vec3{-0.45, 0.85, 0}, mgl32.Vec3{0.18, 0.5, 0.18}, shirtColor, false},
	{animation.LowerLeftArm, 3, mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{0.15, 0.45, 0.15}, skinColor, false},
	{animation.LowerRightArm, 4, mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{0.15, 0.45, 0.15}, skinColor, false},
	{animation.UpperLeftLeg, 0, mgl32.Vec3{0.17, -0.1, 0}, mgl32.Vec3{0.22, 0.7, 0.22}, trouserColor, false},
	{animation.UpperRightLeg, 0, mgl32.Vec3{-0.17, -0.1, 0}, mgl32.Vec3{0.22, 0.7, 0.22}, trouserColor, false},
	{animation.LowerLeftLeg, 7, mgl32.Vec3{0, -0.7, 0}, mgl32.Vec3{0.2, 0.65, 0.2}, trouserColor, false},
	{animation.LowerRightLeg, 8, mgl32.Vec3{0, -0.7, 0}, mgl32.Vec3{0.2, 0.65, 0.2}, trouserColor, false},
	{animation.LeftFoot, 9, mgl32.Vec3{0, -0.65, 0.08}, mgl32.Vec3{0.2, 0.1, 0.35}, lamppostColor, false},
	{animation.RightFoot, 10, mgl32.Vec3{0, -0.65, 0.08}, mgl32.Vec3{0.2, 0.1, 0.35}, lamppostColor, false},
}

// drawPedestrian draws a figure posed for this tick. Arms and legs swing
// about x; the torso, pelvis and head twist about y.
func (r *GLRenderer) drawPedestrian(p street.PedestrianView) {
	base := mgl32.Translate3D(float32(p.Side.Direction())*pedestrianX, sidewalkTop, float32(p.Z)).
		Mul4(mgl32.Scale3D(pedestrianScale, pedestrianScale, pedestrianScale))
	if p.Pose.Facing < 0 {
		base = base.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(180)))
	}

	joints := make([]mgl32.Mat4, len(figureLimbs))
	for i, l := range figureLimbs {
		parent := base
		if l.parent >= 0 {
			parent = joints[l.parent]
		}
		angle := mgl32.DegToRad(float32(p.Pose.Angle(l.joint)))
		var rot mgl32.Mat4
		switch l.joint {
		case animation.UpperTorso, animation.Pelvis, animation.Head:
			rot = mgl32.HomogRotate3DY(angle)
		default:
			rot = mgl32.HomogRotate3DX(angle)
		}
		joints[i] = parent.Mul4(mgl32.Translate3D(l.pivot[0], l.pivot[1], l.pivot[2])).Mul4(rot)

		var model mgl32.Mat4
		switch {
		case l.sphere:
			model = joints[i].Mul4(mgl32.Translate3D(0, l.size[1], 0)).Mul4(mgl32.Scale3D(l.size[0], l.size[1], l.size[2]))
		case l.joint == animation.UpperTorso:
			model = joints[i].Mul4(mgl32.Translate3D(0, l.size[1]/2, 0)).Mul4(mgl32.Scale3D(l.size[0], l.size[1], l.size[2]))
		default:
			model = joints[i].Mul4(mgl32.Translate3D(0, -l.size[1]/2, 0)).Mul4(mgl32.Scale3D(l.size[0], l.size[1], l.size[2]))
		}
		m := r.cube
		if l.sphere {
			m = r.sphere
		}
		r.drawMesh(m, model, l.color, mgl32.Vec3{}, true)
	}
}

// drawFarPlane closes off the street one window ahead of the camera
func (r *GLRenderer) drawFarPlane(scene *SceneData, L float32) {
	f := scene.Frame
	z := float32(f.CameraZ + f.WindowLength)
	size := mgl32.Vec3{farPlaneExtent * L, (farPlaneExtent + 0.1) * L, 0.01 * L}
	model := mgl32.Translate3D(0, farPlaneY, z).Mul4(mgl32.Scale3D(size[0], size[1], size[2]))
	r.drawMesh(r.cube, model, scene.Env.FarPlaneColor(), mgl32.Vec3{}, false)
}

// drawPrecipitation draws snow as points and rain as short streaks
func (r *GLRenderer) drawPrecipitation(scene *SceneData) {
	if len(scene.Particles) == 0 {
		return
	}

	m := r.points
	streak := mgl32.Vec3{}
	size := float32(3)
	if scene.Env.Weather == environment.Rainy {
		m = r.streaks
		streak = mgl32.Vec3{0, 0.25, 0.05}
		size = 1
	}

	r.particleData = r.particleData[:0]
	for _, p := range scene.Particles {
		r.particleData = appendParticle(r.particleData, p, streak)
	}
	m.update(r.particleData)

	gl.Uniform1f(r.pointSizeLocation, size)
	r.drawMesh(m, mgl32.Ident4(), scene.Env.PrecipColor(), mgl32.Vec3{}, false)
}

// drawPanel draws the speed, incline and distance gauges under the scene
func (r *GLRenderer) drawPanel(scene *SceneData, panel Rect) {
	gl.Viewport(panel.X, panel.Y, panel.Width, panel.Height)
	gl.Clear(gl.DEPTH_BUFFER_BIT)

	ortho := mgl32.Ortho(0, 1, 0, 1, -1, 1)
	ident := mgl32.Ident4()
	gl.UniformMatrix4fv(r.projectionLocation, 1, false, &ortho[0])
	gl.UniformMatrix4fv(r.viewLocation, 1, false, &ident[0])
	gl.Uniform1f(r.fogDensityLocation, 0)

	quad := func(x, y, w, h float32, color mgl32.Vec3) {
		model := mgl32.Translate3D(x+w/2, y+h/2, 0).Mul4(mgl32.Scale3D(w, h, 0.01))
		r.drawMesh(r.cube, model, color, mgl32.Vec3{}, false)
	}

	quad(0, 0, 1, 1, panelColor)

	ro := scene.Readout
	speed := float32(0)
	if scene.MaxSpeed > 0 {
		speed = float32(mathx.Clamp(ro.Speed/scene.MaxSpeed, 0, 1))
	}
	quad(0.05, 0.6, 0.4*speed, 0.25, gaugeColor)

	// Incline swings either way from the centre mark
	incline := float32(mathx.Clamp(ro.Incline/20, -1, 1))
	quad(0.5, 0.6, 0.005, 0.25, lineColor)
	if incline >= 0 {
		quad(0.5, 0.6, 0.2*incline, 0.25, gaugeColor)
	} else {
		quad(0.5+0.2*incline, 0.6, -0.2*incline, 0.25, gaugeColor)
	}

	// Tenths of a mile
	tenths := int(ro.Distance*10) % 10
	for i := 0; i < 10; i++ {
		color := panelColor.Add(mgl32.Vec3{0.15, 0.15, 0.15})
		if i <= tenths {
			color = lineColor
		}
		quad(0.05+float32(i)*0.09, 0.15, 0.07, 0.25, color)
	}
}
