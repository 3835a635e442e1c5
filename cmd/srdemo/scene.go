package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"

	"github.com/gogpu/softrender"
	"github.com/gogpu/softrender/interp"
)

type (
	frameBuffer = softrender.Framebuffer[softrender.RGBA8, softrender.Depth32, softrender.NoStencil]
	pipeline    = softrender.Pipeline[camera, softrender.RGBA8, softrender.Depth32, softrender.NoStencil]
	stage       = softrender.FragmentStage[camera, varyings, softrender.RGBA8, softrender.Depth32, softrender.NoStencil]

	// varyings carries the world-space normal, the vertex color and the
	// texture coordinate.
	varyings = interp.Triple[interp.Vec3, interp.Vec4, interp.Vec2]
)

// surface is the per-vertex data of the demo meshes.
type surface struct {
	Normal mgl32.Vec3
	Color  softrender.RGBA
	UV     mgl32.Vec2
}

// camera holds the global uniforms of one frame. A nil Texture leaves the
// faces untextured.
type camera struct {
	ViewProj mgl32.Mat4
	Model    mgl32.Mat4
	Light    mgl32.Vec3

	Texture *softrender.Texture[softrender.RGBA]
	Sampler softrender.Sampler[softrender.RGBA]
}

// depthRange maps OpenGL clip depth [-w, w] to [0, w].
var depthRange = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

var eye = mgl32.Vec3{3, 2.5, 4}

func newCamera(angle, aspect float32) camera {
	proj := mgl32.Perspective(mgl32.DegToRad(45), aspect, 0.1, 100)
	view := mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	return camera{
		ViewProj: depthRange.Mul4(proj).Mul4(view),
		Model:    mgl32.HomogRotate3DY(angle),
		Light:    mgl32.Vec3{0.4, 1, 0.6}.Normalize(),
	}
}

// Face colors in linear light, so shading and interpolation happen before
// the sRGB encode in litFS.
var faceColors = [6]softrender.RGBA{
	softrender.RGBA8FromColor(colornames.Tomato).Linear(),
	softrender.RGBA8FromColor(colornames.Gold).Linear(),
	softrender.RGBA8FromColor(colornames.Mediumseagreen).Linear(),
	softrender.RGBA8FromColor(colornames.Cornflowerblue).Linear(),
	softrender.RGBA8FromColor(colornames.Orchid).Linear(),
	softrender.RGBA8FromColor(colornames.Lightslategray).Linear(),
}

// cubeMesh builds a unit cube centered on the origin. Each face has its own
// four vertices so normals and colors stay flat; faces are counter-clockwise
// seen from outside.
func cubeMesh() *softrender.Mesh[surface] {
	faces := [6][2]mgl32.Vec3{
		{{1, 0, 0}, {0, 0, -1}},
		{{-1, 0, 0}, {0, 0, 1}},
		{{0, 1, 0}, {1, 0, 0}},
		{{0, -1, 0}, {1, 0, 0}},
		{{0, 0, 1}, {1, 0, 0}},
		{{0, 0, -1}, {-1, 0, 0}},
	}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	verts := make([]softrender.Vertex[surface], 0, 24)
	indices := make([]uint32, 0, 36)
	for f, face := range faces {
		n, u := face[0], face[1]
		v := n.Cross(u)
		base := uint32(len(verts))
		for _, c := range corners {
			pos := n.Add(u.Mul(c[0])).Add(v.Mul(c[1])).Mul(0.5)
			verts = append(verts, softrender.Vertex[surface]{
				Position: pos,
				Data: surface{
					Normal: n,
					Color:  faceColors[f],
					UV:     mgl32.Vec2{(c[0] + 1) / 2, (1 - c[1]) / 2},
				},
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return softrender.NewMesh(softrender.TopologyTriangles, verts, indices)
}

// gridMesh builds a square of n×n cells of the given size on the plane y.
func gridMesh(n int, size, y float32) *softrender.Mesh[surface] {
	half := float32(n) * size / 2
	c := surface{Color: softrender.RGBA8FromColor(colornames.Silver).Float()}
	verts := make([]softrender.Vertex[surface], 0, 4*(n+1))
	for i := 0; i <= n; i++ {
		o := -half + float32(i)*size
		verts = append(verts,
			softrender.Vertex[surface]{Position: mgl32.Vec3{o, y, -half}, Data: c},
			softrender.Vertex[surface]{Position: mgl32.Vec3{o, y, half}, Data: c},
			softrender.Vertex[surface]{Position: mgl32.Vec3{-half, y, o}, Data: c},
			softrender.Vertex[surface]{Position: mgl32.Vec3{half, y, o}, Data: c},
		)
	}
	return softrender.NewMesh(softrender.TopologyLines, verts, nil)
}

// checkerTexture builds an n×n checkerboard of white and light gray texels.
func checkerTexture(n int) *softrender.Texture[softrender.RGBA] {
	light := softrender.RGBA8FromColor(colornames.White).Linear()
	dark := softrender.RGBA8FromColor(colornames.Lightgray).Linear()
	texels := make([]softrender.RGBA, n*n)
	for y := range n {
		for x := range n {
			if (x+y)%2 == 0 {
				texels[x+y*n] = light
			} else {
				texels[x+y*n] = dark
			}
		}
	}
	tex, err := softrender.NewTexture(n, n, texels)
	if err != nil {
		panic(err)
	}
	return tex
}

func cubeVS(v *softrender.Vertex[surface], c *camera) softrender.ClipVertex[varyings] {
	world := c.Model.Mul4x1(v.Position.Vec4(1))
	n := c.Model.Mat3().Mul3x1(v.Data.Normal)
	return softrender.NewClipVertex(c.ViewProj.Mul4x1(world), varyings{
		First:  interp.Vec3(n),
		Second: interp.Vec4(v.Data.Color.Vec()),
		Third:  interp.Vec2(v.Data.UV),
	})
}

func gridVS(v *softrender.Vertex[surface], c *camera) softrender.ClipVertex[varyings] {
	return softrender.NewClipVertex(c.ViewProj.Mul4x1(v.Position.Vec4(1)), varyings{
		Second: interp.Vec4(v.Data.Color.Vec()),
	})
}

// litFS applies Lambert shading with a constant ambient term.
func litFS(v *softrender.ScreenVertex[varyings], c *camera) softrender.Fragment[softrender.RGBA8] {
	base := mgl32.Vec4(v.Uniforms.Second)
	if c.Texture != nil {
		uv := v.Uniforms.Third
		t := c.Texture.Sample(uv[0], uv[1], c.Sampler)
		base = mgl32.Vec4{base[0] * t.R, base[1] * t.G, base[2] * t.B, base[3] * t.A}
	}
	n := mgl32.Vec3(v.Uniforms.First)
	if l := n.Len(); l > 0 {
		n = n.Mul(1 / l)
	}
	k := 0.25 + 0.75*max(n.Dot(c.Light), 0)
	return softrender.Shade(softrender.RGBA{R: base[0] * k, G: base[1] * k, B: base[2] * k, A: base[3]}.SRGB8())
}

func flatFS(v *softrender.ScreenVertex[varyings], _ *camera) softrender.Fragment[softrender.RGBA8] {
	return softrender.Shade(softrender.RGBAFromVec(mgl32.Vec4(v.Uniforms.Second)).RGBA8())
}

// scene is everything needed to render frames of the demo.
type scene struct {
	cfg   *Config
	cube  *softrender.Mesh[surface]
	grid  *softrender.Mesh[surface]
	cull  softrender.FaceWinding
	clear softrender.RGBA8

	texture *softrender.Texture[softrender.RGBA]
	sampler softrender.Sampler[softrender.RGBA]
}

func newScene(cfg *Config) (*scene, error) {
	cull, err := cfg.CullWinding()
	if err != nil {
		return nil, err
	}
	bg, err := cfg.ClearColor()
	if err != nil {
		return nil, err
	}
	filter, err := cfg.TextureFilter()
	if err != nil {
		return nil, err
	}
	s := &scene{cfg: cfg, cube: cubeMesh(), cull: cull, clear: bg}
	if cfg.Texture {
		s.texture = checkerTexture(8)
		s.sampler = softrender.Sampler[softrender.RGBA]{Filter: filter, Edge: softrender.EdgeWrap}
	}
	if cfg.Grid {
		s.grid = gridMesh(8, 0.5, -0.75)
	}
	return s, nil
}

// render draws frame i of the turntable into the pipeline's framebuffer.
func (s *scene) render(p *pipeline, i int) (softrender.Stats, error) {
	fb := p.Framebuffer()
	fb.Clear(s.clear)

	angle := 2 * math.Pi * float32(i) / float32(s.cfg.Frames)
	cam := newCamera(angle, float32(fb.Width())/float32(fb.Height()))
	cam.Texture, cam.Sampler = s.texture, s.sampler
	p.SetUniforms(cam)

	vs, err := softrender.Draw(p, s.cube)
	if err != nil {
		return softrender.Stats{}, err
	}
	gs := softrender.RunVertexShader(vs, cubeVS)
	if s.cfg.Wireframe {
		gs = gs.Wireframe()
	}
	stats := s.configure(gs.ClipPrimitives().Finish(fb.Viewport())).
		CullFaces(s.cull).
		Run(litFS)

	if s.grid == nil {
		return stats, nil
	}
	vs, err = softrender.Draw(p, s.grid)
	if err != nil {
		return stats, err
	}
	gridStats := s.configure(softrender.RunVertexShader(vs, gridVS).ClipPrimitives().Finish(fb.Viewport())).
		Blend(softrender.BlendRGBA8(softrender.BlendSourceOver)).
		Run(flatFS)
	return sumStats(stats, gridStats), nil
}

func (s *scene) configure(fs *stage) *stage {
	return fs.
		AntialiasedLines(s.cfg.Antialias).
		PerspectiveCorrect(s.cfg.Perspective).
		TileSize(s.cfg.TileWidth, s.cfg.TileHeight)
}

func sumStats(a, b softrender.Stats) softrender.Stats {
	return softrender.Stats{
		Primitives:    a.Primitives + b.Primitives,
		Culled:        a.Culled + b.Culled,
		Degenerate:    a.Degenerate + b.Degenerate,
		Outside:       a.Outside + b.Outside,
		Tiles:         a.Tiles + b.Tiles,
		Fragments:     a.Fragments + b.Fragments,
		Discarded:     a.Discarded + b.Discarded,
		DepthFailed:   a.DepthFailed + b.DepthFailed,
		StencilFailed: a.StencilFailed + b.StencilFailed,
	}
}
