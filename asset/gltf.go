package asset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

var (
	ErrDecode             = errors.New("gltf: decode")
	ErrUnsupportedVersion = errors.New("gltf: unsupported version")
	ErrInvalidNodeGraph   = errors.New("gltf: invalid node graph")
)

// Gltf is a decoded scene file. Only the scene graph is kept: named scenes,
// node transforms and mesh references. Geometry stays with the renderer.
type Gltf struct {
	Scenes       []*Scene
	NamedScenes  map[string]*Scene
	DefaultScene *Scene
	Nodes        []*Node
	Meshes       []string
	Binary       []byte
}

// Scene is one sub-scene of a file: a set of root nodes.
type Scene struct {
	Index int
	Name  string
	Roots []*Node
}

// Node is one scene graph node with its local TRS transform. Mesh is -1 for
// nodes without geometry.
type Node struct {
	Index       int
	Name        string
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
	Mesh        int
	Children    []*Node
}

// Local returns the node's transform relative to its parent.
func (n *Node) Local() mgl32.Mat4 {
	return mgl32.Translate3D(n.Translation.X(), n.Translation.Y(), n.Translation.Z()).
		Mul4(n.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z()))
}

// NamedScene looks up a sub-scene by name.
func (g *Gltf) NamedScene(name string) (*Scene, bool) {
	if g == nil {
		return nil, false
	}
	s, ok := g.NamedScenes[name]
	return s, ok
}

// MustNamedScene is NamedScene for names the game ships with. A missing scene
// means the file was exported wrong, so it panics.
func (g *Gltf) MustNamedScene(name string) *Scene {
	s, ok := g.NamedScene(name)
	if !ok {
		panic(fmt.Sprintf("gltf: no scene named %q (have %s)", name, strings.Join(g.SceneNames(), ", ")))
	}
	return s
}

// SceneNames returns the names of all named scenes, sorted.
func (g *Gltf) SceneNames() []string {
	if g == nil {
		return nil
	}
	names := make([]string, 0, len(g.NamedScenes))
	for name := range g.NamedScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Walk visits every node of the scene depth first. parent is nil for roots.
func (s *Scene) Walk(fn func(n, parent *Node, depth int)) {
	if s == nil || fn == nil {
		return
	}
	var visit func(n, parent *Node, depth int)
	visit = func(n, parent *Node, depth int) {
		fn(n, parent, depth)
		for _, child := range n.Children {
			visit(child, n, depth+1)
		}
	}
	for _, root := range s.Roots {
		visit(root, nil, 0)
	}
}

// NodeCount returns the number of nodes reachable from the scene roots.
func (s *Scene) NodeCount() int {
	n := 0
	s.Walk(func(*Node, *Node, int) { n++ })
	return n
}

// GltfLoader decodes .glb and .gltf files.
type GltfLoader struct{}

func (GltfLoader) Extensions() []string {
	return []string{".glb", ".gltf"}
}

func (GltfLoader) Load(ctx *LoadContext, data []byte) (any, error) {
	return DecodeGltf(ctx, data)
}

// DecodeGltf decodes a GLB container or a plain glTF JSON document. External
// buffer and image URIs are recorded on ctx as dependencies; the registry
// loads them itself.
func DecodeGltf(ctx *LoadContext, data []byte) (*Gltf, error) {
	var doc gltf.Document
	if err := gltf.NewDecoderFS(bytes.NewReader(data), deferredFS{}).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedVersion, doc.Asset.Version)
	}

	isGLB := bytes.HasPrefix(data, []byte("glTF"))
	g := &Gltf{NamedScenes: make(map[string]*Scene)}
	for i, buf := range doc.Buffers {
		switch {
		case buf.URI == "":
			if i != 0 || !isGLB {
				return nil, fmt.Errorf("%w: buffer %d has no uri and no GLB binary chunk", ErrDecode, i)
			}
			g.Binary = buf.Data
		case buf.IsEmbeddedResource():
		default:
			ctx.Depend(buf.URI)
		}
	}
	for _, img := range doc.Images {
		if img.URI != "" && !img.IsEmbeddedResource() {
			ctx.Depend(img.URI)
		}
	}

	for _, m := range doc.Meshes {
		g.Meshes = append(g.Meshes, m.Name)
	}
	if err := g.buildNodes(doc.Nodes); err != nil {
		return nil, err
	}

	for i, sc := range doc.Scenes {
		scene := &Scene{Index: i, Name: sc.Name}
		for _, idx := range sc.Nodes {
			if idx < 0 || idx >= len(g.Nodes) {
				return nil, fmt.Errorf("%w: scene %d references node %d", ErrInvalidNodeGraph, i, idx)
			}
			scene.Roots = append(scene.Roots, g.Nodes[idx])
		}
		g.Scenes = append(g.Scenes, scene)
		if sc.Name != "" {
			g.NamedScenes[sc.Name] = scene
		}
	}

	switch {
	case doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(g.Scenes):
		g.DefaultScene = g.Scenes[*doc.Scene]
	case doc.Scene != nil:
		return nil, fmt.Errorf("%w: default scene %d out of range", ErrInvalidNodeGraph, *doc.Scene)
	case len(g.Scenes) > 0:
		g.DefaultScene = g.Scenes[0]
	}
	return g, nil
}

func (g *Gltf) buildNodes(raw []*gltf.Node) error {
	g.Nodes = make([]*Node, len(raw))
	for i, rn := range raw {
		n := &Node{
			Index:    i,
			Name:     rn.Name,
			Rotation: mgl32.QuatIdent(),
			Scale:    mgl32.Vec3{1, 1, 1},
			Mesh:     -1,
		}
		if rn.Mesh != nil {
			if *rn.Mesh < 0 || *rn.Mesh >= len(g.Meshes) {
				return fmt.Errorf("%w: node %d references mesh %d", ErrInvalidNodeGraph, i, *rn.Mesh)
			}
			n.Mesh = *rn.Mesh
		}
		if m := mat4(rn.Matrix); m != (mgl32.Mat4{}) && m != mgl32.Ident4() {
			n.Translation, n.Rotation, n.Scale = decompose(m)
		} else {
			n.Translation = vec3(rn.Translation)
			if r := vec4(rn.Rotation); r != (mgl32.Vec4{}) {
				n.Rotation = mgl32.Quat{W: r[3], V: r.Vec3()}.Normalize()
			}
			if s := vec3(rn.Scale); s != (mgl32.Vec3{}) {
				n.Scale = s
			}
		}
		g.Nodes[i] = n
	}

	// Nodes must form a forest: every child in range with exactly one parent.
	parents := make([]int, len(raw))
	for i, rn := range raw {
		for _, c := range rn.Children {
			if c < 0 || c >= len(raw) || c == i {
				return fmt.Errorf("%w: node %d has invalid child %d", ErrInvalidNodeGraph, i, c)
			}
			parents[c]++
			if parents[c] > 1 {
				return fmt.Errorf("%w: node %d has more than one parent", ErrInvalidNodeGraph, c)
			}
			g.Nodes[i].Children = append(g.Nodes[i].Children, g.Nodes[c])
		}
	}
	return checkAcyclic(g.Nodes)
}

type float interface{ ~float32 | ~float64 }

func vec3[F float](a [3]F) mgl32.Vec3 {
	return mgl32.Vec3{float32(a[0]), float32(a[1]), float32(a[2])}
}

func vec4[F float](a [4]F) mgl32.Vec4 {
	return mgl32.Vec4{float32(a[0]), float32(a[1]), float32(a[2]), float32(a[3])}
}

func mat4[F float](a [16]F) mgl32.Mat4 {
	var m mgl32.Mat4
	for i, v := range a {
		m[i] = float32(v)
	}
	return m
}

// deferredFS answers every external buffer read with an empty file so the
// decoder never blocks on I/O; the real bytes arrive as registry dependencies.
type deferredFS struct{}

func (deferredFS) Open(name string) (fs.File, error) {
	return deferredFile{name: path.Base(name)}, nil
}

type deferredFile struct{ name string }

func (f deferredFile) Stat() (fs.FileInfo, error) { return f, nil }
func (deferredFile) Read([]byte) (int, error)     { return 0, io.EOF }
func (deferredFile) Close() error                 { return nil }
func (f deferredFile) Name() string               { return f.name }
func (deferredFile) Size() int64                  { return 0 }
func (deferredFile) Mode() fs.FileMode            { return 0o444 }
func (deferredFile) ModTime() time.Time           { return time.Time{} }
func (deferredFile) IsDir() bool                  { return false }
func (deferredFile) Sys() any                     { return nil }

func checkAcyclic(nodes []*Node) error {
	const (
		unvisited = iota
		active
		finished
	)
	marks := make([]int, len(nodes))
	var visit func(n *Node) error
	visit = func(n *Node) error {
		switch marks[n.Index] {
		case active:
			return fmt.Errorf("%w: cycle through node %d", ErrInvalidNodeGraph, n.Index)
		case finished:
			return nil
		}
		marks[n.Index] = active
		for _, c := range n.Children {
			if err := visit(c); err != nil {
				return err
			}
		}
		marks[n.Index] = finished
		return nil
	}
	for _, n := range nodes {
		if err := visit(n); err != nil {
			return err
		}
	}
	return nil
}

// decompose splits an affine column-major matrix into TRS. Shear is dropped.
func decompose(m mgl32.Mat4) (mgl32.Vec3, mgl32.Quat, mgl32.Vec3) {
	t := mgl32.Vec3{m[12], m[13], m[14]}
	s := mgl32.Vec3{m.Col(0).Vec3().Len(), m.Col(1).Vec3().Len(), m.Col(2).Vec3().Len()}
	rot := mgl32.Ident4()
	for c := 0; c < 3; c++ {
		if s[c] == 0 {
			return t, mgl32.QuatIdent(), s
		}
		for r := 0; r < 3; r++ {
			rot[c*4+r] = m[c*4+r] / s[c]
		}
	}
	return t, mgl32.Mat4ToQuat(rot).Normalize(), s
}
