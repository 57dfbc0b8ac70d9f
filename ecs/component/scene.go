package component

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/warehouse/asset"
)

// SceneRoot marks the entity a named scene of a glTF asset was instantiated
// under.
type SceneRoot struct {
	Asset asset.Handle[*asset.Gltf]
	Scene string
	Nodes int
}

var SceneRootComponent = NewComponent[SceneRoot]()

// SceneNode is one instantiated glTF node. Path is the slash-joined node
// names from the scene root; Depth is 0 for the scene's root nodes.
//
// Root is the entity carrying SceneRoot and Parent the entity the node hangs
// from (Root for depth 0). Both are ecs.Entity values. The node's Transform
// is local to Parent; World is the composed transform, kept up to date by the
// scene hierarchy system.
type SceneNode struct {
	Name   string
	Path   string
	Depth  int
	Mesh   int
	Root   uint64
	Parent uint64
	World  mgl32.Mat4
}

var SceneNodeComponent = NewComponent[SceneNode]()
