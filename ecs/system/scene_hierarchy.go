package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/milk9111/warehouse/ecs"
	"github.com/milk9111/warehouse/ecs/component"
)

// SceneHierarchySystem keeps instantiated scenes consistent with their roots:
// nodes whose root is gone are destroyed, and every other node's World matrix
// is recomposed from its parent chain. It runs after physics so crate meshes
// follow their bodies in the same tick.
type SceneHierarchySystem struct {
	log     *zap.Logger
	removed int
}

func NewSceneHierarchySystem(log *zap.Logger) *SceneHierarchySystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &SceneHierarchySystem{log: log}
}

// Removed returns how many orphaned nodes were destroyed so far.
func (s *SceneHierarchySystem) Removed() int {
	if s == nil {
		return 0
	}
	return s.removed
}

func (s *SceneHierarchySystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	var orphans []ecs.Entity
	ecs.ForEach(w, component.SceneNodeComponent.Kind(), func(e ecs.Entity, n *component.SceneNode) {
		if !ecs.IsAlive(w, ecs.Entity(n.Root)) || !ecs.IsAlive(w, ecs.Entity(n.Parent)) {
			orphans = append(orphans, e)
		}
	})
	for _, e := range orphans {
		if ecs.DestroyEntity(w, e) {
			s.removed++
		}
	}
	if len(orphans) > 0 {
		s.log.Debug("scene nodes removed with their root", zap.Int("count", len(orphans)))
	}

	world := make(map[ecs.Entity]mgl32.Mat4)
	ecs.ForEach2(w, component.SceneNodeComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, n *component.SceneNode, _ *component.Transform) {
		n.World = worldMatrix(w, e, world)
	})
}

// worldMatrix composes the transforms from e up to its scene root, memoizing
// results for the current pass.
func worldMatrix(w *ecs.World, e ecs.Entity, memo map[ecs.Entity]mgl32.Mat4) mgl32.Mat4 {
	if m, ok := memo[e]; ok {
		return m
	}
	local := mgl32.Ident4()
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		local = t.Matrix()
	}
	m := local
	if n, ok := ecs.Get(w, e, component.SceneNodeComponent.Kind()); ok && ecs.Entity(n.Parent) != e {
		m = worldMatrix(w, ecs.Entity(n.Parent), memo).Mul4(local)
	}
	memo[e] = m
	return m
}
