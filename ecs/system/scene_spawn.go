package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/milk9111/warehouse/asset"
	"github.com/milk9111/warehouse/ecs"
	"github.com/milk9111/warehouse/ecs/component"
	"github.com/milk9111/warehouse/ecs/entity"
	"github.com/milk9111/warehouse/prefabs"
)

// SceneSpawnSystem instantiates the main scene at the origin and spawns the
// looping ambience source. It is registered to run once on entering Done.
type SceneSpawnSystem struct {
	log   *zap.Logger
	spec  *prefabs.AssetPackSpec
	runs  int
	spawn ecs.Entity
}

func NewSceneSpawnSystem(spec *prefabs.AssetPackSpec, log *zap.Logger) *SceneSpawnSystem {
	if log == nil {
		log = zap.NewNop()
	}
	if spec == nil {
		spec = &prefabs.AssetPackSpec{}
		spec.Scene = "Scene"
	}
	return &SceneSpawnSystem{log: log, spec: spec}
}

// Runs returns how many times the scene was instantiated.
func (s *SceneSpawnSystem) Runs() int {
	if s == nil {
		return 0
	}
	return s.runs
}

// Root returns the instantiated scene root, if any.
func (s *SceneSpawnSystem) Root() (ecs.Entity, bool) {
	if s == nil || s.runs == 0 {
		return 0, false
	}
	return s.spawn, true
}

func (s *SceneSpawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	pack, ok := assetPack(w)
	if !ok {
		return
	}

	g, ok := asset.GetReady(pack.Registry, pack.Pack.MainScene)
	if !ok {
		s.log.Debug("main scene not resolvable, skipping instantiation")
		return
	}
	scene := g.MustNamedScene(s.spec.Scene)
	root, err := entity.InstantiateScene(w, pack.Pack.MainScene, scene, component.NewTransform(mgl32.Vec3{}))
	if err != nil {
		s.log.Error("instantiate main scene", zap.Error(err))
		return
	}
	s.runs++
	s.spawn = root
	s.log.Info("scene instantiated",
		zap.String("scene", scene.Name),
		zap.Int("nodes", scene.NodeCount()),
		zap.Stringer("root", root))

	// The clip may still be streaming in; the audio system starts it once it
	// resolves.
	if !pack.Pack.Ambience.Valid() || pack.Registry.State(pack.Pack.Ambience) == asset.Failed {
		return
	}
	if _, err := entity.NewAmbience(w, pack.Pack.Ambience, s.spec.Ambience); err != nil {
		s.log.Error("spawn ambience", zap.Error(err))
	}
}
