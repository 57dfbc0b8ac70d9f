// Package levels wires scenes into a world. The warehouse is the only scene:
// it loads its asset pack, tracks the load state, and spawns crates on demand.
package levels

import (
	"fmt"
	"io/fs"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/warehouse/asset"
	"github.com/milk9111/warehouse/ecs"
	"github.com/milk9111/warehouse/ecs/component"
	"github.com/milk9111/warehouse/ecs/entity"
	"github.com/milk9111/warehouse/ecs/system"
	"github.com/milk9111/warehouse/prefabs"
)

type Options struct {
	Assets      fs.FS
	Runner      asset.Runner // nil uses a goroutine pool of Concurrency workers
	Concurrency int
	SampleRate  int
	Gravity     float64

	Keys  system.KeyState
	Mixer system.Mixer
	Log   *zap.Logger

	// Specs default to the prefab files when nil.
	PackSpec    *prefabs.AssetPackSpec
	PackageSpec *prefabs.PackageSpec
	GroundSpec  *prefabs.GroundSpec
}

type Warehouse struct {
	world    *ecs.World
	registry *asset.Registry
	pack     *asset.Pack
	log      *zap.Logger

	transitions *system.StateTransitionSystem
	input       *system.InputSystem
	assetEvents *system.AssetEventSystem
	loadState   *system.LoadStateSystem
	spawner     *system.PackageSpawnSystem
	audio       *system.AudioSystem
	physics     *system.PhysicsSystem
	hierarchy   *system.SceneHierarchySystem
	collisions  *system.CollisionLogSystem
	scene       *system.SceneSpawnSystem
}

// NewWarehouse requests the asset pack and creates the load state, pack and
// input entities in w. Systems are registered separately with Install.
func NewWarehouse(w *ecs.World, opts Options) (*Warehouse, error) {
	if w == nil {
		return nil, fmt.Errorf("warehouse: world is nil")
	}
	if opts.Assets == nil {
		return nil, fmt.Errorf("warehouse: no asset file system")
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("warehouse")

	packSpec, pkgSpec, groundSpec, err := loadSpecs(opts)
	if err != nil {
		return nil, fmt.Errorf("warehouse: %w", err)
	}
	spawnKey, err := pkgSpec.Key()
	if err != nil {
		return nil, fmt.Errorf("warehouse: %w", err)
	}

	regOpts := []asset.Option{asset.WithLogger(log.Named("asset"))}
	if opts.SampleRate > 0 {
		regOpts = append(regOpts, asset.WithLoader(asset.WAVLoader{SampleRate: opts.SampleRate}))
	}
	if opts.Runner != nil {
		regOpts = append(regOpts, asset.WithRunner(opts.Runner))
	} else if opts.Concurrency > 0 {
		regOpts = append(regOpts, asset.WithConcurrency(opts.Concurrency))
	}
	registry := asset.NewRegistry(opts.Assets, regOpts...)

	pack, err := asset.NewPack(registry, asset.PackPaths{
		MainScene:  packSpec.Assets.MainScene,
		Package:    packSpec.Assets.Package,
		Scanner:    packSpec.Assets.Scanner,
		Ambience:   packSpec.Assets.Ambience,
		PlayerHand: packSpec.Assets.PlayerHand,
	}, packSpec.Primary)
	if err != nil {
		return nil, fmt.Errorf("warehouse: %w", err)
	}

	waitFor := component.WaitForPrimary
	if packSpec.WaitFor == "collection" {
		waitFor = component.WaitForCollection
	}
	if _, err := entity.NewAssetPack(w, registry, pack, waitFor); err != nil {
		return nil, fmt.Errorf("warehouse: %w", err)
	}
	if _, err := entity.NewLoadState(w); err != nil {
		return nil, fmt.Errorf("warehouse: %w", err)
	}
	if _, err := entity.NewInput(w); err != nil {
		return nil, fmt.Errorf("warehouse: %w", err)
	}

	gravity := opts.Gravity
	if gravity == 0 {
		gravity = system.DefaultGravity
	}

	wh := &Warehouse{
		world:    w,
		registry: registry,
		pack:     pack,
		log:      log,

		transitions: system.NewStateTransitionSystem(log),
		input:       system.NewInputSystem(opts.Keys, spawnKey),
		assetEvents: system.NewAssetEventSystem(log),
		loadState:   system.NewLoadStateSystem(log),
		spawner:     system.NewPackageSpawnSystem(pkgSpec, log),
		audio:       system.NewAudioSystem(opts.Mixer, log),
		physics:     system.NewPhysicsSystem(gravity),
		hierarchy:   system.NewSceneHierarchySystem(log),
		collisions:  system.NewCollisionLogSystem(log.Named("collision")),
		scene:       system.NewSceneSpawnSystem(packSpec, log),
	}
	wh.transitions.OnEnter(component.LoadPhaseDone, wh.scene)
	wh.transitions.OnEnter(component.LoadPhaseDone, system.NewGroundSpawnSystem(groundSpec, log))

	log.Info("asset pack requested",
		zap.Strings("assets", registry.Names()),
		zap.String("primary", packSpec.Primary),
		zap.Stringer("wait_for", waitFor))
	return wh, nil
}

// loadSpecs reads the prefab files for specs not given in opts. Given specs
// are copied and prepared like loaded ones.
func loadSpecs(opts Options) (*prefabs.AssetPackSpec, *prefabs.PackageSpec, *prefabs.GroundSpec, error) {
	var err error
	packSpec := opts.PackSpec
	if packSpec == nil {
		if packSpec, err = prefabs.LoadAssetPackSpec(); err != nil {
			return nil, nil, nil, err
		}
	} else {
		spec := *packSpec
		if err := spec.Prepare(); err != nil {
			return nil, nil, nil, err
		}
		packSpec = &spec
	}

	pkgSpec := opts.PackageSpec
	if pkgSpec == nil {
		if pkgSpec, err = prefabs.LoadPackageSpec(); err != nil {
			return nil, nil, nil, err
		}
	} else {
		spec := *pkgSpec
		if err := spec.Prepare(); err != nil {
			return nil, nil, nil, err
		}
		pkgSpec = &spec
	}

	groundSpec := opts.GroundSpec
	if groundSpec == nil {
		if groundSpec, err = prefabs.LoadGroundSpec(); err != nil {
			return nil, nil, nil, err
		}
	} else {
		spec := *groundSpec
		if err := spec.Prepare(); err != nil {
			return nil, nil, nil, err
		}
		groundSpec = &spec
	}
	return packSpec, pkgSpec, groundSpec, nil
}

// Install registers the warehouse systems in their phases.
func (wh *Warehouse) Install(s *ecs.Scheduler) {
	if wh == nil || s == nil {
		return
	}
	s.Add(ecs.PhaseStateTransition, wh.transitions)
	s.Add(ecs.PhaseInput, wh.input)
	s.Add(ecs.PhasePreUpdate, wh.assetEvents)
	s.Add(ecs.PhasePreUpdate, wh.loadState)
	s.Add(ecs.PhaseUpdate, wh.spawner)
	s.Add(ecs.PhaseUpdate, wh.audio)
	s.Add(ecs.PhasePostUpdate, wh.physics)
	s.Add(ecs.PhasePostUpdate, wh.hierarchy)
	s.Add(ecs.PhaseLast, wh.collisions)
}

// Pack exposes the named asset handles to other subsystems.
func (wh *Warehouse) Pack() *asset.Pack {
	if wh == nil {
		return nil
	}
	return wh.pack
}

func (wh *Warehouse) Registry() *asset.Registry {
	if wh == nil {
		return nil
	}
	return wh.registry
}

func (wh *Warehouse) Space() *cp.Space {
	if wh == nil {
		return nil
	}
	return wh.physics.Space()
}

// Phase returns the current load phase.
func (wh *Warehouse) Phase() component.LoadPhase {
	if wh == nil {
		return component.LoadPhaseLoading
	}
	return system.CurrentLoadPhase(wh.world)
}

// SceneRuns returns how many times the main scene was instantiated.
func (wh *Warehouse) SceneRuns() int {
	if wh == nil {
		return 0
	}
	return wh.scene.Runs()
}

// ReloadPrefabs re-reads the changed spec files that affect a running scene.
// Only package.yaml can change after startup; the pack and ground are fixed
// once loading began.
func (wh *Warehouse) ReloadPrefabs(names []string) error {
	if wh == nil {
		return nil
	}
	for _, name := range names {
		if name != prefabs.PackageFile {
			wh.log.Debug("ignoring prefab change", zap.String("file", name))
			continue
		}
		spec, err := prefabs.LoadPackageSpec()
		if err != nil {
			return fmt.Errorf("warehouse: reload: %w", err)
		}
		key, err := spec.Key()
		if err != nil {
			return fmt.Errorf("warehouse: reload: %w", err)
		}
		wh.spawner.SetSpec(spec)
		wh.input.SetSpawnKey(key)
		wh.log.Info("prefab reloaded",
			zap.String("file", name),
			zap.Float64("friction", spec.Friction),
			zap.String("spawn_key", spec.SpawnKey))
	}
	return nil
}
