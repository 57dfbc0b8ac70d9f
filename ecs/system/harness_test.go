package system

import (
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/warehouse/asset"
	"github.com/milk9111/warehouse/asset/assettest"
	"github.com/milk9111/warehouse/ecs"
	"github.com/milk9111/warehouse/ecs/component"
	"github.com/milk9111/warehouse/ecs/entity"
	"github.com/milk9111/warehouse/prefabs"
)

const (
	primaryPath  = "models/starting_warehouse.glb"
	packagePath  = "models/box.glb"
	ambiencePath = "audio/ambience.wav"
)

type fakeKeys struct {
	down map[ebiten.Key]bool
}

func (k *fakeKeys) IsKeyPressed(key ebiten.Key) bool {
	return k.down[key]
}

type played struct {
	clip   *asset.AudioClip
	loop   bool
	volume float64
}

type fakeMixer struct {
	played []played
}

func (m *fakeMixer) Play(clip *asset.AudioClip, loop bool, volume float64) error {
	m.played = append(m.played, played{clip: clip, loop: loop, volume: volume})
	return nil
}

type harness struct {
	t        *testing.T
	world    *ecs.World
	sched    *ecs.Scheduler
	runner   *assettest.ManualRunner
	registry *asset.Registry
	pack     *asset.Pack
	keys     *fakeKeys
	mixer    *fakeMixer

	scene      *SceneSpawnSystem
	spawner    *PackageSpawnSystem
	physics    *PhysicsSystem
	hierarchy  *SceneHierarchySystem
	collisions *CollisionLogSystem
}

type harnessOptions struct {
	files   fstest.MapFS
	paths   asset.PackPaths
	waitFor component.WaitFor
	ground  bool
}

func defaultFiles() fstest.MapFS {
	return fstest.MapFS{
		primaryPath:  {Data: assettest.GLB(assettest.SceneDoc("Scene", "shelf", "dock"), nil)},
		packagePath:  {Data: assettest.GLB(assettest.SceneDoc("Box"), nil)},
		ambiencePath: {Data: assettest.WAV(asset.DefaultSampleRate, 64)},
	}
}

func newHarness(t *testing.T, opts harnessOptions) *harness {
	t.Helper()
	if opts.files == nil {
		opts.files = defaultFiles()
	}
	if opts.paths == (asset.PackPaths{}) {
		opts.paths = asset.PackPaths{MainScene: primaryPath, Package: packagePath, Ambience: ambiencePath}
	}

	h := &harness{
		t:      t,
		world:  ecs.NewWorld(),
		sched:  ecs.NewScheduler(),
		runner: assettest.NewManualRunner(),
		keys:   &fakeKeys{down: map[ebiten.Key]bool{}},
		mixer:  &fakeMixer{},
	}
	h.registry = asset.NewRegistry(opts.files, asset.WithRunner(h.runner))

	var err error
	h.pack, err = asset.NewPack(h.registry, opts.paths, asset.MainScene)
	require.NoError(t, err)
	_, err = entity.NewAssetPack(h.world, h.registry, h.pack, opts.waitFor)
	require.NoError(t, err)
	_, err = entity.NewLoadState(h.world)
	require.NoError(t, err)
	_, err = entity.NewInput(h.world)
	require.NoError(t, err)

	packSpec := &prefabs.AssetPackSpec{Scene: "Scene", Ambience: prefabs.AmbienceSpec{Volume: 0.5}}
	pkgSpec := &prefabs.PackageSpec{
		Transform: prefabs.TransformSpec{Y: 2.5, Scale: 1},
		Collider:  prefabs.ColliderSpec{Edge: 0.7},
		Friction:  1.2,
		Mass:      1,
	}
	groundSpec := &prefabs.GroundSpec{
		Enabled:   opts.ground,
		Transform: prefabs.TransformSpec{Y: -0.1, Scale: 1},
		Collider:  prefabs.ColliderSpec{Width: 200, Height: 0.2, Depth: 200},
		Friction:  1,
	}

	h.scene = NewSceneSpawnSystem(packSpec, nil)
	h.spawner = NewPackageSpawnSystem(pkgSpec, nil)
	h.physics = NewPhysicsSystem(DefaultGravity)
	h.hierarchy = NewSceneHierarchySystem(nil)
	h.collisions = NewCollisionLogSystem(nil)

	transitions := NewStateTransitionSystem(nil)
	transitions.OnEnter(component.LoadPhaseDone, h.scene)
	transitions.OnEnter(component.LoadPhaseDone, NewGroundSpawnSystem(groundSpec, nil))

	h.sched.Add(ecs.PhaseStateTransition, transitions)
	h.sched.Add(ecs.PhaseInput, NewInputSystem(h.keys, ebiten.KeyG))
	h.sched.Add(ecs.PhasePreUpdate, NewAssetEventSystem(nil))
	h.sched.Add(ecs.PhasePreUpdate, NewLoadStateSystem(nil))
	h.sched.Add(ecs.PhaseUpdate, h.spawner)
	h.sched.Add(ecs.PhaseUpdate, NewAudioSystem(h.mixer, nil))
	h.sched.Add(ecs.PhasePostUpdate, h.physics)
	h.sched.Add(ecs.PhasePostUpdate, h.hierarchy)
	h.sched.Add(ecs.PhaseLast, h.collisions)
	return h
}

// tick runs one scheduler tick and returns the tick number that ran.
func (h *harness) tick() uint64 {
	n := h.world.Tick()
	h.sched.Update(h.world)
	return n
}

func (h *harness) ticks(n int) {
	for i := 0; i < n; i++ {
		h.tick()
	}
}

func (h *harness) phase() component.LoadPhase {
	return CurrentLoadPhase(h.world)
}

// press holds the spawn key for one tick and releases it for the next.
func (h *harness) press() {
	h.keys.down[ebiten.KeyG] = true
	h.tick()
	h.keys.down[ebiten.KeyG] = false
	h.tick()
}

func (h *harness) loadAll() {
	h.runner.RunAll()
	h.tick()
	h.tick()
	require.Equal(h.t, component.LoadPhaseDone, h.phase())
}

func (h *harness) packages() []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(h.world, component.PackageComponent.Kind(), func(e ecs.Entity, _ *component.Package) {
		out = append(out, e)
	})
	return out
}

func gltfFile(t *testing.T, doc map[string]any) *fstest.MapFile {
	t.Helper()
	return &fstest.MapFile{Data: assettest.GLTF(assettest.Doc(doc))}
}

func blobFile(data []byte) *fstest.MapFile {
	return &fstest.MapFile{Data: data}
}
