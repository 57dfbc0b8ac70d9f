package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/warehouse/asset"
	"github.com/milk9111/warehouse/ecs"
	"github.com/milk9111/warehouse/ecs/component"
	"github.com/milk9111/warehouse/ecs/entity"
	"github.com/milk9111/warehouse/prefabs"
)

// PackageSpawnSystem spawns one crate per spawn key press once the scene is
// Done and the package asset has resolved.
type PackageSpawnSystem struct {
	log     *zap.Logger
	spec    *prefabs.PackageSpec
	spawned int
}

func NewPackageSpawnSystem(spec *prefabs.PackageSpec, log *zap.Logger) *PackageSpawnSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &PackageSpawnSystem{log: log, spec: spec}
}

// SetSpec swaps the tuning used for the next spawn.
func (s *PackageSpawnSystem) SetSpec(spec *prefabs.PackageSpec) {
	if s == nil || spec == nil {
		return
	}
	s.spec = spec
}

// Spawned returns how many crates were spawned.
func (s *PackageSpawnSystem) Spawned() int {
	if s == nil {
		return 0
	}
	return s.spawned
}

func (s *PackageSpawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.spec == nil {
		return
	}
	if !InLoadPhase(w, component.LoadPhaseDone) {
		return
	}

	input, ok := ecs.Singleton(w, component.InputComponent.Kind())
	if !ok || !input.SpawnPressed {
		return
	}
	pack, ok := assetPack(w)
	if !ok {
		return
	}
	g, ok := asset.GetReady(pack.Registry, pack.Pack.Package)
	if !ok {
		s.log.Debug("package asset not ready, ignoring spawn", zap.Stringer("state", pack.Registry.RecursiveState(pack.Pack.Package)))
		return
	}

	e, err := entity.NewPackage(w, s.spec, pack.Pack.Package, g, s.spawned+1)
	if err != nil {
		s.log.Error("spawn package", zap.Error(err))
		return
	}
	s.spawned++
	s.log.Debug("package spawned",
		zap.Stringer("entity", e),
		zap.Int("serial", s.spawned),
		zap.Float64("friction", s.spec.Friction))
}
