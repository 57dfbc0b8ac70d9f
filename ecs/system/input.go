package system

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/warehouse/ecs"
	"github.com/milk9111/warehouse/ecs/component"
)

// KeyState reports whether a key is held this tick.
type KeyState interface {
	IsKeyPressed(key ebiten.Key) bool
}

// EbitenKeys reads the keyboard through Ebiten.
type EbitenKeys struct{}

func (EbitenKeys) IsKeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

// InputSystem polls the spawn key and derives the pressed edge itself, so
// any KeyState works without Ebiten's frame bookkeeping.
type InputSystem struct {
	keys     KeyState
	spawnKey ebiten.Key
	wasHeld  bool
}

func NewInputSystem(keys KeyState, spawnKey ebiten.Key) *InputSystem {
	if keys == nil {
		keys = EbitenKeys{}
	}
	return &InputSystem{keys: keys, spawnKey: spawnKey}
}

// SetSpawnKey rebinds the spawn key, e.g. after a prefab reload.
func (i *InputSystem) SetSpawnKey(key ebiten.Key) {
	if i == nil {
		return
	}
	i.spawnKey = key
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil {
		return
	}

	held := i.keys.IsKeyPressed(i.spawnKey)
	pressed := held && !i.wasHeld
	i.wasHeld = held

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.SpawnHeld = held
		input.SpawnPressed = pressed
	})
}
