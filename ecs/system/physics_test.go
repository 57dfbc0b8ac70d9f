package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/warehouse/ecs"
	"github.com/milk9111/warehouse/ecs/component"
	"github.com/milk9111/warehouse/ecs/entity"
	"github.com/milk9111/warehouse/prefabs"
)

func TestPackageLandsOnGround(t *testing.T) {
	h := newHarness(t, harnessOptions{ground: true})
	h.loadAll()

	var ground ecs.Entity
	ecs.ForEach(h.world, component.GroundTagComponent.Kind(), func(e ecs.Entity, _ *component.GroundTag) { ground = e })
	require.True(t, ground.Valid(), "ground spawned on entering Done")

	h.press()
	h.ticks(180)

	pkgs := h.packages()
	require.Len(t, pkgs, 1)
	transform, ok := ecs.Get(h.world, pkgs[0], component.TransformComponent.Kind())
	require.True(t, ok)
	assert.InDelta(t, 0.35, transform.Position.Y(), 0.15, "resting on the ground")
	assert.Positive(t, h.collisions.Seen())
	assert.Equal(t, 2, h.physics.Bodies())
	assert.Zero(t, len(ecs.Read[ecs.CollisionEvent](h.world.Events())), "collision events do not outlive the tick")
}

func TestPhysicsIdleWhileLoading(t *testing.T) {
	h := newHarness(t, harnessOptions{})
	_, err := entity.NewGround(h.world, &prefabs.GroundSpec{Collider: prefabs.ColliderSpec{Edge: 1}})
	require.NoError(t, err)

	h.ticks(3)
	assert.Zero(t, h.physics.Bodies())
}

func TestPhysicsRemovesDestroyedBodies(t *testing.T) {
	h := newHarness(t, harnessOptions{ground: true})
	h.loadAll()
	h.press()
	require.Equal(t, 2, h.physics.Bodies())

	for _, e := range h.packages() {
		ecs.DestroyEntity(h.world, e)
	}
	h.tick()
	assert.Equal(t, 1, h.physics.Bodies())
	for _, n := range sceneNodes(h.world) {
		assert.True(t, ecs.IsAlive(h.world, ecs.Entity(n.Root)), "no scene node outlives its root")
	}
}

func TestCollisionLogDrainsEvents(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewCollisionLogSystem(nil)
	a, b := ecs.CreateEntity(w), ecs.CreateEntity(w)

	ecs.Emit(w.Events(), ecs.CollisionEvent{A: a, B: b, Began: true})
	ecs.Emit(w.Events(), "unrelated")
	ecs.Emit(w.Events(), ecs.CollisionEvent{A: a, B: b})
	sys.Update(w)

	assert.Equal(t, 2, sys.Seen())
	assert.Empty(t, ecs.Read[ecs.CollisionEvent](w.Events()))
	assert.Equal(t, 1, w.Events().Len())
}
