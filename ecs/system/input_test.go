package system

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/warehouse/ecs"
	"github.com/milk9111/warehouse/ecs/component"
	"github.com/milk9111/warehouse/ecs/entity"
)

const keyG = ebiten.KeyG

func TestInputEdgeDetection(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := entity.NewInput(w); err != nil {
		t.Fatal(err)
	}
	keys := &fakeKeys{down: map[ebiten.Key]bool{}}
	sys := NewInputSystem(keys, keyG)

	steps := []struct {
		down        bool
		wantHeld    bool
		wantPressed bool
	}{
		{false, false, false},
		{true, true, true},
		{true, true, false},
		{true, true, false},
		{false, false, false},
		{true, true, true},
	}

	for i, step := range steps {
		keys.down[keyG] = step.down
		sys.Update(w)
		input, ok := ecs.Singleton(w, component.InputComponent.Kind())
		if !ok {
			t.Fatal("input entity missing")
		}
		if input.SpawnHeld != step.wantHeld || input.SpawnPressed != step.wantPressed {
			t.Fatalf("step %d: held=%v pressed=%v, want held=%v pressed=%v", i, input.SpawnHeld, input.SpawnPressed, step.wantHeld, step.wantPressed)
		}
	}
}

func TestSetSpawnKeyRebinds(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := entity.NewInput(w); err != nil {
		t.Fatal(err)
	}
	keys := &fakeKeys{down: map[ebiten.Key]bool{keyG: true}}
	sys := NewInputSystem(keys, ebiten.KeySpace)
	sys.Update(w)

	input, _ := ecs.Singleton(w, component.InputComponent.Kind())
	if input.SpawnHeld {
		t.Fatal("G should not count before the rebind")
	}

	sys.SetSpawnKey(keyG)
	sys.Update(w)
	if !input.SpawnHeld || !input.SpawnPressed {
		t.Fatalf("after rebind: held=%v pressed=%v, want both", input.SpawnHeld, input.SpawnPressed)
	}
}
