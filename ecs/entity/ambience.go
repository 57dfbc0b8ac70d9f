package entity

import (
	"fmt"

	"github.com/milk9111/warehouse/asset"
	"github.com/milk9111/warehouse/ecs"
	"github.com/milk9111/warehouse/ecs/component"
	"github.com/milk9111/warehouse/prefabs"
)

func NewAmbience(w *ecs.World, clip asset.Handle[*asset.AudioClip], spec prefabs.AmbienceSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("ambience: world is nil")
	}
	loop := true
	if spec.Loop != nil {
		loop = *spec.Loop
	}
	volume := spec.Volume
	if volume <= 0 {
		volume = 1
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.AudioSourceComponent.Kind(), &component.AudioSource{
		Clip:   clip,
		Name:   asset.Ambience,
		Loop:   loop,
		Volume: volume,
	}); err != nil {
		return 0, fmt.Errorf("ambience: add audio source: %w", err)
	}
	if err := ecs.Add(w, e, component.AmbienceTagComponent.Kind(), &component.AmbienceTag{}); err != nil {
		return 0, fmt.Errorf("ambience: add tag: %w", err)
	}
	return e, nil
}
