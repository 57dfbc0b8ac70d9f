package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/warehouse/asset"
	"github.com/milk9111/warehouse/ecs"
	"github.com/milk9111/warehouse/ecs/component"
)

// Mixer plays decoded clips.
type Mixer interface {
	Play(clip *asset.AudioClip, loop bool, volume float64) error
}

// AudioSystem starts every AudioSource once its clip resolves.
type AudioSystem struct {
	log   *zap.Logger
	mixer Mixer
}

func NewAudioSystem(mixer Mixer, log *zap.Logger) *AudioSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &AudioSystem{log: log, mixer: mixer}
}

func (a *AudioSystem) Update(w *ecs.World) {
	if a == nil || w == nil || a.mixer == nil {
		return
	}
	pack, ok := assetPack(w)
	if !ok {
		return
	}

	ecs.ForEach(w, component.AudioSourceComponent.Kind(), func(e ecs.Entity, src *component.AudioSource) {
		if src.Started {
			return
		}
		clip, ok := asset.Get(pack.Registry, src.Clip)
		if !ok {
			if pack.Registry.State(src.Clip) == asset.Failed {
				src.Started = true
			}
			return
		}
		src.Started = true
		if err := a.mixer.Play(clip, src.Loop, src.Volume); err != nil {
			a.log.Error("play audio", zap.String("name", src.Name), zap.String("path", clip.Path), zap.Error(err))
			return
		}
		a.log.Debug("audio started", zap.String("name", src.Name), zap.Bool("loop", src.Loop), zap.Stringer("entity", e))
	})
}
