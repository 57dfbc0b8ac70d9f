package assets

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/milk9111/warehouse/asset"
)

// Mixer plays decoded clips through Ebiten's audio context. Players are kept
// alive for the mixer's lifetime.
type Mixer struct {
	ctx *audio.Context

	mu      sync.Mutex
	players []*audio.Player
}

// NewMixer returns a mixer on the process's audio context, creating it at
// sampleRate if none exists yet.
func NewMixer(sampleRate int) *Mixer {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	return &Mixer{ctx: ctx}
}

func (m *Mixer) SampleRate() int {
	return m.ctx.SampleRate()
}

func (m *Mixer) Play(clip *asset.AudioClip, loop bool, volume float64) error {
	if clip == nil {
		return fmt.Errorf("mixer: play: nil clip")
	}
	if clip.SampleRate != m.ctx.SampleRate() {
		return fmt.Errorf("mixer: play %q: clip is %d Hz, context is %d Hz", clip.Path, clip.SampleRate, m.ctx.SampleRate())
	}

	var player *audio.Player
	var err error
	if loop {
		player, err = m.ctx.NewPlayer(audio.NewInfiniteLoop(bytes.NewReader(clip.PCM), int64(len(clip.PCM))))
	} else {
		player = m.ctx.NewPlayerFromBytes(clip.PCM)
	}
	if err != nil {
		return fmt.Errorf("mixer: play %q: %w", clip.Path, err)
	}
	player.SetVolume(volume)
	player.Play()

	m.mu.Lock()
	m.players = append(m.players, player)
	m.mu.Unlock()
	return nil
}

// Close stops every player started by the mixer.
func (m *Mixer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var firstErr error
	for _, p := range m.players {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.players = nil
	return firstErr
}
