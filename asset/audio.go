package asset

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// DefaultSampleRate is the rate clips are resampled to when decoded.
const DefaultSampleRate = 44100

// AudioClip is a decoded sound: signed 16-bit little-endian stereo PCM at
// SampleRate, ready to hand to an audio player.
type AudioClip struct {
	Path       string
	PCM        []byte
	SampleRate int
}

// Duration returns the clip length in seconds.
func (c *AudioClip) Duration() float64 {
	if c == nil || c.SampleRate <= 0 {
		return 0
	}
	// 2 channels * 2 bytes per sample.
	return float64(len(c.PCM)) / float64(4*c.SampleRate)
}

// WAVLoader decodes .wav files into AudioClips.
type WAVLoader struct {
	SampleRate int
}

func (WAVLoader) Extensions() []string {
	return []string{".wav"}
}

func (l WAVLoader) Load(ctx *LoadContext, data []byte) (any, error) {
	rate := l.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	stream, err := wav.DecodeWithSampleRate(rate, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("wav: read pcm: %w", err)
	}
	return &AudioClip{Path: ctx.Path, PCM: pcm, SampleRate: rate}, nil
}
