// Package audio plays short synthesized clicks when ripples fire
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	// Ripples closer together than this share one click
	minClickGap = 30 * time.Millisecond

	clickDuration = 60 * time.Millisecond
)

// SoundManager mixes ripple clicks onto the speaker
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	volume      float64
	lastClick   time.Time
	seed        int64

	now func() time.Time
}

// NewSoundManager creates a sound manager; Initialize must succeed before anything is audible
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
		seed:  time.Now().UnixNano(),
		now:   time.Now,
	}
}

// Initialize opens the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences pending clicks
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.initialized = false
}

// SetMuted toggles output without tearing down the speaker
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

// SetVolume adjusts click loudness in half-steps of base 2, 0 is unchanged
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	sm.volume = v
	sm.mu.Unlock()
}

// PlayGlitch plays one click; larger ripples sound lower
// Returns false when the click was dropped
func (sm *SoundManager) PlayGlitch(neighbors int) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return false
	}

	now := sm.now()
	if !sm.lastClick.IsZero() && now.Sub(sm.lastClick) < minClickGap {
		return false
	}
	sm.lastClick = now
	sm.seed++

	stream := sm.clickStreamer(neighbors)

	speaker.Lock()
	sm.mixer.Add(stream)
	speaker.Unlock()
	return true
}

func (sm *SoundManager) clickStreamer(neighbors int) beep.Streamer {
	gen := NewClickGenerator(sampleRate, ClickPitch(neighbors), sm.seed)
	return &effects.Volume{
		Streamer: beep.Take(sampleRate.N(clickDuration), gen),
		Base:     2,
		Volume:   sm.volume,
	}
}
