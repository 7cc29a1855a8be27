package audio

import (
	"math"

	"github.com/gopxl/beep"
)

const (
	maxPitch = 2400.0
	minPitch = 600.0
)

// ClickPitch maps ripple size to a tone, dropping an octave-ish every few neighbors
func ClickPitch(neighbors int) float64 {
	if neighbors < 0 {
		neighbors = 0
	}
	f := maxPitch / (1 + 0.25*float64(neighbors))
	return math.Max(f, minPitch)
}

// ClickGenerator is a decaying tone blended with filtered noise
type ClickGenerator struct {
	sr    beep.SampleRate
	freq  float64
	pos   int
	seed  int64
	noise float64
}

// NewClickGenerator creates a click at freq; seed fixes the noise sequence
func NewClickGenerator(sr beep.SampleRate, freq float64, seed int64) *ClickGenerator {
	return &ClickGenerator{
		sr:   sr,
		freq: freq,
		seed: seed & 0x7fffffff,
	}
}

func (g *ClickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Fast attack, sharp exponential decay
		envelope := math.Min(t/0.002, 1.0) * math.Exp(-t*60)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		white := float64(g.seed)/float64(0x7fffffff)*2 - 1
		g.noise += 0.35 * (white - g.noise)

		tone := math.Sin(2 * math.Pi * g.freq * t)
		sample := envelope * (0.18*tone + 0.12*g.noise)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ClickGenerator) Err() error {
	return nil
}
