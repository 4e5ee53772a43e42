package audio

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/jsphweid/earthosechords/model"
	"github.com/jsphweid/earthosechords/theory"
)

const sampleRate = beep.SampleRate(44100)

// SynthSink is the built-in sine synthesizer on the system speaker.
type SynthSink struct {
	mu     sync.Mutex
	sr     beep.SampleRate
	closed bool
}

func NewSynthSink() (*SynthSink, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return nil, err
	}
	return &SynthSink{sr: sampleRate}, nil
}

func (s *SynthSink) Play(ctx context.Context, bars []model.Bar, bpm float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSinkClosed
	}

	done := make(chan struct{})
	stream := beep.Seq(Render(s.sr, bars, bpm), beep.Callback(func() {
		close(done)
	}))
	speaker.Play(stream)

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}

func (s *SynthSink) PlaySingle(ctx context.Context, p theory.Pitch, bpm float64) error {
	return s.Play(ctx, []model.Bar{model.NewBar(1, p)}, bpm)
}

func (s *SynthSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	speaker.Clear()
	speaker.Close()
	return nil
}

// Render turns bars into one streamer, a ChordTone per bar.
func Render(sr beep.SampleRate, bars []model.Bar, bpm float64) beep.Streamer {
	beat := BeatDuration(bpm)
	var parts []beep.Streamer
	for _, bar := range bars {
		d := time.Duration(bar.Beats * float64(beat))
		if len(bar.Notes) == 0 {
			parts = append(parts, beep.Silence(sr.N(d)))
			continue
		}
		var freqs []float64
		for _, p := range bar.Notes {
			freqs = append(freqs, Frequency(p))
		}
		parts = append(parts, NewChordTone(sr, freqs, d))
	}
	return beep.Seq(parts...)
}

// ChordTone sums sines for each frequency with a short attack and an
// exponential decay.
type ChordTone struct {
	sr      beep.SampleRate
	freqs   []float64
	pos     int
	samples int
	attack  int
}

func NewChordTone(sr beep.SampleRate, freqs []float64, d time.Duration) *ChordTone {
	return &ChordTone{
		sr:      sr,
		freqs:   freqs,
		samples: sr.N(d),
		attack:  sr.N(time.Millisecond * 10),
	}
}

func (g *ChordTone) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.samples {
		return 0, false
	}
	gain := 0.6 / float64(len(g.freqs))
	for i := range samples {
		if g.pos >= g.samples {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * 2.5)
		if g.pos < g.attack {
			envelope *= float64(g.pos) / float64(g.attack)
		}
		// fade the tail so bars don't click
		if left := g.samples - g.pos; left < g.attack {
			envelope *= float64(left) / float64(g.attack)
		}

		sample := 0.0
		for _, f := range g.freqs {
			sample += math.Sin(2 * math.Pi * f * t)
		}
		sample *= gain * envelope

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChordTone) Err() error {
	return nil
}
