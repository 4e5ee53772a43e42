package audio

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/jsphweid/earthosechords/model"
	"github.com/jsphweid/earthosechords/theory"
)

var ErrSinkClosed = errors.New("audio sink closed")

// Sink plays stimuli. Play and PlaySingle block until the sound is done or
// ctx is cancelled.
type Sink interface {
	Play(ctx context.Context, bars []model.Bar, bpm float64) error
	PlaySingle(ctx context.Context, p theory.Pitch, bpm float64) error
	Close() error
}

func BeatDuration(bpm float64) time.Duration {
	if bpm <= 0 {
		bpm = 60
	}
	return time.Duration(float64(time.Minute) / bpm)
}

func Frequency(p theory.Pitch) float64 {
	return 440.0 * math.Pow(2, (float64(p.MIDIKey())-69.0)/12.0)
}

// noteSequencer drives devices that only know note on and note off.
type noteSequencer struct {
	on  func(key uint8) error
	off func(key uint8) error
}

func (s noteSequencer) play(ctx context.Context, bars []model.Bar, bpm float64) error {
	beat := BeatDuration(bpm)
	for _, bar := range bars {
		for _, p := range bar.Notes {
			if err := s.on(p.MIDIKey()); err != nil {
				return err
			}
		}
		timer := time.NewTimer(time.Duration(bar.Beats * float64(beat)))
		var cancelled error
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
		case <-timer.C:
		}
		timer.Stop()
		for _, p := range bar.Notes {
			if err := s.off(p.MIDIKey()); err != nil {
				return err
			}
		}
		if cancelled != nil {
			return cancelled
		}
	}
	return nil
}

// NullSink plays nothing. Used with --mute and in tests.
type NullSink struct{}

func (NullSink) Play(ctx context.Context, bars []model.Bar, bpm float64) error {
	return ctx.Err()
}

func (NullSink) PlaySingle(ctx context.Context, p theory.Pitch, bpm float64) error {
	return ctx.Err()
}

func (NullSink) Close() error {
	return nil
}

// Recorder passes everything through to its sink and keeps a copy,
// rescaled to its own tempo, for export.
type Recorder struct {
	Sink
	mu   sync.Mutex
	bpm  float64
	bars []model.Bar
}

func NewRecorder(s Sink, bpm float64) *Recorder {
	return &Recorder{Sink: s, bpm: bpm}
}

func (r *Recorder) record(bars []model.Bar, bpm float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range bars {
		r.bars = append(r.bars, model.NewBar(b.Beats*r.bpm/bpm, b.Notes...))
	}
}

func (r *Recorder) Play(ctx context.Context, bars []model.Bar, bpm float64) error {
	r.record(bars, bpm)
	return r.Sink.Play(ctx, bars, bpm)
}

func (r *Recorder) PlaySingle(ctx context.Context, p theory.Pitch, bpm float64) error {
	r.record([]model.Bar{model.NewBar(1, p)}, bpm)
	return r.Sink.PlaySingle(ctx, p, bpm)
}

func (r *Recorder) Bars() []model.Bar {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]model.Bar, len(r.bars))
	copy(res, r.bars)
	return res
}

func (r *Recorder) BPM() float64 {
	return r.bpm
}
