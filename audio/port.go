package audio

import (
	"context"
	"fmt"
	"sync"

	"github.com/jsphweid/earthosechords/constants"
	"github.com/jsphweid/earthosechords/model"
	"github.com/jsphweid/earthosechords/theory"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

// PortSink sends notes to a MIDI output port, e.g. a hardware synth or a
// software synth listening on a virtual port.
type PortSink struct {
	mu     sync.Mutex
	send   func(msg midi.Message) error
	closed bool
}

func NewPortSink(name string) (*PortSink, error) {
	out, err := midi.FindOutPort(name)
	if err != nil {
		return nil, fmt.Errorf("can't find MIDI out port %q: %w", name, err)
	}
	send, err := midi.SendTo(out)
	if err != nil {
		return nil, err
	}
	return &PortSink{send: send}, nil
}

func (s *PortSink) sequencer() noteSequencer {
	return noteSequencer{
		on: func(key uint8) error {
			return s.send(midi.NoteOn(0, key, constants.Velocity))
		},
		off: func(key uint8) error {
			return s.send(midi.NoteOff(0, key))
		},
	}
}

func (s *PortSink) Play(ctx context.Context, bars []model.Bar, bpm float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSinkClosed
	}
	return s.sequencer().play(ctx, bars, bpm)
}

func (s *PortSink) PlaySingle(ctx context.Context, p theory.Pitch, bpm float64) error {
	return s.Play(ctx, []model.Bar{model.NewBar(1, p)}, bpm)
}

func (s *PortSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		midi.CloseDriver()
	}
	return nil
}
