package audio

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/jsphweid/earthosechords/constants"
	"github.com/jsphweid/earthosechords/model"
	"github.com/jsphweid/earthosechords/theory"
)

// FluidSynthSink drives an external fluidsynth process through its command
// shell on stdin.
type FluidSynthSink struct {
	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	closed bool
}

func NewFluidSynthSink(soundFont string) (*FluidSynthSink, error) {
	if _, err := os.Stat(soundFont); err != nil {
		return nil, fmt.Errorf("sound font: %w", err)
	}
	path, err := exec.LookPath("fluidsynth")
	if err != nil {
		return nil, fmt.Errorf("fluidsynth not found: %w", err)
	}

	cmd := exec.Command(path, "-q", soundFont)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		stdin.Close()
		return nil, fmt.Errorf("starting fluidsynth: %w", err)
	}
	return &FluidSynthSink{cmd: cmd, stdin: stdin}, nil
}

func (f *FluidSynthSink) send(format string, args ...any) error {
	_, err := fmt.Fprintf(f.stdin, format+"\n", args...)
	return err
}

func (f *FluidSynthSink) sequencer() noteSequencer {
	return noteSequencer{
		on: func(key uint8) error {
			return f.send("noteon 0 %d %d", key, constants.Velocity)
		},
		off: func(key uint8) error {
			return f.send("noteoff 0 %d", key)
		},
	}
}

func (f *FluidSynthSink) Play(ctx context.Context, bars []model.Bar, bpm float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrSinkClosed
	}
	return f.sequencer().play(ctx, bars, bpm)
}

func (f *FluidSynthSink) PlaySingle(ctx context.Context, p theory.Pitch, bpm float64) error {
	return f.Play(ctx, []model.Bar{model.NewBar(1, p)}, bpm)
}

func (f *FluidSynthSink) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	f.send("quit")
	f.stdin.Close()

	done := make(chan error, 1)
	go func() { done <- f.cmd.Wait() }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		f.cmd.Process.Kill()
		<-done
	}
	return nil
}
