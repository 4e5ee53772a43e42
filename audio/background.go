package audio

import (
	"context"
	"errors"
)

// Task is playback running behind a prompt. Cancel stops it and waits, so
// the next playback never overlaps it.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

func Background(ctx context.Context, fn func(ctx context.Context) error) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.err = fn(ctx)
	}()
	return t
}

// Wait returns the playback error; a cancelled task is not an error.
func (t *Task) Wait() error {
	<-t.done
	t.cancel()
	if errors.Is(t.err, context.Canceled) {
		return nil
	}
	return t.err
}

func (t *Task) Cancel() error {
	t.cancel()
	return t.Wait()
}
