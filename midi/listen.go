package midi

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/earthosechords/theory"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

// phrase collects the notes played on a keyboard until the player pauses.
type phrase struct {
	mu    sync.Mutex
	keys  []uint8
	flush func(f func())
	out   chan string
}

func newPhrase(window time.Duration) *phrase {
	return &phrase{
		flush: debounce.New(window),
		out:   make(chan string, 1),
	}
}

func (p *phrase) noteStart(key uint8) {
	p.mu.Lock()
	p.keys = append(p.keys, key)
	p.mu.Unlock()
	p.flush(p.emit)
}

func (p *phrase) emit() {
	p.mu.Lock()
	keys := p.keys
	p.keys = nil
	p.mu.Unlock()
	if len(keys) == 0 {
		return
	}
	// drop the phrase if the last one hasn't been read
	select {
	case p.out <- PhraseAnswer(keys):
	default:
	}
}

// PhraseAnswer spells keys in the order played, e.g. "C F G".
func PhraseAnswer(keys []uint8) string {
	var names []string
	for _, k := range keys {
		names = append(names, theory.PitchFromMIDI(k).Class().Name(false))
	}
	return strings.Join(names, " ")
}

// ListenAnswers turns phrases played on a MIDI keyboard into answer
// strings. A phrase ends after window without a new note.
func ListenAnswers(ctx context.Context, port string, window time.Duration) (<-chan string, error) {
	in, err := midi.FindInPort(port)
	if err != nil {
		return nil, fmt.Errorf("can't find MIDI in port %q: %w", port, err)
	}

	p := newPhrase(window)
	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var ch, key, vel uint8
		if msg.GetNoteStart(&ch, &key, &vel) {
			p.noteStart(key)
		}
	})
	if err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()
		stop()
	}()
	return p.out, nil
}
