package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jsphweid/earthosechords/constants"
	"github.com/jsphweid/earthosechords/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const ticksPerQuarter = smf.MetricTicks(960)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF
	var err error

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)

	if err != nil {
		errText := fmt.Sprintf("Error reading midi file... %s", err.Error())
		return &blank, errors.New(errText)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))

	if err != nil {
		errText := fmt.Sprintf("Error parsing midi file... %s", err.Error())
		return &blank, errors.New(errText)
	}

	return res, nil
}

// Build renders bars as a single track SMF. Each bar's notes start
// together and stop together after its beats.
func Build(bars []model.Bar, bpm float64) *smf.SMF {
	var s smf.SMF
	s.TimeFormat = ticksPerQuarter

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(bpm))

	var rest uint32
	for _, bar := range bars {
		length := uint32(bar.Beats * float64(ticksPerQuarter.Ticks4th()))
		if len(bar.Notes) == 0 {
			rest += length
			continue
		}
		for i, p := range bar.Notes {
			delta := uint32(0)
			if i == 0 {
				delta = rest
			}
			tr.Add(delta, midi.NoteOn(0, p.MIDIKey(), constants.Velocity))
		}
		for i, p := range bar.Notes {
			delta := uint32(0)
			if i == 0 {
				delta = length
			}
			tr.Add(delta, midi.NoteOff(0, p.MIDIKey()))
		}
		rest = 0
	}
	tr.Close(rest)

	s.Tracks = append(s.Tracks, tr)
	return &s
}

func WriteSMF(w io.Writer, bars []model.Bar, bpm float64) error {
	_, err := Build(bars, bpm).WriteTo(w)
	return err
}

func WriteFile(path string, bars []model.Bar, bpm float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteSMF(f, bars, bpm)
}

type reducedEvent struct {
	tick      uint64
	isNoteOff bool
	note      uint8
}

// ExtractChords lists the notes sounding right after every tick at which
// at least one note starts.
func ExtractChords(s *smf.SMF) []model.InspectedChord {
	var reducedEvents []reducedEvent
	for _, events := range s.Tracks {
		var absTicks uint64
		for _, event := range events {
			absTicks += uint64(event.Delta)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				reducedEvents = append(reducedEvents, reducedEvent{
					tick:      absTicks,
					isNoteOff: velocity == 0,
					note:      key,
				})
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				reducedEvents = append(reducedEvents, reducedEvent{
					tick:      absTicks,
					isNoteOff: true,
					note:      key,
				})
			}
		}
	}

	// prioritize smaller ticks then note off
	sort.SliceStable(reducedEvents, func(i, j int) bool {
		if reducedEvents[i].tick != reducedEvents[j].tick {
			return reducedEvents[i].tick < reducedEvents[j].tick
		}
		return reducedEvents[i].isNoteOff && !reducedEvents[j].isNoteOff
	})

	var chords []model.InspectedChord
	pressed := make(map[uint8]bool)
	for i, evt := range reducedEvents {
		if evt.isNoteOff {
			delete(pressed, evt.note)
		} else {
			pressed[evt.note] = true
		}
		lastAtTick := i == len(reducedEvents)-1 || reducedEvents[i+1].tick != evt.tick
		if !lastAtTick || !startsAt(reducedEvents, evt.tick) || len(pressed) == 0 {
			continue
		}
		c := model.InspectedChord{Tick: evt.tick}
		for note := range pressed {
			c.Notes = append(c.Notes, note)
		}
		sort.Slice(c.Notes, func(i, j int) bool {
			return c.Notes[i] < c.Notes[j]
		})
		chords = append(chords, c)
	}
	return chords
}

func startsAt(events []reducedEvent, tick uint64) bool {
	for _, e := range events {
		if e.tick == tick && !e.isNoteOff {
			return true
		}
	}
	return false
}
