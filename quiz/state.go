package quiz

import (
	"fmt"

	"github.com/jsphweid/earthosechords/chord"
	"github.com/jsphweid/earthosechords/model"
	"github.com/jsphweid/earthosechords/theory"
)

type Mode int

const (
	SingleChord Mode = iota
	Progression
	Interval
	ChordTone
)

var modeNames = map[Mode]string{
	SingleChord: "single_chord",
	Progression: "progression",
	Interval:    "interval",
	ChordTone:   "chord_tone",
}

func (m Mode) String() string {
	return modeNames[m]
}

func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

type Score struct {
	Correct int
	Total   int
}

func (s Score) String() string {
	if s.Total == 0 {
		return "score: 0 / 0"
	}
	return fmt.Sprintf("score: %d / %d = %.2f%%", s.Correct, s.Total, 100*float64(s.Correct)/float64(s.Total))
}

// Question is the cached stimulus, replayed as is until a new question is
// asked.
type Question struct {
	Mode        Mode
	Numeral     chord.Numeral
	Chord       chord.Chord
	TonicOctave int
	ToneIndex   int
	Progression []chord.Numeral
	Strums      []chord.Numeral
	Interval    theory.Interval
	Bars        []model.Bar
}

func (q Question) Tone() theory.Pitch {
	return q.Chord.Note(q.ToneIndex)
}

type Settings struct {
	Key         theory.Key
	Mode        Mode
	Seventh     bool
	ManyOctaves bool
	TonicOctave int
	BPM         float64
}

// State is everything the quiz knows between turns. Command handlers take
// it by value and return the next one.
type State struct {
	Key                 theory.Key
	Mode                Mode
	Seventh             bool
	ManyOctaves         bool
	TonicOctave         int
	BPM                 float64
	ChordToneResolution int
	Score               Score
	Question            *Question
	NewQuestion         bool
}

func NewState(s Settings, chordToneResolution int) State {
	return State{
		Key:                 s.Key,
		Mode:                s.Mode,
		Seventh:             s.Seventh,
		ManyOctaves:         s.ManyOctaves,
		TonicOctave:         s.TonicOctave,
		BPM:                 s.BPM,
		ChordToneResolution: chordToneResolution,
		NewQuestion:         true,
	}
}

func (s State) Numerals() []chord.Numeral {
	return chord.Numerals(s.Seventh)
}

func (s State) Tones() []int {
	return chord.Tones(s.Seventh)
}
