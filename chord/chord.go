package chord

import (
	"fmt"
	"strings"

	"github.com/jsphweid/earthosechords/model"
	"github.com/jsphweid/earthosechords/theory"
)

// Chord is an immutable set of pitches, root first. Use Transpose to get a
// shifted copy.
type Chord struct {
	Numeral Numeral
	notes   []theory.Pitch
}

func New(n Numeral, notes ...theory.Pitch) Chord {
	c := Chord{Numeral: n, notes: make([]theory.Pitch, len(notes))}
	copy(c.notes, notes)
	return c
}

func (c Chord) Notes() []theory.Pitch {
	res := make([]theory.Pitch, len(c.notes))
	copy(res, c.notes)
	return res
}

func (c Chord) Len() int {
	return len(c.notes)
}

func (c Chord) Note(i int) theory.Pitch {
	return c.notes[i]
}

func (c Chord) Root() theory.Pitch {
	return c.notes[0]
}

func (c Chord) Transpose(semitones int) Chord {
	res := Chord{Numeral: c.Numeral, notes: make([]theory.Pitch, len(c.notes))}
	for i, p := range c.notes {
		res.notes[i] = p.Transpose(semitones)
	}
	return res
}

// ForDegree stacks diatonic thirds on the numeral's degree, with the tonic
// of the key in octave. An Up numeral is built one octave higher.
func ForDegree(k theory.Key, n Numeral, octave int) (Chord, error) {
	size := 3
	if n.Seventh {
		size = 4
	}
	notes := make([]theory.Pitch, 0, size)
	for i := 0; i < size; i++ {
		p, err := theory.ScaleDegreeToPitch(k, n.Degree+2*i, octave)
		if err != nil {
			return Chord{}, fmt.Errorf("building %v: %w", n, err)
		}
		notes = append(notes, p)
	}
	c := New(n, notes...)
	if n.Up {
		c = c.Transpose(12)
	}
	return c, nil
}

func MustForDegree(k theory.Key, n Numeral, octave int) Chord {
	c, err := ForDegree(k, n, octave)
	if err != nil {
		panic(err)
	}
	return c
}

// OctaveCorrect moves every voice by the same number of octaves so the root
// lands at or above referenceRoot. Chords are only ever pushed up. A raised
// tonic is placed one octave above where the plain tonic would land.
func OctaveCorrect(c Chord, referenceRoot theory.Pitch) Chord {
	root := c.Root()
	if c.Numeral.Up {
		root = root.Transpose(-12)
	}
	delta := 0
	for root.Transpose(delta) < referenceRoot {
		delta += 12
	}
	if delta == 0 {
		return c
	}
	return c.Transpose(delta)
}

var qualities = map[string]string{
	"4-7":    "maj",
	"3-7":    "min",
	"3-6":    "dim",
	"4-8":    "aug",
	"4-7-11": "maj7",
	"4-7-10": "7",
	"3-7-10": "m7",
	"3-6-10": "m7b5",
	"3-6-9":  "dim7",
	"3-7-11": "mMaj7",
	"4-8-11": "augMaj7",
}

func (c Chord) intervalKey() string {
	var parts []string
	for _, p := range c.notes[1:] {
		parts = append(parts, fmt.Sprintf("%v", int(p-c.Root())))
	}
	return strings.Join(parts, "-")
}

// Quality names the chord from its intervals above the root, "" if unknown.
func (c Chord) Quality() string {
	if len(c.notes) < 2 {
		return ""
	}
	return qualities[c.intervalKey()]
}

// Name formats a feedback line such as "V - G maj -- G B D".
func (c Chord) Name(k theory.Key) string {
	var names []string
	for _, p := range c.notes {
		names = append(names, k.NoteName(p))
	}
	return fmt.Sprintf("%v - %s %s -- %s", c.Numeral, k.NoteName(c.Root()), c.Quality(), strings.Join(names, " "))
}

// Bar holds the whole chord for beats.
func (c Chord) Bar(beats float64) model.Bar {
	return model.NewBar(beats, c.notes...)
}

// Arpeggio plays the chord one voice at a time in the given voice order;
// a nil order means root up.
func Arpeggio(c Chord, order []int, beats float64) []model.Bar {
	if order == nil {
		for i := range c.notes {
			order = append(order, i)
		}
	}
	var bars []model.Bar
	for _, i := range order {
		bars = append(bars, model.NewBar(beats, c.notes[i]))
	}
	return bars
}

// Descending reverses the voice order.
func Descending(c Chord) []int {
	var order []int
	for i := len(c.notes) - 1; i >= 0; i-- {
		order = append(order, i)
	}
	return order
}

func Bars(chords []Chord, beats float64) []model.Bar {
	var bars []model.Bar
	for _, c := range chords {
		bars = append(bars, c.Bar(beats))
	}
	return bars
}
