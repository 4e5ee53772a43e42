package theory

import "fmt"

// Interval holds the two pitches of a diatonic interval. Root is the pitch
// the interval was built from; Low and High are the same pitches sorted.
type Interval struct {
	Root      Pitch
	Other     Pitch
	Span      int
	Ascending bool
}

func (iv Interval) Low() Pitch {
	if iv.Root < iv.Other {
		return iv.Root
	}
	return iv.Other
}

func (iv Interval) High() Pitch {
	if iv.Root < iv.Other {
		return iv.Other
	}
	return iv.Root
}

func (iv Interval) Pitches() [2]Pitch {
	return [2]Pitch{iv.Low(), iv.High()}
}

func (iv Interval) Semitones() int {
	return int(iv.High() - iv.Low())
}

// IntervalFromRoot walks degreeSpan-1 diatonic steps up or down from root.
// Spans past an octave are compound intervals.
func IntervalFromRoot(k Key, root Pitch, degreeSpan int, ascending bool) (Interval, error) {
	if degreeSpan <= 0 {
		return Interval{}, fmt.Errorf("%w: span %d", ErrInvalidDegree, degreeSpan)
	}
	degree, err := PitchToDegree(k, root)
	if err != nil {
		return Interval{}, err
	}
	idx := degree - 1
	steps := degreeSpan - 1
	if !ascending {
		steps = -steps
	}
	other := root.Transpose(k.diatonicOffset(idx+steps) - k.diatonicOffset(idx))
	return Interval{Root: root, Other: other, Span: degreeSpan, Ascending: ascending}, nil
}

// SoundingSpan turns a unison into an octave so the interval is audible.
func SoundingSpan(span int) int {
	if span == 1 {
		return 8
	}
	return span
}
