package theory

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allKeys() []Key {
	var keys []Key
	for _, name := range KeyNames {
		major := MustParseKey(name)
		minor := major
		minor.minor = true
		keys = append(keys, major, minor)
	}
	return keys
}

func TestParseKey(t *testing.T) {
	cases := []struct {
		input string
		tonic PitchClass
		minor bool
		str   string
	}{
		{"C", 0, false, "C Maj"},
		{"c", 0, true, "C min"},
		{"Bb", 10, false, "Bb Maj"},
		{"bb", 10, true, "Bb min"},
		{"f#", 6, true, "F# min"},
		{"Ab", 8, false, "Ab Maj"},
	}
	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			k, err := ParseKey(c.input)
			require.NoError(t, err)
			assert := assert.New(t)
			assert.Equal(c.tonic, k.Tonic())
			assert.Equal(c.minor, k.Minor())
			assert.Equal(c.str, k.String())
			assert.Equal(c.input, k.Name())
		})
	}
}

func TestParseKeyRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "H", "C+", "x"} {
		_, err := ParseKey(input)
		assert.ErrorIs(t, err, ErrInvalidKey, input)
	}
}

func TestRandomKeyHonoursMode(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		assert.True(t, RandomKey(rng, true).Minor())
		assert.False(t, RandomKey(rng, false).Minor())
	}
}

func TestParseNoteName(t *testing.T) {
	assert := assert.New(t)
	cases := map[string]PitchClass{"C": 0, "c": 0, "e": 4, "F#": 6, "bb": 10, "Cb": 11, "B#": 0, "Ebb": 2}
	for in, want := range cases {
		pc, err := ParseNoteName(in)
		assert.NoError(err, in)
		assert.Equal(want, pc, in)
	}
	for _, in := range []string{"", "H", "3", "C$", "c x"} {
		assert.False(IsValidNoteName(in), in)
	}
}

func TestPitchArithmetic(t *testing.T) {
	assert := assert.New(t)
	e4 := NewPitch(4, 4)
	assert.Equal(Pitch(52), e4)
	assert.Equal(4, e4.Octave())
	assert.Equal("E4", e4.String())
	assert.Equal(uint8(64), e4.MIDIKey())
	assert.Equal(e4, PitchFromMIDI(64))
	assert.True(e4.SamePitchClass(e4.Transpose(-24)))
	assert.Equal(-1, Pitch(-1).Octave())
	assert.Equal(PitchClass(11), Pitch(-1).Class())
}

func TestScaleDegreeToPitch(t *testing.T) {
	c := MustParseKey("C")
	a := MustParseKey("a")
	assert := assert.New(t)

	p, err := ScaleDegreeToPitch(c, 3, 4)
	assert.NoError(err)
	assert.Equal(NewPitch(4, 4), p)

	p, _ = ScaleDegreeToPitch(c, 8, 4)
	assert.Equal(NewPitch(0, 5), p)

	p, _ = ScaleDegreeToPitch(c, 10, 4)
	assert.Equal(NewPitch(4, 5), p)

	p, _ = ScaleDegreeToPitch(a, 3, 3)
	assert.Equal(NewPitch(0, 4), p)

	_, err = ScaleDegreeToPitch(c, 0, 4)
	assert.ErrorIs(err, ErrInvalidDegree)
	_, err = ScaleDegreeToPitch(c, -3, 4)
	assert.ErrorIs(err, ErrInvalidDegree)
}

func TestDegreeRoundTrip(t *testing.T) {
	for _, k := range allKeys() {
		for octave := 0; octave <= 7; octave++ {
			for d := 1; d <= 7; d++ {
				p, err := ScaleDegreeToPitch(k, d, octave)
				require.NoError(t, err)
				got, err := PitchToDegree(k, p)
				require.NoError(t, err)
				assert.Equal(t, d, got, "%s degree %d octave %d", k, d, octave)
			}
		}
	}
}

func TestPitchToDegreeNotInKey(t *testing.T) {
	_, err := PitchToDegree(MustParseKey("C"), NewPitch(1, 4))
	assert.ErrorIs(t, err, ErrNotInKey)
	_, err = PitchToDegree(MustParseKey("c"), NewPitch(4, 4))
	assert.ErrorIs(t, err, ErrNotInKey)
}

func TestPitchClassDistance(t *testing.T) {
	c := MustParseKey("C")
	assert := assert.New(t)
	cases := []struct{ a, b, want int }{
		{1, 5, 7},
		{5, 1, 5},
		{1, 1, 0},
		{3, 4, 1},
		{7, 2, 3},
		{1, 8, 0},
	}
	for _, cs := range cases {
		got, err := PitchClassDistance(c, cs.a, cs.b)
		assert.NoError(err)
		assert.Equal(cs.want, got, "%d -> %d", cs.a, cs.b)
	}
	_, err := PitchClassDistance(c, 0, 3)
	assert.ErrorIs(err, ErrInvalidDegree)
}

func TestIntervalFromRootIsSorted(t *testing.T) {
	for _, k := range allKeys() {
		for _, root := range k.Scale(4) {
			for span := 1; span <= 14; span++ {
				for _, asc := range []bool{true, false} {
					name := fmt.Sprintf("%s %s span %d asc %v", k, root, span, asc)
					iv, err := IntervalFromRoot(k, root, span, asc)
					require.NoError(t, err, name)
					p := iv.Pitches()
					assert.LessOrEqual(t, p[0], p[1], name)
					assert.Equal(t, iv.Root, root, name)
					_, err = PitchToDegree(k, iv.Other)
					assert.NoError(t, err, name)
				}
			}
		}
	}
}

func TestIntervalFromRootValues(t *testing.T) {
	c := MustParseKey("C")
	a4 := NewPitch(9, 4)
	assert := assert.New(t)

	iv, _ := IntervalFromRoot(c, a4, 2, true)
	assert.Equal(NewPitch(11, 4), iv.High())
	assert.Equal(2, iv.Semitones())

	iv, _ = IntervalFromRoot(c, a4, 3, true)
	assert.Equal(NewPitch(0, 5), iv.High())

	iv, _ = IntervalFromRoot(c, a4, 2, false)
	assert.Equal(NewPitch(7, 4), iv.Low())
	assert.Equal(a4, iv.High())

	iv, _ = IntervalFromRoot(c, a4, 8, true)
	assert.Equal(12, iv.Semitones())

	iv, _ = IntervalFromRoot(c, a4, 12, true)
	assert.Equal(19, iv.Semitones())

	iv, _ = IntervalFromRoot(c, a4, 1, true)
	assert.Equal(0, iv.Semitones())
	assert.Equal(8, SoundingSpan(1))
	assert.Equal(5, SoundingSpan(5))

	_, err := IntervalFromRoot(c, NewPitch(1, 4), 3, true)
	assert.ErrorIs(err, ErrNotInKey)
	_, err = IntervalFromRoot(c, a4, 0, true)
	assert.ErrorIs(err, ErrInvalidDegree)
}

func TestNoteNameSpelling(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("Bb", MustParseKey("F").NoteName(NewPitch(10, 4)))
	assert.Equal("A#", MustParseKey("B").NoteName(NewPitch(10, 4)))
	assert.Equal("Bb", MustParseKey("d").NoteName(NewPitch(10, 4)))
	assert.Equal("Eb", MustParseKey("Eb").NoteName(NewPitch(3, 4)))
}
