package chord

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/jsphweid/earthosechords/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cMajor = theory.MustParseKey("C")

func p(pc theory.PitchClass, octave int) theory.Pitch {
	return theory.NewPitch(pc, octave)
}

func TestTonicTriadInCMajor(t *testing.T) {
	c, err := ForDegree(cMajor, Tonic(false), 4)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]theory.Pitch{p(0, 4), p(4, 4), p(7, 4)}, c.Notes())
	assert.Equal("maj", c.Quality())
	assert.Equal("I - C maj -- C E G", c.Name(cMajor))
}

func TestChordQualities(t *testing.T) {
	cases := []struct {
		key     string
		numeral Numeral
		quality string
	}{
		{"C", Numeral{Degree: 2}, "min"},
		{"C", Numeral{Degree: 7}, "dim"},
		{"C", Numeral{Degree: 5, Seventh: true}, "7"},
		{"C", Numeral{Degree: 1, Seventh: true}, "maj7"},
		{"C", Numeral{Degree: 7, Seventh: true}, "m7b5"},
		{"a", Numeral{Degree: 1}, "min"},
		{"a", Numeral{Degree: 3}, "maj"},
		{"a", Numeral{Degree: 2, Seventh: true}, "m7b5"},
	}
	for _, cs := range cases {
		t.Run(fmt.Sprintf("%s %v", cs.key, cs.numeral), func(t *testing.T) {
			c := MustForDegree(theory.MustParseKey(cs.key), cs.numeral, 4)
			assert.Equal(t, cs.quality, c.Quality())
		})
	}
}

func TestSeventhChordHasFourVoices(t *testing.T) {
	c := MustForDegree(cMajor, Numeral{Degree: 5, Seventh: true}, 4)
	assert.Equal(t, []theory.Pitch{p(7, 4), p(11, 4), p(2, 5), p(5, 5)}, c.Notes())
}

func TestForDegreeRejectsBadDegree(t *testing.T) {
	_, err := ForDegree(cMajor, Numeral{Degree: 0}, 4)
	assert.ErrorIs(t, err, theory.ErrInvalidDegree)
}

func TestChordIsImmutable(t *testing.T) {
	c := MustForDegree(cMajor, Tonic(false), 4)
	notes := c.Notes()
	notes[0] = 0
	up := c.Transpose(12)

	assert := assert.New(t)
	assert.Equal(p(0, 4), c.Root())
	assert.Equal(p(0, 5), up.Root())
}

func pairwise(c Chord) []int {
	var res []int
	n := c.Notes()
	for i := range n {
		for j := range n {
			res = append(res, int(n[j]-n[i]))
		}
	}
	return res
}

func TestOctaveCorrectKeepsShape(t *testing.T) {
	for _, name := range theory.KeyNames {
		k := theory.MustParseKey(name)
		for _, seventh := range []bool{false, true} {
			for _, n := range Numerals(seventh) {
				for octave := 0; octave <= 7; octave++ {
					c := MustForDegree(k, n, octave)
					ref := k.TonicPitch(4)
					corrected := OctaveCorrect(c, ref)
					assert.Equal(t, pairwise(c), pairwise(corrected))
					assert.GreaterOrEqual(t, corrected.Root(), ref)
					assert.Equal(t, 0, int(corrected.Root()-c.Root())%12)
				}
			}
		}
	}
}

func TestOctaveCorrectNeverPullsDown(t *testing.T) {
	c := MustForDegree(cMajor, Numeral{Degree: 5}, 6)
	assert.Equal(t, c, OctaveCorrect(c, p(0, 4)))
}

func TestOctaveCorrectRaisedTonic(t *testing.T) {
	up := MustForDegree(cMajor, RaisedTonic(false), 2)
	corrected := OctaveCorrect(up, p(0, 4))
	assert.Equal(t, p(0, 5), corrected.Root())
}

func TestArpeggioOrders(t *testing.T) {
	c := MustForDegree(cMajor, Tonic(false), 4)
	assert := assert.New(t)

	bars := Arpeggio(c, nil, 0.5)
	assert.Len(bars, 3)
	assert.Equal([]theory.Pitch{p(0, 4)}, bars[0].Notes)
	assert.Equal(0.5, bars[0].Beats)

	bars = Arpeggio(c, Descending(c), 1)
	assert.Equal([]theory.Pitch{p(7, 4)}, bars[0].Notes)
	assert.Equal([]theory.Pitch{p(0, 4)}, bars[2].Notes)

	bars = Arpeggio(c, []int{1, 0, 2}, 1)
	assert.Equal([]theory.Pitch{p(4, 4)}, bars[0].Notes)
}

func TestParseNumeral(t *testing.T) {
	cases := map[string]Numeral{
		"I":    {Degree: 1},
		"v":    {Degree: 5},
		"V7":   {Degree: 5, Seventh: true},
		"vii":  {Degree: 7},
		"Iup":  {Degree: 1, Up: true},
		"I7up": {Degree: 1, Seventh: true, Up: true},
		"4":    {Degree: 4},
		"7":    {Degree: 7},
	}
	for in, want := range cases {
		got, err := ParseNumeral(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
		if in == "I" || in == "V7" || in == "Iup" || in == "I7up" {
			assert.Equal(t, in, got.String())
		}
	}
	_, err := ParseNumeral("VIII")
	assert.Error(t, err)
}

func TestResolutionPathTable(t *testing.T) {
	expected := map[int][]string{
		1: {"I"},
		2: {"II", "I"},
		3: {"III", "II", "I"},
		4: {"IV", "III", "II", "I"},
		5: {"V", "VI", "VII", "Iup"},
		6: {"VI", "VII", "Iup"},
		7: {"VII", "Iup"},
	}
	for d, want := range expected {
		var got []string
		for _, n := range ResolutionPath(Numeral{Degree: d}) {
			got = append(got, n.String())
		}
		assert.Equal(t, want, got)
	}

	sevenths := ResolutionPath(Numeral{Degree: 7, Seventh: true})
	assert.Equal(t, []Numeral{{Degree: 7, Seventh: true}, RaisedTonic(true)}, sevenths)
}

func TestResolutionOfFiveInCMajor(t *testing.T) {
	chords, err := RenderProgression(cMajor, ResolutionPath(Numeral{Degree: 5}), 4)
	require.NoError(t, err)
	require.Len(t, chords, 4)

	assert := assert.New(t)
	assert.Equal([]theory.Pitch{p(7, 4), p(11, 4), p(2, 5)}, chords[0].Notes())
	assert.Equal([]theory.Pitch{p(9, 4), p(0, 5), p(4, 5)}, chords[1].Notes())
	assert.Equal([]theory.Pitch{p(11, 4), p(2, 5), p(5, 5)}, chords[2].Notes())
	assert.Equal([]theory.Pitch{p(0, 5), p(4, 5), p(7, 5)}, chords[3].Notes())
}

func TestRenderCadence(t *testing.T) {
	chords, err := RenderProgression(cMajor, Cadence(false), 4)
	require.NoError(t, err)
	tonic := chords[0].Root()
	for _, c := range chords {
		assert.GreaterOrEqual(t, c.Root(), tonic)
	}
	assert.Equal(t, chords[0], chords[3])
	assert.Len(t, Bars(chords, 1), 4)
}

func TestRandomProgressionNoAdjacentRepeats(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	numerals := []Numeral{{Degree: 1}, {Degree: 2}, {Degree: 3}}
	for i := 0; i < 200; i++ {
		prog, strums, err := RandomProgression(rng, 5, numerals, []int{1})
		require.NoError(t, err)
		assert.Len(t, strums, 5)
		assert.Equal(t, prog, strums)
		for j := 1; j < len(strums); j++ {
			assert.NotEqual(t, strums[j-1], strums[j])
		}
	}
}

func TestRandomProgressionExactLength(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		length := 1 + rng.Intn(6)
		prog, strums, err := RandomProgression(rng, length, Numerals(false), []int{1, 2, 3})
		require.NoError(t, err)
		assert.Len(t, strums, length)
		for j := 1; j < len(prog); j++ {
			assert.NotEqual(t, prog[j-1].Degree, prog[j].Degree)
		}
	}
}

func TestRandomProgressionFailsFast(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, _, err := RandomProgression(rng, 3, []Numeral{{Degree: 1}}, []int{1})
	assert.ErrorIs(t, err, ErrInsufficientDegrees)

	_, _, err = RandomProgression(rng, 3, []Numeral{{Degree: 1}, {Degree: 1, Seventh: true}}, []int{1})
	assert.ErrorIs(t, err, ErrInsufficientDegrees)

	_, _, err = RandomProgression(rng, 0, Numerals(false), []int{1})
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, _, err = RandomProgression(rng, 3, Numerals(false), nil)
	assert.ErrorIs(t, err, ErrInvalidLength)
}
