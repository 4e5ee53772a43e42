package chord

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/jsphweid/earthosechords/theory"
	"github.com/jsphweid/earthosechords/util"
)

var (
	ErrInsufficientDegrees = errors.New("need at least 2 distinct degrees")
	ErrInvalidLength       = errors.New("invalid progression length")
)

// RenderProgression builds each chord and corrects it against the tonic in
// referenceOctave.
func RenderProgression(k theory.Key, numerals []Numeral, referenceOctave int) ([]Chord, error) {
	ref := k.TonicPitch(referenceOctave)
	var chords []Chord
	for _, n := range numerals {
		c, err := ForDegree(k, n, referenceOctave)
		if err != nil {
			return nil, err
		}
		chords = append(chords, OctaveCorrect(c, ref))
	}
	return chords, nil
}

// stepwise paths back to the tonic, 8 standing for the raised tonic
var resolutions = map[int][]int{
	1: {1},
	2: {2, 1},
	3: {3, 2, 1},
	4: {4, 3, 2, 1},
	5: {5, 6, 7, 8},
	6: {6, 7, 8},
	7: {7, 8},
}

// ResolutionPath returns the numerals leading from n back to the tonic.
// The seventh tag of n is kept on every step.
func ResolutionPath(n Numeral) []Numeral {
	var res []Numeral
	for _, d := range resolutions[n.Degree] {
		if d == 8 {
			res = append(res, RaisedTonic(n.Seventh))
			continue
		}
		res = append(res, Numeral{Degree: d, Seventh: n.Seventh})
	}
	return res
}

// RandomProgression draws numerals until the strums add up to length
// beats. A numeral never follows itself, and the last chord is cut short
// so the strum count is exact.
func RandomProgression(rng *rand.Rand, length int, numerals []Numeral, beatChoices []int) ([]Numeral, []Numeral, error) {
	if len(util.Distinct(degrees(numerals))) < 2 {
		return nil, nil, fmt.Errorf("%w: got %v", ErrInsufficientDegrees, numerals)
	}
	if length <= 0 || len(beatChoices) == 0 {
		return nil, nil, fmt.Errorf("%w: length %d, beats %v", ErrInvalidLength, length, beatChoices)
	}
	for _, b := range beatChoices {
		if b <= 0 {
			return nil, nil, fmt.Errorf("%w: beats %v", ErrInvalidLength, beatChoices)
		}
	}

	var prog, strums []Numeral
	for len(strums) < length {
		n := util.Choice(rng, numerals)
		if len(prog) > 0 && prog[len(prog)-1].SameDegree(n) {
			continue
		}
		beats := util.Choice(rng, beatChoices)
		if len(strums)+beats > length {
			beats = length - len(strums)
		}
		prog = append(prog, n)
		for i := 0; i < beats; i++ {
			strums = append(strums, n)
		}
	}
	return prog, strums, nil
}

func degrees(numerals []Numeral) []int {
	var res []int
	for _, n := range numerals {
		res = append(res, n.Degree)
	}
	return res
}
