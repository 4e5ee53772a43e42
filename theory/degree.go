package theory

import (
	"fmt"

	"github.com/jsphweid/earthosechords/util"
)

// diatonicOffset is the semitone offset of a 0-based scale index from the
// tonic. Indexes outside 0..6 land in neighbouring octaves.
func (k Key) diatonicOffset(index int) int {
	return k.Semitones()[util.Mod(index, 7)] + 12*util.FloorDiv(index, 7)
}

// ScaleDegreeToPitch counts degrees from 1 at the tonic in referenceOctave.
// Degrees above 7 wrap into higher octaves.
func ScaleDegreeToPitch(k Key, degree int, referenceOctave int) (Pitch, error) {
	if degree <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDegree, degree)
	}
	return k.TonicPitch(referenceOctave).Transpose(k.diatonicOffset(degree - 1)), nil
}

// PitchClassDistance is the number of semitones (0..11) going up from
// degreeA to degreeB.
func PitchClassDistance(k Key, degreeA, degreeB int) (int, error) {
	if degreeA <= 0 || degreeB <= 0 {
		return 0, fmt.Errorf("%w: %d, %d", ErrInvalidDegree, degreeA, degreeB)
	}
	return util.Mod(k.diatonicOffset(degreeB-1)-k.diatonicOffset(degreeA-1), 12), nil
}

func PitchToDegree(k Key, p Pitch) (int, error) {
	rel := util.Mod(int(p.Class())-int(k.tonic), 12)
	for i, s := range k.Semitones() {
		if s == rel {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: %s not in %s", ErrNotInKey, k.NoteName(p), k)
}
