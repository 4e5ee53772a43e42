package theory

import (
	"fmt"
	"strings"

	"github.com/jsphweid/earthosechords/util"
)

// PitchClass is a pitch modulo 12, C = 0.
type PitchClass int

// Pitch is an absolute semitone: pitch class + 12 * octave, so C4 = 48.
type Pitch int

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
var flatNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

var letterClasses = map[byte]PitchClass{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

func NewPitch(pc PitchClass, octave int) Pitch {
	return Pitch(int(pc.Normalize()) + 12*octave)
}

func (pc PitchClass) Normalize() PitchClass {
	return util.Mod(pc, 12)
}

func (pc PitchClass) Name(flats bool) string {
	if flats {
		return flatNames[pc.Normalize()]
	}
	return sharpNames[pc.Normalize()]
}

func (p Pitch) Class() PitchClass {
	return PitchClass(util.Mod(int(p), 12))
}

func (p Pitch) Octave() int {
	return util.FloorDiv(int(p), 12)
}

// Transpose returns a new pitch; pitches are never adjusted in place.
func (p Pitch) Transpose(semitones int) Pitch {
	return p + Pitch(semitones)
}

func (p Pitch) SamePitchClass(other Pitch) bool {
	return p.Class() == other.Class()
}

// MIDIKey maps C4 (48) to MIDI 60, clamped to the MIDI range.
func (p Pitch) MIDIKey() uint8 {
	k := int(p) + 12
	if k < 0 {
		return 0
	}
	if k > 127 {
		return 127
	}
	return uint8(k)
}

func PitchFromMIDI(key uint8) Pitch {
	return Pitch(int(key) - 12)
}

func (p Pitch) Name(flats bool) string {
	return fmt.Sprintf("%s%d", p.Class().Name(flats), p.Octave())
}

func (p Pitch) String() string {
	return p.Name(false)
}

// ParseNoteName accepts a letter A-G in either case followed by any number
// of '#' or 'b' accidentals.
func ParseNoteName(s string) (PitchClass, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidNoteName)
	}
	pc, ok := letterClasses[strings.ToUpper(s[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNoteName, s)
	}
	for _, r := range s[1:] {
		switch r {
		case '#':
			pc++
		case 'b':
			pc--
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidNoteName, s)
		}
	}
	return pc.Normalize(), nil
}

func IsValidNoteName(s string) bool {
	_, err := ParseNoteName(s)
	return err == nil
}
