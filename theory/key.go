package theory

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"

	"github.com/jsphweid/earthosechords/util"
)

var majorSemitones = [7]int{0, 2, 4, 5, 7, 9, 11}
var minorSemitones = [7]int{0, 2, 3, 5, 7, 8, 10}

// spellings offered by the random key picker
var KeyNames = []string{"A", "Bb", "B", "C", "C#", "D", "Eb", "E", "F", "F#", "G", "Ab"}

// minor tonics on white keys that are spelled with flats
var flatMinorTonics = map[PitchClass]bool{2: true, 7: true, 0: true, 5: true}

// Key is a tonic plus a major or natural minor mode. It is a value type;
// changing key means building a new one.
type Key struct {
	tonic PitchClass
	name  string
	minor bool
}

// ParseKey reads an upper-case name as major and a lower-case one as
// minor, e.g. "C", "c", "Bb", "f#".
func ParseKey(name string) (Key, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Key{}, fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	pc, err := ParseNoteName(name)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, name)
	}
	minor := unicode.IsLower(rune(name[0]))
	return Key{
		tonic: pc,
		name:  strings.ToUpper(name[:1]) + name[1:],
		minor: minor,
	}, nil
}

func MustParseKey(name string) Key {
	k, err := ParseKey(name)
	if err != nil {
		panic(err)
	}
	return k
}

func RandomKey(rng *rand.Rand, minor bool) Key {
	k := MustParseKey(util.Choice(rng, KeyNames))
	k.minor = minor
	return k
}

func (k Key) Tonic() PitchClass {
	return k.tonic
}

func (k Key) Minor() bool {
	return k.minor
}

// Name is the key as typed at the prompt: upper case for major, lower for minor.
func (k Key) Name() string {
	if k.minor {
		return strings.ToLower(k.name[:1]) + k.name[1:]
	}
	return k.name
}

func (k Key) String() string {
	if k.minor {
		return k.name + " min"
	}
	return k.name + " Maj"
}

func (k Key) Semitones() [7]int {
	if k.minor {
		return minorSemitones
	}
	return majorSemitones
}

func (k Key) TonicPitch(octave int) Pitch {
	return NewPitch(k.tonic, octave)
}

// Scale returns the seven scale tones starting at the tonic in octave.
func (k Key) Scale(octave int) []Pitch {
	var res []Pitch
	for _, s := range k.Semitones() {
		res = append(res, k.TonicPitch(octave).Transpose(s))
	}
	return res
}

func (k Key) PrefersFlats() bool {
	switch {
	case strings.Contains(k.name[1:], "b"):
		return true
	case strings.Contains(k.name[1:], "#"):
		return false
	case k.minor:
		return flatMinorTonics[k.tonic]
	default:
		return k.tonic == 5
	}
}

func (k Key) NoteName(p Pitch) string {
	return p.Class().Name(k.PrefersFlats())
}
