package chord

import (
	"fmt"
	"strconv"
	"strings"
)

var romans = []string{"I", "II", "III", "IV", "V", "VI", "VII"}

// Numeral is a scale degree as a roman numeral. Seventh asks for a four
// note chord; Up marks the tonic played an octave higher, used as the last
// step of a resolution.
type Numeral struct {
	Degree  int
	Seventh bool
	Up      bool
}

func (n Numeral) String() string {
	if n.Degree < 1 || n.Degree > len(romans) {
		return fmt.Sprintf("?%d", n.Degree)
	}
	s := romans[n.Degree-1]
	if n.Seventh {
		s += "7"
	}
	if n.Up {
		s += "up"
	}
	return s
}

// SameDegree ignores the seventh tag and the up marker.
func (n Numeral) SameDegree(other Numeral) bool {
	return n.Degree == other.Degree
}

// ParseNumeral reads "V", "v7", "Iup", "I7up" or a plain digit "5".
func ParseNumeral(s string) (Numeral, error) {
	var n Numeral
	upper := strings.ToUpper(strings.TrimSpace(s))
	if strings.HasSuffix(upper, "UP") {
		n.Up = true
		upper = strings.TrimSuffix(upper, "UP")
	}
	if strings.HasSuffix(upper, "7") && len(upper) > 1 {
		n.Seventh = true
		upper = strings.TrimSuffix(upper, "7")
	}
	if d, err := strconv.Atoi(upper); err == nil && d >= 1 && d <= 7 {
		n.Degree = d
		return n, nil
	}
	for i, r := range romans {
		if r == upper {
			n.Degree = i + 1
			return n, nil
		}
	}
	return Numeral{}, fmt.Errorf("unknown numeral %q", s)
}

func ParseNumerals(fields []string) ([]Numeral, error) {
	var res []Numeral
	for _, f := range fields {
		if f == "" {
			continue
		}
		n, err := ParseNumeral(f)
		if err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, nil
}

// Numerals returns I through VII.
func Numerals(seventh bool) []Numeral {
	var res []Numeral
	for d := 1; d <= 7; d++ {
		res = append(res, Numeral{Degree: d, Seventh: seventh})
	}
	return res
}

func Tonic(seventh bool) Numeral {
	return Numeral{Degree: 1, Seventh: seventh}
}

func RaisedTonic(seventh bool) Numeral {
	return Numeral{Degree: 1, Seventh: seventh, Up: true}
}

// Cadence is I IV V I.
func Cadence(seventh bool) []Numeral {
	return []Numeral{
		Tonic(seventh),
		{Degree: 4, Seventh: seventh},
		{Degree: 5, Seventh: seventh},
		Tonic(seventh),
	}
}

// Tones are the chord tone answers: 1 3 5, plus 7 for seventh chords.
func Tones(seventh bool) []int {
	if seventh {
		return []int{1, 3, 5, 7}
	}
	return []int{1, 3, 5}
}
