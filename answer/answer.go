package answer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jsphweid/earthosechords/theory"
	"github.com/jsphweid/earthosechords/util"
)

var ErrUnparseableAnswer = errors.New("answer not understood")

type Kind int

const (
	Invalid Kind = iota
	Degree
	NoteName
)

// Answer is one parsed token: a scale degree 1-7 or a note name.
type Answer struct {
	Kind       Kind
	Degree     int
	PitchClass theory.PitchClass
}

// Parse never panics; tokens that are neither a degree in range nor a note
// name come back as Invalid with ErrUnparseableAnswer.
func Parse(token string) (Answer, error) {
	token = strings.TrimSpace(token)
	if d, err := strconv.Atoi(token); err == nil {
		if d >= 1 && d <= 7 {
			return Answer{Kind: Degree, Degree: d}, nil
		}
		return Answer{}, fmt.Errorf("%w: degree %d", ErrUnparseableAnswer, d)
	}
	pc, err := theory.ParseNoteName(token)
	if err != nil {
		return Answer{}, fmt.Errorf("%w: %q", ErrUnparseableAnswer, token)
	}
	return Answer{Kind: NoteName, PitchClass: pc}, nil
}

func IsValid(token string) bool {
	_, err := Parse(token)
	return err == nil
}

// Matches compares a degree answer to the degree, and a note name answer to
// the pitch class of p.
func (a Answer) Matches(degree int, p theory.Pitch) bool {
	switch a.Kind {
	case Degree:
		return a.Degree == degree
	case NoteName:
		return a.PitchClass == p.Class()
	default:
		return false
	}
}

func EvaluateDegreeAnswer(answer string, expectedDegree int, expectedPitch theory.Pitch) bool {
	a, err := Parse(answer)
	if err != nil {
		return false
	}
	return a.Matches(expectedDegree, expectedPitch)
}

var intervalNames = [12]string{"8", "2b", "2", "3b", "3", "4", "5b", "5", "6b", "6", "7b", "7"}

// IntervalName names a span by its size within one octave, so a compound
// fifth is also "5".
func IntervalName(semitones int) string {
	return intervalNames[util.Mod(semitones, 12)]
}

func EvaluateIntervalName(answer string, semitoneSpan int) bool {
	return strings.TrimSpace(answer) == IntervalName(semitoneSpan)
}

// EvaluateChordTone checks a chord tone answer such as "5" against the
// tone at expectedIndex.
func EvaluateChordTone(answer string, tones []int, expectedIndex int) bool {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || expectedIndex < 0 || expectedIndex >= len(tones) {
		return false
	}
	return tones[expectedIndex] == n
}
