package answer

import (
	"strconv"
	"strings"

	"github.com/jsphweid/earthosechords/theory"
)

type Expected struct {
	Degree int
	Pitch  theory.Pitch
}

type SequenceResult struct {
	Correct []bool
	TooFew  bool
	TooMany bool
}

// AllCorrect requires the right number of answers, all of them correct.
func (r SequenceResult) AllCorrect() bool {
	if r.TooFew || r.TooMany {
		return false
	}
	for _, c := range r.Correct {
		if !c {
			return false
		}
	}
	return true
}

// Tokens splits "135" into digits and anything else on whitespace.
func Tokens(answer string) []string {
	answer = strings.TrimSpace(answer)
	if _, err := strconv.Atoi(answer); err == nil {
		return strings.Split(answer, "")
	}
	return strings.Fields(answer)
}

func EvaluateSequence(answer string, expected []Expected) SequenceResult {
	tokens := Tokens(answer)
	res := SequenceResult{
		TooFew:  len(tokens) < len(expected),
		TooMany: len(tokens) > len(expected),
	}
	for i, tok := range tokens {
		if i >= len(expected) {
			break
		}
		res.Correct = append(res.Correct, EvaluateDegreeAnswer(tok, expected[i].Degree, expected[i].Pitch))
	}
	return res
}
