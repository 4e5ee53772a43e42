package quiz

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jsphweid/earthosechords/answer"
	"github.com/jsphweid/earthosechords/chord"
	"github.com/jsphweid/earthosechords/constants"
	"github.com/jsphweid/earthosechords/model"
	"github.com/jsphweid/earthosechords/theory"
	"github.com/jsphweid/earthosechords/util"
	"golang.org/x/exp/slices"
)

// secretTones are chord tone answers that play the root, third or fifth of
// every chord in the key instead of being scored.
var secretTones = []int{8, 9, 0}

func (s *Session) tonicOctave() int {
	if !s.state.ManyOctaves {
		return s.state.TonicOctave
	}
	return constants.MinOctave + s.rng.Intn(constants.MaxOctave-constants.MinOctave+1)
}

func (s *Session) newQuestion() (Question, error) {
	switch s.state.Mode {
	case Progression:
		return s.newProgression()
	case Interval:
		return s.newInterval()
	}
	return s.newChord()
}

// newChord serves both single chord and chord tone questions.
func (s *Session) newChord() (Question, error) {
	n := util.Choice(s.rng, s.state.Numerals())
	octave := s.tonicOctave()
	chords, err := chord.RenderProgression(s.state.Key, []chord.Numeral{n}, octave)
	if err != nil {
		return Question{}, err
	}
	q := Question{Mode: s.state.Mode, Numeral: n, Chord: chords[0], TonicOctave: octave}
	q.Bars = []model.Bar{q.Chord.Bar(1)}
	if q.Mode == ChordTone {
		q.ToneIndex = s.rng.Intn(q.Chord.Len())
		q.Bars = append(q.Bars, model.NewBar(1, q.Tone()))
	}
	return q, nil
}

func (s *Session) newProgression() (Question, error) {
	length := util.Choice(s.rng, constants.ProgressionLengths)
	prog, strums, err := chord.RandomProgression(s.rng, length, s.state.Numerals(), constants.ChordLengths)
	if err != nil {
		return Question{}, err
	}
	octave := s.tonicOctave()
	chords, err := chord.RenderProgression(s.state.Key, strums, octave)
	if err != nil {
		return Question{}, err
	}
	return Question{
		Mode:        Progression,
		Progression: prog,
		Strums:      strums,
		TonicOctave: octave,
		Bars:        chord.Bars(chords, 1),
	}, nil
}

// newInterval picks a diatonic root in the tonic octave. Many octaves
// allows compound intervals instead of moving the root.
func (s *Session) newInterval() (Question, error) {
	octave := s.state.TonicOctave
	root, err := theory.ScaleDegreeToPitch(s.state.Key, 1+s.rng.Intn(7), octave)
	if err != nil {
		return Question{}, err
	}
	maxSpan := 8
	if s.state.ManyOctaves {
		maxSpan = 15
	}
	span := theory.SoundingSpan(1 + s.rng.Intn(maxSpan))
	iv, err := theory.IntervalFromRoot(s.state.Key, root, span, s.rng.Intn(2) == 0)
	if err != nil {
		return Question{}, err
	}
	return Question{
		Mode:        Interval,
		Interval:    iv,
		TonicOctave: octave,
		Bars: []model.Bar{
			model.NewBar(1, iv.Root),
			model.NewBar(1, iv.Other),
			model.NewBar(1, iv.Low(), iv.High()),
		},
	}, nil
}

func (s *Session) answerSingleChord(ctx context.Context, q *Question, input string) error {
	a, err := answer.Parse(input)
	if err != nil {
		s.retry()
		return nil
	}
	correct := a.Matches(q.Numeral.Degree, q.Chord.Root())
	if correct {
		fmt.Fprintln(s.out, "Yes!", q.Chord.Name(s.state.Key))
	} else {
		fmt.Fprintln(s.out, "No!", q.Chord.Name(s.state.Key))
	}
	s.score(correct)
	if (correct && constants.ResolveWhenCorrect) || (!correct && constants.ResolveWhenIncorrect) {
		return s.resolve(ctx, q)
	}
	return nil
}

func (s *Session) resolve(ctx context.Context, q *Question) error {
	chords, err := chord.RenderProgression(s.state.Key, chord.ResolutionPath(q.Numeral), q.TonicOctave)
	if err != nil {
		return err
	}
	return s.playFast(ctx, chord.Bars(chords, 1))
}

func (s *Session) answerProgression(q *Question, input string) error {
	var expected []answer.Expected
	for _, n := range q.Progression {
		c, err := chord.ForDegree(s.state.Key, n, q.TonicOctave)
		if err != nil {
			return err
		}
		expected = append(expected, answer.Expected{Degree: n.Degree, Pitch: c.Root()})
	}
	res := answer.EvaluateSequence(input, expected)
	for i, ok := range res.Correct {
		fmt.Fprintf(s.out, "%d: %t\n", i+1, ok)
	}
	if res.TooMany {
		fmt.Fprintln(s.out, "too many answers")
	}
	if res.TooFew {
		fmt.Fprintln(s.out, "too few answers")
	}

	var strums, degrees []string
	for _, n := range q.Strums {
		strums = append(strums, n.String())
	}
	for _, n := range q.Progression {
		degrees = append(degrees, strconv.Itoa(n.Degree))
	}
	fmt.Fprintln(s.out, "Progression:", strings.Join(strums, " "))
	fmt.Fprintln(s.out, "Correct Answer:", strings.Join(degrees, " "))

	correct := res.AllCorrect()
	if correct {
		fmt.Fprintln(s.out, "Good Job!")
	} else {
		fmt.Fprintln(s.out, "It's ok, you'll get 'em next time.")
	}
	s.score(correct)
	return nil
}

func isIntervalName(input string) bool {
	for semitones := 0; semitones < 12; semitones++ {
		if answer.IntervalName(semitones) == input {
			return true
		}
	}
	return false
}

// intervalFromNames reads two note names played in order, as a MIDI
// keyboard phrase spells them, as the interval name they span in the
// question's direction. Other input comes back unchanged.
func intervalFromNames(iv theory.Interval, input string) string {
	fields := strings.Fields(input)
	if len(fields) != 2 {
		return input
	}
	from, err := theory.ParseNoteName(fields[0])
	if err != nil {
		return input
	}
	to, err := theory.ParseNoteName(fields[1])
	if err != nil {
		return input
	}
	semitones := int(to) - int(from)
	if !iv.Ascending {
		semitones = -semitones
	}
	return answer.IntervalName(semitones)
}

func (s *Session) answerInterval(ctx context.Context, q *Question, input string) error {
	input = strings.TrimSpace(intervalFromNames(q.Interval, input))
	if !isIntervalName(input) {
		s.retry()
		return nil
	}
	iv := q.Interval
	correct := answer.EvaluateIntervalName(input, iv.Semitones())
	verdict := "No!"
	if correct {
		verdict = "Yes!"
	}
	fmt.Fprintf(s.out, "%s It was a %s: %s -> %s\n", verdict, answer.IntervalName(iv.Semitones()),
		s.state.Key.NoteName(iv.Root), s.state.Key.NoteName(iv.Other))
	s.score(correct)
	return s.playFast(ctx, q.Bars)
}

func (s *Session) chordTonePrompt() string {
	var tones []string
	for _, t := range s.state.Tones() {
		tones = append(tones, strconv.Itoa(t))
	}
	last := len(tones) - 1
	return fmt.Sprintf("Which tone did you hear?\nEnter %s, or %s: ", strings.Join(tones[:last], ", "), tones[last])
}

// toneFromName turns a note name answer into the number of the chord tone
// it names, e.g. "E" over C E G gives "3". Other input comes back unchanged.
func toneFromName(c chord.Chord, tones []int, input string) string {
	a, err := answer.Parse(input)
	if err != nil || a.Kind != answer.NoteName {
		return input
	}
	for i := 0; i < c.Len() && i < len(tones); i++ {
		if c.Note(i).Class() == a.PitchClass {
			return strconv.Itoa(tones[i])
		}
	}
	return input
}

func (s *Session) answerChordTone(ctx context.Context, q *Question, input string) error {
	tones := chord.Tones(q.Numeral.Seventh)
	input = toneFromName(q.Chord, tones, input)
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		s.retry()
		return nil
	}
	if i := slices.Index(secretTones, n); i >= 0 {
		s.state.NewQuestion = false
		return s.playToneOfEveryChord(ctx, q, i)
	}
	if !slices.Contains(tones, n) {
		s.retry()
		return nil
	}

	correct := answer.EvaluateChordTone(input, tones, q.ToneIndex)
	verdict := "No!"
	if correct {
		verdict = "Yes!"
	}
	fmt.Fprintf(s.out, "%s The %d tone of %s\n", verdict, tones[q.ToneIndex], q.Chord.Name(s.state.Key))
	s.score(correct)
	if (correct && constants.ArpeggiateWhenCorrect) || (!correct && constants.ArpeggiateWhenIncorrect) {
		return s.play(ctx, chordToneResolution(q, s.state.ChordToneResolution))
	}
	return nil
}

// chordToneResolution replays the chord and walks from it to the tone.
// Style 0 plays the tone and arpeggiates root up, style 1 plays the tone
// against the root, style 2 arpeggiates starting from the tone.
func chordToneResolution(q *Question, style int) []model.Bar {
	c := q.Chord
	bars := []model.Bar{c.Bar(1)}
	switch style {
	case 1:
		return append(bars, model.NewBar(1, q.Tone()), model.NewBar(1, c.Root(), q.Tone()))
	case 2:
		return append(bars, chord.Arpeggio(c, fromTone(q.ToneIndex, c.Len()), 0.5)...)
	}
	bars = append(bars, model.NewBar(1, q.Tone()))
	return append(bars, chord.Arpeggio(c, nil, 0.5)...)
}

// fromTone orders voices from idx down to the root, then the voices above
// idx: the third gives 3 1 5, the fifth 5 3 1.
func fromTone(idx, size int) []int {
	var order []int
	for i := idx; i >= 0; i-- {
		order = append(order, i)
	}
	for i := idx + 1; i < size; i++ {
		order = append(order, i)
	}
	return order
}

func (s *Session) playToneOfEveryChord(ctx context.Context, q *Question, idx int) error {
	chords, err := chord.RenderProgression(s.state.Key, s.state.Numerals(), q.TonicOctave)
	if err != nil {
		return err
	}
	for _, c := range chords {
		if err := s.play(ctx, []model.Bar{c.Bar(1)}); err != nil {
			return err
		}
		if err := s.sink.PlaySingle(ctx, c.Note(idx), s.state.BPM); err != nil {
			return err
		}
	}
	return nil
}
