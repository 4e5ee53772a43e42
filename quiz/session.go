package quiz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jsphweid/earthosechords/audio"
	"github.com/jsphweid/earthosechords/chord"
	"github.com/jsphweid/earthosechords/console"
	"github.com/jsphweid/earthosechords/model"
)

const notUnderstood = "User input not understood.  Please try again."

type Options struct {
	Sink     audio.Sink
	Prompter console.Prompter
	Out      io.Writer
	// Logger is discarded when nil.
	Logger *log.Logger
	Rand   *rand.Rand
}

type Session struct {
	ID     string
	state  State
	sink   audio.Sink
	prompt console.Prompter
	out    io.Writer
	log    *log.Logger
	rng    *rand.Rand
}

func NewSession(state State, opts Options) *Session {
	id := uuid.NewString()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	logger = log.New(logger.Writer(), fmt.Sprintf("[%s] ", id[:8]), logger.Flags())
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	sink := opts.Sink
	if sink == nil {
		sink = audio.NullSink{}
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Session{
		ID:     id,
		state:  state,
		sink:   sink,
		prompt: opts.Prompter,
		out:    out,
		log:    logger,
		rng:    rng,
	}
}

func (s *Session) State() State {
	return s.state
}

// Run asks questions until the user quits, input runs out, ctx is done or
// playback fails.
func (s *Session) Run(ctx context.Context) error {
	s.log.Printf("session started, key %v, mode %v", s.state.Key, s.state.Mode)
	err := s.intro(ctx)
	for err == nil {
		if err = ctx.Err(); err != nil {
			break
		}
		var quit bool
		quit, err = s.Step(ctx)
		if quit {
			break
		}
	}
	s.log.Printf("session ended, %v", s.state.Score)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Step plays the current question, or a new one, and handles one input.
func (s *Session) Step(ctx context.Context) (bool, error) {
	q, err := s.question()
	if err != nil {
		return false, err
	}

	var input string
	if q.Mode == ChordTone {
		task := audio.Background(ctx, func(ctx context.Context) error {
			return s.play(ctx, q.Bars)
		})
		input, err = s.prompt.ReadKey(s.chordTonePrompt())
		if perr := task.Cancel(); perr != nil && err == nil {
			err = perr
		}
	} else {
		if err := s.play(ctx, q.Bars); err != nil {
			return false, err
		}
		if q.Mode == SingleChord {
			input, err = s.prompt.ReadKey("Enter 1-7 or root of chord: ")
		} else {
			input, err = s.prompt.ReadLine(answerPrompts[q.Mode])
		}
	}
	if err != nil {
		return false, err
	}

	if cmd, ok := ParseCommand(input); ok {
		return s.apply(ctx, cmd)
	}

	switch q.Mode {
	case SingleChord:
		err = s.answerSingleChord(ctx, q, input)
	case Progression:
		err = s.answerProgression(q, input)
	case Interval:
		err = s.answerInterval(ctx, q, input)
	case ChordTone:
		err = s.answerChordTone(ctx, q, input)
	}
	return false, err
}

var answerPrompts = map[Mode]string{
	Progression: "Enter your answer using root note names or numbers 1-7 separated by spaces: \n",
	Interval:    "Which interval did you hear? Enter 2b, 2, 3b, 3, 4, 5b, 5, 6b, 6, 7b, 7 or 8: \n",
}

func (s *Session) question() (*Question, error) {
	if !s.state.NewQuestion && s.state.Question != nil {
		return s.state.Question, nil
	}
	q, err := s.newQuestion()
	if err != nil {
		return nil, err
	}
	s.state.Question = &q
	s.state.NewQuestion = false
	s.log.Printf("new %v question in %v", q.Mode, s.state.Key)
	return &q, nil
}

func (s *Session) apply(ctx context.Context, cmd Command) (bool, error) {
	if cmd.Kind.NeedsArgument() {
		arg, err := s.prompt.ReadLine(cmd.Kind.ArgPrompt())
		if err != nil {
			return false, err
		}
		cmd.Arg = arg
	}
	var effect Effect
	s.state, effect = Dispatch(cmd, s.state, s.rng)
	if effect.Notice != "" {
		fmt.Fprintln(s.out, effect.Notice)
	}
	switch effect.Action {
	case CadenceAction:
		return false, s.playCadence(ctx)
	case ArpeggiateAction:
		return false, s.arpeggiate(ctx)
	case IntroAction:
		return false, s.intro(ctx)
	case QuitAction:
		return true, nil
	}
	return false, nil
}

func (s *Session) play(ctx context.Context, bars []model.Bar) error {
	return s.sink.Play(ctx, bars, s.state.BPM)
}

// playFast is used for remediation, at twice the tempo.
func (s *Session) playFast(ctx context.Context, bars []model.Bar) error {
	return s.sink.Play(ctx, bars, 2*s.state.BPM)
}

func (s *Session) intro(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n"+separator)
	for _, e := range Menu {
		input := e.Input
		if input == "" {
			input = "Enter"
		}
		fmt.Fprintf(s.out, "  %-6s %s\n", input, e.Description)
	}
	fmt.Fprintln(s.out, separator)
	fmt.Fprintf(s.out, "KEY: %v\n", s.state.Key)
	fmt.Fprintln(s.out, separator)
	if s.state.Mode == ChordTone {
		return nil
	}
	return s.playCadence(ctx)
}

const separator = "-------------------------------------------------"

func (s *Session) cadenceOctave() int {
	if s.state.Question != nil {
		return s.state.Question.TonicOctave
	}
	return s.state.TonicOctave
}

func (s *Session) playCadence(ctx context.Context) error {
	chords, err := chord.RenderProgression(s.state.Key, chord.Cadence(s.state.Seventh), s.cadenceOctave())
	if err != nil {
		return err
	}
	return s.play(ctx, chord.Bars(chords, 1))
}

func (s *Session) arpeggiate(ctx context.Context) error {
	q := s.state.Question
	if q == nil {
		return nil
	}
	switch q.Mode {
	case Progression:
		fmt.Fprintln(s.out, "Arpeggiation is not available in progression mode.")
		return nil
	case Interval:
		return s.play(ctx, []model.Bar{
			model.NewBar(0.5, q.Interval.Low()),
			model.NewBar(0.5, q.Interval.High()),
		})
	}
	return s.play(ctx, chord.Arpeggio(q.Chord, nil, 0.5))
}

func (s *Session) score(correct bool) {
	s.state.Score.Total++
	if correct {
		s.state.Score.Correct++
	}
	s.state.NewQuestion = true
	fmt.Fprintln(s.out, s.state.Score)
}

// retry keeps the current question and does not count the input.
func (s *Session) retry() {
	s.state.NewQuestion = false
	fmt.Fprintln(s.out, notUnderstood)
}
