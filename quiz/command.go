package quiz

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/jsphweid/earthosechords/theory"
)

type CommandKind int

const (
	Repeat CommandKind = iota
	PlayCadence
	SetTempo
	ToggleSeventh
	ChangeKey
	ToggleOctaves
	Arpeggiate
	ModeProgression
	ModeInterval
	ModeChordTone
	ModeSingleChord
	CycleResolution
	Quit
)

// Command is a menu command; Arg carries the sub-prompt answer for
// SetTempo and ChangeKey.
type Command struct {
	Kind CommandKind
	Arg  string
}

type MenuEntry struct {
	Input       string
	Kind        CommandKind
	Description string
}

var Menu = []MenuEntry{
	{"v", PlayCadence, "hear the cadence"},
	{"w", SetTempo, "change the tempo (beats per minute)"},
	{"s", ToggleSeventh, "toggle between hearing triads and hearing seventh chords"},
	{"k", ChangeKey, "change the key"},
	{"o", ToggleOctaves, "toggle between using one octave or many"},
	{"m", Arpeggiate, "arpeggiate the chord (not available in progression mode)"},
	{"p", ModeProgression, "switch to random progression mode"},
	{"n", ModeInterval, "switch to interval mode"},
	{"t", ModeChordTone, "switch to chord tone mode"},
	{"h", ModeSingleChord, "switch to single chord mode"},
	{"i", CycleResolution, "cycle between chord tone resolutions"},
	{"x", Quit, "quit"},
	{"", Repeat, "hear the chord or progression again"},
}

func ParseCommand(input string) (Command, bool) {
	input = strings.TrimSpace(input)
	for _, e := range Menu {
		if e.Input == input {
			return Command{Kind: e.Kind}, true
		}
	}
	return Command{}, false
}

func (k CommandKind) NeedsArgument() bool {
	return k == SetTempo || k == ChangeKey
}

func (k CommandKind) ArgPrompt() string {
	switch k {
	case SetTempo:
		return "Enter the desired tempo (in beats per minute): "
	case ChangeKey:
		return "Enter the desired key, use upper-case for major " +
			"and lower-case for minor (e.g. C or c).\n" +
			"Enter R/r for a random major/minor key.\n"
	}
	return ""
}

type Action int

const (
	NoAction Action = iota
	CadenceAction
	ArpeggiateAction
	IntroAction
	QuitAction
)

// Effect is what the session has to do after a command. Notice, if set, is
// printed first.
type Effect struct {
	Action Action
	Notice string
}

// Dispatch applies cmd to s. It only touches State; sound and output are
// left to the caller through the returned Effect.
func Dispatch(cmd Command, s State, rng *rand.Rand) (State, Effect) {
	switch cmd.Kind {
	case Repeat:
		s.NewQuestion = false
		return s, Effect{}
	case PlayCadence:
		s.NewQuestion = false
		return s, Effect{Action: CadenceAction}
	case SetTempo:
		s.NewQuestion = false
		bpm, err := strconv.ParseFloat(strings.TrimSpace(cmd.Arg), 64)
		if err != nil || bpm <= 0 {
			return s, Effect{Notice: "Tempo not understood, tempo unchanged."}
		}
		s.BPM = bpm
		return s, Effect{Notice: fmt.Sprintf("Tempo set to %g bpm.", bpm)}
	case ToggleSeventh:
		s.Seventh = !s.Seventh
		s.NewQuestion = true
		s.Question = nil
		return s, Effect{}
	case ChangeKey:
		return changeKey(cmd.Arg, s, rng)
	case ToggleOctaves:
		s.ManyOctaves = !s.ManyOctaves
		s.NewQuestion = false
		return s, Effect{}
	case Arpeggiate:
		s.NewQuestion = false
		return s, Effect{Action: ArpeggiateAction}
	case ModeProgression:
		return changeMode(Progression, s)
	case ModeInterval:
		return changeMode(Interval, s)
	case ModeChordTone:
		return changeMode(ChordTone, s)
	case ModeSingleChord:
		return changeMode(SingleChord, s)
	case CycleResolution:
		s.ChordToneResolution = (s.ChordToneResolution + 1) % 3
		s.NewQuestion = false
		return s, Effect{Notice: fmt.Sprintf("Switching to chord tone resolution option %d", s.ChordToneResolution)}
	case Quit:
		return s, Effect{Action: QuitAction}
	}
	panic(fmt.Sprintf("unhandled command %v", cmd.Kind))
}

func changeKey(arg string, s State, rng *rand.Rand) (State, Effect) {
	arg = strings.TrimSpace(arg)
	s.NewQuestion = true
	var key theory.Key
	switch arg {
	case "R":
		key = theory.RandomKey(rng, false)
	case "r":
		key = theory.RandomKey(rng, true)
	default:
		k, err := theory.ParseKey(arg)
		if err != nil {
			return s, Effect{Action: IntroAction, Notice: "Input key not understood, key unchanged."}
		}
		key = k
	}
	if key != s.Key {
		s.Score = Score{}
	}
	s.Key = key
	s.Question = nil
	return s, Effect{Action: IntroAction}
}

func changeMode(m Mode, s State) (State, Effect) {
	s.Mode = m
	s.Score = Score{}
	s.NewQuestion = true
	s.Question = nil
	return s, Effect{Notice: fmt.Sprintf("Switching to %s mode.", m)}
}
