package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/jsphweid/earthosechords/audio"
	"github.com/jsphweid/earthosechords/console"
	"github.com/jsphweid/earthosechords/constants"
	"github.com/jsphweid/earthosechords/midi"
	"github.com/jsphweid/earthosechords/quiz"
	"github.com/jsphweid/earthosechords/theory"
	"github.com/spf13/cobra"
)

var (
	keyName     string
	minor       bool
	manyOctaves bool
	sevenths    bool
	soundFont   string
	delay       float64
	bpm         float64
	modeName    string
	midiOut     string
	midiIn      string
	recordPath  string
	mute        bool
	verbose     bool
	seed        int64
)

var rootCmd = &cobra.Command{
	Use:   "earthosechords",
	Short: "Ear training for chords, progressions, intervals and chord tones",
	Long: `Plays a cadence to set the key, then quizzes you on what you hear:
single chords, random progressions, intervals or single chord tones.
Answer with scale degrees (1-7) or note names.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return play(cmd.Context(), cmd.Flags().Changed("delay"))
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&keyName, "key", "k", constants.DefaultKey, "key to start in")
	f.BoolVarP(&minor, "minor", "m", false, "use the minor key")
	f.BoolVarP(&manyOctaves, "many_octaves", "o", false, "move the tonic between octaves")
	f.BoolVarP(&sevenths, "sevenths", "s", false, "use seventh chords instead of triads")
	f.StringVarP(&soundFont, "sound_font", "f", constants.GetSoundFont(), "sound font for fluidsynth")
	f.Float64VarP(&delay, "delay", "d", 60/constants.DefaultBPM, "seconds per chord, overrides --bpm")
	f.Float64Var(&bpm, "bpm", constants.DefaultBPM, "tempo in beats per minute")
	f.StringVar(&modeName, "mode", quiz.ChordTone.String(), "single_chord, progression, interval or chord_tone")
	f.StringVar(&midiOut, "midi_out", "", "play through this MIDI output port")
	f.StringVar(&midiIn, "midi_in", "", "also take answers from this MIDI input port")
	f.StringVar(&recordPath, "record", "", "write everything played to this .mid file")
	f.BoolVar(&mute, "mute", false, "play nothing")
	f.BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
	f.Int64Var(&seed, "seed", 0, "random seed, 0 for a time based one")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// parseKey reads name as major unless minor is set. An invalid name falls
// back to the default key with a notice on out.
func parseKey(out io.Writer, name string, minor bool) theory.Key {
	name = strings.TrimSpace(name)
	if name != "" {
		if minor {
			name = strings.ToLower(name[:1]) + name[1:]
		} else {
			name = strings.ToUpper(name[:1]) + name[1:]
		}
	}
	k, err := theory.ParseKey(name)
	if err != nil {
		fmt.Fprintf(out, "ATTENTION: User-input key, %s, not valid, using C Major instead.\n", name)
		return theory.MustParseKey(constants.DefaultKey)
	}
	return k
}

func newSink() (audio.Sink, error) {
	switch {
	case mute:
		return audio.NullSink{}, nil
	case midiOut != "":
		return audio.NewPortSink(midiOut)
	case soundFont != "":
		return audio.NewFluidSynthSink(soundFont)
	}
	return audio.NewSynthSink()
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func play(ctx context.Context, delaySet bool) error {
	key := parseKey(os.Stdout, keyName, minor)
	mode, err := quiz.ParseMode(modeName)
	if err != nil {
		return err
	}
	tempo := bpm
	if delaySet {
		if delay <= 0 {
			return fmt.Errorf("--delay must be positive, got %v", delay)
		}
		tempo = 60 / delay
	}
	if tempo <= 0 {
		return fmt.Errorf("--bpm must be positive, got %v", tempo)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	if !verbose {
		logger = nil
	}

	sink, err := newSink()
	if err != nil {
		return err
	}
	defer sink.Close()
	var recorder *audio.Recorder
	if recordPath != "" {
		recorder = audio.NewRecorder(sink, tempo)
		sink = recorder
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var prompter console.Prompter = console.New(os.Stdin, os.Stdout)
	if midiIn != "" {
		answers, err := midi.ListenAnswers(ctx, midiIn, constants.PhraseWindow)
		if err != nil {
			return err
		}
		prompter = console.NewMergedPrompter(ctx, os.Stdin, os.Stdout, answers)
	}

	state := quiz.NewState(quiz.Settings{
		Key:         key,
		Mode:        mode,
		Seventh:     sevenths,
		ManyOctaves: manyOctaves,
		TonicOctave: constants.DefaultTonicOctave,
		BPM:         tempo,
	}, constants.DefaultChordToneResolution)
	session := quiz.NewSession(state, quiz.Options{
		Sink:     sink,
		Prompter: prompter,
		Out:      os.Stdout,
		Logger:   logger,
		Rand:     newRand(seed),
	})
	runErr := session.Run(ctx)

	if recorder != nil {
		if err := midi.WriteFile(recordPath, recorder.Bars(), recorder.BPM()); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", recordPath)
	}
	return runErr
}
