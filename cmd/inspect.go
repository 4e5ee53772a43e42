package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/earthosechords/chord"
	"github.com/jsphweid/earthosechords/constants"
	"github.com/jsphweid/earthosechords/midi"
	"github.com/jsphweid/earthosechords/model"
	"github.com/jsphweid/earthosechords/theory"
	"github.com/spf13/cobra"
)

var (
	inspectKey   string
	inspectFrom  uint64
	inspectLimit int
)

func init() {
	f := inspectCmd.Flags()
	f.StringVarP(&inspectKey, "key", "k", constants.DefaultKey, "key to read degrees in, lower case for minor")
	f.Uint64Var(&inspectFrom, "from", 0, "start at this tick")
	f.IntVar(&inspectLimit, "limit", 0, "read at most this many note events per track, 0 for all")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Lists the chords in a MIDI file",
	Long:  `Lists the chords in a MIDI file with their quality and the scale degree of their lowest note`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		k, err := parseKey(inspectKey, false)
		cobra.CheckErr(err)
		s, err := midi.ReadMidiFile(args[0])
		cobra.CheckErr(err)
		if inspectFrom > 0 || inspectLimit > 0 {
			s = midi.Excerpt(s, inspectFrom, inspectLimit)
		}
		for _, c := range midi.ExtractChords(s) {
			fmt.Println(describe(k, c))
		}
	},
}

func describe(k theory.Key, ic model.InspectedChord) string {
	var pitches []theory.Pitch
	var names []string
	for _, key := range ic.Notes {
		p := theory.PitchFromMIDI(key)
		pitches = append(pitches, p)
		names = append(names, k.NoteName(p))
	}
	c := chord.New(chord.Numeral{}, pitches...)
	degree := "-"
	if d, err := theory.PitchToDegree(k, c.Root()); err == nil {
		degree = fmt.Sprint(d)
	}
	quality := c.Quality()
	if quality == "" {
		quality = "?"
	}
	return fmt.Sprintf("tick %d: %s (%s, degree %s)", ic.Tick, strings.Join(names, " "), quality, degree)
}
