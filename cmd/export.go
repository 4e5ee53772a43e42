package cmd

import (
	"fmt"

	"github.com/jsphweid/earthosechords/chord"
	"github.com/jsphweid/earthosechords/constants"
	"github.com/jsphweid/earthosechords/midi"
	"github.com/spf13/cobra"
)

var (
	exportKey     string
	exportResolve string
	exportBPM     float64
	exportSeventh bool
)

func init() {
	f := exportCmd.Flags()
	f.StringVarP(&exportKey, "key", "k", constants.DefaultKey, "key, lower case for minor")
	f.StringVar(&exportResolve, "resolve", "", "export the resolution of this numeral instead")
	f.Float64Var(&exportBPM, "bpm", constants.DefaultBPM, "tempo in beats per minute")
	f.BoolVarP(&exportSeventh, "sevenths", "s", false, "use seventh chords for the cadence")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <file.mid> [numerals...]",
	Short: "Writes a progression to a MIDI file",
	Long: `Writes the given numerals (e.g. I vi IV V7) to a Standard MIDI File,
one beat per chord. Without numerals the cadence is written.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(export(args[0], args[1:]))
	},
}

func export(path string, fields []string) error {
	k, err := parseKey(exportKey, false)
	if err != nil {
		return err
	}
	numerals, err := chord.ParseNumerals(fields)
	if err != nil {
		return err
	}
	if exportResolve != "" {
		n, err := chord.ParseNumeral(exportResolve)
		if err != nil {
			return err
		}
		numerals = chord.ResolutionPath(n)
	}
	if len(numerals) == 0 {
		numerals = chord.Cadence(exportSeventh)
	}
	chords, err := chord.RenderProgression(k, numerals, constants.DefaultTonicOctave)
	if err != nil {
		return err
	}
	if err := midi.WriteFile(path, chord.Bars(chords, 1), exportBPM); err != nil {
		return err
	}
	for _, c := range chords {
		fmt.Println(c.Name(k))
	}
	fmt.Printf("Wrote %d chords in %v to %s\n", len(chords), k, path)
	return nil
}
