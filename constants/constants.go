package constants

import (
	"os"
	"time"
)

func GetSoundFont() string {
	return os.Getenv("EARTHOSECHORDS_SOUND_FONT")
}

func GetServeAddr() string {
	addr := os.Getenv("EARTHOSECHORDS_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

const DefaultKey = "C"

// octave of the tonic when many_octaves is off
const DefaultTonicOctave = 4

const DefaultBPM = 60.0

// many_octaves picks the tonic octave from [MinOctave, MaxOctave]
const MinOctave = 1
const MaxOctave = 7

// number of strums in a progression question
var ProgressionLengths = []int{2, 3}

// longest progression the server will draw, in strums
const MaxProgressionLength = 64

// strums per chord, 1..max(ProgressionLengths)
var ChordLengths = []int{1, 2, 3}

const ResolveWhenCorrect = true
const ResolveWhenIncorrect = true
const ArpeggiateWhenCorrect = true
const ArpeggiateWhenIncorrect = true

const DefaultChordToneResolution = 2

const Velocity = 100

// a MIDI keyboard answer ends once no key is pressed for this long
const PhraseWindow = 400 * time.Millisecond
