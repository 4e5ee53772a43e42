package model

// InspectedChord is a group of notes sounding together in a MIDI file.
type InspectedChord struct {
	Tick  uint64
	Notes []uint8
}
