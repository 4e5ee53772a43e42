package model

import "github.com/jsphweid/earthosechords/theory"

// Bar is one sounding event of a stimulus: a note or a chord held for
// Beats beats.
type Bar struct {
	Notes []theory.Pitch
	Beats float64
}

func NewBar(beats float64, notes ...theory.Pitch) Bar {
	n := make([]theory.Pitch, len(notes))
	copy(n, notes)
	return Bar{Notes: n, Beats: beats}
}
