package midi

import (
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Excerpt copies the notes of s from tick from on, at most maxNotes note
// on/off events per track (0 for no limit). Other messages before from,
// such as tempo, are kept at the start of the excerpt; later ones are
// dropped.
func Excerpt(s *smf.SMF, from uint64, maxNotes int) *smf.SMF {
	var res smf.SMF
	res.TimeFormat = s.TimeFormat

	for _, track := range s.Tracks {
		var newTrack smf.Track
		var absTicks, last uint64
		var numNoteOnOff int
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			isNote := evt.Message.Is(midi.NoteOnMsg) || evt.Message.Is(midi.NoteOffMsg)
			if isNote != (absTicks >= from) {
				continue
			}
			if isNote && maxNotes > 0 && numNoteOnOff >= maxNotes {
				break
			}
			at := uint64(0)
			if absTicks >= from {
				at = absTicks - from
			}
			newTrack = append(newTrack, smf.Event{Delta: uint32(at - last), Message: evt.Message})
			last = at
			if isNote {
				numNoteOnOff++
			}
		}
		newTrack.Close(0)
		res.Tracks = append(res.Tracks, newTrack)
	}
	return &res
}
