package model

type ChordResponse struct {
	Key     string   `json:"key"`
	Numeral string   `json:"numeral"`
	Quality string   `json:"quality"`
	Notes   []string `json:"notes"`
	Pitches []int    `json:"pitches"`
}

type ProgressionResponse struct {
	SessionId string          `json:"session_id,omitempty"`
	Key       string          `json:"key"`
	Numerals  []string        `json:"numerals"`
	Strums    []string        `json:"strums,omitempty"`
	Chords    []ChordResponse `json:"chords"`
}

type IntervalResponse struct {
	Key       string   `json:"key"`
	Root      string   `json:"root"`
	Notes     []string `json:"notes"`
	Semitones int      `json:"semitones"`
	Name      string   `json:"name"`
}

type EvaluateRequestBody struct {
	Key      string   `json:"key"`
	Kind     string   `json:"kind"`
	Answer   string   `json:"answer"`
	Numerals []string `json:"numerals"`
	// interval questions
	Semitones int `json:"semitones"`
}

type EvaluateResponse struct {
	Correct  bool   `json:"correct"`
	Results  []bool `json:"results,omitempty"`
	TooFew   bool   `json:"too_few,omitempty"`
	TooMany  bool   `json:"too_many,omitempty"`
	Expected string `json:"expected"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
