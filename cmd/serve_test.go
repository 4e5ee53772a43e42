package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsphweid/earthosechords/midi"
	"github.com/jsphweid/earthosechords/model"
	"github.com/jsphweid/earthosechords/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"
)

func get(t *testing.T, path string, out any) *http.Response {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	resp := w.Result()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHandleChord(t *testing.T) {
	var res model.ChordResponse
	resp := get(t, "/keys/C/chords/V", &res)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert := assert.New(t)
	assert.Equal("V", res.Numeral)
	assert.Equal("maj", res.Quality)
	assert.Equal([]string{"G4", "B4", "D5"}, res.Notes)
	assert.Equal([]int{55, 59, 62}, res.Pitches)
}

func TestHandleChordMinorKey(t *testing.T) {
	var res model.ChordResponse
	get(t, "/keys/a/chords/1", &res)
	assert.Equal(t, "a", res.Key)
	assert.Equal(t, "min", res.Quality)
}

func TestHandleChordBadInput(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, get(t, "/keys/H/chords/V", nil).StatusCode)
	assert.Equal(t, http.StatusBadRequest, get(t, "/keys/C/chords/IX", nil).StatusCode)
}

func TestHandleResolution(t *testing.T) {
	var res model.ProgressionResponse
	get(t, "/keys/C/resolution/V", &res)
	assert.Equal(t, []string{"V", "VI", "VII", "Iup"}, res.Numerals)
	require.Len(t, res.Chords, 4)
	assert.Equal(t, 60, res.Chords[3].Pitches[0])
}

func TestHandleProgression(t *testing.T) {
	var res model.ProgressionResponse
	get(t, "/keys/D/progression?length=3&seed=5", &res)
	assert := assert.New(t)
	assert.Len(res.Strums, 3)
	assert.NotEmpty(res.SessionId)
	assert.Len(res.Chords, len(res.Numerals))
	for i := 1; i < len(res.Numerals); i++ {
		assert.NotEqual(res.Numerals[i-1], res.Numerals[i])
	}
}

func TestHandleProgressionLengthBounds(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(http.StatusBadRequest, get(t, "/keys/C/progression?length=1000000000", nil).StatusCode)
	assert.Equal(http.StatusBadRequest, get(t, "/keys/C/progression?length=65", nil).StatusCode)
	assert.Equal(http.StatusBadRequest, get(t, "/keys/C/progression?length=0", nil).StatusCode)

	var res model.ProgressionResponse
	resp := get(t, "/keys/C/progression?length=64&seed=3", &res)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(res.Strums, 64)
}

func TestHandleInterval(t *testing.T) {
	var res model.IntervalResponse
	get(t, "/keys/C/intervals/1/3", &res)
	assert.Equal(t, 4, res.Semitones)
	assert.Equal(t, "3", res.Name)

	get(t, "/keys/C/intervals/1/3?descending=true", &res)
	assert.Equal(t, 3, res.Semitones)
	assert.Equal(t, "3b", res.Name)
	assert.Equal(t, []string{"A", "C"}, res.Notes)

	get(t, "/keys/C/intervals/1/1", &res)
	assert.Equal(t, "8", res.Name)
}

func post(t *testing.T, body model.EvaluateRequestBody) (*http.Response, model.EvaluateResponse) {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/evaluate", bytes.NewReader(data))
	w := httptest.NewRecorder()
	HandleEvaluate(w, req)
	var res model.EvaluateResponse
	resp := w.Result()
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	}
	return resp, res
}

func TestHandleEvaluate(t *testing.T) {
	assert := assert.New(t)
	prog := []string{"I", "IV", "V"}

	_, res := post(t, model.EvaluateRequestBody{Key: "C", Kind: "progression", Answer: "1 4 5", Numerals: prog})
	assert.True(res.Correct)
	assert.Equal("1 4 5", res.Expected)

	_, res = post(t, model.EvaluateRequestBody{Key: "C", Kind: "progression", Answer: "c f g", Numerals: prog})
	assert.True(res.Correct)

	_, res = post(t, model.EvaluateRequestBody{Key: "C", Kind: "progression", Answer: "14", Numerals: prog})
	assert.False(res.Correct)
	assert.True(res.TooFew)
	assert.Equal([]bool{true, true}, res.Results)

	_, res = post(t, model.EvaluateRequestBody{Key: "C", Kind: "degree", Answer: "6", Numerals: []string{"vi"}})
	assert.True(res.Correct)

	_, res = post(t, model.EvaluateRequestBody{Kind: "interval", Answer: "5", Semitones: 19})
	assert.True(res.Correct)

	resp, _ := post(t, model.EvaluateRequestBody{Key: "C", Kind: "chord"})
	assert.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestHandleMidi(t *testing.T) {
	resp := get(t, "/keys/G/midi?numerals=I,V", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "audio/midi", resp.Header.Get("Content-Type"))

	s, err := smf.ReadFrom(resp.Body)
	require.NoError(t, err)
	chords := midi.ExtractChords(s)
	require.Len(t, chords, 2)
	assert.Equal(t, []uint8{67, 71, 74}, chords[0].Notes)
}

func TestDescribe(t *testing.T) {
	got := describe(theory.MustParseKey("C"), model.InspectedChord{Tick: 0, Notes: []uint8{67, 71, 74, 77}})
	assert.Equal(t, "tick 0: G B D F (7, degree 5)", got)
	assert.True(t, strings.Contains(describe(theory.MustParseKey("C"), model.InspectedChord{Notes: []uint8{61}}), "degree -"))
}
