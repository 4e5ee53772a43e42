package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/earthosechords/answer"
	"github.com/jsphweid/earthosechords/chord"
	"github.com/jsphweid/earthosechords/constants"
	"github.com/jsphweid/earthosechords/midi"
	"github.com/jsphweid/earthosechords/model"
	"github.com/jsphweid/earthosechords/theory"
	"github.com/jsphweid/earthosechords/util"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", constants.GetServeAddr(), "address to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves chords, progressions and answer checking over HTTP",
	Long:  `Serves chords, progressions and answer checking over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		log.Printf("listening on %s", serveAddr)
		log.Fatal(http.ListenAndServe(serveAddr, Handler()))
	},
}

func NewRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/keys/{key}/chords/{numeral}", HandleChord).Methods("GET")
	router.HandleFunc("/keys/{key}/resolution/{numeral}", HandleResolution).Methods("GET")
	router.HandleFunc("/keys/{key}/progression", HandleProgression).Methods("GET")
	router.HandleFunc("/keys/{key}/intervals/{degree}/{span}", HandleInterval).Methods("GET")
	router.HandleFunc("/keys/{key}/midi", HandleMidi).Methods("GET")
	router.HandleFunc("/evaluate", HandleEvaluate).Methods("POST")
	return router
}

func Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(NewRouter())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func keyFromRequest(r *http.Request) (theory.Key, error) {
	return theory.ParseKey(mux.Vars(r)["key"])
}

func chordResponse(k theory.Key, c chord.Chord) model.ChordResponse {
	res := model.ChordResponse{
		Key:     k.Name(),
		Numeral: c.Numeral.String(),
		Quality: c.Quality(),
	}
	for _, p := range c.Notes() {
		res.Notes = append(res.Notes, k.NoteName(p)+strconv.Itoa(p.Octave()))
		res.Pitches = append(res.Pitches, int(p))
	}
	return res
}

func progressionResponse(k theory.Key, numerals []chord.Numeral) (model.ProgressionResponse, error) {
	chords, err := chord.RenderProgression(k, numerals, constants.DefaultTonicOctave)
	if err != nil {
		return model.ProgressionResponse{}, err
	}
	res := model.ProgressionResponse{Key: k.Name()}
	for i, c := range chords {
		res.Numerals = append(res.Numerals, numerals[i].String())
		res.Chords = append(res.Chords, chordResponse(k, c))
	}
	return res, nil
}

func HandleChord(w http.ResponseWriter, r *http.Request) {
	k, err := keyFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	n, err := chord.ParseNumeral(mux.Vars(r)["numeral"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	chords, err := chord.RenderProgression(k, []chord.Numeral{n}, constants.DefaultTonicOctave)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, chordResponse(k, chords[0]))
}

func HandleResolution(w http.ResponseWriter, r *http.Request) {
	k, err := keyFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	n, err := chord.ParseNumeral(mux.Vars(r)["numeral"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := progressionResponse(k, chord.ResolutionPath(n))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("query parameter %s: %w", name, err)
	}
	return n, nil
}

// HandleProgression draws a random progression. Query parameters: length
// (strums, at most constants.MaxProgressionLength), sevenths and seed.
func HandleProgression(w http.ResponseWriter, r *http.Request) {
	k, err := keyFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s, err := queryInt(r, "seed", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rng := newRand(int64(s))
	length, err := queryInt(r, "length", util.Choice(rng, constants.ProgressionLengths))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if length < 1 || length > constants.MaxProgressionLength {
		writeError(w, http.StatusBadRequest, fmt.Errorf("length must be between 1 and %d, got %d", constants.MaxProgressionLength, length))
		return
	}
	seventh := r.URL.Query().Get("sevenths") == "true"

	prog, strums, err := chord.RandomProgression(rng, length, chord.Numerals(seventh), constants.ChordLengths)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := progressionResponse(k, prog)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	res.SessionId = uuid.NewString()
	for _, n := range strums {
		res.Strums = append(res.Strums, n.String())
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleInterval builds the interval of span degrees from the given scale
// degree, ascending unless ?descending=true.
func HandleInterval(w http.ResponseWriter, r *http.Request) {
	k, err := keyFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	vars := mux.Vars(r)
	degree, err := strconv.Atoi(vars["degree"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	span, err := strconv.Atoi(vars["span"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	root, err := theory.ScaleDegreeToPitch(k, degree, constants.DefaultTonicOctave)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	ascending := r.URL.Query().Get("descending") != "true"
	iv, err := theory.IntervalFromRoot(k, root, theory.SoundingSpan(span), ascending)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, model.IntervalResponse{
		Key:       k.Name(),
		Root:      k.NoteName(iv.Root),
		Notes:     []string{k.NoteName(iv.Low()), k.NoteName(iv.High())},
		Semitones: iv.Semitones(),
		Name:      answer.IntervalName(iv.Semitones()),
	})
}

func evaluate(input model.EvaluateRequestBody) (model.EvaluateResponse, error) {
	if input.Kind == "interval" {
		return model.EvaluateResponse{
			Correct:  answer.EvaluateIntervalName(input.Answer, input.Semitones),
			Expected: answer.IntervalName(input.Semitones),
		}, nil
	}
	if input.Kind != "degree" && input.Kind != "progression" {
		return model.EvaluateResponse{}, fmt.Errorf("unknown kind %q", input.Kind)
	}

	k, err := theory.ParseKey(input.Key)
	if err != nil {
		return model.EvaluateResponse{}, err
	}
	numerals, err := chord.ParseNumerals(input.Numerals)
	if err != nil {
		return model.EvaluateResponse{}, err
	}
	if len(numerals) == 0 {
		return model.EvaluateResponse{}, errors.New("numerals must not be empty")
	}
	var expected []answer.Expected
	var degrees []string
	for _, n := range numerals {
		c, err := chord.ForDegree(k, n, constants.DefaultTonicOctave)
		if err != nil {
			return model.EvaluateResponse{}, err
		}
		expected = append(expected, answer.Expected{Degree: n.Degree, Pitch: c.Root()})
		degrees = append(degrees, strconv.Itoa(n.Degree))
	}
	res := answer.EvaluateSequence(input.Answer, expected)
	return model.EvaluateResponse{
		Correct:  res.AllCorrect(),
		Results:  res.Correct,
		TooFew:   res.TooFew,
		TooMany:  res.TooMany,
		Expected: strings.Join(degrees, " "),
	}, nil
}

func HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var input model.EvaluateRequestBody
	if err := json.Unmarshal(reqBody, &input); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("could not unmarshal request body: %w", err))
		return
	}
	res, err := evaluate(input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleMidi renders ?numerals=I,IV,V (the cadence by default) as a
// Standard MIDI File.
func HandleMidi(w http.ResponseWriter, r *http.Request) {
	k, err := keyFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	numerals := chord.Cadence(false)
	if q := r.URL.Query().Get("numerals"); q != "" {
		numerals, err = chord.ParseNumerals(strings.Split(q, ","))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	tempo, err := queryInt(r, "bpm", int(constants.DefaultBPM))
	if err != nil || tempo <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bad bpm %q", r.URL.Query().Get("bpm")))
		return
	}
	chords, err := chord.RenderProgression(k, numerals, constants.DefaultTonicOctave)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var buf bytes.Buffer
	if err := midi.WriteSMF(&buf, chord.Bars(chords, 1), float64(tempo)); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Write(buf.Bytes())
}
