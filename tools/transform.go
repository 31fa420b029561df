package tools

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/adamjmurray/producer-pal-sub001/arrangement"
	"github.com/adamjmurray/producer-pal-sub001/live"
	"github.com/adamjmurray/producer-pal-sub001/models"
	"github.com/adamjmurray/producer-pal-sub001/notation"
	"github.com/adamjmurray/producer-pal-sub001/operr"
	"github.com/adamjmurray/producer-pal-sub001/rng"
)

// TransformRequest carries the arguments of the transformClips tool. Clips
// are selected either by explicit id list or by arrangement track plus time
// range; the randomized parameters all draw from one seeded generator.
type TransformRequest struct {
	ClipIDs            string    `json:"clipIds,omitempty"`
	ArrangementTrackID string    `json:"arrangementTrackId,omitempty"`
	RangeStart         string    `json:"rangeStart,omitempty"`
	RangeLength        string    `json:"rangeLength,omitempty"`
	ShuffleOrder       bool      `json:"shuffleOrder,omitempty"`
	Slice              string    `json:"slice,omitempty"`
	GainMin            *float64  `json:"gainMin,omitempty"`
	GainMax            *float64  `json:"gainMax,omitempty"`
	TransposeMin       *float64  `json:"transposeMin,omitempty"`
	TransposeMax       *float64  `json:"transposeMax,omitempty"`
	TransposeValues    []float64 `json:"transposeValues,omitempty"`
	VelocityMin        *float64  `json:"velocityMin,omitempty"`
	VelocityMax        *float64  `json:"velocityMax,omitempty"`
	DurationMin        *float64  `json:"durationMin,omitempty"`
	DurationMax        *float64  `json:"durationMax,omitempty"`
	VelocityDeviation  *float64  `json:"velocityDeviation,omitempty"`
	Probability        *float64  `json:"probability,omitempty"`
	Seed               *uint32   `json:"seed,omitempty"`
}

// TransformResponse reports the final clip id set (slicing replaces ids)
// and the seed that drove the run, so any call can be reproduced.
type TransformResponse struct {
	ClipIDs  []string `json:"clipIds"`
	Seed     uint32   `json:"seed"`
	Warnings []string `json:"warnings,omitempty"`
}

// span is a validated min/max draw range.
type span struct {
	min, max float64
	set      bool
}

func boundPair(op, name string, min, max *float64) (span, error) {
	if min == nil && max == nil {
		return span{}, nil
	}
	if min == nil || max == nil {
		return span{}, &operr.ValidationError{Op: op, Msg: fmt.Sprintf("%sMin and %sMax must be supplied together", name, name)}
	}
	if *min > *max {
		return span{}, &operr.ValidationError{Op: op, Msg: fmt.Sprintf("%sMin %v exceeds %sMax %v", name, *min, name, *max)}
	}
	return span{min: *min, max: *max, set: true}, nil
}

// Transform applies seeded-random perturbation and reordering to a set of
// clips: slice-and-tile first (it changes clip identities), then shuffle,
// then per-clip parameter randomization.
func (e *Engine) Transform(ctx context.Context, req TransformRequest) (*TransformResponse, error) {
	const op = "transformClips"
	started := time.Now()
	calls, sets := e.host.calls, e.host.sets
	log.Printf("🎲 transformClips: clipIds=%q track=%q shuffle=%t slice=%q", req.ClipIDs, req.ArrangementTrackID, req.ShuffleOrder, req.Slice)

	warns := newWarnings()
	resp, err := e.runTransform(op, req, warns)

	e.metrics.RecordToolDuration(ctx, op, time.Since(started), err == nil)
	e.recordHostTraffic(ctx, op, calls, sets)
	e.metrics.RecordWarnings(ctx, op, len(warns.list()))
	if err != nil {
		log.Printf("❌ transformClips failed: %v", err)
		captureInternal(err)
		return nil, err
	}
	resp.Warnings = warns.list()
	log.Printf("✅ transformClips: %d clip(s), seed=%d", len(resp.ClipIDs), resp.Seed)
	return resp, nil
}

func (e *Engine) runTransform(op string, req TransformRequest, warns *warnings) (*TransformResponse, error) {
	gain, err := boundPair(op, "gain", req.GainMin, req.GainMax)
	if err != nil {
		return nil, err
	}
	transpose, err := boundPair(op, "transpose", req.TransposeMin, req.TransposeMax)
	if err != nil {
		return nil, err
	}
	velocity, err := boundPair(op, "velocity", req.VelocityMin, req.VelocityMax)
	if err != nil {
		return nil, err
	}
	duration, err := boundPair(op, "duration", req.DurationMin, req.DurationMax)
	if err != nil {
		return nil, err
	}
	if duration.set && duration.min <= 0 {
		return nil, &operr.RangeError{Op: op, Field: "durationMin", Value: duration.min, Msg: "duration multipliers must be positive"}
	}
	if len(req.TransposeValues) > 0 && transpose.set {
		transpose = span{}
		warns.addOnce("transpose-set-overrides",
			"transformClips: transposeValues was supplied; transposeMin/transposeMax are ignored")
	}

	songNum, songDen, err := e.songSignature()
	if err != nil {
		return nil, err
	}
	// Slice size is re-parsed against each clip's own signature later; the
	// song-signature parse here front-loads format and sign errors before
	// any mutation.
	if req.Slice != "" {
		probe, err := notation.DurationToBeats(op, req.Slice, songNum, songDen)
		if err != nil {
			return nil, err
		}
		if probe <= 0 {
			return nil, &operr.RangeError{Op: op, Field: "slice", Value: probe, Msg: "must be a positive duration"}
		}
	}

	selection, err := e.selectClips(op, req, songNum, songDen, warns)
	if err != nil {
		return nil, err
	}

	seed := rng.TimeSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}
	random := rng.New(seed)

	if len(selection) == 0 {
		warns.addOnce("empty-selection", "transformClips: no clips matched the selection; nothing to transform")
		return &TransformResponse{ClipIDs: []string{}, Seed: seed}, nil
	}

	if req.Slice != "" {
		selection, err = e.sliceClips(op, req.Slice, selection, warns)
		if err != nil {
			return nil, err
		}
	}
	if req.ShuffleOrder {
		selection, err = e.shuffleClips(op, selection, random, warns)
		if err != nil {
			return nil, err
		}
	}
	if err := e.randomizeClips(op, req, selection, gain, transpose, velocity, duration, random, warns); err != nil {
		return nil, err
	}

	ids := make([]string, len(selection))
	for i, c := range selection {
		ids[i] = c.ID
	}
	return &TransformResponse{ClipIDs: ids, Seed: seed}, nil
}

// selectClips builds the working set: an explicit id list in skip-invalid
// mode, or every arrangement clip on a track starting inside the half-open
// range [rangeStart, rangeStart+rangeLength).
func (e *Engine) selectClips(op string, req TransformRequest, songNum, songDen int, warns *warnings) ([]live.Object, error) {
	if req.ClipIDs != "" && req.ArrangementTrackID != "" {
		return nil, &operr.ValidationError{Op: op, Msg: "clipIds and arrangementTrackId are mutually exclusive"}
	}
	if req.ClipIDs == "" && req.ArrangementTrackID == "" {
		return nil, &operr.ValidationError{Op: op, Msg: "either clipIds or arrangementTrackId is required"}
	}
	if req.ClipIDs != "" {
		if req.RangeStart != "" || req.RangeLength != "" {
			return nil, &operr.ValidationError{Op: op, Msg: "rangeStart/rangeLength apply to arrangementTrackId selection only"}
		}
		return resolveMany(op, e.api, req.ClipIDs, live.KindClip, true, warns)
	}

	track, err := resolveOne(op, e.api, req.ArrangementTrackID, live.KindTrack)
	if err != nil {
		return nil, err
	}
	rangeStart := 0.0
	if req.RangeStart != "" {
		rangeStart, err = notation.PositionToBeats(op, req.RangeStart, songNum, songDen)
		if err != nil {
			return nil, err
		}
	}
	rangeEnd := math.Inf(1)
	if req.RangeLength != "" {
		length, err := notation.DurationToBeats(op, req.RangeLength, songNum, songDen)
		if err != nil {
			return nil, err
		}
		if length <= 0 {
			return nil, &operr.RangeError{Op: op, Field: "rangeLength", Value: length, Msg: "must be a positive duration"}
		}
		rangeEnd = rangeStart + length
	}

	clips, err := track.Children("arrangement_clips")
	if err != nil {
		return nil, err
	}
	var selected []live.Object
	for _, clip := range clips {
		start, err := clip.GetFloat("start_time")
		if err != nil {
			return nil, err
		}
		if start >= rangeStart && start < rangeEnd {
			selected = append(selected, clip)
		}
	}
	return selected, nil
}

// sliceClips shortens each eligible clip to the slice length and tiles the
// shortened clip back over the original region. The returned set replaces
// sliced ids with the ids of their segments, in timeline order.
func (e *Engine) sliceClips(op, slice string, selection []live.Object, warns *warnings) ([]live.Object, error) {
	totalSegments := 0
	var result []live.Object
	for _, clip := range selection {
		if !clip.IsArrangementClip() {
			warns.addOnce("slice-session-clips",
				"transformClips: slice applies to arrangement clips only; session clips were skipped")
			result = append(result, clip)
			continue
		}
		looping, err := clip.GetBool("looping")
		if err != nil {
			return nil, err
		}
		if !looping {
			warns.addOnce("slice-unlooped-clips",
				"transformClips: non-looped clips cannot be sliced and were skipped")
			result = append(result, clip)
			continue
		}

		clipNum, clipDen, err := clipSignature(clip)
		if err != nil {
			return nil, err
		}
		sliceLen, err := notation.DurationToBeats(op, slice, clipNum, clipDen)
		if err != nil {
			return nil, err
		}
		length, err := clip.GetFloat("length")
		if err != nil {
			return nil, err
		}
		if length <= sliceLen+arrangement.PositionEpsilon {
			result = append(result, clip)
			continue
		}

		segments := int(math.Ceil((length - arrangement.PositionEpsilon) / sliceLen))
		if totalSegments+segments > arrangement.MaxSegments {
			return nil, &operr.LimitExceededError{Op: op, Requested: totalSegments + segments, Limit: arrangement.MaxSegments}
		}
		totalSegments += segments

		start, err := clip.GetFloat("start_time")
		if err != nil {
			return nil, err
		}
		track, _, err := e.trackOfClip(clip)
		if err != nil {
			return nil, err
		}

		shortened, ws, err := arrangement.ShortenInPlace(op, track, clip, sliceLen, e.opts)
		warns.extend(ws)
		if err != nil {
			return nil, err
		}
		tiles, ws, err := arrangement.TileToRange(op, track, shortened, start+sliceLen, length-sliceLen,
			arrangement.TileOptions{TileLength: sliceLen}, e.opts)
		warns.extend(ws)
		if err != nil {
			return nil, err
		}
		result = append(result, shortened)
		result = append(result, tiles...)
	}
	return result, nil
}

// shuffleClips permutes the start positions of the arrangement clips in the
// selection. Every clip moves twice: first into its own holding slot, then
// from there to its shuffled position. Moving directly would let one clip
// land on another's still-occupied region and trigger the host's silent
// overwrite.
func (e *Engine) shuffleClips(op string, selection []live.Object, random *rng.Source, warns *warnings) ([]live.Object, error) {
	type entry struct {
		track live.Object
		pos   float64
	}
	var indices []int
	var entries []entry
	for i, clip := range selection {
		if !clip.IsArrangementClip() {
			continue
		}
		track, _, err := e.trackOfClip(clip)
		if err != nil {
			return nil, err
		}
		pos, err := clip.GetFloat("start_time")
		if err != nil {
			return nil, err
		}
		indices = append(indices, i)
		entries = append(entries, entry{track: track, pos: pos})
	}
	if len(entries) == 0 {
		warns.addOnce("shuffle-no-arrangement-clips",
			"transformClips: shuffleOrder requires arrangement clips; none were selected")
		return selection, nil
	}
	if len(entries) < 2 {
		return selection, nil
	}

	shuffled := make([]float64, len(entries))
	for i, en := range entries {
		shuffled[i] = en.pos
	}
	random.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	// Phase 1: clear the board. Each clip parks in its own holding slot.
	holds := make([]live.Object, len(entries))
	for i, en := range entries {
		clip := selection[indices[i]]
		result, err := en.track.Call("duplicate_clip_to_arrangement", clip.ID, e.opts.HoldingSlot(i))
		if err != nil {
			return nil, fmt.Errorf("%s: staging clip %s for shuffle: %w", op, clip.ID, err)
		}
		id, ok := live.CallResultID(result)
		if !ok {
			return nil, fmt.Errorf("%s: host returned no id for the staged clip", op)
		}
		holds[i] = live.Object{API: e.api, ID: id}
		if _, err := en.track.Call("delete_clip", clip.ID); err != nil {
			return nil, err
		}
	}

	// Phase 2: deal the clips back out to their shuffled positions.
	for i, en := range entries {
		if _, err := en.track.Call("duplicate_clip_to_arrangement", holds[i].ID, shuffled[i]); err != nil {
			return nil, err
		}
		if _, err := en.track.Call("delete_clip", holds[i].ID); err != nil {
			return nil, err
		}
		fresh, err := arrangement.ClipAt(op, en.track, shuffled[i])
		if err != nil {
			return nil, err
		}
		selection[indices[i]] = fresh
	}
	return selection, nil
}

func (e *Engine) randomizeClips(op string, req TransformRequest, selection []live.Object,
	gain, transpose, velocity, duration span, random *rng.Source, warns *warnings) error {

	transposeRequested := transpose.set || len(req.TransposeValues) > 0
	midiRequested := velocity.set || duration.set || transposeRequested ||
		req.VelocityDeviation != nil || req.Probability != nil
	audioRequested := gain.set || transposeRequested
	if !midiRequested && !audioRequested {
		return nil
	}

	for _, clip := range selection {
		isMIDI, err := clip.GetBool("is_midi_clip")
		if err != nil {
			return err
		}
		if isMIDI {
			if gain.set {
				warns.addOnce("gain-on-midi",
					"transformClips: gain applies to audio clips only; MIDI clips were left unchanged")
			}
			if !velocity.set && !duration.set && !transposeRequested &&
				req.VelocityDeviation == nil && req.Probability == nil {
				continue
			}
			if err := e.randomizeNotes(op, req, clip, transpose, velocity, duration, random); err != nil {
				return err
			}
			continue
		}

		if velocity.set || duration.set || req.VelocityDeviation != nil || req.Probability != nil {
			warns.addOnce("note-params-on-audio",
				"transformClips: velocity, duration and probability apply to MIDI clips only; audio clips were left unchanged")
		}
		if !gain.set && !transposeRequested {
			continue
		}
		if err := randomizeAudio(req, clip, gain, transpose, random); err != nil {
			return err
		}
	}
	return nil
}

// randomizeNotes perturbs a MIDI clip's notes and writes them back in one
// batch. Draw order is fixed per note (velocity, transpose, duration) so a
// seed replays identically.
func (e *Engine) randomizeNotes(op string, req TransformRequest, clip live.Object,
	transpose, velocity, duration span, random *rng.Source) error {

	length, err := clip.GetFloat("length")
	if err != nil {
		return err
	}
	raw, err := clip.Call("get_notes_extended", 0, 128, 0.0, length)
	if err != nil {
		return fmt.Errorf("%s: reading notes of clip %s: %w", op, clip.ID, err)
	}
	notes, err := models.ParseNotes(asNoteJSON(raw))
	if err != nil {
		return fmt.Errorf("%s: decoding notes of clip %s: %w", op, clip.ID, err)
	}
	if len(notes) == 0 {
		return nil
	}

	for i := range notes {
		if velocity.set {
			offset := random.Range(velocity.min, velocity.max)
			notes[i].Velocity = clamp(notes[i].Velocity+offset, 1, 127)
		}
		if len(req.TransposeValues) > 0 {
			delta := req.TransposeValues[random.Intn(len(req.TransposeValues))]
			notes[i].Pitch = clamp(notes[i].Pitch+int(math.Round(delta)), 0, 127)
		} else if transpose.set {
			delta := random.Range(transpose.min, transpose.max)
			notes[i].Pitch = clamp(notes[i].Pitch+int(math.Round(delta)), 0, 127)
		}
		if duration.set {
			notes[i].Duration *= random.Range(duration.min, duration.max)
		}
		if req.VelocityDeviation != nil {
			notes[i].VelocityDeviation = clamp(notes[i].VelocityDeviation+*req.VelocityDeviation, -127, 127)
		}
		if req.Probability != nil {
			notes[i].Probability = clamp(notes[i].Probability+*req.Probability, 0, 1)
		}
	}

	payload, err := models.EncodeNotes(notes)
	if err != nil {
		return err
	}
	if _, err := clip.Call("apply_note_modifications", payload); err != nil {
		return fmt.Errorf("%s: writing notes of clip %s: %w", op, clip.ID, err)
	}
	return nil
}

// randomizeAudio perturbs an audio clip's gain (in dB space, converted
// to and from the host's linear multiplier) and its coarse+fine pitch.
func randomizeAudio(req TransformRequest, clip live.Object, gain, transpose span, random *rng.Source) error {
	if gain.set {
		linear, err := clip.GetFloat("gain")
		if err != nil {
			return err
		}
		db := linearToDB(linear) + random.Range(gain.min, gain.max)
		if err := clip.Set("gain", dbToLinear(clamp(db, -60, 6))); err != nil {
			return err
		}
	}

	transposeRequested := transpose.set || len(req.TransposeValues) > 0
	if transposeRequested {
		var delta float64
		if len(req.TransposeValues) > 0 {
			delta = req.TransposeValues[random.Intn(len(req.TransposeValues))]
		} else {
			delta = random.Range(transpose.min, transpose.max)
		}
		coarse, err := clip.GetInt("pitch_coarse")
		if err != nil {
			return err
		}
		fine, err := clip.GetInt("pitch_fine")
		if err != nil {
			return err
		}
		semitones := math.Trunc(delta)
		cents := math.Round((delta - semitones) * 100)
		if err := clip.Set("pitch_coarse", clamp(coarse+int(semitones), -48, 48)); err != nil {
			return err
		}
		if err := clip.Set("pitch_fine", clamp(fine+int(cents), -50, 50)); err != nil {
			return err
		}
	}
	return nil
}

func linearToDB(linear float64) float64 {
	if linear <= 0 {
		return -60
	}
	return 20 * math.Log10(linear)
}

func dbToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

func asNoteJSON(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
