// Package livetest provides an in-memory fake of the host object model for
// tests. It simulates the host behaviors the control layer has to work
// around, most importantly the silent deletion of an existing arrangement
// clip when a new clip is created over the exact same [start,end) region.
package livetest

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/adamjmurray/producer-pal-sub001/live"
	"github.com/adamjmurray/producer-pal-sub001/models"
)

const sameRegionEpsilon = 1e-6

// Fake implements live.API over an explicit in-memory session graph.
// Every Call and Set is logged so tests can assert on mutation counts.
type Fake struct {
	SigNum int
	SigDen int
	Tempo  float64
	Tracks []*Track
	Scenes []*Scene
	View   string

	CallLog []string
	SetLog  []string

	nextID int
	alive  map[string]bool
}

// Track mirrors a host track: devices, one session slot per scene, and a
// set of arrangement clips kept sorted by start time.
type Track struct {
	ID            string
	Name          string
	Arm           bool
	InputRouting  models.RoutingType
	OutputRouting models.RoutingType
	Devices       []*Device
	Slots         []*ClipSlot
	ArrClips      []*Clip
}

// Scene is a row across all tracks' session slots.
type Scene struct {
	ID   string
	Name string
}

// ClipSlot is one track-by-scene cell.
type ClipSlot struct {
	ID   string
	Clip *Clip
}

// Device is a device in a track's chain.
type Device struct {
	ID   string
	Name string
}

// Clip mirrors a host clip. Length derives from loop points while looping
// and from the start/end markers otherwise.
type Clip struct {
	ID            string
	Name          string
	IsMIDI        bool
	Looping       bool
	LoopStart     float64
	LoopEnd       float64
	StartMarker   float64
	EndMarker     float64
	StartTime     float64
	InArrangement bool
	SigNum        int
	SigDen        int
	Notes         []models.Note
	Gain          float64
	PitchCoarse   int
	PitchFine     int
	FilePath      string

	nextNoteID int
}

// Length returns the clip's playing length in beats.
func (c *Clip) Length() float64 {
	if c.Looping {
		return c.LoopEnd - c.LoopStart
	}
	return c.EndMarker - c.StartMarker
}

// NewFake returns an empty 4/4 session.
func NewFake() *Fake {
	return &Fake{
		SigNum: 4,
		SigDen: 4,
		Tempo:  120,
		alive:  map[string]bool{live.SongID: true},
	}
}

func (f *Fake) newID() string {
	f.nextID++
	return strconv.Itoa(f.nextID)
}

// AddTrack appends a track with one slot per existing scene.
func (f *Fake) AddTrack(name string) *Track {
	t := &Track{
		ID:            f.newID(),
		Name:          name,
		InputRouting:  models.RoutingType{DisplayName: "All Ins", Identifier: -2},
		OutputRouting: models.RoutingType{DisplayName: "Master", Identifier: 0},
	}
	f.alive[t.ID] = true
	for range f.Scenes {
		t.Slots = append(t.Slots, f.newSlot())
	}
	f.Tracks = append(f.Tracks, t)
	return t
}

// AddScene appends a scene and a slot for it on every track.
func (f *Fake) AddScene(name string) *Scene {
	s := &Scene{ID: f.newID(), Name: name}
	f.alive[s.ID] = true
	f.Scenes = append(f.Scenes, s)
	for _, t := range f.Tracks {
		t.Slots = append(t.Slots, f.newSlot())
	}
	return s
}

func (f *Fake) newSlot() *ClipSlot {
	slot := &ClipSlot{ID: f.newID()}
	f.alive[slot.ID] = true
	return slot
}

// AddDevice appends a device to a track's chain.
func (f *Fake) AddDevice(t *Track, name string) *Device {
	d := &Device{ID: f.newID(), Name: name}
	f.alive[d.ID] = true
	t.Devices = append(t.Devices, d)
	return d
}

// AddSessionClip places a looping MIDI clip in the track's slot for the
// given scene.
func (f *Fake) AddSessionClip(t *Track, sceneIndex int, length float64) *Clip {
	c := f.newClip(length, true)
	t.Slots[sceneIndex].Clip = c
	return c
}

// AddArrangementClip places a looping MIDI clip on the track's timeline.
func (f *Fake) AddArrangementClip(t *Track, start, length float64) *Clip {
	c := f.newClip(length, true)
	c.StartTime = start
	c.InArrangement = true
	f.insertArrClip(t, c)
	return c
}

// AddAudioArrangementClip places a non-MIDI clip on the track's timeline.
func (f *Fake) AddAudioArrangementClip(t *Track, start, length float64, filePath string) *Clip {
	c := f.newClip(length, false)
	c.StartTime = start
	c.InArrangement = true
	c.FilePath = filePath
	f.insertArrClip(t, c)
	return c
}

func (f *Fake) newClip(length float64, isMIDI bool) *Clip {
	c := &Clip{
		ID:         f.newID(),
		IsMIDI:     isMIDI,
		Looping:    true,
		LoopEnd:    length,
		EndMarker:  length,
		SigNum:     f.SigNum,
		SigDen:     f.SigDen,
		Gain:       1.0,
		nextNoteID: 1,
	}
	f.alive[c.ID] = true
	return c
}

// SetClipNotes replaces a clip's notes, assigning fresh note ids.
func (f *Fake) SetClipNotes(c *Clip, notes []models.Note) {
	c.Notes = nil
	for _, n := range notes {
		n.NoteID = c.nextNoteID
		c.nextNoteID++
		c.Notes = append(c.Notes, n)
	}
}

func (f *Fake) insertArrClip(t *Track, c *Clip) {
	t.ArrClips = append(t.ArrClips, c)
	sort.SliceStable(t.ArrClips, func(i, j int) bool {
		return t.ArrClips[i].StartTime < t.ArrClips[j].StartTime
	})
}

// ---- lookups ----

func (f *Fake) findTrack(id string) (int, *Track) {
	for i, t := range f.Tracks {
		if t.ID == id {
			return i, t
		}
	}
	return -1, nil
}

func (f *Fake) findScene(id string) (int, *Scene) {
	for i, s := range f.Scenes {
		if s.ID == id {
			return i, s
		}
	}
	return -1, nil
}

func (f *Fake) findSlot(id string) (*Track, int, *ClipSlot) {
	for _, t := range f.Tracks {
		for i, slot := range t.Slots {
			if slot.ID == id {
				return t, i, slot
			}
		}
	}
	return nil, -1, nil
}

// findClip returns the owning track, slot index (-1 for arrangement) and clip.
func (f *Fake) findClip(id string) (*Track, int, *Clip) {
	for _, t := range f.Tracks {
		for i, slot := range t.Slots {
			if slot.Clip != nil && slot.Clip.ID == id {
				return t, i, slot.Clip
			}
		}
		for _, c := range t.ArrClips {
			if c.ID == id {
				return t, -1, c
			}
		}
	}
	return nil, -1, nil
}

// ---- live.API ----

// Exists implements live.API.
func (f *Fake) Exists(id string) bool {
	return f.alive[id]
}

// Path implements live.API.
func (f *Fake) Path(id string) (string, error) {
	if id == live.SongID {
		return "live_set", nil
	}
	if i, _ := f.findScene(id); i >= 0 {
		return fmt.Sprintf("live_set scenes %d", i), nil
	}
	for ti, t := range f.Tracks {
		if t.ID == id {
			return fmt.Sprintf("live_set tracks %d", ti), nil
		}
		for di, d := range t.Devices {
			if d.ID == id {
				return fmt.Sprintf("live_set tracks %d devices %d", ti, di), nil
			}
		}
		for si, slot := range t.Slots {
			if slot.ID == id {
				return fmt.Sprintf("live_set tracks %d clip_slots %d", ti, si), nil
			}
			if slot.Clip != nil && slot.Clip.ID == id {
				return fmt.Sprintf("live_set tracks %d clip_slots %d clip", ti, si), nil
			}
		}
		for ci, c := range t.ArrClips {
			if c.ID == id {
				return fmt.Sprintf("live_set tracks %d arrangement_clips %d", ti, ci), nil
			}
		}
	}
	return "", fmt.Errorf("no object with id %q", id)
}

// Children implements live.API.
func (f *Fake) Children(id, relation string) ([]string, error) {
	if id == live.SongID {
		switch relation {
		case "tracks":
			ids := make([]string, len(f.Tracks))
			for i, t := range f.Tracks {
				ids[i] = t.ID
			}
			return ids, nil
		case "scenes":
			ids := make([]string, len(f.Scenes))
			for i, s := range f.Scenes {
				ids[i] = s.ID
			}
			return ids, nil
		}
		return nil, fmt.Errorf("song has no relation %q", relation)
	}
	if _, t := f.findTrack(id); t != nil {
		switch relation {
		case "devices":
			ids := make([]string, len(t.Devices))
			for i, d := range t.Devices {
				ids[i] = d.ID
			}
			return ids, nil
		case "clip_slots":
			ids := make([]string, len(t.Slots))
			for i, s := range t.Slots {
				ids[i] = s.ID
			}
			return ids, nil
		case "arrangement_clips":
			ids := make([]string, len(t.ArrClips))
			for i, c := range t.ArrClips {
				ids[i] = c.ID
			}
			return ids, nil
		}
		return nil, fmt.Errorf("track has no relation %q", relation)
	}
	if _, _, slot := f.findSlot(id); slot != nil && relation == "clip" {
		if slot.Clip == nil {
			return nil, nil
		}
		return []string{slot.Clip.ID}, nil
	}
	return nil, fmt.Errorf("object %q has no relation %q", id, relation)
}

// Get implements live.API.
func (f *Fake) Get(id, prop string) (any, error) {
	if id == live.SongID {
		switch prop {
		case "signature_numerator":
			return float64(f.SigNum), nil
		case "signature_denominator":
			return float64(f.SigDen), nil
		case "tempo":
			return f.Tempo, nil
		}
		return nil, fmt.Errorf("song has no property %q", prop)
	}
	if idx, t := f.findTrack(id); t != nil {
		return f.getTrackProp(idx, t, prop)
	}
	if _, s := f.findScene(id); s != nil {
		if prop == "name" {
			return s.Name, nil
		}
		return nil, fmt.Errorf("scene has no property %q", prop)
	}
	if _, _, slot := f.findSlot(id); slot != nil {
		if prop == "has_clip" {
			return slot.Clip != nil, nil
		}
		return nil, fmt.Errorf("clip slot has no property %q", prop)
	}
	if _, _, c := f.findClip(id); c != nil {
		return f.getClipProp(c, prop)
	}
	for _, t := range f.Tracks {
		for _, d := range t.Devices {
			if d.ID == id && prop == "name" {
				return d.Name, nil
			}
		}
	}
	return nil, fmt.Errorf("no object with id %q", id)
}

func (f *Fake) getTrackProp(idx int, t *Track, prop string) (any, error) {
	switch prop {
	case "name":
		return t.Name, nil
	case "arm":
		return t.Arm, nil
	case "input_routing_type":
		return encodeRouting(t.InputRouting), nil
	case "output_routing_type":
		return encodeRouting(t.OutputRouting), nil
	case "available_input_routing_types":
		types := []models.RoutingType{
			{DisplayName: "All Ins", Identifier: -2},
			{DisplayName: "No Input", Identifier: -1},
		}
		for i, other := range f.Tracks {
			if i == idx {
				continue
			}
			types = append(types, models.RoutingType{DisplayName: other.Name, Identifier: live.NumericID(other.ID)})
		}
		return encodeRoutings(types), nil
	case "available_output_routing_types":
		types := []models.RoutingType{{DisplayName: "Master", Identifier: 0}}
		for i, other := range f.Tracks {
			if i == idx {
				continue
			}
			types = append(types, models.RoutingType{DisplayName: other.Name, Identifier: live.NumericID(other.ID)})
		}
		return encodeRoutings(types), nil
	}
	return nil, fmt.Errorf("track has no property %q", prop)
}

func (f *Fake) getClipProp(c *Clip, prop string) (any, error) {
	switch prop {
	case "name":
		return c.Name, nil
	case "is_midi_clip":
		return c.IsMIDI, nil
	case "is_audio_clip":
		return !c.IsMIDI, nil
	case "is_arrangement_clip":
		return c.InArrangement, nil
	case "looping":
		return c.Looping, nil
	case "loop_start":
		return c.LoopStart, nil
	case "loop_end":
		return c.LoopEnd, nil
	case "start_marker":
		return c.StartMarker, nil
	case "end_marker":
		return c.EndMarker, nil
	case "start_time":
		return c.StartTime, nil
	case "length":
		return c.Length(), nil
	case "signature_numerator":
		return float64(c.SigNum), nil
	case "signature_denominator":
		return float64(c.SigDen), nil
	case "gain":
		return c.Gain, nil
	case "pitch_coarse":
		return float64(c.PitchCoarse), nil
	case "pitch_fine":
		return float64(c.PitchFine), nil
	case "file_path":
		return c.FilePath, nil
	}
	return nil, fmt.Errorf("clip has no property %q", prop)
}

// Set implements live.API.
func (f *Fake) Set(id, prop string, value any) error {
	f.SetLog = append(f.SetLog, id+" "+prop)
	if _, t := f.findTrack(id); t != nil {
		switch prop {
		case "name":
			t.Name = asString(value)
			return nil
		case "arm":
			t.Arm = asBool(value)
			return nil
		case "input_routing_type":
			rt, err := models.ParseRoutingTypes("[" + asString(value) + "]")
			if err != nil || len(rt) != 1 {
				return fmt.Errorf("bad routing value %v", value)
			}
			t.InputRouting = rt[0]
			return nil
		case "output_routing_type":
			rt, err := models.ParseRoutingTypes("[" + asString(value) + "]")
			if err != nil || len(rt) != 1 {
				return fmt.Errorf("bad routing value %v", value)
			}
			t.OutputRouting = rt[0]
			return nil
		}
		return fmt.Errorf("track property %q is not settable", prop)
	}
	if _, s := f.findScene(id); s != nil && prop == "name" {
		s.Name = asString(value)
		return nil
	}
	if _, _, c := f.findClip(id); c != nil {
		switch prop {
		case "name":
			c.Name = asString(value)
		case "looping":
			c.Looping = asBool(value)
		case "loop_start":
			c.LoopStart = asFloat(value)
		case "loop_end":
			c.LoopEnd = asFloat(value)
		case "start_marker":
			c.StartMarker = asFloat(value)
		case "end_marker":
			c.EndMarker = asFloat(value)
		case "gain":
			c.Gain = asFloat(value)
		case "pitch_coarse":
			c.PitchCoarse = int(asFloat(value))
		case "pitch_fine":
			c.PitchFine = int(asFloat(value))
		default:
			return fmt.Errorf("clip property %q is not settable", prop)
		}
		return nil
	}
	return fmt.Errorf("no settable object with id %q", id)
}

// Call implements live.API.
func (f *Fake) Call(id, verb string, args ...any) (any, error) {
	f.CallLog = append(f.CallLog, id+" "+verb)
	if id == live.SongID {
		return f.callSong(verb, args)
	}
	if _, t := f.findTrack(id); t != nil {
		return f.callTrack(t, verb, args)
	}
	if track, i, slot := f.findSlot(id); slot != nil {
		return f.callSlot(track, i, slot, verb, args)
	}
	if _, _, c := f.findClip(id); c != nil {
		return f.callClip(c, verb, args)
	}
	return nil, fmt.Errorf("no callable object with id %q", id)
}

// CallsTo counts logged calls of one verb.
func (f *Fake) CallsTo(verb string) int {
	n := 0
	for _, entry := range f.CallLog {
		if strings.HasSuffix(entry, " "+verb) {
			n++
		}
	}
	return n
}

// MutationCount is the total number of mutating Call and Set invocations.
// Read-only verbs are logged but do not count as mutations.
func (f *Fake) MutationCount() int {
	n := len(f.SetLog)
	for _, entry := range f.CallLog {
		if !strings.HasSuffix(entry, " get_notes_extended") {
			n++
		}
	}
	return n
}

func (f *Fake) callSong(verb string, args []any) (any, error) {
	switch verb {
	case "duplicate_track":
		idx := int(asFloat(args[0]))
		if idx < 0 || idx >= len(f.Tracks) {
			return nil, fmt.Errorf("duplicate_track: index %d out of range", idx)
		}
		copyTrack := f.deepCopyTrack(f.Tracks[idx])
		f.Tracks = append(f.Tracks[:idx+1], append([]*Track{copyTrack}, f.Tracks[idx+1:]...)...)
		return nil, nil
	case "duplicate_scene":
		idx := int(asFloat(args[0]))
		if idx < 0 || idx >= len(f.Scenes) {
			return nil, fmt.Errorf("duplicate_scene: index %d out of range", idx)
		}
		s := &Scene{ID: f.newID(), Name: f.Scenes[idx].Name}
		f.alive[s.ID] = true
		f.Scenes = append(f.Scenes[:idx+1], append([]*Scene{s}, f.Scenes[idx+1:]...)...)
		for _, t := range f.Tracks {
			slot := f.newSlot()
			if src := t.Slots[idx].Clip; src != nil {
				slot.Clip = f.deepCopyClip(src)
			}
			t.Slots = append(t.Slots[:idx+1], append([]*ClipSlot{slot}, t.Slots[idx+1:]...)...)
		}
		return nil, nil
	case "delete_track":
		idx := int(asFloat(args[0]))
		if idx < 0 || idx >= len(f.Tracks) {
			return nil, fmt.Errorf("delete_track: index %d out of range", idx)
		}
		f.killTrack(f.Tracks[idx])
		f.Tracks = append(f.Tracks[:idx], f.Tracks[idx+1:]...)
		return nil, nil
	case "delete_scene":
		idx := int(asFloat(args[0]))
		if idx < 0 || idx >= len(f.Scenes) {
			return nil, fmt.Errorf("delete_scene: index %d out of range", idx)
		}
		delete(f.alive, f.Scenes[idx].ID)
		f.Scenes = append(f.Scenes[:idx], f.Scenes[idx+1:]...)
		for _, t := range f.Tracks {
			slot := t.Slots[idx]
			if slot.Clip != nil {
				delete(f.alive, slot.Clip.ID)
			}
			delete(f.alive, slot.ID)
			t.Slots = append(t.Slots[:idx], t.Slots[idx+1:]...)
		}
		return nil, nil
	case "show_view":
		f.View = asString(args[0])
		return nil, nil
	}
	return nil, fmt.Errorf("song has no verb %q", verb)
}

func (f *Fake) callTrack(t *Track, verb string, args []any) (any, error) {
	switch verb {
	case "duplicate_clip_to_arrangement":
		clipID := asString(args[0])
		start := asFloat(args[1])
		_, _, src := f.findClip(clipID)
		if src == nil {
			return nil, fmt.Errorf("duplicate_clip_to_arrangement: no clip %q", clipID)
		}
		c := f.deepCopyClip(src)
		c.StartTime = start
		c.InArrangement = true
		// The host hazard: a new clip over the exact same region silently
		// replaces the existing one.
		for i, existing := range t.ArrClips {
			if math.Abs(existing.StartTime-start) < sameRegionEpsilon &&
				math.Abs(existing.Length()-c.Length()) < sameRegionEpsilon {
				delete(f.alive, existing.ID)
				t.ArrClips = append(t.ArrClips[:i], t.ArrClips[i+1:]...)
				break
			}
		}
		f.insertArrClip(t, c)
		return "id " + c.ID, nil
	case "delete_clip":
		clipID := asString(args[0])
		for i, c := range t.ArrClips {
			if c.ID == clipID {
				delete(f.alive, c.ID)
				t.ArrClips = append(t.ArrClips[:i], t.ArrClips[i+1:]...)
				return nil, nil
			}
		}
		for _, slot := range t.Slots {
			if slot.Clip != nil && slot.Clip.ID == clipID {
				delete(f.alive, slot.Clip.ID)
				slot.Clip = nil
				return nil, nil
			}
		}
		return nil, fmt.Errorf("delete_clip: no clip %q on track", clipID)
	case "delete_device":
		idx := int(asFloat(args[0]))
		if idx < 0 || idx >= len(t.Devices) {
			return nil, fmt.Errorf("delete_device: index %d out of range", idx)
		}
		delete(f.alive, t.Devices[idx].ID)
		t.Devices = append(t.Devices[:idx], t.Devices[idx+1:]...)
		return nil, nil
	}
	return nil, fmt.Errorf("track has no verb %q", verb)
}

func (f *Fake) callSlot(track *Track, index int, slot *ClipSlot, verb string, args []any) (any, error) {
	_ = track
	_ = index
	switch verb {
	case "duplicate_clip_to":
		if slot.Clip == nil {
			return nil, fmt.Errorf("duplicate_clip_to: source slot is empty")
		}
		targetID := asString(args[0])
		_, _, target := f.findSlot(targetID)
		if target == nil {
			return nil, fmt.Errorf("duplicate_clip_to: no slot %q", targetID)
		}
		if target.Clip != nil {
			delete(f.alive, target.Clip.ID)
		}
		target.Clip = f.deepCopyClip(slot.Clip)
		return "id " + target.Clip.ID, nil
	case "delete_clip":
		if slot.Clip != nil {
			delete(f.alive, slot.Clip.ID)
			slot.Clip = nil
		}
		return nil, nil
	case "create_clip":
		if slot.Clip != nil {
			return nil, fmt.Errorf("create_clip: slot already has a clip")
		}
		slot.Clip = f.newClip(asFloat(args[0]), true)
		return "id " + slot.Clip.ID, nil
	}
	return nil, fmt.Errorf("clip slot has no verb %q", verb)
}

func (f *Fake) callClip(c *Clip, verb string, args []any) (any, error) {
	switch verb {
	case "get_notes_extended":
		fromPitch := int(asFloat(args[0]))
		pitchSpan := int(asFloat(args[1]))
		fromTime := asFloat(args[2])
		timeSpan := asFloat(args[3])
		var notes []models.Note
		for _, n := range c.Notes {
			if n.Pitch >= fromPitch && n.Pitch < fromPitch+pitchSpan &&
				n.StartTime >= fromTime && n.StartTime < fromTime+timeSpan {
				notes = append(notes, n)
			}
		}
		return mustEncodeNotes(notes), nil
	case "apply_note_modifications":
		notes, err := models.ParseNotes(asString(args[0]))
		if err != nil {
			return nil, fmt.Errorf("apply_note_modifications: %w", err)
		}
		for _, mod := range notes {
			for i := range c.Notes {
				if c.Notes[i].NoteID == mod.NoteID {
					c.Notes[i] = mod
					break
				}
			}
		}
		return nil, nil
	case "add_new_notes":
		notes, err := models.ParseNotes(asString(args[0]))
		if err != nil {
			return nil, fmt.Errorf("add_new_notes: %w", err)
		}
		for _, n := range notes {
			n.NoteID = c.nextNoteID
			c.nextNoteID++
			c.Notes = append(c.Notes, n)
		}
		return nil, nil
	}
	return nil, fmt.Errorf("clip has no verb %q", verb)
}

func (f *Fake) deepCopyTrack(src *Track) *Track {
	t := &Track{
		ID:            f.newID(),
		Name:          src.Name,
		InputRouting:  src.InputRouting,
		OutputRouting: src.OutputRouting,
	}
	f.alive[t.ID] = true
	for _, d := range src.Devices {
		f.AddDevice(t, d.Name)
	}
	for _, slot := range src.Slots {
		copySlot := f.newSlot()
		if slot.Clip != nil {
			copySlot.Clip = f.deepCopyClip(slot.Clip)
		}
		t.Slots = append(t.Slots, copySlot)
	}
	for _, c := range src.ArrClips {
		t.ArrClips = append(t.ArrClips, f.deepCopyClip(c))
	}
	return t
}

func (f *Fake) deepCopyClip(src *Clip) *Clip {
	c := &Clip{
		ID:            f.newID(),
		Name:          src.Name,
		IsMIDI:        src.IsMIDI,
		Looping:       src.Looping,
		LoopStart:     src.LoopStart,
		LoopEnd:       src.LoopEnd,
		StartMarker:   src.StartMarker,
		EndMarker:     src.EndMarker,
		StartTime:     src.StartTime,
		InArrangement: src.InArrangement,
		SigNum:        src.SigNum,
		SigDen:        src.SigDen,
		Gain:          src.Gain,
		PitchCoarse:   src.PitchCoarse,
		PitchFine:     src.PitchFine,
		FilePath:      src.FilePath,
		nextNoteID:    src.nextNoteID,
	}
	c.Notes = append(c.Notes, src.Notes...)
	f.alive[c.ID] = true
	return c
}

func (f *Fake) killTrack(t *Track) {
	delete(f.alive, t.ID)
	for _, d := range t.Devices {
		delete(f.alive, d.ID)
	}
	for _, slot := range t.Slots {
		if slot.Clip != nil {
			delete(f.alive, slot.Clip.ID)
		}
		delete(f.alive, slot.ID)
	}
	for _, c := range t.ArrClips {
		delete(f.alive, c.ID)
	}
}

func encodeRouting(rt models.RoutingType) string {
	data, err := json.Marshal(rt)
	if err != nil {
		panic(err)
	}
	return string(data)
}

func encodeRoutings(types []models.RoutingType) string {
	data, err := json.Marshal(types)
	if err != nil {
		panic(err)
	}
	return string(data)
}

func mustEncodeNotes(notes []models.Note) string {
	data, err := models.EncodeNotes(notes)
	if err != nil {
		panic(err)
	}
	return data
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	switch n := v.(type) {
	case bool:
		return n
	case float64:
		return n != 0
	case int:
		return n != 0
	}
	return false
}
