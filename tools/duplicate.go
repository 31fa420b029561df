package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/adamjmurray/producer-pal-sub001/arrangement"
	"github.com/adamjmurray/producer-pal-sub001/live"
	"github.com/adamjmurray/producer-pal-sub001/models"
	"github.com/adamjmurray/producer-pal-sub001/notation"
	"github.com/adamjmurray/producer-pal-sub001/operr"
)

// DuplicateRequest carries the arguments of the duplicate tool.
type DuplicateRequest struct {
	ID                   string `json:"id"`
	Type                 string `json:"type"`
	Count                int    `json:"count,omitempty"`
	Name                 string `json:"name,omitempty"`
	Destination          string `json:"destination,omitempty"`
	ToTrackIndex         *int   `json:"toTrackIndex,omitempty"`
	ToSceneIndex         *int   `json:"toSceneIndex,omitempty"`
	ArrangementStartTime string `json:"arrangementStartTime,omitempty"`
	ArrangementLength    string `json:"arrangementLength,omitempty"`
	WithoutClips         *bool  `json:"withoutClips,omitempty"`
	WithoutDevices       *bool  `json:"withoutDevices,omitempty"`
	RouteToSource        bool   `json:"routeToSource,omitempty"`
	SwitchView           bool   `json:"switchView,omitempty"`
}

// DuplicatedObject describes one object created by a duplicate call.
type DuplicatedObject struct {
	ID                   string   `json:"id"`
	Type                 string   `json:"type"`
	Name                 string   `json:"name,omitempty"`
	TrackIndex           *int     `json:"trackIndex,omitempty"`
	SceneIndex           *int     `json:"sceneIndex,omitempty"`
	ArrangementStartTime string   `json:"arrangementStartTime,omitempty"`
	ClipIDs              []string `json:"clipIds,omitempty"`
}

// DuplicateResponse is the duplicate tool's result. A single-count call
// serializes its one object directly rather than as a one-element list.
type DuplicateResponse struct {
	Objects  []DuplicatedObject
	Warnings []string
}

func (r *DuplicateResponse) MarshalJSON() ([]byte, error) {
	payload := struct {
		Duplicated any      `json:"duplicated"`
		Warnings   []string `json:"warnings,omitempty"`
	}{Warnings: r.Warnings}
	if len(r.Objects) == 1 {
		payload.Duplicated = r.Objects[0]
	} else {
		payload.Duplicated = r.Objects
	}
	return json.Marshal(payload)
}

// Duplicate copies a track, scene or clip within the session view or onto
// the arrangement timeline.
func (e *Engine) Duplicate(ctx context.Context, req DuplicateRequest) (*DuplicateResponse, error) {
	const op = "duplicate"
	started := time.Now()
	calls, sets := e.host.calls, e.host.sets
	log.Printf("🔁 duplicate: type=%s id=%s count=%d destination=%s", req.Type, req.ID, req.Count, req.Destination)

	warns := newWarnings()
	objects, err := e.runDuplicate(op, req, warns)

	e.metrics.RecordToolDuration(ctx, op, time.Since(started), err == nil)
	e.recordHostTraffic(ctx, op, calls, sets)
	e.metrics.RecordWarnings(ctx, op, len(warns.list()))
	if err != nil {
		log.Printf("❌ duplicate failed: %v", err)
		captureInternal(err)
		return nil, err
	}
	log.Printf("✅ duplicate: created %d object(s)", len(objects))
	return &DuplicateResponse{Objects: objects, Warnings: warns.list()}, nil
}

func (e *Engine) runDuplicate(op string, req DuplicateRequest, warns *warnings) ([]DuplicatedObject, error) {
	if req.Count == 0 {
		req.Count = 1
	}
	if req.Count < 1 {
		return nil, &operr.ValidationError{Op: op, Msg: fmt.Sprintf("count must be at least 1, got %d", req.Count)}
	}

	var want live.Kind
	switch req.Type {
	case "track":
		want = live.KindTrack
	case "scene":
		want = live.KindScene
	case "clip":
		want = live.KindClip
	default:
		return nil, &operr.ValidationError{Op: op, Msg: fmt.Sprintf("type must be track, scene or clip, got %q", req.Type)}
	}

	if req.RouteToSource {
		if req.Type != "track" {
			return nil, &operr.ValidationError{Op: op, Msg: "routeToSource applies to type track only"}
		}
		// Warn only when the caller explicitly asked for false; an omitted
		// flag is silently upgraded.
		if (req.WithoutClips != nil && !*req.WithoutClips) ||
			(req.WithoutDevices != nil && !*req.WithoutDevices) {
			warns.addOnce("route-to-source-overrides",
				"duplicate: routeToSource needs a clean destination track; withoutClips and withoutDevices were overridden to true")
		}
		yes := true
		req.WithoutClips, req.WithoutDevices = &yes, &yes
	}

	source, err := resolveOne(op, e.api, req.ID, want)
	if err != nil {
		return nil, err
	}

	var objects []DuplicatedObject
	switch req.Type {
	case "track":
		switch req.Destination {
		case "", "session":
			objects, err = e.duplicateTrack(op, source, req, warns)
		case "arrangement":
			return nil, &operr.ValidationError{Op: op, Msg: "tracks cannot be duplicated to the arrangement"}
		default:
			return nil, &operr.ValidationError{Op: op, Msg: fmt.Sprintf("destination must be session or arrangement, got %q", req.Destination)}
		}
	case "scene":
		switch req.Destination {
		case "", "session":
			objects, err = e.duplicateScene(op, source, req)
		case "arrangement":
			objects, err = e.duplicateSceneToArrangement(op, source, req, warns)
		default:
			return nil, &operr.ValidationError{Op: op, Msg: fmt.Sprintf("destination must be session or arrangement, got %q", req.Destination)}
		}
	case "clip":
		switch req.Destination {
		case "session":
			objects, err = e.duplicateClipToSession(op, source, req)
		case "arrangement":
			objects, err = e.duplicateClipToArrangement(op, source, req, warns)
		default:
			return nil, &operr.ValidationError{Op: op, Msg: fmt.Sprintf("type clip requires destination session or arrangement, got %q", req.Destination)}
		}
	}
	if err != nil {
		return nil, err
	}

	if req.SwitchView {
		view := "Session"
		if req.Destination == "arrangement" {
			view = "Arranger"
		}
		if _, verr := e.song().Call("show_view", view); verr != nil {
			warns.add(fmt.Sprintf("duplicate: could not switch to %s view: %v", view, verr))
		}
	}
	return objects, nil
}

// duplicateTrack duplicates via the host's duplicate-track verb, once per
// requested copy. The source index is re-derived every iteration because
// each duplicate shifts all following tracks one slot to the right.
func (e *Engine) duplicateTrack(op string, source live.Object, req DuplicateRequest, warns *warnings) ([]DuplicatedObject, error) {
	song := e.song()
	var objects []DuplicatedObject
	for i := 0; i < req.Count; i++ {
		baseIdx, err := indexOfPath(source, "tracks")
		if err != nil {
			return objects, err
		}
		dupIdx := baseIdx + i
		if _, err := song.Call("duplicate_track", dupIdx); err != nil {
			return objects, fmt.Errorf("%s: duplicating track %d: %w", op, dupIdx, err)
		}
		tracks, err := song.Children("tracks")
		if err != nil {
			return objects, err
		}
		newIdx := dupIdx + 1
		if newIdx >= len(tracks) {
			return objects, fmt.Errorf("%s: host did not insert a track after index %d", op, dupIdx)
		}
		newTrack := tracks[newIdx]

		if enabled(req.WithoutDevices) {
			if err := deleteAllDevices(newTrack); err != nil {
				return objects, err
			}
		} else if err := stripRuntimeDevice(op, newTrack, warns); err != nil {
			return objects, err
		}
		if enabled(req.WithoutClips) {
			if err := deleteAllClips(newTrack); err != nil {
				return objects, err
			}
		}
		if req.Name != "" {
			if err := newTrack.Set("name", incrementName(req.Name, i)); err != nil {
				return objects, err
			}
		}
		if req.RouteToSource {
			if err := e.routeToSource(op, source, newTrack, warns); err != nil {
				return objects, err
			}
		}

		name, _ := newTrack.GetString("name")
		idx := newIdx
		objects = append(objects, DuplicatedObject{
			ID:         newTrack.ID,
			Type:       "track",
			Name:       name,
			TrackIndex: &idx,
		})
	}
	return objects, nil
}

// stripRuntimeDevice removes this control system's own device from a track
// copy so duplicating its host track cannot spawn a second control surface.
func stripRuntimeDevice(op string, track live.Object, warns *warnings) error {
	devices, err := track.Children("devices")
	if err != nil {
		return err
	}
	for i := len(devices) - 1; i >= 0; i-- {
		name, err := devices[i].GetString("name")
		if err != nil {
			continue
		}
		if name != RuntimeDeviceName {
			continue
		}
		if _, err := track.Call("delete_device", i); err != nil {
			return fmt.Errorf("%s: removing %s device from copy: %w", op, RuntimeDeviceName, err)
		}
		warns.addOnce("runtime-device-stripped",
			fmt.Sprintf("duplicate: the %s device was not carried into the duplicated track", RuntimeDeviceName))
	}
	return nil
}

func deleteAllDevices(track live.Object) error {
	devices, err := track.Children("devices")
	if err != nil {
		return err
	}
	for i := len(devices) - 1; i >= 0; i-- {
		if _, err := track.Call("delete_device", i); err != nil {
			return err
		}
	}
	return nil
}

func deleteAllClips(track live.Object) error {
	slots, err := track.Children("clip_slots")
	if err != nil {
		return err
	}
	for _, slot := range slots {
		has, err := slot.GetBool("has_clip")
		if err != nil {
			return err
		}
		if !has {
			continue
		}
		if _, err := slot.Call("delete_clip"); err != nil {
			return err
		}
	}
	arrClips, err := track.Children("arrangement_clips")
	if err != nil {
		return err
	}
	for _, clip := range arrClips {
		if _, err := track.Call("delete_clip", clip.ID); err != nil {
			return err
		}
	}
	return nil
}

// routeToSource points the new track's output at the source track, silences
// the source's input and arms the new track, turning the pair into a
// record-through setup. Every routing write is skipped when the value is
// already correct, and every actual change is surfaced as a warning.
func (e *Engine) routeToSource(op string, source, newTrack live.Object, warns *warnings) error {
	srcName, err := source.GetString("name")
	if err != nil {
		return err
	}

	availRaw, err := newTrack.GetString("available_output_routing_types")
	if err != nil {
		return err
	}
	avail, err := models.ParseRoutingTypes(availRaw)
	if err != nil {
		return fmt.Errorf("%s: parsing output routing options: %w", op, err)
	}
	var candidates []models.RoutingType
	for _, rt := range avail {
		if rt.DisplayName == srcName {
			candidates = append(candidates, rt)
		}
	}
	if len(candidates) == 0 {
		warns.addOnce("route-no-output",
			fmt.Sprintf("duplicate: no output routing option named %q exists; output routing left unchanged", srcName))
	} else {
		target := candidates[0]
		if len(candidates) > 1 {
			// Several tracks share the source's name. Routing options for
			// same-named tracks appear in creation order, so the source's
			// position among its namesakes picks the right entry.
			pos, err := e.routingPosition(source, newTrack, srcName)
			if err != nil {
				return err
			}
			if pos >= 0 && pos < len(candidates) {
				target = candidates[pos]
			}
		}
		currentRaw, err := newTrack.GetString("output_routing_type")
		if err != nil {
			return err
		}
		current, err := models.ParseRoutingType(currentRaw)
		if err != nil {
			return fmt.Errorf("%s: parsing current output routing: %w", op, err)
		}
		if current.Identifier != target.Identifier {
			encoded, err := models.EncodeRoutingType(target)
			if err != nil {
				return err
			}
			if err := newTrack.Set("output_routing_type", encoded); err != nil {
				return err
			}
			warns.add(fmt.Sprintf("duplicate: routed the new track's output to %q", target.DisplayName))
		}
	}

	inAvailRaw, err := source.GetString("available_input_routing_types")
	if err != nil {
		return err
	}
	inAvail, err := models.ParseRoutingTypes(inAvailRaw)
	if err != nil {
		return fmt.Errorf("%s: parsing input routing options: %w", op, err)
	}
	for _, rt := range inAvail {
		if rt.DisplayName != "No Input" {
			continue
		}
		currentRaw, err := source.GetString("input_routing_type")
		if err != nil {
			return err
		}
		current, err := models.ParseRoutingType(currentRaw)
		if err != nil {
			return fmt.Errorf("%s: parsing current input routing: %w", op, err)
		}
		if current.Identifier != rt.Identifier {
			encoded, err := models.EncodeRoutingType(rt)
			if err != nil {
				return err
			}
			if err := source.Set("input_routing_type", encoded); err != nil {
				return err
			}
			warns.add(`duplicate: set the source track's input to "No Input"`)
		}
		break
	}

	armed, err := newTrack.GetBool("arm")
	if err == nil && !armed {
		if err := newTrack.Set("arm", true); err != nil {
			return err
		}
		warns.add("duplicate: armed the new track for recording")
	}
	return nil
}

// routingPosition returns the source track's position among all tracks that
// share its name, in creation order, excluding the track being configured.
func (e *Engine) routingPosition(source, exclude live.Object, name string) (int, error) {
	tracks, err := e.song().Children("tracks")
	if err != nil {
		return -1, err
	}
	var ids []string
	for _, t := range tracks {
		if t.ID == exclude.ID {
			continue
		}
		n, err := t.GetString("name")
		if err != nil || n != name {
			continue
		}
		ids = append(ids, t.ID)
	}
	sort.Slice(ids, func(i, j int) bool {
		return live.NumericID(ids[i]) < live.NumericID(ids[j])
	})
	for i, id := range ids {
		if id == source.ID {
			return i, nil
		}
	}
	return -1, nil
}

func (e *Engine) duplicateScene(op string, source live.Object, req DuplicateRequest) ([]DuplicatedObject, error) {
	song := e.song()
	var objects []DuplicatedObject
	for i := 0; i < req.Count; i++ {
		baseIdx, err := indexOfPath(source, "scenes")
		if err != nil {
			return objects, err
		}
		dupIdx := baseIdx + i
		if _, err := song.Call("duplicate_scene", dupIdx); err != nil {
			return objects, fmt.Errorf("%s: duplicating scene %d: %w", op, dupIdx, err)
		}
		scenes, err := song.Children("scenes")
		if err != nil {
			return objects, err
		}
		newIdx := dupIdx + 1
		if newIdx >= len(scenes) {
			return objects, fmt.Errorf("%s: host did not insert a scene after index %d", op, dupIdx)
		}
		newScene := scenes[newIdx]

		tracks, err := song.Children("tracks")
		if err != nil {
			return objects, err
		}
		var clipIDs []string
		for _, track := range tracks {
			slots, err := track.Children("clip_slots")
			if err != nil {
				return objects, err
			}
			if newIdx >= len(slots) {
				continue
			}
			slot := slots[newIdx]
			has, err := slot.GetBool("has_clip")
			if err != nil || !has {
				continue
			}
			if enabled(req.WithoutClips) {
				if _, err := slot.Call("delete_clip"); err != nil {
					return objects, err
				}
				continue
			}
			clips, err := slot.Children("clip")
			if err != nil {
				return objects, err
			}
			for _, c := range clips {
				clipIDs = append(clipIDs, c.ID)
			}
		}

		if req.Name != "" {
			if err := newScene.Set("name", incrementName(req.Name, i)); err != nil {
				return objects, err
			}
		}
		name, _ := newScene.GetString("name")
		idx := newIdx
		objects = append(objects, DuplicatedObject{
			ID:         newScene.ID,
			Type:       "scene",
			Name:       name,
			SceneIndex: &idx,
			ClipIDs:    clipIDs,
		})
	}
	return objects, nil
}

func (e *Engine) duplicateClipToSession(op string, source live.Object, req DuplicateRequest) ([]DuplicatedObject, error) {
	if source.IsArrangementClip() {
		return nil, &operr.UnsupportedOperationError{Op: op, Msg: "arrangement clips cannot be duplicated into session slots"}
	}
	if req.ToTrackIndex == nil || req.ToSceneIndex == nil {
		return nil, &operr.ValidationError{Op: op, Msg: "destination session requires toTrackIndex and toSceneIndex"}
	}

	song := e.song()
	tracks, err := song.Children("tracks")
	if err != nil {
		return nil, err
	}
	tIdx := *req.ToTrackIndex
	if tIdx < 0 || tIdx >= len(tracks) {
		return nil, &operr.ValidationError{Op: op, Msg: fmt.Sprintf("toTrackIndex %d out of range (0-%d)", tIdx, len(tracks)-1)}
	}
	destTrack := tracks[tIdx]
	slots, err := destTrack.Children("clip_slots")
	if err != nil {
		return nil, err
	}
	firstScene := *req.ToSceneIndex
	if firstScene < 0 || firstScene+req.Count > len(slots) {
		return nil, &operr.ValidationError{Op: op,
			Msg: fmt.Sprintf("toSceneIndex %d with count %d exceeds the %d available scenes", firstScene, req.Count, len(slots))}
	}

	srcPath, err := source.Path()
	if err != nil {
		return nil, err
	}
	srcTrack, _, err := e.trackOfClip(source)
	if err != nil {
		return nil, err
	}
	srcSlotIdx := live.IndexInPath(srcPath, "clip_slots")
	srcSlots, err := srcTrack.Children("clip_slots")
	if err != nil {
		return nil, err
	}
	if srcSlotIdx < 0 || srcSlotIdx >= len(srcSlots) {
		return nil, fmt.Errorf("%s: clip %s has no resolvable source slot", op, source.ID)
	}
	srcSlot := srcSlots[srcSlotIdx]

	var objects []DuplicatedObject
	for i := 0; i < req.Count; i++ {
		sIdx := firstScene + i
		destSlot := slots[sIdx]
		if _, err := srcSlot.Call("duplicate_clip_to", destSlot.ID); err != nil {
			return objects, fmt.Errorf("%s: copying clip into slot %d: %w", op, sIdx, err)
		}
		clips, err := destSlot.Children("clip")
		if err != nil || len(clips) == 0 {
			return objects, fmt.Errorf("%s: destination slot %d has no clip after copy", op, sIdx)
		}
		newClip := clips[0]
		if req.Name != "" {
			if err := newClip.Set("name", incrementName(req.Name, i)); err != nil {
				return objects, err
			}
		}
		name, _ := newClip.GetString("name")
		trackIdx, sceneIdx := tIdx, sIdx
		objects = append(objects, DuplicatedObject{
			ID:         newClip.ID,
			Type:       "clip",
			Name:       name,
			TrackIndex: &trackIdx,
			SceneIndex: &sceneIdx,
		})
	}
	return objects, nil
}

func (e *Engine) duplicateClipToArrangement(op string, source live.Object, req DuplicateRequest, warns *warnings) ([]DuplicatedObject, error) {
	if req.ArrangementStartTime == "" {
		return nil, &operr.ValidationError{Op: op, Msg: "destination arrangement requires arrangementStartTime"}
	}
	songNum, songDen, err := e.songSignature()
	if err != nil {
		return nil, err
	}
	startBeats, err := notation.PositionToBeats(op, req.ArrangementStartTime, songNum, songDen)
	if err != nil {
		return nil, err
	}

	srcTrack, trackIdx, err := e.trackOfClip(source)
	if err != nil {
		return nil, err
	}
	srcLength, err := source.GetFloat("length")
	if err != nil {
		return nil, err
	}

	targetLength := 0.0
	if req.ArrangementLength != "" {
		clipNum, clipDen, err := clipSignature(source)
		if err != nil {
			return nil, err
		}
		targetLength, err = notation.DurationToBeats(op, req.ArrangementLength, clipNum, clipDen)
		if err != nil {
			return nil, err
		}
		if targetLength <= 0 {
			return nil, &operr.RangeError{Op: op, Field: "arrangementLength", Value: targetLength, Msg: "must be a positive duration"}
		}
	}

	// Consecutive copies tile end to end: the stride is the length each
	// copy actually occupies on the timeline.
	stride := srcLength
	if targetLength > 0 {
		stride = targetLength
	}

	var objects []DuplicatedObject
	for i := 0; i < req.Count; i++ {
		pos := startBeats + float64(i)*stride
		var placed []live.Object
		if targetLength > 0 {
			clips, ws, err := arrangement.CreateAtLength(op, srcTrack, source, pos, targetLength, e.opts)
			warns.extend(ws)
			if err != nil {
				return objects, err
			}
			placed = clips
		} else {
			result, err := srcTrack.Call("duplicate_clip_to_arrangement", source.ID, pos)
			if err != nil {
				return objects, fmt.Errorf("%s: placing clip at beat %.3f: %w", op, pos, err)
			}
			id, ok := live.CallResultID(result)
			if !ok {
				return objects, fmt.Errorf("%s: host returned no clip id for the arrangement copy", op)
			}
			placed = []live.Object{{API: e.api, ID: id}}
		}

		if req.Name != "" {
			if err := placed[0].Set("name", incrementName(req.Name, i)); err != nil {
				return objects, err
			}
		}
		name, _ := placed[0].GetString("name")
		var clipIDs []string
		for _, c := range placed {
			clipIDs = append(clipIDs, c.ID)
		}
		idx := trackIdx
		objects = append(objects, DuplicatedObject{
			ID:                   placed[0].ID,
			Type:                 "clip",
			Name:                 name,
			TrackIndex:           &idx,
			ArrangementStartTime: notation.BeatsToPosition(pos, songNum, songDen),
			ClipIDs:              clipIDs,
		})
	}
	return objects, nil
}

func (e *Engine) duplicateSceneToArrangement(op string, source live.Object, req DuplicateRequest, warns *warnings) ([]DuplicatedObject, error) {
	if req.ArrangementStartTime == "" {
		return nil, &operr.ValidationError{Op: op, Msg: "destination arrangement requires arrangementStartTime"}
	}
	songNum, songDen, err := e.songSignature()
	if err != nil {
		return nil, err
	}
	startBeats, err := notation.PositionToBeats(op, req.ArrangementStartTime, songNum, songDen)
	if err != nil {
		return nil, err
	}
	sceneIdx, err := indexOfPath(source, "scenes")
	if err != nil {
		return nil, err
	}

	type rowClip struct {
		track live.Object
		clip  live.Object
	}
	tracks, err := e.song().Children("tracks")
	if err != nil {
		return nil, err
	}
	var row []rowClip
	sceneLength := 0.0
	for _, track := range tracks {
		slots, err := track.Children("clip_slots")
		if err != nil {
			return nil, err
		}
		if sceneIdx >= len(slots) {
			continue
		}
		has, err := slots[sceneIdx].GetBool("has_clip")
		if err != nil || !has {
			continue
		}
		clips, err := slots[sceneIdx].Children("clip")
		if err != nil || len(clips) == 0 {
			continue
		}
		clip := clips[0]
		length, err := clip.GetFloat("length")
		if err != nil {
			return nil, err
		}
		if length > sceneLength {
			sceneLength = length
		}
		row = append(row, rowClip{track: track, clip: clip})
	}
	if len(row) == 0 {
		warns.add("duplicate: the scene has no clips; nothing was placed in the arrangement")
		return nil, nil
	}

	targetLength := 0.0
	if req.ArrangementLength != "" {
		// Scene rows can mix signatures; the scene-level length is parsed
		// against the song signature.
		targetLength, err = notation.DurationToBeats(op, req.ArrangementLength, songNum, songDen)
		if err != nil {
			return nil, err
		}
		if targetLength <= 0 {
			return nil, &operr.RangeError{Op: op, Field: "arrangementLength", Value: targetLength, Msg: "must be a positive duration"}
		}
	}
	stride := sceneLength
	if targetLength > 0 {
		stride = targetLength
	}

	var objects []DuplicatedObject
	for i := 0; i < req.Count; i++ {
		pos := startBeats + float64(i)*stride
		var clipIDs []string
		for _, rc := range row {
			if targetLength > 0 {
				clips, ws, err := arrangement.CreateAtLength(op, rc.track, rc.clip, pos, targetLength, e.opts)
				warns.extend(ws)
				if err != nil {
					return objects, err
				}
				for _, c := range clips {
					clipIDs = append(clipIDs, c.ID)
				}
			} else {
				result, err := rc.track.Call("duplicate_clip_to_arrangement", rc.clip.ID, pos)
				if err != nil {
					return objects, fmt.Errorf("%s: placing scene clip at beat %.3f: %w", op, pos, err)
				}
				if id, ok := live.CallResultID(result); ok {
					clipIDs = append(clipIDs, id)
				}
			}
		}
		idx := sceneIdx
		objects = append(objects, DuplicatedObject{
			ID:                   source.ID,
			Type:                 "scene",
			SceneIndex:           &idx,
			ArrangementStartTime: notation.BeatsToPosition(pos, songNum, songDen),
			ClipIDs:              clipIDs,
		})
	}
	return objects, nil
}
