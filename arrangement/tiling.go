// Package arrangement implements timeline editing of clip regions via a
// holding area: a reserved region of beat-time far past any real content.
//
// The host refuses to let two clips coexist at the exact same [start,end)
// interval on one track, and resolves the conflict by silently deleting the
// existing clip. Every operation here that could self-collide therefore
// stages its work in the holding area first, and always creates replacement
// content before destroying the original.
package arrangement

import (
	"fmt"
	"math"

	"github.com/adamjmurray/producer-pal-sub001/live"
	"github.com/adamjmurray/producer-pal-sub001/operr"
)

const (
	// DefaultHoldingAreaStart is far enough out that no real arrangement
	// reaches it (beat 40000 is bar 10001 in 4/4).
	DefaultHoldingAreaStart = 40000.0

	// MaxSegments caps the clip segments any single slice/tile request may
	// create. The check runs pre-flight, before any mutation.
	MaxSegments = 64

	// PositionEpsilon tolerates floating-point drift when recovering fresh
	// clip handles by position after a holding-area round trip.
	PositionEpsilon = 0.001

	// HoldingSlotStride separates staged clips within one batch so they
	// cannot collide with each other.
	HoldingSlotStride = 1000.0
)

// Options is call-time configuration for the engine. The zero value uses
// the default holding area and no silent audio asset.
type Options struct {
	// HoldingAreaStart is the first beat of the scratch region.
	HoldingAreaStart float64
	// SilentAudioPath points at a pre-authored silent audio snippet the
	// host-side device reads to re-anchor warp markers when an audio clip
	// is shortened. The asset is consumed by the device itself, not sent
	// over the wire; this layer only verifies one is configured and warns
	// when it is not, proceeding best-effort.
	SilentAudioPath string
}

func (o Options) holdingStart() float64 {
	if o.HoldingAreaStart > 0 {
		return o.HoldingAreaStart
	}
	return DefaultHoldingAreaStart
}

// HoldingSlot returns the staging position for the i-th clip of a batch.
// Disjoint slots keep concurrently staged clips from colliding.
func (o Options) HoldingSlot(i int) float64 {
	return o.holdingStart() + float64(i)*HoldingSlotStride
}

// TileOptions control TileToRange.
type TileOptions struct {
	// TileLength fixes each segment's length (pre-slicing). Zero means
	// "use the source clip's length".
	TileLength float64
	// PreRoll offsets each segment's start marker so looped content
	// continues its loop phase across tile boundaries instead of
	// restarting at every segment.
	PreRoll bool
}

// ShortenInPlace reduces an existing arrangement clip to newLength beats
// without letting the host's same-region behavior destroy it. The clip is
// duplicated into the holding area, trimmed there, and only then is the
// original deleted and the trimmed copy moved back. Deleting the original
// first is required: moving the copy back while the original still occupies
// the region is exactly what triggers the silent overwrite.
//
// Returns a fresh handle for the shortened clip; the caller's handle and any
// other handle to clips on this track are stale afterwards.
func ShortenInPlace(op string, track, clip live.Object, newLength float64, opts Options) (live.Object, []string, error) {
	var warnings []string

	start, err := clip.GetFloat("start_time")
	if err != nil {
		return live.Object{}, nil, err
	}

	hold, w, err := stageTrimmedCopy(op, track, clip, opts.holdingStart(), newLength, 0, opts)
	warnings = append(warnings, w...)
	if err != nil {
		return live.Object{}, warnings, err
	}

	if _, err := track.Call("delete_clip", clip.ID); err != nil {
		return live.Object{}, warnings, err
	}
	if _, err := track.Call("duplicate_clip_to_arrangement", hold.ID, start); err != nil {
		return live.Object{}, warnings, err
	}
	if _, err := track.Call("delete_clip", hold.ID); err != nil {
		return live.Object{}, warnings, err
	}

	fresh, err := ClipAt(op, track, start)
	if err != nil {
		return live.Object{}, warnings, err
	}
	return fresh, warnings, nil
}

// CreateShortened places a copy of source at position with a length shorter
// than the source's. The copy is staged and trimmed in the holding area so
// that the final placement already has its target [start,end) region and
// cannot exactly coincide with the source or an existing copy.
func CreateShortened(op string, track, source live.Object, position, newLength float64, opts Options) (live.Object, []string, error) {
	hold, warnings, err := stageTrimmedCopy(op, track, source, opts.holdingStart(), newLength, 0, opts)
	if err != nil {
		return live.Object{}, warnings, err
	}
	if _, err := track.Call("duplicate_clip_to_arrangement", hold.ID, position); err != nil {
		return live.Object{}, warnings, err
	}
	if _, err := track.Call("delete_clip", hold.ID); err != nil {
		return live.Object{}, warnings, err
	}
	fresh, err := ClipAt(op, track, position)
	if err != nil {
		return live.Object{}, warnings, err
	}
	return fresh, warnings, nil
}

// stageTrimmedCopy duplicates source into the holding area at the given
// start and trims the copy to newLength, offsetting its start marker by
// preRollOffset beats into the source material.
func stageTrimmedCopy(op string, track, source live.Object, holdStart, newLength, preRollOffset float64, opts Options) (live.Object, []string, error) {
	var warnings []string

	isMIDI, err := source.GetBool("is_midi_clip")
	if err != nil {
		return live.Object{}, nil, err
	}
	if !isMIDI && opts.SilentAudioPath == "" {
		warnings = append(warnings,
			"no silent audio asset configured; audio clip shortened without warp re-anchoring")
	}

	result, err := track.Call("duplicate_clip_to_arrangement", source.ID, holdStart)
	if err != nil {
		return live.Object{}, warnings, err
	}
	holdID, ok := live.CallResultID(result)
	if !ok {
		return live.Object{}, warnings, &operr.ValidationError{Op: op, Msg: "host did not return an id for the staged clip"}
	}
	hold := live.Object{API: track.API, ID: holdID}

	if err := trimClip(hold, newLength, preRollOffset); err != nil {
		return live.Object{}, warnings, err
	}
	return hold, warnings, nil
}

// trimClip sets a clip's loop points and markers so it plays newLength
// beats, starting preRollOffset beats into the source material.
func trimClip(clip live.Object, newLength, preRollOffset float64) error {
	loopStart, err := clip.GetFloat("loop_start")
	if err != nil {
		return err
	}
	looping, err := clip.GetBool("looping")
	if err != nil {
		return err
	}
	newStart := loopStart + preRollOffset
	if looping {
		if err := clip.Set("loop_start", newStart); err != nil {
			return err
		}
		if err := clip.Set("loop_end", newStart+newLength); err != nil {
			return err
		}
	}
	if err := clip.Set("start_marker", newStart); err != nil {
		return err
	}
	return clip.Set("end_marker", newStart+newLength)
}

// TileToRange fills [startBeats, startBeats+totalLength) on track with
// repeated copies of source. Each segment is min(remaining, segment length)
// long and carries the source's loop points, markers and content forward.
// The segment count is checked against MaxSegments before any mutation.
func TileToRange(op string, track, source live.Object, startBeats, totalLength float64, tileOpts TileOptions, opts Options) ([]live.Object, []string, error) {
	var warnings []string

	srcLength, err := source.GetFloat("length")
	if err != nil {
		return nil, nil, err
	}
	segLength := tileOpts.TileLength
	if segLength <= 0 {
		segLength = srcLength
	}
	if segLength <= 0 {
		return nil, nil, &operr.RangeError{Op: op, Field: "segment length", Value: segLength, Msg: "must be positive"}
	}

	count := int(math.Ceil((totalLength - PositionEpsilon) / segLength))
	if count > MaxSegments {
		return nil, nil, &operr.LimitExceededError{Op: op, Requested: count, Limit: MaxSegments}
	}

	loopLength := srcLength
	if looping, err := source.GetBool("looping"); err == nil && looping {
		loopStart, err1 := source.GetFloat("loop_start")
		loopEnd, err2 := source.GetFloat("loop_end")
		if err1 == nil && err2 == nil && loopEnd > loopStart {
			loopLength = loopEnd - loopStart
		}
	}

	var segments []live.Object
	cursor := startBeats
	remaining := totalLength
	for remaining > PositionEpsilon {
		length := math.Min(remaining, segLength)

		var offset float64
		if tileOpts.PreRoll && loopLength > 0 {
			offset = math.Mod(cursor-startBeats, loopLength)
		}

		seg, w, err := placeSegment(op, track, source, cursor, length, offset, srcLength, opts)
		warnings = append(warnings, w...)
		if err != nil {
			return segments, warnings, err
		}
		segments = append(segments, seg)

		cursor += length
		remaining -= length
	}
	return segments, warnings, nil
}

// placeSegment creates one tile segment at cursor. Full-length segments
// with no pre-roll are plain duplicates; anything shorter or phase-shifted
// is staged through the holding area and trimmed there first.
func placeSegment(op string, track, source live.Object, cursor, length, preRollOffset, srcLength float64, opts Options) (live.Object, []string, error) {
	if preRollOffset == 0 && math.Abs(length-srcLength) < PositionEpsilon {
		result, err := track.Call("duplicate_clip_to_arrangement", source.ID, cursor)
		if err != nil {
			return live.Object{}, nil, err
		}
		id, ok := live.CallResultID(result)
		if !ok {
			return live.Object{}, nil, &operr.ValidationError{Op: op, Msg: "host did not return an id for the tiled clip"}
		}
		return live.Object{API: track.API, ID: id}, nil, nil
	}

	hold, warnings, err := stageTrimmedCopy(op, track, source, opts.holdingStart(), length, preRollOffset, opts)
	if err != nil {
		return live.Object{}, warnings, err
	}
	if _, err := track.Call("duplicate_clip_to_arrangement", hold.ID, cursor); err != nil {
		return live.Object{}, warnings, err
	}
	if _, err := track.Call("delete_clip", hold.ID); err != nil {
		return live.Object{}, warnings, err
	}
	seg, err := ClipAt(op, track, cursor)
	if err != nil {
		return live.Object{}, warnings, err
	}
	return seg, warnings, nil
}

// CreateAtLength places a copy of source at position, resized to
// targetLength beats. "target shorter than source" is the sole
// discriminator for the holding-area path: shortening stages through the
// holding area, while equal-or-longer targets never need it because
// creating content of length <= target cannot exactly reproduce an
// occupied region. Growing a non-looping clip beyond its natural length is
// a no-op past that length, reported as a warning.
func CreateAtLength(op string, track, source live.Object, position, targetLength float64, opts Options) ([]live.Object, []string, error) {
	var warnings []string

	srcLength, err := source.GetFloat("length")
	if err != nil {
		return nil, nil, err
	}
	if targetLength <= 0 {
		return nil, nil, &operr.RangeError{Op: op, Field: "arrangement length", Value: targetLength, Msg: "must be positive"}
	}

	// Shorter target: stage and trim.
	if targetLength < srcLength-PositionEpsilon {
		clip, w, err := CreateShortened(op, track, source, position, targetLength, opts)
		warnings = append(warnings, w...)
		if err != nil {
			return nil, warnings, err
		}
		return []live.Object{clip}, warnings, nil
	}

	looping, err := source.GetBool("looping")
	if err != nil {
		return nil, nil, err
	}

	// Pre-flight cap across the whole request for this clip.
	if looping && targetLength > srcLength+PositionEpsilon {
		count := 1 + int(math.Ceil((targetLength-srcLength-PositionEpsilon)/srcLength))
		if count > MaxSegments {
			return nil, nil, &operr.LimitExceededError{Op: op, Requested: count, Limit: MaxSegments}
		}
	}

	result, err := track.Call("duplicate_clip_to_arrangement", source.ID, position)
	if err != nil {
		return nil, warnings, err
	}
	id, ok := live.CallResultID(result)
	if !ok {
		return nil, warnings, &operr.ValidationError{Op: op, Msg: "host did not return an id for the duplicated clip"}
	}
	clips := []live.Object{{API: track.API, ID: id}}

	if targetLength <= srcLength+PositionEpsilon {
		return clips, warnings, nil
	}
	if !looping {
		warnings = append(warnings,
			"clip is not looped; duplicated at its natural length instead of the requested longer length")
		return clips, warnings, nil
	}

	segments, w, err := TileToRange(op, track, source, position+srcLength, targetLength-srcLength,
		TileOptions{PreRoll: true}, opts)
	warnings = append(warnings, w...)
	if err != nil {
		return clips, warnings, err
	}
	return append(clips, segments...), warnings, nil
}

// ClipAt recovers a fresh handle for the arrangement clip starting at the
// given beat, within PositionEpsilon. Handles on a track must be considered
// stale after any holding-area round trip; this re-enumerates and matches
// by position.
func ClipAt(op string, track live.Object, start float64) (live.Object, error) {
	clips, err := track.Children("arrangement_clips")
	if err != nil {
		return live.Object{}, err
	}
	for _, c := range clips {
		t, err := c.GetFloat("start_time")
		if err != nil {
			continue
		}
		if math.Abs(t-start) < PositionEpsilon {
			return c, nil
		}
	}
	return live.Object{}, fmt.Errorf("%s: no arrangement clip found at beat %.3f", op, start)
}
