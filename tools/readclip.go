package tools

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/adamjmurray/producer-pal-sub001/live"
	"github.com/adamjmurray/producer-pal-sub001/models"
	"github.com/adamjmurray/producer-pal-sub001/notation"
)

// ReadClipRequest carries the arguments of the readClip tool.
type ReadClipRequest struct {
	ID string `json:"id"`
}

// ClipDescription is the structured read-back of one clip. Timing fields
// are reported both as raw beats and as musical notation: positions in the
// song's signature, the length in the clip's own signature.
type ClipDescription struct {
	ID                   string        `json:"id"`
	Name                 string        `json:"name"`
	Type                 string        `json:"type"`
	View                 string        `json:"view"`
	TrackIndex           *int          `json:"trackIndex,omitempty"`
	SceneIndex           *int          `json:"sceneIndex,omitempty"`
	ArrangementStartTime string        `json:"arrangementStartTime,omitempty"`
	Length               string        `json:"length"`
	LengthBeats          float64       `json:"lengthBeats"`
	Looping              bool          `json:"looping"`
	LoopStart            float64       `json:"loopStart"`
	LoopEnd              float64       `json:"loopEnd"`
	SignatureNumerator   int           `json:"signatureNumerator"`
	SignatureDenominator int           `json:"signatureDenominator"`
	Notes                []models.Note `json:"notes,omitempty"`
	FilePath             string        `json:"filePath,omitempty"`
	Warnings             []string      `json:"warnings,omitempty"`
}

// ReadClip resolves a clip id and returns its full structured description.
// Pure reads; the session is never mutated.
func (e *Engine) ReadClip(ctx context.Context, req ReadClipRequest) (*ClipDescription, error) {
	const op = "readClip"
	started := time.Now()
	calls, sets := e.host.calls, e.host.sets
	log.Printf("🔍 readClip: id=%s", req.ID)

	desc, err := e.runReadClip(op, req)

	e.metrics.RecordToolDuration(ctx, op, time.Since(started), err == nil)
	e.recordHostTraffic(ctx, op, calls, sets)
	if err != nil {
		log.Printf("❌ readClip failed: %v", err)
		captureInternal(err)
		return nil, err
	}
	return desc, nil
}

func (e *Engine) runReadClip(op string, req ReadClipRequest) (*ClipDescription, error) {
	clip, err := resolveOne(op, e.api, req.ID, live.KindClip)
	if err != nil {
		return nil, err
	}

	desc := &ClipDescription{ID: clip.ID}
	if desc.Name, err = clip.GetString("name"); err != nil {
		return nil, err
	}
	isMIDI, err := clip.GetBool("is_midi_clip")
	if err != nil {
		return nil, err
	}
	desc.Type = "audio"
	if isMIDI {
		desc.Type = "midi"
	}
	if desc.Looping, err = clip.GetBool("looping"); err != nil {
		return nil, err
	}
	if desc.LoopStart, err = clip.GetFloat("loop_start"); err != nil {
		return nil, err
	}
	if desc.LoopEnd, err = clip.GetFloat("loop_end"); err != nil {
		return nil, err
	}
	if desc.LengthBeats, err = clip.GetFloat("length"); err != nil {
		return nil, err
	}
	if desc.SignatureNumerator, desc.SignatureDenominator, err = clipSignature(clip); err != nil {
		return nil, err
	}
	desc.Length = notation.BeatsToDuration(desc.LengthBeats, desc.SignatureNumerator, desc.SignatureDenominator)

	_, trackIdx, err := e.trackOfClip(clip)
	if err != nil {
		return nil, err
	}
	desc.TrackIndex = &trackIdx

	if clip.IsArrangementClip() {
		desc.View = "arrangement"
		start, err := clip.GetFloat("start_time")
		if err != nil {
			return nil, err
		}
		songNum, songDen, err := e.songSignature()
		if err != nil {
			return nil, err
		}
		desc.ArrangementStartTime = notation.BeatsToPosition(start, songNum, songDen)
	} else {
		desc.View = "session"
		path, err := clip.Path()
		if err != nil {
			return nil, err
		}
		if sceneIdx := live.IndexInPath(path, "clip_slots"); sceneIdx >= 0 {
			desc.SceneIndex = &sceneIdx
		}
	}

	if isMIDI {
		raw, err := clip.Call("get_notes_extended", 0, 128, 0.0, desc.LengthBeats)
		if err != nil {
			return nil, fmt.Errorf("%s: reading notes of clip %s: %w", op, clip.ID, err)
		}
		if desc.Notes, err = models.ParseNotes(asNoteJSON(raw)); err != nil {
			return nil, fmt.Errorf("%s: decoding notes of clip %s: %w", op, clip.ID, err)
		}
	} else {
		desc.FilePath, _ = clip.GetString("file_path")
	}
	return desc, nil
}
