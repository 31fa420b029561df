package tools

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/adamjmurray/producer-pal-sub001/live"
	"github.com/adamjmurray/producer-pal-sub001/models"
	"github.com/adamjmurray/producer-pal-sub001/operr"
)

// ticksPerQuarter is the SMF resolution for exported files.
const ticksPerQuarter = 960

// ExportClipRequest carries the arguments of the exportClip tool.
type ExportClipRequest struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// ExportClipResponse reports where the file landed and how many notes it
// contains.
type ExportClipResponse struct {
	Path      string   `json:"path"`
	NoteCount int      `json:"noteCount"`
	Warnings  []string `json:"warnings,omitempty"`
}

// ExportClip writes a MIDI clip's notes to a standard MIDI file: a meta
// track carrying the clip's meter and the song tempo, plus one content
// track. Audio clips have no notes to export and are rejected.
func (e *Engine) ExportClip(ctx context.Context, req ExportClipRequest) (*ExportClipResponse, error) {
	const op = "exportClip"
	started := time.Now()
	calls, sets := e.host.calls, e.host.sets
	log.Printf("💾 exportClip: id=%s path=%s", req.ID, req.Path)

	resp, err := e.runExportClip(op, req)

	e.metrics.RecordToolDuration(ctx, op, time.Since(started), err == nil)
	e.recordHostTraffic(ctx, op, calls, sets)
	if err != nil {
		log.Printf("❌ exportClip failed: %v", err)
		captureInternal(err)
		return nil, err
	}
	log.Printf("✅ exportClip: wrote %d note(s) to %s", resp.NoteCount, resp.Path)
	return resp, nil
}

func (e *Engine) runExportClip(op string, req ExportClipRequest) (*ExportClipResponse, error) {
	if req.Path == "" {
		return nil, &operr.ValidationError{Op: op, Msg: "path must not be empty"}
	}
	clip, err := resolveOne(op, e.api, req.ID, live.KindClip)
	if err != nil {
		return nil, err
	}
	isMIDI, err := clip.GetBool("is_midi_clip")
	if err != nil {
		return nil, err
	}
	if !isMIDI {
		return nil, &operr.UnsupportedOperationError{Op: op, Msg: "audio clips have no notes to export"}
	}

	length, err := clip.GetFloat("length")
	if err != nil {
		return nil, err
	}
	raw, err := clip.Call("get_notes_extended", 0, 128, 0.0, length)
	if err != nil {
		return nil, fmt.Errorf("%s: reading notes of clip %s: %w", op, clip.ID, err)
	}
	notes, err := models.ParseNotes(asNoteJSON(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: decoding notes of clip %s: %w", op, clip.ID, err)
	}

	num, den, err := clipSignature(clip)
	if err != nil {
		return nil, err
	}
	tempo, err := e.song().GetFloat("tempo")
	if err != nil {
		return nil, err
	}

	file, err := buildSMF(notes, num, den, tempo, length)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := file.WriteFile(req.Path); err != nil {
		return nil, fmt.Errorf("%s: writing %s: %w", op, req.Path, err)
	}
	return &ExportClipResponse{Path: req.Path, NoteCount: len(notes)}, nil
}

// buildSMF assembles a two-track SMF: track 0 holds the meter and tempo
// meta events, track 1 the note content. One beat is one quarter note.
func buildSMF(notes []models.Note, num, den int, tempo, lengthBeats float64) (*smf.SMF, error) {
	file := smf.New()
	file.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var meta smf.Track
	meta.Add(0, smf.MetaMeter(uint8(num), uint8(den)))
	meta.Add(0, smf.MetaTempo(tempo))
	meta.Close(0)
	if err := file.Add(meta); err != nil {
		return nil, fmt.Errorf("adding meta track: %w", err)
	}

	type event struct {
		tick uint32
		off  bool
		key  uint8
		vel  uint8
	}
	var events []event
	for _, n := range notes {
		if n.Mute {
			continue
		}
		key := uint8(clamp(n.Pitch, 0, 127))
		vel := uint8(clamp(int(n.Velocity+0.5), 1, 127))
		on := uint32(n.StartTime * ticksPerQuarter)
		off := uint32((n.StartTime + n.Duration) * ticksPerQuarter)
		if off <= on {
			off = on + 1
		}
		events = append(events, event{tick: on, key: key, vel: vel})
		events = append(events, event{tick: off, off: true, key: key})
	}
	// Stable order: by tick, note-offs before note-ons at the same tick so
	// retriggered pitches close before reopening.
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	var content smf.Track
	var cursor uint32
	for _, ev := range events {
		delta := ev.tick - cursor
		cursor = ev.tick
		if ev.off {
			content.Add(delta, midi.NoteOff(0, ev.key))
		} else {
			content.Add(delta, midi.NoteOn(0, ev.key, ev.vel))
		}
	}
	end := uint32(lengthBeats * ticksPerQuarter)
	var closeDelta uint32
	if end > cursor {
		closeDelta = end - cursor
	}
	content.Close(closeDelta)
	if err := file.Add(content); err != nil {
		return nil, fmt.Errorf("adding content track: %w", err)
	}
	return file, nil
}
