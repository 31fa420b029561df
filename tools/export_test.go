package tools

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/adamjmurray/producer-pal-sub001/live/livetest"
	"github.com/adamjmurray/producer-pal-sub001/models"
	"github.com/adamjmurray/producer-pal-sub001/operr"
)

func TestExportClipWritesSMF(t *testing.T) {
	f := livetest.NewFake()
	f.AddScene("1")
	track := f.AddTrack("Keys")
	clip := f.AddSessionClip(track, 0, 4)
	f.SetClipNotes(clip, []models.Note{
		{Pitch: 60, StartTime: 0, Duration: 1, Velocity: 100, Probability: 1},
		{Pitch: 64, StartTime: 1, Duration: 0.5, Velocity: 90, Probability: 1},
		{Pitch: 67, StartTime: 2, Duration: 1, Velocity: 80, Probability: 1},
	})
	engine := newTestEngine(f)

	path := filepath.Join(t.TempDir(), "chords.mid")
	resp, err := engine.ExportClip(context.Background(), ExportClipRequest{ID: clip.ID, Path: path})
	require.NoError(t, err)
	assert.Equal(t, path, resp.Path)
	assert.Equal(t, 3, resp.NoteCount)

	file, err := smf.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, file.Tracks, 2, "meta track plus one content track")

	noteOns := 0
	for _, ev := range file.Tracks[1] {
		var ch, key, vel uint8
		if ev.Message.GetNoteStart(&ch, &key, &vel) {
			noteOns++
		}
	}
	assert.Equal(t, 3, noteOns)
}

func TestExportClipSkipsMutedNotes(t *testing.T) {
	f := livetest.NewFake()
	f.AddScene("1")
	track := f.AddTrack("Keys")
	clip := f.AddSessionClip(track, 0, 4)
	f.SetClipNotes(clip, []models.Note{
		{Pitch: 60, StartTime: 0, Duration: 1, Velocity: 100, Probability: 1},
		{Pitch: 64, StartTime: 1, Duration: 1, Velocity: 90, Mute: true, Probability: 1},
	})
	engine := newTestEngine(f)

	path := filepath.Join(t.TempDir(), "muted.mid")
	_, err := engine.ExportClip(context.Background(), ExportClipRequest{ID: clip.ID, Path: path})
	require.NoError(t, err)

	file, err := smf.ReadFile(path)
	require.NoError(t, err)
	noteOns := 0
	for _, ev := range file.Tracks[1] {
		var ch, key, vel uint8
		if ev.Message.GetNoteStart(&ch, &key, &vel) {
			noteOns++
		}
	}
	assert.Equal(t, 1, noteOns)
}

func TestExportClipRejectsAudio(t *testing.T) {
	f := livetest.NewFake()
	track := f.AddTrack("Audio")
	clip := f.AddAudioArrangementClip(track, 0, 4, "/samples/loop.wav")
	engine := newTestEngine(f)

	_, err := engine.ExportClip(context.Background(), ExportClipRequest{
		ID:   clip.ID,
		Path: filepath.Join(t.TempDir(), "nope.mid"),
	})
	var unsupported *operr.UnsupportedOperationError
	require.True(t, errors.As(err, &unsupported))
}

func TestExportClipValidation(t *testing.T) {
	f := livetest.NewFake()
	engine := newTestEngine(f)

	_, err := engine.ExportClip(context.Background(), ExportClipRequest{ID: "1", Path: ""})
	var validation *operr.ValidationError
	require.True(t, errors.As(err, &validation))
}
