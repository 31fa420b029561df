package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamjmurray/producer-pal-sub001/live/livetest"
	"github.com/adamjmurray/producer-pal-sub001/models"
	"github.com/adamjmurray/producer-pal-sub001/operr"
)

func TestReadClipSession(t *testing.T) {
	f := livetest.NewFake()
	f.AddScene("1")
	track := f.AddTrack("Keys")
	clip := f.AddSessionClip(track, 0, 4)
	clip.Name = "Chords"
	f.SetClipNotes(clip, []models.Note{
		{Pitch: 60, StartTime: 0, Duration: 1, Velocity: 100, Probability: 1},
		{Pitch: 64, StartTime: 1, Duration: 1, Velocity: 90, Probability: 1},
	})
	engine := newTestEngine(f)

	desc, err := engine.ReadClip(context.Background(), ReadClipRequest{ID: clip.ID})
	require.NoError(t, err)

	assert.Equal(t, "Chords", desc.Name)
	assert.Equal(t, "midi", desc.Type)
	assert.Equal(t, "session", desc.View)
	require.NotNil(t, desc.TrackIndex)
	assert.Equal(t, 0, *desc.TrackIndex)
	require.NotNil(t, desc.SceneIndex)
	assert.Equal(t, 0, *desc.SceneIndex)
	assert.Equal(t, "1:0", desc.Length)
	assert.InDelta(t, 4.0, desc.LengthBeats, 1e-9)
	assert.True(t, desc.Looping)
	assert.Len(t, desc.Notes, 2)
	assert.Zero(t, f.MutationCount(), "readClip never mutates")
}

func TestReadClipArrangement(t *testing.T) {
	f := livetest.NewFake()
	track := f.AddTrack("Audio")
	clip := f.AddAudioArrangementClip(track, 16, 4, "/samples/loop.wav")
	engine := newTestEngine(f)

	desc, err := engine.ReadClip(context.Background(), ReadClipRequest{ID: clip.ID})
	require.NoError(t, err)

	assert.Equal(t, "audio", desc.Type)
	assert.Equal(t, "arrangement", desc.View)
	assert.Equal(t, "5|0", desc.ArrangementStartTime)
	assert.Nil(t, desc.SceneIndex)
	assert.Equal(t, "/samples/loop.wav", desc.FilePath)
	assert.Empty(t, desc.Notes)
}

func TestReadClipErrors(t *testing.T) {
	f := livetest.NewFake()
	track := f.AddTrack("Keys")
	engine := newTestEngine(f)

	_, err := engine.ReadClip(context.Background(), ReadClipRequest{ID: "999"})
	var notFound *operr.NotFoundError
	require.True(t, errors.As(err, &notFound))

	_, err = engine.ReadClip(context.Background(), ReadClipRequest{ID: track.ID})
	var mismatch *operr.TypeMismatchError
	require.True(t, errors.As(err, &mismatch))
}
