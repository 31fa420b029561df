package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamjmurray/producer-pal-sub001/live/livetest"
	"github.com/adamjmurray/producer-pal-sub001/operr"
)

func TestDeleteTracksDescendingOrder(t *testing.T) {
	f := livetest.NewFake()
	first := f.AddTrack("First")
	keep := f.AddTrack("Keep")
	third := f.AddTrack("Third")
	engine := newTestEngine(f)

	resp, err := engine.Delete(context.Background(), DeleteRequest{
		IDs:  first.ID + ", " + third.ID,
		Type: "track",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Deleted, 2)

	require.Len(t, f.Tracks, 1)
	assert.Equal(t, keep.ID, f.Tracks[0].ID)
	assert.False(t, f.Exists(first.ID))
	assert.False(t, f.Exists(third.ID))
}

func TestDeleteAllOrNothing(t *testing.T) {
	f := livetest.NewFake()
	track := f.AddTrack("Drums")
	f.AddTrack("Bass")
	engine := newTestEngine(f)

	_, err := engine.Delete(context.Background(), DeleteRequest{
		IDs:  track.ID + ",999",
		Type: "track",
	})
	var notFound *operr.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Len(t, f.Tracks, 2, "one bad id must abort the whole batch")
	assert.Zero(t, f.MutationCount())
}

func TestDeleteRefusesRuntimeDeviceTrack(t *testing.T) {
	f := livetest.NewFake()
	control := f.AddTrack("Control")
	f.AddDevice(control, RuntimeDeviceName)
	f.AddTrack("Bass")
	engine := newTestEngine(f)

	_, err := engine.Delete(context.Background(), DeleteRequest{IDs: control.ID, Type: "track"})
	var unsupported *operr.UnsupportedOperationError
	require.True(t, errors.As(err, &unsupported))
	assert.Len(t, f.Tracks, 2)
	assert.Zero(t, f.MutationCount())
}

func TestDeleteRefusesEmptyingTheSession(t *testing.T) {
	f := livetest.NewFake()
	track := f.AddTrack("Only")
	f.AddScene("Only")
	engine := newTestEngine(f)

	_, err := engine.Delete(context.Background(), DeleteRequest{IDs: track.ID, Type: "track"})
	var unsupported *operr.UnsupportedOperationError
	require.True(t, errors.As(err, &unsupported))

	_, err = engine.Delete(context.Background(), DeleteRequest{IDs: f.Scenes[0].ID, Type: "scene"})
	require.True(t, errors.As(err, &unsupported))
	assert.Zero(t, f.MutationCount())
}

func TestDeleteScenes(t *testing.T) {
	f := livetest.NewFake()
	track := f.AddTrack("Drums")
	f.AddScene("Intro")
	f.AddScene("Verse")
	clip := f.AddSessionClip(track, 0, 4)
	engine := newTestEngine(f)

	resp, err := engine.Delete(context.Background(), DeleteRequest{IDs: f.Scenes[0].ID, Type: "scene"})
	require.NoError(t, err)
	assert.Len(t, resp.Deleted, 1)

	require.Len(t, f.Scenes, 1)
	assert.Equal(t, "Verse", f.Scenes[0].Name)
	assert.False(t, f.Exists(clip.ID), "clips in the deleted scene row go with it")
}

func TestDeleteClips(t *testing.T) {
	f := livetest.NewFake()
	f.AddScene("1")
	track := f.AddTrack("Keys")
	session := f.AddSessionClip(track, 0, 4)
	arr := f.AddArrangementClip(track, 0, 4)
	engine := newTestEngine(f)

	resp, err := engine.Delete(context.Background(), DeleteRequest{
		IDs:  session.ID + "," + arr.ID,
		Type: "clip",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Deleted, 2)

	assert.False(t, f.Exists(session.ID))
	assert.False(t, f.Exists(arr.ID))
	assert.Nil(t, track.Slots[0].Clip)
	assert.Empty(t, track.ArrClips)
}

func TestDeleteTypeMismatch(t *testing.T) {
	f := livetest.NewFake()
	track := f.AddTrack("Drums")
	f.AddTrack("Bass")
	engine := newTestEngine(f)

	_, err := engine.Delete(context.Background(), DeleteRequest{IDs: track.ID, Type: "scene"})
	var mismatch *operr.TypeMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Zero(t, f.MutationCount())
}
