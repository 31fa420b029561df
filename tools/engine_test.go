package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamjmurray/producer-pal-sub001/live/livetest"
)

func TestEngineCountsHostTraffic(t *testing.T) {
	f := livetest.NewFake()
	f.AddScene("1")
	track := f.AddTrack("Drums")
	f.AddSessionClip(track, 0, 4)
	engine := newTestEngine(f)

	_, err := engine.Duplicate(context.Background(), DuplicateRequest{
		ID:   track.ID,
		Type: "track",
	})
	require.NoError(t, err)

	assert.Positive(t, engine.host.calls, "duplicating a track issues host verb calls")
	assert.Equal(t, len(f.CallLog), engine.host.calls)
	assert.Equal(t, len(f.SetLog), engine.host.sets)
}

func TestEngineCountsNothingForPureReads(t *testing.T) {
	f := livetest.NewFake()
	track := f.AddTrack("Audio")
	clip := f.AddAudioArrangementClip(track, 16, 4, "/samples/loop.wav")
	engine := newTestEngine(f)

	_, err := engine.ReadClip(context.Background(), ReadClipRequest{ID: clip.ID})
	require.NoError(t, err)

	assert.Zero(t, engine.host.calls+engine.host.sets)
}
