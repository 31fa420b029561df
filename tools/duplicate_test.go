package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamjmurray/producer-pal-sub001/config"
	"github.com/adamjmurray/producer-pal-sub001/live"
	"github.com/adamjmurray/producer-pal-sub001/live/livetest"
	"github.com/adamjmurray/producer-pal-sub001/operr"
)

func newTestEngine(f *livetest.Fake) *Engine {
	return NewEngine(f, config.Config{})
}

func boolPtr(v bool) *bool { return &v }

func TestDuplicateTrackCountAndNaming(t *testing.T) {
	f := livetest.NewFake()
	drums := f.AddTrack("Drums")
	f.AddTrack("Bass")
	engine := newTestEngine(f)

	resp, err := engine.Duplicate(context.Background(), DuplicateRequest{
		ID:    drums.ID,
		Type:  "track",
		Count: 3,
		Name:  "Copy",
	})
	require.NoError(t, err)
	require.Len(t, resp.Objects, 3)

	require.Len(t, f.Tracks, 5)
	assert.Equal(t, "Copy", f.Tracks[1].Name)
	assert.Equal(t, "Copy 2", f.Tracks[2].Name)
	assert.Equal(t, "Copy 3", f.Tracks[3].Name)
	assert.Equal(t, "Bass", f.Tracks[4].Name)
	for i, obj := range resp.Objects {
		require.NotNil(t, obj.TrackIndex)
		assert.Equal(t, i+1, *obj.TrackIndex)
		assert.Equal(t, "track", obj.Type)
	}
}

func TestDuplicateTrackStripsRuntimeDevice(t *testing.T) {
	f := livetest.NewFake()
	track := f.AddTrack("Control")
	f.AddDevice(track, RuntimeDeviceName)
	f.AddDevice(track, "Operator")
	engine := newTestEngine(f)

	resp, err := engine.Duplicate(context.Background(), DuplicateRequest{ID: track.ID, Type: "track"})
	require.NoError(t, err)

	require.Len(t, f.Tracks, 2)
	copied := f.Tracks[1]
	require.Len(t, copied.Devices, 1)
	assert.Equal(t, "Operator", copied.Devices[0].Name)
	// The original keeps its device chain.
	assert.Len(t, f.Tracks[0].Devices, 2)
	assert.NotEmpty(t, resp.Warnings)
}

func TestDuplicateTrackRouteToSource(t *testing.T) {
	f := livetest.NewFake()
	f.AddScene("1")
	source := f.AddTrack("Lead")
	f.AddDevice(source, "Wavetable")
	f.AddSessionClip(source, 0, 4)
	engine := newTestEngine(f)

	resp, err := engine.Duplicate(context.Background(), DuplicateRequest{
		ID:            source.ID,
		Type:          "track",
		RouteToSource: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Objects, 1)

	require.Len(t, f.Tracks, 2)
	copied := f.Tracks[1]
	assert.Empty(t, copied.Devices, "routeToSource forces withoutDevices")
	assert.Nil(t, copied.Slots[0].Clip, "routeToSource forces withoutClips")
	assert.Equal(t, "Lead", copied.OutputRouting.DisplayName)
	assert.Equal(t, live.NumericID(source.ID), copied.OutputRouting.Identifier)
	assert.Equal(t, "No Input", f.Tracks[0].InputRouting.DisplayName)
	assert.True(t, copied.Arm)
	assert.NotEmpty(t, resp.Warnings)
}

func TestDuplicateRouteToSourceOverrideWarnsOnlyOnExplicitFalse(t *testing.T) {
	build := func() (*livetest.Fake, *livetest.Track) {
		f := livetest.NewFake()
		f.AddScene("1")
		source := f.AddTrack("Lead")
		f.AddSessionClip(source, 0, 4)
		return f, source
	}

	f, source := build()
	engine := newTestEngine(f)
	resp, err := engine.Duplicate(context.Background(), DuplicateRequest{
		ID:            source.ID,
		Type:          "track",
		RouteToSource: true,
		WithoutClips:  boolPtr(false),
	})
	require.NoError(t, err)
	found := false
	for _, w := range resp.Warnings {
		if strings.Contains(w, "overridden") {
			found = true
		}
	}
	assert.True(t, found, "an explicit withoutClips=false must surface the override")
	assert.Nil(t, f.Tracks[1].Slots[0].Clip, "the override still applies")

	f2, source2 := build()
	engine2 := newTestEngine(f2)
	resp2, err := engine2.Duplicate(context.Background(), DuplicateRequest{
		ID:            source2.ID,
		Type:          "track",
		RouteToSource: true,
	})
	require.NoError(t, err)
	for _, w := range resp2.Warnings {
		assert.NotContains(t, w, "overridden", "omitted flags are upgraded silently")
	}
	assert.Nil(t, f2.Tracks[1].Slots[0].Clip)
}

func TestDuplicateUnknownIDLeavesSessionUntouched(t *testing.T) {
	f := livetest.NewFake()
	f.AddTrack("Drums")
	engine := newTestEngine(f)

	_, err := engine.Duplicate(context.Background(), DuplicateRequest{ID: "999", Type: "track"})
	var notFound *operr.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Zero(t, f.MutationCount())
}

func TestDuplicateValidation(t *testing.T) {
	f := livetest.NewFake()
	track := f.AddTrack("Drums")
	f.AddScene("1")
	clip := f.AddSessionClip(track, 0, 4)
	engine := newTestEngine(f)

	cases := []struct {
		name string
		req  DuplicateRequest
	}{
		{"bad type", DuplicateRequest{ID: track.ID, Type: "device"}},
		{"negative count", DuplicateRequest{ID: track.ID, Type: "track", Count: -1}},
		{"clip without destination", DuplicateRequest{ID: clip.ID, Type: "clip"}},
		{"routeToSource on scene", DuplicateRequest{ID: track.ID, Type: "scene", RouteToSource: true}},
		{"track to arrangement", DuplicateRequest{ID: track.ID, Type: "track", Destination: "arrangement"}},
		{"session without slot indices", DuplicateRequest{ID: clip.ID, Type: "clip", Destination: "session"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := f.MutationCount()
			_, err := engine.Duplicate(context.Background(), tc.req)
			var validation *operr.ValidationError
			require.True(t, errors.As(err, &validation), "got %v", err)
			assert.Equal(t, before, f.MutationCount())
		})
	}
}

func TestDuplicateClipToSession(t *testing.T) {
	f := livetest.NewFake()
	f.AddScene("1")
	f.AddScene("2")
	src := f.AddTrack("Keys")
	dest := f.AddTrack("Pad")
	clip := f.AddSessionClip(src, 0, 4)
	engine := newTestEngine(f)

	one, zero := 1, 0
	resp, err := engine.Duplicate(context.Background(), DuplicateRequest{
		ID:           clip.ID,
		Type:         "clip",
		Destination:  "session",
		ToTrackIndex: &one,
		ToSceneIndex: &zero,
		Count:        2,
	})
	require.NoError(t, err)
	require.Len(t, resp.Objects, 2)

	require.NotNil(t, dest.Slots[0].Clip)
	require.NotNil(t, dest.Slots[1].Clip)
	assert.Equal(t, 0, *resp.Objects[0].SceneIndex)
	assert.Equal(t, 1, *resp.Objects[1].SceneIndex)
}

func TestDuplicateArrangementClipToSessionRejected(t *testing.T) {
	f := livetest.NewFake()
	f.AddScene("1")
	track := f.AddTrack("Keys")
	clip := f.AddArrangementClip(track, 0, 4)
	engine := newTestEngine(f)

	zero := 0
	_, err := engine.Duplicate(context.Background(), DuplicateRequest{
		ID:           clip.ID,
		Type:         "clip",
		Destination:  "session",
		ToTrackIndex: &zero,
		ToSceneIndex: &zero,
	})
	var unsupported *operr.UnsupportedOperationError
	require.True(t, errors.As(err, &unsupported))
	assert.Zero(t, f.MutationCount())
}

func TestDuplicateClipToArrangement(t *testing.T) {
	f := livetest.NewFake()
	f.AddScene("1")
	track := f.AddTrack("Keys")
	clip := f.AddSessionClip(track, 0, 4)
	engine := newTestEngine(f)

	resp, err := engine.Duplicate(context.Background(), DuplicateRequest{
		ID:                   clip.ID,
		Type:                 "clip",
		Destination:          "arrangement",
		ArrangementStartTime: "5|0",
		Count:                2,
	})
	require.NoError(t, err)
	require.Len(t, resp.Objects, 2)

	require.Len(t, track.ArrClips, 2)
	assert.InDelta(t, 16.0, track.ArrClips[0].StartTime, 1e-9)
	assert.InDelta(t, 20.0, track.ArrClips[1].StartTime, 1e-9)
	assert.Equal(t, "5|0", resp.Objects[0].ArrangementStartTime)
	assert.Equal(t, "6|0", resp.Objects[1].ArrangementStartTime)
}

func TestDuplicateClipToArrangementWithLength(t *testing.T) {
	f := livetest.NewFake()
	f.AddScene("1")
	track := f.AddTrack("Keys")
	clip := f.AddSessionClip(track, 0, 4)
	engine := newTestEngine(f)

	resp, err := engine.Duplicate(context.Background(), DuplicateRequest{
		ID:                   clip.ID,
		Type:                 "clip",
		Destination:          "arrangement",
		ArrangementStartTime: "1|0",
		ArrangementLength:    "2:0",
	})
	require.NoError(t, err)
	require.Len(t, resp.Objects, 1)
	assert.Len(t, resp.Objects[0].ClipIDs, 2, "an 8-beat target from a 4-beat loop tiles into two segments")

	require.Len(t, track.ArrClips, 2)
	assert.InDelta(t, 0.0, track.ArrClips[0].StartTime, 1e-9)
	assert.InDelta(t, 4.0, track.ArrClips[1].StartTime, 1e-9)
}

func TestDuplicateScene(t *testing.T) {
	f := livetest.NewFake()
	a := f.AddTrack("A")
	b := f.AddTrack("B")
	f.AddScene("Intro")
	f.AddSessionClip(a, 0, 4)
	f.AddSessionClip(b, 0, 8)
	engine := newTestEngine(f)

	resp, err := engine.Duplicate(context.Background(), DuplicateRequest{
		ID:   f.Scenes[0].ID,
		Type: "scene",
		Name: "Verse",
	})
	require.NoError(t, err)
	require.Len(t, resp.Objects, 1)

	require.Len(t, f.Scenes, 2)
	assert.Equal(t, "Verse", f.Scenes[1].Name)
	assert.NotNil(t, a.Slots[1].Clip)
	assert.NotNil(t, b.Slots[1].Clip)
	assert.Len(t, resp.Objects[0].ClipIDs, 2)
}

func TestDuplicateSceneWithoutClips(t *testing.T) {
	f := livetest.NewFake()
	a := f.AddTrack("A")
	f.AddScene("Intro")
	f.AddSessionClip(a, 0, 4)
	engine := newTestEngine(f)

	resp, err := engine.Duplicate(context.Background(), DuplicateRequest{
		ID:           f.Scenes[0].ID,
		Type:         "scene",
		WithoutClips: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Nil(t, a.Slots[1].Clip)
	assert.Empty(t, resp.Objects[0].ClipIDs)
}

func TestDuplicateSceneToArrangement(t *testing.T) {
	f := livetest.NewFake()
	a := f.AddTrack("A")
	b := f.AddTrack("B")
	f.AddScene("Intro")
	f.AddSessionClip(a, 0, 4)
	f.AddSessionClip(b, 0, 8)
	engine := newTestEngine(f)

	resp, err := engine.Duplicate(context.Background(), DuplicateRequest{
		ID:                   f.Scenes[0].ID,
		Type:                 "scene",
		Destination:          "arrangement",
		ArrangementStartTime: "1|0",
		Count:                2,
	})
	require.NoError(t, err)
	require.Len(t, resp.Objects, 2)

	// The second iteration starts after the longest clip in the row.
	require.Len(t, a.ArrClips, 2)
	require.Len(t, b.ArrClips, 2)
	assert.InDelta(t, 0.0, a.ArrClips[0].StartTime, 1e-9)
	assert.InDelta(t, 8.0, a.ArrClips[1].StartTime, 1e-9)
	assert.InDelta(t, 8.0, b.ArrClips[1].StartTime, 1e-9)
	assert.Equal(t, "3|0", resp.Objects[1].ArrangementStartTime)
}

func TestDuplicateSwitchView(t *testing.T) {
	f := livetest.NewFake()
	f.AddScene("1")
	track := f.AddTrack("Keys")
	clip := f.AddSessionClip(track, 0, 4)
	engine := newTestEngine(f)

	_, err := engine.Duplicate(context.Background(), DuplicateRequest{
		ID:                   clip.ID,
		Type:                 "clip",
		Destination:          "arrangement",
		ArrangementStartTime: "1|0",
		SwitchView:           true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Arranger", f.View)
}
