// Package tools implements the remote-callable operations of the Producer
// Pal control surface: duplicate, delete, transformClips, readClip and
// exportClip. The host session owns all state; every operation here is a
// sequence of synchronous host calls with no transactional support, so
// mutations are ordered create-before-destroy and staged through the
// arrangement holding area whenever they could self-collide.
package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/getsentry/sentry-go"
	"golang.org/x/exp/constraints"

	"github.com/adamjmurray/producer-pal-sub001/arrangement"
	"github.com/adamjmurray/producer-pal-sub001/config"
	"github.com/adamjmurray/producer-pal-sub001/live"
	"github.com/adamjmurray/producer-pal-sub001/metrics"
	"github.com/adamjmurray/producer-pal-sub001/operr"
)

// RuntimeDeviceName identifies this control system's own device inside the
// session. The track hosting it is never deleted, and the device is never
// carried into track duplicates.
const RuntimeDeviceName = "Producer Pal"

// Engine executes tool operations against one host session.
type Engine struct {
	api     live.API
	host    *hostCounter
	opts    arrangement.Options
	metrics *metrics.SentryMetrics
}

// NewEngine creates an engine bound to a host session.
func NewEngine(api live.API, cfg config.Config) *Engine {
	counter := &hostCounter{api: api}
	return &Engine{
		api:  counter,
		host: counter,
		opts: arrangement.Options{
			HoldingAreaStart: cfg.HoldingAreaStart,
			SilentAudioPath:  cfg.SilentAudioPath,
		},
		metrics: metrics.NewSentryMetrics(),
	}
}

// hostCounter decorates a live.API to count the mutating traffic (verb calls
// and property writes) a tool invocation issues against the session.
type hostCounter struct {
	api   live.API
	calls int
	sets  int
}

func (h *hostCounter) Exists(id string) bool { return h.api.Exists(id) }

func (h *hostCounter) Get(id, prop string) (any, error) { return h.api.Get(id, prop) }

func (h *hostCounter) Set(id, prop string, value any) error {
	h.sets++
	return h.api.Set(id, prop, value)
}

func (h *hostCounter) Call(id, verb string, args ...any) (any, error) {
	h.calls++
	return h.api.Call(id, verb, args...)
}

func (h *hostCounter) Children(id, relation string) ([]string, error) {
	return h.api.Children(id, relation)
}

func (h *hostCounter) Path(id string) (string, error) { return h.api.Path(id) }

// recordHostTraffic reports the host traffic issued since the given counter
// snapshot. Call it with the counts captured at operation entry.
func (e *Engine) recordHostTraffic(ctx context.Context, op string, calls, sets int) {
	e.metrics.RecordHostTraffic(ctx, op, e.host.calls-calls, e.host.sets-sets)
}

func (e *Engine) song() live.Object {
	return live.Object{API: e.api, ID: live.SongID}
}

// songSignature reads the song's current time signature.
func (e *Engine) songSignature() (int, int, error) {
	song := e.song()
	num, err := song.GetInt("signature_numerator")
	if err != nil {
		return 0, 0, err
	}
	den, err := song.GetInt("signature_denominator")
	if err != nil {
		return 0, 0, err
	}
	return num, den, nil
}

// clipSignature reads a clip's own time signature, which may differ from
// the song's. Durations for a clip are always parsed against this.
func clipSignature(clip live.Object) (int, int, error) {
	num, err := clip.GetInt("signature_numerator")
	if err != nil {
		return 0, 0, err
	}
	den, err := clip.GetInt("signature_denominator")
	if err != nil {
		return 0, 0, err
	}
	return num, den, nil
}

// trackOfClip derives the owning track from a clip's canonical path. The
// index is recomputed from the current path, never cached, because track
// indices shift whenever tracks are inserted or deleted.
func (e *Engine) trackOfClip(clip live.Object) (live.Object, int, error) {
	path, err := clip.Path()
	if err != nil {
		return live.Object{}, -1, err
	}
	idx := live.IndexInPath(path, "tracks")
	if idx < 0 {
		return live.Object{}, -1, fmt.Errorf("clip %s has no owning track in path %q", clip.ID, path)
	}
	tracks, err := e.song().Children("tracks")
	if err != nil {
		return live.Object{}, -1, err
	}
	if idx >= len(tracks) {
		return live.Object{}, -1, fmt.Errorf("track index %d from path %q is stale", idx, path)
	}
	return tracks[idx], idx, nil
}

// trackHostsRuntimeDevice reports whether the track carries this control
// system's own device.
func trackHostsRuntimeDevice(track live.Object) (bool, error) {
	devices, err := track.Children("devices")
	if err != nil {
		return false, err
	}
	for _, d := range devices {
		name, err := d.GetString("name")
		if err != nil {
			continue
		}
		if name == RuntimeDeviceName {
			return true, nil
		}
	}
	return false, nil
}

// incrementName applies the auto-increment naming rule for sequential
// duplicates: base, "base 2", "base 3", ...
func incrementName(base string, iteration int) string {
	if iteration == 0 {
		return base
	}
	return fmt.Sprintf("%s %d", base, iteration+1)
}

// enabled reads an optional boolean argument; nil means "not passed".
func enabled(b *bool) bool {
	return b != nil && *b
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// indexOfPath extracts the object's index under the given path component,
// re-deriving it from the live path at call time.
func indexOfPath(obj live.Object, component string) (int, error) {
	path, err := obj.Path()
	if err != nil {
		return -1, err
	}
	idx := live.IndexInPath(path, component)
	if idx < 0 {
		return -1, fmt.Errorf("object %s is not under %q (path %q)", obj.ID, component, path)
	}
	return idx, nil
}

// captureInternal reports unexpected failures to Sentry. Errors from the
// operation taxonomy are caller mistakes, not defects, and stay out of it.
func captureInternal(err error) {
	var (
		validation  *operr.ValidationError
		notFound    *operr.NotFoundError
		mismatch    *operr.TypeMismatchError
		format      *operr.FormatError
		outOfRange  *operr.RangeError
		limit       *operr.LimitExceededError
		unsupported *operr.UnsupportedOperationError
	)
	if errors.As(err, &validation) || errors.As(err, &notFound) ||
		errors.As(err, &mismatch) || errors.As(err, &format) ||
		errors.As(err, &outOfRange) || errors.As(err, &limit) ||
		errors.As(err, &unsupported) {
		return
	}
	sentry.CaptureException(err)
}
