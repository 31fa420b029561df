package tools

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/adamjmurray/producer-pal-sub001/live"
	"github.com/adamjmurray/producer-pal-sub001/operr"
)

// DeleteRequest carries the arguments of the delete tool. IDs is a
// comma-separated list; every id must resolve to the declared type.
type DeleteRequest struct {
	IDs  string `json:"ids"`
	Type string `json:"type"`
}

// DeleteResponse lists the ids that were removed from the session.
type DeleteResponse struct {
	Deleted  []string `json:"deleted"`
	Type     string   `json:"type"`
	Warnings []string `json:"warnings,omitempty"`
}

// Delete removes tracks, scenes or clips. The whole batch is validated
// before the first mutation: one bad id aborts the call with the session
// untouched.
func (e *Engine) Delete(ctx context.Context, req DeleteRequest) (*DeleteResponse, error) {
	const op = "delete"
	started := time.Now()
	calls, sets := e.host.calls, e.host.sets
	log.Printf("🗑️ delete: type=%s ids=%s", req.Type, req.IDs)

	warns := newWarnings()
	deleted, err := e.runDelete(op, req, warns)

	e.metrics.RecordToolDuration(ctx, op, time.Since(started), err == nil)
	e.recordHostTraffic(ctx, op, calls, sets)
	e.metrics.RecordWarnings(ctx, op, len(warns.list()))
	if err != nil {
		log.Printf("❌ delete failed: %v", err)
		captureInternal(err)
		return nil, err
	}
	log.Printf("✅ delete: removed %d %s(s)", len(deleted), req.Type)
	return &DeleteResponse{Deleted: deleted, Type: req.Type, Warnings: warns.list()}, nil
}

func (e *Engine) runDelete(op string, req DeleteRequest, warns *warnings) ([]string, error) {
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
	targets, err := resolveMany(op, e.api, req.IDs, want, false, warns)
	if err != nil {
		return nil, err
	}

	switch req.Type {
	case "track":
		return e.deleteTracks(op, targets)
	case "scene":
		return e.deleteScenes(op, targets)
	default:
		return e.deleteClips(op, targets)
	}
}

// deleteTracks removes tracks highest index first so the remaining target
// indices stay valid while the host renumbers.
func (e *Engine) deleteTracks(op string, targets []live.Object) ([]string, error) {
	song := e.song()
	tracks, err := song.Children("tracks")
	if err != nil {
		return nil, err
	}
	if len(targets) >= len(tracks) {
		return nil, &operr.UnsupportedOperationError{Op: op, Msg: "cannot delete every track in the session"}
	}

	type target struct {
		id    string
		index int
	}
	resolved := make([]target, 0, len(targets))
	for _, t := range targets {
		hosts, err := trackHostsRuntimeDevice(t)
		if err != nil {
			return nil, err
		}
		if hosts {
			return nil, &operr.UnsupportedOperationError{Op: op,
				Msg: fmt.Sprintf("track %s hosts the %s device and cannot be deleted", t.ID, RuntimeDeviceName)}
		}
		idx, err := indexOfPath(t, "tracks")
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, target{id: t.ID, index: idx})
	}

	sort.Slice(resolved, func(i, j int) bool { return resolved[i].index > resolved[j].index })
	deleted := make([]string, 0, len(resolved))
	for _, t := range resolved {
		if _, err := song.Call("delete_track", t.index); err != nil {
			return deleted, fmt.Errorf("%s: deleting track %d: %w", op, t.index, err)
		}
		deleted = append(deleted, t.id)
	}
	return deleted, nil
}

func (e *Engine) deleteScenes(op string, targets []live.Object) ([]string, error) {
	song := e.song()
	scenes, err := song.Children("scenes")
	if err != nil {
		return nil, err
	}
	if len(targets) >= len(scenes) {
		return nil, &operr.UnsupportedOperationError{Op: op, Msg: "cannot delete every scene in the session"}
	}

	type target struct {
		id    string
		index int
	}
	resolved := make([]target, 0, len(targets))
	for _, s := range targets {
		idx, err := indexOfPath(s, "scenes")
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, target{id: s.ID, index: idx})
	}

	sort.Slice(resolved, func(i, j int) bool { return resolved[i].index > resolved[j].index })
	deleted := make([]string, 0, len(resolved))
	for _, s := range resolved {
		if _, err := song.Call("delete_scene", s.index); err != nil {
			return deleted, fmt.Errorf("%s: deleting scene %d: %w", op, s.index, err)
		}
		deleted = append(deleted, s.id)
	}
	return deleted, nil
}

// deleteClips goes through each clip's owning track, which accepts a clip
// id directly and so is immune to index shifts between deletions.
func (e *Engine) deleteClips(op string, targets []live.Object) ([]string, error) {
	deleted := make([]string, 0, len(targets))
	for _, clip := range targets {
		track, _, err := e.trackOfClip(clip)
		if err != nil {
			return deleted, err
		}
		if _, err := track.Call("delete_clip", clip.ID); err != nil {
			return deleted, fmt.Errorf("%s: deleting clip %s: %w", op, clip.ID, err)
		}
		deleted = append(deleted, clip.ID)
	}
	return deleted, nil
}
