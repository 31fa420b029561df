// Package live models the host DAW's embedded object model as an opaque
// remote object store with synchronous call/get/set semantics. The host
// owns all actual state; everything here is a weak, re-fetchable reference.
package live

// API is the minimum collaborator surface the control layer requires from
// the host. Ids are opaque strings issued by the host. Calls are
// synchronous and may have side effects the caller must work around (most
// notably: creating an arrangement clip over the exact [start,end) region
// of an existing one silently deletes the existing clip).
type API interface {
	// Exists reports whether id currently resolves to a live object.
	Exists(id string) bool
	// Get reads a property value.
	Get(id, prop string) (any, error)
	// Set writes a property value.
	Set(id, prop string, value any) error
	// Call invokes a host verb on the object and returns its result.
	Call(id, verb string, args ...any) (any, error)
	// Children enumerates the ids of a child relation (e.g. "tracks",
	// "clip_slots", "arrangement_clips", "devices").
	Children(id, relation string) ([]string, error)
	// Path returns the object's canonical path (e.g. "live_set tracks 2").
	Path(id string) (string, error)
}

// SongID is the id of the root song object in every session.
const SongID = "song"

// Kind classifies a host object by its canonical path.
type Kind string

const (
	KindSong     Kind = "song"
	KindTrack    Kind = "track"
	KindScene    Kind = "scene"
	KindClipSlot Kind = "clip_slot"
	KindClip     Kind = "clip"
	KindDevice   Kind = "device"
	KindUnknown  Kind = "unknown"
)
