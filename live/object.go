package live

import (
	"fmt"
	"strconv"
	"strings"
)

// Object is a thin handle pairing an id with the API it came from. It holds
// no cached state: every getter goes back to the host, because any mutating
// call can shift indices or delete the underlying object.
type Object struct {
	API API
	ID  string
}

// Resolve returns a handle for id, reporting whether the object exists.
func Resolve(api API, id string) (Object, bool) {
	return Object{API: api, ID: id}, api.Exists(id)
}

// Exists re-checks that the underlying host object is still alive.
func (o Object) Exists() bool {
	return o.API.Exists(o.ID)
}

// Kind classifies the object from its canonical path.
func (o Object) Kind() Kind {
	path, err := o.API.Path(o.ID)
	if err != nil {
		return KindUnknown
	}
	return KindOf(path)
}

// KindOf classifies a canonical path. Session clips live under
// "... clip_slots N clip"; arrangement clips under "... arrangement_clips N".
func KindOf(path string) Kind {
	tokens := strings.Fields(path)
	if len(tokens) == 0 {
		return KindUnknown
	}
	if len(tokens) == 1 && tokens[0] == "live_set" {
		return KindSong
	}
	last := tokens[len(tokens)-1]
	if last == "clip" {
		return KindClip
	}
	if len(tokens) < 2 {
		return KindUnknown
	}
	switch tokens[len(tokens)-2] {
	case "tracks", "return_tracks":
		return KindTrack
	case "scenes":
		return KindScene
	case "clip_slots":
		return KindClipSlot
	case "arrangement_clips":
		return KindClip
	case "devices":
		return KindDevice
	}
	return KindUnknown
}

// IsArrangementClip reports whether the object is a clip anchored on the
// arrangement timeline rather than in a session slot.
func (o Object) IsArrangementClip() bool {
	path, err := o.API.Path(o.ID)
	if err != nil {
		return false
	}
	tokens := strings.Fields(path)
	return len(tokens) >= 2 && tokens[len(tokens)-2] == "arrangement_clips"
}

// Get reads a raw property value.
func (o Object) Get(prop string) (any, error) {
	return o.API.Get(o.ID, prop)
}

// GetFloat reads a numeric property.
func (o Object) GetFloat(prop string) (float64, error) {
	v, err := o.API.Get(o.ID, prop)
	if err != nil {
		return 0, err
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, fmt.Errorf("property %s of %s is %T, not numeric", prop, o.ID, v)
	}
	return f, nil
}

// GetInt reads an integer property.
func (o Object) GetInt(prop string) (int, error) {
	f, err := o.GetFloat(prop)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// GetBool reads a boolean property (the host reports these as 0/1).
func (o Object) GetBool(prop string) (bool, error) {
	v, err := o.API.Get(o.ID, prop)
	if err != nil {
		return false, err
	}
	switch val := v.(type) {
	case bool:
		return val, nil
	default:
		f, ok := toFloat(v)
		if !ok {
			return false, fmt.Errorf("property %s of %s is %T, not boolean", prop, o.ID, v)
		}
		return f != 0, nil
	}
}

// GetString reads a string property.
func (o Object) GetString(prop string) (string, error) {
	v, err := o.API.Get(o.ID, prop)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("property %s of %s is %T, not a string", prop, o.ID, v)
	}
	return s, nil
}

// Set writes a property value.
func (o Object) Set(prop string, value any) error {
	return o.API.Set(o.ID, prop, value)
}

// Call invokes a host verb on the object.
func (o Object) Call(verb string, args ...any) (any, error) {
	return o.API.Call(o.ID, verb, args...)
}

// Children enumerates a child relation as handles.
func (o Object) Children(relation string) ([]Object, error) {
	ids, err := o.API.Children(o.ID, relation)
	if err != nil {
		return nil, err
	}
	objs := make([]Object, len(ids))
	for i, id := range ids {
		objs[i] = Object{API: o.API, ID: id}
	}
	return objs, nil
}

// Path returns the object's canonical path.
func (o Object) Path() (string, error) {
	return o.API.Path(o.ID)
}

// IndexInPath extracts the trailing index of a path component, e.g.
// IndexInPath("live_set tracks 3", "tracks") == 3. Returns -1 when the
// component is absent.
func IndexInPath(path, component string) int {
	tokens := strings.Fields(path)
	for i := 0; i < len(tokens)-1; i++ {
		if tokens[i] == component {
			if n, err := strconv.Atoi(tokens[i+1]); err == nil {
				return n
			}
		}
	}
	return -1
}

// NumericID parses a host id as an integer for creation-order comparisons.
// Host ids are monotonically increasing numbers; non-numeric ids sort last.
func NumericID(id string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(id, "id "))
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}

// CallResultID interprets a verb result as an object id (hosts return
// either the bare id string or an "id N" form).
func CallResultID(result any) (string, bool) {
	s, ok := result.(string)
	if !ok {
		return "", false
	}
	return strings.TrimPrefix(s, "id "), s != ""
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
