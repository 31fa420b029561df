package tools

import (
	"fmt"
	"strings"

	"github.com/adamjmurray/producer-pal-sub001/live"
	"github.com/adamjmurray/producer-pal-sub001/operr"
)

// resolveOne resolves a single caller-supplied id to a live handle of the
// expected kind. Pure lookup; no side effects.
func resolveOne(op string, api live.API, id string, want live.Kind) (live.Object, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return live.Object{}, &operr.ValidationError{Op: op, Msg: "id must not be empty"}
	}
	obj, ok := live.Resolve(api, id)
	if !ok {
		return live.Object{}, &operr.NotFoundError{Op: op, ID: id}
	}
	if got := obj.Kind(); got != want {
		return live.Object{}, &operr.TypeMismatchError{Op: op, ID: id, Want: string(want), Got: string(got)}
	}
	return obj, nil
}

// resolveMany resolves a comma-separated id list. With skipInvalid, ids
// that fail to resolve or mismatch the expected kind are dropped and
// reported as warnings instead of aborting the batch; the caller must
// handle the all-dropped case by warning and returning an empty result.
func resolveMany(op string, api live.API, ids string, want live.Kind, skipInvalid bool, warns *warnings) ([]live.Object, error) {
	var objs []live.Object
	dropped := 0
	for _, raw := range strings.Split(ids, ",") {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		obj, err := resolveOne(op, api, id, want)
		if err != nil {
			if skipInvalid {
				dropped++
				continue
			}
			return nil, err
		}
		objs = append(objs, obj)
	}
	if dropped > 0 {
		warns.addOnce("skipped-invalid-ids",
			fmt.Sprintf("%s: skipped %d id(s) that did not resolve to a %s; %d of %d remain",
				op, dropped, want, len(objs), dropped+len(objs)))
	}
	if len(objs) == 0 && !skipInvalid {
		return nil, &operr.ValidationError{Op: op, Msg: "ids must contain at least one id"}
	}
	return objs, nil
}
