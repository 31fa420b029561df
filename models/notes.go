// Package models holds the wire-shaped data exchanged with the host and
// returned to tool callers.
package models

import "encoding/json"

// Note is one MIDI note as exchanged with the host's batch note verbs.
// Field names follow the host's JSON contract.
type Note struct {
	NoteID            int     `json:"note_id,omitempty"`
	Pitch             int     `json:"pitch"`
	StartTime         float64 `json:"start_time"`
	Duration          float64 `json:"duration"`
	Velocity          float64 `json:"velocity"`
	Mute              bool    `json:"mute"`
	Probability       float64 `json:"probability"`
	VelocityDeviation float64 `json:"velocity_deviation"`
}

// NotesPayload is the envelope the host uses for note batches; every batch
// read or write goes through a single JSON document with a "notes" key.
type NotesPayload struct {
	Notes []Note `json:"notes"`
}

// ParseNotes decodes a host note batch.
func ParseNotes(data string) ([]Note, error) {
	var payload NotesPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, err
	}
	return payload.Notes, nil
}

// EncodeNotes encodes a note batch for the host.
func EncodeNotes(notes []Note) (string, error) {
	data, err := json.Marshal(NotesPayload{Notes: notes})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RoutingType is one entry of a track's available routing lists.
type RoutingType struct {
	DisplayName string `json:"display_name"`
	Identifier  int    `json:"identifier"`
}

// ParseRoutingType decodes a single routing assignment property value.
func ParseRoutingType(data string) (RoutingType, error) {
	var rt RoutingType
	if err := json.Unmarshal([]byte(data), &rt); err != nil {
		return RoutingType{}, err
	}
	return rt, nil
}

// ParseRoutingTypes decodes a routing list property value.
func ParseRoutingTypes(data string) ([]RoutingType, error) {
	var types []RoutingType
	if err := json.Unmarshal([]byte(data), &types); err != nil {
		return nil, err
	}
	return types, nil
}

// EncodeRoutingType encodes a single routing assignment for a set call.
func EncodeRoutingType(rt RoutingType) (string, error) {
	data, err := json.Marshal(rt)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
