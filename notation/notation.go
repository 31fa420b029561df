// Package notation converts between human musical time notation and the
// host's absolute beat-time coordinate.
//
// Positions use "bar|beat" (pipe separator, 1-indexed bar, 0-indexed beat
// within the bar). Durations use "bar:beat" (colon separator, both
// components additive from zero). A "beat" in absolute time is always a
// quarter note; the beat-within-bar unit is whatever the time signature
// denominator says, so "2|0" in 6/8 is 3.0 absolute beats, not 4.0.
package notation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/adamjmurray/producer-pal-sub001/operr"
)

// BeatsPerBar returns the length of one bar in absolute (quarter-note)
// beats for the given time signature.
func BeatsPerBar(numerator, denominator int) float64 {
	return float64(numerator) * 4.0 / float64(denominator)
}

// BeatUnit returns the absolute length of one notated beat for the given
// time signature denominator.
func BeatUnit(denominator int) float64 {
	return 4.0 / float64(denominator)
}

func checkSignature(op string, numerator, denominator int) error {
	if numerator < 1 {
		return &operr.RangeError{Op: op, Field: "time signature numerator", Value: float64(numerator), Msg: "must be >= 1"}
	}
	if denominator < 1 {
		return &operr.RangeError{Op: op, Field: "time signature denominator", Value: float64(denominator), Msg: "must be >= 1"}
	}
	return nil
}

// PositionToBeats parses a "bar|beat" position into absolute beats.
// The bar is 1-indexed; the beat is 0-indexed within the bar and may be
// fractional. op names the calling operation for error messages.
func PositionToBeats(op, text string, numerator, denominator int) (float64, error) {
	if err := checkSignature(op, numerator, denominator); err != nil {
		return 0, err
	}
	bar, beat, err := splitPair(op, text, "|")
	if err != nil {
		return 0, err
	}
	if bar < 1 {
		return 0, &operr.FormatError{Op: op, Input: text, Msg: "bar must be >= 1"}
	}
	if beat < 0 {
		return 0, &operr.FormatError{Op: op, Input: text, Msg: "beat must be >= 0"}
	}
	return (bar - 1) * BeatsPerBar(numerator, denominator) + beat*BeatUnit(denominator), nil
}

// DurationToBeats parses a "bar:beat" duration into absolute beats.
// Both components are additive from zero, so "1:2" in 4/4 is 6.0 beats.
func DurationToBeats(op, text string, numerator, denominator int) (float64, error) {
	if err := checkSignature(op, numerator, denominator); err != nil {
		return 0, err
	}
	bars, beats, err := splitPair(op, text, ":")
	if err != nil {
		return 0, err
	}
	if bars < 0 {
		return 0, &operr.RangeError{Op: op, Field: "duration bars", Value: bars, Msg: "must be >= 0"}
	}
	if beats < 0 {
		return 0, &operr.RangeError{Op: op, Field: "duration beats", Value: beats, Msg: "must be >= 0"}
	}
	return bars*BeatsPerBar(numerator, denominator) + beats*BeatUnit(denominator), nil
}

// BeatsToPosition formats absolute beats as a "bar|beat" position string,
// the inverse of PositionToBeats.
func BeatsToPosition(beats float64, numerator, denominator int) string {
	barLen := BeatsPerBar(numerator, denominator)
	// Snap away floating point drift before splitting into bar and beat,
	// otherwise 7.9999999 beats in 4/4 renders as "2|4" instead of "3|0".
	beats = math.Round(beats*1e6) / 1e6
	bar := math.Floor(beats / barLen)
	within := math.Round((beats-bar*barLen)/BeatUnit(denominator)*1000) / 1000
	if within >= float64(numerator) {
		bar++
		within = 0
	}
	return fmt.Sprintf("%d|%s", int(bar)+1, formatBeat(within))
}

// BeatsToDuration formats absolute beats as a "bar:beat" duration string.
func BeatsToDuration(beats float64, numerator, denominator int) string {
	barLen := BeatsPerBar(numerator, denominator)
	beats = math.Round(beats*1e6) / 1e6
	bars := math.Floor(beats / barLen)
	within := math.Round((beats-bars*barLen)/BeatUnit(denominator)*1000) / 1000
	if within >= float64(numerator) {
		bars++
		within = 0
	}
	return fmt.Sprintf("%d:%s", int(bars), formatBeat(within))
}

func splitPair(op, text, sep string) (float64, float64, error) {
	parts := strings.Split(strings.TrimSpace(text), sep)
	if len(parts) != 2 {
		return 0, 0, &operr.FormatError{Op: op, Input: text, Msg: fmt.Sprintf("expected two components separated by %q", sep)}
	}
	first, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, &operr.FormatError{Op: op, Input: text, Msg: "first component is not a number"}
	}
	second, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, &operr.FormatError{Op: op, Input: text, Msg: "second component is not a number"}
	}
	return first, second, nil
}

// formatBeat renders a beat component without trailing zeros, rounded to
// three decimals to match the precision the host reports.
func formatBeat(v float64) string {
	v = math.Round(v*1000) / 1000
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return s
}
