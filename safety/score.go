// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

// Package safety computes the per-device driver scorecard from behavioral
// events. The computation is pure and deterministic: same roster, same events,
// same window, same output.
package safety

import (
	"slices"
	"time"

	"github.com/acertaexpress/fleetwatch/model"
)

// DefaultWindow is the trailing range scored when the caller does not pick one.
const DefaultWindow = 7 * 24 * time.Hour

const baseScore = 100

// Penalty per event type. Unrecognized types count towards TotalEvents but
// carry no penalty.
var penalties = map[string]int{
	model.EventOverspeed:        10,
	model.EventHardBraking:      5,
	model.EventHardAcceleration: 5,
	model.EventHardCornering:    5,
}

// Window bounds the events considered for scoring. A zero bound is open.
type Window struct {
	From time.Time
	To   time.Time
}

// TrailingWindow returns the window ending now and spanning d back.
func TrailingWindow(d time.Duration) Window {
	now := time.Now()
	return Window{From: now.Add(-d), To: now}
}

func (w Window) Contains(t time.Time) bool {
	if !w.From.IsZero() && t.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && t.After(w.To) {
		return false
	}
	return true
}

// Scores computes a score for every device in the roster, 100 down to a floor
// of 0, and ranks the result descending by score. Devices with no events keep
// the base score with a zero-filled breakdown. Ties keep the relative order of
// the input roster: the ranking is shown to operators, so the tie-break must
// be stable, not incidental.
func Scores(devices []model.Device, events []model.Event, window Window) []model.DriverScore {
	type tally struct {
		penalty   int
		total     int
		breakdown model.ScoreBreakdown
	}
	tallies := make(map[int]*tally, len(devices))
	for _, d := range devices {
		tallies[d.Id] = &tally{}
	}

	for _, e := range events {
		t, ok := tallies[e.DeviceId]
		if !ok || !window.Contains(e.ServerTime) {
			continue
		}
		t.total++
		t.penalty += penalties[e.Type]
		switch e.Type {
		case model.EventOverspeed:
			t.breakdown.Overspeed++
		case model.EventHardBraking:
			t.breakdown.HardBraking++
		case model.EventHardAcceleration:
			t.breakdown.HardAcceleration++
		case model.EventHardCornering:
			t.breakdown.HardCornering++
		}
	}

	scores := make([]model.DriverScore, 0, len(devices))
	for _, d := range devices {
		t := tallies[d.Id]
		scores = append(scores, model.DriverScore{
			DeviceId:    d.Id,
			DeviceName:  d.Name,
			Score:       max(0, baseScore-t.penalty),
			TotalEvents: t.total,
			Breakdown:   t.breakdown,
		})
	}

	slices.SortStableFunc(scores, func(a, b model.DriverScore) int {
		return b.Score - a.Score
	})
	return scores
}

// FleetAverage is the mean score across the fleet, 0 for an empty fleet.
func FleetAverage(scores []model.DriverScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum int
	for _, s := range scores {
		sum += s.Score
	}
	return float64(sum) / float64(len(scores))
}
