// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

// Package state owns the canonical in-memory view of the fleet: the device
// roster and the latest-known position per device. Full REST snapshots replace
// the collections wholesale; push deltas are merged by key with
// replace-or-append semantics, so applying the same delta twice is a no-op.
package state

import (
	"sync"
	"time"

	"github.com/acertaexpress/fleetwatch/model"
)

// MergePolicy decides whether an incoming delta supersedes the entry it
// collides with, given the server-reported timestamps of both. The default is
// last-applied-wins: the push channel delivers at most once per reporting
// interval and reordering across hops is accepted as a simplification. Swap in
// ServerTimeWins when the transport cannot guarantee rough ordering.
type MergePolicy func(existing, incoming time.Time) bool

func LastAppliedWins(existing, incoming time.Time) bool {
	return true
}

func ServerTimeWins(existing, incoming time.Time) bool {
	return !incoming.Before(existing)
}

// Reconciler serializes all mutations behind a mutex: snapshot replace and
// delta apply arrive from independent goroutines (poll timer, stream reader)
// and must not interleave partially.
type Reconciler struct {
	mu          sync.RWMutex
	devices     []model.Device
	positions   []model.Position
	deviceIdx   map[int]int // device id -> slice index
	positionIdx map[int]int // device id -> slice index
	merge       MergePolicy
}

type Option func(*Reconciler)

// WithMergePolicy replaces the default last-applied-wins delta policy.
func WithMergePolicy(p MergePolicy) Option {
	return func(r *Reconciler) { r.merge = p }
}

func NewReconciler(opts ...Option) *Reconciler {
	r := &Reconciler{
		deviceIdx:   map[int]int{},
		positionIdx: map[int]int{},
		merge:       LastAppliedWins,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ApplySnapshot replaces both collections wholesale. Entities absent from the
// snapshot are dropped. The replacement is atomic with respect to readers.
func (r *Reconciler) ApplySnapshot(devices []model.Device, positions []model.Position) {
	newDevices := make([]model.Device, 0, len(devices))
	deviceIdx := make(map[int]int, len(devices))
	for _, d := range devices {
		if d.Id == 0 {
			continue
		}
		if i, ok := deviceIdx[d.Id]; ok {
			newDevices[i] = d
			continue
		}
		deviceIdx[d.Id] = len(newDevices)
		newDevices = append(newDevices, d)
	}

	newPositions := make([]model.Position, 0, len(positions))
	positionIdx := make(map[int]int, len(positions))
	for _, p := range positions {
		if p.DeviceId == 0 {
			continue
		}
		if i, ok := positionIdx[p.DeviceId]; ok {
			newPositions[i] = p
			continue
		}
		positionIdx[p.DeviceId] = len(newPositions)
		newPositions = append(newPositions, p)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices = newDevices
	r.deviceIdx = deviceIdx
	r.positions = newPositions
	r.positionIdx = positionIdx
}

// ApplyDelta merges a push batch. A delta for a known key replaces the entry
// in place, keeping its slot in iteration order; an unknown key appends.
// Entries with a missing key are dropped one by one and never abort the rest
// of the batch.
func (r *Reconciler) ApplyDelta(devices []model.Device, positions []model.Position) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range devices {
		if d.Id == 0 {
			continue
		}
		if i, ok := r.deviceIdx[d.Id]; ok {
			if r.merge(r.devices[i].LastUpdate, d.LastUpdate) {
				r.devices[i] = d
			}
			continue
		}
		r.deviceIdx[d.Id] = len(r.devices)
		r.devices = append(r.devices, d)
	}

	for _, p := range positions {
		if p.DeviceId == 0 {
			continue
		}
		if i, ok := r.positionIdx[p.DeviceId]; ok {
			if r.merge(r.positions[i].ServerTime, p.ServerTime) {
				r.positions[i] = p
			}
			continue
		}
		r.positionIdx[p.DeviceId] = len(r.positions)
		r.positions = append(r.positions, p)
	}
}

// Devices returns a copy of the current device roster in iteration order.
func (r *Reconciler) Devices() []model.Device {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Device, len(r.devices))
	copy(out, r.devices)
	return out
}

// Positions returns a copy of the latest-known fixes in iteration order.
func (r *Reconciler) Positions() []model.Position {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Position, len(r.positions))
	copy(out, r.positions)
	return out
}

// Snapshot captures both collections under a single lock, so the analytics
// engines run against a mutually consistent state value.
func (r *Reconciler) Snapshot() ([]model.Device, []model.Position) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	devices := make([]model.Device, len(r.devices))
	copy(devices, r.devices)
	positions := make([]model.Position, len(r.positions))
	copy(positions, r.positions)
	return devices, positions
}

// Device looks up a device by id.
func (r *Reconciler) Device(id int) (model.Device, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i, ok := r.deviceIdx[id]; ok {
		return r.devices[i], true
	}
	return model.Device{}, false
}

// Position looks up the latest fix for a device.
func (r *Reconciler) Position(deviceId int) (model.Position, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i, ok := r.positionIdx[deviceId]; ok {
		return r.positions[i], true
	}
	return model.Position{}, false
}
