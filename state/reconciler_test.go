// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/acertaexpress/fleetwatch/model"
)

func device(id int, name string) model.Device {
	return model.Device{Id: id, Name: name, UniqueId: name, Status: model.StatusOnline}
}

func position(deviceId int, lat float64) model.Position {
	return model.Position{Id: deviceId * 100, DeviceId: deviceId, Latitude: lat}
}

func TestApplySnapshotIsTotal(t *testing.T) {
	r := NewReconciler()
	r.ApplySnapshot(
		[]model.Device{device(1, "a"), device(2, "b"), device(3, "c")},
		[]model.Position{position(1, 10), position(2, 20)},
	)

	// A later snapshot drops everything not in it, regardless of prior state.
	r.ApplySnapshot(
		[]model.Device{device(2, "b2"), device(4, "d")},
		[]model.Position{position(4, 40)},
	)

	devices := r.Devices()
	require.Len(t, devices, 2)
	require.Equal(t, []int{2, 4}, []int{devices[0].Id, devices[1].Id})
	require.Equal(t, "b2", devices[0].Name)

	positions := r.Positions()
	require.Len(t, positions, 1)
	require.Equal(t, 4, positions[0].DeviceId)

	_, ok := r.Device(1)
	require.False(t, ok)
}

func TestApplySnapshotEmpty(t *testing.T) {
	r := NewReconciler()
	r.ApplySnapshot([]model.Device{device(1, "a")}, []model.Position{position(1, 10)})
	r.ApplySnapshot(nil, nil)
	require.Empty(t, r.Devices())
	require.Empty(t, r.Positions())
}

func TestApplyDeltaAppendThenReplaceInPlace(t *testing.T) {
	r := NewReconciler()
	r.ApplySnapshot([]model.Device{device(1, "a"), device(2, "b")}, nil)

	// Unknown key appends.
	r.ApplyDelta([]model.Device{device(7, "new")}, nil)
	devices := r.Devices()
	require.Equal(t, []int{1, 2, 7}, []int{devices[0].Id, devices[1].Id, devices[2].Id})

	// Known key replaces in place, keeping the same slot in iteration order.
	r.ApplyDelta([]model.Device{device(7, "renamed")}, nil)
	devices = r.Devices()
	require.Len(t, devices, 3)
	require.Equal(t, []int{1, 2, 7}, []int{devices[0].Id, devices[1].Id, devices[2].Id})
	require.Equal(t, "renamed", devices[2].Name)
}

func TestApplyDeltaIsIdempotent(t *testing.T) {
	r := NewReconciler()
	r.ApplySnapshot([]model.Device{device(1, "a")}, []model.Position{position(1, 10)})

	devices := []model.Device{device(1, "a2"), device(5, "e")}
	positions := []model.Position{position(1, 11), position(5, 50)}

	r.ApplyDelta(devices, positions)
	onceDevices, oncePositions := r.Snapshot()

	r.ApplyDelta(devices, positions)
	twiceDevices, twicePositions := r.Snapshot()

	require.Equal(t, onceDevices, twiceDevices)
	require.Equal(t, oncePositions, twicePositions)
}

func TestApplyDeltaDropsMalformedEntries(t *testing.T) {
	r := NewReconciler()
	r.ApplyDelta(
		[]model.Device{{Name: "no id"}, device(3, "ok")},
		[]model.Position{{Latitude: 1}, position(3, 30)},
	)
	require.Len(t, r.Devices(), 1)
	require.Len(t, r.Positions(), 1)
	require.Equal(t, 3, r.Devices()[0].Id)
}

func TestApplyDeltaDoesNotReorderUnrelatedEntries(t *testing.T) {
	r := NewReconciler()
	r.ApplySnapshot(nil, []model.Position{position(1, 10), position(2, 20), position(3, 30)})

	r.ApplyDelta(nil, []model.Position{position(2, 21)})
	positions := r.Positions()
	require.Equal(t, []int{1, 2, 3}, []int{positions[0].DeviceId, positions[1].DeviceId, positions[2].DeviceId})
	require.Equal(t, 21.0, positions[1].Latitude)
}

func TestLastAppliedWinsAcceptsStaleDelta(t *testing.T) {
	r := NewReconciler()
	now := time.Now()

	fresh := position(1, 10)
	fresh.ServerTime = now
	stale := position(1, 99)
	stale.ServerTime = now.Add(-time.Minute)

	r.ApplyDelta(nil, []model.Position{fresh})
	r.ApplyDelta(nil, []model.Position{stale})
	p, ok := r.Position(1)
	require.True(t, ok)
	require.Equal(t, 99.0, p.Latitude)
}

func TestServerTimeWinsRejectsStaleDelta(t *testing.T) {
	r := NewReconciler(WithMergePolicy(ServerTimeWins))
	now := time.Now()

	fresh := position(1, 10)
	fresh.ServerTime = now
	stale := position(1, 99)
	stale.ServerTime = now.Add(-time.Minute)

	r.ApplyDelta(nil, []model.Position{fresh})
	r.ApplyDelta(nil, []model.Position{stale})
	p, ok := r.Position(1)
	require.True(t, ok)
	require.Equal(t, 10.0, p.Latitude)

	// Equal timestamps still replace: at-least-as-new wins.
	same := position(1, 55)
	same.ServerTime = now
	r.ApplyDelta(nil, []model.Position{same})
	p, _ = r.Position(1)
	require.Equal(t, 55.0, p.Latitude)
}

func TestSnapshotReadersSeeConsistentPair(t *testing.T) {
	r := NewReconciler()
	r.ApplySnapshot([]model.Device{device(1, "a")}, []model.Position{position(1, 10)})
	devices, positions := r.Snapshot()
	require.Len(t, devices, 1)
	require.Len(t, positions, 1)

	// Mutating the returned copies must not leak into the reconciler.
	devices[0].Name = "mutated"
	positions[0].Latitude = -1
	require.Equal(t, "a", r.Devices()[0].Name)
	require.Equal(t, 10.0, r.Positions()[0].Latitude)
}
