// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package model

import "time"

// Behavioral event types consumed by the safety scoring engine. The upstream
// server emits many more; anything not listed here carries no penalty.
const (
	EventOverspeed        = "deviceOverspeed"
	EventHardBraking      = "hardBraking"
	EventHardAcceleration = "hardAcceleration"
	EventHardCornering    = "hardCornering"
)

type Event struct {
	Id            int            `json:"id"`
	Type          string         `json:"type"`
	ServerTime    time.Time      `json:"serverTime"`
	DeviceId      int            `json:"deviceId"`
	PositionId    int            `json:"positionId"`
	GeofenceId    int            `json:"geofenceId"`
	MaintenanceId int            `json:"maintenanceId"`
	Attributes    map[string]any `json:"attributes"`
}

// DriverScore is recomputed from scratch on every scoring pass; it is never
// persisted or incrementally updated.
type DriverScore struct {
	DeviceId    int            `json:"deviceId"`
	DeviceName  string         `json:"deviceName"`
	Score       int            `json:"score"`
	TotalEvents int            `json:"totalEvents"`
	Breakdown   ScoreBreakdown `json:"breakdown"`
}

type ScoreBreakdown struct {
	Overspeed        int `json:"overspeed"`
	HardBraking      int `json:"hardBraking"`
	HardAcceleration int `json:"hardAcceleration"`
	HardCornering    int `json:"hardCornering"`
}
