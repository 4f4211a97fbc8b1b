// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package model

// Maintenance is a service-interval definition. Rules are currently applied
// globally to every device rather than linked per-device.
type Maintenance struct {
	Id         int            `json:"id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Start      float64        `json:"start"`
	Period     float64        `json:"period"` // km for distance-based rules
	Attributes map[string]any `json:"attributes"`
}

type Severity string

const (
	SeverityGood     Severity = "good"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// MaintenanceStatus is a derived projection, recomputed per pass and never
// persisted.
type MaintenanceStatus struct {
	MaintenanceId int      `json:"maintenanceId"`
	DeviceId      int      `json:"deviceId"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Status        Severity `json:"status"`
	OdometerKm    float64  `json:"odometerKm"`
	LastService   float64  `json:"lastService"`
	NextService   float64  `json:"nextService"`
	Remaining     float64  `json:"remaining"`
}
