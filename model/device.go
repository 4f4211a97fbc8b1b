// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package model

import "time"

// Device connectivity status values as reported by the upstream server.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
	StatusUnknown = "unknown"
)

// Well-known device attribute keys.
const (
	AttrTotalDistance = "totalDistance" // cumulative odometer, meters
	AttrHours         = "hours"
)

type Device struct {
	Id         int            `json:"id"`
	Name       string         `json:"name"`
	UniqueId   string         `json:"uniqueId"`
	Status     string         `json:"status"`
	Disabled   bool           `json:"disabled"`
	LastUpdate time.Time      `json:"lastUpdate"`
	PositionId int            `json:"positionId"`
	GroupId    int            `json:"groupId"`
	Phone      string         `json:"phone"`
	Model      string         `json:"model"`
	Contact    string         `json:"contact"`
	Category   string         `json:"category"`
	Attributes map[string]any `json:"attributes"`
}

// Attr returns a numeric attribute from the open attribute bag, or def when
// absent or not a number. JSON decoding always yields float64 for numbers,
// but integers are accepted too since attributes may be built in code.
func (d Device) Attr(name string, def float64) float64 {
	return numAttr(d.Attributes, name, def)
}

func numAttr(attrs map[string]any, name string, def float64) float64 {
	switch v := attrs[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}
