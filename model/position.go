// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package model

import "time"

// KnotsToKmh converts the upstream speed unit (knots) to km/h. The factor is
// part of the presentation contract and must not be rounded.
const KnotsToKmh = 1.852

type Position struct {
	Id         int            `json:"id"`
	DeviceId   int            `json:"deviceId"`
	Protocol   string         `json:"protocol"`
	ServerTime time.Time      `json:"serverTime"`
	DeviceTime time.Time      `json:"deviceTime"`
	FixTime    time.Time      `json:"fixTime"`
	Valid      bool           `json:"valid"`
	Latitude   float64        `json:"latitude"`
	Longitude  float64        `json:"longitude"`
	Altitude   float64        `json:"altitude"`
	Speed      float64        `json:"speed"` // knots
	Course     float64        `json:"course"`
	Address    string         `json:"address,omitempty"`
	Attributes map[string]any `json:"attributes"`
}

func (p Position) SpeedKmh() float64 {
	return p.Speed * KnotsToKmh
}

func (p Position) Attr(name string, def float64) float64 {
	return numAttr(p.Attributes, name, def)
}

func (p Position) BoolAttr(name string) bool {
	v, _ := p.Attributes[name].(bool)
	return v
}
