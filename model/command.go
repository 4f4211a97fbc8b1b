// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package model

// Command types the dashboard exposes. Dispatch accepts any type string the
// upstream server understands; these are the ones wired to operator actions.
const (
	CommandEngineStop   = "engineStop"
	CommandEngineResume = "engineResume"
)

type Command struct {
	Id          int            `json:"id,omitempty"`
	DeviceId    int            `json:"deviceId"`
	Type        string         `json:"type"`
	Description string         `json:"description,omitempty"`
	Attributes  map[string]any `json:"attributes"`
}

// StreamMessage is the push channel frame: either list may be absent.
type StreamMessage struct {
	Devices   []Device   `json:"devices,omitempty"`
	Positions []Position `json:"positions,omitempty"`
}
