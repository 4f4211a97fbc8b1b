// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package upstream

import (
	"fmt"
	"net/url"
	"time"

	"github.com/acertaexpress/fleetwatch/model"
)

// Devices fetches the full current device roster.
func (a Api) Devices() ([]model.Device, error) {
	var devices []model.Device
	err := a.Get("/api/devices", &devices)
	return devices, err
}

// Positions fetches the full current position set, one latest fix per device.
func (a Api) Positions() ([]model.Position, error) {
	var positions []model.Position
	err := a.Get("/api/positions", &positions)
	return positions, err
}

// Route fetches the time-ordered position history of one device over a closed
// range. The result renders a path and is never merged into live state.
func (a Api) Route(deviceId int, from, to time.Time) ([]model.Position, error) {
	var positions []model.Position
	err := a.Get(fmt.Sprintf("/api/positions?%s", rangeQuery(deviceId, from, to)), &positions)
	return positions, err
}

// Events fetches behavioral events over a closed range, unordered. A deviceId
// of 0 means all accessible devices, per upstream convention.
func (a Api) Events(deviceId int, from, to time.Time) ([]model.Event, error) {
	var events []model.Event
	err := a.Get(fmt.Sprintf("/api/reports/events?%s", rangeQuery(deviceId, from, to)), &events)
	return events, err
}

// MaintenanceList fetches the globally applied service-interval definitions.
func (a Api) MaintenanceList() ([]model.Maintenance, error) {
	var rules []model.Maintenance
	err := a.Get("/api/maintenance", &rules)
	return rules, err
}

// SendCommand dispatches a device command, fire-and-forget: no acknowledgement
// state is tracked, the error only reports whether the server accepted it.
func (a Api) SendCommand(deviceId int, commandType string) error {
	cmd := model.Command{
		DeviceId:   deviceId,
		Type:       commandType,
		Attributes: map[string]any{},
	}
	return a.Post("/api/commands/send", cmd, nil)
}

func rangeQuery(deviceId int, from, to time.Time) string {
	q := url.Values{}
	q.Set("deviceId", fmt.Sprint(deviceId))
	q.Set("from", from.UTC().Format(time.RFC3339))
	q.Set("to", to.UTC().Format(time.RFC3339))
	return q.Encode()
}
