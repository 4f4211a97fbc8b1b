// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package api

import (
	"fmt"
	"time"

	"github.com/acertaexpress/fleetwatch/model"
)

type ScoreReport struct {
	Average     float64             `json:"average"`
	Scores      []model.DriverScore `json:"scores"`
	RefreshedAt time.Time           `json:"refreshedAt"`
}

func (a Api) Devices() ([]model.Device, error) {
	var devices []model.Device
	err := a.Get("/v1/devices", &devices)
	return devices, err
}

func (a Api) Positions() ([]model.Position, error) {
	var positions []model.Position
	err := a.Get("/v1/positions", &positions)
	return positions, err
}

func (a Api) Scores() (ScoreReport, error) {
	var report ScoreReport
	err := a.Get("/v1/scores", &report)
	return report, err
}

func (a Api) Maintenance() ([]model.MaintenanceStatus, error) {
	var statuses []model.MaintenanceStatus
	err := a.Get("/v1/maintenance", &statuses)
	return statuses, err
}

func (a Api) SendCommand(deviceId int, commandType string) error {
	body := map[string]string{"type": commandType}
	return a.Post(fmt.Sprintf("/v1/devices/%d/commands", deviceId), body)
}
