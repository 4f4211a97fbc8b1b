// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/acertaexpress/fleetwatch/model"
)

// @Summary List devices with their current status
// @Produce json
// @Success 200 {array} model.Device
// @Router  /v1/devices [get]
func (h *handlers) deviceList(c echo.Context) error {
	return c.JSON(http.StatusOK, h.fleet.Devices())
}

// @Summary List last known positions
// @Produce json
// @Success 200 {array} model.Position
// @Router  /v1/positions [get]
func (h *handlers) positionList(c echo.Context) error {
	return c.JSON(http.StatusOK, h.fleet.Positions())
}

type scoreReport struct {
	Average     float64             `json:"average"`
	Scores      []model.DriverScore `json:"scores"`
	RefreshedAt time.Time           `json:"refreshedAt"`
}

// @Summary Driver safety scorecard, best drivers first
// @Produce json
// @Success 200 {object} scoreReport
// @Router  /v1/scores [get]
func (h *handlers) scoreList(c echo.Context) error {
	scores, average := h.fleet.Scores()
	return c.JSON(http.StatusOK, scoreReport{
		Average:     average,
		Scores:      scores,
		RefreshedAt: h.fleet.RefreshedAt(),
	})
}

// @Summary Projected maintenance status per device and rule
// @Produce json
// @Success 200 {array} model.MaintenanceStatus
// @Router  /v1/maintenance [get]
func (h *handlers) maintenanceList(c echo.Context) error {
	return c.JSON(http.StatusOK, h.fleet.Maintenance())
}
