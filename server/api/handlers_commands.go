// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/acertaexpress/fleetwatch/server"
)

type commandRequest struct {
	Type string `json:"type"`
}

// @Summary Dispatch a command to a device
// @Param   _ body commandRequest true "Command type"
// @Accept  json
// @Produce json
// @Success 202
// @Router  /v1/devices/{id}/commands [post]
func (h *handlers) deviceCommand(c echo.Context) error {
	deviceId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return server.EchoError(c, err, http.StatusBadRequest, "Invalid device id")
	}
	var req commandRequest
	if err := c.Bind(&req); err != nil {
		return server.EchoError(c, err, http.StatusBadRequest, "Failed to parse command")
	}
	// Any non-empty type is forwarded as-is; the upstream server owns the
	// command vocabulary and rejects what it does not support.
	if req.Type == "" {
		return server.EchoError(c, nil, http.StatusBadRequest, "Command type is required")
	}

	if err := h.upstream.SendCommand(deviceId, req.Type); err != nil {
		// A rejected dispatch is surfaced, never swallowed
		return server.EchoError(c, err, http.StatusBadGateway, "Command dispatch failed")
	}
	log := CtxGetLog(c.Request().Context())
	log.Info("command dispatched", "device", deviceId, "type", req.Type)
	return c.NoContent(http.StatusAccepted)
}
