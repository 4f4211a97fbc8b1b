// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/acertaexpress/fleetwatch/server"
)

type routeOpts struct {
	From time.Time `query:"from"`
	To   time.Time `query:"to"`
}

// @Summary Historical route for a device over a time range
// @Param   _ query routeOpts true "Time range"
// @Produce json
// @Success 200 {array} model.Position
// @Router  /v1/devices/{id}/route [get]
func (h *handlers) deviceRoute(c echo.Context) error {
	deviceId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return server.EchoError(c, err, http.StatusBadRequest, "Invalid device id")
	}
	var opts routeOpts
	if err := c.Bind(&opts); err != nil {
		return server.EchoError(c, err, http.StatusBadRequest, "Failed to parse time range")
	}
	if opts.From.IsZero() || opts.To.IsZero() || opts.To.Before(opts.From) {
		return server.EchoError(c, nil, http.StatusBadRequest, "Route requires a valid from/to range")
	}

	key := fmt.Sprintf("%d:%d:%d", deviceId, opts.From.Unix(), opts.To.Unix())
	if route, ok := h.routes.Get(key); ok {
		return c.JSON(http.StatusOK, route)
	}

	route, err := h.upstream.Route(deviceId, opts.From, opts.To)
	if err != nil {
		return server.EchoError(c, err, http.StatusBadGateway, "Failed to fetch route")
	}
	h.routes.Set(key, route, 0)
	return c.JSON(http.StatusOK, route)
}
