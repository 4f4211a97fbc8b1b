// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package api

import (
	"time"

	cache "github.com/go-pkgz/expirable-cache/v3"
	"github.com/labstack/echo/v4"

	"github.com/acertaexpress/fleetwatch/model"
)

const (
	routeCacheTtl  = time.Minute
	routeCacheSize = 256
)

// Fleet is the read side of the reconciled state plus derived analytics.
type Fleet interface {
	Devices() []model.Device
	Positions() []model.Position
	Scores() ([]model.DriverScore, float64)
	Maintenance() []model.MaintenanceStatus
	RefreshedAt() time.Time
}

// Upstream covers the calls that must go to the remote server on demand
// instead of being served from local state.
type Upstream interface {
	Route(deviceId int, from, to time.Time) ([]model.Position, error)
	SendCommand(deviceId int, commandType string) error
}

type handlers struct {
	fleet    Fleet
	upstream Upstream
	routes   cache.Cache[string, []model.Position]
}

func RegisterHandlers(e *echo.Echo, fleet Fleet, upstream Upstream) {
	h := handlers{
		fleet:    fleet,
		upstream: upstream,
		routes:   cache.NewCache[string, []model.Position]().WithMaxKeys(routeCacheSize).WithTTL(routeCacheTtl),
	}

	v1 := e.Group("/v1")
	v1.GET("/devices", h.deviceList)
	v1.GET("/positions", h.positionList)
	v1.GET("/devices/:id/route", h.deviceRoute)
	v1.POST("/devices/:id/commands", h.deviceCommand)
	v1.GET("/scores", h.scoreList)
	v1.GET("/maintenance", h.maintenanceList)
}
