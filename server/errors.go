// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package server

import (
	"github.com/labstack/echo/v4"

	"github.com/acertaexpress/fleetwatch/context"
)

// EchoError logs the underlying error and returns an HTTP error carrying
// only the public message, so internals never leak into responses.
func EchoError(c echo.Context, err error, status int, message string) error {
	log := context.CtxGetLog(c.Request().Context())
	if err != nil {
		log.Error(message, "error", err)
	} else {
		log.Error(message)
	}
	return echo.NewHTTPError(status, message)
}
