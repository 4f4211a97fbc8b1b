// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"github.com/acertaexpress/fleetwatch/context"
)

const requestIdLength = 12

func NewEchoServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(requestContext())
	e.Use(requestLogger())
	return e
}

// requestContext tags every request with an id and scopes the context logger
// to it, so handler logs and the response log line carry the same id.
func requestContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := req.Context()

			rid := req.Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = random.String(requestIdLength)
			}
			c.Response().Header().Set(echo.HeaderXRequestID, rid)

			log := context.CtxGetLog(ctx).With("req_id", rid, "uri", req.RequestURI)
			c.SetRequest(req.WithContext(context.CtxWithLog(ctx, log)))
			return next(c)
		}
	}
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		// Errors are forwarded to the global handler, which owns the status.
		HandleError:      true,
		LogContentLength: true,
		LogError:         true,
		LogLatency:       true,
		LogMethod:        true,
		LogStatus:        true,
		LogURI:           true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log := context.CtxGetLog(c.Request().Context())
			args := []any{
				"method", v.Method,
				"status", v.Status,
				"content-length", v.ContentLength,
				"latency", v.Latency.String(),
			}
			if v.Error != nil {
				log.Error("response", append(args, "err", v.Error.Error())...)
			} else {
				log.Info("response", args...)
			}
			return nil
		},
	})
}
