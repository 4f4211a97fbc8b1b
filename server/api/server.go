// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package api

import (
	"github.com/acertaexpress/fleetwatch/server"
)

const serverName = "fleet-api"

func NewServer(ctx Context, fleet Fleet, upstream Upstream, port uint16) server.Server {
	e := server.NewEchoServer()
	srv := server.NewServer(ctx, e, serverName, port)
	RegisterHandlers(e, fleet, upstream)
	return srv
}
