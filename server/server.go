// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package server

import "time"

type Server interface {
	// Start the server in the background. A failure to start is reported
	// on the quit channel.
	Start(quit chan error)
	// Shutdown the server gracefully, waiting up to timeout for in-flight
	// requests to complete.
	Shutdown(timeout time.Duration)
	// GetAddress returns the address the server is listening on, or an
	// empty string if it failed to start.
	GetAddress() string
}
