// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package main

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"

	"github.com/acertaexpress/fleetwatch/context"
)

type CommonArgs struct {
	LogLevel string `default:"info" help:"Log level: debug, info, warn, error"`

	Serve *ServeCmd `arg:"subcommand:serve" help:"Run the fleet monitor and its local REST API"`

	ctx context.Context
}

func main() {
	// Optional .env for local development, real deployments set the
	// environment directly.
	_ = godotenv.Load()

	var args CommonArgs
	p := arg.MustParse(&args)

	log, err := context.InitLogger(args.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
		return
	}
	args.ctx = context.CtxWithLog(context.Background(), log)

	switch {
	case args.Serve != nil:
		err = args.Serve.Run(args)
	default:
		p.Fail("missing required subcommand")
	}
	if err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}
