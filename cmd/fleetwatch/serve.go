// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/acertaexpress/fleetwatch/context"
	"github.com/acertaexpress/fleetwatch/maintenance"
	"github.com/acertaexpress/fleetwatch/monitor"
	"github.com/acertaexpress/fleetwatch/server/api"
	"github.com/acertaexpress/fleetwatch/storage"
	"github.com/acertaexpress/fleetwatch/storage/servicelog"
	"github.com/acertaexpress/fleetwatch/stream"
	"github.com/acertaexpress/fleetwatch/upstream"
)

type ServeCmd struct {
	startedCb func(apiAddress string)

	UpstreamUrl   string `arg:"--upstream,env:FLEETWATCH_UPSTREAM_URL,required" help:"Base URL of the tracking server"`
	UpstreamToken string `arg:"--token,env:FLEETWATCH_UPSTREAM_TOKEN" help:"Bearer token for the tracking server"`

	Port              uint16        `default:"8080" help:"Port for the local REST API"`
	SnapshotInterval  time.Duration `default:"30s" help:"How often to poll full fleet snapshots"`
	AnalyticsInterval time.Duration `default:"5m" help:"How often to refresh scores and maintenance projections"`
	ScoreWindow       time.Duration `default:"168h" help:"Event window for driver safety scoring"`

	ServiceLogDb  string `arg:"env:FLEETWATCH_SERVICE_LOG" help:"Path to a sqlite service log used for maintenance projections"`
	RedisAddr     string `arg:"env:FLEETWATCH_REDIS_ADDR" help:"Redis address holding service markers, overrides the sqlite log"`
	RedisPassword string `arg:"env:FLEETWATCH_REDIS_PASSWORD"`
	RedisDb       int    `arg:"env:FLEETWATCH_REDIS_DB"`
}

func (c *ServeCmd) Run(args CommonArgs) error {
	client := upstream.NewClient(c.UpstreamUrl, c.UpstreamToken)
	channel := stream.NewChannel(client.SocketURL(), client.AuthHeader())

	history, closeHistory, err := c.serviceHistory(args)
	if err != nil {
		return err
	}

	opts := []monitor.Option{
		monitor.WithSnapshotInterval(c.SnapshotInterval),
		monitor.WithAnalyticsInterval(c.AnalyticsInterval),
		monitor.WithScoreWindow(c.ScoreWindow),
	}
	if history != nil {
		opts = append(opts, monitor.WithServiceHistory(history))
	}
	mon := monitor.New(args.ctx, client, channel, opts...)
	mon.Start()

	apiServer := api.NewServer(args.ctx, mon, client, c.Port)
	quitErr := make(chan error, 1)
	apiServer.Start(quitErr)

	if c.startedCb != nil {
		// Testing code, see serve_test.go
		time.Sleep(time.Millisecond * 2)
		c.startedCb(apiServer.GetAddress())
	}

	// setup channel to gracefully terminate server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err = <-quitErr:
	case <-quit:
		break
	}

	mon.Shutdown()
	apiServer.Shutdown(time.Minute)
	if closeHistory != nil {
		if cerr := closeHistory(); cerr != nil {
			context.CtxGetLog(args.ctx).Error("failed to close service history", "error", cerr)
		}
	}

	return err
}

func (c *ServeCmd) serviceHistory(args CommonArgs) (maintenance.ServiceHistoryProvider, func() error, error) {
	if c.RedisAddr != "" {
		history, err := maintenance.NewRedisHistory(args.ctx, c.RedisAddr, c.RedisPassword, c.RedisDb)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", c.RedisAddr, err)
		}
		return history, history.Close, nil
	}
	if c.ServiceLogDb != "" {
		db, err := storage.NewDb(c.ServiceLogDb)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load service log: %w", err)
		}
		log, err := servicelog.NewStorage(db)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to prepare service log: %w", err)
		}
		return log, log.Close, nil
	}
	// Fall back to service markers carried in device attributes
	return nil, nil, nil
}
