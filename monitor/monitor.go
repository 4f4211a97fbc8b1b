// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

// Package monitor drives the reconciliation loop: a periodic REST snapshot
// poll, the push channel subscription feeding deltas in between polls, and a
// periodic analytics pass deriving the scorecard and maintenance projection
// from whatever state is currently reconciled.
package monitor

import (
	"log/slog"
	"sync"
	"time"

	"github.com/acertaexpress/fleetwatch/context"
	"github.com/acertaexpress/fleetwatch/maintenance"
	"github.com/acertaexpress/fleetwatch/model"
	"github.com/acertaexpress/fleetwatch/safety"
	"github.com/acertaexpress/fleetwatch/state"
	"github.com/acertaexpress/fleetwatch/stream"
	"github.com/acertaexpress/fleetwatch/upstream"
)

type daemonFunc func(stop chan bool)

type Option func(*Monitor)

type pollOptions struct {
	snapshot  time.Duration
	analytics time.Duration
	window    time.Duration
}

// WithSnapshotInterval sets the REST re-snapshot period.
func WithSnapshotInterval(interval time.Duration) Option {
	return func(m *Monitor) { m.pollOptions.snapshot = interval }
}

// WithAnalyticsInterval sets the scoring/projection recompute period.
func WithAnalyticsInterval(interval time.Duration) Option {
	return func(m *Monitor) { m.pollOptions.analytics = interval }
}

// WithScoreWindow sets the trailing event range considered for scoring.
func WithScoreWindow(window time.Duration) Option {
	return func(m *Monitor) { m.pollOptions.window = window }
}

// WithServiceHistory replaces the attribute-bag last-service source.
func WithServiceHistory(history maintenance.ServiceHistoryProvider) Option {
	return func(m *Monitor) { m.history = history }
}

type Monitor struct {
	context context.Context
	api     *upstream.Api
	channel *stream.Channel
	state   *state.Reconciler
	history maintenance.ServiceHistoryProvider

	pollOptions pollOptions
	daemons     []daemonFunc
	stops       []chan bool
	unsubscribe func()

	mu        sync.RWMutex
	scores    []model.DriverScore
	average   float64
	statuses  []model.MaintenanceStatus
	refreshed time.Time
}

// New builds a monitor around the upstream API and an optional push channel.
// The channel is owned by the caller but its subscription lifecycle is
// managed here: Start subscribes and opens, Shutdown deregisters and closes.
func New(ctx context.Context, api *upstream.Api, channel *stream.Channel, opts ...Option) *Monitor {
	m := &Monitor{
		context: ctx,
		api:     api,
		channel: channel,
		state:   state.NewReconciler(),
		history: maintenance.AttributeHistory{},
	}
	m.pollOptions = pollOptions{
		snapshot:  10 * time.Second,
		analytics: time.Minute,
		window:    safety.DefaultWindow,
	}
	m.daemons = []daemonFunc{
		m.snapshotPoller(),
		m.analyticsRefresher(),
	}

	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Monitor) Start() {
	if m.channel != nil {
		m.unsubscribe = m.channel.Subscribe(func(msg model.StreamMessage) {
			m.state.ApplyDelta(msg.Devices, msg.Positions)
		})
		m.channel.Open(m.context)
	}
	for _, f := range m.daemons {
		stop := make(chan bool)
		m.stops = append(m.stops, stop)
		go f(stop)
	}
}

// Shutdown deregisters the delta listener and signals the daemons to stop.
// The stop channels are closed rather than sent on, so Shutdown returns even
// while a daemon is mid-fetch; the daemon exits once its fetch resolves.
func (m *Monitor) Shutdown() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	for _, s := range m.stops {
		close(s)
	}
	m.stops = nil
	if m.channel != nil {
		m.channel.Close()
	}
}

func (m *Monitor) snapshotPoller() daemonFunc {
	return func(stop chan bool) {
		log := context.CtxGetLog(m.context)
		for {
			m.refreshSnapshot(log)
			select {
			case <-stop:
				return
			case <-time.After(m.pollOptions.snapshot):
			}
		}
	}
}

func (m *Monitor) analyticsRefresher() daemonFunc {
	return func(stop chan bool) {
		log := context.CtxGetLog(m.context)
		for {
			m.refreshAnalytics(log)
			select {
			case <-stop:
				return
			case <-time.After(m.pollOptions.analytics):
			}
		}
	}
}

func (m *Monitor) refreshSnapshot(log *slog.Logger) {
	devices, err := m.api.Devices()
	if err != nil {
		// Keep the previously reconciled state on any fetch failure.
		log.Error("failed to fetch device snapshot", "error", err)
		return
	}
	positions, err := m.api.Positions()
	if err != nil {
		log.Error("failed to fetch position snapshot", "error", err)
		return
	}
	m.state.ApplySnapshot(devices, positions)
}

func (m *Monitor) refreshAnalytics(log *slog.Logger) {
	devices, _ := m.state.Snapshot()
	window := safety.TrailingWindow(m.pollOptions.window)

	events, err := m.api.Events(0, window.From, window.To)
	if err != nil {
		// Keep the previous scorecard rather than publishing a blank one.
		log.Error("failed to fetch behavioral events", "error", err)
		return
	}

	rules, err := m.api.MaintenanceList()
	if err != nil {
		log.Error("failed to fetch maintenance rules", "error", err)
		rules = nil // FleetStatus falls back to the default schedule
	}

	scores := safety.Scores(devices, events, window)
	statuses := maintenance.FleetStatus(m.context, devices, rules, m.history)

	m.mu.Lock()
	m.scores = scores
	m.average = safety.FleetAverage(scores)
	m.statuses = statuses
	m.refreshed = time.Now()
	m.mu.Unlock()
}

// Devices returns the reconciled device roster.
func (m *Monitor) Devices() []model.Device {
	return m.state.Devices()
}

// Positions returns the reconciled latest-fix set.
func (m *Monitor) Positions() []model.Position {
	return m.state.Positions()
}

// Scores returns the latest computed scorecard and the fleet average.
func (m *Monitor) Scores() ([]model.DriverScore, float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.DriverScore, len(m.scores))
	copy(out, m.scores)
	return out, m.average
}

// Maintenance returns the latest computed projection.
func (m *Monitor) Maintenance() []model.MaintenanceStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.MaintenanceStatus, len(m.statuses))
	copy(out, m.statuses)
	return out
}

// RefreshedAt reports when the analytics were last recomputed.
func (m *Monitor) RefreshedAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshed
}
