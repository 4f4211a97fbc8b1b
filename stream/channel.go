// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

// Package stream maintains the persistent push connection to the upstream
// server and fans decoded delta messages out to subscribers. Delivery is
// best-effort: frames may be duplicated, reordered or lost, and the periodic
// snapshot poll is what reconciles any drift.
package stream

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/acertaexpress/fleetwatch/context"
	"github.com/acertaexpress/fleetwatch/model"
)

// DefaultRetryDelay matches the historical fixed reconnect delay.
const DefaultRetryDelay = 5 * time.Second

// RetryPolicy yields the wait before reconnect attempt n (1-based). The
// default is a fixed delay with no cap on attempts; substitute an exponential
// policy here without touching the framing logic.
type RetryPolicy interface {
	NextDelay(attempt int) time.Duration
}

type FixedDelay time.Duration

func (d FixedDelay) NextDelay(int) time.Duration {
	return time.Duration(d)
}

// Listener receives every decoded frame. Called on the channel's read
// goroutine; listeners must hand work off rather than block.
type Listener func(model.StreamMessage)

// Channel is an owned resource with an explicit Open/Close lifecycle, not a
// process-wide singleton, so tests and callers can substitute and tear down.
type Channel struct {
	url    string
	header http.Header
	dialer *websocket.Dialer
	retry  RetryPolicy

	mu        sync.Mutex
	running   bool
	conn      *websocket.Conn
	done      chan struct{}
	listeners map[int]Listener
	nextId    int
}

type Option func(*Channel)

func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Channel) { c.retry = p }
}

func WithDialer(d *websocket.Dialer) Option {
	return func(c *Channel) { c.dialer = d }
}

func NewChannel(url string, header http.Header, opts ...Option) *Channel {
	c := &Channel{
		url:       url,
		header:    header,
		dialer:    websocket.DefaultDialer,
		retry:     FixedDelay(DefaultRetryDelay),
		listeners: map[int]Listener{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open starts the connect/read/reconnect loop. Calling it while the channel
// is already open or connecting is a no-op. On unexpected close the loop
// schedules exactly one reconnect per retry delay and repeats until Close.
func (c *Channel) Open(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.running = true
	c.done = make(chan struct{})
	go c.run(ctx, c.done)
}

// Close tears the connection down and stops reconnecting. The channel can be
// opened again afterwards.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.running = false
	close(c.done)
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

// Subscribe registers a listener and returns its deregistration handle.
// Calling the handle more than once is safe and does nothing after the first
// call.
func (c *Channel) Subscribe(fn Listener) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextId
	c.nextId++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *Channel) run(ctx context.Context, done chan struct{}) {
	log := context.CtxGetLog(ctx).With("stream", c.url)
	attempt := 0
	for {
		conn, resp, err := c.dialer.DialContext(ctx, c.url, c.header)
		if err != nil {
			args := []any{"error", err}
			if resp != nil {
				args = append(args, "status", resp.StatusCode)
			}
			log.Warn("stream connect failed", args...)
		} else {
			if !c.setConn(conn, done) {
				// Closed, or reopened under a newer loop, while the dial
				// was in flight.
				_ = conn.Close()
				return
			}
			attempt = 0
			log.Info("stream connected")
			c.readLoop(log, conn)
			_ = conn.Close()
			if !c.setConn(nil, done) {
				return
			}
		}

		attempt++
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-time.After(c.retry.NextDelay(attempt)):
		}
	}
}

func (c *Channel) readLoop(log *slog.Logger, conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Debug("stream read ended", "error", err)
			return
		}
		var msg model.StreamMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			// Malformed frames are indistinguishable from absence of data:
			// skip without disturbing the listener loop.
			log.Debug("dropping malformed stream frame", "error", err)
			continue
		}
		if len(msg.Devices) == 0 && len(msg.Positions) == 0 {
			continue
		}
		c.dispatch(msg)
	}
}

func (c *Channel) dispatch(msg model.StreamMessage) {
	c.mu.Lock()
	listeners := make([]Listener, 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()
	for _, fn := range listeners {
		fn(msg)
	}
}

// setConn publishes the loop's connection. The done channel identifies the
// loop generation: a loop whose done channel is no longer the current one
// lost a Close/Open race and must not touch the channel state.
func (c *Channel) setConn(conn *websocket.Conn, done chan struct{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running || c.done != done {
		return false
	}
	c.conn = conn
	return true
}
