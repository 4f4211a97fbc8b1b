// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acertaexpress/fleetwatch/context"
	"github.com/acertaexpress/fleetwatch/model"
	"github.com/acertaexpress/fleetwatch/server"
)

type fakeFleet struct {
	devices     []model.Device
	positions   []model.Position
	scores      []model.DriverScore
	average     float64
	maintenance []model.MaintenanceStatus
	refreshed   time.Time
}

func (f *fakeFleet) Devices() []model.Device                { return f.devices }
func (f *fakeFleet) Positions() []model.Position            { return f.positions }
func (f *fakeFleet) Scores() ([]model.DriverScore, float64) { return f.scores, f.average }
func (f *fakeFleet) Maintenance() []model.MaintenanceStatus { return f.maintenance }
func (f *fakeFleet) RefreshedAt() time.Time                 { return f.refreshed }

type fakeUpstream struct {
	routeCalls int
	route      []model.Position
	routeErr   error
	commands   []string
	commandErr error
}

func (f *fakeUpstream) Route(deviceId int, from, to time.Time) ([]model.Position, error) {
	f.routeCalls++
	return f.route, f.routeErr
}

func (f *fakeUpstream) SendCommand(deviceId int, commandType string) error {
	f.commands = append(f.commands, fmt.Sprintf("%d:%s", deviceId, commandType))
	return f.commandErr
}

type testClient struct {
	t        *testing.T
	ctx      Context
	fleet    *fakeFleet
	upstream *fakeUpstream
	e        *echo.Echo
}

func newTestClient(t *testing.T) testClient {
	c := testClient{
		t:        t,
		ctx:      context.Background(),
		fleet:    &fakeFleet{},
		upstream: &fakeUpstream{},
		e:        server.NewEchoServer(),
	}
	RegisterHandlers(c.e, c.fleet, c.upstream)
	return c
}

func (c testClient) Do(req *http.Request) *httptest.ResponseRecorder {
	req = req.WithContext(c.ctx)
	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)
	return rec
}

func (c testClient) GET(resource string, status int) []byte {
	req := httptest.NewRequest(http.MethodGet, resource, nil)
	rec := c.Do(req)
	require.Equal(c.t, status, rec.Code)
	return rec.Body.Bytes()
}

func (c testClient) POST(resource string, status int, data any) []byte {
	body, err := json.Marshal(data)
	require.NoError(c.t, err)
	req := httptest.NewRequest(http.MethodPost, resource, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := c.Do(req)
	require.Equal(c.t, status, rec.Code)
	return rec.Body.Bytes()
}

func unmarshal[T any](t *testing.T, data []byte) T {
	var out T
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestDeviceList(t *testing.T) {
	c := newTestClient(t)
	c.fleet.devices = []model.Device{
		{Id: 1, Name: "Truck-1", Status: model.StatusOnline},
		{Id: 2, Name: "Truck-2", Status: model.StatusOffline},
	}

	devices := unmarshal[[]model.Device](t, c.GET("/v1/devices", http.StatusOK))
	require.Len(t, devices, 2)
	assert.Equal(t, "Truck-1", devices[0].Name)
	assert.Equal(t, model.StatusOffline, devices[1].Status)
}

func TestPositionList(t *testing.T) {
	c := newTestClient(t)
	c.fleet.positions = []model.Position{
		{Id: 10, DeviceId: 1, Latitude: 48.85, Longitude: 2.35, Speed: 10},
	}

	positions := unmarshal[[]model.Position](t, c.GET("/v1/positions", http.StatusOK))
	require.Len(t, positions, 1)
	assert.Equal(t, 1, positions[0].DeviceId)
}

func TestScoreList(t *testing.T) {
	c := newTestClient(t)
	c.fleet.scores = []model.DriverScore{
		{DeviceId: 2, DeviceName: "Truck-2", Score: 100},
		{DeviceId: 1, DeviceName: "Truck-1", Score: 85},
	}
	c.fleet.average = 92.5
	c.fleet.refreshed = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	report := unmarshal[scoreReport](t, c.GET("/v1/scores", http.StatusOK))
	require.Len(t, report.Scores, 2)
	assert.Equal(t, 100, report.Scores[0].Score)
	assert.Equal(t, 92.5, report.Average)
	assert.Equal(t, c.fleet.refreshed, report.RefreshedAt)
}

func TestMaintenanceList(t *testing.T) {
	c := newTestClient(t)
	c.fleet.maintenance = []model.MaintenanceStatus{
		{DeviceId: 1, Name: "Oil Change", Status: model.SeverityWarning, Remaining: 500},
	}

	statuses := unmarshal[[]model.MaintenanceStatus](t, c.GET("/v1/maintenance", http.StatusOK))
	require.Len(t, statuses, 1)
	assert.Equal(t, model.SeverityWarning, statuses[0].Status)
}

func TestDeviceRoute(t *testing.T) {
	c := newTestClient(t)
	c.upstream.route = []model.Position{
		{Id: 1, DeviceId: 3, Latitude: 48.85, Longitude: 2.35},
		{Id: 2, DeviceId: 3, Latitude: 48.86, Longitude: 2.36},
	}

	uri := "/v1/devices/3/route?from=2024-05-01T00:00:00Z&to=2024-05-02T00:00:00Z"
	route := unmarshal[[]model.Position](t, c.GET(uri, http.StatusOK))
	require.Len(t, route, 2)
	require.Equal(t, 1, c.upstream.routeCalls)

	// Served from cache on repeat
	c.GET(uri, http.StatusOK)
	require.Equal(t, 1, c.upstream.routeCalls)

	// A different range misses the cache
	c.GET("/v1/devices/3/route?from=2024-05-02T00:00:00Z&to=2024-05-03T00:00:00Z", http.StatusOK)
	require.Equal(t, 2, c.upstream.routeCalls)
}

func TestDeviceRouteBadRequests(t *testing.T) {
	c := newTestClient(t)

	c.GET("/v1/devices/abc/route?from=2024-05-01T00:00:00Z&to=2024-05-02T00:00:00Z", http.StatusBadRequest)
	c.GET("/v1/devices/3/route", http.StatusBadRequest)
	// Range runs backwards
	c.GET("/v1/devices/3/route?from=2024-05-02T00:00:00Z&to=2024-05-01T00:00:00Z", http.StatusBadRequest)
	require.Zero(t, c.upstream.routeCalls)
}

func TestDeviceRouteUpstreamFailure(t *testing.T) {
	c := newTestClient(t)
	c.upstream.routeErr = fmt.Errorf("upstream timeout")

	c.GET("/v1/devices/3/route?from=2024-05-01T00:00:00Z&to=2024-05-02T00:00:00Z", http.StatusBadGateway)
}

func TestDeviceCommand(t *testing.T) {
	c := newTestClient(t)

	c.POST("/v1/devices/7/commands", http.StatusAccepted, commandRequest{Type: model.CommandEngineStop})
	require.Equal(t, []string{"7:engineStop"}, c.upstream.commands)

	c.POST("/v1/devices/7/commands", http.StatusAccepted, commandRequest{Type: model.CommandEngineResume})
	require.Equal(t, []string{"7:engineStop", "7:engineResume"}, c.upstream.commands)
}

func TestDeviceCommandForwardsAnyType(t *testing.T) {
	c := newTestClient(t)

	// The vocabulary belongs to the upstream server; unknown types pass
	// through untouched.
	c.POST("/v1/devices/7/commands", http.StatusAccepted, commandRequest{Type: "positionPeriodic"})
	require.Equal(t, []string{"7:positionPeriodic"}, c.upstream.commands)
}

func TestDeviceCommandRejected(t *testing.T) {
	c := newTestClient(t)

	c.POST("/v1/devices/7/commands", http.StatusBadRequest, commandRequest{})
	require.Empty(t, c.upstream.commands)

	c.upstream.commandErr = fmt.Errorf("device offline")
	c.POST("/v1/devices/7/commands", http.StatusBadGateway, commandRequest{Type: model.CommandEngineStop})
}
