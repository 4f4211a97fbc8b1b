// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package upstream

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/acertaexpress/fleetwatch/model"
)

func TestDevicesAndAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/api/devices", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]model.Device{{Id: 1, Name: "Truck-1", Status: model.StatusOnline}})
	}))
	t.Cleanup(srv.Close)

	api := NewClient(srv.URL, "secret-token")
	devices, err := api.Devices()
	require.Nil(t, err)
	require.Len(t, devices, 1)
	require.Equal(t, "Truck-1", devices[0].Name)
	require.Equal(t, "Bearer secret-token", gotAuth)
}

func TestRouteQueryParameters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "7", q.Get("deviceId"))
		require.NotEmpty(t, q.Get("from"))
		require.NotEmpty(t, q.Get("to"))
		_ = json.NewEncoder(w).Encode([]model.Position{{Id: 1, DeviceId: 7}})
	}))
	t.Cleanup(srv.Close)

	api := NewClient(srv.URL, "t")
	to := time.Now()
	positions, err := api.Route(7, to.Add(-time.Hour), to)
	require.Nil(t, err)
	require.Len(t, positions, 1)
}

func TestSendCommand(t *testing.T) {
	var got model.Command
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/commands/send", r.URL.Path)
		require.Nil(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(srv.Close)

	api := NewClient(srv.URL, "t")
	require.Nil(t, api.SendCommand(3, model.CommandEngineStop))
	require.Equal(t, 3, got.DeviceId)
	require.Equal(t, model.CommandEngineStop, got.Type)
}

func TestSendCommandSurfacesFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "device offline", http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	api := NewClient(srv.URL, "t")
	err := api.SendCommand(3, model.CommandEngineResume)
	require.Error(t, err)
	require.Contains(t, err.Error(), "device offline")
}

func TestSocketURL(t *testing.T) {
	require.Equal(t, "ws://tracker.example.com/api/socket",
		NewClient("http://tracker.example.com", "t").SocketURL())
	require.Equal(t, "wss://tracker.example.com/api/socket",
		NewClient("https://tracker.example.com/", "t").SocketURL())
}
