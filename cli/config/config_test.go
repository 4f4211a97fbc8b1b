// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleetctl.yaml")
	cfg := &Config{
		ActiveContext: "local",
		Contexts: map[string]Context{
			"local": {URL: "http://localhost:8080"},
			"prod":  {URL: "https://fleet.example.com", Token: "secret"},
		},
	}
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.ActiveContext, loaded.ActiveContext)
	assert.Equal(t, cfg.Contexts, loaded.Contexts)
}

func TestGetContext(t *testing.T) {
	cfg := &Config{
		ActiveContext: "local",
		Contexts: map[string]Context{
			"local":  {URL: "http://localhost:8080"},
			"no-url": {Token: "secret"},
		},
	}

	ctx, err := cfg.GetContext("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", ctx.URL)

	// Token is optional for a local monitor
	assert.Empty(t, ctx.Token)

	_, err = cfg.GetContext("missing")
	require.ErrorContains(t, err, "not found")

	_, err = cfg.GetContext("no-url")
	require.ErrorContains(t, err, "no URL configured")

	cfg.ActiveContext = ""
	_, err = cfg.GetContext("")
	require.ErrorContains(t, err, "no default context")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorContains(t, err, "not found")
}
