// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCommand_NotSignedIn(t *testing.T) {
	dir := t.TempDir()

	out, _, err := runCLI(t, dir, "", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")
}

func TestStatusCommand_JSON(t *testing.T) {
	dir := t.TempDir()

	_, _, err := runCLI(t, dir, "", "login", "--email", "trader@example.com", "--password", "secret1")
	require.NoError(t, err)

	out, _, err := runCLI(t, dir, "", "status", "--json")
	require.NoError(t, err)

	var got statusOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Authenticated)
	require.NotNil(t, got.User)
	assert.Equal(t, "trader@example.com", got.User.Email)
	assert.Equal(t, "home", got.Route)
	assert.False(t, got.BiometricEnabled)
}

func TestStatusCommand_JSONNotSignedIn(t *testing.T) {
	dir := t.TempDir()

	out, _, err := runCLI(t, dir, "", "status", "--json")
	require.NoError(t, err)

	var got statusOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.False(t, got.Authenticated)
	assert.Nil(t, got.User)
	assert.Equal(t, "login", got.Route)
}

func TestStatusCommand_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath,
		[]byte("log-format: json\nbiometric-enrolled: false\n"), 0o600))

	out, _, err := runCLI(t, dir, "", "--config", cfgPath, "biometric", "probe")
	require.NoError(t, err)
	assert.Contains(t, out, "Enrolled:  false")
}
