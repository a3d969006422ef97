//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSettingsSetGetList(t *testing.T) {
	file := filepath.Join(t.TempDir(), "conf", "settings.yaml")

	_, _, err := run(t, "--settings", file, "settings", "set", "http.user-agent", "tester/1")
	require.NoError(t, err)
	_, _, err = run(t, "--settings", file, "settings", "set", "window.width", "854")
	require.NoError(t, err)

	out, _, err := run(t, "--settings", file, "settings", "get", "window.width")
	require.NoError(t, err)
	require.Equal(t, "854\n", out)

	out, _, err = run(t, "--settings", file, "settings", "list")
	require.NoError(t, err)
	require.Equal(t, "http.user-agent = tester/1\nwindow.width = 854\n", out)

	out, _, err = run(t, "--settings", file, "settings", "list", "--json")
	require.NoError(t, err)
	var all map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &all))
	require.Equal(t, map[string]string{"http.user-agent": "tester/1", "window.width": "854"}, all)

	_, _, err = run(t, "--settings", file, "settings", "get", "missing")
	require.Error(t, err)
}

func TestSettingsFromEnvironment(t *testing.T) {
	file := filepath.Join(t.TempDir(), "settings.properties")
	t.Setenv("LAUNCHKIT_SETTINGS", file)

	_, _, err := run(t, "settings", "set", "a", "b")
	require.NoError(t, err)
	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, "a=b\n", string(raw))
}

func TestInvalidLogLevel(t *testing.T) {
	file := filepath.Join(t.TempDir(), "settings.properties")
	_, _, err := run(t, "--settings", file, "--log-level", "loud", "settings", "list")
	require.Error(t, err)
}

func TestGetUsesSettings(t *testing.T) {
	gotUA := make(chan string, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA <- r.UserAgent()
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	defer srv.Close()

	file := filepath.Join(t.TempDir(), "settings.properties")
	require.NoError(t, os.WriteFile(file, []byte("http.user-agent=from-settings/1\n"), 0644))

	out, _, err := run(t, "--settings", file, "get", srv.URL)
	require.NoError(t, err)
	require.Equal(t, "short and stout", out)
	require.Equal(t, "from-settings/1", <-gotUA)

	t.Setenv("LAUNCHKIT_USER_AGENT", "from-env/2")
	_, _, err = run(t, "--settings", file, "get", "--fail", srv.URL)
	require.Error(t, err)
	require.Equal(t, "from-env/2", <-gotUA)
}

func TestPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_, _ = w.Write([]byte(r.Header.Get("Content-Type") + " " + string(body)))
	}))
	defer srv.Close()

	file := filepath.Join(t.TempDir(), "settings.properties")
	out, _, err := run(t, "--settings", file, "post", srv.URL, "-t", "text/plain", "-d", "hello")
	require.NoError(t, err)
	require.Equal(t, "text/plain hello", out)
}

func TestDownload(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789"), 100)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "out", "file.bin")
	_, stderr, err := run(t, "--settings", filepath.Join(dir, "settings.properties"), "download", "--rate-limit", "1MB", srv.URL+"/file.bin", dest)
	require.NoError(t, err)
	require.Contains(t, stderr, "1.0 kB transferred")

	written, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, data, written)

	_, _, err = run(t, "--settings", filepath.Join(dir, "settings.properties"), "download", "--rate-limit", "lots", srv.URL, dest)
	require.Error(t, err)
}
