package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/CristiGvl/cascade-hwmon/api"
	"github.com/CristiGvl/cascade-hwmon/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func startStub(t *testing.T) (*api.Server, int) {
	t.Helper()

	srv, err := api.NewServer(api.Options{})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = srv.Shutdown() })

	return srv, ln.Addr().(*net.TCPAddr).Port
}

// runCLI points cascadectl at port with config files that do not exist.
func runCLI(t *testing.T, port int, args ...string) (int, string, string) {
	t.Helper()

	dir := t.TempDir()
	base := []string{
		"--config", filepath.Join(dir, "cascade.toml"),
		"--env-file", filepath.Join(dir, ".env"),
		"--host", "127.0.0.1",
		"--port", strconv.Itoa(port),
		"--timeout", "5",
	}

	var stdout, stderr bytes.Buffer
	code := newCLI(&stdout, &stderr).run(context.Background(), append(base, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestJSONOutputIsServerPayload(t *testing.T) {
	_, port := startStub(t)

	code, stdout, stderr := runCLI(t, port, "-o", "json", "cpu")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, 42.5, gjson.Get(stdout, "load").Float())
	assert.Equal(t, "Ryzen 7 5800X", gjson.Get(stdout, "brand").String())
}

func TestTableOutput(t *testing.T) {
	_, port := startStub(t)

	code, stdout, stderr := runCLI(t, port, "cpu")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Ryzen 7 5800X")
	assert.Contains(t, stdout, "42.5")

	code, stdout, stderr = runCLI(t, port, "fans")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "CPU_FAN")
	assert.Contains(t, stdout, "AIO_PUMP")
}

func TestListOutput(t *testing.T) {
	_, port := startStub(t)

	code, stdout, stderr := runCLI(t, port, "-o", "json", "monitors", "critical")
	require.Equal(t, 0, code, stderr)
	ids := gjson.Get(stdout, "#.id").Array()
	require.Len(t, ids, 1)
	assert.Equal(t, "board/vrm", ids[0].String())
}

func TestFanSpeedCommand(t *testing.T) {
	srv, port := startStub(t)

	code, stdout, stderr := runCLI(t, port, "-o", "json", "fans", "speed", "1", "2", "65")
	require.Equal(t, 0, code, stderr)
	assert.JSONEq(t, `{"success": true}`, stdout)

	reqs := srv.Requests()
	require.NotEmpty(t, reqs)
	last := reqs[len(reqs)-1]
	assert.Equal(t, http.MethodPost, last.Method)
	assert.Equal(t, api.Prefix+"/fans/controllers/1/channels/2/speed", last.Path)
	assert.JSONEq(t, `{"speed": 65}`, string(last.Body))
}

func TestAIExecCommand(t *testing.T) {
	srv, port := startStub(t)

	code, stdout, stderr := runCLI(t, port, "-o", "json", "ai", "exec", "set_brightness", "-p", "level=40")
	require.Equal(t, 0, code, stderr)
	assert.True(t, gjson.Get(stdout, "success").Bool())

	reqs := srv.Requests()
	last := reqs[len(reqs)-1]
	assert.JSONEq(t, `{"action": "set_brightness", "params": {"level": 40}}`, string(last.Body))

	code, stdout, _ = runCLI(t, port, "-o", "json", "brightness")
	require.Equal(t, 0, code)
	assert.JSONEq(t, `{"brightness": 40}`, stdout)
}

func TestAPIErrorExitCode(t *testing.T) {
	srv, port := startStub(t)
	srv.Override(http.MethodGet, "/cpu", http.StatusServiceUnavailable, []byte(`{"error": "busy"}`))

	code, stdout, stderr := runCLI(t, port, "cpu")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "503")
	assert.Contains(t, stderr, "busy")
}

func TestNullListElementIsDecodeError(t *testing.T) {
	srv, port := startStub(t)
	srv.Override(http.MethodGet, "/disks", http.StatusOK, []byte(`[{"name":"/dev/sda1"},null]`))

	code, stdout, stderr := runCLI(t, port, "disks")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "element 1")
}

func TestManySkipsNilItems(t *testing.T) {
	disks, err := model.DecodeList[model.Disk](json.RawMessage(`[{"name": "/dev/sda1", "size": 9007199254740993}]`))
	require.NoError(t, err)

	out := many(append(disks, nil), "name", "size")
	require.Len(t, out.rows, 1)
	assert.Equal(t, []string{"/dev/sda1", "9007199254740993"}, out.rows[0])
	assert.JSONEq(t, `[{"name": "/dev/sda1", "size": 9007199254740993}]`, string(out.raw))
}

func TestConnectionErrorExitCode(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	code, _, stderr := runCLI(t, port, "memory")
	assert.Equal(t, 3, code)
	assert.Contains(t, stderr, "cannot reach server")
}

func TestUsageErrors(t *testing.T) {
	code, _, stderr := runCLI(t, 8085, "bogus")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "error:")

	code, _, _ = runCLI(t, 8085, "-o", "yaml", "cpu")
	assert.Equal(t, 2, code)

	code, _, stderr = runCLI(t, 70000, "cpu")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "out of range")
}

func TestParseValues(t *testing.T) {
	assert.Nil(t, parseValues(nil))

	got := parseValues(map[string]string{
		"level":   "40",
		"force":   "true",
		"profile": "power-saver",
		"list":    `[1, 2]`,
	})
	assert.Equal(t, map[string]any{
		"level":   40.0,
		"force":   true,
		"profile": "power-saver",
		"list":    []any{1.0, 2.0},
	}, got)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "-", format(nil))
	assert.Equal(t, "42.5", format(42.5))
	assert.Equal(t, "9007199254740993", format(json.Number("9007199254740993")))
	assert.Equal(t, "8", format(8.0))
	assert.Equal(t, "true", format(true))
	assert.Equal(t, "x", format("x"))
	assert.Equal(t, `{"a":1}`, format(map[string]any{"a": json.Number("1")}))
	assert.Equal(t, `[1,"b"]`, format([]any{1.0, "b"}))
}

func TestWriteWithoutHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, nullOutput.write(&buf, "table"))
	assert.Equal(t, "no data\n", buf.String())

	buf.Reset()
	require.NoError(t, nullOutput.write(&buf, "json"))
	assert.Equal(t, "null\n", buf.String())
}
