package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/igt/internal/host"
)

func runningStatus() host.Status {
	return host.Status{
		HostAlive:      true,
		Source:         host.SourceStopwatch,
		SessionID:      "01J9ZX3QY7",
		SessionStarted: time.Now().Add(-3 * time.Minute),
		ShowOverlay:    true,
		Elapsed:        83.25,
		Text:           "01:23.25",
		X:              100,
		Y:              -12,
	}
}

func TestStatusMode(t *testing.T) {
	assert.Equal(t, "run", statusMode(host.Status{}))
	assert.Equal(t, "move", statusMode(host.Status{MoveMode: true}))
	assert.Equal(t, "drag", statusMode(host.Status{MoveMode: true, Dragging: true}))
}

func TestWaybarStatus(t *testing.T) {
	idle := waybarStatus(host.Status{})
	assert.Equal(t, "idle", idle.Class)
	assert.Empty(t, idle.Text)

	st := runningStatus()
	running := waybarStatus(st)
	assert.Equal(t, "running", running.Class)
	assert.Equal(t, "01:23.25", running.Text)
	assert.Contains(t, running.Tooltip, "Source: stopwatch")
	assert.Contains(t, running.Tooltip, "3 minutes ago")

	st.ShowOverlay = false
	assert.Equal(t, "hidden", waybarStatus(st).Class)

	st.MoveMode = true
	assert.Equal(t, "move", waybarStatus(st).Class)
}

func TestPrintStatus_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printStatus(&buf, runningStatus(), "text", false))

	out := buf.String()
	assert.Contains(t, out, "Host:     stopwatch\n")
	assert.Contains(t, out, "Timer:    01:23.25\n")
	assert.Contains(t, out, "Position: 100, -12\n")
	assert.Contains(t, out, "started 3 minutes ago")
	assert.NotContains(t, out, "Message:")
}

func TestPrintStatus_TextNoHost(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printStatus(&buf, host.Status{Notification: "HELLO"}, "", false))

	out := buf.String()
	assert.Contains(t, out, "Host:     none\n")
	assert.NotContains(t, out, "Timer:")
	assert.Contains(t, out, "Message:  HELLO\n")
}

func TestPrintStatus_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printStatus(&buf, runningStatus(), "json", false))

	var v StatusView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &v))
	assert.True(t, v.HostAlive)
	assert.Equal(t, "run", v.Mode)
	assert.Equal(t, 83.25, v.Elapsed)
	assert.NotEmpty(t, v.Started)
}

func TestPrintStatus_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printStatus(&buf, runningStatus(), "yaml", false))

	assert.Contains(t, buf.String(), "host_alive: true\n")

	var v StatusView
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &v))
	assert.Equal(t, "01J9ZX3QY7", v.SessionID)
	assert.Equal(t, "01:23.25", v.Text)
}

func TestPrintStatus_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, printStatus(&buf, host.Status{}, "xml", false))
}
