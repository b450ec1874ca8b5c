package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotNil(t, cfg)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Port)
	assert.Equal(t, 9600, cfg.Serial.BaudRate)
	assert.Equal(t, 10, cfg.Sampling.Count)
	assert.Equal(t, 3*time.Second, cfg.Sampling.Delay)
	assert.Equal(t, 30*time.Second, cfg.Sampling.WarmUp)
	assert.Equal(t, 20*time.Minute, cfg.Sleep.Interval)
	assert.True(t, cfg.Sleep.Enabled)
	assert.True(t, cfg.Sleep.PowerDown)
	assert.Equal(t, time.Second, cfg.Sleep.TickPeriod)
	assert.False(t, cfg.Compensate.Humidity)
	assert.Equal(t, "localhost", cfg.Uplink.Broker)
	assert.Equal(t, 1883, cfg.Uplink.Port)
	assert.Equal(t, "godust/uplink", cfg.Uplink.Topic)
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Port)
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
serial:
  port: "/dev/ttyAMA0"
  baud_rate: 9600

sampling:
  count: 5
  delay: 2s
  warm_up: 15s

sleep:
  interval: 10m
  enabled: true
  power_down: false
  tick_period: 500ms

compensate:
  humidity: true

uplink:
  broker: "broker.example.org"
  port: 8883
  client_id: "node-07"
  topic: "nodes/07/uplink"
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "/dev/ttyAMA0", cfg.Serial.Port)
	assert.Equal(t, 5, cfg.Sampling.Count)
	assert.Equal(t, 2*time.Second, cfg.Sampling.Delay)
	assert.Equal(t, 15*time.Second, cfg.Sampling.WarmUp)
	assert.Equal(t, 10*time.Minute, cfg.Sleep.Interval)
	assert.False(t, cfg.Sleep.PowerDown)
	assert.Equal(t, 500*time.Millisecond, cfg.Sleep.TickPeriod)
	assert.True(t, cfg.Compensate.Humidity)
	assert.Equal(t, "broker.example.org", cfg.Uplink.Broker)
	assert.Equal(t, 8883, cfg.Uplink.Port)
	assert.Equal(t, "node-07", cfg.Uplink.ClientID)
}

func TestLoad_PartialYAML_UsesDefaults(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
serial:
  port: "/dev/ttyS1"
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyS1", cfg.Serial.Port)
	assert.Equal(t, 9600, cfg.Serial.BaudRate)
	assert.Equal(t, 10, cfg.Sampling.Count)
	assert.Equal(t, 20*time.Minute, cfg.Sleep.Interval)
	assert.Equal(t, "godust", cfg.Uplink.ClientID)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("serial: [not a mapping")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	_, err = Load(tmpfile.Name())
	assert.Error(t, err)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := Default()
	cfg.Serial.Port = "/dev/ttyUSB3"
	cfg.Sampling.Count = 7
	cfg.Sleep.Interval = 5 * time.Minute
	cfg.Compensate.Humidity = true

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Serial.Port, loaded.Serial.Port)
	assert.Equal(t, cfg.Sampling.Count, loaded.Sampling.Count)
	assert.Equal(t, cfg.Sleep.Interval, loaded.Sleep.Interval)
	assert.Equal(t, cfg.Compensate.Humidity, loaded.Compensate.Humidity)
}
