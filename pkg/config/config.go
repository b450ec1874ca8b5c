package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the node configuration.
type Config struct {
	Serial     SerialConfig     `yaml:"serial"`
	Ambient    AmbientConfig    `yaml:"ambient"`
	Sampling   SamplingConfig   `yaml:"sampling"`
	Sleep      SleepConfig      `yaml:"sleep"`
	Compensate CompensateConfig `yaml:"compensate"`
	Uplink     UplinkConfig     `yaml:"uplink"`
	Mock       MockConfig       `yaml:"mock"`
}

// SerialConfig contains the particulate sensor serial port configuration.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// AmbientConfig contains the temperature/humidity sensor configuration.
type AmbientConfig struct {
	Enabled bool   `yaml:"enabled"`
	Bus     string `yaml:"bus"` // I2C bus name, empty selects the first available
}

// SamplingConfig contains the per-cycle acquisition parameters.
type SamplingConfig struct {
	Count   int           `yaml:"count"`    // read attempts per cycle
	Delay   time.Duration `yaml:"delay"`    // delay between read attempts
	WarmUp  time.Duration `yaml:"warm_up"`  // fan spin-up time before the first read
	Retries int           `yaml:"retries"`  // startup connect attempts before giving up
	Backoff time.Duration `yaml:"backoff"`  // delay between startup connect attempts
}

// SleepConfig contains the low-power scheduling parameters.
type SleepConfig struct {
	Interval   time.Duration `yaml:"interval"`    // wake-to-wake period
	Enabled    bool          `yaml:"enabled"`     // false runs cycles back to back
	PowerDown  bool          `yaml:"power_down"`  // use the tick-counting scheduler
	TickPeriod time.Duration `yaml:"tick_period"` // wake timer tick period
}

// CompensateConfig enables humidity compensation of particulate readings.
type CompensateConfig struct {
	Humidity bool `yaml:"humidity"`
}

// UplinkConfig contains the uplink transport configuration.
type UplinkConfig struct {
	Broker   string `yaml:"broker"`
	Port     int    `yaml:"port"`
	ClientID string `yaml:"client_id"`
	Topic    string `yaml:"topic"`
}

// MockConfig contains mock sensor configuration.
type MockConfig struct {
	PM25        float32 `yaml:"pm25"`        // base PM2.5 level (µg/m³)
	PM10        float32 `yaml:"pm10"`        // base PM10 level (µg/m³)
	NoiseLevel  float32 `yaml:"noise_level"` // noise amplitude (µg/m³)
	FailEvery   int     `yaml:"fail_every"`  // every Nth read fails (0 = never)
	Temperature int16   `yaml:"temperature"` // ambient temperature (0.1 °C)
	Humidity    int16   `yaml:"humidity"`    // ambient humidity (0.1 %RH)
}

// Default returns a default configuration matching the reference deployment.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:     "/dev/ttyUSB0",
			BaudRate: 9600,
		},
		Ambient: AmbientConfig{
			Enabled: true,
			Bus:     "",
		},
		Sampling: SamplingConfig{
			Count:   10,
			Delay:   3 * time.Second,
			WarmUp:  30 * time.Second,
			Retries: 5,
			Backoff: 5 * time.Second,
		},
		Sleep: SleepConfig{
			Interval:   20 * time.Minute,
			Enabled:    true,
			PowerDown:  true,
			TickPeriod: time.Second,
		},
		Compensate: CompensateConfig{
			Humidity: false,
		},
		Uplink: UplinkConfig{
			Broker:   "localhost",
			Port:     1883,
			ClientID: "godust",
			Topic:    "godust/uplink",
		},
		Mock: MockConfig{
			PM25:        12.0,
			PM10:        25.0,
			NoiseLevel:  2.0,
			FailEvery:   0,
			Temperature: 215, // 21.5 °C
			Humidity:    450, // 45.0 %RH
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Ensure minimum required fields are set (use defaults if missing)
	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.Sampling.Count == 0 {
		c.Sampling.Count = def.Sampling.Count
	}
	if c.Sampling.Delay == 0 {
		c.Sampling.Delay = def.Sampling.Delay
	}
	if c.Sampling.WarmUp == 0 {
		c.Sampling.WarmUp = def.Sampling.WarmUp
	}
	if c.Sampling.Retries == 0 {
		c.Sampling.Retries = def.Sampling.Retries
	}
	if c.Sampling.Backoff == 0 {
		c.Sampling.Backoff = def.Sampling.Backoff
	}

	if c.Sleep.Interval == 0 {
		c.Sleep.Interval = def.Sleep.Interval
	}
	if c.Sleep.TickPeriod == 0 {
		c.Sleep.TickPeriod = def.Sleep.TickPeriod
	}

	if c.Uplink.Broker == "" {
		c.Uplink.Broker = def.Uplink.Broker
	}
	if c.Uplink.Port == 0 {
		c.Uplink.Port = def.Uplink.Port
	}
	if c.Uplink.ClientID == "" {
		c.Uplink.ClientID = def.Uplink.ClientID
	}
	if c.Uplink.Topic == "" {
		c.Uplink.Topic = def.Uplink.Topic
	}

	if c.Mock.NoiseLevel == 0 {
		c.Mock.NoiseLevel = def.Mock.NoiseLevel
	}
	if c.Mock.PM25 == 0 {
		c.Mock.PM25 = def.Mock.PM25
	}
	if c.Mock.PM10 == 0 {
		c.Mock.PM10 = def.Mock.PM10
	}
	if c.Mock.Temperature == 0 {
		c.Mock.Temperature = def.Mock.Temperature
	}
	if c.Mock.Humidity == 0 {
		c.Mock.Humidity = def.Mock.Humidity
	}
}
