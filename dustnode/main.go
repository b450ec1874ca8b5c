package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/itohio/godust/pkg/ambient"
	"github.com/itohio/godust/pkg/config"
	"github.com/itohio/godust/pkg/node"
	"github.com/itohio/godust/pkg/schedule"
	"github.com/itohio/godust/pkg/sds011"
	"github.com/itohio/godust/pkg/uplink"
)

func main() {
	var (
		portFlag   = flag.String("p", "", "Serial port override (e.g., /dev/ttyUSB0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag   = flag.Bool("mock", false, "Use mocked sensors and a console uplink")
		onceFlag   = flag.Bool("once", false, "Run a single duty cycle and exit")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override serial port if provided via command line
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dev := newDevice(cfg, *mockFlag)
	defer dev.Close()

	amb := newAmbient(cfg, *mockFlag)
	if c, ok := amb.(*ambient.BME280); ok {
		defer c.Close()
	}

	up := newUplink(cfg, *mockFlag)
	defer up.Close()

	var sched schedule.Scheduler
	if cfg.Sleep.PowerDown {
		ts := schedule.NewTickScheduler(cfg.Sleep.TickPeriod)
		go ts.Run(ctx)
		sched = ts
	} else {
		sched = schedule.NewDelayScheduler()
	}

	n := node.New(cfg, dev, amb, up, sched)

	if *onceFlag {
		if err := n.RunCycle(ctx); err != nil {
			log.Printf("Cycle failed: %v", err)
		}
		return
	}

	if err := n.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Node stopped: %v", err)
	}
	log.Printf("Shutting down")
}

// newDevice opens the particulate sensor, retrying a few times before giving
// up. A node that cannot reach its sensor at boot must not limp along
// half-initialized.
func newDevice(cfg *config.Config, mock bool) sds011.Device {
	var dev sds011.Device
	if mock {
		dev = sds011.NewMock(&cfg.Mock)
	} else {
		dev = sds011.New(cfg.Serial.Port, cfg.Serial.BaudRate)
	}

	if err := connectWithRetry(dev.Connect, cfg.Sampling.Retries, cfg.Sampling.Backoff); err != nil {
		log.Fatalf("Failed to open particulate sensor on %s: %v", cfg.Serial.Port, err)
	}
	return dev
}

// newAmbient builds the temperature/humidity sensor. Ambient readings are
// best-effort, so a missing or broken sensor degrades to sentinels instead
// of halting the node.
func newAmbient(cfg *config.Config, mock bool) ambient.Sensor {
	if mock {
		return ambient.NewMock(cfg.Mock.Temperature, cfg.Mock.Humidity)
	}
	if !cfg.Ambient.Enabled {
		return ambient.Disabled{}
	}

	amb, err := ambient.NewBME280(cfg.Ambient.Bus)
	if err != nil {
		log.Printf("Ambient sensor unavailable, sending sentinels: %v", err)
		return ambient.Disabled{}
	}
	return amb
}

// newUplink connects the transport, retrying before giving up (fatal at
// start-up only; later disconnects are the transport's problem).
func newUplink(cfg *config.Config, mock bool) uplink.Uplink {
	if mock {
		return uplink.Console{}
	}

	up := uplink.NewMQTT(cfg.Uplink)
	if err := connectWithRetry(up.Connect, cfg.Sampling.Retries, cfg.Sampling.Backoff); err != nil {
		log.Fatalf("Failed to connect uplink to %s:%d: %v", cfg.Uplink.Broker, cfg.Uplink.Port, err)
	}
	return up
}

// connectWithRetry attempts connect up to retries times with a fixed backoff.
func connectWithRetry(connect func() error, retries int, backoff time.Duration) error {
	var err error
	for i := 0; i < retries; i++ {
		if err = connect(); err == nil {
			return nil
		}
		log.Printf("Connect attempt %d/%d failed: %v", i+1, retries, err)
		if i < retries-1 {
			time.Sleep(backoff)
		}
	}
	return err
}
