package ambient

import (
	"fmt"
	"log"
	"math"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"
	"periph.io/x/host/v3"
)

// DefaultAddress is the usual BME280 I2C address.
const DefaultAddress = 0x76

// BME280 reads ambient conditions from a BME280 over I2C.
type BME280 struct {
	bus i2c.BusCloser
	dev *bmxx80.Dev
}

// NewBME280 opens the named I2C bus (empty selects the first available one)
// and probes the sensor.
func NewBME280(busName string) (*BME280, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize host drivers: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus %q: %w", busName, err)
	}

	dev, err := bmxx80.NewI2C(bus, DefaultAddress, &bmxx80.DefaultOpts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to probe BME280: %w", err)
	}

	return &BME280{bus: bus, dev: dev}, nil
}

// Temperature reads the temperature in 0.1 °C units, Missing on failure.
func (b *BME280) Temperature() int16 {
	var e physic.Env
	if err := b.dev.Sense(&e); err != nil {
		log.Printf("ambient: temperature read failed: %v", err)
		return Missing
	}
	return int16(math.Round(e.Temperature.Celsius() * 10))
}

// Humidity reads the relative humidity in 0.1 %RH units, Missing on failure.
func (b *BME280) Humidity() int16 {
	var e physic.Env
	if err := b.dev.Sense(&e); err != nil {
		log.Printf("ambient: humidity read failed: %v", err)
		return Missing
	}
	return int16(e.Humidity / (physic.PercentRH / 10))
}

// Close halts the sensor and releases the bus.
func (b *BME280) Close() error {
	if err := b.dev.Halt(); err != nil {
		b.bus.Close()
		return err
	}
	return b.bus.Close()
}
