// Package ambient provides the temperature/humidity sensor as the node sees
// it: two best-effort integer reads in sensor-native units.
package ambient

// Missing is the sentinel reported when a read fails or no sensor is fitted.
// It is far outside any physical temperature or humidity range.
const Missing int16 = -32768

// Sensor reads ambient conditions. Temperature is in 0.1 °C units, humidity
// in 0.1 %RH units. Implementations report Missing instead of failing; a
// dropped ambient reading never aborts a duty cycle.
type Sensor interface {
	Temperature() int16
	Humidity() int16
}

// Ensure implementations satisfy Sensor.
var (
	_ Sensor = (*BME280)(nil)
	_ Sensor = (*Mock)(nil)
	_ Sensor = Disabled{}
)

// Disabled is the no-sensor-fitted implementation. Both channels report
// Missing so the payload still carries the sentinel fields.
type Disabled struct{}

// Temperature always reports Missing.
func (Disabled) Temperature() int16 { return Missing }

// Humidity always reports Missing.
func (Disabled) Humidity() int16 { return Missing }
