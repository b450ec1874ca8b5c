package sample

import "github.com/chewxy/math32"

// Empirical humidity compensation for optical particulate sensors. The sensor
// counts water droplets as particles at high relative humidity, which inflates
// the reported concentration. The correction curves are the widely used
// empirical fits for the SDS011.
//
// Humidity is in percent (0-100).

// NormalizePM25 compensates a PM2.5 reading for relative humidity.
func NormalizePM25(pm25, humidity float32) float32 {
	return pm25 / (1.0 + 0.48756*math32.Pow(humidity/100.0, 8.60068))
}

// NormalizePM10 compensates a PM10 reading for relative humidity.
func NormalizePM10(pm10, humidity float32) float32 {
	return pm10 / (1.0 + 0.81559*math32.Pow(humidity/100.0, 5.83411))
}
