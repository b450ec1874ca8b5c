package sds011

import "fmt"

// SDS011 query-mode wire protocol. Commands are 19-byte frames, measurement
// replies are 10-byte frames. Both carry a single-byte checksum that is the
// low byte of the sum of the data bytes.
const (
	frameHead = 0xAA
	frameTail = 0xAB

	cmdMarker   = 0xB4 // host -> sensor command frame
	replyMarker = 0xC0 // sensor -> host measurement frame

	cmdQuery     = 0x04
	cmdSleepWork = 0x06

	modeSet   = 0x01
	modeSleep = 0x00
	modeWork  = 0x01

	commandLen = 19
	replyLen   = 10
)

// checksum returns the low byte of the sum of p.
func checksum(p []byte) byte {
	var sum byte
	for _, b := range p {
		sum += b
	}
	return sum
}

// command builds a 19-byte command frame addressed to all devices.
// data holds the command ID followed by its arguments.
func command(data ...byte) []byte {
	frame := make([]byte, commandLen)
	frame[0] = frameHead
	frame[1] = cmdMarker
	copy(frame[2:15], data)
	frame[15] = 0xFF // device ID: broadcast
	frame[16] = 0xFF
	frame[17] = checksum(frame[2:17])
	frame[18] = frameTail
	return frame
}

// queryCommand requests one measurement in query mode.
func queryCommand() []byte {
	return command(cmdQuery)
}

// sleepCommand powers the fan and laser down.
func sleepCommand() []byte {
	return command(cmdSleepWork, modeSet, modeSleep)
}

// workCommand spins the fan up.
func workCommand() []byte {
	return command(cmdSleepWork, modeSet, modeWork)
}

// parseReading validates a 10-byte measurement frame and extracts the
// concentrations. The sensor reports tenths of µg/m³, little-endian within
// the frame.
func parseReading(frame []byte) (pm25, pm10 float32, err error) {
	if len(frame) != replyLen {
		return 0, 0, fmt.Errorf("invalid frame length: expected %d, got %d", replyLen, len(frame))
	}
	if frame[0] != frameHead || frame[9] != frameTail {
		return 0, 0, fmt.Errorf("invalid frame delimiters: %02X...%02X", frame[0], frame[9])
	}
	if frame[1] != replyMarker {
		return 0, 0, fmt.Errorf("unexpected frame type: %02X", frame[1])
	}
	if sum := checksum(frame[2:8]); sum != frame[8] {
		return 0, 0, fmt.Errorf("checksum mismatch: calculated %02X, got %02X", sum, frame[8])
	}

	pm25 = float32(uint16(frame[2])|uint16(frame[3])<<8) / 10
	pm10 = float32(uint16(frame[4])|uint16(frame[5])<<8) / 10
	return pm25, pm10, nil
}
