package imu

import (
	"encoding/json"
	"fmt"
)

// Vector3 is a three-axis sensor sample
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Reading is a single IMU upload payload
type Reading struct {
	Accelerometer Vector3 `json:"accelerometer"`
	Gyroscope     Vector3 `json:"gyroscope"`
	Timestamp     int64   `json:"timestamp"`
}

// PingRequest is the payload sent to the ping endpoint
type PingRequest struct {
	Image string `json:"image"`
}

// ExampleReading returns the sample reading used by the upload command
func ExampleReading() Reading {
	return Reading{
		Accelerometer: Vector3{X: 0.12, Y: -0.98, Z: 1.23},
		Gyroscope:     Vector3{X: 1.0, Y: 2.0, Z: 3.0},
		Timestamp:     167768051733,
	}
}

// Encode returns the JSON text frame for the reading
func (r Reading) Encode() (string, error) {
	return encode(r)
}

// DecodeReading parses a JSON text frame into a Reading
func DecodeReading(data []byte) (Reading, error) {
	var r Reading
	if err := json.Unmarshal(data, &r); err != nil {
		return Reading{}, fmt.Errorf("failed to decode reading: %w", err)
	}
	return r, nil
}

// Encode returns the JSON text frame for the ping request
func (p PingRequest) Encode() (string, error) {
	return encode(p)
}

func encode(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}
	return string(data), nil
}
