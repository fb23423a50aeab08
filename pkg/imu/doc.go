// Package imu defines the payloads exchanged with the IMU WebSocket endpoints.
//
// A Reading carries one accelerometer sample, one gyroscope sample and a
// millisecond timestamp. PingRequest carries a single image field.
package imu
