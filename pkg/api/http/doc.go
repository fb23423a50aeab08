// Package http provides the development server.
//
// The server exposes:
//   - WebSocket endpoints for IMU upload and ping
//   - Recent readings per device
//   - Health checks
//   - Prometheus metrics
package http
