// Package websocket provides the development server endpoints.
//
// Devices connect to /api/ws/imu/:id/upload/ to push readings and to
// /api/ws/ping/ to check connectivity.
package websocket
