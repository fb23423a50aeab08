// Package uplink implements the two client exchanges of the IMU service.
//
// UploadIMU: connect, send one reading, read one reply.
// Ping: connect, read the greeting, send one request, read one reply.
//
// Each exchange opens exactly one connection and closes it on every exit
// path. There are no retries; any failure is returned to the caller.
package uplink
