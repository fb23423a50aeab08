// Package events provides sinks for readings accepted by the development server.
//
// Implementations:
//   - redis: one Redis stream per device, capped with MAXLEN
//   - memory: bounded in-memory buffer, the default
package events
