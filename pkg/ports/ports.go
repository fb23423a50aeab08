// Package ports declares the interfaces shared between the application
// layer and its adapters.
package ports

import (
	"context"
	"time"

	"github.com/aescanero/imuws/pkg/imu"
)

// MetricsCollector records client exchanges and server ingestion
type MetricsCollector interface {
	RecordExchange(endpoint, status string, duration time.Duration)
	IncMessagesSent(endpoint string)
	IncMessagesReceived(endpoint string)
	IncReadingsIngested(deviceID string)
}

// ReadingEvent is a reading accepted by the development server
type ReadingEvent struct {
	ID         string      `json:"id"`
	DeviceID   string      `json:"device_id"`
	ReceivedAt time.Time   `json:"received_at"`
	Reading    imu.Reading `json:"reading"`
}

// ReadingSink stores readings accepted by the development server
type ReadingSink interface {
	Publish(ctx context.Context, event ReadingEvent) error
	Recent(ctx context.Context, deviceID string, limit int) ([]ReadingEvent, error)
	Close() error
}

// NoopMetrics discards all measurements
type NoopMetrics struct{}

func (NoopMetrics) RecordExchange(string, string, time.Duration) {}
func (NoopMetrics) IncMessagesSent(string)                       {}
func (NoopMetrics) IncMessagesReceived(string)                   {}
func (NoopMetrics) IncReadingsIngested(string)                   {}
