package prometheus

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector implements MetricsCollector using Prometheus
type Collector struct {
	registry *prometheus.Registry

	exchanges        *prometheus.CounterVec
	messagesSent     *prometheus.CounterVec
	messagesReceived *prometheus.CounterVec
	readingsIngested *prometheus.CounterVec
	exchangeDuration *prometheus.HistogramVec
}

// NewCollector creates a new Prometheus metrics collector on its own registry
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		exchanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "imuws_exchanges_total",
				Help: "Total number of WebSocket exchanges",
			},
			[]string{"endpoint", "status"},
		),
		messagesSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "imuws_messages_sent_total",
				Help: "Total number of text frames sent",
			},
			[]string{"endpoint"},
		),
		messagesReceived: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "imuws_messages_received_total",
				Help: "Total number of text frames received",
			},
			[]string{"endpoint"},
		),
		readingsIngested: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "imuws_readings_ingested_total",
				Help: "Total number of IMU readings accepted by the server",
			},
			[]string{"device"},
		),
		exchangeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "imuws_exchange_duration_seconds",
				Help:    "Duration of a full connect-send-receive exchange",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"endpoint"},
		),
	}
}

// Registry returns the registry backing the collector
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordExchange records the outcome and duration of one exchange
func (c *Collector) RecordExchange(endpoint, status string, duration time.Duration) {
	c.exchanges.WithLabelValues(endpoint, status).Inc()
	c.exchangeDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// IncMessagesSent increments the count of sent frames
func (c *Collector) IncMessagesSent(endpoint string) {
	c.messagesSent.WithLabelValues(endpoint).Inc()
}

// IncMessagesReceived increments the count of received frames
func (c *Collector) IncMessagesReceived(endpoint string) {
	c.messagesReceived.WithLabelValues(endpoint).Inc()
}

// IncReadingsIngested increments the count of readings stored for a device
func (c *Collector) IncReadingsIngested(deviceID string) {
	c.readingsIngested.WithLabelValues(deviceID).Inc()
}

// WriteTextfile dumps the registry in the node exporter textfile format
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
