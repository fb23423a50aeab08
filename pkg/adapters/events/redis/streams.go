package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aescanero/imuws/pkg/ports"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StreamsReadingSink implements ReadingSink using one Redis stream per device
type StreamsReadingSink struct {
	client *redis.Client
	maxLen int64
	logger *zap.Logger
}

// NewStreamsReadingSink creates a new Redis Streams reading sink. maxLen
// caps each stream approximately; zero leaves streams unbounded.
func NewStreamsReadingSink(client *redis.Client, maxLen int64, logger *zap.Logger) *StreamsReadingSink {
	return &StreamsReadingSink{
		client: client,
		maxLen: maxLen,
		logger: logger,
	}
}

// Publish appends the event to the device stream
func (s *StreamsReadingSink) Publish(ctx context.Context, event ports.ReadingEvent) error {
	streamKey := getStreamKey(event.DeviceID)

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: streamKey,
		MaxLen: s.maxLen,
		Approx: s.maxLen > 0,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}

	if _, err := s.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to add to stream: %w", err)
	}

	s.logger.Debug("reading published",
		zap.String("event_id", event.ID),
		zap.String("device_id", event.DeviceID),
		zap.String("stream", streamKey))

	return nil
}

// Recent returns up to limit readings for a device, newest first
func (s *StreamsReadingSink) Recent(ctx context.Context, deviceID string, limit int) ([]ports.ReadingEvent, error) {
	streamKey := getStreamKey(deviceID)

	var (
		messages []redis.XMessage
		err      error
	)
	if limit > 0 {
		messages, err = s.client.XRevRangeN(ctx, streamKey, "+", "-", int64(limit)).Result()
	} else {
		messages, err = s.client.XRevRange(ctx, streamKey, "+", "-").Result()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stream: %w", err)
	}

	events := make([]ports.ReadingEvent, 0, len(messages))
	for _, message := range messages {
		event, ok := s.decode(streamKey, message)
		if !ok {
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

// decode extracts an event from a stream message, skipping malformed entries
func (s *StreamsReadingSink) decode(streamKey string, message redis.XMessage) (ports.ReadingEvent, bool) {
	data, ok := message.Values["data"].(string)
	if !ok {
		s.logger.Error("invalid message format",
			zap.String("stream", streamKey),
			zap.String("message_id", message.ID))
		return ports.ReadingEvent{}, false
	}

	var event ports.ReadingEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		s.logger.Error("failed to unmarshal event",
			zap.String("stream", streamKey),
			zap.String("message_id", message.ID),
			zap.Error(err))
		return ports.ReadingEvent{}, false
	}
	return event, true
}

// Close is a no-op; the Redis client is closed by the caller
func (s *StreamsReadingSink) Close() error {
	return nil
}

// getStreamKey returns the Redis stream key for a device
func getStreamKey(deviceID string) string {
	return fmt.Sprintf("imuws:readings:%s", deviceID)
}
