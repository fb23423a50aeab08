package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aescanero/imuws/pkg/imu"
	"github.com/aescanero/imuws/pkg/ports"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSink(t *testing.T, maxLen int64) (*StreamsReadingSink, *miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStreamsReadingSink(client, maxLen, zap.NewNop()), mr, client
}

func readingEvent(device string, ts int64) ports.ReadingEvent {
	r := imu.ExampleReading()
	r.Timestamp = ts
	return ports.ReadingEvent{
		ID:         fmt.Sprintf("%s-%d", device, ts),
		DeviceID:   device,
		ReceivedAt: time.Unix(ts, 0).UTC(),
		Reading:    r,
	}
}

func TestPublishAndRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	const maxLen = 2
	sink, mr, _ := newSink(t, maxLen)

	const published = 5
	for ts := int64(1); ts <= published; ts++ {
		require.NoError(t, sink.Publish(ctx, readingEvent("dev-1", ts)))
	}
	require.NoError(t, sink.Publish(ctx, readingEvent("dev-2", 99)))

	assert.True(t, mr.Exists("imuws:readings:dev-1"))
	assert.True(t, mr.Exists("imuws:readings:dev-2"))

	all, err := sink.Recent(ctx, "dev-1", 0)
	require.NoError(t, err)
	// MAXLEN is approximate, so only the bounds are fixed.
	assert.GreaterOrEqual(t, len(all), maxLen)
	assert.LessOrEqual(t, len(all), published)
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i-1].Reading.Timestamp, all[i].Reading.Timestamp)
	}
	assert.Equal(t, "dev-1-5", all[0].ID)

	latest, err := sink.Recent(ctx, "dev-1", 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, int64(published), latest[0].Reading.Timestamp)
	assert.Equal(t, imu.ExampleReading().Accelerometer, latest[0].Reading.Accelerometer)

	other, err := sink.Recent(ctx, "dev-2", 0)
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, "dev-2-99", other[0].ID)
}

func TestRecentUnknownDevice(t *testing.T) {
	sink, _, _ := newSink(t, 10)

	events, err := sink.Recent(context.Background(), "missing", 5)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRecentSkipsMalformedEntries(t *testing.T) {
	ctx := context.Background()
	sink, _, client := newSink(t, 0)

	require.NoError(t, sink.Publish(ctx, readingEvent("dev-1", 1)))
	require.NoError(t, client.XAdd(ctx, &redis.XAddArgs{
		Stream: "imuws:readings:dev-1",
		Values: map[string]interface{}{"data": "{"},
	}).Err())

	events, err := sink.Recent(ctx, "dev-1", 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "dev-1-1", events[0].ID)
}

func TestPublishRedisDown(t *testing.T) {
	sink, mr, _ := newSink(t, 10)
	mr.Close()

	err := sink.Publish(context.Background(), readingEvent("dev-1", 1))
	assert.Error(t, err)

	_, err = sink.Recent(context.Background(), "dev-1", 1)
	assert.Error(t, err)
}
