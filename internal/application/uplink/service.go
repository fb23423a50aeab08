package uplink

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aescanero/imuws/pkg/adapters/wsclient"
	"github.com/aescanero/imuws/pkg/endpoint"
	"github.com/aescanero/imuws/pkg/imu"
	"github.com/aescanero/imuws/pkg/ports"
	"go.uber.org/zap"
)

// Endpoint labels used for metrics and logs
const (
	EndpointIMUUpload = "imu_upload"
	EndpointPing      = "ping"
)

// Service runs the one-shot exchanges against the IMU service
type Service struct {
	scheme  string
	host    string
	client  *wsclient.Client
	metrics ports.MetricsCollector
	out     io.Writer
	logger  *zap.Logger
}

// Config holds service dependencies
type Config struct {
	Scheme  string
	Host    string
	Client  *wsclient.Client
	Metrics ports.MetricsCollector
	// Out receives the exchange transcript
	Out    io.Writer
	Logger *zap.Logger
}

// PingResult holds both messages read from the ping endpoint
type PingResult struct {
	Greeting string
	Reply    string
}

// NewService creates a new uplink service
func NewService(cfg *Config) *Service {
	s := &Service{
		scheme:  cfg.Scheme,
		host:    cfg.Host,
		client:  cfg.Client,
		metrics: cfg.Metrics,
		out:     cfg.Out,
		logger:  cfg.Logger,
	}
	if s.scheme == "" {
		s.scheme = endpoint.DefaultScheme
	}
	if s.metrics == nil {
		s.metrics = ports.NoopMetrics{}
	}
	if s.out == nil {
		s.out = io.Discard
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// UploadIMU connects to the device upload endpoint, sends one reading and
// returns the single reply.
func (s *Service) UploadIMU(ctx context.Context, imuID string, reading imu.Reading) (reply string, err error) {
	url, err := endpoint.IMUUploadURL(s.scheme, s.host, imuID)
	if err != nil {
		return "", fmt.Errorf("failed to build upload URL: %w", err)
	}

	defer s.observe(EndpointIMUUpload, time.Now(), &err)

	fmt.Fprintf(s.out, "Connecting to %s...\n", url)
	sess, err := s.client.Dial(ctx, url)
	if err != nil {
		return "", err
	}
	defer s.closeSession(sess, url)

	message, err := reading.Encode()
	if err != nil {
		return "", err
	}

	fmt.Fprintf(s.out, "Sending data: %s\n", message)
	if err := s.send(ctx, sess, EndpointIMUUpload, message); err != nil {
		return "", err
	}

	reply, err = s.receive(ctx, sess, EndpointIMUUpload)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(s.out, "Received from server: %s\n", reply)

	s.logger.Info("IMU reading uploaded",
		zap.String("imu_id", imuID),
		zap.Int64("timestamp", reading.Timestamp))

	return reply, nil
}

// Ping reads the server greeting, sends one request and reads one reply.
func (s *Service) Ping(ctx context.Context, req imu.PingRequest) (result *PingResult, err error) {
	url, err := endpoint.PingURL(s.scheme, s.host)
	if err != nil {
		return nil, fmt.Errorf("failed to build ping URL: %w", err)
	}

	defer s.observe(EndpointPing, time.Now(), &err)

	fmt.Fprintf(s.out, "Connecting to %s...\n", url)
	sess, err := s.client.Dial(ctx, url)
	if err != nil {
		return nil, err
	}
	defer s.closeSession(sess, url)

	greeting, err := s.receive(ctx, sess, EndpointPing)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(s.out, "Received from server: %s\n", greeting)

	message, err := req.Encode()
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(s.out, "Sending data: %s\n", message)
	if err := s.send(ctx, sess, EndpointPing, message); err != nil {
		return nil, err
	}

	reply, err := s.receive(ctx, sess, EndpointPing)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(s.out, "Received from server: %s\n", reply)

	return &PingResult{Greeting: greeting, Reply: reply}, nil
}

func (s *Service) send(ctx context.Context, sess *wsclient.Session, name, message string) error {
	if err := sess.SendText(ctx, message); err != nil {
		return err
	}
	s.metrics.IncMessagesSent(name)
	return nil
}

func (s *Service) receive(ctx context.Context, sess *wsclient.Session, name string) (string, error) {
	msg, err := sess.Receive(ctx)
	if err != nil {
		return "", err
	}
	s.metrics.IncMessagesReceived(name)
	return msg, nil
}

func (s *Service) closeSession(sess *wsclient.Session, url string) {
	if err := sess.Close(); err != nil {
		s.logger.Debug("close failed", zap.String("url", url), zap.Error(err))
	}
}

func (s *Service) observe(name string, start time.Time, err *error) {
	status := "ok"
	if *err != nil {
		status = "error"
	}
	s.metrics.RecordExchange(name, status, time.Since(start))
}
