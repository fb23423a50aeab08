package wsclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var (
	// ErrDial is returned when the connection cannot be opened
	ErrDial = errors.New("failed to connect")
	// ErrSend is returned when a frame cannot be written
	ErrSend = errors.New("failed to send message")
	// ErrReceive is returned when a frame cannot be read
	ErrReceive = errors.New("failed to receive message")
)

// Config holds dialer configuration
type Config struct {
	// HandshakeTimeout bounds the opening handshake. Zero means no timeout.
	HandshakeTimeout time.Duration
	ReadBufferSize   int
	WriteBufferSize  int
	Logger           *zap.Logger
}

// Client opens WebSocket sessions
type Client struct {
	dialer *websocket.Dialer
	logger *zap.Logger
}

// NewClient creates a new WebSocket client
func NewClient(cfg *Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = cfg.HandshakeTimeout
	if cfg.ReadBufferSize > 0 {
		dialer.ReadBufferSize = cfg.ReadBufferSize
	}
	if cfg.WriteBufferSize > 0 {
		dialer.WriteBufferSize = cfg.WriteBufferSize
	}

	return &Client{
		dialer: &dialer,
		logger: logger,
	}
}

// Dial opens a session to url. The caller must Close the session.
func (c *Client) Dial(ctx context.Context, url string) (*Session, error) {
	conn, resp, err := c.dialer.DialContext(ctx, url, nil)
	if err != nil {
		fields := []zap.Field{zap.String("url", url), zap.Error(err)}
		if resp != nil {
			fields = append(fields, zap.Int("status", resp.StatusCode))
		}
		c.logger.Debug("dial failed", fields...)
		return nil, fmt.Errorf("%w to %s: %w", ErrDial, url, err)
	}

	c.logger.Debug("connection established", zap.String("url", url))

	return &Session{
		conn:   conn,
		url:    url,
		logger: c.logger,
	}, nil
}

// Session is a single open WebSocket connection
type Session struct {
	conn   *websocket.Conn
	url    string
	logger *zap.Logger
}

// SendText writes one text frame
func (s *Session) SendText(ctx context.Context, msg string) error {
	if deadline, ok := ctx.Deadline(); ok {
		_ = s.conn.SetWriteDeadline(deadline)
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		return fmt.Errorf("%w: %w", ErrSend, err)
	}

	s.logger.Debug("message sent", zap.String("url", s.url), zap.Int("bytes", len(msg)))
	return nil
}

// SendJSON encodes v and writes it as one text frame
func (s *Session) SendJSON(ctx context.Context, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	return s.SendText(ctx, string(data))
}

// Receive blocks until one data frame arrives and returns its payload
func (s *Session) Receive(ctx context.Context) (string, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = s.conn.SetReadDeadline(deadline)
	}

	_, data, err := s.conn.ReadMessage()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReceive, err)
	}

	s.logger.Debug("message received", zap.String("url", s.url), zap.Int("bytes", len(data)))
	return string(data), nil
}

// Close sends a normal closure frame and releases the connection
func (s *Session) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))

	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}
