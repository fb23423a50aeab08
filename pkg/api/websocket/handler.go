package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aescanero/imuws/pkg/imu"
	"github.com/aescanero/imuws/pkg/ports"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// maxFrameSize bounds a single incoming frame
const maxFrameSize = 64 << 10

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Devices connect without an Origin header
	},
}

// UploadAck is sent back for every IMU frame
type UploadAck struct {
	Status string `json:"status"`
	ID     string `json:"id,omitempty"`
	Device string `json:"device,omitempty"`
	Error  string `json:"error,omitempty"`
}

// PingReply is sent back for every ping frame
type PingReply struct {
	Status     string `json:"status"`
	ImageBytes int    `json:"image_bytes"`
	Error      string `json:"error,omitempty"`
}

// Handler serves the IMU upload and ping endpoints
type Handler struct {
	sink     ports.ReadingSink
	metrics  ports.MetricsCollector
	greeting string
	logger   *zap.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(sink ports.ReadingSink, metrics ports.MetricsCollector, greeting string, logger *zap.Logger) *Handler {
	return &Handler{
		sink:     sink,
		metrics:  metrics,
		greeting: greeting,
		logger:   logger,
	}
}

// HandleIMUUpload accepts readings for one device until the client disconnects
func (h *Handler) HandleIMUUpload(c *gin.Context) {
	deviceID := c.Param("id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("failed to upgrade connection", zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()
	conn.SetReadLimit(maxFrameSize)

	h.logger.Info("IMU connection established",
		zap.String("device_id", deviceID),
		zap.String("client", c.ClientIP()))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h.logDisconnect(deviceID, err)
			return
		}

		ack := h.ingest(c, deviceID, data)
		if err := conn.WriteJSON(ack); err != nil {
			h.logger.Error("failed to write message", zap.Error(err))
			return
		}
	}
}

// ingest decodes and stores one reading
func (h *Handler) ingest(c *gin.Context, deviceID string, data []byte) UploadAck {
	reading, err := imu.DecodeReading(data)
	if err != nil {
		h.logger.Warn("rejected malformed reading",
			zap.String("device_id", deviceID),
			zap.Error(err))
		return UploadAck{Status: "error", Error: err.Error()}
	}

	event := ports.ReadingEvent{
		ID:         uuid.NewString(),
		DeviceID:   deviceID,
		ReceivedAt: time.Now().UTC(),
		Reading:    reading,
	}
	if err := h.sink.Publish(c.Request.Context(), event); err != nil {
		h.logger.Error("failed to store reading",
			zap.String("device_id", deviceID),
			zap.Error(err))
		return UploadAck{Status: "error", Error: "failed to store reading"}
	}

	h.metrics.IncReadingsIngested(deviceID)
	return UploadAck{Status: "ok", ID: event.ID, Device: deviceID}
}

// HandlePing greets the client first, then answers every frame
func (h *Handler) HandlePing(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("failed to upgrade connection", zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()
	conn.SetReadLimit(maxFrameSize)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(h.greeting)); err != nil {
		h.logger.Error("failed to write greeting", zap.Error(err))
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h.logDisconnect("", err)
			return
		}

		var req imu.PingRequest
		reply := PingReply{Status: "pong"}
		if err := json.Unmarshal(data, &req); err != nil {
			reply = PingReply{Status: "error", Error: err.Error()}
		} else {
			reply.ImageBytes = len(req.Image)
		}

		if err := conn.WriteJSON(reply); err != nil {
			h.logger.Error("failed to write message", zap.Error(err))
			return
		}
	}
}

func (h *Handler) logDisconnect(deviceID string, err error) {
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		h.logger.Debug("client disconnected", zap.String("device_id", deviceID))
		return
	}
	h.logger.Warn("connection closed", zap.String("device_id", deviceID), zap.Error(err))
}
