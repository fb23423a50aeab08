package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultReadingsLimit = 20
	maxReadingsLimit     = 1000
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleRecentReadings returns the newest readings for a device
func (s *Server) handleRecentReadings(c *gin.Context) {
	deviceID := c.Param("id")

	limit := defaultReadingsLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxReadingsLimit {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: ErrorDetail{
					Code:    "INVALID_LIMIT",
					Message: "limit must be between 1 and 1000",
				},
			})
			return
		}
		limit = n
	}

	events, err := s.sink.Recent(c.Request.Context(), deviceID, limit)
	if err != nil {
		s.logger.Error("failed to read readings", zap.String("device_id", deviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{
				Code:    "SINK_ERROR",
				Message: "Failed to retrieve readings",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"device_id": deviceID,
		"readings":  events,
		"total":     len(events),
	})
}
