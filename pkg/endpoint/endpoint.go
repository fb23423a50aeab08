// Package endpoint builds the WebSocket URLs for the IMU service.
package endpoint

import (
	"errors"
	"fmt"
	"net/url"
)

// DefaultHost is the public deployment of the IMU service
const DefaultHost = "personal-site-oi5a.onrender.com"

// DefaultScheme is the secure WebSocket scheme
const DefaultScheme = "wss"

var (
	// ErrEmptyHost is returned when no host is configured
	ErrEmptyHost = errors.New("host is required")
	// ErrEmptyID is returned when the device identifier is empty
	ErrEmptyID = errors.New("device id is required")
	// ErrScheme is returned for schemes other than ws and wss
	ErrScheme = errors.New("scheme must be ws or wss")
)

// IMUUploadURL returns the upload URL for the given device
func IMUUploadURL(scheme, host, id string) (string, error) {
	if err := check(scheme, host); err != nil {
		return "", err
	}
	if id == "" {
		return "", ErrEmptyID
	}
	return fmt.Sprintf("%s://%s/api/ws/imu/%s/upload/", scheme, host, url.PathEscape(id)), nil
}

// PingURL returns the ping endpoint URL
func PingURL(scheme, host string) (string, error) {
	if err := check(scheme, host); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s://%s/api/ws/ping/", scheme, host), nil
}

func check(scheme, host string) error {
	if scheme != "ws" && scheme != "wss" {
		return fmt.Errorf("%w: %q", ErrScheme, scheme)
	}
	if host == "" {
		return ErrEmptyHost
	}
	return nil
}
