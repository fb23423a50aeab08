// Package wsclient wraps gorilla/websocket for short request/response
// sessions: dial, exchange a few text frames, close.
package wsclient
