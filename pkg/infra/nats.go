// Package infra holds connection helpers for external infrastructure.
package infra

import (
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// ConnectNATS dials the NATS server with endless reconnects and logged
// connection state changes. An empty URL falls back to the default server.
func ConnectNATS(url string) (*nats.Conn, error) {
	if url == "" {
		url = nats.DefaultURL
	}

	opts := []nats.Option{
		nats.MaxReconnects(-1), // retry forever
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectHandler(func(nc *nats.Conn) {
			slog.Warn("Disconnected from NATS")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("Reconnected to NATS", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			slog.Info("NATS connection closed")
		}),
	}

	return nats.Connect(url, opts...)
}
