package events

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// NATSPublisher mirrors change events onto a NATS subject so other local
// tools can follow the tracker.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
	logger  *zap.Logger
}

func NewNATSPublisher(url, subject string, logger *zap.Logger) (*NATSPublisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, err := nats.Connect(url,
		nats.Name("jobtracker-engine"),
		nats.Timeout(3*time.Second),
		nats.MaxReconnects(5),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", zap.Error(err))
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", url, err)
	}
	return &NATSPublisher{conn: conn, subject: subject, logger: logger}, nil
}

// Publish never blocks the cycle; failures are logged and dropped.
func (p *NATSPublisher) Publish(evt string) {
	if err := p.conn.Publish(p.subject, []byte(evt)); err != nil {
		p.logger.Warn("nats publish failed", zap.String("subject", p.subject), zap.Error(err))
	}
}

func (p *NATSPublisher) Close() {
	if p.conn == nil {
		return
	}
	_ = p.conn.Drain()
}
