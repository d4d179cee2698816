// Package natsstan publishes integration events to NATS Streaming.
package natsstan

import (
	"context"
	"fmt"
	"time"

	"ordering/internal/core/application/integration"
	"ordering/internal/core/ports"

	stan "github.com/nats-io/stan.go"
)

// Conn is the part of stan.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

// Publisher sends each event to the subject named after its topic. Publish
// returns once the streaming server acknowledged the message.
type Publisher struct {
	conn Conn
}

var _ ports.EventPublisher = (*Publisher)(nil)

func NewPublisher(conn Conn) *Publisher {
	return &Publisher{conn: conn}
}

func (p *Publisher) Publish(ctx context.Context, event integration.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := integration.Encode(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.ID, err)
	}
	return p.conn.Publish(event.Topic, data)
}

// Connect opens a streaming connection. A fresh client id is generated when
// clientID is empty, since the server rejects two connections with the same id.
func Connect(clusterID, clientID, url string) (stan.Conn, error) {
	if clientID == "" {
		clientID = fmt.Sprintf("ordering-%d", time.Now().UnixNano())
	}
	conn, err := stan.Connect(clusterID, clientID, stan.NatsURL(url))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to streaming cluster %s: %w", clusterID, err)
	}
	return conn, nil
}
