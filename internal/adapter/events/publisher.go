package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/nats-io/nats.go"

	"github.com/kakigori/storefront/internal/domain/model"
)

// Event kinds published for orders.
const (
	KindCreated  = "created"
	KindAdvanced = "advanced"
)

// OrderEvent announces a change made to an order through this service.
type OrderEvent struct {
	Kind        string            `json:"kind"`
	StoreID     string            `json:"store_id"`
	OrderID     string            `json:"order_id"`
	OrderNumber int               `json:"order_number"`
	Status      model.OrderStatus `json:"status"`
	OccurredAt  time.Time         `json:"occurred_at"`
}

// Publisher delivers raw messages to a subject.
type Publisher interface {
	Publish(ctx context.Context, subject string, msg []byte) error
	Close() error
}

// NATSPublisher publishes over a core NATS connection.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to the NATS server at url.
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("kakigori-storefront"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.conn.Publish(subject, msg)
}

func (p *NATSPublisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return err
	}
	return nil
}

// NopPublisher drops every message.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, []byte) error { return nil }

func (NopPublisher) Close() error { return nil }

// Subject returns the subject an event of kind for storeID is published on.
// The store id always forms exactly one token.
func Subject(prefix, storeID, kind string) string {
	return prefix + "." + subjectToken(storeID) + "." + kind
}

func subjectToken(s string) string {
	if s == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		if r == '.' || r == '*' || r == '>' || unicode.IsSpace(r) || unicode.IsControl(r) {
			return '_'
		}
		return r
	}, s)
}

func encode(ev OrderEvent) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encode order event: %w", err)
	}
	return data, nil
}
