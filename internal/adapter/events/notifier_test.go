package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/kakigori/storefront/internal/domain/model"
	testhelpers "github.com/kakigori/storefront/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type message struct {
	subject string
	data    []byte
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []message
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, msg []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, message{subject: subject, data: msg})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func newNotifier(inner *testhelpers.OrderGatewayStub, pub Publisher) *NotifyingClient {
	c := NewNotifyingClient(inner, pub, "kakigori.orders", testLogger())
	c.now = func() time.Time { return time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC) }
	return c
}

func TestNotifyingClientPublishesCreate(t *testing.T) {
	inner := &testhelpers.OrderGatewayStub{}
	pub := &recordingPublisher{}
	c := newNotifier(inner, pub)

	order, err := c.CreateOrder(context.Background(), "store-001", "m1", model.Credentials{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.messages) != 1 {
		t.Fatalf("expected one event, got %d", len(pub.messages))
	}
	msg := pub.messages[0]
	if msg.subject != "kakigori.orders.store-001.created" {
		t.Fatalf("unexpected subject %s", msg.subject)
	}
	var ev OrderEvent
	if err := json.Unmarshal(msg.data, &ev); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if ev.OrderID != order.ID || ev.Kind != KindCreated || ev.Status != model.OrderStatusPending {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestNotifyingClientPublishesAdvances(t *testing.T) {
	inner := &testhelpers.OrderGatewayStub{Orders: []model.Order{
		{ID: "a", OrderNumber: 1, Status: model.OrderStatusPending},
		{ID: "b", OrderNumber: 2, Status: model.OrderStatusWaitingPickup},
	}}
	pub := &recordingPublisher{}
	c := newNotifier(inner, pub)
	ctx := context.Background()

	if _, err := c.AdvanceToWaitingPickup(ctx, "store-001", "a", model.Credentials{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.AdvanceToComplete(ctx, "store-001", "b", model.Credentials{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.messages) != 2 {
		t.Fatalf("expected two events, got %d", len(pub.messages))
	}
	for _, msg := range pub.messages {
		if msg.subject != "kakigori.orders.store-001.advanced" {
			t.Fatalf("unexpected subject %s", msg.subject)
		}
	}
}

func TestNotifyingClientSkipsFailures(t *testing.T) {
	inner := &testhelpers.OrderGatewayStub{
		CreateFn: func(context.Context, string, string, model.Credentials) (*model.Order, error) {
			return nil, errors.New("store closed")
		},
	}
	pub := &recordingPublisher{}
	c := newNotifier(inner, pub)

	if _, err := c.CreateOrder(context.Background(), "store-001", "m1", model.Credentials{}); err == nil {
		t.Fatal("expected error")
	}
	if len(pub.messages) != 0 {
		t.Fatal("failed calls must not publish")
	}
}

func TestNotifyingClientIgnoresPublishErrors(t *testing.T) {
	inner := &testhelpers.OrderGatewayStub{}
	pub := &recordingPublisher{err: errors.New("nats down")}
	c := newNotifier(inner, pub)

	if _, err := c.CreateOrder(context.Background(), "store-001", "m1", model.Credentials{}); err != nil {
		t.Fatalf("publish errors must not fail the call, got %v", err)
	}
}

func TestNotifyingClientPassesReadsThrough(t *testing.T) {
	inner := &testhelpers.OrderGatewayStub{Menu: []model.MenuItem{{ID: "m1", Name: "いちご"}}}
	pub := &recordingPublisher{}
	c := newNotifier(inner, pub)

	menu, err := c.ListMenu(context.Background(), "store-001", model.Credentials{})
	if err != nil || len(menu) != 1 {
		t.Fatalf("unexpected menu %v %v", menu, err)
	}
	if len(pub.messages) != 0 {
		t.Fatal("reads must not publish")
	}
}

func TestSubject(t *testing.T) {
	cases := map[string]string{
		"s":         "p.s.created",
		"store-001": "p.store-001.created",
		"a.b":       "p.a_b.created",
		"s.*":       "p.s__.created",
		">":         "p._.created",
		"a b\tc":    "p.a_b_c.created",
		"":          "p._.created",
	}
	for storeID, want := range cases {
		if got := Subject("p", storeID, KindCreated); got != want {
			t.Fatalf("store %q: expected subject %s, got %s", storeID, want, got)
		}
	}
}
