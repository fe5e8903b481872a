package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"amat_hosting/internal/config"
	"amat_hosting/internal/domain/entities"
)

type recordingClient struct {
	keys   [][]byte
	values [][]byte
	err    error
}

func (r *recordingClient) Publish(_ context.Context, key []byte, value []byte) error {
	if r.err != nil {
		return r.err
	}
	r.keys = append(r.keys, key)
	r.values = append(r.values, value)
	return nil
}

func (r *recordingClient) Topic() string { return "hosting.orders" }
func (r *recordingClient) Close() error  { return nil }

func TestOrderEventPublisher_Publish(t *testing.T) {
	rc := &recordingClient{}
	p := NewOrderEventPublisher(rc)

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	order := entities.Order{OrderID: "AMAT-1", CustomerRef: "amat", PackageID: "bot-sentinel", Status: entities.OrderStatusActive, TotalPrice: 550}
	if err := p.Publish(context.Background(), entities.NewOrderEvent(order, at)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rc.keys) != 1 || string(rc.keys[0]) != "AMAT-1" {
		t.Fatalf("unexpected keys %q", rc.keys)
	}
	var got entities.OrderEvent
	if err := json.Unmarshal(rc.values[0], &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Type != entities.OrderEventActivated || got.Status != entities.OrderStatusActive || !got.OccurredAt.Equal(at) {
		t.Fatalf("unexpected event %+v", got)
	}
}

func TestOrderEventPublisher_PublishErrorNamesTopic(t *testing.T) {
	brokerDown := errors.New("broker down")
	p := NewOrderEventPublisher(&recordingClient{err: brokerDown})

	order := entities.Order{OrderID: "AMAT-1", Status: entities.OrderStatusActive}
	err := p.Publish(context.Background(), entities.NewOrderEvent(order, time.Now()))
	if !errors.Is(err, brokerDown) {
		t.Fatalf("expected wrapped broker error, got %v", err)
	}
	if !strings.Contains(err.Error(), "hosting.orders") {
		t.Fatalf("expected topic in error, got %q", err.Error())
	}
}

func TestNewClient(t *testing.T) {
	c, err := NewClient(config.Messaging{Driver: config.MessagingDriverNoop, Topic: "hosting.orders"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Topic() != "hosting.orders" {
		t.Fatalf("unexpected topic %q", c.Topic())
	}
	if err := c.Publish(context.Background(), nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	k, err := NewClient(config.Messaging{Driver: config.MessagingDriverKafka, Brokers: []string{"127.0.0.1:9092"}, Topic: "hosting.orders", ClientID: "test"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k.Topic() != "hosting.orders" {
		t.Fatalf("unexpected topic %q", k.Topic())
	}
	_ = k.Close()

	if _, err := NewClient(config.Messaging{Driver: "nats"}, nil); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}
