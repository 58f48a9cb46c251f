package producer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"org-access-registry/internal/telemetry/domain"
)

func TestNewKafkaProducer_DisabledWithoutBrokers(t *testing.T) {
	p, err := NewKafkaProducer(nil, "org-access-telemetry")
	if err != nil {
		t.Fatalf("NewKafkaProducer: %v", err)
	}
	if p != nil {
		t.Fatal("producer should be nil without brokers")
	}
	p, _ = NewKafkaProducer([]string{"localhost:9092"}, "")
	if p != nil {
		t.Fatal("producer should be nil without topic")
	}
}

func TestNewKafkaProducer(t *testing.T) {
	p, err := NewKafkaProducer([]string{"localhost:9092"}, "org-access-telemetry")
	if err != nil {
		t.Fatalf("NewKafkaProducer: %v", err)
	}
	defer p.Close()
	if p.Topic() != "org-access-telemetry" {
		t.Errorf("topic = %q", p.Topic())
	}
}

func TestKafkaProducer_NilSafe(t *testing.T) {
	var p *KafkaProducer
	if err := p.Emit(context.Background(), &domain.Event{}); err != nil {
		t.Errorf("nil Emit: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestEncodeMessage(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	msg, err := encodeMessage(&domain.Event{
		RequestID: "req-1",
		EventType: "http_request",
		Source:    "http_middleware",
		Metadata:  []byte(`{"status":200}`),
		CreatedAt: created,
	})
	if err != nil {
		t.Fatalf("encodeMessage: %v", err)
	}
	if string(msg.Key) != "req-1" {
		t.Errorf("key = %q, want req-1", msg.Key)
	}
	if len(msg.Headers) != 1 || string(msg.Headers[0].Value) != "http_request" {
		t.Errorf("headers = %v", msg.Headers)
	}
	var decoded domain.Event
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if decoded.Source != "http_middleware" || !decoded.CreatedAt.Equal(created) {
		t.Errorf("decoded = %+v", decoded)
	}

	msg, err = encodeMessage(&domain.Event{EventType: "x"})
	if err != nil {
		t.Fatalf("encodeMessage: %v", err)
	}
	if msg.Key != nil {
		t.Errorf("key = %q, want nil without request id", msg.Key)
	}
}
