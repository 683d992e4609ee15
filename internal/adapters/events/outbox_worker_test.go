package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/studenthub/directory-service/internal/ports"
)

type memOutbox struct {
	mu      sync.Mutex
	records []ports.OutboxRecord
}

func (m *memOutbox) Enqueue(_ context.Context, event ports.OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, ports.OutboxRecord{
		OutboxID:     event.EventID,
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      event.Payload,
		FirstSeenAt:  event.OccurredAt,
	})
	return nil
}

func (m *memOutbox) FetchUnpublished(_ context.Context, limit int) ([]ports.OutboxRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ports.OutboxRecord
	for _, rec := range m.records {
		if rec.PublishedAt == nil {
			out = append(out, rec)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memOutbox) MarkPublished(_ context.Context, outboxID uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, rec := range m.records {
		if rec.OutboxID == outboxID {
			published := at
			m.records[i].PublishedAt = &published
			return nil
		}
	}
	return errors.New("record not found")
}

func (m *memOutbox) MarkFailed(_ context.Context, outboxID uuid.UUID, errMsg string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, rec := range m.records {
		if rec.OutboxID == outboxID {
			m.records[i].RetryCount++
			m.records[i].LastError = &errMsg
			m.records[i].LastErrorAt = &at
			return nil
		}
	}
	return errors.New("record not found")
}

func (m *memOutbox) record(outboxID uuid.UUID) (ports.OutboxRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.records {
		if rec.OutboxID == outboxID {
			return rec, true
		}
	}
	return ports.OutboxRecord{}, false
}

type recordingPublisher struct {
	mu        sync.Mutex
	published []string
	failTypes map[string]bool
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, _ []byte, _ string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failTypes[eventType] {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, eventType)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func enqueue(t *testing.T, outbox *memOutbox, eventType string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	err := outbox.Enqueue(context.Background(), ports.OutboxEvent{
		EventID:      id,
		EventType:    eventType,
		PartitionKey: "user-1",
		Payload:      []byte(`{}`),
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	return id
}

func TestOutboxWorkerPublishesPending(t *testing.T) {
	t.Parallel()

	outbox := &memOutbox{}
	publisher := &recordingPublisher{}
	worker := NewOutboxWorker(discardLogger(), outbox, publisher, time.Second, 10)

	first := enqueue(t, outbox, "user.registered")
	second := enqueue(t, outbox, "user.approved")

	if err := worker.processOnce(context.Background()); err != nil {
		t.Fatalf("process: %v", err)
	}

	if len(publisher.published) != 2 {
		t.Fatalf("expected 2 publishes, got %v", publisher.published)
	}
	for _, id := range []uuid.UUID{first, second} {
		rec, ok := outbox.record(id)
		if !ok || rec.PublishedAt == nil {
			t.Fatalf("record %s not marked published", id)
		}
	}

	// A second pass finds nothing left to do.
	if err := worker.processOnce(context.Background()); err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if len(publisher.published) != 2 {
		t.Fatalf("published records were re-sent: %v", publisher.published)
	}
}

func TestOutboxWorkerRetainsFailedRecords(t *testing.T) {
	t.Parallel()

	outbox := &memOutbox{}
	publisher := &recordingPublisher{failTypes: map[string]bool{"profile.content_flagged": true}}
	worker := NewOutboxWorker(discardLogger(), outbox, publisher, time.Second, 10)

	good := enqueue(t, outbox, "user.registered")
	bad := enqueue(t, outbox, "profile.content_flagged")

	if err := worker.processOnce(context.Background()); err != nil {
		t.Fatalf("process: %v", err)
	}

	rec, _ := outbox.record(good)
	if rec.PublishedAt == nil {
		t.Fatalf("healthy record should be published")
	}

	rec, _ = outbox.record(bad)
	if rec.PublishedAt != nil {
		t.Fatalf("failed record must stay unpublished")
	}
	if rec.RetryCount != 1 || rec.LastError == nil {
		t.Fatalf("failure not recorded: %+v", rec)
	}

	// Once the broker recovers the record goes out on the next pass.
	publisher.failTypes = nil
	if err := worker.processOnce(context.Background()); err != nil {
		t.Fatalf("retry pass: %v", err)
	}
	rec, _ = outbox.record(bad)
	if rec.PublishedAt == nil {
		t.Fatalf("recovered record should be published on retry")
	}
}

func TestOutboxWorkerRespectsBatchSize(t *testing.T) {
	t.Parallel()

	outbox := &memOutbox{}
	publisher := &recordingPublisher{}
	worker := NewOutboxWorker(discardLogger(), outbox, publisher, time.Second, 1)

	enqueue(t, outbox, "user.registered")
	enqueue(t, outbox, "user.approved")

	if err := worker.processOnce(context.Background()); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(publisher.published) != 1 {
		t.Fatalf("batch size 1 should publish one record, got %v", publisher.published)
	}
}
