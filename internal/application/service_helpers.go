package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/studenthub/directory-service/internal/domain"
	"github.com/studenthub/directory-service/internal/ports"
)

const (
	eventTypeUserRegistered = "user.registered"
	eventTypeUserApproved   = "user.approved"
	eventTypeUserRejected   = "user.rejected"
	eventTypeProfileUpdated = "user.profile_updated"
	eventTypeContentFlagged = "profile.content_flagged"
)

func (s *Service) enqueueEvent(ctx context.Context, eventType string, userID uuid.UUID, data map[string]any) {
	occurredAt := s.nowFn()
	if data == nil {
		data = map[string]any{}
	}
	data["user_id"] = userID.String()
	payload, _ := json.Marshal(map[string]any{
		"event_id":       uuid.NewString(),
		"event_type":     eventType,
		"occurred_at":    occurredAt.Format(time.RFC3339),
		"source_service": s.cfg.ServiceName,
		"data":           data,
	})
	// Outbox failures must not fail the request; the write that mattered
	// already happened.
	_ = s.outbox.Enqueue(ctx, ports.OutboxEvent{
		EventID:      uuid.New(),
		EventType:    eventType,
		PartitionKey: userID.String(),
		Payload:      payload,
		OccurredAt:   occurredAt,
	})
}

func hashRequest(v any) string {
	raw, _ := json.Marshal(v)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func (s *Service) reserveIdempotency(ctx context.Context, key string, request any) error {
	if key == "" {
		return nil
	}
	if err := s.idempotency.Reserve(ctx, key, hashRequest(request), s.nowFn().Add(s.cfg.IdempotencyTTL)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	}
	return nil
}

func (s *Service) completeIdempotency(ctx context.Context, key string, code int, response any) {
	if key == "" {
		return
	}
	body, _ := json.Marshal(response)
	_ = s.idempotency.Complete(ctx, key, code, body, s.nowFn())
}

func cacheKeyProfile(username string) string {
	return "directory:profile:" + username
}
