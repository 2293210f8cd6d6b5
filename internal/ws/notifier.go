package ws

import (
	"context"
	"encoding/json"
	"time"
)

// StatusEvent mirrors one row of the status transition log.
type StatusEvent struct {
	ID         int64
	RequestID  int64
	Rut        string
	Code       string
	Label      string
	OccurredAt time.Time
}

type RealtimeRepository interface {
	ListStatusEventsSince(ctx context.Context, lastID int64, limit int32) ([]StatusEvent, error)
}

// Notifier polls the status event log and pushes each transition to the
// owning client's channel and to the executive board feed.
type Notifier struct {
	repo         RealtimeRepository
	hub          *Hub
	pollInterval time.Duration
	lastID       int64
}

func NewNotifier(repo RealtimeRepository, hub *Hub, pollInterval time.Duration) *Notifier {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &Notifier{repo: repo, hub: hub, pollInterval: pollInterval}
}

func (n *Notifier) Run(ctx context.Context) error {
	ticker := time.NewTicker(n.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := n.tick(ctx); err != nil {
				return err
			}
		}
	}
}

func (n *Notifier) tick(ctx context.Context) error {
	events, err := n.repo.ListStatusEventsSince(ctx, n.lastID, 100)
	if err != nil {
		return err
	}
	for _, ev := range events {
		if ev.ID > n.lastID {
			n.lastID = ev.ID
		}
		payload, _ := json.Marshal(map[string]any{
			"event": "status_changed",
			"data": map[string]any{
				"request_id":  ev.RequestID,
				"rut":         ev.Rut,
				"code":        ev.Code,
				"status":      ev.Label,
				"occurred_at": ev.OccurredAt.UTC().Format(time.RFC3339),
			},
		})
		n.hub.Publish("client:requests:"+ev.Rut, payload)
		n.hub.Publish("requests:status", payload)
	}
	return nil
}
