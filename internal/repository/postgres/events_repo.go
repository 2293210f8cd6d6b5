package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/ws"
)

type EventsRepository struct {
	pool *pgxpool.Pool
}

func NewEventsRepository(pool *pgxpool.Pool) *EventsRepository {
	return &EventsRepository{pool: pool}
}

func (r *EventsRepository) ListStatusEventsSince(ctx context.Context, lastID int64, limit int32) ([]ws.StatusEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	q := `
SELECT id, request_id, client_rut, code, label, occurred_at
FROM request_status_events
WHERE id > $1
ORDER BY id ASC
LIMIT $2
`
	rows, err := r.pool.Query(ctx, q, lastID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ws.StatusEvent, 0)
	for rows.Next() {
		var ev ws.StatusEvent
		if err := rows.Scan(&ev.ID, &ev.RequestID, &ev.Rut, &ev.Code, &ev.Label, &ev.OccurredAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
