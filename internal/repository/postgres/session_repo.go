package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/auth"
)

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) CreateSession(ctx context.Context, clientRut, refreshHash, userAgent, ipAddress string, expiresAt time.Time) (*auth.Session, error) {
	q := `
INSERT INTO sessions (client_rut, refresh_token_hash, user_agent, ip_address, expires_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, client_rut, refresh_token_hash, user_agent, ip_address, expires_at, revoked_at, created_at
`
	out := &auth.Session{}
	err := r.pool.QueryRow(ctx, q, clientRut, refreshHash, userAgent, ipAddress, expiresAt).Scan(
		&out.ID, &out.ClientRut, &out.RefreshTokenHash, &out.UserAgent,
		&out.IPAddress, &out.ExpiresAt, &out.RevokedAt, &out.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SessionRepository) GetSessionByID(ctx context.Context, sessionID string) (*auth.Session, error) {
	q := `
SELECT id, client_rut, refresh_token_hash, user_agent, ip_address, expires_at, revoked_at, created_at
FROM sessions WHERE id = $1
`
	out := &auth.Session{}
	err := r.pool.QueryRow(ctx, q, sessionID).Scan(
		&out.ID, &out.ClientRut, &out.RefreshTokenHash, &out.UserAgent,
		&out.IPAddress, &out.ExpiresAt, &out.RevokedAt, &out.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SessionRepository) RevokeSession(ctx context.Context, sessionID string) error {
	_, err := r.pool.Exec(ctx, `UPDATE sessions SET revoked_at = NOW() WHERE id = $1 AND revoked_at IS NULL`, sessionID)
	return err
}

func (r *SessionRepository) UpdateSessionRefreshHash(ctx context.Context, sessionID, refreshHash string) error {
	_, err := r.pool.Exec(ctx, `UPDATE sessions SET refresh_token_hash = $2 WHERE id = $1`, sessionID, refreshHash)
	return err
}
