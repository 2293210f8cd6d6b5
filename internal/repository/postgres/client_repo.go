package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/client"
)

type ClientRepository struct {
	pool *pgxpool.Pool
}

func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

func (r *ClientRepository) Create(ctx context.Context, in *client.Entity) (*client.Entity, error) {
	q := `
INSERT INTO clients (rut, name, last_name, email, password_hash, date_of_birth)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, rut, name, last_name, email, password_hash, date_of_birth, request_ids, created_at
`
	out := &client.Entity{}
	err := r.pool.QueryRow(ctx, q,
		in.Rut, in.Name, in.LastName, in.Email, in.PasswordHash, in.DateOfBirth,
	).Scan(
		&out.ID, &out.Rut, &out.Name, &out.LastName, &out.Email,
		&out.PasswordHash, &out.DateOfBirth, &out.RequestIDs, &out.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ClientRepository) FindByRut(ctx context.Context, rut string) (*client.Entity, error) {
	q := `
SELECT id, rut, name, last_name, email, password_hash, date_of_birth, request_ids, created_at
FROM clients WHERE rut = $1
`
	out := &client.Entity{}
	err := r.pool.QueryRow(ctx, q, rut).Scan(
		&out.ID, &out.Rut, &out.Name, &out.LastName, &out.Email,
		&out.PasswordHash, &out.DateOfBirth, &out.RequestIDs, &out.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("client %s: %w", rut, client.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ClientRepository) All(ctx context.Context) ([]client.Entity, error) {
	q := `
SELECT id, rut, name, last_name, email, password_hash, date_of_birth, request_ids, created_at
FROM clients ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]client.Entity, 0)
	for rows.Next() {
		var item client.Entity
		if err := rows.Scan(
			&item.ID, &item.Rut, &item.Name, &item.LastName, &item.Email,
			&item.PasswordHash, &item.DateOfBirth, &item.RequestIDs, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ClientRepository) AppendRequestID(ctx context.Context, rut string, requestID int64) error {
	q := `UPDATE clients SET request_ids = array_append(request_ids, $2), updated_at = NOW() WHERE rut = $1`
	tag, err := r.pool.Exec(ctx, q, rut, requestID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("client %s: %w", rut, client.ErrNotFound)
	}
	return nil
}
