package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/request"
)

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

// Create inserts the request and its documents in one transaction.
func (r *RequestRepository) Create(ctx context.Context, in *request.Entity) (*request.Entity, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	q := `
INSERT INTO credit_requests (client_rut, type_loan, category, term, interest_rate, amount, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, client_rut, type_loan, category, term, interest_rate, amount, status, created_at, updated_at
`
	out := &request.Entity{}
	err = tx.QueryRow(ctx, q,
		in.ClientRut, in.TypeLoan, string(in.Category), in.Term, in.InterestRate, in.Amount, in.Status,
	).Scan(
		&out.ID, &out.ClientRut, &out.TypeLoan, &out.Category, &out.Term,
		&out.InterestRate, &out.Amount, &out.Status, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	docQ := `INSERT INTO request_documents (request_id, doc_type, content, checksum) VALUES ($1, $2, $3, $4)`
	for _, d := range in.Documents {
		if _, err := tx.Exec(ctx, docQ, out.ID, string(d.Type), d.Content, d.Checksum); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	out.Documents = in.Documents
	return out, nil
}

// GetByID loads a request with its document metadata. Content stays in
// the database until a specific document is fetched.
func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*request.Entity, error) {
	q := `
SELECT id, client_rut, type_loan, category, term, interest_rate, amount, status, created_at, updated_at
FROM credit_requests WHERE id = $1
`
	out := &request.Entity{}
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&out.ID, &out.ClientRut, &out.TypeLoan, &out.Category, &out.Term,
		&out.InterestRate, &out.Amount, &out.Status, &out.CreatedAt, &out.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("request %d: %w", id, request.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `SELECT doc_type, checksum FROM request_documents WHERE request_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out.Documents = map[request.DocumentType]request.Document{}
	for rows.Next() {
		var docType, checksum string
		if err := rows.Scan(&docType, &checksum); err != nil {
			return nil, err
		}
		dt := request.DocumentType(docType)
		out.Documents[dt] = request.Document{Type: dt, Checksum: checksum}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RequestRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM credit_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("request %d: %w", id, request.ErrNotFound)
	}
	return nil
}

// UpdateStatus writes the new label and appends a status event in the
// same transaction, so the event log never drifts from the request.
func (r *RequestRepository) UpdateStatus(ctx context.Context, id int64, code request.Status, label string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE credit_requests SET status = $2, updated_at = NOW() WHERE id = $1`, id, label)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("request %d: %w", id, request.ErrNotFound)
	}

	eventQ := `
INSERT INTO request_status_events (request_id, client_rut, code, label)
SELECT id, client_rut, $2, $3 FROM credit_requests WHERE id = $1
`
	if _, err := tx.Exec(ctx, eventQ, id, string(code), label); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *RequestRepository) GetDocument(ctx context.Context, id int64, docType request.DocumentType) (*request.Document, error) {
	q := `
SELECT doc_type, content, checksum
FROM request_documents
WHERE request_id = $1 AND doc_type = $2 AND octet_length(content) > 0
`
	out := &request.Document{}
	var dt string
	err := r.pool.QueryRow(ctx, q, id, string(docType)).Scan(&dt, &out.Content, &out.Checksum)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("request %d document %s: %w", id, docType, request.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	out.Type = request.DocumentType(dt)
	return out, nil
}
