package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/catalog"
)

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) FindByTypeLoan(ctx context.Context, typeLoan string) (*catalog.LoanType, error) {
	q := `
SELECT id, type_loan, maximum_term, interest_rate_min, interest_rate_max, maximum_amount
FROM loan_types WHERE type_loan = $1
`
	out := &catalog.LoanType{}
	err := r.pool.QueryRow(ctx, q, typeLoan).Scan(
		&out.ID, &out.TypeLoan, &out.MaximumTerm,
		&out.InterestRateMin, &out.InterestRateMax, &out.MaximumAmount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("loan type %s: %w", typeLoan, catalog.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogRepository) All(ctx context.Context) ([]catalog.LoanType, error) {
	q := `
SELECT id, type_loan, maximum_term, interest_rate_min, interest_rate_max, maximum_amount
FROM loan_types ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.LoanType, 0)
	for rows.Next() {
		var item catalog.LoanType
		if err := rows.Scan(
			&item.ID, &item.TypeLoan, &item.MaximumTerm,
			&item.InterestRateMin, &item.InterestRateMax, &item.MaximumAmount,
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
