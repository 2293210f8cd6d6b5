package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/evaluation"
)

type EvaluationRepository struct {
	pool *pgxpool.Pool
}

func NewEvaluationRepository(pool *pgxpool.Pool) *EvaluationRepository {
	return &EvaluationRepository{pool: pool}
}

func (r *EvaluationRepository) Save(ctx context.Context, in *evaluation.Entity) (*evaluation.Entity, error) {
	q := `
INSERT INTO credit_evaluations (
  request_id, income_quota, credit_history, employment_seniority,
  income_debt_relation, financing_limit, applicant_age, savings_capacity
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, request_id, income_quota, credit_history, employment_seniority,
          income_debt_relation, financing_limit, applicant_age, savings_capacity, created_at
`
	out := &evaluation.Entity{}
	err := r.pool.QueryRow(ctx, q,
		in.RequestID, in.IncomeQuota, in.CreditHistory, in.EmploymentSeniority,
		in.IncomeDebtRelation, in.FinancingLimit, in.ApplicantAge, in.SavingsCapacity,
	).Scan(
		&out.ID, &out.RequestID, &out.IncomeQuota, &out.CreditHistory, &out.EmploymentSeniority,
		&out.IncomeDebtRelation, &out.FinancingLimit, &out.ApplicantAge, &out.SavingsCapacity, &out.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}
