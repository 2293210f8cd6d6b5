package evaluation

import (
	"context"
	"time"

	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/request"
)

// Entity records the outcome of an executive's review of a credit
// request: one flag per evaluation rule.
type Entity struct {
	ID                  int64     `json:"id"`
	RequestID           int64     `json:"request_id"`
	IncomeQuota         bool      `json:"income_quota"`
	CreditHistory       bool      `json:"credit_history"`
	EmploymentSeniority bool      `json:"employment_seniority"`
	IncomeDebtRelation  bool      `json:"income_debt_relation"`
	FinancingLimit      bool      `json:"financing_limit"`
	ApplicantAge        bool      `json:"applicant_age"`
	SavingsCapacity     bool      `json:"savings_capacity"`
	CreatedAt           time.Time `json:"created_at"`
}

type Repository interface {
	Save(ctx context.Context, e *Entity) (*Entity, error)
}

// StatusEditor moves a credit request between workflow statuses. The
// request service satisfies it.
type StatusEditor interface {
	EditStatus(ctx context.Context, id int64, code request.Status) (*request.Entity, error)
}

// RequestFinder loads a credit request for cost calculations.
type RequestFinder interface {
	FindByID(ctx context.Context, id int64) (*request.Entity, error)
}

type Metrics interface {
	EvaluationCompleted(outcome string)
}
