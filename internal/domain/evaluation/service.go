package evaluation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/request"
	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/simulation"
)

// Fixed charges applied when projecting the total cost of a credit.
const (
	lifeInsuranceRate  = 0.0003
	fireInsuranceFee   = 20000
	administrationRate = 0.01
)

// A request is screened out when the applicant would be older than this
// at the end of the term.
const maxAgeAtTermEnd = 70

type Service struct {
	repo     Repository
	statuses StatusEditor
	requests RequestFinder
	metrics  Metrics
	now      func() time.Time
}

func NewService(repo Repository, statuses StatusEditor, requests RequestFinder, metrics Metrics) *Service {
	return &Service{
		repo:     repo,
		statuses: statuses,
		requests: requests,
		metrics:  metrics,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// EvaluateCredit applies the rule flags to the referenced request: all
// rules passing moves it to Pre-Approved, any failure moves it to
// Rejected. The evaluation record is persisted either way. A nil input
// is silently ignored.
func (s *Service) EvaluateCredit(ctx context.Context, in *Entity) (*Entity, error) {
	if in == nil {
		return nil, nil
	}

	code := request.StatusRejected
	outcome := "rejected"
	if in.IncomeQuota && in.CreditHistory && in.EmploymentSeniority &&
		in.IncomeDebtRelation && in.FinancingLimit && in.ApplicantAge && in.SavingsCapacity {
		code = request.StatusPreApproved
		outcome = "pre_approved"
	}

	if _, err := s.statuses.EditStatus(ctx, in.RequestID, code); err != nil && !errors.Is(err, request.ErrNotFound) {
		return nil, fmt.Errorf("apply evaluation to request %d: %w", in.RequestID, err)
	}

	saved, err := s.repo.Save(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("save evaluation for request %d: %w", in.RequestID, err)
	}

	s.metrics.EvaluationCompleted(outcome)
	return saved, nil
}

// AgeCompliant reports whether an applicant born on dob would still be
// at most 70 years old when a term of termYears ends.
func (s *Service) AgeCompliant(dob time.Time, termYears int32) bool {
	if dob.IsZero() {
		return false
	}
	ageAtEnd := int32(s.now().Year()-dob.Year()) + termYears
	return ageAtEnd <= maxAgeAtTermEnd
}

// TotalCosts projects the full cost of the credit over its term:
// monthly payment plus life insurance, fire insurance, and a one-time
// administration fee. A request that does not exist costs zero.
func (s *Service) TotalCosts(ctx context.Context, requestID int64) (int64, error) {
	e, err := s.requests.FindByID(ctx, requestID)
	if errors.Is(err, request.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load request %d for costing: %w", requestID, err)
	}

	monthly := simulation.MonthlyPayment(e.Amount, e.InterestRate, e.Term)
	lifeInsurance := float64(e.Amount) * lifeInsuranceRate
	monthlyCost := float64(monthly) + lifeInsurance + fireInsuranceFee
	total := monthlyCost*float64(e.Term)*12 + float64(e.Amount)*administrationRate
	return int64(total), nil
}
