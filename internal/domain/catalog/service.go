package catalog

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Find(ctx context.Context, typeLoan string) (*LoanType, error) {
	if typeLoan == "" {
		return nil, fmt.Errorf("find loan type: empty name: %w", ErrNotFound)
	}
	return s.repo.FindByTypeLoan(ctx, typeLoan)
}

func (s *Service) All(ctx context.Context) ([]LoanType, error) {
	return s.repo.All(ctx)
}

// CheckBounds verifies a proposed request against the catalog limits for
// its loan type. Rate bounds are inclusive on both ends.
func (s *Service) CheckBounds(ctx context.Context, typeLoan string, term int32, rate float64, amount int64) error {
	lt, err := s.repo.FindByTypeLoan(ctx, typeLoan)
	if err != nil {
		return fmt.Errorf("check bounds for %q: %w", typeLoan, err)
	}
	if term > lt.MaximumTerm {
		return fmt.Errorf("term %d exceeds maximum %d for %s: %w", term, lt.MaximumTerm, typeLoan, ErrOutOfBounds)
	}
	if rate < lt.InterestRateMin || rate > lt.InterestRateMax {
		return fmt.Errorf("rate %.2f outside [%.2f, %.2f] for %s: %w", rate, lt.InterestRateMin, lt.InterestRateMax, typeLoan, ErrOutOfBounds)
	}
	if amount > lt.MaximumAmount {
		return fmt.Errorf("amount %d exceeds maximum %d for %s: %w", amount, lt.MaximumAmount, typeLoan, ErrOutOfBounds)
	}
	return nil
}
