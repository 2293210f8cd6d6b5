package catalog

import (
	"context"
	"errors"
)

// ErrNotFound reports a loan-type name missing from the catalog.
var ErrNotFound = errors.New("loan type not found")

// ErrOutOfBounds reports a requested term, rate, or amount outside the
// catalog limits for the loan type.
var ErrOutOfBounds = errors.New("outside loan type bounds")

// LoanType is administrative reference data; the credit workflow only
// reads it.
type LoanType struct {
	ID              int64   `json:"id"`
	TypeLoan        string  `json:"type_loan"`
	MaximumTerm     int32   `json:"maximum_term"`
	InterestRateMin float64 `json:"interest_rate_min"`
	InterestRateMax float64 `json:"interest_rate_max"`
	MaximumAmount   int64   `json:"maximum_amount"`
}

type Repository interface {
	FindByTypeLoan(ctx context.Context, typeLoan string) (*LoanType, error)
	All(ctx context.Context) ([]LoanType, error)
}
