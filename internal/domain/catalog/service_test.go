package catalog

import (
	"context"
	"errors"
	"testing"
)

type fakeRepo struct {
	types map[string]*LoanType
}

func (f *fakeRepo) FindByTypeLoan(_ context.Context, name string) (*LoanType, error) {
	if lt, ok := f.types[name]; ok {
		return lt, nil
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) All(_ context.Context) ([]LoanType, error) {
	out := make([]LoanType, 0, len(f.types))
	for _, lt := range f.types {
		out = append(out, *lt)
	}
	return out, nil
}

func repoWithFirstHome() *fakeRepo {
	return &fakeRepo{types: map[string]*LoanType{
		"firstHome": {
			ID:              1,
			TypeLoan:        "firstHome",
			MaximumTerm:     30,
			InterestRateMin: 3.5,
			InterestRateMax: 5.0,
			MaximumAmount:   100000000,
		},
	}}
}

func TestFind(t *testing.T) {
	svc := NewService(repoWithFirstHome())

	lt, err := svc.Find(context.Background(), "firstHome")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if lt.MaximumTerm != 30 {
		t.Fatalf("unexpected loan type: %+v", lt)
	}

	if _, err := svc.Find(context.Background(), "yacht"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Find(context.Background(), ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty name, got %v", err)
	}
}

func TestCheckBounds(t *testing.T) {
	svc := NewService(repoWithFirstHome())
	ctx := context.Background()

	if err := svc.CheckBounds(ctx, "firstHome", 20, 4.5, 80000000); err != nil {
		t.Fatalf("expected in-bounds request to pass, got %v", err)
	}
	// rate bounds are inclusive
	if err := svc.CheckBounds(ctx, "firstHome", 30, 3.5, 100000000); err != nil {
		t.Fatalf("expected boundary values to pass, got %v", err)
	}

	cases := []struct {
		name   string
		term   int32
		rate   float64
		amount int64
	}{
		{"term too long", 31, 4.5, 80000000},
		{"rate below minimum", 20, 3.4, 80000000},
		{"rate above maximum", 20, 5.1, 80000000},
		{"amount too large", 20, 4.5, 100000001},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.CheckBounds(ctx, "firstHome", tc.term, tc.rate, tc.amount)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("expected ErrOutOfBounds, got %v", err)
			}
		})
	}

	if err := svc.CheckBounds(ctx, "yacht", 20, 4.5, 80000000); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown type, got %v", err)
	}
}
