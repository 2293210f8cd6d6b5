package client

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var (
	rutPattern   = regexp.MustCompile(`^[0-9]{7,8}-[0-9kK]$`)
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Register validates the input, hashes the password, and persists the client.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Entity, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, &Entity{
		Rut:          strings.TrimSpace(in.Rut),
		Name:         strings.TrimSpace(in.Name),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
		DateOfBirth:  in.DateOfBirth,
		RequestIDs:   []int64{},
	})
}

// VerifyCredentials returns the client when rut and password match a
// registered account.
func (s *Service) VerifyCredentials(ctx context.Context, rut, password string) (*Entity, error) {
	c, err := s.repo.FindByRut(ctx, strings.TrimSpace(rut))
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) != nil {
		return nil, fmt.Errorf("%w: wrong password", ErrInvalidArgument)
	}
	return c, nil
}

func (s *Service) FindByRut(ctx context.Context, rut string) (*Entity, error) {
	return s.repo.FindByRut(ctx, strings.TrimSpace(rut))
}

// RutExists reports whether a rut belongs to a registered client.
func (s *Service) RutExists(ctx context.Context, rut string) (bool, error) {
	_, err := s.repo.FindByRut(ctx, strings.TrimSpace(rut))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) All(ctx context.Context) ([]Entity, error) {
	return s.repo.All(ctx)
}

func (s *Service) validate(ctx context.Context, in RegisterInput) error {
	name := strings.TrimSpace(in.Name)
	lastName := strings.TrimSpace(in.LastName)
	rut := strings.TrimSpace(in.Rut)
	email := strings.TrimSpace(in.Email)

	switch {
	case name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidArgument)
	case lastName == "":
		return fmt.Errorf("%w: last name is required", ErrInvalidArgument)
	case rut == "":
		return fmt.Errorf("%w: rut is required", ErrInvalidArgument)
	case in.Password == "":
		return fmt.Errorf("%w: password is required", ErrInvalidArgument)
	case email == "":
		return fmt.Errorf("%w: email is required", ErrInvalidArgument)
	}

	if len(name) < 2 || len(name) > 50 {
		return fmt.Errorf("%w: name must be between 2 and 50 characters", ErrInvalidArgument)
	}
	if len(lastName) < 2 || len(lastName) > 50 {
		return fmt.Errorf("%w: last name must be between 2 and 50 characters", ErrInvalidArgument)
	}
	if !rutPattern.MatchString(rut) {
		return fmt.Errorf("%w: malformed rut", ErrInvalidArgument)
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: malformed email", ErrInvalidArgument)
	}
	if !validPassword(in.Password) {
		return fmt.Errorf("%w: password needs 8+ characters, an uppercase letter and a digit", ErrInvalidArgument)
	}
	if in.DateOfBirth.IsZero() {
		return fmt.Errorf("%w: date of birth is required", ErrInvalidArgument)
	}
	if age(in.DateOfBirth, s.now()) < 18 {
		return fmt.Errorf("%w: client must be at least 18 years old", ErrInvalidArgument)
	}

	if _, err := s.repo.FindByRut(ctx, rut); err == nil {
		return fmt.Errorf("%w: rut already registered", ErrInvalidArgument)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

func validPassword(p string) bool {
	if len(p) < 8 {
		return false
	}
	var hasUpper, hasDigit bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasDigit
}

func age(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.YearDay() < birth.YearDay() {
		years--
	}
	return years
}
