package client

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports a rut that resolves to no registered client.
var ErrNotFound = errors.New("client not found")

// ErrInvalidArgument reports a registration input that failed validation.
var ErrInvalidArgument = errors.New("invalid client input")

type Entity struct {
	ID           int64     `json:"id"`
	Rut          string    `json:"rut"`
	Name         string    `json:"name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DateOfBirth  time.Time `json:"date_of_birth"`
	RequestIDs   []int64   `json:"request_ids"`
	CreatedAt    time.Time `json:"created_at"`
}

type RegisterInput struct {
	Rut         string
	Name        string
	LastName    string
	Email       string
	Password    string
	DateOfBirth time.Time
}

type Repository interface {
	Create(ctx context.Context, e *Entity) (*Entity, error)
	FindByRut(ctx context.Context, rut string) (*Entity, error)
	All(ctx context.Context) ([]Entity, error)
	// AppendRequestID appends id to the client's request list in a single
	// atomic update.
	AppendRequestID(ctx context.Context, rut string, requestID int64) error
}
