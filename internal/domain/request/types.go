package request

import (
	"context"
	"errors"
	"time"

	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/client"
)

// ErrNotFound reports a request, client, or document that does not exist.
var ErrNotFound = errors.New("credit request not found")

// ErrInvalidArgument reports submission or status input that fails
// validation before any write happens.
var ErrInvalidArgument = errors.New("invalid credit request input")

// Document is one attachment in a request's mandatory set. Checksum is
// the hex SHA3-256 of Content, computed at intake.
type Document struct {
	Type     DocumentType `json:"type"`
	Content  []byte       `json:"-"`
	Checksum string       `json:"checksum"`
}

// Entity is a credit request as persisted. Status holds the descriptive
// label, not the short code.
type Entity struct {
	ID           int64                     `json:"id"`
	ClientRut    string                    `json:"client_rut"`
	TypeLoan     string                    `json:"type_loan"`
	Category     Category                  `json:"category"`
	Term         int32                     `json:"term"`
	InterestRate float64                   `json:"interest_rate"`
	Amount       int64                     `json:"amount"`
	Status       string                    `json:"status"`
	Documents    map[DocumentType]Document `json:"-"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
}

// SubmitInput carries the client-provided fields of a new request. The
// category comes from the submission variant, not the caller.
type SubmitInput struct {
	Rut          string
	Term         int32
	InterestRate float64
	Amount       int64
	Documents    map[DocumentType][]byte
}

// Summary is the compact view of a request used by review screens.
type Summary struct {
	RequestID    int64   `json:"request_id"`
	TypeLoan     string  `json:"type_loan"`
	Term         int32   `json:"term"`
	InterestRate float64 `json:"interest_rate"`
	Amount       int64   `json:"amount"`
	Status       string  `json:"status"`
}

// StatusRow is one line of the executive review board.
type StatusRow struct {
	RequestID int64  `json:"request_id"`
	Rut       string `json:"rut"`
	Name      string `json:"name"`
	LastName  string `json:"last_name"`
	Status    string `json:"status"`
}

type Repository interface {
	Create(ctx context.Context, e *Entity) (*Entity, error)
	GetByID(ctx context.Context, id int64) (*Entity, error)
	Delete(ctx context.Context, id int64) error
	// UpdateStatus stores the new label and records a status event with
	// the code, in one transaction.
	UpdateStatus(ctx context.Context, id int64, code Status, label string) error
	GetDocument(ctx context.Context, id int64, docType DocumentType) (*Document, error)
}

// ClientDirectory is the slice of the client domain the request workflow
// needs: ownership lookups and the per-client request list. The client
// service satisfies it directly.
type ClientDirectory interface {
	FindByRut(ctx context.Context, rut string) (*client.Entity, error)
	All(ctx context.Context) ([]client.Entity, error)
	AppendRequestID(ctx context.Context, rut string, requestID int64) error
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, topic string, payload any) error
}

type Metrics interface {
	RequestCreated(category string)
	StatusChanged(code string)
}
