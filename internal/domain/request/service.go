package request

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/client"
)

const (
	TopicRequestSubmitted = "request_submitted"
	TopicStatusChanged    = "status_changed"
)

type Service struct {
	repo    Repository
	clients ClientDirectory
	outbox  OutboxRepository
	metrics Metrics
	now     func() time.Time
}

func NewService(repo Repository, clients ClientDirectory, outbox OutboxRepository, metrics Metrics) *Service {
	return &Service{
		repo:    repo,
		clients: clients,
		outbox:  outbox,
		metrics: metrics,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) SubmitFirstHome(ctx context.Context, in SubmitInput) (*Entity, error) {
	return s.submit(ctx, CategoryFirstHome, in)
}

func (s *Service) SubmitSecondHome(ctx context.Context, in SubmitInput) (*Entity, error) {
	return s.submit(ctx, CategorySecondHome, in)
}

func (s *Service) SubmitCommercialProperty(ctx context.Context, in SubmitInput) (*Entity, error) {
	return s.submit(ctx, CategoryCommercialProperty, in)
}

func (s *Service) SubmitRemodeling(ctx context.Context, in SubmitInput) (*Entity, error) {
	return s.submit(ctx, CategoryRemodeling, in)
}

func (s *Service) submit(ctx context.Context, cat Category, in SubmitInput) (*Entity, error) {
	rut := strings.TrimSpace(in.Rut)
	switch {
	case rut == "":
		return nil, fmt.Errorf("%w: rut is required", ErrInvalidArgument)
	case in.Term <= 0:
		return nil, fmt.Errorf("%w: term must be positive", ErrInvalidArgument)
	case in.InterestRate <= 0:
		return nil, fmt.Errorf("%w: interest rate must be positive", ErrInvalidArgument)
	case in.Amount <= 0:
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	}

	docs, err := buildDocumentSet(cat, in.Documents)
	if err != nil {
		return nil, err
	}

	owner, err := s.clients.FindByRut(ctx, rut)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, fmt.Errorf("submit %s request: rut %s: %w", cat, rut, ErrNotFound)
		}
		return nil, fmt.Errorf("submit %s request: %w", cat, err)
	}

	created, err := s.repo.Create(ctx, &Entity{
		ClientRut:    owner.Rut,
		TypeLoan:     string(cat),
		Category:     cat,
		Term:         in.Term,
		InterestRate: in.InterestRate,
		Amount:       in.Amount,
		Status:       StatusInitialReview.Label(),
		Documents:    docs,
	})
	if err != nil {
		return nil, fmt.Errorf("submit %s request: %w", cat, err)
	}

	if err := s.clients.AppendRequestID(ctx, owner.Rut, created.ID); err != nil {
		return nil, fmt.Errorf("link request %d to client %s: %w", created.ID, owner.Rut, err)
	}

	if err := s.outbox.Enqueue(ctx, TopicRequestSubmitted, map[string]any{
		"request_id": created.ID,
		"rut":        created.ClientRut,
		"category":   string(created.Category),
		"amount":     created.Amount,
	}); err != nil {
		return nil, fmt.Errorf("enqueue submission event for request %d: %w", created.ID, err)
	}

	s.metrics.RequestCreated(string(cat))
	return created, nil
}

// buildDocumentSet checks the category's mandatory attachments and
// computes content checksums. Extra document types are ignored.
func buildDocumentSet(cat Category, raw map[DocumentType][]byte) (map[DocumentType]Document, error) {
	required := RequiredDocuments(cat)
	if required == nil {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidArgument, cat)
	}

	docs := make(map[DocumentType]Document, len(required))
	for _, dt := range required {
		content, ok := raw[dt]
		if !ok || len(content) == 0 {
			return nil, fmt.Errorf("%w: missing document %s", ErrInvalidArgument, dt)
		}
		sum := sha3.Sum256(content)
		docs[dt] = Document{
			Type:     dt,
			Content:  content,
			Checksum: hex.EncodeToString(sum[:]),
		}
	}
	return docs, nil
}

// EditStatus moves a request to the status named by code and records the
// transition. Any valid code may follow any other.
func (s *Service) EditStatus(ctx context.Context, id int64, code Status) (*Entity, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !code.Valid() {
		return nil, fmt.Errorf("%w: unknown status code %q", ErrInvalidArgument, code)
	}

	if err := s.repo.UpdateStatus(ctx, id, code, code.Label()); err != nil {
		return nil, fmt.Errorf("update status of request %d: %w", id, err)
	}
	e.Status = code.Label()

	if err := s.outbox.Enqueue(ctx, TopicStatusChanged, map[string]any{
		"request_id": e.ID,
		"rut":        e.ClientRut,
		"code":       string(code),
		"label":      code.Label(),
	}); err != nil {
		return nil, fmt.Errorf("enqueue status event for request %d: %w", id, err)
	}

	s.metrics.StatusChanged(string(code))
	return e, nil
}

func (s *Service) FindByID(ctx context.Context, id int64) (*Entity, error) {
	if id <= 0 {
		return nil, fmt.Errorf("request id %d: %w", id, ErrNotFound)
	}
	return s.repo.GetByID(ctx, id)
}

// Delete removes a request. Deleting an id that no longer exists is not
// an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: non-positive request id %d", ErrInvalidArgument, id)
	}
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete request %d: %w", id, err)
	}
	return nil
}

// Summary returns the compact view of a request. An absent id yields an
// empty summary rather than an error.
func (s *Service) Summary(ctx context.Context, id int64) (*Summary, error) {
	e, err := s.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return &Summary{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &Summary{
		RequestID:    e.ID,
		TypeLoan:     e.TypeLoan,
		Term:         e.Term,
		InterestRate: e.InterestRate,
		Amount:       e.Amount,
		Status:       e.Status,
	}, nil
}

// DocumentByType fetches one attachment of a request for download.
func (s *Service) DocumentByType(ctx context.Context, id int64, docType DocumentType) (*Document, error) {
	known := false
	for _, docs := range requiredDocuments {
		for _, dt := range docs {
			if dt == docType {
				known = true
			}
		}
	}
	if !known {
		return nil, fmt.Errorf("document type %q: %w", docType, ErrNotFound)
	}
	return s.repo.GetDocument(ctx, id, docType)
}

// ListWithStatus builds the executive review board: one row per request
// across every client. Requests that vanish mid-listing are skipped.
func (s *Service) ListWithStatus(ctx context.Context) ([]StatusRow, error) {
	clients, err := s.clients.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	rows := make([]StatusRow, 0, len(clients))
	for _, c := range clients {
		for _, id := range c.RequestIDs {
			e, err := s.repo.GetByID(ctx, id)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("load request %d: %w", id, err)
			}
			rows = append(rows, StatusRow{
				RequestID: e.ID,
				Rut:       c.Rut,
				Name:      c.Name,
				LastName:  c.LastName,
				Status:    e.Status,
			})
		}
	}
	return rows, nil
}

// StatusesForClient lists the client's own requests with their current
// status.
func (s *Service) StatusesForClient(ctx context.Context, rut string) ([]StatusRow, error) {
	c, err := s.clients.FindByRut(ctx, strings.TrimSpace(rut))
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, fmt.Errorf("client %s: %w", rut, ErrNotFound)
		}
		return nil, err
	}

	rows := make([]StatusRow, 0, len(c.RequestIDs))
	for _, id := range c.RequestIDs {
		e, err := s.repo.GetByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load request %d: %w", id, err)
		}
		rows = append(rows, StatusRow{
			RequestID: e.ID,
			Rut:       c.Rut,
			Name:      c.Name,
			LastName:  c.LastName,
			Status:    e.Status,
		})
	}
	return rows, nil
}
