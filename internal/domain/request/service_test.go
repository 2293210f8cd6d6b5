package request

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/client"
)

type fakeRepo struct {
	byID       map[int64]*Entity
	nextID     int64
	statusUpds []Status
	deleted    []int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[int64]*Entity{}, nextID: 1}
}

func (f *fakeRepo) Create(_ context.Context, e *Entity) (*Entity, error) {
	cp := *e
	cp.ID = f.nextID
	f.nextID++
	f.byID[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*Entity, error) {
	if e, ok := f.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return ErrNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, code Status, label string) error {
	e, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	e.Status = label
	f.statusUpds = append(f.statusUpds, code)
	return nil
}

func (f *fakeRepo) GetDocument(_ context.Context, id int64, dt DocumentType) (*Document, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	d, ok := e.Documents[dt]
	if !ok || len(d.Content) == 0 {
		return nil, ErrNotFound
	}
	return &d, nil
}

type fakeDirectory struct {
	byRut map[string]*client.Entity
}

func newFakeDirectory(ruts ...string) *fakeDirectory {
	d := &fakeDirectory{byRut: map[string]*client.Entity{}}
	for _, r := range ruts {
		d.byRut[r] = &client.Entity{Rut: r, Name: "Ana", LastName: "Soto"}
	}
	return d
}

func (d *fakeDirectory) FindByRut(_ context.Context, rut string) (*client.Entity, error) {
	if c, ok := d.byRut[rut]; ok {
		return c, nil
	}
	return nil, client.ErrNotFound
}

func (d *fakeDirectory) All(_ context.Context) ([]client.Entity, error) {
	out := make([]client.Entity, 0, len(d.byRut))
	for _, c := range d.byRut {
		out = append(out, *c)
	}
	return out, nil
}

func (d *fakeDirectory) AppendRequestID(_ context.Context, rut string, id int64) error {
	c, ok := d.byRut[rut]
	if !ok {
		return client.ErrNotFound
	}
	c.RequestIDs = append(c.RequestIDs, id)
	return nil
}

type fakeOutbox struct {
	topics []string
}

func (f *fakeOutbox) Enqueue(_ context.Context, topic string, _ any) error {
	f.topics = append(f.topics, topic)
	return nil
}

type fakeMetrics struct {
	created []string
	changed []string
}

func (f *fakeMetrics) RequestCreated(cat string) { f.created = append(f.created, cat) }
func (f *fakeMetrics) StatusChanged(code string) { f.changed = append(f.changed, code) }

func docsFor(cat Category) map[DocumentType][]byte {
	out := map[DocumentType][]byte{}
	for _, dt := range RequiredDocuments(cat) {
		out[dt] = []byte("pdf bytes for " + string(dt))
	}
	return out
}

func newTestService() (*Service, *fakeRepo, *fakeDirectory, *fakeOutbox, *fakeMetrics) {
	repo := newFakeRepo()
	dir := newFakeDirectory("12345678-9")
	outbox := &fakeOutbox{}
	metrics := &fakeMetrics{}
	return NewService(repo, dir, outbox, metrics), repo, dir, outbox, metrics
}

func TestSubmitFirstHome(t *testing.T) {
	svc, repo, dir, outbox, metrics := newTestService()

	got, err := svc.SubmitFirstHome(context.Background(), SubmitInput{
		Rut:          "12345678-9",
		Term:         20,
		InterestRate: 4.5,
		Amount:       100000000,
		Documents:    docsFor(CategoryFirstHome),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.Status != "Initial Review" {
		t.Fatalf("new request status = %q, want Initial Review", got.Status)
	}
	if got.Category != CategoryFirstHome || got.TypeLoan != "firstHome" {
		t.Fatalf("wrong category on entity: %+v", got)
	}
	if len(got.Documents) != 5 {
		t.Fatalf("expected 5 documents, got %d", len(got.Documents))
	}
	for dt, d := range got.Documents {
		if d.Checksum == "" {
			t.Fatalf("document %s missing checksum", dt)
		}
	}
	if ids := dir.byRut["12345678-9"].RequestIDs; len(ids) != 1 || ids[0] != got.ID {
		t.Fatalf("request id not linked to client: %v", ids)
	}
	if len(outbox.topics) != 1 || outbox.topics[0] != TopicRequestSubmitted {
		t.Fatalf("expected one %s event, got %v", TopicRequestSubmitted, outbox.topics)
	}
	if len(metrics.created) != 1 || metrics.created[0] != "firstHome" {
		t.Fatalf("metrics not recorded: %v", metrics.created)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected one persisted request")
	}
}

func TestSubmitValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SubmitInput)
	}{
		{"missing rut", func(in *SubmitInput) { in.Rut = "" }},
		{"zero term", func(in *SubmitInput) { in.Term = 0 }},
		{"negative rate", func(in *SubmitInput) { in.InterestRate = -1 }},
		{"zero amount", func(in *SubmitInput) { in.Amount = 0 }},
		{"missing document", func(in *SubmitInput) { delete(in.Documents, DocCreditHistory) }},
		{"empty document", func(in *SubmitInput) { in.Documents[DocProofIncome] = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, _, outbox, _ := newTestService()
			in := SubmitInput{
				Rut:          "12345678-9",
				Term:         20,
				InterestRate: 4.5,
				Amount:       100000000,
				Documents:    docsFor(CategoryFirstHome),
			}
			tc.mutate(&in)

			if _, err := svc.SubmitFirstHome(context.Background(), in); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			if len(repo.byID) != 0 {
				t.Fatalf("nothing should be persisted on validation failure")
			}
			if len(outbox.topics) != 0 {
				t.Fatalf("nothing should be enqueued on validation failure")
			}
		})
	}
}

func TestSubmitUnknownClient(t *testing.T) {
	svc, repo, _, _, _ := newTestService()

	_, err := svc.SubmitRemodeling(context.Background(), SubmitInput{
		Rut:          "99999999-9",
		Term:         10,
		InterestRate: 5.0,
		Amount:       20000000,
		Documents:    docsFor(CategoryRemodeling),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unregistered rut, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("nothing should be persisted for unknown client")
	}
}

func TestSecondHomeRequiresPropertyWriting(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	docs := docsFor(CategorySecondHome)
	delete(docs, DocPropertyWriting)

	_, err := svc.SubmitSecondHome(context.Background(), SubmitInput{
		Rut:          "12345678-9",
		Term:         15,
		InterestRate: 4.0,
		Amount:       80000000,
		Documents:    docs,
	})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if !strings.Contains(err.Error(), string(DocPropertyWriting)) {
		t.Fatalf("error should name the missing document, got %v", err)
	}
}

func submitOne(t *testing.T, svc *Service) *Entity {
	t.Helper()
	e, err := svc.SubmitFirstHome(context.Background(), SubmitInput{
		Rut:          "12345678-9",
		Term:         20,
		InterestRate: 4.5,
		Amount:       100000000,
		Documents:    docsFor(CategoryFirstHome),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return e
}

func TestEditStatus(t *testing.T) {
	svc, repo, _, outbox, metrics := newTestService()
	e := submitOne(t, svc)

	got, err := svc.EditStatus(context.Background(), e.ID, StatusUnderEvaluation)
	if err != nil {
		t.Fatalf("edit status: %v", err)
	}
	if got.Status != "Under Evaluation" {
		t.Fatalf("status = %q, want Under Evaluation", got.Status)
	}
	if repo.byID[e.ID].Status != "Under Evaluation" {
		t.Fatalf("label not persisted")
	}
	if len(outbox.topics) != 2 || outbox.topics[1] != TopicStatusChanged {
		t.Fatalf("expected a %s event, got %v", TopicStatusChanged, outbox.topics)
	}
	if len(metrics.changed) != 1 || metrics.changed[0] != "E3" {
		t.Fatalf("metrics not recorded: %v", metrics.changed)
	}

	// any valid code may follow any other
	if _, err := svc.EditStatus(context.Background(), e.ID, StatusInitialReview); err != nil {
		t.Fatalf("back-transition should be allowed: %v", err)
	}
}

func TestEditStatusRejectsBadInput(t *testing.T) {
	svc, repo, _, _, _ := newTestService()
	e := submitOne(t, svc)

	if _, err := svc.EditStatus(context.Background(), 404, StatusApproved); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for absent request, got %v", err)
	}
	if _, err := svc.EditStatus(context.Background(), e.ID, "E42"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for unknown code, got %v", err)
	}
	if len(repo.statusUpds) != 0 {
		t.Fatalf("no status write should happen on bad input")
	}
}

func TestFindByID(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	e := submitOne(t, svc)

	got, err := svc.FindByID(context.Background(), e.ID)
	if err != nil || got.ID != e.ID {
		t.Fatalf("find: (%+v, %v)", got, err)
	}
	if _, err := svc.FindByID(context.Background(), 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for id 0, got %v", err)
	}
	if _, err := svc.FindByID(context.Background(), -5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for negative id, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc, repo, _, _, _ := newTestService()
	e := submitOne(t, svc)

	if err := svc.Delete(context.Background(), e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("request still present after delete")
	}
	// deleting again is a no-op, not a failure
	if err := svc.Delete(context.Background(), e.ID); err != nil {
		t.Fatalf("second delete should succeed, got %v", err)
	}
	if err := svc.Delete(context.Background(), -1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for negative id, got %v", err)
	}
}

func TestDocumentByType(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	e := submitOne(t, svc)

	d, err := svc.DocumentByType(context.Background(), e.ID, DocProofIncome)
	if err != nil {
		t.Fatalf("get document: %v", err)
	}
	if len(d.Content) == 0 || d.Checksum == "" {
		t.Fatalf("incomplete document returned: %+v", d)
	}

	if _, err := svc.DocumentByType(context.Background(), e.ID, "taxReturn"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown type, got %v", err)
	}
	// valid type not part of this category's set
	if _, err := svc.DocumentByType(context.Background(), e.ID, DocBusinessPlan); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unattached type, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	e := submitOne(t, svc)

	got, err := svc.Summary(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if got.RequestID != e.ID || got.TypeLoan != "firstHome" || got.Status != "Initial Review" {
		t.Fatalf("unexpected summary: %+v", got)
	}
	if got.Term != 20 || got.InterestRate != 4.5 || got.Amount != 100000000 {
		t.Fatalf("unexpected summary fields: %+v", got)
	}

	// absent id yields an empty summary, not an error
	empty, err := svc.Summary(context.Background(), 404)
	if err != nil {
		t.Fatalf("summary of absent request: %v", err)
	}
	if *empty != (Summary{}) {
		t.Fatalf("expected empty summary, got %+v", empty)
	}
}

func TestListWithStatus(t *testing.T) {
	svc, _, dir, _, _ := newTestService()
	dir.byRut["11111111-1"] = &client.Entity{Rut: "11111111-1", Name: "Luis", LastName: "Rojas"}

	first := submitOne(t, svc)
	if _, err := svc.EditStatus(context.Background(), first.ID, StatusPreApproved); err != nil {
		t.Fatalf("edit status: %v", err)
	}

	rows, err := svc.ListWithStatus(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if r.RequestID != first.ID || r.Rut != "12345678-9" || r.Status != "Pre-Approved" {
		t.Fatalf("unexpected row: %+v", r)
	}
}

func TestStatusesForClient(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	submitOne(t, svc)
	submitOne(t, svc)

	rows, err := svc.StatusesForClient(context.Background(), "12345678-9")
	if err != nil {
		t.Fatalf("statuses: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, r := range rows {
		if r.Status != "Initial Review" {
			t.Fatalf("unexpected status %q", r.Status)
		}
	}

	if _, err := svc.StatusesForClient(context.Background(), "99999999-9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown rut, got %v", err)
	}
}
