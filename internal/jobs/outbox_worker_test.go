package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/FelipeBaeza/PrestaBancoEntrega/internal/domain/request"
)

type fakeOutboxRepo struct {
	jobs    []OutboxJob
	done    []int64
	retried []int64
	failed  []int64
	lastErr string
}

func (f *fakeOutboxRepo) ClaimPending(_ context.Context, _ int32) ([]OutboxJob, error) {
	return f.jobs, nil
}

func (f *fakeOutboxRepo) MarkDone(_ context.Context, id int64) error {
	f.done = append(f.done, id)
	return nil
}

func (f *fakeOutboxRepo) MarkRetry(_ context.Context, id int64, _ time.Time, lastError string) error {
	f.retried = append(f.retried, id)
	f.lastErr = lastError
	return nil
}

func (f *fakeOutboxRepo) MarkFailed(_ context.Context, id int64, lastError string) error {
	f.failed = append(f.failed, id)
	f.lastErr = lastError
	return nil
}

type fakeSender struct {
	sent map[string][]byte
	err  error
}

func (f *fakeSender) Send(_ context.Context, topic string, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	if f.sent == nil {
		f.sent = map[string][]byte{}
	}
	f.sent[topic] = payload
	return nil
}

func TestRunOnceDeliversAndMarksDone(t *testing.T) {
	repo := &fakeOutboxRepo{jobs: []OutboxJob{
		{ID: 1, Topic: request.TopicRequestSubmitted, Payload: []byte(`{"request_id":7}`)},
		{ID: 2, Topic: request.TopicStatusChanged, Payload: []byte(`{"code":"E4"}`)},
	}}
	sender := &fakeSender{}
	w := NewWorker(repo, sender)

	if err := w.RunOnce(context.Background(), 10); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if len(repo.done) != 2 {
		t.Fatalf("expected both jobs done, got %v", repo.done)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected both topics delivered, got %v", sender.sent)
	}
}

func TestRunOnceRetriesOnSendFailure(t *testing.T) {
	repo := &fakeOutboxRepo{jobs: []OutboxJob{
		{ID: 1, Topic: request.TopicStatusChanged, Payload: []byte(`{}`), Attempts: 2},
	}}
	w := NewWorker(repo, &fakeSender{err: errors.New("endpoint unreachable")})

	if err := w.RunOnce(context.Background(), 10); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if len(repo.retried) != 1 || len(repo.failed) != 0 {
		t.Fatalf("expected one retry, got retried=%v failed=%v", repo.retried, repo.failed)
	}
	if repo.lastErr != "endpoint unreachable" {
		t.Fatalf("last error = %q", repo.lastErr)
	}
}

func TestRunOnceFailsTerminallyAfterMaxAttempts(t *testing.T) {
	repo := &fakeOutboxRepo{jobs: []OutboxJob{
		{ID: 1, Topic: request.TopicStatusChanged, Payload: []byte(`{}`), Attempts: 5},
	}}
	w := NewWorker(repo, &fakeSender{err: errors.New("still down")})

	if err := w.RunOnce(context.Background(), 10); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if len(repo.failed) != 1 || len(repo.retried) != 0 {
		t.Fatalf("expected terminal failure, got retried=%v failed=%v", repo.retried, repo.failed)
	}
}

func TestRunOnceRejectsMalformedPayload(t *testing.T) {
	repo := &fakeOutboxRepo{jobs: []OutboxJob{
		{ID: 1, Topic: request.TopicRequestSubmitted, Payload: []byte(`{not json`)},
	}}
	sender := &fakeSender{}
	w := NewWorker(repo, sender)

	if err := w.RunOnce(context.Background(), 10); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("malformed payload must not be delivered")
	}
	if len(repo.retried) != 1 || repo.lastErr != "invalid_payload" {
		t.Fatalf("expected retry with invalid_payload, got retried=%v err=%q", repo.retried, repo.lastErr)
	}
}

func TestRunOnceUnsupportedTopic(t *testing.T) {
	repo := &fakeOutboxRepo{jobs: []OutboxJob{
		{ID: 1, Topic: "mystery", Payload: []byte(`{}`), Attempts: 5},
	}}
	w := NewWorker(repo, &fakeSender{})

	if err := w.RunOnce(context.Background(), 10); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if len(repo.failed) != 1 || repo.lastErr != "unsupported_topic" {
		t.Fatalf("expected unsupported_topic failure, got failed=%v err=%q", repo.failed, repo.lastErr)
	}
}
