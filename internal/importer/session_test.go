package importer

import (
	"context"
	"errors"
	"testing"

	"spinadmin/pkg/models"

	"github.com/google/uuid"
)

type fakeDirectory struct {
	campaigns []models.CampaignSummary
	err       error
}

func (f *fakeDirectory) CampaignDirectory(ctx context.Context) ([]models.CampaignSummary, error) {
	return f.campaigns, f.err
}

type fakeBatch struct {
	calls   int
	rows    []models.BulkLocationRow
	outcome *models.UploadOutcome
	err     error
}

func (f *fakeBatch) CreateBatch(ctx context.Context, rows []models.BulkLocationRow) (*models.UploadOutcome, error) {
	f.calls++
	f.rows = rows
	return f.outcome, f.err
}

func newTestService(batch *fakeBatch) *Service {
	directory := &fakeDirectory{campaigns: testDirectory}
	return NewService(directory, batch)
}

const csvUpload = "name,city,campaignName\nStore A,Springfield,Summer Promo\nStore B,Shelbyville,Winter Sale\n"

func TestParseUpload(t *testing.T) {
	svc := newTestService(&fakeBatch{})

	session, err := svc.ParseUpload(context.Background(), "stores.csv", "text/csv", []byte(csvUpload))
	if err != nil {
		t.Fatalf("ParseUpload returned error: %v", err)
	}

	if session.State != StateParsed {
		t.Errorf("State = %q, expected %q", session.State, StateParsed)
	}
	if len(session.Rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(session.Rows))
	}
	if session.FileName != "stores.csv" {
		t.Errorf("FileName = %q", session.FileName)
	}

	got, err := svc.Get(session.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.ID != session.ID {
		t.Errorf("Get returned a different session")
	}
}

func TestParseUploadRejectsUnsupportedType(t *testing.T) {
	svc := newTestService(&fakeBatch{})

	_, err := svc.ParseUpload(context.Background(), "stores.pdf", "application/pdf", []byte("%PDF"))

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

// A workbook whose data rows are all empty parses to zero rows and is rejected
func TestParseUploadNoRows(t *testing.T) {
	svc := newTestService(&fakeBatch{})

	data := buildWorkbook(t, [][]interface{}{
		{"name", "city"},
		{"", ""},
	})

	_, err := svc.ParseUpload(context.Background(), "stores.xlsx", "", data)
	if !errors.Is(err, ErrNoRows) {
		t.Errorf("expected ErrNoRows, got %v", err)
	}
}

// An unresolvable campaign reference aborts the upload; no session is stored
func TestParseUploadResolutionFailureStoresNothing(t *testing.T) {
	svc := newTestService(&fakeBatch{})

	data := "name,campaignName\nStore A,Unknown Campaign\n"
	_, err := svc.ParseUpload(context.Background(), "stores.csv", "text/csv", []byte(data))

	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("expected ResolutionError, got %v", err)
	}

	svc.mu.Lock()
	stored := len(svc.sessions)
	svc.mu.Unlock()
	if stored != 0 {
		t.Errorf("expected no stored sessions, got %d", stored)
	}
}

func TestCommit(t *testing.T) {
	batch := &fakeBatch{outcome: &models.UploadOutcome{Success: true, Created: 2}}
	svc := newTestService(batch)

	session, err := svc.ParseUpload(context.Background(), "stores.csv", "text/csv", []byte(csvUpload))
	if err != nil {
		t.Fatalf("ParseUpload: %v", err)
	}

	outcome, err := svc.Commit(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
	if outcome.Created != 2 {
		t.Errorf("Created = %d, expected 2", outcome.Created)
	}
	if batch.calls != 1 {
		t.Errorf("CreateBatch called %d times, expected 1", batch.calls)
	}
	if len(batch.rows) != 2 {
		t.Errorf("submitted %d rows, expected 2", len(batch.rows))
	}
	if session.State != StateCompleted {
		t.Errorf("State = %q, expected %q", session.State, StateCompleted)
	}

	// second commit of a completed session is rejected, not re-submitted
	_, err = svc.Commit(context.Background(), session.ID)
	if !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("expected ErrAlreadySubmitted, got %v", err)
	}
	if batch.calls != 1 {
		t.Errorf("CreateBatch called %d times after duplicate commit", batch.calls)
	}
}

func TestCommitUnknownSession(t *testing.T) {
	svc := newTestService(&fakeBatch{})

	_, err := svc.Commit(context.Background(), uuid.New())
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

// A transport failure leaves the session reviewable so the operator can retry
func TestCommitTransportFailureReverts(t *testing.T) {
	batch := &fakeBatch{err: errors.New("connection refused")}
	svc := newTestService(batch)

	session, err := svc.ParseUpload(context.Background(), "stores.csv", "text/csv", []byte(csvUpload))
	if err != nil {
		t.Fatalf("ParseUpload: %v", err)
	}

	if _, err := svc.Commit(context.Background(), session.ID); err == nil {
		t.Fatal("expected commit error")
	}
	if session.State != StateParsed {
		t.Errorf("State = %q, expected %q after failure", session.State, StateParsed)
	}

	// retry succeeds
	batch.err = nil
	batch.outcome = &models.UploadOutcome{Success: true, Created: 2}
	if _, err := svc.Commit(context.Background(), session.ID); err != nil {
		t.Fatalf("retry commit: %v", err)
	}
	if session.State != StateCompleted {
		t.Errorf("State = %q after retry", session.State)
	}
}

// A partially failed batch still completes the session; the outcome
// carries the per-row failures
func TestCommitPartialFailureCompletes(t *testing.T) {
	batch := &fakeBatch{
		outcome: &models.UploadOutcome{
			Success: false,
			Created: 1,
			Errors:  1,
			Details: models.OutcomeDetails{Failed: []models.RowFailure{{Row: 3, Error: "Latitude out of range"}}},
		},
	}
	svc := newTestService(batch)

	session, err := svc.ParseUpload(context.Background(), "stores.csv", "text/csv", []byte(csvUpload))
	if err != nil {
		t.Fatalf("ParseUpload: %v", err)
	}

	outcome, err := svc.Commit(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
	if outcome.Errors != 1 || len(outcome.Details.Failed) != 1 {
		t.Errorf("outcome = %+v", outcome)
	}
	if session.State != StateCompleted {
		t.Errorf("State = %q, expected completed", session.State)
	}
}

func TestDiscard(t *testing.T) {
	svc := newTestService(&fakeBatch{})

	session, err := svc.ParseUpload(context.Background(), "stores.csv", "text/csv", []byte(csvUpload))
	if err != nil {
		t.Fatalf("ParseUpload: %v", err)
	}

	svc.Discard(session.ID)

	if _, err := svc.Get(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after discard, got %v", err)
	}
}

func TestSessionExpiry(t *testing.T) {
	svc := newTestService(&fakeBatch{})

	session, err := svc.ParseUpload(context.Background(), "stores.csv", "text/csv", []byte(csvUpload))
	if err != nil {
		t.Fatalf("ParseUpload: %v", err)
	}

	svc.mu.Lock()
	svc.sessions[session.ID].CreatedAt = session.CreatedAt.Add(-sessionTTL - 1)
	svc.mu.Unlock()

	if _, err := svc.Get(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected expired session to be unreachable, got %v", err)
	}
	if _, err := svc.Commit(context.Background(), session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected expired session commit to fail, got %v", err)
	}
}

func TestParseUploadDirectoryError(t *testing.T) {
	svc := NewService(&fakeDirectory{err: errors.New("db down")}, &fakeBatch{})

	if _, err := svc.ParseUpload(context.Background(), "stores.csv", "text/csv", []byte(csvUpload)); err == nil {
		t.Fatal("expected error when directory lookup fails")
	}
}
