package importer

import (
	"context"
	"errors"
	"sync"
	"time"

	"spinadmin/pkg/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SessionState tracks where an import attempt is in its lifecycle
type SessionState string

const (
	StateParsed     SessionState = "parsed"
	StateSubmitting SessionState = "submitting"
	StateCompleted  SessionState = "completed"
)

// sessionTTL bounds how long a parsed-but-uncommitted import survives
const sessionTTL = 30 * time.Minute

var (
	ErrSessionNotFound  = errors.New("import session not found or expired")
	ErrSubmitInProgress = errors.New("import submission already in progress")
	ErrAlreadySubmitted = errors.New("import session already submitted")
	ErrNoRows           = errors.New("no data found in file")
)

// Session holds the transient state of one import attempt: the parsed
// and resolved rows awaiting operator confirmation. Sessions live only
// in memory and never survive a restart.
type Session struct {
	ID        uuid.UUID                `json:"session_id"`
	FileName  string                   `json:"file_name"`
	State     SessionState             `json:"state"`
	Rows      []models.BulkLocationRow `json:"rows"`
	Outcome   *models.UploadOutcome    `json:"outcome,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
}

// DirectoryProvider supplies the campaign directory snapshot used for
// name resolution and template generation
type DirectoryProvider interface {
	CampaignDirectory(ctx context.Context) ([]models.CampaignSummary, error)
}

// BatchCreator persists a resolved batch and reports the outcome
type BatchCreator interface {
	CreateBatch(ctx context.Context, rows []models.BulkLocationRow) (*models.UploadOutcome, error)
}

// Service drives the parse -> resolve -> commit -> report cycle and owns
// the in-memory session store
type Service struct {
	directory DirectoryProvider
	batch     BatchCreator

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewService creates a new import service
func NewService(directory DirectoryProvider, batch BatchCreator) *Service {
	return &Service{
		directory: directory,
		batch:     batch,
		sessions:  make(map[uuid.UUID]*Session),
	}
}

// ParseUpload validates the file type, parses the file, resolves every
// campaign reference against a fresh directory snapshot and stores the
// result as a new session. Any failure aborts the attempt with nothing
// stored, so a partial batch can never be committed.
func (s *Service) ParseUpload(ctx context.Context, filename, contentType string, data []byte) (*Session, error) {
	format, err := DetectFormat(filename, contentType)
	if err != nil {
		return nil, err
	}

	parsed, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	if len(parsed.Rows) == 0 {
		return nil, ErrNoRows
	}

	// one snapshot per import session, shared by the whole resolution pass
	directory, err := s.directory.CampaignDirectory(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := Resolve(parsed, directory)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:        uuid.New(),
		FileName:  filename,
		State:     StateParsed,
		Rows:      rows,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.sweepLocked()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	log.Info().
		Str("session_id", session.ID.String()).
		Str("file", filename).
		Int("rows", len(rows)).
		Msg("Import file parsed")

	return session, nil
}

// Get returns a session by ID
func (s *Service) Get(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok || s.expired(session) {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Commit submits the session's rows as one batch. Commit is an explicit
// second step so the operator reviews the row count before anything is
// sent. Duplicate commits are rejected while a submission is in flight;
// a transport failure returns the session to the reviewable state.
func (s *Service) Commit(ctx context.Context, id uuid.UUID) (*models.UploadOutcome, error) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	if !ok || s.expired(session) {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	switch session.State {
	case StateSubmitting:
		s.mu.Unlock()
		return nil, ErrSubmitInProgress
	case StateCompleted:
		s.mu.Unlock()
		return nil, ErrAlreadySubmitted
	}
	session.State = StateSubmitting
	rows := session.Rows
	s.mu.Unlock()

	outcome, err := s.batch.CreateBatch(ctx, rows)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil && outcome == nil {
		session.State = StateParsed
		return nil, err
	}

	session.State = StateCompleted
	session.Outcome = outcome

	log.Info().
		Str("session_id", id.String()).
		Int("created", outcome.Created).
		Int("errors", outcome.Errors).
		Msg("Import committed")

	return outcome, nil
}

// Discard drops a session at any state (the operator closed the modal)
func (s *Service) Discard(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *Service) expired(session *Session) bool {
	return time.Since(session.CreatedAt) > sessionTTL
}

func (s *Service) sweepLocked() {
	for id, session := range s.sessions {
		if s.expired(session) {
			delete(s.sessions, id)
		}
	}
}
