package registration

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"sportsmeet-portal/internal/eligibility"
	"sportsmeet-portal/internal/models"
	"sportsmeet-portal/internal/util"
)

// Submitter delivers a validated roster snapshot to storage.
type Submitter interface {
	Submit(ctx context.Context, sub models.Submission) (message string, err error)
}

// Notifier hears about accepted submissions.
type Notifier interface {
	NotifySubmitted(ctx context.Context, sub models.Submission)
}

// Service holds one draft roster per editing session.
type Service struct {
	store    Submitter
	clock    clockwork.Clock
	notifier Notifier

	mu     sync.Mutex
	drafts map[string]*Draft
}

func NewService(store Submitter, clock clockwork.Clock) *Service {
	return &Service{
		store:  store,
		clock:  clock,
		drafts: make(map[string]*Draft),
	}
}

func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// draft returns the session's draft, creating an empty one. Callers hold s.mu.
func (s *Service) draft(sessionID string, team int) *Draft {
	d, ok := s.drafts[sessionID]
	if !ok || d.Team() != team || d.State() == StateSubmitted {
		d = NewDraft(team)
		s.drafts[sessionID] = d
	}
	return d
}

func (s *Service) CreateSlots(p Principal, sessionID string, team, n int) (int, error) {
	if err := Authorize(p, team); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft(sessionID, team).CreateSlots(n)
}

func (s *Service) UpdateParticipant(p Principal, sessionID string, team, index int, field, value string) error {
	if err := Authorize(p, team); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft(sessionID, team).SetField(index, field, value)
}

func (s *Service) UpdateSport(p Principal, sessionID string, team, index, slot int, sport string) error {
	if err := Authorize(p, team); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft(sessionID, team).SetSport(index, slot, sport)
}

func (s *Service) Roster(p Principal, sessionID string, team int) (models.Roster, error) {
	if err := Authorize(p, team); err != nil {
		return models.Roster{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft(sessionID, team).Roster(), nil
}

// Validate runs the eligibility rules against the current draft.
func (s *Service) Validate(p Principal, sessionID string, team int) error {
	r, err := s.Roster(p, sessionID, team)
	if err != nil {
		return err
	}
	return eligibility.ValidateRoster(r)
}

// Submit validates the draft and hands it to the store. On success the
// session starts over with an empty draft; on failure the draft is kept.
func (s *Service) Submit(ctx context.Context, p Principal, sessionID string, team int, manager string) (models.Submission, string, error) {
	if err := Authorize(p, team); err != nil {
		return models.Submission{}, "", err
	}

	s.mu.Lock()
	d := s.draft(sessionID, team)
	if err := d.editable(); err != nil {
		s.mu.Unlock()
		return models.Submission{}, "", err
	}
	r := d.Roster()
	if err := eligibility.ValidateRoster(r); err != nil {
		s.mu.Unlock()
		return models.Submission{}, "", err
	}
	d.submitting = true
	s.mu.Unlock()

	sub := models.Submission{
		ID:           uuid.NewString(),
		Team:         models.TeamLabel(team),
		TeamNumber:   team,
		Manager:      manager,
		Timestamp:    util.NowISO(s.clock),
		Participants: eligibility.Entries(r),
	}

	msg, err := s.store.Submit(ctx, sub)

	s.mu.Lock()
	d.submitting = false
	if err != nil {
		s.mu.Unlock()
		log.Warn().Err(err).Int("team", team).Str("submission_id", sub.ID).Msg("submission failed")
		return models.Submission{}, "", fmt.Errorf("submission failed: %w", err)
	}
	d.state = StateSubmitted
	if cur, ok := s.drafts[sessionID]; ok && cur == d {
		s.drafts[sessionID] = NewDraft(team)
	}
	s.mu.Unlock()

	log.Info().
		Int("team", team).
		Str("manager", manager).
		Str("submission_id", sub.ID).
		Int("participants", len(sub.Participants)).
		Msg("roster submitted")

	if s.notifier != nil {
		go s.notifier.NotifySubmitted(context.WithoutCancel(ctx), sub)
	}
	return sub, msg, nil
}

// Discard forgets the session's draft.
func (s *Service) Discard(sessionID string) {
	s.mu.Lock()
	delete(s.drafts, sessionID)
	s.mu.Unlock()
}
