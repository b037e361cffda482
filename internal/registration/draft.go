package registration

import (
	"errors"
	"fmt"

	"sportsmeet-portal/internal/eligibility"
	"sportsmeet-portal/internal/models"
)

var (
	ErrSubmitted         = errors.New("roster already submitted; create new slots to continue")
	ErrSubmitInProgress  = errors.New("a submission for this roster is in progress")
	ErrUnknownField      = errors.New("unknown participant field")
	ErrIndexOutOfRange   = errors.New("participant index out of range")
	ErrSlotOutOfRange    = errors.New("sport slot out of range")
	ErrUnknownDiscipline = errors.New("unknown sport")
)

type State int

const (
	StateDraft State = iota
	StateSubmitted
)

func (s State) String() string {
	if s == StateSubmitted {
		return "submitted"
	}
	return "draft"
}

// Draft is a team roster being edited. Once submitted it rejects changes.
type Draft struct {
	roster     models.Roster
	state      State
	submitting bool
}

func NewDraft(team int) *Draft {
	return &Draft{roster: models.Roster{Team: team, Participants: []models.Participant{}}}
}

func (d *Draft) State() State { return d.state }

func (d *Draft) Team() int { return d.roster.Team }

// Roster returns a copy the caller may keep.
func (d *Draft) Roster() models.Roster {
	return d.roster.Clone()
}

func (d *Draft) editable() error {
	if d.state == StateSubmitted {
		return ErrSubmitted
	}
	if d.submitting {
		return ErrSubmitInProgress
	}
	return nil
}

// CreateSlots replaces the roster with n empty participants, n clamped to
// 0..MaxParticipantsPerTeam. It returns the number created.
func (d *Draft) CreateSlots(n int) (int, error) {
	if err := d.editable(); err != nil {
		return 0, err
	}
	if n < 0 {
		n = 0
	}
	if n > models.MaxParticipantsPerTeam {
		n = models.MaxParticipantsPerTeam
	}
	ps := make([]models.Participant, n)
	for i := range ps {
		ps[i] = models.NewParticipant()
	}
	d.roster.Participants = ps
	return n, nil
}

// SetField updates one text field of the participant at index (0-based).
func (d *Draft) SetField(index int, field, value string) error {
	if err := d.editable(); err != nil {
		return err
	}
	p, err := d.participant(index)
	if err != nil {
		return err
	}
	switch field {
	case "name":
		p.Name = value
	case "gender":
		p.Gender = value
	case "age":
		p.Age = value
	case "designation":
		p.Designation = value
	case "phone":
		p.Phone = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// SetSport stores sport in the given slot; an empty sport clears it.
func (d *Draft) SetSport(index, slot int, sport string) error {
	if err := d.editable(); err != nil {
		return err
	}
	p, err := d.participant(index)
	if err != nil {
		return err
	}
	if slot < 0 || slot >= eligibility.MaxSlots {
		return fmt.Errorf("%w: %d", ErrSlotOutOfRange, slot)
	}
	if sport != "" {
		if _, ok := eligibility.ParseDiscipline(sport); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownDiscipline, sport)
		}
	}
	for len(p.Sports) < eligibility.MaxSlots {
		p.Sports = append(p.Sports, "")
	}
	p.Sports[slot] = sport
	return nil
}

func (d *Draft) participant(index int) (*models.Participant, error) {
	if index < 0 || index >= len(d.roster.Participants) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return &d.roster.Participants[index], nil
}
