package registration

import (
	"errors"
	"fmt"
)

// Principal is what the session layer knows about the caller.
type Principal struct {
	LoggedIn bool
	Admin    bool
	Team     int
}

var (
	ErrNotLoggedIn    = errors.New("Only logged-in team managers can edit or submit participants.")
	ErrAdminForbidden = errors.New("Admins cannot edit or submit team participants. Log in as a manager.")
)

type TeamMismatchError struct {
	LoggedTeam int
	Team       int
}

func (e *TeamMismatchError) Error() string {
	return fmt.Sprintf("You are logged in as manager for Team %d. Switch to Team %d to continue.", e.LoggedTeam, e.Team)
}

// Authorize allows only the manager of team to touch its roster.
func Authorize(p Principal, team int) error {
	if !p.LoggedIn {
		return ErrNotLoggedIn
	}
	if p.Admin {
		return ErrAdminForbidden
	}
	if p.Team != team {
		return &TeamMismatchError{LoggedTeam: p.Team, Team: team}
	}
	return nil
}
