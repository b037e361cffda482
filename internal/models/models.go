package models

import (
	"strconv"
	"strings"
)

const (
	TeamCount              = 13
	MaxParticipantsPerTeam = 50
	SportSlots             = 5
)

// Participant is one row of a team's registration form. Age is kept as the
// text the manager typed; numeric checks happen at validation time.
type Participant struct {
	Name        string   `json:"name"`
	Gender      string   `json:"gender"`
	Age         string   `json:"age"`
	Designation string   `json:"designation"`
	Phone       string   `json:"phone"`
	Sports      []string `json:"sports"`
}

// NewParticipant returns an empty row with all sport slots present.
func NewParticipant() Participant {
	return Participant{Sports: make([]string, SportSlots)}
}

// Clone returns a copy that shares no slices with p.
func (p Participant) Clone() Participant {
	out := p
	out.Sports = append([]string(nil), p.Sports...)
	return out
}

type Roster struct {
	Team         int           `json:"team"`
	Participants []Participant `json:"participants"`
}

func (r Roster) Clone() Roster {
	out := Roster{Team: r.Team, Participants: make([]Participant, len(r.Participants))}
	for i, p := range r.Participants {
		out.Participants[i] = p.Clone()
	}
	return out
}

// Entry is a participant with the category derived from gender and age.
type Entry struct {
	Participant
	Category string `json:"category"`
}

// Submission is the full-roster snapshot handed to the store.
type Submission struct {
	ID           string  `json:"id"`
	Team         string  `json:"team"`
	TeamNumber   int     `json:"teamNumber"`
	Manager      string  `json:"manager"`
	Timestamp    string  `json:"timestamp"`
	Participants []Entry `json:"participants"`
}

// Table is a header plus rows, as read back from the spreadsheet.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Column returns the index of name in the header or -1.
func (t Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

func TeamLabel(team int) string {
	return "Team " + strconv.Itoa(team)
}

func ValidTeam(team int) bool {
	return team >= 1 && team <= TeamCount
}

// RegistrationColumns is the sheet layout, one row per participant.
var RegistrationColumns = []string{
	"team", "teamNumber", "timestamp", "manager",
	"name", "gender", "age", "designation", "phone", "sports", "category",
}

// Rows flattens a submission into RegistrationColumns order.
func (s Submission) Rows() [][]string {
	rows := make([][]string, 0, len(s.Participants))
	for _, e := range s.Participants {
		rows = append(rows, []string{
			s.Team, strconv.Itoa(s.TeamNumber), s.Timestamp, s.Manager,
			e.Name, e.Gender, e.Age, e.Designation, e.Phone, JoinSports(e.Sports), e.Category,
		})
	}
	return rows
}

// JoinSports lists the filled slots separated by "; ".
func JoinSports(sports []string) string {
	out := make([]string, 0, len(sports))
	for _, s := range sports {
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "; ")
}
