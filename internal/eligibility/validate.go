package eligibility

import (
	"fmt"
	"regexp"
	"strings"

	"sportsmeet-portal/internal/models"
)

var phonePattern = regexp.MustCompile(`^[0-9]{6,15}$`)

// teamRule limits how many participants of one team may enter a discipline.
// Zero values disable the corresponding limit.
type teamRule struct {
	discipline      Discipline
	maxSelectors    int
	exactIfUsed     int
	oneOfEachGender bool
	maxPerGender    int
}

// Evaluated in order; the first broken rule is reported.
var teamRules = []teamRule{
	{discipline: BadmintonSingles, maxSelectors: 2},
	{discipline: TableTennisSingles, maxSelectors: 2},
	{discipline: BadmintonDoubles, exactIfUsed: 2},
	{discipline: BadmintonMixedDoubles, exactIfUsed: 2, oneOfEachGender: true},
	{discipline: TableTennisDoubles, exactIfUsed: 2},
	{discipline: TableTennisMixedDoubles, exactIfUsed: 2, oneOfEachGender: true},
	{discipline: Chess, maxPerGender: 1},
	{discipline: CarromSingles, maxPerGender: 1},
}

type selector struct {
	row    int
	gender Gender
}

// EffectiveSelections returns the non-empty sports within p's slot capacity,
// in slot order. Slots past the capacity are ignored.
func EffectiveSelections(p models.Participant) []string {
	limit := SlotCapacity(p.Gender)
	if limit > len(p.Sports) {
		limit = len(p.Sports)
	}
	out := make([]string, 0, limit)
	for _, s := range p.Sports[:limit] {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ValidateRoster checks every participant row in order and then the team-wide
// discipline limits. It returns nil or the first *Violation found.
func ValidateRoster(r models.Roster) error {
	if len(r.Participants) == 0 {
		return &Violation{Kind: KindEmptyRoster, Message: "No participant slots created."}
	}

	selectors := make(map[string][]selector)
	for i, p := range r.Participants {
		row := i + 1
		if v := checkParticipant(row, p); v != nil {
			return v
		}
		g := NormalizeGender(p.Gender)
		for _, s := range EffectiveSelections(p) {
			selectors[s] = append(selectors[s], selector{row: row, gender: g})
		}
	}

	for _, rule := range teamRules {
		if v := rule.check(selectors[rule.discipline.String()]); v != nil {
			return v
		}
	}
	return nil
}

func checkParticipant(row int, p models.Participant) *Violation {
	if strings.TrimSpace(p.Name) == "" {
		return rowViolation(KindMissingField, row, "name", "name required.")
	}
	if age, ok := ParseAge(p.Age); !ok || age <= 0 {
		return rowViolation(KindInvalidAge, row, "age", "enter a valid age.")
	}
	phone := strings.TrimSpace(p.Phone)
	if phone == "" {
		return rowViolation(KindMissingField, row, "phone", "phone required.")
	}
	if !phonePattern.MatchString(phone) {
		return rowViolation(KindInvalidPhoneFormat, row, "phone", "enter a valid phone number (6-15 digits).")
	}

	limit := SlotCapacity(p.Gender)
	sel := EffectiveSelections(p)
	seen := make(map[string]struct{}, len(sel))
	for _, s := range sel {
		if _, dup := seen[s]; dup {
			v := rowViolation(KindDuplicateSportSelection, row, "sports", "duplicate sports selected.")
			v.Discipline = s
			return v
		}
		seen[s] = struct{}{}
	}
	if len(sel) > limit {
		return rowViolation(KindCapacityExceeded, row, "sports", fmt.Sprintf("max %d sports allowed.", limit))
	}
	return nil
}

func rowViolation(kind Kind, row int, field, msg string) *Violation {
	return &Violation{
		Kind:        kind,
		Participant: row,
		Field:       field,
		Message:     fmt.Sprintf("Participant %d: %s", row, msg),
	}
}

func (r teamRule) check(sel []selector) *Violation {
	name := r.discipline.String()
	c := len(sel)

	if r.maxSelectors > 0 && c > r.maxSelectors {
		sport, _, _ := strings.Cut(name, " (")
		return &Violation{
			Kind:        KindSinglesCapExceeded,
			Participant: sel[r.maxSelectors].row,
			Discipline:  name,
			Message:     fmt.Sprintf("%s: max %d singles players per team.", sport, r.maxSelectors),
		}
	}

	if r.exactIfUsed > 0 && c > 0 {
		if c != r.exactIfUsed {
			at := c
			if at > r.exactIfUsed {
				at = r.exactIfUsed + 1
			}
			return &Violation{
				Kind:        KindDoublesCountInvalid,
				Participant: sel[at-1].row,
				Discipline:  name,
				Message: fmt.Sprintf("%s: if selected, exactly %d participants must be entered. Currently %d found.",
					name, r.exactIfUsed, c),
			}
		}
		if r.oneOfEachGender && !oneOfEach(sel) {
			return &Violation{
				Kind:        KindMixedDoublesGenderInvalid,
				Participant: sel[c-1].row,
				Discipline:  name,
				Message:     fmt.Sprintf("%s: mixed doubles require one male and one female.", name),
			}
		}
	}

	if r.maxPerGender > 0 {
		counts := map[Gender]int{}
		for _, s := range sel {
			if s.gender == GenderOther {
				continue
			}
			counts[s.gender]++
			if counts[s.gender] > r.maxPerGender {
				return &Violation{
					Kind:        KindGenderSoloCapExceeded,
					Participant: s.row,
					Discipline:  name,
					Message:     fmt.Sprintf("%s: only %s per gender allowed per team.", name, players(r.maxPerGender)),
				}
			}
		}
	}
	return nil
}

func oneOfEach(sel []selector) bool {
	var male, female int
	for _, s := range sel {
		switch s.gender {
		case GenderMale:
			male++
		case GenderFemale:
			female++
		}
	}
	return male == 1 && female == 1
}

func players(n int) string {
	if n == 1 {
		return "one player"
	}
	return fmt.Sprintf("%d players", n)
}
