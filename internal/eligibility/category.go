package eligibility

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"sportsmeet-portal/internal/models"
)

type Gender int

const (
	GenderOther Gender = iota
	GenderMale
	GenderFemale
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "other"
	}
}

// NormalizeGender compares case-insensitively; surrounding spaces are significant.
func NormalizeGender(s string) Gender {
	switch cases.Fold().String(s) {
	case "male":
		return GenderMale
	case "female":
		return GenderFemale
	default:
		return GenderOther
	}
}

const (
	MaxSlots          = models.SportSlots
	defaultSlotsLimit = 3
)

// SlotCapacity is the number of sport slots a participant may fill.
func SlotCapacity(gender string) int {
	if NormalizeGender(gender) == GenderFemale {
		return MaxSlots
	}
	return defaultSlotsLimit
}

type Category string

const (
	CategoryOpen          Category = "Open"
	CategoryVeteran       Category = "Veteran"
	CategorySeniorVeteran Category = "Senior Veteran"
)

// Classify derives the competitive tier from gender and age.
func Classify(gender string, age float64) Category {
	switch NormalizeGender(gender) {
	case GenderMale:
		if age > 52 {
			return CategorySeniorVeteran
		}
		if age > 45 {
			return CategoryVeteran
		}
	case GenderFemale:
		if age > 40 {
			return CategoryVeteran
		}
	}
	return CategoryOpen
}

// ParseAge reads the free-text age. Blank, non-numeric and non-finite input
// reports false.
func ParseAge(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// CategoryOf classifies p, treating an unreadable age as 0.
func CategoryOf(p models.Participant) Category {
	age, _ := ParseAge(p.Age)
	return Classify(p.Gender, age)
}

// Entries attaches categories to every participant of r.
func Entries(r models.Roster) []models.Entry {
	out := make([]models.Entry, 0, len(r.Participants))
	for _, p := range r.Participants {
		out = append(out, models.Entry{Participant: p.Clone(), Category: string(CategoryOf(p))})
	}
	return out
}
