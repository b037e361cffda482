package eligibility

// Kind classifies a roster violation. Values are stable API codes.
type Kind string

const (
	KindEmptyRoster               Kind = "EMPTY_ROSTER"
	KindMissingField              Kind = "MISSING_FIELD"
	KindInvalidAge                Kind = "INVALID_AGE"
	KindInvalidPhoneFormat        Kind = "INVALID_PHONE_FORMAT"
	KindDuplicateSportSelection   Kind = "DUPLICATE_SPORT_SELECTION"
	KindCapacityExceeded          Kind = "CAPACITY_EXCEEDED"
	KindSinglesCapExceeded        Kind = "SINGLES_CAP_EXCEEDED"
	KindDoublesCountInvalid       Kind = "DOUBLES_COUNT_INVALID"
	KindMixedDoublesGenderInvalid Kind = "MIXED_DOUBLES_GENDER_INVALID"
	KindGenderSoloCapExceeded     Kind = "GENDER_SOLO_CAP_EXCEEDED"
)

// Violation is the first rule a roster breaks.
type Violation struct {
	Kind Kind
	// Participant is the 1-based row that broke the rule, 0 for the roster itself.
	Participant int
	Field       string
	Discipline  string
	Message     string
}

func (v *Violation) Error() string {
	return v.Message
}
