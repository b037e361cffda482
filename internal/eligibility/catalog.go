package eligibility

// Discipline is one entry of the fixed sports catalog.
type Discipline int

const (
	Run100m Discipline = iota
	Run200m
	Run400m
	Run800m
	Run1500m
	Run5000m
	Relay4x100m
	LongJump
	HighJump
	TripleJump
	DiscusThrow
	ShotPut
	JavelinThrow
	Walk400m
	Walk800m
	Squash
	Chess
	CarromSingles
	CarromDoubles
	TableTennisSingles
	TableTennisDoubles
	TableTennisMixedDoubles
	BadmintonSingles
	BadmintonDoubles
	BadmintonMixedDoubles
	VolleyballMen
	KabaddiMen
	BasketballMen
	TugOfWar
	Football
	LawnTennis
	Quiz

	disciplineCount
)

// Display names are part of the stored data and must not change.
var disciplineNames = [disciplineCount]string{
	Run100m:                 "100 m",
	Run200m:                 "200 m",
	Run400m:                 "400 m",
	Run800m:                 "800 m",
	Run1500m:                "1500 m",
	Run5000m:                "5000 m",
	Relay4x100m:             "4x100 m relay",
	LongJump:                "Long Jump",
	HighJump:                "High Jump",
	TripleJump:              "Triple Jump",
	DiscusThrow:             "Discuss Throw",
	ShotPut:                 "Shotput",
	JavelinThrow:            "Javelin throw",
	Walk400m:                "400 m walking",
	Walk800m:                "800 m walking",
	Squash:                  "Squash",
	Chess:                   "Chess",
	CarromSingles:           "Carrom (Singles)",
	CarromDoubles:           "Carrom (Doubles)",
	TableTennisSingles:      "Table Tennis (Singles)",
	TableTennisDoubles:      "Table Tennis (Doubles)",
	TableTennisMixedDoubles: "Table Tennis (Mixed Doubles)",
	BadmintonSingles:        "Badminton (Singles)",
	BadmintonDoubles:        "Badminton (Doubles)",
	BadmintonMixedDoubles:   "Badminton (Mixed Doubles)",
	VolleyballMen:           "Volleyball (Men)",
	KabaddiMen:              "Kabaddi (Men)",
	BasketballMen:           "Basketball (Men)",
	TugOfWar:                "Tug of War",
	Football:                "Football",
	LawnTennis:              "Lawn Tennis",
	Quiz:                    "Quiz",
}

var disciplineByName = func() map[string]Discipline {
	m := make(map[string]Discipline, disciplineCount)
	for d, name := range disciplineNames {
		m[name] = Discipline(d)
	}
	return m
}()

func (d Discipline) String() string {
	if d < 0 || d >= disciplineCount {
		return ""
	}
	return disciplineNames[d]
}

// ParseDiscipline matches a display name exactly.
func ParseDiscipline(name string) (Discipline, bool) {
	d, ok := disciplineByName[name]
	return d, ok
}

// Catalog returns every discipline in display order.
func Catalog() []Discipline {
	out := make([]Discipline, disciplineCount)
	for i := range out {
		out[i] = Discipline(i)
	}
	return out
}
