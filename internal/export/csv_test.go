package export

import (
	"testing"

	"sportsmeet-portal/internal/models"
)

func TestTeamCSV(t *testing.T) {
	entries := []models.Entry{
		{
			Participant: models.Participant{
				Name: `Ravi "RK" Kumar`, Gender: "Male", Age: "53", Designation: "Engineer, Civil",
				Phone: "9876543210", Sports: []string{"Chess", "", "Quiz", "", ""},
			},
			Category: "Senior Veteran",
		},
		{
			Participant: models.Participant{Name: "Asha", Gender: "Female", Age: "29", Phone: "123456"},
			Category:    "Open",
		},
	}

	want := "team,name,gender,age,designation,phone,sports,category\n" +
		`"Team 5","Ravi ""RK"" Kumar","Male","53","Engineer, Civil","9876543210","Chess; Quiz","Senior Veteran"` + "\n" +
		`"Team 5","Asha","Female","29","","123456","","Open"`

	if got := TeamCSV(5, entries); got != want {
		t.Errorf("TeamCSV mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestTeamCSV_NoRows(t *testing.T) {
	if got := TeamCSV(1, nil); got != "team,name,gender,age,designation,phone,sports,category" {
		t.Errorf("expected header only, got %q", got)
	}
}

func TestTableCSV(t *testing.T) {
	tb := models.Table{
		Header: []string{"team", "name"},
		Rows:   [][]string{{"Team 1", "A"}, {"Team 2"}},
	}
	want := "team,name\n\"Team 1\",\"A\"\n\"Team 2\",\"\""
	if got := TableCSV(tb); got != want {
		t.Errorf("TableCSV = %q, want %q", got, want)
	}

	if got := TableCSV(models.Table{}); got != "" {
		t.Errorf("expected empty output for empty table, got %q", got)
	}
}

func TestFilenames(t *testing.T) {
	if TeamFilename(12) != "team-12-participants.csv" {
		t.Errorf("unexpected filename %q", TeamFilename(12))
	}
	if AllFilename != "all_registrations.csv" {
		t.Errorf("unexpected filename %q", AllFilename)
	}
}
