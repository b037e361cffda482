package export

import (
	"fmt"
	"strings"

	"sportsmeet-portal/internal/models"
)

const AllFilename = "all_registrations.csv"

var teamHeader = []string{"team", "name", "gender", "age", "designation", "phone", "sports", "category"}

func TeamFilename(team int) string {
	return fmt.Sprintf("team-%d-participants.csv", team)
}

// TeamCSV renders a team's roster as the manager download.
func TeamCSV(team int, entries []models.Entry) string {
	label := models.TeamLabel(team)
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			label, e.Name, e.Gender, e.Age, e.Designation, e.Phone, models.JoinSports(e.Sports), e.Category,
		})
	}
	return build(teamHeader, rows)
}

// TableCSV renders every stored registration for admins. An empty table
// renders as an empty document.
func TableCSV(t models.Table) string {
	if len(t.Header) == 0 {
		return ""
	}
	return build(t.Header, t.Rows)
}

// Header names are written bare and every value is quoted.
func build(header []string, rows [][]string) string {
	b := strings.Builder{}
	b.WriteString(strings.Join(header, ","))
	for _, r := range rows {
		b.WriteByte('\n')
		for i := range header {
			if i > 0 {
				b.WriteByte(',')
			}
			v := ""
			if i < len(r) {
				v = r[i]
			}
			b.WriteString(quote(v))
		}
	}
	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
