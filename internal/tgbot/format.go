package tgbot

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"sportsmeet-portal/internal/eligibility"
	"sportsmeet-portal/internal/models"
)

const helpText = "🛠 Sports meet admin\n" +
	"/summary - registrations per team\n" +
	"/export - download link for all registrations"

func submissionText(sub models.Submission) string {
	counts := map[string]int{}
	for _, e := range sub.Participants {
		counts[e.Category]++
	}
	b := strings.Builder{}
	fmt.Fprintf(&b, "✅ %s submitted %d participants.\n", sub.Team, len(sub.Participants))
	fmt.Fprintf(&b, "Manager: %s\nTime: %s\n", sub.Manager, sub.Timestamp)
	cats := []eligibility.Category{eligibility.CategoryOpen, eligibility.CategoryVeteran, eligibility.CategorySeniorVeteran}
	for i, c := range cats {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %d", c, counts[string(c)])
	}
	return b.String()
}

type teamSummary struct {
	label       string
	number      int
	rows        int
	submissions map[string]struct{}
}

// summaryText groups exported rows by team. Submissions are counted by
// distinct timestamp.
func summaryText(tb models.Table) string {
	teamCol := tb.Column("team")
	if teamCol < 0 || len(tb.Rows) == 0 {
		return "No registrations yet."
	}
	numCol := tb.Column("teamNumber")
	tsCol := tb.Column("timestamp")

	byTeam := map[string]*teamSummary{}
	for _, r := range tb.Rows {
		label := cell(r, teamCol)
		if label == "" {
			continue
		}
		ts, ok := byTeam[label]
		if !ok {
			ts = &teamSummary{label: label, submissions: map[string]struct{}{}}
			ts.number, _ = strconv.Atoi(cell(r, numCol))
			byTeam[label] = ts
		}
		ts.rows++
		ts.submissions[cell(r, tsCol)] = struct{}{}
	}
	if len(byTeam) == 0 {
		return "No registrations yet."
	}

	teams := make([]*teamSummary, 0, len(byTeam))
	for _, ts := range byTeam {
		teams = append(teams, ts)
	}
	slices.SortFunc(teams, func(x, y *teamSummary) int {
		if c := cmp.Compare(x.number, y.number); c != 0 {
			return c
		}
		return strings.Compare(x.label, y.label)
	})

	b := strings.Builder{}
	b.WriteString("📋 Registrations\n")
	total := 0
	for _, ts := range teams {
		fmt.Fprintf(&b, "%s: %d participants (%s)\n", ts.label, ts.rows, plural(len(ts.submissions), "submission"))
		total += ts.rows
	}
	fmt.Fprintf(&b, "Total: %d participants", total)
	return b.String()
}

func cell(r []string, i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
