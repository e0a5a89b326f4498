package formatter

import (
	"fmt"
	"strings"

	"github.com/halstead-studio/studioops/internal/domain"
)

// FormatSprintList renders the sprint overview table.
func FormatSprintList(sprints []*domain.Sprint) string {
	if len(sprints) == 0 {
		return Dim("No sprints yet.")
	}

	rows := make([][]string, 0, len(sprints))
	for _, s := range sprints {
		rows = append(rows, []string{
			TruncID(s.ID),
			s.ClientName,
			SprintStatusPill(s.Status),
			fmt.Sprintf("%d", s.DeliverableCount),
			Points(s.PointTotal),
			Money(s.PriceTotal),
		})
	}
	return RenderTable([]string{"ID", "Client", "Status", "Items", "Points", "Price"}, rows)
}

// FormatSprintDetail renders one sprint with its composition rows.
func FormatSprintDetail(s *domain.Sprint, items []*domain.SprintDeliverable) string {
	var b strings.Builder

	b.WriteString(Header(s.ClientName))
	b.WriteString("\n")
	b.WriteString(SprintStatusPill(s.Status))
	if s.PackageName != "" {
		b.WriteString(Dim(fmt.Sprintf("  (package: %s)", s.PackageName)))
	}
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
		Bold(Points(s.PointTotal)),
		Hours(s.HourTotal),
		Money(s.PriceTotal),
		Dim(fmt.Sprintf("%d weeks", s.WeekCount)),
	))

	if len(items) > 0 {
		b.WriteString("\n")
		rows := make([][]string, 0, len(items))
		for _, item := range items {
			rows = append(rows, []string{
				TruncID(item.ID),
				item.Name,
				fmt.Sprintf("%.2g", item.Complexity),
				fmt.Sprintf("%d", item.Quantity),
				Points(item.AdjustedPoints),
				Money(item.AdjustedPrice),
				item.CurrentVersion,
			})
		}
		b.WriteString(RenderTable(
			[]string{"ID", "Deliverable", "Cx", "Qty", "Points", "Price", "Ver"}, rows))
	}

	if s.Agenda != "" {
		b.WriteString("\n")
		b.WriteString(Header("Workshop Agenda"))
		b.WriteString("\n")
		b.WriteString(s.Agenda)
		b.WriteString("\n")
	}

	return b.String()
}

// FormatVersions renders a deliverable's version history, newest first.
func FormatVersions(versions []*domain.DeliverableVersion) string {
	if len(versions) == 0 {
		return Dim("No versions cut yet.")
	}

	rows := make([][]string, 0, len(versions))
	for _, v := range versions {
		rows = append(rows, []string{
			Bold(v.Version.String()),
			v.Author,
			HumanDate(v.CreatedAt),
		})
	}
	return RenderTable([]string{"Version", "Author", "Created"}, rows)
}

// FormatChangeLog renders a sprint's audit trail.
func FormatChangeLog(entries []*domain.ChangeEntry) string {
	if len(entries) == 0 {
		return Dim("No changes recorded.")
	}

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("%s  %s %s\n",
			Dim(HumanDate(e.CreatedAt)), e.Summary, Dim("("+e.Actor+")")))
	}
	return b.String()
}
