package export

import (
	"fmt"
	"strings"

	"github.com/cruisedesk/boardkit/grouping"
	"github.com/cruisedesk/boardkit/types"
)

// Text renders the snapshot as clipboard-friendly plain text: one section
// per resource column with its utilization and bindings, then the
// unassigned pool grouped by area.
func Text(snap *types.BoardSnapshot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s — %s\n", snap.CompanyID, snap.Date)

	for _, col := range snap.Columns {
		used := 0
		for _, it := range col.Items {
			used += it.Guests.Total()
		}

		fmt.Fprintf(&sb, "\n%s (%d/%d)", col.Resource.Name, used, col.Resource.Capacity)
		if col.Lock.Locked {
			sb.WriteString(" [locked]")
		}
		if col.Lock.ProgramBinding != "" {
			fmt.Fprintf(&sb, " [program: %s]", col.Lock.ProgramBinding)
		}
		if col.Lock.Bindings.GuideID != "" {
			fmt.Fprintf(&sb, " [guide: %s]", col.Lock.Bindings.GuideID)
		}
		if col.Lock.Bindings.RestaurantID != "" {
			fmt.Fprintf(&sb, " [restaurant: %s]", col.Lock.Bindings.RestaurantID)
		}
		sb.WriteByte('\n')

		for _, it := range col.Items {
			fmt.Fprintf(&sb, "  - %s (%d pax)\n", it.ID, it.Guests.Total())
		}
	}

	if len(snap.Unassigned) > 0 {
		sb.WriteString("\nUnassigned\n")
		for _, g := range grouping.ByKey(snap.Unassigned, grouping.ByArea) {
			fmt.Fprintf(&sb, "  %s\n", g.Key)
			for _, it := range g.Items {
				fmt.Fprintf(&sb, "    - %s (%d pax)\n", it.ID, it.Guests.Total())
			}
		}
	}

	return sb.String()
}
