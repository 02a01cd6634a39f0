package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cruisedesk/boardkit/types"
)

var csvHeader = []string{
	"date", "resource", "resource_name", "item", "adults", "children", "infants", "total", "area", "program",
}

// CSV writes the snapshot as one row per item, assigned columns first and
// the unassigned pool last with an empty resource column.
func CSV(w io.Writer, snap *types.BoardSnapshot) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, col := range snap.Columns {
		for _, it := range col.Items {
			if err := cw.Write(csvRow(snap.Date, string(col.Resource.ID), col.Resource.Name, it)); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	for _, it := range snap.Unassigned {
		if err := cw.Write(csvRow(snap.Date, "", "", it)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func csvRow(date, resourceID, resourceName string, it types.Item) []string {
	return []string{
		date,
		resourceID,
		resourceName,
		it.ID,
		fmt.Sprint(it.Guests.Adults),
		fmt.Sprint(it.Guests.Children),
		fmt.Sprint(it.Guests.Infants),
		fmt.Sprint(it.Guests.Total()),
		it.GroupKey,
		it.ProgramKey,
	}
}
