package types

// BoardData is the payload a Loader returns for one (company, activity date)
// selection. It is consumed once by Board.Load and not retained.
type BoardData struct {
	// Items are the assignable bookings for the date. Loaders must already
	// exclude voided/cancelled records and, for driver-style boards,
	// self-arranged bookings.
	Items []Item `json:"items"`

	// Resources is the master resource list for the company.
	Resources []Resource `json:"resources"`

	// Locks are the lock/binding records persisted for the date. Records
	// referencing a resource absent from Resources are ignored on load.
	Locks []LockRecord `json:"locks"`
}

// ItemChange is one entry of a save batch: an item whose working assignment
// differs from the last persisted one.
type ItemChange struct {
	ItemID string     `json:"itemId"`
	From   ResourceID `json:"from"`
	To     ResourceID `json:"to"`
}

// ChangeSet is the payload a save batch persists: the items whose pending
// assignment differs from committed, plus the full current lock/binding
// record set.
type ChangeSet struct {
	Items []ItemChange `json:"items"`
	Locks []LockRecord `json:"locks"`
}

// Empty reports whether there is nothing to persist.
func (c ChangeSet) Empty() bool {
	return len(c.Items) == 0 && len(c.Locks) == 0
}

// ColumnSnapshot is one resource column of a committed board snapshot.
type ColumnSnapshot struct {
	Resource Resource   `json:"resource"`
	Lock     LockRecord `json:"lock"`
	Items    []Item     `json:"items"`
}

// BoardSnapshot is a committed, read-only view of the board, ordered by the
// current column order. Export adapters consume it; it does not feed back
// into the core.
type BoardSnapshot struct {
	CompanyID  string           `json:"companyId"`
	Date       string           `json:"date"`
	Columns    []ColumnSnapshot `json:"columns"`
	Unassigned []Item           `json:"unassigned"`
}
