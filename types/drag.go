package types

// ColumnID identifies a board column. Resource columns use the resource ID
// as their column ID; the unassigned pool uses UnassignedColumn.
type ColumnID string

// UnassignedColumn is the fixed pseudo-column holding unassigned items. It
// appears exactly once in every column order but is not structurally pinned
// to position 0 and may be reordered like any other column.
const UnassignedColumn ColumnID = "unassigned"

// ColumnFor returns the column ID for a resource.
func ColumnFor(id ResourceID) ColumnID {
	return ColumnID(id)
}

// DragKind tags what entity a drag operation carries.
//
// The tag is decided once at drag-start and threaded through to the drop,
// so intent never has to be inferred from payload heuristics at drop time.
type DragKind int

const (
	// DragColumn is a column being reordered.
	DragColumn DragKind = iota + 1

	// DragItem is an item being reassigned.
	DragItem
)

// DragSubject is the tagged entity picked up at drag-start.
type DragSubject struct {
	Kind DragKind
	// ID is a ColumnID for DragColumn and an item ID for DragItem.
	ID string
}

// ColumnSubject tags a column drag.
func ColumnSubject(id ColumnID) DragSubject {
	return DragSubject{Kind: DragColumn, ID: string(id)}
}

// ItemSubject tags an item drag.
func ItemSubject(itemID string) DragSubject {
	return DragSubject{Kind: DragItem, ID: itemID}
}

// DropKind tags what the pointer was over when the drag ended.
type DropKind int

const (
	// DropNone means there was no valid drop target; the drag is discarded
	// silently.
	DropNone DropKind = iota

	// DropOnColumn means the drop landed on a column container or its
	// empty area.
	DropOnColumn

	// DropOnItem means the drop landed on another item; for item drags
	// this means "join that item's column".
	DropOnItem
)

// DropTarget is the tagged drop location of a drag operation.
type DropTarget struct {
	Kind DropKind
	// ID is a ColumnID for DropOnColumn and an item ID for DropOnItem.
	ID string
}

// OnColumn targets a column container (including the unassigned pool).
func OnColumn(id ColumnID) DropTarget {
	return DropTarget{Kind: DropOnColumn, ID: string(id)}
}

// OnItem targets another item.
func OnItem(itemID string) DropTarget {
	return DropTarget{Kind: DropOnItem, ID: itemID}
}

// NoDrop is the absent drop target.
func NoDrop() DropTarget {
	return DropTarget{Kind: DropNone}
}
