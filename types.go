package boardkit

import "github.com/cruisedesk/boardkit/types"

// Re-exported types from the types package for API convenience.
// Users can access these via boardkit.TypeName instead of importing
// the types package directly.

type (
	// ResourceID identifies an assignable resource column.
	ResourceID = types.ResourceID
	// ResourceKind distinguishes resource semantics.
	ResourceKind = types.ResourceKind
	// Resource is an assignable capacity-bearing entity.
	Resource = types.Resource
	// GuestCount breaks a party down by age band.
	GuestCount = types.GuestCount
	// Item is one assignable reservation line.
	Item = types.Item
	// SecondaryBindings holds non-constraining per-resource metadata.
	SecondaryBindings = types.SecondaryBindings
	// LockRecord is the per-resource, per-date lock and binding state.
	LockRecord = types.LockRecord
	// BoardData is the bulk load result for one company and date.
	BoardData = types.BoardData
	// ItemChange describes one pending assignment delta.
	ItemChange = types.ItemChange
	// ChangeSet is the diff shipped to persistence on save.
	ChangeSet = types.ChangeSet
	// ColumnSnapshot is one resource column in a read-only board view.
	ColumnSnapshot = types.ColumnSnapshot
	// BoardSnapshot is a read-only view of committed board state.
	BoardSnapshot = types.BoardSnapshot
	// SaveState is the autosave lifecycle state.
	SaveState = types.SaveState
	// RejectReason explains a refused move.
	RejectReason = types.RejectReason
	// Decision is the outcome of a constraint check.
	Decision = types.Decision
	// ColumnID identifies a rendered board column.
	ColumnID = types.ColumnID
	// DragKind discriminates drag subjects.
	DragKind = types.DragKind
	// DragSubject is the thing being dragged.
	DragSubject = types.DragSubject
	// DropKind discriminates drop targets.
	DropKind = types.DropKind
	// DropTarget is the place a drag was released.
	DropTarget = types.DropTarget
	// Category classifies a notification for presentation.
	Category = types.Category
	// Code identifies a notification condition.
	Code = types.Code
	// Notification is one user-facing message.
	Notification = types.Notification
	// Notifier receives user-facing notifications.
	Notifier = types.Notifier
	// Logger is the pluggable logging interface.
	Logger = types.Logger
	// Hooks holds lifecycle callbacks.
	Hooks = types.Hooks
	// MetricsCollector combines all metrics interfaces.
	MetricsCollector = types.MetricsCollector
	// Loader reads board state from a backing store.
	Loader = types.Loader
	// Saver writes board changes to a backing store.
	Saver = types.Saver
)

// Re-exported constants.
const (
	// Unassigned is the pseudo-resource holding unplaced items.
	Unassigned = types.Unassigned
	// UnassignedColumn is the reserved column id for the unassigned pool.
	UnassignedColumn = types.UnassignedColumn

	KindDriver = types.KindDriver
	KindBoat   = types.KindBoat

	SaveIdle   = types.SaveIdle
	SaveDirty  = types.SaveDirty
	SaveSaving = types.SaveSaving

	ReasonNone         = types.ReasonNone
	ReasonNoop         = types.ReasonNoop
	ReasonTargetLocked = types.ReasonTargetLocked
	ReasonSourceLocked = types.ReasonSourceLocked
	ReasonIncompatible = types.ReasonIncompatible

	DragColumn = types.DragColumn
	DragItem   = types.DragItem

	DropNone     = types.DropNone
	DropOnColumn = types.DropOnColumn
	DropOnItem   = types.DropOnItem

	CategoryInfo    = types.CategoryInfo
	CategorySuccess = types.CategorySuccess
	CategoryError   = types.CategoryError
)

// Re-exported constructors.
var (
	ColumnFor     = types.ColumnFor
	ColumnSubject = types.ColumnSubject
	ItemSubject   = types.ItemSubject
	OnColumn      = types.OnColumn
	OnItem        = types.OnItem
	NoDrop        = types.NoDrop
)
