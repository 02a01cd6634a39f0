package types

// Category classifies a user-facing notification.
type Category int

const (
	// CategoryInfo is a neutral informational message.
	CategoryInfo Category = iota

	// CategorySuccess confirms a user-initiated action.
	CategorySuccess

	// CategoryError reports a rejected action or a failed save.
	CategoryError
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryInfo:
		return "info"
	case CategorySuccess:
		return "success"
	case CategoryError:
		return "error"
	default:
		return "unknown"
	}
}

// Code identifies the triggering condition of a notification. The rendering
// layer owns wording and localization; the core only fixes the condition and
// category.
type Code string

const (
	// CodeTargetLocked: a move was rejected because the target is locked.
	CodeTargetLocked Code = "target_locked"

	// CodeSourceLocked: a move was rejected because the source is locked.
	CodeSourceLocked Code = "source_locked"

	// CodeIncompatibleProgram: a move was rejected by a program binding.
	CodeIncompatibleProgram Code = "incompatible_program"

	// CodeLockOverCapacity: a lock toggle was rejected because the resource
	// is over capacity.
	CodeLockOverCapacity Code = "lock_over_capacity"

	// CodeProgramEviction: changing a program binding evicted items.
	CodeProgramEviction Code = "program_eviction"

	// CodeSaved: a manual save completed. The autosave path stays silent on
	// success to avoid notification spam.
	CodeSaved Code = "saved"

	// CodeSaveFailed: a manual save failed; changes remain pending.
	CodeSaveFailed Code = "save_failed"

	// CodeLockLocalOnly: the lock store is unavailable in this deployment;
	// lock state is kept locally only.
	CodeLockLocalOnly Code = "lock_local_only"
)

// Notification is one user-facing message emitted by the board core.
type Notification struct {
	// Category is the severity bucket (info/success/error).
	Category Category

	// Code is the triggering condition.
	Code Code

	// ResourceID is the resource involved, if any.
	ResourceID ResourceID

	// ItemID is the item involved, if any.
	ItemID string

	// Count carries a quantity for codes that have one (e.g. the number of
	// items evicted by a program binding change).
	Count int
}

// Notifier receives user-facing notifications.
//
// Implementations render transient toasts or equivalent; they must not
// block, and they must tolerate being called from multiple goroutines.
type Notifier interface {
	// Notify delivers one notification.
	Notify(n Notification)
}
