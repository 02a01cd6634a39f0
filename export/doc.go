// Package export renders committed board snapshots into shareable
// documents: CSV for spreadsheets, plain text for the clipboard and PDF
// for printed run sheets.
//
// Exporters consume types.BoardSnapshot and never feed back into the
// core; pending (unsaved) edits are not part of a snapshot, so a document
// always reflects persisted state.
package export
