// Package settings owns the in-memory copy of the scanner's user-editable
// settings.
//
// Load reads the backend once at startup. After that every edit is applied to
// the committed value immediately and then saved with a full POST /settings on
// a background goroutine. Saves are not ordered relative to each other and a
// failed save is logged, never rolled back.
//
// Edits are computed from the latest committed value under the store lock, so
// two edits issued back to back always both survive.
package settings
