// Package scanner provides the HTTP client and wire types for the PixelFlip
// scanner API.
//
// # Endpoints
//
// All paths resolve beneath the configured base URL, which normally ends in
// /api:
//
//   - GET  settings: current Settings
//   - POST settings: persist a full Settings object
//   - GET  status:   run status, daily counters, recent activity
//   - POST start:    begin scanning
//   - POST stop:     halt scanning
//
// Requests carry Accept: application/json and a scanboard User-Agent; writes
// also set Content-Type: application/json. The client uses a 5 second timeout.
//
// # Errors
//
// Every failure (transport, non-2xx status, undecodable body) wraps
// ErrCallFailed, so callers only need errors.Is(err, scanner.ErrCallFailed).
// Callers log and move on; the client never retries.
//
// # Dynamic maps
//
// Platforms and thresholds are open, backend-defined key sets. They decode
// into Ordered, which keeps the document's key order so lists render in a
// stable order and round-trip unchanged on save.
//
// Activity timestamps and last_check are bare HH:MM:SS wall-clock strings.
// ParseClock places them on a given calendar day.
package scanner
