// Package ui is the Bubble Tea dashboard for the PixelFlip scanner.
//
// The screen is a header with the status light, a stats row with the
// next-check countdown and today's counters, three panels and a command bar:
//
//   - SETTINGS: platform checkboxes, zip code, distance, check interval, AI
//     detection, description scan (when the backend reports it) and strictness.
//     Every edit is applied locally and saved in the background.
//   - SEARCH TERMS: price thresholds in backend order; a adds or updates a
//     term, x removes the selected one.
//   - CONSOLE: recent activity colored by kind, rebuilt only when the status
//     store publishes a new version.
//
// Status arrives from a state.Store fed by the poller; the model listens on
// its change channel rather than polling it. Run commands go through a
// Commander and are only offered when they make sense (start while stopped,
// stop while running).
//
// Failures never interrupt the dashboard. They are logged, and D opens a
// diagnostics view over the tail of the log file.
package ui
