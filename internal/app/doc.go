// Package app is scanboard's composition root.
//
// Run loads configuration, opens the JSON log file, builds the scanner API
// client and wires it into:
//
//   - settings.Store, seeded with defaults and loaded once by the UI
//   - state.Store, fed by the Poller every two seconds
//   - command.Dispatcher, for start and stop
//
// then hands everything to ui.Run and blocks until the user quits or the
// context is cancelled.
//
// # Poller
//
// The Poller fetches /status on a fixed interval, first after one full
// period, and offers each result to the state store, which publishes only
// when the content changed. Fetch failures are logged and the displayed
// status stays as it was until a later tick succeeds. A response that lands
// after Stop is discarded.
package app
