// Package state holds the status snapshot shown by the dashboard.
//
// The poller offers every successful poll to the Store. A poll replaces the
// displayed status only when Changed says it differs; otherwise it is dropped
// and nothing downstream re-renders. Each replacement bumps Version and sends
// a coalescing signal on Changes, which the UI listens to.
//
// Activity lists are compared structurally, entry by entry and in order.
package state
