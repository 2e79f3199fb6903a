// Package countdown derives the "next check in" display from the last known
// status and the configured check interval. It does no I/O.
package countdown
