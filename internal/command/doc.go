// Package command issues the start and stop requests.
package command
