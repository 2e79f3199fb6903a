// Package logtail reads the end of scanboard's diagnostic log for the
// in-app diagnostics view.
//
// Read keeps a sliding window of the last N lines, so the whole file is never
// held in memory. ReadEntries decodes each line as a logrus JSON entry with
// gjson, splitting out time, level and message and keeping every other key
// as a sorted field list. Lines that are not JSON objects (a stray panic
// trace, for example) come back with only Raw set so they still display.
package logtail
