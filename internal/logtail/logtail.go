package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Entry is one decoded line of the JSON diagnostic log.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	// Fields holds the remaining keys as display strings, sorted by key.
	Fields []Field
	// Raw is the original line; lines that are not JSON only set Raw.
	Raw string
}

// Field is one extra key of an Entry.
type Field struct {
	Key   string
	Value string
}

// Read returns at most maxLines from the end of the file at path. A missing
// file reads as empty.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	window := make([]string, 0, maxLines)
	r := bufio.NewReader(file)
	for {
		line, err := readLine(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		if len(window) == maxLines {
			copy(window, window[1:])
			window = window[:maxLines-1]
		}
		window = append(window, line)
	}
	return window, nil
}

// maxLineBytes caps a single line; the rest of an overlong line is dropped.
const maxLineBytes = 64 * 1024

func readLine(r *bufio.Reader) (string, error) {
	var buf []byte
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return "", err
		}
		if room := maxLineBytes - len(buf); room > 0 {
			buf = append(buf, chunk[:min(len(chunk), room)]...)
		}
		if !isPrefix {
			return string(buf), nil
		}
	}
}

// ReadEntries is Read followed by Parse on every non-blank line.
func ReadEntries(path string, maxLines int) ([]Entry, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, Parse(line))
	}
	return entries, nil
}

// Parse decodes a logrus JSON line.
func Parse(line string) Entry {
	entry := Entry{Raw: line}
	if !gjson.Valid(line) {
		return entry
	}
	doc := gjson.Parse(line)
	if !doc.IsObject() {
		return entry
	}

	doc.ForEach(func(key, value gjson.Result) bool {
		switch k := key.String(); k {
		case "time":
			if ts, err := time.Parse(time.RFC3339, value.String()); err == nil {
				entry.Time = ts
			}
		case "level":
			entry.Level = value.String()
		case "msg":
			entry.Message = value.String()
		default:
			entry.Fields = append(entry.Fields, Field{Key: k, Value: value.String()})
		}
		return true
	})
	sort.Slice(entry.Fields, func(i, j int) bool {
		return entry.Fields[i].Key < entry.Fields[j].Key
	})
	return entry
}

// Field returns the value stored under key.
func (e Entry) Field(key string) (string, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}
