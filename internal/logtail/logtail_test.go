package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	var content strings.Builder
	var all []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		all = append(all, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		want     []string
	}{
		{"zero", 0, nil},
		{"negative", -1, nil},
		{"partial", 5, all[5:]},
		{"one", 1, all[9:]},
		{"exact", 10, all},
		{"more than file", 50, all},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read returned error: %v", err)
			}
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Read = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRead_OverlongLineIsTruncated(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "long.log")
	long := strings.Repeat("x", 2<<20)
	next := `{"level":"info","msg":"settings loaded","time":"2026-10-15T09:00:00Z"}`
	if err := os.WriteFile(logPath, []byte("first\n"+long+"\n"+next+"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := Read(logPath, 10)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Read returned %d lines, want 3", len(got))
	}
	if len(got[1]) != maxLineBytes {
		t.Fatalf("long line kept %d bytes, want %d", len(got[1]), maxLineBytes)
	}
	if got[0] != "first" || got[2] != next {
		t.Fatalf("neighbouring lines damaged: %q, %q", got[0], got[2])
	}

	entries, err := ReadEntries(logPath, 10)
	if err != nil {
		t.Fatalf("ReadEntries returned error: %v", err)
	}
	if last := entries[len(entries)-1]; last.Message != "settings loaded" {
		t.Fatalf("last entry = %+v, want the line after the long one", last)
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read = %v, %v; want nil, nil", got, err)
	}
}

func TestParse_LogrusJSON(t *testing.T) {
	line := `{"component":"poller","error":"backend call failed: GET /status: returned status 502","level":"warning","msg":"status poll failed","time":"2026-04-02T10:11:12Z"}`

	e := Parse(line)
	if e.Level != "warning" || e.Message != "status poll failed" {
		t.Fatalf("Parse = %#v", e)
	}
	if e.Time.IsZero() || e.Time.Hour() != 10 {
		t.Fatalf("Time = %v, want 10:11:12", e.Time)
	}
	if len(e.Fields) != 2 || e.Fields[0].Key != "component" || e.Fields[1].Key != "error" {
		t.Fatalf("Fields = %#v, want component then error", e.Fields)
	}
	if v, ok := e.Field("component"); !ok || v != "poller" {
		t.Fatalf("Field(component) = %q, %v", v, ok)
	}
}

func TestParse_PlainLineKeepsRaw(t *testing.T) {
	for _, line := range []string{"panic: boom", "[1,2,3]", `{"msg":`} {
		e := Parse(line)
		if e.Raw != line || e.Message != "" || e.Level != "" {
			t.Fatalf("Parse(%q) = %#v, want raw only", line, e)
		}
	}
}

func TestReadEntries_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scanboard.log")
	data := `{"level":"info","msg":"settings loaded","time":"2026-04-02T10:00:00Z"}

{"level":"warning","msg":"command failed","command":"start","time":"2026-04-02T10:00:01Z"}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	entries, err := ReadEntries(path, 10)
	if err != nil {
		t.Fatalf("ReadEntries returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if v, _ := entries[1].Field("command"); v != "start" {
		t.Fatalf("command field = %q, want start", v)
	}
}
