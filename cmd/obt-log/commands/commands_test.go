package commands

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/secure-iot/obt-go/pkg/log"
)

const (
	lampID = "11111111-1111-4111-8111-111111111111"
	lockID = "22222222-2222-4222-8222-222222222222"
)

func init() {
	color.NoColor = true
}

func intPtr(n int) *int { return &n }

func durPtr(d time.Duration) *time.Duration { return &d }

// writeJournal creates a journal with one successful Just-Works transfer,
// one failed pairwise provisioning, a rejection and a registry event.
func writeJournal(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "obt.journal")
	fl, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: base, Component: log.ComponentOTM, Category: log.CategoryRequest,
			Op: "otm.justworks", Handle: intPtr(1), DeviceID: lampID, Request: &log.RequestEvent{}},
		{Timestamp: base.Add(20 * time.Millisecond), Component: log.ComponentOTM, Category: log.CategoryCompletion,
			Op: "otm.justworks", Handle: intPtr(1), DeviceID: lampID,
			Completion: &log.CompletionEvent{Success: true, Latency: durPtr(20 * time.Millisecond)}},
		{Timestamp: base.Add(time.Second), Component: log.ComponentRegistry, Category: log.CategoryRegistry,
			DeviceID: lampID, Registry: &log.RegistryEvent{Change: "PROMOTED", Collection: "OWNED", Name: "Lamp"}},
		{Timestamp: base.Add(2 * time.Second), Component: log.ComponentProvisioning, Category: log.CategoryRequest,
			Op: "cred.pairwise", Handle: intPtr(2), DeviceID: lampID, PeerID: lockID, Request: &log.RequestEvent{}},
		{Timestamp: base.Add(3 * time.Second), Component: log.ComponentProvisioning, Category: log.CategoryCompletion,
			Op: "cred.pairwise", Handle: intPtr(2), DeviceID: lampID,
			Completion: &log.CompletionEvent{Success: false, Code: 7, Message: "unreachable"}},
		{Timestamp: base.Add(4 * time.Second), Component: log.ComponentOTM, Category: log.CategoryRejection,
			Op: "otm.randompin", DeviceID: lockID, Rejection: &log.RejectionEvent{Code: -4}},
	}
	for _, ev := range events {
		fl.Log(ev)
	}
	if err := fl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path
}

func TestFilterOptionsBuild(t *testing.T) {
	f, err := FilterOptions{Component: "otm", Category: "completion", TimeStart: "2026-03-01T12:00:00Z"}.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if f.Component == nil || *f.Component != log.ComponentOTM {
		t.Errorf("component: got %v", f.Component)
	}
	if f.Category == nil || *f.Category != log.CategoryCompletion {
		t.Errorf("category: got %v", f.Category)
	}
	if f.TimeStart == nil {
		t.Error("time-start not set")
	}

	bad := []FilterOptions{
		{Component: "wire"},
		{Category: "message"},
		{TimeStart: "yesterday"},
		{TimeEnd: "2026-13-01"},
	}
	for _, o := range bad {
		if _, err := o.Build(); err == nil {
			t.Errorf("expected error for %+v", o)
		}
	}
}

func TestRunView(t *testing.T) {
	path := writeJournal(t)

	var buf bytes.Buffer
	if err := RunView(path, FilterOptions{}, &buf); err != nil {
		t.Fatalf("RunView: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"2026-03-01T12:00:00.000000Z [h:1] OTM",
		"otm.justworks",
		"Result: OK",
		"Latency: 20.0ms",
		"PROMOTED OWNED (Lamp)",
		"Peer: " + lockID,
		"Result: FAILED (code 7)",
		"Code: -4",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRunViewFailuresOnly(t *testing.T) {
	path := writeJournal(t)

	var buf bytes.Buffer
	if err := RunView(path, FilterOptions{FailuresOnly: true}, &buf); err != nil {
		t.Fatalf("RunView: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "Result: OK") {
		t.Errorf("successful completion not filtered:\n%s", out)
	}
	if !strings.Contains(out, "cred.pairwise") || !strings.Contains(out, "otm.randompin") {
		t.Errorf("failures missing:\n%s", out)
	}
}

func TestRunViewMissingFile(t *testing.T) {
	var buf bytes.Buffer
	if err := RunView(filepath.Join(t.TempDir(), "none"), FilterOptions{}, &buf); err == nil {
		t.Error("expected error for missing journal")
	}
}

func TestRunStats(t *testing.T) {
	path := writeJournal(t)

	var buf bytes.Buffer
	if err := RunStats(path, FilterOptions{}, &buf); err != nil {
		t.Fatalf("RunStats: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Events: 6", "Devices: 2", "otm.justworks", "cred.pairwise", lampID + ": 5"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRunStatsEmpty(t *testing.T) {
	path := writeJournal(t)

	var buf bytes.Buffer
	if err := RunStats(path, FilterOptions{Op: "acl."}, &buf); err != nil {
		t.Fatalf("RunStats: %v", err)
	}
	if got := buf.String(); got != "Events: 0\n" {
		t.Errorf("got %q", got)
	}
}

func TestRunExportCSV(t *testing.T) {
	path := writeJournal(t)

	var buf bytes.Buffer
	if err := RunExport(path, "csv", "", FilterOptions{DeviceID: lockID}, &buf); err != nil {
		t.Fatalf("RunExport: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	// Header, the pairwise request naming the lock as peer, the rejection.
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3: %v", len(rows), rows)
	}
	if rows[0][0] != "timestamp" {
		t.Errorf("header: got %v", rows[0])
	}
	if rows[2][3] != "otm.randompin" || rows[2][8] != "-4" {
		t.Errorf("rejection row: got %v", rows[2])
	}
}

func TestRunExportJSONLToFile(t *testing.T) {
	path := writeJournal(t)
	output := filepath.Join(t.TempDir(), "out.jsonl")

	if err := RunExport(path, "jsonl", output, FilterOptions{}, nil); err != nil {
		t.Fatalf("RunExport: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if n := strings.Count(string(data), "\n"); n != 6 {
		t.Errorf("got %d lines, want 6", n)
	}
}

func TestRunExportUnknownFormat(t *testing.T) {
	if err := RunExport("unused", "xml", "", FilterOptions{}, nil); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRunFilter(t *testing.T) {
	path := writeJournal(t)
	output := filepath.Join(t.TempDir(), "otm.journal")

	var buf bytes.Buffer
	if err := RunFilter(path, output, FilterOptions{Op: "otm."}, &buf); err != nil {
		t.Fatalf("RunFilter: %v", err)
	}
	if !strings.Contains(buf.String(), "Filtered 3 events") {
		t.Errorf("got %q", buf.String())
	}

	events, err := log.ReadAll(output, log.Filter{})
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	for _, ev := range events {
		if !strings.HasPrefix(ev.Op, "otm.") {
			t.Errorf("unexpected op %q", ev.Op)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{1500 * time.Microsecond, "1.5ms"},
		{2500 * time.Millisecond, "2.50s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
