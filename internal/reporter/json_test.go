package reporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONReporterHardwareEmitsDevicesType(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporterWithWriter(&buf)
	r.Hardware(HardwareSummary{Hostname: "trap1", Devices: []DeviceSummary{{Name: "cpu", EP: "cpu"}}})

	var payload map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload["type"] != "devices" || payload["hostname"] != "trap1" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestJSONReporterDetectProgressThrottlesWithinBucket(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporterWithWriter(&buf)

	r.DetectProgress(ProgressSnapshot{FilesComplete: 1, FilesTotal: 100, Percent: 10})
	r.DetectProgress(ProgressSnapshot{FilesComplete: 1, FilesTotal: 100, Percent: 10})

	lines := strings.Count(strings.TrimRight(buf.String(), "\n"), "\n") + 1
	if buf.Len() == 0 {
		t.Fatalf("expected at least one emitted line")
	}
	if lines != 1 {
		t.Fatalf("expected the repeated same-bucket update to be throttled, got %d lines", lines)
	}
}

func TestJSONReporterDetectProgressEmitsOnNewBucket(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporterWithWriter(&buf)

	r.DetectProgress(ProgressSnapshot{Percent: 10})
	r.DetectProgress(ProgressSnapshot{Percent: 20})

	lines := strings.Count(strings.TrimRight(buf.String(), "\n"), "\n") + 1
	if lines != 2 {
		t.Fatalf("expected a new percent bucket to emit, got %d lines", lines)
	}
}

func TestJSONReporterDetectErrorIncludesSuggestion(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporterWithWriter(&buf)
	r.DetectError(ReporterError{Title: "bad model", Suggestion: "check model path"})

	var payload map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload["suggestion"] != "check model path" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}
