package trailcam

import (
	"testing"

	"github.com/five82/trailcam/internal/config"
)

func TestEventReporterHardwareProducesDevicesEvent(t *testing.T) {
	var got Event
	handler := func(e Event) error {
		got = e
		return nil
	}
	r := newEventReporter(handler)
	r.Hardware(HardwareSummary{Hostname: "trap1", Devices: []DeviceSummary{{Name: "cpu", EP: "cpu", ID: 0}}})

	devices, ok := got.(DevicesEvent)
	if !ok {
		t.Fatalf("expected DevicesEvent, got %T", got)
	}
	if devices.Type() != EventTypeDevices {
		t.Fatalf("Type() = %q, want %q", devices.Type(), EventTypeDevices)
	}
	if devices.Hostname != "trap1" || len(devices.Devices) != 1 {
		t.Fatalf("unexpected event: %+v", devices)
	}
}

func TestEventReporterDetectCompleteProducesDetectCompleteEvent(t *testing.T) {
	var got Event
	r := newEventReporter(func(e Event) error {
		got = e
		return nil
	})
	r.DetectComplete(CompleteSummary{ResultPath: "result.json", FilesProcessed: 5, FramesExported: 20, ErrorCount: 1})

	complete, ok := got.(DetectCompleteEvent)
	if !ok {
		t.Fatalf("expected DetectCompleteEvent, got %T", got)
	}
	if complete.FilesProcessed != 5 || complete.FramesExported != 20 || complete.ErrorCount != 1 {
		t.Fatalf("unexpected event: %+v", complete)
	}
}

func TestOptionsMutateConfig(t *testing.T) {
	c := config.NewConfig("in", "model.toml", "out.json")
	opts := []Option{
		WithBatchSize(16),
		WithThresholds(0.3, 0.5),
		WithMaxFrames(10),
		WithIFrameOnly(),
		WithResume("prior.json"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.BatchSize != 16 {
		t.Fatalf("BatchSize = %d, want 16", c.BatchSize)
	}
	if c.ConfThreshold != 0.3 || c.IoUThreshold != 0.5 {
		t.Fatalf("thresholds = (%v,%v), want (0.3,0.5)", c.ConfThreshold, c.IoUThreshold)
	}
	if c.MaxFrames != 10 {
		t.Fatalf("MaxFrames = %d, want 10", c.MaxFrames)
	}
	if !c.IFrameOnly {
		t.Fatalf("expected IFrameOnly to be set")
	}
	if c.ResumePath != "prior.json" {
		t.Fatalf("ResumePath = %q, want %q", c.ResumePath, "prior.json")
	}
}
