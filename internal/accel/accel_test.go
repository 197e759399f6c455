package accel

import "testing"

func TestParseEPRoundTripsAllKnownTags(t *testing.T) {
	tags := []string{"cpu", "cuda", "tensorrt", "openvino", "directml", "coreml"}
	for _, tag := range tags {
		ep, err := ParseEP(tag)
		if err != nil {
			t.Fatalf("ParseEP(%q): %v", tag, err)
		}
		if ep.String() != tag {
			t.Fatalf("ParseEP(%q).String() = %q, want %q", tag, ep.String(), tag)
		}
	}
}

func TestParseEPUnknownTagErrors(t *testing.T) {
	if _, err := ParseEP("rocm"); err == nil {
		t.Fatalf("expected error for unknown accelerator tag")
	}
}

func TestBuildSessionOptionsTensorRTSetsShapeProfile(t *testing.T) {
	opts := BuildSessionOptions(EpInfo{Ep: EPTensorRT, ID: 0}, "/cache", 640)
	if opts.EngineCacheDir != "/cache" {
		t.Fatalf("expected engine cache dir to be set for TensorRT")
	}
	if len(opts.MinShape) != 4 || opts.MinShape[2] != 640 || opts.MinShape[3] != 640 {
		t.Fatalf("unexpected MinShape: %v", opts.MinShape)
	}
	if opts.MinShape[0] != 1 {
		t.Fatalf("MinShape batch = %d, want 1", opts.MinShape[0])
	}
	if opts.OptShape[0] != 2 {
		t.Fatalf("OptShape batch = %d, want 2", opts.OptShape[0])
	}
	if opts.MaxShape[0] != 5 {
		t.Fatalf("MaxShape batch = %d, want 5", opts.MaxShape[0])
	}
}

func TestBuildSessionOptionsCoreMLIsANEOnlyWithSubgraphs(t *testing.T) {
	opts := BuildSessionOptions(EpInfo{Ep: EPCoreML}, "/cache", 640)
	if !opts.ANEOnly {
		t.Fatalf("expected CoreML session options to be ANE-only")
	}
	if !opts.Subgraphs {
		t.Fatalf("expected CoreML session options to allow subgraph partitioning")
	}
}

func TestBuildSessionOptionsCPUHasNoShapeProfile(t *testing.T) {
	opts := BuildSessionOptions(EpInfo{Ep: EPCpu}, "/cache", 640)
	if opts.MinShape != nil || opts.EngineCacheDir != "" {
		t.Fatalf("expected no TensorRT-specific fields for CPU: %+v", opts)
	}
}

func TestEnumerateDevicesAlwaysIncludesCPU(t *testing.T) {
	devices := EnumerateDevices(nil)
	if len(devices) != 1 || devices[0].Info.Ep != EPCpu {
		t.Fatalf("expected CPU-only device list, got %+v", devices)
	}
}

func TestEnumerateDevicesSkipsRedundantCPURequest(t *testing.T) {
	devices := EnumerateDevices([]EpInfo{{Ep: EPCpu}, {Ep: EPCUDA, ID: 0}})
	if len(devices) != 2 {
		t.Fatalf("expected cpu + 1 requested device, got %d: %+v", len(devices), devices)
	}
	if devices[1].Info.Ep != EPCUDA {
		t.Fatalf("expected second device to be the requested CUDA device, got %+v", devices[1])
	}
}
