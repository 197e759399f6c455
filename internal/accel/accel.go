// Package accel models the accelerator execution providers the detect
// worker pool can be bound to. The actual inference runtime is an
// out-of-scope black-box collaborator (tensor-in, tensor-out); this
// package only carries the narrow configuration surface a real
// session constructor would need, plus a deliberately stubbed device
// enumerator.
package accel

import "fmt"

// EP identifies an execution provider family.
type EP int

const (
	EPCpu EP = iota
	EPCUDA
	EPTensorRT
	EPOpenVINO
	EPDirectML
	EPCoreML
)

func (e EP) String() string {
	switch e {
	case EPCpu:
		return "cpu"
	case EPCUDA:
		return "cuda"
	case EPTensorRT:
		return "tensorrt"
	case EPOpenVINO:
		return "openvino"
	case EPDirectML:
		return "directml"
	case EPCoreML:
		return "coreml"
	default:
		return "unknown"
	}
}

// ParseEP parses an accelerator tag from the config surface into an
// EP value.
func ParseEP(tag string) (EP, error) {
	switch tag {
	case "cpu":
		return EPCpu, nil
	case "cuda":
		return EPCUDA, nil
	case "tensorrt":
		return EPTensorRT, nil
	case "openvino":
		return EPOpenVINO, nil
	case "directml":
		return EPDirectML, nil
	case "coreml":
		return EPCoreML, nil
	default:
		return EPCpu, fmt.Errorf("unknown accelerator tag %q", tag)
	}
}

// EpInfo names one concrete accelerator instance: an EP family plus a
// device id, for machines with more than one device of the same kind
// (e.g. two CUDA GPUs).
type EpInfo struct {
	Ep EP
	ID int
}

func (e EpInfo) String() string {
	return fmt.Sprintf("%s:%d", e.Ep, e.ID)
}

// Device describes one enumerated accelerator for the `devices` host
// event.
type Device struct {
	Name string
	Info EpInfo
}

// SessionOptions carries the EP-specific options a real session
// constructor needs: cache directories for TensorRT engine caching,
// optional explicit input shape profiles, the target device id, a
// CoreML-only flag restricting execution to the Apple Neural Engine,
// and whether CoreML may partition the graph into subgraphs.
type SessionOptions struct {
	Info           EpInfo
	EngineCacheDir string
	MinShape       []int
	OptShape       []int
	MaxShape       []int
	ANEOnly        bool
	Subgraphs      bool
}

// BuildSessionOptions constructs the provider-specific options for one
// EpInfo. It never touches hardware; it only shapes the options a
// Session implementation would consume.
func BuildSessionOptions(info EpInfo, modelCacheDir string, imageSize int) SessionOptions {
	opts := SessionOptions{Info: info}
	switch info.Ep {
	case EPTensorRT:
		opts.EngineCacheDir = modelCacheDir
		opts.MinShape = []int{1, 3, imageSize, imageSize}
		opts.OptShape = []int{2, 3, imageSize, imageSize}
		opts.MaxShape = []int{5, 3, imageSize, imageSize}
	case EPCoreML:
		opts.ANEOnly = true
		opts.Subgraphs = true
	}
	return opts
}

// Session is the narrow black-box interface a real inference runtime
// session implements: batched tensor in, batched tensor out. Shapes
// and tensor layout are defined by the detect package's batching logic.
type Session interface {
	// Run executes one batch. input is row-major [batch, 3, S, S]
	// float32 data; extraInputs carries any additional named tensors
	// a model needs (e.g. RT-DETR's "orig_target_sizes", [batch, 2]).
	// output is the model's raw output0 tensor, row-major [batch, 6,
	// N] (pre-transpose), where N is the number of candidate
	// detections per image.
	Run(input []float32, batch int, extraInputs map[string][]float32) (output []float32, numCandidates int, err error)
	Close() error
}

// EnumerateDevices returns the CPU device plus one entry per requested
// accelerator tag. Real hardware probing (WMI/NVML/sysctl) is out of
// scope for this pipeline; callers that need it supply their own
// Session/EnumerateDevices behind this same narrow interface.
func EnumerateDevices(requested []EpInfo) []Device {
	devices := []Device{{Name: "cpu", Info: EpInfo{Ep: EPCpu, ID: 0}}}
	for _, info := range requested {
		if info.Ep == EPCpu {
			continue
		}
		devices = append(devices, Device{Name: info.String(), Info: info})
	}
	return devices
}
