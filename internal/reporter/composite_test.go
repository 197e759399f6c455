package reporter

import "testing"

type recordingReporter struct {
	hardwareCalls int
	lastProgress  ProgressSnapshot
}

func (r *recordingReporter) Hardware(HardwareSummary)          { r.hardwareCalls++ }
func (r *recordingReporter) DetectProgress(p ProgressSnapshot) { r.lastProgress = p }
func (r *recordingReporter) DetectComplete(CompleteSummary)    {}
func (r *recordingReporter) DetectError(ReporterError)         {}
func (r *recordingReporter) FileProgress(FileProgressContext)  {}
func (r *recordingReporter) Verbose(string)                    {}

func TestCompositeReporterFansOutToEveryMember(t *testing.T) {
	a := &recordingReporter{}
	b := &recordingReporter{}
	composite := NewCompositeReporter(a, b)

	composite.Hardware(HardwareSummary{Hostname: "h"})
	composite.DetectProgress(ProgressSnapshot{FilesComplete: 3, FilesTotal: 10})

	if a.hardwareCalls != 1 || b.hardwareCalls != 1 {
		t.Fatalf("expected Hardware to reach both members: a=%d b=%d", a.hardwareCalls, b.hardwareCalls)
	}
	if a.lastProgress.FilesComplete != 3 || b.lastProgress.FilesComplete != 3 {
		t.Fatalf("expected DetectProgress to reach both members")
	}
}
