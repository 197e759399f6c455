package orchestrator

import (
	"testing"

	"github.com/five82/trailcam/internal/fileitem"
)

func TestProgressTrackerMarksDoneOnlyWhenUnitsExhausted(t *testing.T) {
	tracker := newProgressTracker(2)
	id := fileitem.Identity{FolderID: 1, FileID: 1, SourcePath: "a.mp4"}
	tracker.seedTotal(id, 3)

	if tracker.markDone(id, 1) {
		t.Fatalf("file should not be done after 1 of 3 units")
	}
	if tracker.markDone(id, 1) {
		t.Fatalf("file should not be done after 2 of 3 units")
	}
	if !tracker.markDone(id, 1) {
		t.Fatalf("file should be done after 3 of 3 units")
	}

	done, total := tracker.snapshot()
	if done != 1 || total != 2 {
		t.Fatalf("snapshot = (%d,%d), want (1,2)", done, total)
	}
}

func TestProgressTrackerSeedTotalIsNoOpAfterFirstCall(t *testing.T) {
	tracker := newProgressTracker(1)
	id := fileitem.Identity{FolderID: 1, FileID: 1, SourcePath: "a.jpg"}
	tracker.seedTotal(id, 5)
	tracker.seedTotal(id, 99) // should not overwrite

	for i := 0; i < 4; i++ {
		if tracker.markDone(id, 1) {
			t.Fatalf("file marked done too early at unit %d", i)
		}
	}
	if !tracker.markDone(id, 1) {
		t.Fatalf("file should be done after 5 units, matching the first seedTotal call")
	}
}

func TestProgressTrackerSingleUnitFile(t *testing.T) {
	tracker := newProgressTracker(1)
	id := fileitem.Identity{FolderID: 1, FileID: 1, SourcePath: "bad.jpg"}
	tracker.seedTotal(id, 1)
	if !tracker.markDone(id, 1) {
		t.Fatalf("single-unit file (e.g. a decode failure) should complete on its first mark")
	}
}
