package orchestrator

import (
	"sync"

	"github.com/five82/trailcam/internal/fileitem"
)

// progressTracker counts, per source file, how many frames remain
// before that file is considered complete, and tallies how many files
// have finished across the whole run. A file is "seeded" once (either
// with 1, for a decode failure, or with its sampled frame count) and
// marked done as each of its frames clears detection and export.
type progressTracker struct {
	mu        sync.Mutex
	remaining map[fileitem.Identity]int
	seeded    map[fileitem.Identity]bool
	filesDone int
	total     int
}

func newProgressTracker(total int) *progressTracker {
	return &progressTracker{
		remaining: make(map[fileitem.Identity]int),
		seeded:    make(map[fileitem.Identity]bool),
		total:     total,
	}
}

// seedTotal records how many units a file is expected to produce.
// A no-op after the first call for a given identity.
func (t *progressTracker) seedTotal(id fileitem.Identity, n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.seeded[id] {
		return
	}
	t.seeded[id] = true
	t.remaining[id] = n
}

// markDone records n completed units for id and reports whether the
// file has no units left outstanding.
func (t *progressTracker) markDone(id fileitem.Identity, n int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.remaining[id] -= n
	if t.remaining[id] <= 0 {
		delete(t.remaining, id)
		t.filesDone++
		return true
	}
	return false
}

func (t *progressTracker) snapshot() (done, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.filesDone, t.total
}
