package detect

import "testing"

func TestIoUIdenticalBoxesIsOne(t *testing.T) {
	a := box(0, 0, 10, 10, 1, 0)
	if got := iou(a, a); got != 1 {
		t.Fatalf("iou of identical boxes = %v, want 1", got)
	}
}

func TestIoUDisjointBoxesIsZero(t *testing.T) {
	a := box(0, 0, 10, 10, 1, 0)
	b := box(100, 100, 110, 110, 1, 0)
	if got := iou(a, b); got != 0 {
		t.Fatalf("iou of disjoint boxes = %v, want 0", got)
	}
}

func TestIoUZeroAreaUnionIsZeroNotNaN(t *testing.T) {
	degenerate := Bbox{X1: 5, Y1: 5, X2: 5, Y2: 5}
	got := iou(degenerate, degenerate)
	if got != 0 {
		t.Fatalf("iou of zero-area boxes = %v, want 0", got)
	}
}

func TestIoUPartialOverlap(t *testing.T) {
	a := box(0, 0, 10, 10, 1, 0)
	b := box(5, 0, 15, 10, 1, 0)
	// intersection 5x10=50, union 100+100-50=150
	want := float32(50) / float32(150)
	if got := iou(a, b); got != want {
		t.Fatalf("iou = %v, want %v", got, want)
	}
}
