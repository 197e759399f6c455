package detect

import "testing"

func box(x1, y1, x2, y2, score float32, class int) Bbox {
	return Bbox{X1: x1, Y1: y1, X2: x2, Y2: y2, Score: score, Class: class}
}

func TestClassAwareNMSSuppressesOverlapSameClass(t *testing.T) {
	boxes := []Bbox{
		box(0, 0, 10, 10, 0.9, 0),
		box(1, 1, 11, 11, 0.8, 0), // heavily overlapping, should be suppressed
		box(50, 50, 60, 60, 0.7, 0), // disjoint, should survive
	}
	kept := ClassAwareNMS(boxes, 0.45)
	if len(kept) != 2 {
		t.Fatalf("expected 2 surviving boxes, got %d: %+v", len(kept), kept)
	}
}

func TestClassAwareNMSNeverSuppressesAcrossClasses(t *testing.T) {
	boxes := []Bbox{
		box(0, 0, 10, 10, 0.9, 0),
		box(0, 0, 10, 10, 0.9, 1), // identical box, different class
	}
	kept := ClassAwareNMS(boxes, 0.1)
	if len(kept) != 2 {
		t.Fatalf("expected both classes to survive independently, got %d", len(kept))
	}
}

func TestClassAwareNMSKeepsHighestScoreFirst(t *testing.T) {
	boxes := []Bbox{
		box(0, 0, 10, 10, 0.5, 0),
		box(0, 0, 10, 10, 0.95, 0),
	}
	kept := ClassAwareNMS(boxes, 0.5)
	if len(kept) != 1 {
		t.Fatalf("expected 1 surviving box, got %d", len(kept))
	}
	if kept[0].Score != 0.95 {
		t.Fatalf("expected the higher-scoring box to survive, got score %v", kept[0].Score)
	}
}

func TestClassAwareNMSIsOutputSubsetOfInput(t *testing.T) {
	boxes := []Bbox{
		box(0, 0, 10, 10, 0.9, 0),
		box(20, 20, 30, 30, 0.6, 0),
		box(40, 40, 50, 50, 0.3, 2),
	}
	kept := ClassAwareNMS(boxes, 0.45)
	if len(kept) > len(boxes) {
		t.Fatalf("NMS produced more boxes than input")
	}
	for _, k := range kept {
		found := false
		for _, b := range boxes {
			if k == b {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("NMS produced a box not present in input: %+v", k)
		}
	}
}

func TestClassAwareNMSTopKCap(t *testing.T) {
	var boxes []Bbox
	for i := 0; i < nmsTopK+20; i++ {
		x := float32(i) * 100
		boxes = append(boxes, box(x, x, x+10, x+10, 0.5, 0))
	}
	kept := ClassAwareNMS(boxes, 0.45)
	if len(kept) != nmsTopK {
		t.Fatalf("expected cap of %d, got %d", nmsTopK, len(kept))
	}
}
