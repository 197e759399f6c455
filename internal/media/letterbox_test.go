package media

import "testing"

func TestEvenUp(t *testing.T) {
	cases := map[int]int{0: 0, 1: 2, 2: 2, 3: 4, 640: 640, 641: 642}
	for in, want := range cases {
		if got := evenUp(in); got != want {
			t.Errorf("evenUp(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestComputeImageLetterboxLandscape(t *testing.T) {
	// 1920x1080 into a 640 canvas: ratio driven by the long side (1920).
	p := computeImageLetterbox(1920, 1080, 640)
	wantRatio := float32(1920) / float32(640)
	if p.ratio != wantRatio {
		t.Fatalf("ratio = %v, want %v", p.ratio, wantRatio)
	}
	if p.resizedW != 640 {
		t.Fatalf("resizedW = %d, want 640", p.resizedW)
	}
	// resizedH = evenUp(1080/3) = evenUp(360) = 360
	if p.resizedH != 360 {
		t.Fatalf("resizedH = %d, want 360", p.resizedH)
	}
	if p.padY != (640-360)/2 {
		t.Fatalf("padY = %d, want %d", p.padY, (640-360)/2)
	}
}

func TestComputeImageLetterboxPortraitUsesTallSide(t *testing.T) {
	p := computeImageLetterbox(1080, 1920, 640)
	wantRatio := float32(1920) / float32(640)
	if p.ratio != wantRatio {
		t.Fatalf("portrait ratio = %v, want %v", p.ratio, wantRatio)
	}
	if p.resizedH != 640 {
		t.Fatalf("resizedH = %d, want 640", p.resizedH)
	}
}

// TestComputeVideoLetterboxWidthDuplicationQuirk locks in the
// deliberately preserved bug: the ratio is derived from max(origW,
// origW), never consulting origH, so a portrait video's ratio is
// driven by its width instead of its (taller) height.
func TestComputeVideoLetterboxWidthDuplicationQuirk(t *testing.T) {
	// Portrait 1080x1920 video. A correct max(w,h) ratio would use
	// 1920; the preserved quirk uses 1080 instead.
	p := computeVideoLetterbox(1080, 1920, 640)
	wantRatio := float32(1080) / float32(640)
	if p.ratio != wantRatio {
		t.Fatalf("ratio = %v, want %v (width-duplication quirk)", p.ratio, wantRatio)
	}

	correctRatio := float32(1920) / float32(640)
	if p.ratio == correctRatio {
		t.Fatalf("ratio matched the 'correct' max(w,h) computation -- quirk was fixed")
	}
}

func TestComputeVideoLetterboxLandscapeMatchesImageLetterbox(t *testing.T) {
	// For landscape (w >= h), max(w,w) == max(w,h), so the quirk is
	// invisible and both computations agree.
	video := computeVideoLetterbox(1920, 1080, 640)
	still := computeImageLetterbox(1920, 1080, 640)
	if video.ratio != still.ratio {
		t.Fatalf("landscape ratios differ: video=%v still=%v", video.ratio, still.ratio)
	}
}
