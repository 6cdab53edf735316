package export

import (
	"math"
	"testing"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name                     string
		origW, origH, maxW, maxH float64
		wantW, wantH             float64
	}{
		{"landscape downscale", 2000, 1000, 500, 500, 500, 250},
		{"portrait downscale", 1000, 2000, 500, 500, 250, 500},
		{"exact fit", 500, 500, 500, 500, 500, 500},
		{"upscale to box", 100, 50, 500, 500, 500, 250},
		{"wide box", 800, 600, 1000, 300, 400, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := Fit(tt.origW, tt.origH, tt.maxW, tt.maxH)
			if err != nil {
				t.Fatalf("Fit returned error: %v", err)
			}
			if math.Abs(w-tt.wantW) > 1e-9 || math.Abs(h-tt.wantH) > 1e-9 {
				t.Errorf("Fit = %gx%g, want %gx%g", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestFitProperties(t *testing.T) {
	cases := [][4]float64{
		{1920, 1080, 504, 504},
		{33, 77, 504, 504},
		{5000, 5000, 300, 200},
		{1, 10000, 504, 504},
	}

	for _, c := range cases {
		w, h, err := Fit(c[0], c[1], c[2], c[3])
		if err != nil {
			t.Fatalf("Fit(%v) returned error: %v", c, err)
		}

		// Neither dimension exceeds its bound.
		if w/c[2] > 1+1e-9 || h/c[3] > 1+1e-9 {
			t.Errorf("Fit(%v) = %gx%g exceeds the bounding box", c, w, h)
		}
		// Tight fit: at least one dimension reaches its bound.
		if math.Abs(w-c[2]) > 1e-9 && math.Abs(h-c[3]) > 1e-9 {
			t.Errorf("Fit(%v) = %gx%g is not a tight fit", c, w, h)
		}
		// Aspect ratio is preserved.
		if math.Abs(w/h-c[0]/c[1]) > 1e-6*(c[0]/c[1]) {
			t.Errorf("Fit(%v) = %gx%g changed the aspect ratio", c, w, h)
		}
	}
}

func TestFitRejectsNonPositiveInputs(t *testing.T) {
	cases := [][4]float64{
		{0, 100, 500, 500},
		{100, 0, 500, 500},
		{-5, 100, 500, 500},
		{100, 100, 0, 500},
		{100, 100, 500, -1},
	}

	for _, c := range cases {
		if _, _, err := Fit(c[0], c[1], c[2], c[3]); err == nil {
			t.Errorf("Fit(%v) expected error for non-positive input", c)
		}
	}
}
