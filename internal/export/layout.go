// Package export renders an ordered set of storyboard frames into a
// paginated PDF document.
package export

import "fmt"

// Fit computes draw dimensions that fill the bounding box maxW x maxH while
// preserving the aspect ratio of origW x origH. At least one returned
// dimension equals its bound and neither exceeds it.
func Fit(origW, origH, maxW, maxH float64) (float64, float64, error) {
	if origW <= 0 || origH <= 0 {
		return 0, 0, fmt.Errorf("invalid image dimensions %gx%g", origW, origH)
	}
	if maxW <= 0 || maxH <= 0 {
		return 0, 0, fmt.Errorf("invalid bounding box %gx%g", maxW, maxH)
	}

	ratio := maxW / origW
	if r := maxH / origH; r < ratio {
		ratio = r
	}
	return origW * ratio, origH * ratio, nil
}
