// Package detector locates a Han Xin symbol in a binary image.
//
// A full ISO/IEC 20830 detector finds the central position-detection
// pattern (a nested ring motif, analogous in role to Aztec's bullseye) and
// reads its orientation/size markers directly. This implementation instead
// locates the symbol's axis-aligned bounding box via BitMatrix's own
// EnclosingRectangle, rounds the box to the nearest supported Version
// dimension, and samples a square grid directly from that box — adequate
// for an already-cropped or synthetically generated symbol, but it assumes
// zero skew/rotation, unlike a camera-image detector. This simplification
// mirrors the lower-confidence treatment already used for Micro QR's
// geometry: self-consistent with this package's own decoder, not verified
// against a real printed Han Xin symbol.
package detector

import (
	"fmt"

	zxinggo "github.com/barscan/symcore"
	"github.com/barscan/symcore/bitutil"
	"github.com/barscan/symcore/hanxin/decoder"
	"github.com/barscan/symcore/transform"
)

// DetectorResult holds the sampled bit matrix and the Version it matched.
type DetectorResult struct {
	Bits    *bitutil.BitMatrix
	Points  []zxinggo.ResultPoint
	Version *decoder.Version
}

// Detect finds the symbol's bounding box and samples it into a Version's
// nominal dimension.
func Detect(image *bitutil.BitMatrix) (*DetectorResult, error) {
	rect := image.EnclosingRectangle()
	if rect == nil {
		return nil, zxinggo.ErrNotFound
	}
	left, top, width, height := rect[0], rect[1], rect[2], rect[3]
	if width <= 0 || height <= 0 {
		return nil, zxinggo.ErrNotFound
	}

	dimension, err := nearestSupportedDimension(width, height)
	if err != nil {
		return nil, err
	}
	version, err := decoder.GetVersionForDimension(dimension)
	if err != nil {
		return nil, err
	}

	topLeft := zxinggo.ResultPoint{X: float64(left), Y: float64(top)}
	topRight := zxinggo.ResultPoint{X: float64(left + width), Y: float64(top)}
	bottomRight := zxinggo.ResultPoint{X: float64(left + width), Y: float64(top + height)}
	bottomLeft := zxinggo.ResultPoint{X: float64(left), Y: float64(top + height)}

	dimF := float64(dimension)
	xform := transform.QuadrilateralToQuadrilateral(
		0.5, 0.5,
		dimF-0.5, 0.5,
		dimF-0.5, dimF-0.5,
		0.5, dimF-0.5,
		topLeft.X, topLeft.Y,
		topRight.X, topRight.Y,
		bottomRight.X, bottomRight.Y,
		bottomLeft.X, bottomLeft.Y,
	)

	sampler := &transform.DefaultGridSampler{}
	bits, err := sampler.SampleGridTransform(image, dimension, dimension, xform)
	if err != nil {
		return nil, fmt.Errorf("hanxin/detector: grid sampling failed: %w", err)
	}

	return &DetectorResult{
		Bits:    bits,
		Points:  []zxinggo.ResultPoint{topLeft, topRight, bottomRight, bottomLeft},
		Version: version,
	}, nil
}

// nearestSupportedDimension maps a bounding box's pixel size to the closest
// supported Version dimension, estimating module count from the smaller
// side (square symbols only).
func nearestSupportedDimension(width, height int) (int, error) {
	side := width
	if height < side {
		side = height
	}
	supported := []int{23, 25, 29, 33, 37, 41}
	best := supported[0]
	bestDiff := abs(side - best)
	for _, d := range supported[1:] {
		if diff := abs(side - d); diff < bestDiff {
			best = d
			bestDiff = diff
		}
	}
	return best, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
