// Package detector locates a DotCode symbol's dot region in a binary
// image.
//
// A full ISO/IEC DIS 17412 detector searches for the characteristic
// irregular dot-fill ratio and tries the four row-offset "mask" variants
// DotCode uses to keep dots from touching. This implementation instead
// reads the binarized image's enclosing rectangle directly as the dot
// grid (one module per pixel of the already-binarized matrix) — adequate
// for a symbol already isolated by the caller, but it skips DotCode's
// quiet-zone search and row-offset masking entirely. Noted as a
// simplification at the same confidence tier as the Han Xin and Micro QR
// geometry: self-consistent with this package's decoder, not verified
// against a real printed DotCode symbol.
package detector

import (
	zxinggo "github.com/barscan/symcore"
	"github.com/barscan/symcore/bitutil"
)

// DetectorResult holds the located dot-grid region.
type DetectorResult struct {
	Bits   *bitutil.BitMatrix
	Points []zxinggo.ResultPoint
}

// Detect crops image to its enclosing rectangle of set dots.
func Detect(image *bitutil.BitMatrix) (*DetectorResult, error) {
	rect := image.EnclosingRectangle()
	if rect == nil {
		return nil, zxinggo.ErrNotFound
	}
	left, top, width, height := rect[0], rect[1], rect[2], rect[3]
	if width <= 0 || height <= 0 {
		return nil, zxinggo.ErrNotFound
	}

	cropped := bitutil.NewBitMatrixWithSize(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if image.Get(left+x, top+y) {
				cropped.Set(x, y)
			}
		}
	}

	points := []zxinggo.ResultPoint{
		{X: float64(left), Y: float64(top)},
		{X: float64(left + width), Y: float64(top)},
		{X: float64(left + width), Y: float64(top + height)},
		{X: float64(left), Y: float64(top + height)},
	}
	return &DetectorResult{Bits: cropped, Points: points}, nil
}
