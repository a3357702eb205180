package decoder

import "github.com/barscan/symcore/bitutil"

// ReadCodewords raster-scans a cropped DotCode dot-grid into raw codeword
// values, 8 dots per codeword, dropping any trailing incomplete codeword.
func ReadCodewords(bits *bitutil.BitMatrix) []int {
	width, height := bits.Width(), bits.Height()
	var bitBuf []bool
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			bitBuf = append(bitBuf, bits.Get(x, y))
		}
	}

	n := len(bitBuf) / 8
	out := make([]int, n)
	for i := 0; i < n; i++ {
		v := 0
		for k := 0; k < 8; k++ {
			v <<= 1
			if bitBuf[i*8+k] {
				v |= 1
			}
		}
		out[i] = v
	}
	return out
}
