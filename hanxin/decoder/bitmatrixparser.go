package decoder

import "github.com/barscan/symcore/bitutil"

// ReadCodewords raster-scans a sampled Han Xin bit matrix into raw
// codeword bytes, skipping the reserved central position-detection
// region. The first codeword's low 2 bits name the EC level (0=L1..3=L4);
// the remainder feeds GetDataBlocks.
//
// Masking is not modeled: bits are read directly off the sampled grid, a
// simplification noted where this package is grounded.
func ReadCodewords(bits *bitutil.BitMatrix, v *Version) (ecLevel int, codewords []byte) {
	dimension := bits.Height()
	reserved := centralReservedHalfWidth(dimension)
	mid := dimension / 2

	var bitBuf []bool
	for y := 0; y < dimension; y++ {
		for x := 0; x < dimension; x++ {
			if abs(x-mid) <= reserved && abs(y-mid) <= reserved {
				continue
			}
			bitBuf = append(bitBuf, bits.Get(x, y))
		}
	}

	out := make([]byte, len(bitBuf)/8)
	for i := range out {
		var b int
		for k := 0; k < 8; k++ {
			b <<= 1
			if bitBuf[i*8+k] {
				b |= 1
			}
		}
		out[i] = byte(b)
	}
	if len(out) == 0 {
		return 0, nil
	}
	ecLevel = int(out[0] & 0x03)
	return ecLevel, out[1:]
}

// centralReservedHalfWidth is the half-width (in modules) of the reserved
// central position-detection region, scaled loosely with symbol size.
func centralReservedHalfWidth(dimension int) int {
	return 2 + dimension/12
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
