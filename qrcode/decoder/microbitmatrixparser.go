package decoder

import (
	zxinggo "github.com/barscan/symcore"
	"github.com/barscan/symcore/bitutil"
)

// MicroBitMatrixParser parses a Micro QR symbol's single-finder bit matrix,
// mirroring BitMatrixParser's role for full-size QR but against the
// fixed top-left corner layout Micro QR always uses.
type MicroBitMatrixParser struct {
	bitMatrix *bitutil.BitMatrix
}

// NewMicroBitMatrixParser creates a parser for an 11x11 through 17x17
// Micro QR bit matrix.
func NewMicroBitMatrixParser(bitMatrix *bitutil.BitMatrix) (*MicroBitMatrixParser, error) {
	dimension := bitMatrix.Height()
	if _, err := GetMicroVersionForDimension(dimension); err != nil {
		return nil, zxinggo.ErrFormat
	}
	return &MicroBitMatrixParser{bitMatrix: bitMatrix}, nil
}

// ReadFormatInformation reads the symbol's single 15-bit format-info
// codeword, split across row 8 (columns 1-8) and column 8 (rows 1-7).
func (p *MicroBitMatrixParser) ReadFormatInformation() (*MicroFormatInformation, error) {
	bits := 0
	for x := 1; x <= 8; x++ {
		bits = p.copyBit(x, 8, bits)
	}
	for y := 7; y >= 1; y-- {
		bits = p.copyBit(8, y, bits)
	}
	fi := DecodeMicroFormatInformation(bits)
	if fi == nil {
		return nil, zxinggo.ErrFormat
	}
	return fi, nil
}

func (p *MicroBitMatrixParser) copyBit(x, y, value int) int {
	if p.bitMatrix.Get(x, y) {
		return (value << 1) | 0x1
	}
	return value << 1
}

// ReadCodewords unmasks and zigzag-reads the data region into raw
// codeword bytes, the same upward/downward column-pair traversal
// BitMatrixParser.ReadCodewords uses for full-size QR, adapted to skip
// the fixed timing column/row at index 8 instead of 6.
func (p *MicroBitMatrixParser) ReadCodewords(mv *MicroVersion, dataMask byte) []byte {
	UnmaskBitMatrix(p.bitMatrix, p.bitMatrix.Height(), int(dataMask))

	fp := BuildMicroFunctionPattern(p.bitMatrix.Height())
	dimension := p.bitMatrix.Height()

	// Total data bits available: every module outside the function
	// pattern. M1's last codeword is a 4-bit nibble rather than a full
	// byte, so codewords are assembled by bit count, not by forcing an
	// 8-bit boundary on the final one.
	totalBits := mv.TotalCodewords * 8
	if mv.Number == 1 {
		totalBits = 4*8 + 4
	}

	bitsOut := make([]bool, 0, totalBits)
	readingUp := true
	for j := dimension - 1; j > 0; j -= 2 {
		if j == 8 {
			j--
		}
		for count := 0; count < dimension; count++ {
			i := count
			if readingUp {
				i = dimension - 1 - count
			}
			for col := 0; col < 2; col++ {
				if j-col < 0 {
					continue
				}
				if !fp.Get(j-col, i) {
					bitsOut = append(bitsOut, p.bitMatrix.Get(j-col, i))
				}
			}
		}
		readingUp = !readingUp
	}

	result := make([]byte, mv.TotalCodewords)
	bitIdx := 0
	for cw := 0; cw < mv.TotalCodewords; cw++ {
		width := 8
		if mv.Number == 1 && cw == mv.TotalCodewords-1 {
			width = 4
		}
		var b int
		for k := 0; k < width; k++ {
			b <<= 1
			if bitIdx < len(bitsOut) && bitsOut[bitIdx] {
				b |= 1
			}
			bitIdx++
		}
		if width == 4 {
			b <<= 4
		}
		result[cw] = byte(b)
	}
	return result
}
