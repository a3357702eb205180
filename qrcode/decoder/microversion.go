package decoder

import "fmt"

// MicroVersion represents a Micro QR Code symbol version (M1-M4). Unlike
// full-size QR, a Micro QR symbol has a single finder pattern and grows
// from a fixed top-left corner, so ECBlocksArray only needs to name the
// levels that version actually supports: M1 carries no error correction at
// all, M2/M3 support L and M, and M4 additionally supports Q.
type MicroVersion struct {
	Number         int
	Dimension      int
	ECBlocksArray  [3]ECBlocks // indexed by ErrorCorrectionLevel.Ordinal(); unsupported levels are zero-valued
	TotalCodewords int
}

// ECBlocksForLevel returns the ECBlocks for the given level, or nil if this
// Micro QR version does not support it.
func (v *MicroVersion) ECBlocksForLevel(ecLevel ErrorCorrectionLevel) *ECBlocks {
	ord := ecLevel.Ordinal()
	if ord < 0 || ord > 2 {
		return nil
	}
	eb := &v.ECBlocksArray[ord]
	if eb.NumBlocks() == 0 {
		return nil
	}
	return eb
}

// microVersions holds the codeword layout for M1-M4, per ISO/IEC 18004's
// Micro QR error-correction table. M1 carries 5 data codewords (the last a
// 4-bit nibble) and no Reed-Solomon EC codewords at all; M2-M4 are fully
// byte-aligned like standard QR code.
var microVersions = [4]MicroVersion{
	{Number: 1, Dimension: 11, TotalCodewords: 5},
	{
		Number: 2, Dimension: 13, TotalCodewords: 10,
		ECBlocksArray: [3]ECBlocks{
			eb(5, b(1, 5)), // L
			eb(6, b(1, 4)), // M
			{},             // Q unsupported
		},
	},
	{
		Number: 3, Dimension: 15, TotalCodewords: 17,
		ECBlocksArray: [3]ECBlocks{
			eb(6, b(1, 11)), // L
			eb(8, b(1, 9)),  // M
			{},              // Q unsupported
		},
	},
	{
		Number: 4, Dimension: 17, TotalCodewords: 24,
		ECBlocksArray: [3]ECBlocks{
			eb(8, b(1, 16)),  // L
			eb(10, b(1, 14)), // M
			eb(14, b(1, 10)), // Q
		},
	},
}

// GetMicroVersionForNumber returns the MicroVersion for M-version 1-4.
func GetMicroVersionForNumber(number int) (*MicroVersion, error) {
	if number < 1 || number > 4 {
		return nil, errInvalidVersion
	}
	return &microVersions[number-1], nil
}

// GetMicroVersionForDimension returns the MicroVersion matching a symbol
// dimension of 11, 13, 15, or 17 modules.
func GetMicroVersionForDimension(dimension int) (*MicroVersion, error) {
	for i := range microVersions {
		if microVersions[i].Dimension == dimension {
			return &microVersions[i], nil
		}
	}
	return nil, fmt.Errorf("qrcode/decoder: invalid micro dimension %d", dimension)
}

// BuildMicroFunctionPattern marks the reserved modules of a Micro QR
// symbol: the single top-left finder+separator+format block and the
// timing patterns that extend from it to the symbol's edge.
func BuildMicroFunctionPattern(dimension int) *microFunctionPattern {
	return &microFunctionPattern{dimension: dimension}
}

// microFunctionPattern reports whether a module at (x, y) is reserved,
// computed directly rather than materialized into a BitMatrix since the
// reserved region is a simple fixed corner plus two timing lines.
type microFunctionPattern struct {
	dimension int
}

// Get reports whether (x, y) is part of the finder/separator/format/timing
// function pattern, matching BitMatrix.Get's (x=column, y=row) convention.
func (m *microFunctionPattern) Get(x, y int) bool {
	if x < 9 && y < 9 {
		return true
	}
	if x == 8 || y == 8 {
		return true
	}
	return false
}
