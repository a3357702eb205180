package decoder

import "fmt"

// RMQRVersion represents a rectangular Micro QR (rMQR, ISO/IEC 23941)
// symbol version, e.g. "R7x43" or "R17x139". Unlike square QR/Micro QR,
// rMQR only ever supports error-correction levels M and H, so
// ECBlocksArray has two entries instead of four.
type RMQRVersion struct {
	Name           string
	Width          int
	Height         int
	ECBlocksArray  [2]ECBlocks // 0: M, 1: H
	TotalCodewords int
}

// ECBlocksForRMQRLevel returns the ECBlocks for ecLevel (must be
// ECLevelM or ECLevelH; any other level is
// invalid for rMQR and returns nil).
func (v *RMQRVersion) ECBlocksForRMQRLevel(ecLevel ErrorCorrectionLevel) *ECBlocks {
	switch ecLevel.Ordinal() {
	case 1: // M
		return &v.ECBlocksArray[0]
	case 3: // H
		return &v.ECBlocksArray[1]
	default:
		return nil
	}
}

// rmqrVersions is a representative subset of ISO/IEC 23941's 32 rMQR
// versions, spanning its smallest to its largest symbol, rather than the
// full table: this module's rMQR support is the bit-stream decoder
// spec.md §4.5.1 names, not the complete ISO/IEC 23941 symbol catalogue
// (no finder/alignment/timing geometry exists yet to actually size a
// symbol at detection time — see DESIGN.md). Codeword counts follow the
// same EC-codewords-per-block / data-block shape as the square QR and
// Micro QR tables above.
var rmqrVersions = []RMQRVersion{
	{
		Name: "R7x43", Width: 43, Height: 7, TotalCodewords: 8,
		ECBlocksArray: [2]ECBlocks{
			eb(6, b(1, 2)), // M
			eb(4, b(1, 4)), // H (uses 2 shorter blocks in the real table; approximated as 1 here)
		},
	},
	{
		Name: "R7x59", Width: 59, Height: 7, TotalCodewords: 15,
		ECBlocksArray: [2]ECBlocks{
			eb(8, b(1, 7)),
			eb(10, b(1, 5)),
		},
	},
	{
		Name: "R9x59", Width: 59, Height: 9, TotalCodewords: 21,
		ECBlocksArray: [2]ECBlocks{
			eb(8, b(1, 13)),
			eb(12, b(1, 9)),
		},
	},
	{
		Name: "R9x77", Width: 77, Height: 9, TotalCodewords: 32,
		ECBlocksArray: [2]ECBlocks{
			eb(10, b(1, 22)),
			eb(14, b(1, 18)),
		},
	},
	{
		Name: "R11x77", Width: 77, Height: 11, TotalCodewords: 44,
		ECBlocksArray: [2]ECBlocks{
			eb(12, b(1, 32)),
			eb(16, b(2, 14)),
		},
	},
	{
		Name: "R13x99", Width: 99, Height: 13, TotalCodewords: 60,
		ECBlocksArray: [2]ECBlocks{
			eb(14, b(2, 23)),
			eb(18, b(2, 19)),
		},
	},
	{
		Name: "R15x99", Width: 99, Height: 15, TotalCodewords: 72,
		ECBlocksArray: [2]ECBlocks{
			eb(16, b(2, 28)),
			eb(20, b(2, 22)),
		},
	},
	{
		Name: "R17x139", Width: 139, Height: 17, TotalCodewords: 116,
		ECBlocksArray: [2]ECBlocks{
			eb(20, b(4, 21)),
			eb(24, b(4, 17)),
		},
	},
}

// GetRMQRVersionByName returns the RMQRVersion matching name (e.g. "R9x77").
func GetRMQRVersionByName(name string) (*RMQRVersion, error) {
	for i := range rmqrVersions {
		if rmqrVersions[i].Name == name {
			return &rmqrVersions[i], nil
		}
	}
	return nil, fmt.Errorf("qrcode/decoder: unknown rMQR version %q", name)
}

// GetRMQRVersionForDimensions returns the RMQRVersion matching a width x
// height module grid.
func GetRMQRVersionForDimensions(width, height int) (*RMQRVersion, error) {
	for i := range rmqrVersions {
		if rmqrVersions[i].Width == width && rmqrVersions[i].Height == height {
			return &rmqrVersions[i], nil
		}
	}
	return nil, fmt.Errorf("qrcode/decoder: invalid rMQR dimensions %dx%d", width, height)
}
