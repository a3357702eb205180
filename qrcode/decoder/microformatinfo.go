package decoder

import "math/bits"

// microFormatInfoMask is the XOR mask applied to a Micro QR format-info
// codeword before BCH decoding (ISO/IEC 18004 Table 12), analogous to
// formatInfoMaskQR for full-size QR.
const microFormatInfoMask = 0x4445

// microSymbolNumber names the 8 (M-version, EC level) combinations a
// Micro QR format info's 3-bit "symbol number" field selects. M1 carries
// no error correction, so it pairs with no ErrorCorrectionLevel.
var microSymbolNumber = [8]struct {
	version int
	ecLevel int // ErrorCorrectionLevel.Ordinal(), or -1 for M1 (no EC)
}{
	{1, -1},
	{2, 0}, {2, 1},
	{3, 0}, {3, 1},
	{4, 0}, {4, 1}, {4, 2},
}

// MicroFormatInformation is the parsed form of a Micro QR format-info
// codeword: which M-version/EC-level combination and data mask it names.
type MicroFormatInformation struct {
	Version  int
	ECLevel  ErrorCorrectionLevel
	HasECL   bool
	DataMask byte
}

// DecodeMicroFormatInformation decodes a 15-bit masked Micro QR format-info
// codeword. It reuses the BCH(15,5) decode table built for full-size QR
// format info: the generator polynomial is the same, so the same codeword
// table applies to any 5-bit message, only the mask and field layout
// differ between the two symbol families.
func DecodeMicroFormatInformation(maskedFormatInfo int) *MicroFormatInformation {
	value := maskedFormatInfo ^ microFormatInfoMask
	bestDifference := 32
	bestMessage := 0
	for _, entry := range formatInfoDecodeLookup {
		// formatInfoDecodeLookup stores (codeword, message) pairs keyed to
		// the standard QR XOR mask; undo that mask to recover the raw
		// BCH(15,5) codeword shared by both symbol families.
		target := entry[0] ^ formatInfoMaskQR
		if target == value {
			bestMessage = entry[1]
			bestDifference = 0
			break
		}
		d := bits.OnesCount(uint(value ^ target))
		if d < bestDifference {
			bestDifference = d
			bestMessage = entry[1]
		}
	}
	if bestDifference > 3 {
		return nil
	}

	symbolNumber := (bestMessage >> 2) & 0x07
	mask := byte(bestMessage & 0x03)
	sel := microSymbolNumber[symbolNumber]

	fi := &MicroFormatInformation{Version: sel.version, DataMask: mask}
	if sel.ecLevel >= 0 {
		fi.ECLevel = ErrorCorrectionLevel(sel.ecLevel)
		fi.HasECL = true
	}
	return fi
}
