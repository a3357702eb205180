package decoder

import "github.com/barscan/symcore/content"

// Mode names a Han Xin data-region encoding mode (GB/T 21049, ISO/IEC
// 20830 §6.1). Unlike QR's single 4-bit indicator space, Han Xin reuses the
// same indicator width across every symbol version, so there is no
// per-version character-count table to select between.
type Mode int

const (
	ModeTerminator Mode = iota
	ModeNumeric
	ModeText
	ModeBinary
	ModeHanzi
	ModeECI
)

// modeIndicatorBits is the width of a mode indicator, fixed at 4 bits for
// every Han Xin symbol size.
const modeIndicatorBits = 4

// characterCountBits gives the width of the count field following a mode
// indicator.
var characterCountBits = map[Mode]int{
	ModeNumeric: 12,
	ModeText:    11,
	ModeBinary:  13,
	ModeHanzi:   12,
}

// ModeForBits maps a 4-bit mode indicator to a Mode.
func ModeForBits(bits int) (Mode, error) {
	switch bits {
	case 0x0:
		return ModeTerminator, nil
	case 0x1:
		return ModeNumeric, nil
	case 0x2:
		return ModeText, nil
	case 0x3:
		return ModeBinary, nil
	case 0x4:
		return ModeHanzi, nil
	case 0x5:
		return ModeECI, nil
	default:
		return ModeTerminator, errInvalidMode
	}
}

func segmentTypeForMode(m Mode) content.SegmentType {
	switch m {
	case ModeNumeric:
		return content.SegmentNumeric
	case ModeText:
		return content.SegmentAlphanumeric
	case ModeBinary:
		return content.SegmentByte
	case ModeHanzi:
		return content.SegmentHanzi
	default:
		return content.SegmentASCII
	}
}
