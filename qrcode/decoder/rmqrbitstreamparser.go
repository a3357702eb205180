package decoder

import (
	"strings"

	zxinggo "github.com/barscan/symcore"
	"github.com/barscan/symcore/bitutil"
	"github.com/barscan/symcore/charset"
	"github.com/barscan/symcore/content"
	"github.com/barscan/symcore/internal"
	"github.com/barscan/symcore/symid"
)

// rmqrModeIndicatorBits is the fixed 3-bit mode-indicator width every rMQR
// symbol uses, regardless of version (spec.md §4.5.1: "rMQR 3 bits"),
// unlike Micro QR's version-dependent ModeIndicatorBits.
const rmqrModeIndicatorBits = 3

// rmqrCharacterCountBits gives the character-count field width per mode
// for rMQR. ISO/IEC 23941 splits rMQR versions into size classes with
// their own field widths; this module doesn't yet distinguish between
// them (see DESIGN.md) and uses one conservative width per mode, sized to
// cover the representative version table in rmqrversion.go.
var rmqrCharacterCountBits = map[Mode]int{
	ModeNumeric:      8,
	ModeAlphanumeric: 7,
	ModeByte:         8,
	ModeKanji:        7,
}

// RMQRCharacterCountBits returns the character-count field width for mode
// in an rMQR symbol.
func (m Mode) RMQRCharacterCountBits() int {
	return rmqrCharacterCountBits[m]
}

// ModeForRMQRBits decodes an rMQR mode indicator. rMQR reuses full QR's
// segment modes but packs them into a dedicated 3-bit code space (0
// reserved as a terminator/padding marker) rather than truncating QR's
// 4-bit indicator values, since ModeKanji's QR encoding (0x08) doesn't fit
// in 3 bits.
func ModeForRMQRBits(bits int) (Mode, error) {
	switch bits {
	case 0:
		return ModeTerminator, nil
	case 1:
		return ModeNumeric, nil
	case 2:
		return ModeAlphanumeric, nil
	case 3:
		return ModeByte, nil
	case 4:
		return ModeKanji, nil
	case 5:
		return ModeFNC1FirstPosition, nil
	case 6:
		return ModeFNC1SecondPosition, nil
	case 7:
		return ModeECI, nil
	}
	return 0, errInvalidMode
}

// DecodeRMQRBitStream decodes an rMQR data-codeword stream. It reuses the
// same per-mode segment decoders as full-size and Micro QR; only the
// fixed 3-bit mode indicator and rMQR's own character-count widths
// differ, mirroring DecodeMicroBitStream's structure.
func DecodeRMQRBitStream(bytes []byte, characterSet string) (*internal.DecoderResult, error) {
	bs := bitutil.NewBitSource(bytes)
	var result strings.Builder
	c := content.New(charset.ECIISO8859_1)

	var currentCharacterSetECI *charset.ECI
	fc1InEffect := false

	for {
		if bs.Available() < rmqrModeIndicatorBits {
			break
		}
		indicatorBits, err := bs.ReadBits(rmqrModeIndicatorBits)
		if err != nil {
			return nil, zxinggo.ErrFormat
		}
		mode, err := ModeForRMQRBits(indicatorBits)
		if err != nil {
			return nil, zxinggo.ErrFormat
		}
		if mode == ModeTerminator {
			break
		}

		if mode == ModeFNC1FirstPosition {
			fc1InEffect = true
			c.SetSegmentType(content.SegmentGS1)
			continue
		}
		if mode == ModeFNC1SecondPosition {
			fc1InEffect = true
			c.SetSegmentType(content.SegmentGS1)
			if bs.Available() < 8 {
				return nil, zxinggo.ErrFormat
			}
			if _, err := bs.ReadBits(8); err != nil {
				return nil, zxinggo.ErrFormat
			}
			continue
		}
		if mode == ModeECI {
			value, err := parseECIValue(bs)
			if err != nil {
				return nil, err
			}
			eci, err := charset.GetECIByValue(value)
			if err != nil {
				return nil, zxinggo.ErrFormat
			}
			currentCharacterSetECI = eci
			c.SwitchECI(eci)
			continue
		}

		countBits := mode.RMQRCharacterCountBits()
		if countBits == 0 || bs.Available() < countBits {
			break
		}
		count, err := bs.ReadBits(countBits)
		if err != nil {
			return nil, zxinggo.ErrFormat
		}

		switch mode {
		case ModeNumeric:
			c.SetSegmentType(content.SegmentNumeric)
			if err := decodeNumericSegment(bs, &result, c, count); err != nil {
				return nil, err
			}
		case ModeAlphanumeric:
			c.SetSegmentType(content.SegmentAlphanumeric)
			if err := decodeAlphanumericSegment(bs, &result, c, count, fc1InEffect); err != nil {
				return nil, err
			}
		case ModeByte:
			c.SetSegmentType(content.SegmentByte)
			if _, err := decodeByteSegment(bs, &result, c, count, currentCharacterSetECI, characterSet); err != nil {
				return nil, err
			}
		case ModeKanji:
			c.SetSegmentType(content.SegmentKanji)
			if err := decodeKanjiSegment(bs, &result, c, count); err != nil {
				return nil, err
			}
		default:
			return nil, zxinggo.ErrFormat
		}
	}

	c.Symbology = symid.Identifier{Code: symid.QRCode, Modifier: 5}
	if err := c.Finalize(); err != nil {
		return nil, err
	}

	dr := internal.NewDecoderResult(bytes, result.String(), nil, "")
	dr.Content = c
	return dr, nil
}
