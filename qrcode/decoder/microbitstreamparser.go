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

// DecodeMicroBitStream decodes a Micro QR data-codeword stream. It reuses
// the same per-mode segment decoders as full-size QR (decodeNumericSegment
// and friends take no Version-specific argument beyond a character count),
// only the mode-indicator width and character-count field width differ,
// per ModeIndicatorBits/Mode.MicroCharacterCountBits in mode.go.
func DecodeMicroBitStream(bytes []byte, mVersion int, characterSet string) (*internal.DecoderResult, error) {
	bs := bitutil.NewBitSource(bytes)
	var result strings.Builder
	c := content.New(charset.ECIISO8859_1)

	indicatorWidth := ModeIndicatorBits(mVersion)

	for {
		mode := ModeNumeric
		if indicatorWidth > 0 {
			if bs.Available() < indicatorWidth {
				break
			}
			indicatorBits, err := bs.ReadBits(indicatorWidth)
			if err != nil {
				return nil, zxinggo.ErrFormat
			}
			mode, err = ModeForMicroBits(mVersion, indicatorBits)
			if err != nil {
				return nil, zxinggo.ErrFormat
			}
		}

		countBits := mode.MicroCharacterCountBits(mVersion)
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
			if err := decodeAlphanumericSegment(bs, &result, c, count, false); err != nil {
				return nil, err
			}
		case ModeByte:
			c.SetSegmentType(content.SegmentByte)
			if _, err := decodeByteSegment(bs, &result, c, count, nil, characterSet); err != nil {
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

		if mVersion == 1 {
			// M1 carries no mode indicator and a single numeric segment.
			break
		}
	}

	c.Symbology = symid.Identifier{Code: symid.QRCode, Modifier: 1}
	if err := c.Finalize(); err != nil {
		return nil, err
	}

	dr := internal.NewDecoderResult(bytes, result.String(), nil, "")
	dr.Content = c
	return dr, nil
}
