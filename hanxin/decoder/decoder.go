package decoder

import (
	"strings"

	zxinggo "github.com/barscan/symcore"
	"github.com/barscan/symcore/bitutil"
	"github.com/barscan/symcore/charset"
	"github.com/barscan/symcore/content"
	"github.com/barscan/symcore/gf"
	"github.com/barscan/symcore/reedsolomon"
	"github.com/barscan/symcore/symid"
)

// DecoderResult holds the decoded text and Content built from a Han Xin
// symbol's data codewords.
type DecoderResult struct {
	Text            string
	RawBytes        []byte
	ErrorsCorrected int
	Content         *content.Content
}

// Decoder decodes Han Xin data-region codewords, correcting errors with
// Reed-Solomon over GF(256) (gf.HanXinField256, shared with QR's data
// field) since data-region codewords are 8-bit bytes; gf.HanXinField16
// protects only the separate 28-bit function-information block, which
// this module folds into the EC-level header byte rather than decoding
// as its own RS-protected field.
type Decoder struct {
	rsDecoder *reedsolomon.Decoder
}

// NewDecoder creates a Han Xin Decoder.
func NewDecoder() *Decoder {
	return &Decoder{rsDecoder: reedsolomon.NewDecoder(gf.HanXinField256)}
}

// Decode corrects and decodes rawCodewords for the given version/EC level,
// then runs the bit stream through the mode-dispatch loop.
func (d *Decoder) Decode(rawCodewords []byte, version *Version, ecLevel int) (*DecoderResult, error) {
	dataBlocks := GetDataBlocks(rawCodewords, version, ecLevel)
	if dataBlocks == nil {
		return nil, zxinggo.ErrFormat
	}

	totalBytes := 0
	for _, db := range dataBlocks {
		totalBytes += db.NumDataCodewords
	}
	resultBytes := make([]byte, totalBytes)
	offset := 0
	errorsCorrected := 0
	for _, db := range dataBlocks {
		corrected, err := d.correctErrors(db.Codewords, db.NumDataCodewords)
		if err != nil {
			return nil, err
		}
		errorsCorrected += corrected
		copy(resultBytes[offset:], db.Codewords[:db.NumDataCodewords])
		offset += db.NumDataCodewords
	}

	dr, err := decodeBitStream(resultBytes)
	if err != nil {
		return nil, err
	}
	dr.ErrorsCorrected = errorsCorrected
	return dr, nil
}

func (d *Decoder) correctErrors(codewordBytes []byte, numDataCodewords int) (int, error) {
	numCodewords := len(codewordBytes)
	ints := make([]int, numCodewords)
	for i, b := range codewordBytes {
		ints[i] = int(b) & 0xFF
	}
	corrected, err := d.rsDecoder.Decode(ints, numCodewords-numDataCodewords, nil)
	if err != nil {
		return 0, zxinggo.ErrChecksum
	}
	for i := 0; i < numDataCodewords; i++ {
		codewordBytes[i] = byte(ints[i])
	}
	return corrected, nil
}

const gb2312Subset = 1

// decodeBitStream dispatches mode segments into a Content and a string
// builder, mirroring qrcode/decoder's DecodeBitStream loop but against Han
// Xin's 4-bit indicator / mode-specific count-bit widths.
func decodeBitStream(bytes []byte) (*DecoderResult, error) {
	bs := bitutil.NewBitSource(bytes)
	var result strings.Builder
	c := content.New(charset.ECIISO8859_1)
	hasGS1 := false

	for {
		if bs.Available() < modeIndicatorBits {
			break
		}
		modeBits, err := bs.ReadBits(modeIndicatorBits)
		if err != nil {
			return nil, zxinggo.ErrFormat
		}
		mode, err := ModeForBits(modeBits)
		if err != nil {
			return nil, zxinggo.ErrFormat
		}
		if mode == ModeTerminator {
			break
		}

		if mode == ModeECI {
			value, err := bs.ReadBits(8)
			if err != nil {
				return nil, zxinggo.ErrFormat
			}
			eci, eciErr := charset.GetECIByValue(value)
			if eciErr == nil && eci != nil {
				c.SwitchECI(eci)
			}
			continue
		}

		if mode == ModeHanzi {
			countBits := characterCountBits[ModeHanzi]
			count, err := bs.ReadBits(countBits)
			if err != nil {
				return nil, zxinggo.ErrFormat
			}
			c.SetSegmentType(content.SegmentHanzi)
			if err := decodeHanziSegment(bs, &result, c, count); err != nil {
				return nil, err
			}
			continue
		}

		countBits, ok := characterCountBits[mode]
		if !ok {
			return nil, zxinggo.ErrFormat
		}
		count, err := bs.ReadBits(countBits)
		if err != nil {
			return nil, zxinggo.ErrFormat
		}
		c.SetSegmentType(segmentTypeForMode(mode))

		switch mode {
		case ModeNumeric:
			if err := decodeNumericSegment(bs, &result, c, count); err != nil {
				return nil, err
			}
		case ModeText:
			if err := decodeTextSegment(bs, &result, c, count); err != nil {
				return nil, err
			}
		case ModeBinary:
			raw, err := decodeBinarySegment(bs, &result, c, count)
			if err != nil {
				return nil, err
			}
			if idx := indexByte(raw, 0x1D); idx >= 0 {
				hasGS1 = true
			}
		default:
			return nil, zxinggo.ErrFormat
		}
	}

	c.GS1 = hasGS1
	aiFlag := symid.AIFlagNone
	if hasGS1 {
		aiFlag = symid.AIFlagGS1
	}
	c.Symbology = symid.Identifier{Code: symid.HanXin, AIFlag: aiFlag}
	if err := c.Finalize(); err != nil {
		return nil, err
	}

	return &DecoderResult{Text: result.String(), RawBytes: bytes, Content: c}, nil
}

func indexByte(b []byte, target byte) int {
	for i, v := range b {
		if v == target {
			return i
		}
	}
	return -1
}

// decodeNumericSegment reads count decimal digits packed 3-per-10-bits
// (with 1- and 2-digit remainders packed into 4 and 7 bits respectively),
// the same scheme QR numeric mode uses.
func decodeNumericSegment(bs *bitutil.BitSource, result *strings.Builder, c *content.Content, count int) error {
	for count >= 3 {
		threeDigits, err := bs.ReadBits(10)
		if err != nil {
			return zxinggo.ErrFormat
		}
		writeDigits(result, c, threeDigits, 3)
		count -= 3
	}
	if count == 2 {
		twoDigits, err := bs.ReadBits(7)
		if err != nil {
			return zxinggo.ErrFormat
		}
		writeDigits(result, c, twoDigits, 2)
	} else if count == 1 {
		oneDigit, err := bs.ReadBits(4)
		if err != nil {
			return zxinggo.ErrFormat
		}
		writeDigits(result, c, oneDigit, 1)
	}
	return nil
}

func writeDigits(result *strings.Builder, c *content.Content, value, digits int) {
	buf := make([]byte, digits)
	for i := digits - 1; i >= 0; i-- {
		buf[i] = byte('0' + value%10)
		value /= 10
	}
	result.Write(buf)
	c.Append(buf)
}

// textChars is the Han Xin text-mode alphabet: lowercase, uppercase, and
// the decimal digits. Each text character is a 6-bit index into this
// string; indexes past its end decode as '?'.
const textChars = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789"

func decodeTextSegment(bs *bitutil.BitSource, result *strings.Builder, c *content.Content, count int) error {
	for i := 0; i < count; i++ {
		v, err := bs.ReadBits(6)
		if err != nil {
			return zxinggo.ErrFormat
		}
		var ch byte
		if int(v) < len(textChars) {
			ch = textChars[v]
		} else {
			ch = '?'
		}
		result.WriteByte(ch)
		c.Push(ch)
	}
	return nil
}

func decodeBinarySegment(bs *bitutil.BitSource, result *strings.Builder, c *content.Content, count int) ([]byte, error) {
	if 8*count > bs.Available() {
		return nil, zxinggo.ErrFormat
	}
	buf := make([]byte, count)
	for i := 0; i < count; i++ {
		v, _ := bs.ReadBits(8)
		buf[i] = byte(v)
	}
	result.Write(buf)
	c.Append(buf)
	return buf, nil
}

func decodeHanziSegment(bs *bitutil.BitSource, result *strings.Builder, c *content.Content, count int) error {
	if count*14 > bs.Available() {
		return zxinggo.ErrFormat
	}
	buf := make([]byte, 2*count)
	offset := 0
	for i := 0; i < count; i++ {
		subset, err := bs.ReadBits(1)
		if err != nil {
			return zxinggo.ErrFormat
		}
		twoBytes, err := bs.ReadBits(13)
		if err != nil {
			return zxinggo.ErrFormat
		}
		assembled := ((twoBytes / 0x060) << 8) | (twoBytes % 0x060)
		if subset == gb2312Subset {
			assembled += 0x0A1A1
		} else {
			assembled += 0x0A6A1
		}
		buf[offset] = byte((assembled >> 8) & 0xFF)
		buf[offset+1] = byte(assembled & 0xFF)
		offset += 2
	}
	c.Append(buf[:offset])
	result.WriteString(charset.DecodeBytes(buf[:offset], "GB18030"))
	return nil
}
