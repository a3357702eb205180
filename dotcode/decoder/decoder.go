// Package decoder implements DotCode codeword decoding: Reed-Solomon
// correction over GF(3^5) (gf.DotCodeField, spec.md §4.2) followed by a
// Code 128-style code-set dispatch (Set A/B/C with latch and shift codes),
// grounded on oned/code128reader.go's codeSet state machine — DotCode's
// data encodation reuses the same three-set design, just carried over a
// dot grid instead of bars.
package decoder

import (
	"strings"

	zxinggo "github.com/barscan/symcore"
	"github.com/barscan/symcore/charset"
	"github.com/barscan/symcore/content"
	"github.com/barscan/symcore/gf"
	"github.com/barscan/symcore/reedsolomon"
	"github.com/barscan/symcore/symid"
)

// Code-set latch/shift/function values, numbered the same way
// oned/code128reader.go's codeSet constants are, reused here as DotCode
// codeword values (the field is GF(3^5), 243 elements, comfortably larger
// than Code 128's 103-value alphabet).
const (
	codeSetA = 101
	codeSetB = 100
	codeSetC = 99
	codeFNC1 = 102
	codeLatch = 98 // upper shift: the next character is output with 128 added
	codePad   = 106
)

// DecoderResult holds the decoded text and Content built from DotCode data
// codewords.
type DecoderResult struct {
	Text            string
	RawBytes        []byte
	ErrorsCorrected int
	Content         *content.Content
}

// Decoder decodes DotCode codewords, correcting errors with Reed-Solomon
// over GF(3^5).
type Decoder struct {
	rsDecoder *reedsolomon.Decoder
}

// NewDecoder creates a DotCode Decoder.
func NewDecoder() *Decoder {
	return &Decoder{rsDecoder: reedsolomon.NewDecoder(gf.DotCodeField)}
}

// Decode corrects rawCodewords (one RS block, numECCodewords trailing
// codewords) and runs the code-set dispatch loop over the data codewords.
func (d *Decoder) Decode(rawCodewords []int, numECCodewords int) (*DecoderResult, error) {
	if len(rawCodewords) <= numECCodewords {
		return nil, zxinggo.ErrFormat
	}
	corrected, err := d.rsDecoder.Decode(rawCodewords, numECCodewords, nil)
	if err != nil {
		return nil, zxinggo.ErrChecksum
	}

	dataCodewords := rawCodewords[:len(rawCodewords)-numECCodewords]
	dr, err := decodeCodewords(dataCodewords)
	if err != nil {
		return nil, err
	}
	dr.ErrorsCorrected = corrected
	return dr, nil
}

func decodeCodewords(codewords []int) (*DecoderResult, error) {
	var result strings.Builder
	c := content.New(charset.ECIISO8859_1)
	codeSet := codeSetA
	hasGS1 := false
	upperShift := false

	setContentType := func() {
		if codeSet == codeSetC {
			c.SetSegmentType(content.SegmentNumeric)
		} else {
			c.SetSegmentType(content.SegmentAlphanumeric)
		}
	}
	setContentType()

	writeChar := func(ch byte) {
		if upperShift {
			ch += 128
			upperShift = false
		}
		result.WriteByte(ch)
		c.Push(ch)
	}

	rawBytes := make([]byte, 0, len(codewords))
	for _, code := range codewords {
		if code < 0 || code >= gf.DotCodeField.Size() {
			return nil, zxinggo.ErrFormat
		}
		rawBytes = append(rawBytes, byte(code))

		switch codeSet {
		case codeSetA:
			if code < 64 {
				setContentType()
				writeChar(byte(' ' + code))
				continue
			}
			if code < 96 {
				setContentType()
				writeChar(byte(code - 64))
				continue
			}
		case codeSetB:
			if code < 96 {
				setContentType()
				writeChar(byte(' ' + code))
				continue
			}
		case codeSetC:
			if code < 100 {
				setContentType()
				buf := [2]byte{byte('0' + code/10), byte('0' + code%10)}
				result.Write(buf[:])
				c.Append(buf[:])
				continue
			}
		}

		switch code {
		case codeSetA:
			codeSet = codeSetA
		case codeSetB:
			codeSet = codeSetB
		case codeSetC:
			codeSet = codeSetC
		case codeFNC1:
			hasGS1 = true
			c.SetSegmentType(content.SegmentGS1)
			c.Push(0x1D)
		case codeLatch:
			upperShift = true
		case codePad:
			// padding codeword: no output
		}
	}

	c.GS1 = hasGS1
	aiFlag := symid.AIFlagNone
	if hasGS1 {
		aiFlag = symid.AIFlagGS1
	}
	c.Symbology = symid.Identifier{Code: symid.DotCode, AIFlag: aiFlag}
	if err := c.Finalize(); err != nil {
		return nil, err
	}

	return &DecoderResult{Text: result.String(), RawBytes: rawBytes, Content: c}, nil
}
