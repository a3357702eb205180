package decoder

import (
	zxinggo "github.com/barscan/symcore"
	"github.com/barscan/symcore/bitutil"
	"github.com/barscan/symcore/internal"
	"github.com/barscan/symcore/gf"
	"github.com/barscan/symcore/reedsolomon"
)

// Decoder decodes QR codes.
type Decoder struct {
	rsDecoder *reedsolomon.Decoder
}

// NewDecoder creates a new QR code Decoder.
func NewDecoder() *Decoder {
	return &Decoder{
		rsDecoder: reedsolomon.NewDecoder(gf.QRCodeField256),
	}
}

// Decode decodes a BitMatrix into a DecoderResult. A Micro QR symbol
// (11x11 through 17x17, one finder pattern) is routed to decodeMicro
// instead of the full-size QR path below.
func (d *Decoder) Decode(bits *bitutil.BitMatrix, characterSet string) (*internal.DecoderResult, error) {
	if _, err := GetMicroVersionForDimension(bits.Height()); err == nil {
		return d.decodeMicro(bits, characterSet)
	}

	parser, err := NewBitMatrixParser(bits)
	if err != nil {
		return nil, err
	}

	result, err := d.decodeParser(parser, characterSet)
	if err == nil {
		return result, nil
	}

	// Try mirrored reading
	parser.Remask()
	parser.SetMirror(true)

	if _, verr := parser.ReadVersion(); verr != nil {
		return nil, err // return original error
	}
	if _, ferr := parser.ReadFormatInformation(); ferr != nil {
		return nil, err
	}

	parser.Mirror()

	result, err2 := d.decodeParser(parser, characterSet)
	if err2 != nil {
		return nil, err // return original error
	}
	return result, nil
}

func (d *Decoder) decodeParser(parser *BitMatrixParser, characterSet string) (*internal.DecoderResult, error) {
	version, err := parser.ReadVersion()
	if err != nil {
		return nil, err
	}
	formatInfo, err := parser.ReadFormatInformation()
	if err != nil {
		return nil, err
	}
	ecLevel := formatInfo.ECLevel

	codewords, err := parser.ReadCodewords()
	if err != nil {
		return nil, err
	}

	dataBlocks := GetDataBlocks(codewords, version, ecLevel)

	totalBytes := 0
	for _, db := range dataBlocks {
		totalBytes += db.NumDataCodewords
	}
	resultBytes := make([]byte, totalBytes)
	resultOffset := 0

	errorsCorrected := 0
	for _, db := range dataBlocks {
		corrected, err := d.correctErrors(db.Codewords, db.NumDataCodewords)
		if err != nil {
			return nil, err
		}
		errorsCorrected += corrected
		copy(resultBytes[resultOffset:], db.Codewords[:db.NumDataCodewords])
		resultOffset += db.NumDataCodewords
	}

	result, err := DecodeBitStream(resultBytes, version, ecLevel, characterSet)
	if err != nil {
		return nil, err
	}
	result.ErrorsCorrected = errorsCorrected
	return result, nil
}

// decodeMicro parses and decodes a Micro QR symbol: version is implied by
// dimension, format info names the EC level and mask directly (there is
// no separate block-size lookup by EC level the way full-size QR's
// ECBlocksForLevel works, beyond the ECBlocksForLevel this M-version
// already carries).
func (d *Decoder) decodeMicro(bits *bitutil.BitMatrix, characterSet string) (*internal.DecoderResult, error) {
	mv, err := GetMicroVersionForDimension(bits.Height())
	if err != nil {
		return nil, err
	}
	parser, err := NewMicroBitMatrixParser(bits)
	if err != nil {
		return nil, err
	}
	fi, err := parser.ReadFormatInformation()
	if err != nil {
		return nil, err
	}
	if fi.Version != mv.Number {
		return nil, zxinggo.ErrFormat
	}

	codewords := parser.ReadCodewords(mv, fi.DataMask)

	if mv.Number == 1 || !fi.HasECL {
		// M1 carries no Reed-Solomon error correction at all.
		result, err := DecodeMicroBitStream(codewords, mv.Number, characterSet)
		if err != nil {
			return nil, err
		}
		return result, nil
	}

	ecBlocks := mv.ECBlocksForLevel(fi.ECLevel)
	if ecBlocks == nil {
		return nil, zxinggo.ErrFormat
	}
	numDataCodewords := ecBlocks.Blocks[0].DataCodewords
	errorsCorrected, err := d.correctErrors(codewords, numDataCodewords)
	if err != nil {
		return nil, err
	}

	result, err := DecodeMicroBitStream(codewords[:numDataCodewords], mv.Number, characterSet)
	if err != nil {
		return nil, err
	}
	result.ErrorsCorrected = errorsCorrected
	result.ECLevel = fi.ECLevel.String()
	return result, nil
}

func (d *Decoder) correctErrors(codewordBytes []byte, numDataCodewords int) (int, error) {
	numCodewords := len(codewordBytes)
	codewordsInts := make([]int, numCodewords)
	for i := 0; i < numCodewords; i++ {
		codewordsInts[i] = int(codewordBytes[i]) & 0xFF
	}
	corrected, err := d.rsDecoder.Decode(codewordsInts, numCodewords-numDataCodewords, nil)
	if err != nil {
		return 0, zxinggo.ErrChecksum
	}
	for i := 0; i < numDataCodewords; i++ {
		codewordBytes[i] = byte(codewordsInts[i])
	}
	return corrected, nil
}
