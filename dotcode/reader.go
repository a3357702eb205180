// Package dotcode provides DotCode barcode reading.
package dotcode

import (
	zxinggo "github.com/barscan/symcore"
	"github.com/barscan/symcore/dotcode/decoder"
	"github.com/barscan/symcore/dotcode/detector"
)

// numECCodewords is the fixed Reed-Solomon redundancy this reader expects
// trailing every DotCode codeword stream; a full implementation varies
// this with message length (ISO/IEC DIS 17412 Table 1).
const numECCodewords = 3

// Reader decodes DotCode barcodes from binary images.
type Reader struct{}

// NewReader creates a new DotCode Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Decode locates and decodes a DotCode barcode in the given image.
func (r *Reader) Decode(image *zxinggo.BinaryBitmap, opts *zxinggo.DecodeOptions) (*zxinggo.Result, error) {
	matrix, err := image.BlackMatrix()
	if err != nil {
		return nil, err
	}

	detResult, err := detector.Detect(matrix)
	if err != nil {
		return nil, err
	}

	codewords := decoder.ReadCodewords(detResult.Bits)
	dr, err := decoder.NewDecoder().Decode(codewords, numECCodewords)
	if err != nil {
		return nil, err
	}

	result := zxinggo.NewResult(dr.Text, dr.RawBytes, detResult.Points, zxinggo.FormatDotCode)
	result.Content = dr.Content
	symbologyID := "]J0"
	if dr.Content != nil {
		if s := dr.Content.Symbology.String(); s != "" {
			symbologyID = s
		}
	}
	result.PutMetadata(zxinggo.MetadataSymbologyIdentifier, symbologyID)
	result.PutMetadata(zxinggo.MetadataErrorsCorrected, dr.ErrorsCorrected)
	return result, nil
}

// Reset resets internal state.
func (r *Reader) Reset() {}

var _ zxinggo.Reader = (*Reader)(nil)
