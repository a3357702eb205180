// Package hanxin provides Han Xin Code barcode reading.
package hanxin

import (
	zxinggo "github.com/barscan/symcore"
	"github.com/barscan/symcore/hanxin/decoder"
	"github.com/barscan/symcore/hanxin/detector"
)

// Reader decodes Han Xin barcodes from binary images.
type Reader struct{}

// NewReader creates a new Han Xin Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Decode locates and decodes a Han Xin barcode in the given image.
func (r *Reader) Decode(image *zxinggo.BinaryBitmap, opts *zxinggo.DecodeOptions) (*zxinggo.Result, error) {
	matrix, err := image.BlackMatrix()
	if err != nil {
		return nil, err
	}

	detResult, err := detector.Detect(matrix)
	if err != nil {
		return nil, err
	}

	ecLevel, codewords := decoder.ReadCodewords(detResult.Bits, detResult.Version)

	dr, err := decoder.NewDecoder().Decode(codewords, detResult.Version, ecLevel)
	if err != nil {
		return nil, err
	}

	result := zxinggo.NewResult(dr.Text, dr.RawBytes, detResult.Points, zxinggo.FormatHanXin)
	result.Content = dr.Content
	symbologyID := "]h0"
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
