// Package zxinggo is a pure Go port of the ZXing barcode library.
package zxinggo

import (
	"math"
	"time"

	"github.com/barscan/symcore/bitutil"
	"github.com/barscan/symcore/content"
	"github.com/barscan/symcore/textrender"
)

// Format represents a barcode format.
type Format int

const (
	FormatQRCode Format = iota
	FormatPDF417
	FormatCode128
	FormatCode39
	FormatEAN13
	FormatEAN8
	FormatUPCA
	FormatUPCE
	FormatITF
	FormatCodabar
	FormatDataMatrix
	FormatAztec
	FormatMaxiCode
	FormatCode93
	FormatRSS14
	FormatRSSExpanded
	FormatHanXin
	FormatDotCode
	FormatCodablockF
	FormatCode16K
)

// String returns the name of the barcode format.
func (f Format) String() string {
	switch f {
	case FormatQRCode:
		return "QR_CODE"
	case FormatPDF417:
		return "PDF_417"
	case FormatCode128:
		return "CODE_128"
	case FormatCode39:
		return "CODE_39"
	case FormatEAN13:
		return "EAN_13"
	case FormatEAN8:
		return "EAN_8"
	case FormatUPCA:
		return "UPC_A"
	case FormatUPCE:
		return "UPC_E"
	case FormatITF:
		return "ITF"
	case FormatCodabar:
		return "CODABAR"
	case FormatDataMatrix:
		return "DATA_MATRIX"
	case FormatAztec:
		return "AZTEC"
	case FormatMaxiCode:
		return "MAXICODE"
	case FormatCode93:
		return "CODE_93"
	case FormatRSS14:
		return "RSS_14"
	case FormatRSSExpanded:
		return "RSS_EXPANDED"
	case FormatHanXin:
		return "HAN_XIN"
	case FormatDotCode:
		return "DOT_CODE"
	case FormatCodablockF:
		return "CODABLOCK_F"
	case FormatCode16K:
		return "CODE_16K"
	default:
		return "UNKNOWN"
	}
}

// ResultMetadataKey identifies a type of metadata about a barcode result.
type ResultMetadataKey int

const (
	MetadataOther ResultMetadataKey = iota
	MetadataOrientation
	MetadataByteSegments
	MetadataErrorCorrectionLevel
	MetadataErrorsCorrected
	MetadataErasuresCorrected
	MetadataIssueNumber
	MetadataSuggestedPrice
	MetadataPossibleCountry
	MetadataUPCEANExtension
	MetadataPDF417ExtraMetadata
	MetadataStructuredAppendSequence
	MetadataStructuredAppendParity
	MetadataSymbologyIdentifier
)

// ResultPoint represents a point of interest in an image.
type ResultPoint struct {
	X, Y float64
}

// Distance returns the distance between two points.
func Distance(a, b ResultPoint) float64 {
	return math.Sqrt((a.X-b.X)*(a.X-b.X) + (a.Y-b.Y)*(a.Y-b.Y))
}

// CrossProductZ computes the z component of the cross product between vectors
// (bX-aX, bY-aY) and (cX-aX, cY-aY).
func CrossProductZ(a, b, c ResultPoint) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// OrderBestPatterns orders three points in an pointA-pointB-pointC order such
// that AB is less than AC and BC is less than AC.
func OrderBestPatterns(patterns [3]ResultPoint) [3]ResultPoint {
	d01 := Distance(patterns[0], patterns[1])
	d12 := Distance(patterns[1], patterns[2])
	d02 := Distance(patterns[0], patterns[2])

	var pointA, pointB, pointC ResultPoint
	if d12 >= d01 && d12 >= d02 {
		pointA = patterns[0]
		pointB = patterns[1]
		pointC = patterns[2]
	} else if d02 >= d01 && d02 >= d12 {
		pointA = patterns[1]
		pointB = patterns[0]
		pointC = patterns[2]
	} else {
		pointA = patterns[2]
		pointB = patterns[0]
		pointC = patterns[1]
	}

	// Use cross product to determine if pointB and pointC should be swapped
	if CrossProductZ(pointA, pointB, pointC) < 0 {
		pointB, pointC = pointC, pointB
	}

	return [3]ResultPoint{pointA, pointB, pointC}
}

// Result encapsulates the result of decoding a barcode (spec.md §6.1's
// `Barcode` output record). Content, when the decoding symbology builds
// one, carries the typed byte stream RenderText(mode) renders from; readers
// that don't build a Content (the 1D/oned family) leave it nil and
// RenderText(mode) falls back to the plain Text field.
type Result struct {
	Text      string
	RawBytes  []byte
	NumBits   int
	Points    []ResultPoint
	Format    Format
	Metadata  map[ResultMetadataKey]interface{}
	Content   *content.Content
	Timestamp time.Time
}

// RenderText renders the result's Content under mode, falling back to the
// plain decoded Text field when the symbology never built a Content
// (spec.md §6.1 "text(TextMode)").
func (r *Result) RenderText(mode textrender.TextMode) (string, error) {
	if r.Content == nil {
		return r.Text, nil
	}
	return textrender.Render(r.Content, mode)
}

// Metadata is the concrete, named-field view of the known
// ResultMetadataKey entries a Result's open Metadata map may carry (spec.md
// §9 Design Notes: "a concrete Metadata struct with named fields for the
// known keys" in place of the source's type-erased metadata map). Fields
// are zero-valued when the corresponding key was never set.
type Metadata struct {
	ErrorCorrectionLevel     string
	ErrorsCorrected          int
	ErasuresCorrected        int
	ByteSegments             [][]byte
	SymbologyIdentifier      string
	StructuredAppendSequence int
	StructuredAppendParity   int
	HasStructuredAppend      bool
}

// TypedMetadata extracts r's Metadata map into a Metadata struct, the
// concrete view downstream consumers should prefer over probing the map
// directly by key and type-asserting each value.
func (r *Result) TypedMetadata() Metadata {
	var m Metadata
	if v, ok := r.Metadata[MetadataErrorCorrectionLevel].(string); ok {
		m.ErrorCorrectionLevel = v
	}
	if v, ok := r.Metadata[MetadataErrorsCorrected].(int); ok {
		m.ErrorsCorrected = v
	}
	if v, ok := r.Metadata[MetadataErasuresCorrected].(int); ok {
		m.ErasuresCorrected = v
	}
	if v, ok := r.Metadata[MetadataByteSegments].([][]byte); ok {
		m.ByteSegments = v
	}
	if v, ok := r.Metadata[MetadataSymbologyIdentifier].(string); ok {
		m.SymbologyIdentifier = v
	}
	if v, ok := r.Metadata[MetadataStructuredAppendSequence].(int); ok {
		m.StructuredAppendSequence = v
		m.HasStructuredAppend = true
	}
	if v, ok := r.Metadata[MetadataStructuredAppendParity].(int); ok {
		m.StructuredAppendParity = v
	}
	return m
}

// NewResult creates a new Result with the given text, format, and points.
func NewResult(text string, rawBytes []byte, points []ResultPoint, format Format) *Result {
	numBits := 0
	if rawBytes != nil {
		numBits = 8 * len(rawBytes)
	}
	return &Result{
		Text:      text,
		RawBytes:  rawBytes,
		NumBits:   numBits,
		Points:    points,
		Format:    format,
		Metadata:  make(map[ResultMetadataKey]interface{}),
		Timestamp: time.Now(),
	}
}

// PutMetadata adds a metadata key/value pair.
func (r *Result) PutMetadata(key ResultMetadataKey, value interface{}) {
	r.Metadata[key] = value
}

// AddResultPoints appends additional result points.
func (r *Result) AddResultPoints(points []ResultPoint) {
	r.Points = append(r.Points, points...)
}

// BinaryBitmap represents a bitmap of binary (black/white) values.
type BinaryBitmap struct {
	binarizer Binarizer
	matrix    *bitutil.BitMatrix
}

// NewBinaryBitmap creates a new BinaryBitmap from the given Binarizer.
func NewBinaryBitmap(binarizer Binarizer) *BinaryBitmap {
	return &BinaryBitmap{binarizer: binarizer}
}

// Width returns the width of the bitmap.
func (b *BinaryBitmap) Width() int {
	return b.binarizer.Width()
}

// Height returns the height of the bitmap.
func (b *BinaryBitmap) Height() int {
	return b.binarizer.Height()
}

// BlackRow returns a row of black/white values.
func (b *BinaryBitmap) BlackRow(y int, row *bitutil.BitArray) (*bitutil.BitArray, error) {
	return b.binarizer.BlackRow(y, row)
}

// BlackMatrix returns the 2D matrix of black/white values.
func (b *BinaryBitmap) BlackMatrix() (*bitutil.BitMatrix, error) {
	if b.matrix != nil {
		return b.matrix, nil
	}
	m, err := b.binarizer.BlackMatrix()
	if err != nil {
		return nil, err
	}
	b.matrix = m
	return m, nil
}
