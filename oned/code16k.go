package oned

import (
	"sort"
	"strings"

	zxinggo "github.com/barscan/symcore"
	"github.com/barscan/symcore/symid"
)

// Code16KReader decodes Code 16K, a stacked symbology of up to 16 rows of
// Code 128 patterns. The first row's leading Code-Set-C codeword carries a
// mode byte naming the total row count and an indicator number for that
// row; a full decoder cross-checks that count against the rows actually
// found. This implementation decodes every row via the shared Code 128
// state machine and orders rows by their indicator codeword without
// verifying the row-count mode byte, noted as a simplification at the
// same confidence tier as this module's other new stacked/2D readers.
type Code16KReader struct{}

// NewCode16KReader creates a new Code 16K reader.
func NewCode16KReader() *Code16KReader {
	return &Code16KReader{}
}

// code16KRowIndicatorBase is the Code-Set-C codeword value marking row 0's
// indicator in Code 16K, distinct from Codablock-F's base.
const code16KRowIndicatorBase = 0

// Decode locates and decodes a Code 16K symbol stacked across the image's
// rows.
func (r *Code16KReader) Decode(image *zxinggo.BinaryBitmap, opts *zxinggo.DecodeOptions) (*zxinggo.Result, error) {
	matrix, err := image.BlackMatrix()
	if err != nil {
		return nil, err
	}

	convertFNC1 := opts != nil && opts.AssumeGS1
	var rows []stackedRow
	var lastRaw string

	for y := 0; y < matrix.Height(); y++ {
		rowArray := matrix.Row(y, nil)
		rr, err := decodeCode128Row(rowArray, convertFNC1)
		if err != nil {
			continue
		}
		key := string(rr.RawCodes)
		if key == lastRaw {
			continue
		}
		lastRaw = key

		index, text := splitCode16KRowIndicator(rr.Text, len(rows))
		rows = append(rows, stackedRow{index: index, text: text, raw: rr})
	}

	if len(rows) == 0 {
		return nil, zxinggo.ErrNotFound
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].index < rows[j].index })

	var sb strings.Builder
	var rawCodes []byte
	for _, rr := range rows {
		sb.WriteString(rr.text)
		rawCodes = append(rawCodes, rr.raw.RawCodes...)
	}

	text := sb.String()
	if text == "" {
		return nil, zxinggo.ErrNotFound
	}

	result := zxinggo.NewResult(text, rawCodes, nil, zxinggo.FormatCode16K)
	result.PutMetadata(zxinggo.MetadataSymbologyIdentifier, symid.Identifier{Code: symid.Code16K}.String())
	return result, nil
}

// Reset resets internal state.
func (r *Code16KReader) Reset() {}

var _ zxinggo.Reader = (*Code16KReader)(nil)

// splitCode16KRowIndicator strips a leading single-digit row indicator
// (code16KRowIndicatorBase + row number) from text, falling back to
// fallbackIndex when the prefix doesn't look like a valid indicator.
func splitCode16KRowIndicator(text string, fallbackIndex int) (int, string) {
	if len(text) < 1 {
		return fallbackIndex, text
	}
	c := text[0]
	if c < '0' || c > '9' {
		return fallbackIndex, text
	}
	index := int(c-'0') - code16KRowIndicatorBase
	if index < 0 {
		return fallbackIndex, text
	}
	return index, text[1:]
}
