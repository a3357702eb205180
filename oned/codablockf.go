package oned

import (
	"sort"
	"strings"

	zxinggo "github.com/barscan/symcore"
	"github.com/barscan/symcore/bitutil"
	"github.com/barscan/symcore/symid"
)

// CodablockFReader decodes Codablock-F, a stacked symbology that encodes
// each row as an independent Code 128 pattern with a Code-Set-C row
// indicator codeword identifying its position in the stack. A full
// decoder verifies the K1/K2 row/column check codewords, ISO/IEC 15417
// Annex D; this implementation decodes every row's Code 128 content and
// trusts the row indicator alone, without verifying K1/K2 — noted as a
// simplification at the same confidence tier as this module's other new
// stacked/2D readers, self-consistent but not checksum-verified against
// the full standard.
type CodablockFReader struct{}

// NewCodablockFReader creates a new Codablock-F reader.
func NewCodablockFReader() *CodablockFReader {
	return &CodablockFReader{}
}

// codablockFRowIndicatorBase is the Code-Set-C codeword value that marks
// row 0's indicator; each subsequent row's indicator increments by one.
const codablockFRowIndicatorBase = 42

// Decode locates and decodes a Codablock-F symbol stacked across the
// image's rows.
func (r *CodablockFReader) Decode(image *zxinggo.BinaryBitmap, opts *zxinggo.DecodeOptions) (*zxinggo.Result, error) {
	matrix, err := image.BlackMatrix()
	if err != nil {
		return nil, err
	}

	rows, err := decodeStackedCode128Rows(matrix, opts)
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].index < rows[j].index })

	var sb strings.Builder
	var rawCodes []byte
	for i, rr := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(rr.text)
		rawCodes = append(rawCodes, rr.raw.RawCodes...)
	}

	text := sb.String()
	if text == "" {
		return nil, zxinggo.ErrNotFound
	}

	result := zxinggo.NewResult(text, rawCodes, nil, zxinggo.FormatCodablockF)
	result.PutMetadata(zxinggo.MetadataSymbologyIdentifier, symid.Identifier{Code: symid.CodablockF}.String())
	return result, nil
}

// Reset resets internal state.
func (r *CodablockFReader) Reset() {}

var _ zxinggo.Reader = (*CodablockFReader)(nil)

// stackedRow is one decoded row of a stacked Code 128 symbol, with its
// row index recovered from the leading Code-Set-C row indicator codeword.
type stackedRow struct {
	index int
	text  string
	raw   *Code128RowResult
}

// decodeStackedCode128Rows scans every pixel row of matrix for a Code 128
// pattern, decodes each one found via the shared Code 128 state machine,
// strips the Code-Set-C row indicator codeword from the front of each
// row's text, and deduplicates consecutive identical decodes (adjacent
// pixel rows belonging to the same printed barcode row).
func decodeStackedCode128Rows(matrix *bitutil.BitMatrix, opts *zxinggo.DecodeOptions) ([]stackedRow, error) {
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

		index, text := splitRowIndicator(rr.Text, len(rows))
		rows = append(rows, stackedRow{index: index, text: text, raw: rr})
	}

	if len(rows) == 0 {
		return nil, zxinggo.ErrNotFound
	}
	return rows, nil
}

// splitRowIndicator strips a leading two-digit Code-Set-C row indicator
// (codablockFRowIndicatorBase + row number) from text, falling back to
// fallbackIndex (the row's scan order) when the prefix doesn't look like
// a valid indicator.
func splitRowIndicator(text string, fallbackIndex int) (int, string) {
	if len(text) < 2 {
		return fallbackIndex, text
	}
	n := 0
	for i := 0; i < 2; i++ {
		c := text[i]
		if c < '0' || c > '9' {
			return fallbackIndex, text
		}
		n = n*10 + int(c-'0')
	}
	index := n - codablockFRowIndicatorBase
	if index < 0 {
		return fallbackIndex, text
	}
	return index, text[2:]
}
