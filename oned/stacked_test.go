package oned

import (
	"testing"

	zxinggo "github.com/barscan/symcore"
	"github.com/barscan/symcore/binarizer"
	"github.com/barscan/symcore/bitutil"
)

// stackedBitMatrixLuminanceSource wraps a BitMatrix as a LuminanceSource,
// the same adapter datamatrix_test.go and qrcode_test.go use to feed a
// hand-built bit pattern through a real Binarizer.
type stackedBitMatrixLuminanceSource struct {
	matrix *bitutil.BitMatrix
}

func (s *stackedBitMatrixLuminanceSource) Width() int  { return s.matrix.Width() }
func (s *stackedBitMatrixLuminanceSource) Height() int { return s.matrix.Height() }

func (s *stackedBitMatrixLuminanceSource) Row(y int, row []byte) []byte {
	w := s.matrix.Width()
	if len(row) < w {
		row = make([]byte, w)
	}
	for x := 0; x < w; x++ {
		if s.matrix.Get(x, y) {
			row[x] = 0
		} else {
			row[x] = 255
		}
	}
	return row
}

func (s *stackedBitMatrixLuminanceSource) Matrix() []byte {
	w, h := s.matrix.Width(), s.matrix.Height()
	result := make([]byte, w*h)
	for y := 0; y < h; y++ {
		offset := y * w
		for x := 0; x < w; x++ {
			if s.matrix.Get(x, y) {
				result[offset+x] = 0
			} else {
				result[offset+x] = 255
			}
		}
	}
	return result
}

// buildStackedRows encodes each string as its own Code 128 row (rowHeight
// pixel rows tall) and stacks them into one combined BitMatrix, left-
// aligned and padded with white on the right for rows narrower than the
// widest one.
func buildStackedRows(t *testing.T, rows []string, rowHeight int) *bitutil.BitMatrix {
	t.Helper()
	writer := NewCode128Writer()

	rowMatrices := make([]*bitutil.BitMatrix, len(rows))
	width := 0
	for i, text := range rows {
		m, err := writer.Encode(text, zxinggo.FormatCode128, 0, rowHeight, nil)
		if err != nil {
			t.Fatalf("encode row %d (%q): %v", i, text, err)
		}
		rowMatrices[i] = m
		if m.Width() > width {
			width = m.Width()
		}
	}

	height := rowHeight * len(rows)
	combined := bitutil.NewBitMatrixWithSize(width, height)
	for i, m := range rowMatrices {
		for y := 0; y < rowHeight; y++ {
			for x := 0; x < m.Width(); x++ {
				if m.Get(x, y) {
					combined.Set(x, i*rowHeight+y)
				}
			}
		}
	}
	return combined
}

func decodeStackedBitmap(matrix *bitutil.BitMatrix) *zxinggo.BinaryBitmap {
	source := &stackedBitMatrixLuminanceSource{matrix: matrix}
	return zxinggo.NewBinaryBitmap(binarizer.NewGlobalHistogram(source))
}

func TestCodablockFReaderDecode(t *testing.T) {
	matrix := buildStackedRows(t, []string{"42HELLO", "43WORLD"}, 3)
	bitmap := decodeStackedBitmap(matrix)

	result, err := NewCodablockFReader().Decode(bitmap, nil)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if want := "HELLO\nWORLD"; result.Text != want {
		t.Errorf("got %q, want %q", result.Text, want)
	}
	if result.Format != zxinggo.FormatCodablockF {
		t.Errorf("format: got %v, want FormatCodablockF", result.Format)
	}
}

func TestCodablockFReaderOrdersRowsByIndicator(t *testing.T) {
	// Encode the "later" row first in the image; the reader must still
	// order output by the row indicator, not by scan order.
	matrix := buildStackedRows(t, []string{"43WORLD", "42HELLO"}, 3)
	bitmap := decodeStackedBitmap(matrix)

	result, err := NewCodablockFReader().Decode(bitmap, nil)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if want := "HELLO\nWORLD"; result.Text != want {
		t.Errorf("got %q, want %q", result.Text, want)
	}
}

func TestCode16KReaderDecode(t *testing.T) {
	matrix := buildStackedRows(t, []string{"0HELLO", "1WORLD"}, 3)
	bitmap := decodeStackedBitmap(matrix)

	result, err := NewCode16KReader().Decode(bitmap, nil)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if want := "HELLOWORLD"; result.Text != want {
		t.Errorf("got %q, want %q", result.Text, want)
	}
	if result.Format != zxinggo.FormatCode16K {
		t.Errorf("format: got %v, want FormatCode16K", result.Format)
	}
}
