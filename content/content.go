// Package content implements the Content type described in spec.md §3.1 and
// §4.6: the typed byte accumulator every symbology bit-stream parser builds
// into. It generalizes the smaller, ad hoc "byte buffer + ECI list" pattern
// the teacher used per-symbology (see
// datamatrix/decoder/decoded_bit_stream_parser.go and
// qrcode/decoder/bitstreamparser.go, both of which grow a strings.Builder
// and a separate byteSegments slice by hand) into one shared accumulator
// every parser in this module builds into instead.
package content

import (
	"errors"

	"github.com/barscan/symcore/charset"
	"github.com/barscan/symcore/symid"
)

// ErrAlreadyFinalized is returned by Finalize when called a second time;
// per spec.md §4.6 this is a caller bug, not a recoverable condition.
var ErrAlreadyFinalized = errors.New("content: already finalized")

// SegmentType names the kind of data a run of bytes represents, so HRI
// rendering and downstream consumers can tell a byte run's provenance.
type SegmentType int

const (
	SegmentASCII SegmentType = iota
	SegmentByte
	SegmentKanji
	SegmentHanzi
	SegmentNumeric
	SegmentAlphanumeric
	SegmentGS1
	SegmentURI
)

func (t SegmentType) String() string {
	switch t {
	case SegmentASCII:
		return "ASCII"
	case SegmentByte:
		return "BYTE"
	case SegmentKanji:
		return "KANJI"
	case SegmentHanzi:
		return "HANZI"
	case SegmentNumeric:
		return "NUMERIC"
	case SegmentAlphanumeric:
		return "ALPHANUMERIC"
	case SegmentGS1:
		return "GS1"
	case SegmentURI:
		return "URI"
	default:
		return "UNKNOWN"
	}
}

// EncodingMarker records that, from BytePos onward, bytes are interpreted
// under the named ECI until the next marker.
type EncodingMarker struct {
	ECI     *charset.ECI
	BytePos int
	// Length is the number of bytes this marker covers, filled in by
	// Finalize (spec.md §4.6 "compute run-lengths").
	Length int
}

// SegmentMarker records that, from BytePos onward, bytes belong to a run of
// the named segment type until the next marker.
type SegmentMarker struct {
	Type    SegmentType
	BytePos int
	Length  int
}

// Content is the typed byte accumulator built by a symbology's bit-stream
// parser (spec.md §3.1, §4.6). It is exclusively owned by the running
// parser until finalized and moved into a Result.
type Content struct {
	Bytes                []byte
	Encodings            []EncodingMarker
	Segments             []SegmentMarker
	HintedCharset        string
	DefaultCharset       *charset.ECI
	Symbology            symid.Identifier
	GS1                  bool
	ApplicationIndicator string
	ReaderInit           bool

	finalized bool
}

// New creates a Content with the given default ECI (the implicit marker at
// position 0, per the "Encoding markers are monotonic" invariant in spec.md
// §3.2).
func New(defaultCharset *charset.ECI) *Content {
	c := &Content{DefaultCharset: defaultCharset}
	c.Encodings = append(c.Encodings, EncodingMarker{ECI: defaultCharset, BytePos: 0})
	return c
}

// Push appends a single byte.
func (c *Content) Push(b byte) {
	c.Bytes = append(c.Bytes, b)
}

// Append appends a byte slice.
func (c *Content) Append(b []byte) {
	c.Bytes = append(c.Bytes, b...)
}

// AppendString appends the bytes of a string.
func (c *Content) AppendString(s string) {
	c.Bytes = append(c.Bytes, s...)
}

// Prepend inserts bytes at the front of the content, shifting all existing
// encoding and segment marker positions forward by len(b) (spec.md §4.6,
// Design Notes "In-place Content::prepend rewriting byte positions").
func (c *Content) Prepend(b []byte) {
	if len(b) == 0 {
		return
	}
	newBytes := make([]byte, 0, len(b)+len(c.Bytes))
	newBytes = append(newBytes, b...)
	newBytes = append(newBytes, c.Bytes...)
	c.Bytes = newBytes
	for i := range c.Encodings {
		c.Encodings[i].BytePos += len(b)
	}
	for i := range c.Segments {
		c.Segments[i].BytePos += len(b)
	}
}

// SwitchECI appends a new encoding marker at the current byte position if
// eci differs from the currently active one; a no-op otherwise (spec.md
// §4.6).
func (c *Content) SwitchECI(eci *charset.ECI) {
	if len(c.Encodings) > 0 && c.Encodings[len(c.Encodings)-1].ECI.Value == eci.Value {
		return
	}
	c.Encodings = append(c.Encodings, EncodingMarker{ECI: eci, BytePos: len(c.Bytes)})
}

// CurrentECI returns the ECI active for bytes written right now.
func (c *Content) CurrentECI() *charset.ECI {
	if len(c.Encodings) == 0 {
		return c.DefaultCharset
	}
	return c.Encodings[len(c.Encodings)-1].ECI
}

// SetSegmentType appends a new segment marker at the current byte position
// if the type differs from the current run's type (spec.md §3.2 "Segment-
// type markers cover the whole stream... must first publish a segment-type
// marker if the source-stream mode changed").
func (c *Content) SetSegmentType(t SegmentType) {
	if len(c.Segments) > 0 && c.Segments[len(c.Segments)-1].Type == t {
		return
	}
	c.Segments = append(c.Segments, SegmentMarker{Type: t, BytePos: len(c.Bytes)})
}

// Finalize computes run-lengths for every encoding and segment marker.
// Calling it twice is diagnosed as a bug per spec.md §4.6.
func (c *Content) Finalize() error {
	if c.finalized {
		return ErrAlreadyFinalized
	}
	total := len(c.Bytes)
	for i := range c.Encodings {
		end := total
		if i+1 < len(c.Encodings) {
			end = c.Encodings[i+1].BytePos
		}
		c.Encodings[i].Length = end - c.Encodings[i].BytePos
	}
	for i := range c.Segments {
		end := total
		if i+1 < len(c.Segments) {
			end = c.Segments[i+1].BytePos
		}
		c.Segments[i].Length = end - c.Segments[i].BytePos
	}
	c.finalized = true
	return nil
}

// Finalized reports whether Finalize has already run.
func (c *Content) Finalized() bool {
	return c.finalized
}

// HasECI reports whether any non-default ECI marker was ever published.
func (c *Content) HasECI() bool {
	for _, e := range c.Encodings {
		if e.ECI.Value != c.DefaultCharset.Value {
			return true
		}
	}
	return len(c.Encodings) > 1
}
