package content

import (
	"testing"

	"github.com/barscan/symcore/charset"
	"github.com/barscan/symcore/symid"
)

func TestNewSeedsDefaultEncodingMarker(t *testing.T) {
	c := New(charset.ECIISO8859_1)
	if len(c.Encodings) != 1 {
		t.Fatalf("expected one seeded encoding marker, got %d", len(c.Encodings))
	}
	if c.Encodings[0].ECI != charset.ECIISO8859_1 || c.Encodings[0].BytePos != 0 {
		t.Errorf("unexpected seed marker: %+v", c.Encodings[0])
	}
	if c.HasECI() {
		t.Error("a fresh Content with only the default ECI should report HasECI() == false")
	}
}

func TestPushAppendPrepend(t *testing.T) {
	c := New(charset.ECIISO8859_1)
	c.Append([]byte("World"))
	c.Prepend([]byte("Hello "))
	c.Push('!')
	if string(c.Bytes) != "Hello World!" {
		t.Errorf("got %q, want %q", c.Bytes, "Hello World!")
	}
}

func TestPrependShiftsMarkerPositions(t *testing.T) {
	c := New(charset.ECIISO8859_1)
	c.Append([]byte("abc"))
	c.SwitchECI(charset.ECIUTF8)
	c.Append([]byte("def"))
	c.SetSegmentType(SegmentByte)

	before := c.Encodings[1].BytePos
	beforeSeg := c.Segments[0].BytePos

	c.Prepend([]byte("XY"))

	if c.Encodings[1].BytePos != before+2 {
		t.Errorf("encoding marker not shifted: got %d, want %d", c.Encodings[1].BytePos, before+2)
	}
	if c.Segments[0].BytePos != beforeSeg+2 {
		t.Errorf("segment marker not shifted: got %d, want %d", c.Segments[0].BytePos, beforeSeg+2)
	}
	if string(c.Bytes) != "XYabcdef" {
		t.Errorf("got %q, want %q", c.Bytes, "XYabcdef")
	}
}

func TestSwitchECIIsNoOpWhenUnchanged(t *testing.T) {
	c := New(charset.ECIISO8859_1)
	c.SwitchECI(charset.ECIISO8859_1)
	if len(c.Encodings) != 1 {
		t.Errorf("expected SwitchECI to a value matching the current one to be a no-op, got %d markers", len(c.Encodings))
	}
	c.SwitchECI(charset.ECIUTF8)
	if len(c.Encodings) != 2 {
		t.Fatalf("expected a new marker after switching ECI, got %d", len(c.Encodings))
	}
	if c.CurrentECI() != charset.ECIUTF8 {
		t.Errorf("CurrentECI: got %v, want ECIUTF8", c.CurrentECI())
	}
	if !c.HasECI() {
		t.Error("expected HasECI() == true after switching away from the default")
	}
}

func TestSetSegmentTypeIsNoOpWhenUnchanged(t *testing.T) {
	c := New(charset.ECIISO8859_1)
	c.SetSegmentType(SegmentNumeric)
	c.SetSegmentType(SegmentNumeric)
	if len(c.Segments) != 1 {
		t.Errorf("expected repeated SetSegmentType with the same type to be a no-op, got %d markers", len(c.Segments))
	}
	c.SetSegmentType(SegmentAlphanumeric)
	if len(c.Segments) != 2 {
		t.Errorf("expected a new marker after changing segment type, got %d", len(c.Segments))
	}
}

func TestFinalizeComputesRunLengths(t *testing.T) {
	c := New(charset.ECIISO8859_1)
	c.SetSegmentType(SegmentNumeric)
	c.Append([]byte("123"))
	c.SetSegmentType(SegmentAlphanumeric)
	c.Append([]byte("ABCD"))

	if err := c.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if !c.Finalized() {
		t.Error("expected Finalized() == true")
	}
	if len(c.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(c.Segments))
	}
	if c.Segments[0].Length != 3 {
		t.Errorf("first segment length: got %d, want 3", c.Segments[0].Length)
	}
	if c.Segments[1].Length != 4 {
		t.Errorf("second segment length: got %d, want 4", c.Segments[1].Length)
	}

	if err := c.Finalize(); err != ErrAlreadyFinalized {
		t.Errorf("second Finalize: got %v, want ErrAlreadyFinalized", err)
	}
}

func TestSymbologyIdentifierRoundTrip(t *testing.T) {
	c := New(charset.ECIISO8859_1)
	c.Symbology = symid.Identifier{Code: symid.QRCode, Modifier: 1}
	if got, want := c.Symbology.String(), "]Q1"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSegmentTypeString(t *testing.T) {
	cases := map[SegmentType]string{
		SegmentASCII:        "ASCII",
		SegmentByte:         "BYTE",
		SegmentKanji:        "KANJI",
		SegmentHanzi:        "HANZI",
		SegmentNumeric:      "NUMERIC",
		SegmentAlphanumeric: "ALPHANUMERIC",
		SegmentGS1:          "GS1",
		SegmentURI:          "URI",
		SegmentType(99):     "UNKNOWN",
	}
	for st, want := range cases {
		if got := st.String(); got != want {
			t.Errorf("SegmentType(%d).String(): got %q, want %q", st, got, want)
		}
	}
}
