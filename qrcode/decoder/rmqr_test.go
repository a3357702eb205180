package decoder

import (
	"testing"

	"github.com/barscan/symcore/bitutil"
)

func TestModeForRMQRBitsRoundTrip(t *testing.T) {
	cases := map[int]Mode{
		0: ModeTerminator,
		1: ModeNumeric,
		2: ModeAlphanumeric,
		3: ModeByte,
		4: ModeKanji,
		5: ModeFNC1FirstPosition,
		6: ModeFNC1SecondPosition,
		7: ModeECI,
	}
	for bits, want := range cases {
		got, err := ModeForRMQRBits(bits)
		if err != nil {
			t.Fatalf("ModeForRMQRBits(%d): %v", bits, err)
		}
		if got != want {
			t.Errorf("ModeForRMQRBits(%d) = %v, want %v", bits, got, want)
		}
	}
	if _, err := ModeForRMQRBits(8); err == nil {
		t.Error("expected error for out-of-range rMQR mode bits")
	}
}

func TestDecodeRMQRBitStreamAlphanumeric(t *testing.T) {
	const rmqrAlphanumericCode = 2
	const rmqrTerminatorCode = 0

	ba := bitutil.NewBitArray(0)
	ba.AppendBits(rmqrAlphanumericCode, rmqrModeIndicatorBits)
	text := "AB1"
	ba.AppendBits(uint32(len(text)), ModeAlphanumeric.RMQRCharacterCountBits())
	// "AB" as a pair: 10*45+11 = 461, then "1" alone: 1
	ba.AppendBits(461, 11)
	ba.AppendBits(1, 6)
	ba.AppendBits(rmqrTerminatorCode, rmqrModeIndicatorBits)

	numBytes := (ba.Size() + 7) / 8
	out := make([]byte, numBytes)
	ba.ToBytes(0, out, 0, numBytes)

	dr, err := DecodeRMQRBitStream(out, "")
	if err != nil {
		t.Fatalf("DecodeRMQRBitStream: %v", err)
	}
	if dr.Text != text {
		t.Errorf("got %q, want %q", dr.Text, text)
	}
	if dr.Content == nil || !dr.Content.Finalized() {
		t.Error("expected a finalized Content on the result")
	}
}

func TestGetRMQRVersionByName(t *testing.T) {
	v, err := GetRMQRVersionByName("R9x77")
	if err != nil {
		t.Fatalf("GetRMQRVersionByName: %v", err)
	}
	if v.Width != 77 || v.Height != 9 {
		t.Errorf("got %dx%d, want 77x9", v.Width, v.Height)
	}
	mBlocks := v.ECBlocksForRMQRLevel(ECLevelM)
	if mBlocks == nil || mBlocks.NumBlocks() == 0 {
		t.Error("expected non-empty M-level ECBlocks for R9x77")
	}
	if v.ECBlocksForRMQRLevel(ECLevelL) != nil {
		t.Error("expected nil ECBlocks for rMQR level L (unsupported)")
	}

	if _, err := GetRMQRVersionByName("R0x0"); err == nil {
		t.Error("expected error for unknown rMQR version name")
	}
}

func TestGetRMQRVersionForDimensions(t *testing.T) {
	v, err := GetRMQRVersionForDimensions(43, 7)
	if err != nil {
		t.Fatalf("GetRMQRVersionForDimensions: %v", err)
	}
	if v.Name != "R7x43" {
		t.Errorf("got %q, want R7x43", v.Name)
	}
}
