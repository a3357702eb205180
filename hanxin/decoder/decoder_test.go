package decoder

import (
	"strings"
	"testing"

	"github.com/barscan/symcore/bitutil"
	"github.com/barscan/symcore/gf"
	"github.com/barscan/symcore/reedsolomon"
)

// buildTextMessage hand-assembles a Text-mode segment followed by a
// terminator, the same bit layout decodeBitStream expects.
func buildTextMessage(t *testing.T, text string, numDataCodewords int) []byte {
	t.Helper()

	ba := bitutil.NewBitArray(0)
	ba.AppendBits(uint32(ModeText), modeIndicatorBits)
	ba.AppendBits(uint32(len(text)), characterCountBits[ModeText])
	for _, r := range text {
		idx := strings.IndexRune(textChars, r)
		if idx < 0 {
			t.Fatalf("character %q not in textChars alphabet", r)
		}
		ba.AppendBits(uint32(idx), 6)
	}
	ba.AppendBits(uint32(ModeTerminator), modeIndicatorBits)

	numBytes := (ba.Size() + 7) / 8
	out := make([]byte, numDataCodewords)
	ba.ToBytes(0, out, 0, numBytes)
	return out
}

// encodeWithRS appends Reed-Solomon error-correction codewords over
// gf.HanXinField256, matching the field the Decoder itself uses for
// data-region codewords.
func encodeWithRS(data []byte, ecCodewords int) []byte {
	total := make([]int, len(data)+ecCodewords)
	for i, b := range data {
		total[i] = int(b)
	}
	reedsolomon.NewEncoder(gf.HanXinField256).Encode(total, ecCodewords)
	out := make([]byte, len(total))
	for i, v := range total {
		out[i] = byte(v)
	}
	return out
}

func TestDecoderTextSegmentRoundTrip(t *testing.T) {
	version, err := GetVersionForNumber(1)
	if err != nil {
		t.Fatalf("GetVersionForNumber: %v", err)
	}
	const ecLevel = 0 // L1
	ecBlocks := version.ECBlocksForLevel(ecLevel)
	if ecBlocks.NumBlocks() != 1 {
		t.Fatalf("expected a single-block version for this test, got %d blocks", ecBlocks.NumBlocks())
	}
	numDataCodewords := ecBlocks.Blocks[0].DataCodewords

	data := buildTextMessage(t, "Hi", numDataCodewords)
	raw := encodeWithRS(data, ecBlocks.ECCodewordsPerBlock)

	dr, err := NewDecoder().Decode(raw, version, ecLevel)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dr.Text != "Hi" {
		t.Errorf("got text %q, want %q", dr.Text, "Hi")
	}
	if dr.Content == nil {
		t.Fatal("expected non-nil Content")
	}
	if !dr.Content.Finalized() {
		t.Error("expected Content to be finalized")
	}
}

func TestDecoderCorrectsErrors(t *testing.T) {
	version, err := GetVersionForNumber(2)
	if err != nil {
		t.Fatalf("GetVersionForNumber: %v", err)
	}
	const ecLevel = 0
	ecBlocks := version.ECBlocksForLevel(ecLevel)
	numDataCodewords := ecBlocks.Blocks[0].DataCodewords

	data := buildTextMessage(t, "GoLang", numDataCodewords)
	raw := encodeWithRS(data, ecBlocks.ECCodewordsPerBlock)

	// Flip a couple of data codeword bytes; GF(256) RS correction recovers
	// up to ECCodewordsPerBlock/2 byte errors.
	raw[0] ^= 0x0F
	raw[1] ^= 0x03

	dr, err := NewDecoder().Decode(raw, version, ecLevel)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dr.Text != "GoLang" {
		t.Errorf("got text %q, want %q", dr.Text, "GoLang")
	}
	if dr.ErrorsCorrected == 0 {
		t.Error("expected ErrorsCorrected > 0 after introducing errors")
	}
}

func TestModeForBitsInvalid(t *testing.T) {
	if _, err := ModeForBits(0x6); err == nil {
		t.Error("expected error for out-of-range mode indicator")
	}
}

func TestGetVersionForDimension(t *testing.T) {
	v, err := GetVersionForDimension(29)
	if err != nil {
		t.Fatalf("GetVersionForDimension: %v", err)
	}
	if v.Number != 3 {
		t.Errorf("got version %d, want 3", v.Number)
	}
	if _, err := GetVersionForDimension(99); err == nil {
		t.Error("expected error for unsupported dimension")
	}
}
