package decoder

import (
	"testing"

	"github.com/barscan/symcore/gf"
	"github.com/barscan/symcore/reedsolomon"
)

// encodeWithRS appends Reed-Solomon codewords over gf.DotCodeField,
// matching the field the Decoder itself uses.
func encodeWithRS(data []int, ecCodewords int) []int {
	total := make([]int, len(data)+ecCodewords)
	copy(total, data)
	reedsolomon.NewEncoder(gf.DotCodeField).Encode(total, ecCodewords)
	return total
}

func TestDecoderSetARoundTrip(t *testing.T) {
	// "HI" in code-set A: ' '+code = char, so code = char - ' '.
	data := []int{'H' - ' ', 'I' - ' '}
	raw := encodeWithRS(data, 4)

	dr, err := NewDecoder().Decode(raw, 4)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dr.Text != "HI" {
		t.Errorf("got text %q, want %q", dr.Text, "HI")
	}
	if dr.Content == nil || !dr.Content.Finalized() {
		t.Fatal("expected a finalized Content")
	}
}

func TestDecoderSetCNumeric(t *testing.T) {
	// Latch to Set C, then two digit-pair codewords: "12" "34".
	data := []int{codeSetC, 12, 34}
	raw := encodeWithRS(data, 4)

	dr, err := NewDecoder().Decode(raw, 4)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dr.Text != "1234" {
		t.Errorf("got text %q, want %q", dr.Text, "1234")
	}
}

func TestDecoderGS1FNC1(t *testing.T) {
	data := []int{codeFNC1, 'A' - ' '}
	raw := encodeWithRS(data, 4)

	dr, err := NewDecoder().Decode(raw, 4)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !dr.Content.GS1 {
		t.Error("expected GS1 flag set after FNC1")
	}
}

func TestDecoderCorrectsErrors(t *testing.T) {
	data := []int{'A' - ' ', 'B' - ' ', 'C' - ' '}
	raw := encodeWithRS(data, 6)

	raw[0] ^= 1 // corrupt one data codeword; still within correction capacity
	if raw[0] == data[0] {
		raw[0] = (raw[0] + 1) % gf.DotCodeField.Size()
	}

	dr, err := NewDecoder().Decode(raw, 6)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dr.Text != "ABC" {
		t.Errorf("got text %q, want %q", dr.Text, "ABC")
	}
	if dr.ErrorsCorrected == 0 {
		t.Error("expected ErrorsCorrected > 0")
	}
}
