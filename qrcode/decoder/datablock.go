package decoder

import "github.com/barscan/symcore/rsblock"

// DataBlock represents a block of data and error-correction codewords.
type DataBlock struct {
	NumDataCodewords int
	Codewords        []byte
}

// GetDataBlocks separates interleaved QR code data into original blocks,
// delegating the round-robin de-interleaving to the shared rsblock package
// (the same algorithm the Data Matrix and Han Xin decoders use).
func GetDataBlocks(rawCodewords []byte, version *Version, ecLevel ErrorCorrectionLevel) []DataBlock {
	ecBlocks := version.ECBlocksForLevel(ecLevel)

	specs := make([]rsblock.Spec, len(ecBlocks.Blocks))
	for i, b := range ecBlocks.Blocks {
		specs[i] = rsblock.Spec{Count: b.Count, DataCodewords: b.DataCodewords}
	}

	blocks, err := rsblock.Split(rawCodewords, specs, ecBlocks.ECCodewordsPerBlock)
	if err != nil {
		// A correctly-detected QR version/EC-level pair always yields a
		// consistent block layout; a mismatch here means the codeword
		// count itself is already wrong, which the caller's Reed-Solomon
		// pass will catch as a checksum failure on empty/short blocks.
		return nil
	}

	result := make([]DataBlock, len(blocks))
	for i, b := range blocks {
		result[i] = DataBlock{NumDataCodewords: b.NumDataCodewords, Codewords: b.Codewords}
	}
	return result
}
