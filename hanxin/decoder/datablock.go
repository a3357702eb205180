package decoder

import "github.com/barscan/symcore/rsblock"

// DataBlock is a de-interleaved Reed-Solomon block: data codewords followed
// by its EC codewords.
type DataBlock struct {
	NumDataCodewords int
	Codewords        []byte
}

// GetDataBlocks de-interleaves rawCodewords using the shared round-robin
// algorithm also used by qrcode/decoder and datamatrix/decoder.
func GetDataBlocks(rawCodewords []byte, version *Version, ecLevel int) []DataBlock {
	ecBlocks := version.ECBlocksForLevel(ecLevel)
	if ecBlocks == nil {
		return nil
	}

	specs := make([]rsblock.Spec, len(ecBlocks.Blocks))
	for i, b := range ecBlocks.Blocks {
		specs[i] = rsblock.Spec{Count: b.Count, DataCodewords: b.DataCodewords}
	}

	blocks, err := rsblock.Split(rawCodewords, specs, ecBlocks.ECCodewordsPerBlock)
	if err != nil {
		return nil
	}

	result := make([]DataBlock, len(blocks))
	for i, b := range blocks {
		result[i] = DataBlock{NumDataCodewords: b.NumDataCodewords, Codewords: b.Codewords}
	}
	return result
}
