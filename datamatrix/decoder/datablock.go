package decoder

import (
	"errors"

	"github.com/barscan/symcore/rsblock"
)

// errNoECBlocks indicates a Data Matrix version carries no EC block layout.
var errNoECBlocks = errors.New("datamatrix/decoder: no EC blocks defined")

// DataBlock represents a block of data and error-correction codewords.
type DataBlock struct {
	NumDataCodewords int
	Codewords        []byte
}

// GetDataBlocks separates interleaved Data Matrix codewords into data and EC
// blocks, delegating the round-robin de-interleaving to the shared rsblock
// package (the same algorithm QR code, MaxiCode, Han Xin, and DotCode use).
func GetDataBlocks(rawCodewords []byte, version *Version) ([]DataBlock, error) {
	ecBlocks := version.GetECBlocks()

	totalBlocks := 0
	for _, b := range ecBlocks.Blocks {
		totalBlocks += b.Count
	}
	if totalBlocks == 0 {
		return nil, errNoECBlocks
	}
	ecCodewordsPerBlock := ecBlocks.ECCodewords

	specs := make([]rsblock.Spec, len(ecBlocks.Blocks))
	for i, b := range ecBlocks.Blocks {
		specs[i] = rsblock.Spec{Count: b.Count, DataCodewords: b.DataCodewords}
	}

	blocks, err := rsblock.Split(rawCodewords, specs, ecCodewordsPerBlock)
	if err != nil {
		return nil, err
	}

	result := make([]DataBlock, len(blocks))
	for i, b := range blocks {
		result[i] = DataBlock{NumDataCodewords: b.NumDataCodewords, Codewords: b.Codewords}
	}
	return result, nil
}
