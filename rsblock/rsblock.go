// Package rsblock implements the round-robin codeword interleaving shared
// by symbologies that split their payload across multiple Reed-Solomon
// blocks before transmission. The QR code, Data Matrix and Han Xin decoders
// de-interleave their flat codeword stream through Split, differing only in
// their per-version block layout; the MaxiCode and DotCode packages do not
// use this package. This generalizes the teacher's two near-identical, independently
// maintained copies of this logic (qrcode/decoder/datablock.go and
// datamatrix/decoder/datablock.go) into one shared implementation.
package rsblock

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// ErrShortCodewords indicates fewer raw codewords were supplied than the
// block layout requires.
var ErrShortCodewords = errors.New("rsblock: not enough raw codewords")

// Spec describes one run of same-shaped blocks: Count blocks, each holding
// DataCodewords data codewords before its EC codewords.
type Spec struct {
	Count         int
	DataCodewords int
}

// Block is one de-interleaved Reed-Solomon block: NumDataCodewords data
// codewords followed by its EC codewords, all in Codewords.
type Block struct {
	NumDataCodewords int
	Codewords        []byte
}

// Split de-interleaves rawCodewords into per-block codeword runs, given the
// block-size specs (in the order the version table lists them) and the
// number of EC codewords attached to every block. Blocks may differ by at
// most one data codeword (the "shorter"/"longer" block split every
// standard in this family uses); data codewords interleave first, followed
// by the one extra data codeword longer blocks carry, followed by the EC
// codewords.
func Split(rawCodewords []byte, specs []Spec, ecCodewordsPerBlock int) ([]Block, error) {
	totalBlocks := 0
	for _, s := range specs {
		totalBlocks += s.Count
	}
	if totalBlocks == 0 {
		return nil, fmt.Errorf("rsblock: no blocks defined")
	}

	result := make([]Block, totalBlocks)
	blockIndex := 0
	for _, s := range specs {
		for i := 0; i < s.Count; i++ {
			numBlockCodewords := s.DataCodewords + ecCodewordsPerBlock
			result[blockIndex] = Block{
				NumDataCodewords: s.DataCodewords,
				Codewords:        make([]byte, numBlockCodewords),
			}
			blockIndex++
		}
	}

	dataCounts := make([]int, totalBlocks)
	for i := range result {
		dataCounts[i] = result[i].NumDataCodewords
	}
	shorterBlocksNumDataCodewords := slices.Min(dataCounts)
	longerBlocksStartAt := totalBlocks
	for i := 0; i < totalBlocks; i++ {
		if result[i].NumDataCodewords > shorterBlocksNumDataCodewords {
			longerBlocksStartAt = i
			break
		}
	}

	offset := 0
	take := func() (byte, error) {
		if offset >= len(rawCodewords) {
			return 0, ErrShortCodewords
		}
		b := rawCodewords[offset]
		offset++
		return b, nil
	}

	for i := 0; i < shorterBlocksNumDataCodewords; i++ {
		for j := 0; j < totalBlocks; j++ {
			b, err := take()
			if err != nil {
				return nil, err
			}
			result[j].Codewords[i] = b
		}
	}
	for j := longerBlocksStartAt; j < totalBlocks; j++ {
		b, err := take()
		if err != nil {
			return nil, err
		}
		result[j].Codewords[shorterBlocksNumDataCodewords] = b
	}
	for i := 0; i < ecCodewordsPerBlock; i++ {
		for j := 0; j < totalBlocks; j++ {
			b, err := take()
			if err != nil {
				return nil, err
			}
			result[j].Codewords[result[j].NumDataCodewords+i] = b
		}
	}

	if offset != len(rawCodewords) {
		return nil, fmt.Errorf("rsblock: raw codeword count mismatch: used %d of %d", offset, len(rawCodewords))
	}
	return result, nil
}

// Join re-interleaves a set of Blocks (as produced by Split, or built
// directly by an encoder) back into the flat codeword stream a symbol's
// data region carries, inverting Split exactly.
func Join(blocks []Block) []byte {
	if len(blocks) == 0 {
		return nil
	}
	dataCounts := make([]int, len(blocks))
	for i, b := range blocks {
		dataCounts[i] = b.NumDataCodewords
	}
	shorterBlocksNumDataCodewords := slices.Min(dataCounts)
	longerBlocksStartAt := len(blocks)
	for i, b := range blocks {
		if b.NumDataCodewords > shorterBlocksNumDataCodewords {
			longerBlocksStartAt = i
			break
		}
	}
	ecCodewordsPerBlock := len(blocks[0].Codewords) - blocks[0].NumDataCodewords

	total := 0
	for _, b := range blocks {
		total += len(b.Codewords)
	}
	out := make([]byte, 0, total)

	for i := 0; i < shorterBlocksNumDataCodewords; i++ {
		for _, b := range blocks {
			out = append(out, b.Codewords[i])
		}
	}
	for j := longerBlocksStartAt; j < len(blocks); j++ {
		out = append(out, blocks[j].Codewords[shorterBlocksNumDataCodewords])
	}
	for i := 0; i < ecCodewordsPerBlock; i++ {
		for _, b := range blocks {
			out = append(out, b.Codewords[b.NumDataCodewords+i])
		}
	}
	return out
}
