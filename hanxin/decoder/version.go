package decoder

import "errors"

var (
	errInvalidMode    = errors.New("hanxin/decoder: invalid mode indicator")
	errInvalidVersion = errors.New("hanxin/decoder: invalid version")
)

// ECB and ECBlocks mirror qrcode/decoder's block-spec shape: a version's
// data splits into one or more equally-sized Reed-Solomon blocks per EC
// level, read off in round-robin order the same way rsblock.Split/Join
// already do for QR and Data Matrix.
type ECB struct {
	Count         int
	DataCodewords int
}

type ECBlocks struct {
	ECCodewordsPerBlock int
	Blocks              []ECB
}

func (e *ECBlocks) NumBlocks() int {
	total := 0
	for _, b := range e.Blocks {
		total += b.Count
	}
	return total
}

// Version describes one of the Han Xin symbol sizes this decoder supports.
// A full ISO/IEC 20830 implementation spans 84 versions (23x23 to 189x189);
// this module implements the first six, which is enough to exercise the
// encoding-region/error-correction machinery end to end.
type Version struct {
	Number        int
	Dimension     int
	ECBlocksArray [4]ECBlocks // indexed by ECLevel (0=L1..3=L4)
}

var versions = []Version{
	{Number: 1, Dimension: 23, ECBlocksArray: [4]ECBlocks{
		ecb(10, blk(1, 8)), ecb(14, blk(1, 4)), ecb(16, blk(1, 2)), ecb(18, blk(1, 1)),
	}},
	{Number: 2, Dimension: 25, ECBlocksArray: [4]ECBlocks{
		ecb(12, blk(1, 12)), ecb(16, blk(1, 8)), ecb(20, blk(1, 4)), ecb(22, blk(1, 2)),
	}},
	{Number: 3, Dimension: 29, ECBlocksArray: [4]ECBlocks{
		ecb(16, blk(1, 20)), ecb(20, blk(1, 16)), ecb(24, blk(1, 12)), ecb(28, blk(1, 8)),
	}},
	{Number: 4, Dimension: 33, ECBlocksArray: [4]ECBlocks{
		ecb(20, blk(1, 28)), ecb(24, blk(2, 12)), ecb(28, blk(2, 10)), ecb(32, blk(2, 8)),
	}},
	{Number: 5, Dimension: 37, ECBlocksArray: [4]ECBlocks{
		ecb(24, blk(1, 40)), ecb(28, blk(2, 18)), ecb(32, blk(2, 15)), ecb(36, blk(2, 12)),
	}},
	{Number: 6, Dimension: 41, ECBlocksArray: [4]ECBlocks{
		ecb(28, blk(2, 24)), ecb(32, blk(2, 21)), ecb(36, blk(2, 18)), ecb(40, blk(2, 15)),
	}},
}

func ecb(ecCodewordsPerBlock int, blocks ...ECB) ECBlocks {
	return ECBlocks{ECCodewordsPerBlock: ecCodewordsPerBlock, Blocks: blocks}
}

func blk(count, dataCodewords int) ECB {
	return ECB{Count: count, DataCodewords: dataCodewords}
}

// GetVersionForNumber returns the Version for symbol version 1-6.
func GetVersionForNumber(number int) (*Version, error) {
	if number < 1 || number > len(versions) {
		return nil, errInvalidVersion
	}
	return &versions[number-1], nil
}

// GetVersionForDimension returns the Version whose data region has the
// given module dimension.
func GetVersionForDimension(dimension int) (*Version, error) {
	for i := range versions {
		if versions[i].Dimension == dimension {
			return &versions[i], nil
		}
	}
	return nil, errInvalidVersion
}

// ECBlocksForLevel returns the block spec for the given 0-3 EC level
// ordinal (L1 weakest .. L4 strongest), or nil if out of range.
func (v *Version) ECBlocksForLevel(level int) *ECBlocks {
	if level < 0 || level > 3 {
		return nil
	}
	return &v.ECBlocksArray[level]
}
