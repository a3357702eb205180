package decoder

// Mode represents a QR code data encoding mode.
type Mode int

const (
	ModeTerminator        Mode = 0x00
	ModeNumeric           Mode = 0x01
	ModeAlphanumeric      Mode = 0x02
	ModeStructuredAppend  Mode = 0x03
	ModeByte              Mode = 0x04
	ModeFNC1FirstPosition Mode = 0x05
	ModeECI               Mode = 0x07
	ModeKanji             Mode = 0x08
	ModeFNC1SecondPosition Mode = 0x09
	ModeHanzi             Mode = 0x0D
)

// characterCountBitsForVersions contains [v1-9, v10-26, v27-40] bit counts.
var characterCountBits = map[Mode][3]int{
	ModeTerminator:         {0, 0, 0},
	ModeNumeric:            {10, 12, 14},
	ModeAlphanumeric:       {9, 11, 13},
	ModeStructuredAppend:   {0, 0, 0},
	ModeByte:               {8, 16, 16},
	ModeECI:                {0, 0, 0},
	ModeKanji:              {8, 10, 12},
	ModeFNC1FirstPosition:  {0, 0, 0},
	ModeFNC1SecondPosition: {0, 0, 0},
	ModeHanzi:              {8, 10, 12},
}

// ModeForBits returns the Mode for the given 4-bit value.
func ModeForBits(bits int) (Mode, error) {
	switch bits {
	case 0x0:
		return ModeTerminator, nil
	case 0x1:
		return ModeNumeric, nil
	case 0x2:
		return ModeAlphanumeric, nil
	case 0x3:
		return ModeStructuredAppend, nil
	case 0x4:
		return ModeByte, nil
	case 0x5:
		return ModeFNC1FirstPosition, nil
	case 0x7:
		return ModeECI, nil
	case 0x8:
		return ModeKanji, nil
	case 0x9:
		return ModeFNC1SecondPosition, nil
	case 0xD:
		return ModeHanzi, nil
	}
	return 0, errInvalidMode
}

// CharacterCountBits returns the number of bits used to encode the character
// count for this mode in the given version.
func (m Mode) CharacterCountBits(version *Version) int {
	number := version.Number
	var offset int
	if number <= 9 {
		offset = 0
	} else if number <= 26 {
		offset = 1
	} else {
		offset = 2
	}
	return characterCountBits[m][offset]
}

// microQRModeIndicatorBits gives the width, in bits, of the mode indicator
// itself for each Micro-QR symbol size (M1 has no mode indicator at all:
// it is always numeric). rMQR always uses a fixed 3-bit indicator.
var microQRModeIndicatorBits = [5]int{0, 0, 1, 2, 3}

// microQRCharacterCountBits gives the character-count field width for each
// (mode, M-version) combination, per the Micro-QR symbol format.
var microQRCharacterCountBits = map[Mode][5]int{
	ModeNumeric:      {0, 3, 4, 5, 6},
	ModeAlphanumeric: {0, 0, 3, 4, 5},
	ModeByte:         {0, 0, 4, 5, 6},
	ModeKanji:        {0, 0, 3, 4, 5},
}

// ModeIndicatorBits returns the width of the mode indicator for a Micro-QR
// symbol of the given M-version (1-4); rMQR symbols always use 3 bits.
func ModeIndicatorBits(mVersion int) int {
	if mVersion < 1 || mVersion > 4 {
		return 4
	}
	return microQRModeIndicatorBits[mVersion]
}

// MicroCharacterCountBits returns the character-count field width for this
// mode at the given Micro-QR M-version.
func (m Mode) MicroCharacterCountBits(mVersion int) int {
	if mVersion < 1 || mVersion > 4 {
		return 0
	}
	return microQRCharacterCountBits[m][mVersion]
}

// ModeForMicroBits decodes a Micro-QR mode indicator, whose width and
// mapping depend on the symbol's M-version (ISO/IEC 18004 Table 2). M1
// carries no indicator and is always numeric.
func ModeForMicroBits(mVersion, bits int) (Mode, error) {
	if mVersion == 1 {
		return ModeNumeric, nil
	}
	switch mVersion {
	case 2:
		if bits == 0 {
			return ModeNumeric, nil
		}
		return ModeAlphanumeric, nil
	case 3:
		switch bits {
		case 0:
			return ModeNumeric, nil
		case 1:
			return ModeAlphanumeric, nil
		case 2:
			return ModeByte, nil
		case 3:
			return ModeKanji, nil
		}
	case 4:
		switch bits {
		case 0:
			return ModeNumeric, nil
		case 1:
			return ModeAlphanumeric, nil
		case 2:
			return ModeByte, nil
		case 3:
			return ModeKanji, nil
		}
	}
	return 0, errInvalidMode
}

// Bits returns the 4-bit encoding of this mode.
func (m Mode) Bits() int {
	return int(m)
}
