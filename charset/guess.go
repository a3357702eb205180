package charset

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// encodingByName resolves a Go/ECI encoding name to an x/text Encoding,
// covering the codepages a barcode's ECI segments can name (spec.md §4.7
// "ECI table"). Names not covered here fall through to a no-op transcode in
// DecodeBytes, matching the teacher's original ISO-8859-1/ASCII fallthrough.
func encodingByName(name string) encoding.Encoding {
	switch name {
	case "Shift_JIS", "SJIS":
		return japanese.ShiftJIS
	case "GB18030", "GB2312", "GBK", "EUC_CN":
		return simplifiedchinese.GB18030
	case "Big5":
		return traditionalchinese.Big5
	case "EUC-KR", "EUC_KR":
		return korean.EUCKR
	case "Windows1250", "windows-1250", "Cp1250":
		return charmap.Windows1250
	case "Windows1251", "windows-1251", "Cp1251":
		return charmap.Windows1251
	case "Windows1252", "windows-1252", "Cp1252":
		return charmap.Windows1252
	case "Windows1256", "windows-1256", "Cp1256":
		return charmap.Windows1256
	case "IBM437", "Cp437":
		return charmap.CodePage437
	case "ISO8859_2", "ISO-8859-2":
		return charmap.ISO8859_2
	case "ISO8859_3", "ISO-8859-3":
		return charmap.ISO8859_3
	case "ISO8859_4", "ISO-8859-4":
		return charmap.ISO8859_4
	case "ISO8859_5", "ISO-8859-5":
		return charmap.ISO8859_5
	case "ISO8859_6", "ISO-8859-6":
		return charmap.ISO8859_6
	case "ISO8859_7", "ISO-8859-7":
		return charmap.ISO8859_7
	case "ISO8859_8", "ISO-8859-8":
		return charmap.ISO8859_8
	case "ISO8859_9", "ISO-8859-9":
		return charmap.ISO8859_9
	case "ISO8859_10", "ISO-8859-10":
		return charmap.ISO8859_10
	case "ISO8859_13", "ISO-8859-13":
		return charmap.ISO8859_13
	case "ISO8859_14", "ISO-8859-14":
		return charmap.ISO8859_14
	case "ISO8859_15", "ISO-8859-15":
		return charmap.ISO8859_15
	case "ISO8859_16", "ISO-8859-16":
		return charmap.ISO8859_16
	case "UTF-16BE", "UnicodeBig":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case "UTF-16LE", "UnicodeLittle":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case "UTF-32BE":
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
	case "UTF-32LE":
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
	default:
		return nil
	}
}

// DecodeBytes converts bytes from the given encoding to UTF-8.
// Returns the original bytes if the encoding is already UTF-8/ASCII/ISO-8859-1
// or if conversion fails.
func DecodeBytes(data []byte, encodingName string) string {
	if enc := encodingByName(encodingName); enc != nil {
		decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
		if err == nil {
			return string(decoded)
		}
	}
	return string(data)
}

// GuessEncoding attempts to guess the encoding of a byte sequence.
// Returns characterSet when it is non-empty; otherwise "UTF-16" (byte-order
// mark), "UTF-8", "Shift_JIS" or "ISO-8859-1", with "UTF-8" as the fallback.
func GuessEncoding(bytes []byte, characterSet string) string {
	if characterSet != "" {
		return characterSet
	}

	// First try UTF-16 BOM
	if len(bytes) > 2 &&
		((bytes[0] == 0xFE && bytes[1] == 0xFF) ||
			(bytes[0] == 0xFF && bytes[1] == 0xFE)) {
		return "UTF-16"
	}

	length := len(bytes)
	canBeISO88591 := true
	canBeShiftJIS := true
	canBeUTF8 := true
	utf8BytesLeft := 0
	utf2BytesChars := 0
	utf3BytesChars := 0
	utf4BytesChars := 0
	sjisBytesLeft := 0
	sjisKatakanaChars := 0
	sjisCurKatakanaWordLength := 0
	sjisCurDoubleBytesWordLength := 0
	sjisMaxKatakanaWordLength := 0
	sjisMaxDoubleBytesWordLength := 0
	isoHighOther := 0

	utf8bom := len(bytes) > 3 &&
		bytes[0] == 0xEF && bytes[1] == 0xBB && bytes[2] == 0xBF

	for i := 0; i < length && (canBeISO88591 || canBeShiftJIS || canBeUTF8); i++ {
		value := int(bytes[i]) & 0xFF

		// UTF-8 stuff
		if canBeUTF8 {
			if utf8BytesLeft > 0 {
				if (value & 0x80) == 0 {
					canBeUTF8 = false
				} else {
					utf8BytesLeft--
				}
			} else if (value & 0x80) != 0 {
				if (value & 0x40) == 0 {
					canBeUTF8 = false
				} else {
					utf8BytesLeft++
					if (value & 0x20) == 0 {
						utf2BytesChars++
					} else {
						utf8BytesLeft++
						if (value & 0x10) == 0 {
							utf3BytesChars++
						} else {
							utf8BytesLeft++
							if (value & 0x08) == 0 {
								utf4BytesChars++
							} else {
								canBeUTF8 = false
							}
						}
					}
				}
			}
		}

		// ISO-8859-1 stuff
		if canBeISO88591 {
			if value > 0x7F && value < 0xA0 {
				canBeISO88591 = false
			} else if value > 0x9F && (value < 0xC0 || value == 0xD7 || value == 0xF7) {
				isoHighOther++
			}
		}

		// Shift_JIS stuff
		if canBeShiftJIS {
			if sjisBytesLeft > 0 {
				if value < 0x40 || value == 0x7F || value > 0xFC {
					canBeShiftJIS = false
				} else {
					sjisBytesLeft--
				}
			} else if value == 0x80 || value == 0xA0 || value > 0xEF {
				canBeShiftJIS = false
			} else if value > 0xA0 && value < 0xE0 {
				sjisKatakanaChars++
				sjisCurDoubleBytesWordLength = 0
				sjisCurKatakanaWordLength++
				if sjisCurKatakanaWordLength > sjisMaxKatakanaWordLength {
					sjisMaxKatakanaWordLength = sjisCurKatakanaWordLength
				}
			} else if value > 0x7F {
				sjisBytesLeft++
				sjisCurKatakanaWordLength = 0
				sjisCurDoubleBytesWordLength++
				if sjisCurDoubleBytesWordLength > sjisMaxDoubleBytesWordLength {
					sjisMaxDoubleBytesWordLength = sjisCurDoubleBytesWordLength
				}
			} else {
				sjisCurKatakanaWordLength = 0
				sjisCurDoubleBytesWordLength = 0
			}
		}
	}

	if canBeUTF8 && utf8BytesLeft > 0 {
		canBeUTF8 = false
	}
	if canBeShiftJIS && sjisBytesLeft > 0 {
		canBeShiftJIS = false
	}

	if canBeUTF8 && (utf8bom || utf2BytesChars+utf3BytesChars+utf4BytesChars > 0) {
		return "UTF-8"
	}
	if canBeShiftJIS && (sjisMaxKatakanaWordLength >= 3 || sjisMaxDoubleBytesWordLength >= 3) {
		return "Shift_JIS"
	}
	if canBeISO88591 && canBeShiftJIS {
		if (sjisMaxKatakanaWordLength == 2 && sjisKatakanaChars == 2) || isoHighOther*10 >= length {
			return "Shift_JIS"
		}
		return "ISO-8859-1"
	}
	if canBeISO88591 {
		return "ISO-8859-1"
	}
	if canBeShiftJIS {
		return "Shift_JIS"
	}
	if canBeUTF8 {
		return "UTF-8"
	}
	return "UTF-8" // fallback
}
