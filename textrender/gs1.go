package textrender

// gs1FixedLength holds the well-known GS1 application identifiers whose
// value has a fixed digit length per the GS1 General Specifications,
// covering the identifiers most barcode readers actually encounter
// (shipping/trade identifiers and date fields). Every other AI is treated
// as variable-length, terminated by an explicit FNC1/GS separator (0x1D)
// or the end of data — the general case GS1 itself falls back to.
var gs1FixedLength = map[string]int{
	"00":   18, // SSCC
	"01":   14, // GTIN
	"02":   14, // CONTENT (GTIN of contained items)
	"11":   6,  // production date (YYMMDD)
	"12":   6,  // due date
	"13":   6,  // packaging date
	"15":   6,  // best-before date
	"16":   6,  // sell-by date
	"17":   6,  // expiration date
	"20":   2,  // product variant
	"8005": 6,  // price per unit of measure
}

// gs1AIValueLength reports the fixed digit length for ai, if any. The
// 310n-316n and 320n-369n families all carry a fixed 6-digit value (the
// 4th character is only a decimal-point placement indicator), so they're
// matched structurally instead of being listed one by one.
func gs1AIValueLength(ai string) (int, bool) {
	if n, ok := gs1FixedLength[ai]; ok {
		return n, true
	}
	if len(ai) == 4 && ai[0] == '3' && ai[1] >= '1' && ai[1] <= '6' {
		return 6, true
	}
	return 0, false
}

func isAllDigits(b []byte) bool {
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// splitGS1AI peels the application identifier off the front of data. A
// 4-digit prefix is tried first (the 310n/320n families and 8005 all need
// it), falling back to the 2-digit AI that covers everything else GS1
// commonly carries.
func splitGS1AI(data []byte) (ai string, rest []byte, ok bool) {
	if len(data) >= 4 && isAllDigits(data[:4]) {
		candidate := string(data[:4])
		if _, fixed := gs1AIValueLength(candidate); fixed {
			return candidate, data[4:], true
		}
	}
	if len(data) >= 2 && isAllDigits(data[:2]) {
		return string(data[:2]), data[2:], true
	}
	return "", nil, false
}

func indexGS(data []byte) int {
	for i, b := range data {
		if b == 0x1D {
			return i
		}
	}
	return -1
}

// renderGS1HRI walks a GS1 byte stream AI by AI, rendering each as
// "(AI)value" (spec.md §4.7 HRI). Fixed-length AIs consume exactly their
// declared digit count; variable-length AIs consume up to the next GS
// separator or the end of data.
func renderGS1HRI(bytes []byte) string {
	var sb []byte
	data := bytes
	for len(data) > 0 {
		ai, rest, ok := splitGS1AI(data)
		if !ok {
			sb = append(sb, data...)
			break
		}

		var value []byte
		if length, fixed := gs1AIValueLength(ai); fixed {
			if length > len(rest) {
				length = len(rest)
			}
			value = rest[:length]
			data = rest[length:]
			if len(data) > 0 && data[0] == 0x1D {
				data = data[1:]
			}
		} else if idx := indexGS(rest); idx >= 0 {
			value = rest[:idx]
			data = rest[idx+1:]
		} else {
			value = rest
			data = nil
		}

		sb = append(sb, '(')
		sb = append(sb, ai...)
		sb = append(sb, ')')
		sb = append(sb, value...)
	}
	return string(sb)
}
