package zxinggo

import "github.com/barscan/symcore/textrender"

// EANAddOnMode controls whether a reader looks for an EAN/UPC add-on
// extension alongside the main symbol (spec.md §6.1 `ean_add_on`).
type EANAddOnMode int

const (
	EANAddOnNever EANAddOnMode = iota
	EANAddOnIfPresent
	EANAddOnRequired
)

// BinarizerKind selects the thresholding strategy used to turn a source
// image's luminance into black/white before detection (spec.md §6.1
// `binarizer`). No function in this package reads it: the Binarizer a
// caller constructs and passes to NewBinaryBitmap decides the thresholding.
type BinarizerKind int

const (
	BinarizerLocalAverage BinarizerKind = iota
	BinarizerGlobalHistogram
	BinarizerFixedThreshold
	BinarizerBoolCast
)

// DecodeOptions configures barcode decoding behavior (spec.md §6.1
// `ReaderOptions`).
type DecodeOptions struct {
	// PureBarcode hints that the image contains only the barcode with minimal
	// border and no rotation (`is_pure`).
	PureBarcode bool

	// TryHarder enables spending more time looking for barcodes
	// (`try_harder`).
	TryHarder bool

	// TryRotate names detection on a rotated copy of the image
	// (`try_rotate`). No reader in this module reads it, so it has no effect.
	TryRotate bool

	// TryDownscale names detection on a downscaled copy of the image
	// (`try_downscale`). No reader in this module reads it, so it has no
	// effect.
	TryDownscale bool

	// PossibleFormats limits which formats to look for (`formats`).
	PossibleFormats []Format

	// CharacterSet specifies the character set to use when decoding
	// (`character_set`): a hinted fallback for legacy symbols without ECI.
	CharacterSet string

	// TextMode selects how a Result's RenderText method formats decoded
	// text (`text_mode`).
	TextMode textrender.TextMode

	// AllowedLengths restricts the set of valid barcode lengths for 1D formats.
	AllowedLengths []int

	// AssumeCode39CheckDigit assumes Code 39 includes a check digit.
	AssumeCode39CheckDigit bool

	// AssumeGS1 assumes data is GS1 formatted.
	AssumeGS1 bool

	// AllowedEANExtensions lists allowed EAN extension lengths. No reader in
	// this module reads it, so it has no effect.
	AllowedEANExtensions []int

	// EANAddOn names add-on extension handling (`ean_add_on`). No reader in
	// this module reads it, so it has no effect.
	EANAddOn EANAddOnMode

	// AlsoInverted enables checking for barcodes on inverted images
	// (`try_invert`).
	AlsoInverted bool

	// ReturnErrors names surfacing Format/Checksum failures as results
	// carrying an error (`return_errors`). No reader in this module reads
	// it; a failed decode is always returned as an error.
	ReturnErrors bool

	// MaxSymbols names a cap on how many symbols a MultipleBarcodeReader
	// returns (`max_symbols`). No reader in this module reads it; the
	// multi readers return every symbol they decode.
	MaxSymbols int

	// Binarizer names a thresholding strategy (`binarizer`). No code in
	// this module reads it, so it has no effect.
	Binarizer BinarizerKind
}

// Reader decodes barcodes from a BinaryBitmap.
type Reader interface {
	// Decode attempts to decode a barcode from the image.
	Decode(image *BinaryBitmap, opts *DecodeOptions) (*Result, error)

	// Reset resets any internal state.
	Reset()
}
