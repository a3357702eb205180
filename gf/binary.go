package gf

import "fmt"

// BinaryField is a GF(2^m) extension field, built the way the teacher's
// reedsolomon.GenericGF builds one: an exp/log table generated from the
// primitive polynomial, doubling (i.e. multiplying by the generator x=2)
// at each step and reducing modulo the primitive whenever the value
// overflows the field size. Add and Sub both reduce to XOR, since
// characteristic-2 fields have no distinct subtraction.
type BinaryField struct {
	expTable      []int
	logTable      []int
	zero          *Poly
	one           *Poly
	size          int
	primitive     int
	generatorBase int
}

// NewBinaryField constructs a GF(size) field from the given primitive
// polynomial (size must be a power of 2).
func NewBinaryField(primitive, size, generatorBase int) *BinaryField {
	f := &BinaryField{
		primitive:     primitive,
		size:          size,
		generatorBase: generatorBase,
		expTable:      make([]int, size),
		logTable:      make([]int, size),
	}

	x := 1
	for i := 0; i < size; i++ {
		f.expTable[i] = x
		x *= 2
		if x >= size {
			x ^= primitive
			x &= size - 1
		}
	}
	for i := 0; i < size-1; i++ {
		f.logTable[f.expTable[i]] = i
	}

	f.zero = NewPoly(f, []int{0})
	f.one = NewPoly(f, []int{1})

	return f
}

func (f *BinaryField) Size() int          { return f.size }
func (f *BinaryField) GeneratorBase() int { return f.generatorBase }

// Add and Sub both reduce to XOR in a characteristic-2 field.
func (f *BinaryField) Add(a, b int) int { return a ^ b }
func (f *BinaryField) Sub(a, b int) int { return a ^ b }

func (f *BinaryField) Multiply(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return f.expTable[(f.logTable[a]+f.logTable[b])%(f.size-1)]
}

func (f *BinaryField) Inverse(a int) int {
	if a == 0 {
		panic("gf: inverse(0)")
	}
	return f.expTable[f.size-f.logTable[a]-1]
}

func (f *BinaryField) Exp(a int) int { return f.expTable[a] }

func (f *BinaryField) Log(a int) int {
	if a == 0 {
		panic("gf: log(0)")
	}
	return f.logTable[a]
}

func (f *BinaryField) Zero() *Poly { return f.zero }
func (f *BinaryField) One() *Poly  { return f.one }

func (f *BinaryField) BuildMonomial(degree, coefficient int) *Poly {
	if degree < 0 {
		panic("gf: negative degree")
	}
	if coefficient == 0 {
		return f.zero
	}
	coefficients := make([]int, degree+1)
	coefficients[0] = coefficient
	return NewPoly(f, coefficients)
}

func (f *BinaryField) String() string {
	return fmt.Sprintf("GF(0x%x,%d)", f.primitive, f.size)
}

// Predefined binary fields, one per symbology that uses Reed-Solomon over
// GF(2^m). Values are grounded on the teacher's reedsolomon/gf.go table.
var (
	QRCodeField256     = NewBinaryField(0x011D, 256, 0)  // x^8+x^4+x^3+x^2+1
	DataMatrixField256 = NewBinaryField(0x012D, 256, 1)  // x^8+x^5+x^3+x^2+1
	AztecData12        = NewBinaryField(0x1069, 4096, 1)
	AztecData10        = NewBinaryField(0x0409, 1024, 1)
	AztecData8         = DataMatrixField256
	AztecData6         = NewBinaryField(0x0043, 64, 1)
	AztecParam         = NewBinaryField(0x0013, 16, 1)
	MaxiCodeField64    = AztecData6
	// HanXinField16 protects the 28-bit function-information block; it
	// shares GF(16) construction with AztecParam per spec.md §4.2.
	HanXinField16 = AztecParam
	// HanXinField256 is used for Han Xin's main data-codeword RS blocks.
	HanXinField256 = QRCodeField256
)
