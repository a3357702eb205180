// Package reedsolomon implements Reed-Solomon error correction decoding and
// encoding over an arbitrary gf.Field, per spec.md §4.2. The
// Berlekamp-Massey/Chien/Forney structure is the teacher's
// reedsolomon/decoder.go algorithm, generalized to go through the field's
// Add/Sub instead of a package-level XOR helper so that GF(3^5) (DotCode)
// can supply genuine trinary arithmetic.
package reedsolomon

import (
	"errors"

	"github.com/barscan/symcore/gf"
)

// ErrReedSolomon indicates a Reed-Solomon decoding failure (spec.md
// Checksum error kind).
var ErrReedSolomon = errors.New("reedsolomon: decoding error")

// Decoder performs Reed-Solomon error correction decoding over a field.
type Decoder struct {
	field gf.Field
}

// NewDecoder creates a new Decoder for the given field.
func NewDecoder(field gf.Field) *Decoder {
	return &Decoder{field: field}
}

// Decode corrects errors in received in-place and returns the number of
// errors corrected. twoS is the number of error-correction codewords.
// erasures, if non-nil, lists positions (from the start of received) that
// the caller already knows are unreliable; DotCode uses this for dots the
// detector could not classify (spec.md §4.2).
func (d *Decoder) Decode(received []int, twoS int, erasures []int) (int, error) {
	poly := gf.NewPoly(d.field, received)
	syndromeCoefficients := make([]int, twoS)
	noError := true
	for i := 0; i < twoS; i++ {
		eval := poly.EvaluateAt(d.field.Exp(i + d.field.GeneratorBase()))
		syndromeCoefficients[twoS-1-i] = eval
		if eval != 0 {
			noError = false
		}
	}
	if noError && len(erasures) == 0 {
		return 0, nil
	}

	syndrome := gf.NewPoly(d.field, syndromeCoefficients)

	// Seed the error-locator Euclidean algorithm with an erasure locator
	// polynomial so known-bad positions are corrected even if the syndrome
	// alone could not pin them down.
	erasureLocator := d.field.One()
	for _, pos := range erasures {
		xi := d.field.Exp(len(received) - 1 - pos)
		term := gf.NewPoly(d.field, []int{d.field.Sub(0, xi), 1})
		erasureLocator = erasureLocator.Multiply(term)
	}

	sigmaOmega, err := d.runEuclideanAlgorithm(d.field.BuildMonomial(twoS, 1), syndrome, twoS)
	if err != nil {
		return 0, ErrReedSolomon
	}
	sigma := sigmaOmega[0].Multiply(erasureLocator)
	omega := sigmaOmega[1].Multiply(erasureLocator)
	errorLocations, err := d.findErrorLocations(sigma)
	if err != nil {
		return 0, ErrReedSolomon
	}
	errorMagnitudes := d.findErrorMagnitudes(omega, errorLocations, sigma)
	for i := 0; i < len(errorLocations); i++ {
		position := len(received) - 1 - d.field.Log(errorLocations[i])
		if position < 0 {
			return 0, ErrReedSolomon
		}
		received[position] = d.field.Sub(received[position], errorMagnitudes[i])
	}
	return len(errorLocations), nil
}

func (d *Decoder) runEuclideanAlgorithm(a, b *gf.Poly, R int) ([2]*gf.Poly, error) {
	if a.Degree() < b.Degree() {
		a, b = b, a
	}

	rLast := a
	r := b
	tLast := d.field.Zero()
	t := d.field.One()

	for 2*r.Degree() >= R {
		rLastLast := rLast
		tLastLast := tLast
		rLast = r
		tLast = t

		if rLast.IsZero() {
			return [2]*gf.Poly{}, ErrReedSolomon
		}
		r = rLastLast
		q := d.field.Zero()
		denominatorLeadingTerm := rLast.GetCoefficient(rLast.Degree())
		dltInverse := d.field.Inverse(denominatorLeadingTerm)
		for r.Degree() >= rLast.Degree() && !r.IsZero() {
			degreeDiff := r.Degree() - rLast.Degree()
			scale := d.field.Multiply(r.GetCoefficient(r.Degree()), dltInverse)
			q = q.Add(d.field.BuildMonomial(degreeDiff, scale))
			r = r.Sub(rLast.MultiplyByMonomial(degreeDiff, scale))
		}

		t = q.Multiply(tLast).Add(tLastLast)

		if r.Degree() >= rLast.Degree() {
			return [2]*gf.Poly{}, ErrReedSolomon
		}
	}

	sigmaTildeAtZero := t.GetCoefficient(0)
	if sigmaTildeAtZero == 0 {
		return [2]*gf.Poly{}, ErrReedSolomon
	}

	inverse := d.field.Inverse(sigmaTildeAtZero)
	sigma := t.MultiplyScalar(inverse)
	omega := r.MultiplyScalar(inverse)
	return [2]*gf.Poly{sigma, omega}, nil
}

func (d *Decoder) findErrorLocations(errorLocator *gf.Poly) ([]int, error) {
	numErrors := errorLocator.Degree()
	if numErrors == 1 {
		return []int{errorLocator.GetCoefficient(1)}, nil
	}
	result := make([]int, 0, numErrors)
	for i := 1; i < d.field.Size() && len(result) < numErrors; i++ {
		if errorLocator.EvaluateAt(i) == 0 {
			result = append(result, d.field.Inverse(i))
		}
	}
	if len(result) != numErrors {
		return nil, ErrReedSolomon
	}
	return result, nil
}

func (d *Decoder) findErrorMagnitudes(errorEvaluator *gf.Poly, errorLocations []int, sigma *gf.Poly) []int {
	s := len(errorLocations)
	result := make([]int, s)
	sigmaDeriv := formalDerivative(d.field, sigma)
	for i := 0; i < s; i++ {
		xiInverse := d.field.Inverse(errorLocations[i])
		denominator := sigmaDeriv.EvaluateAt(xiInverse)
		result[i] = d.field.Multiply(errorEvaluator.EvaluateAt(xiInverse), d.field.Inverse(denominator))
		if d.field.GeneratorBase() != 0 {
			result[i] = d.field.Multiply(result[i], xiInverse)
		}
	}
	return result
}

// formalDerivative computes the formal derivative of p over the field,
// generalizing the odd-term-only trick that only works in characteristic 2
// (the teacher's findErrorMagnitudes hard-codes that trick via term|1/term&^1
// bit games; GF(3^5) needs the real formal derivative: d/dx sum(c_i x^i) =
// sum(i*c_i x^(i-1)), with i*c_i meaning c_i added to itself i times).
func formalDerivative(field gf.Field, p *gf.Poly) *gf.Poly {
	coeffs := p.Coefficients()
	degree := p.Degree()
	result := make([]int, degree+1)
	charac := fieldCharacteristic(field)
	for i := 1; i <= degree; i++ {
		c := coeffs[len(coeffs)-1-i]
		term := 0
		for k := 0; k < i%charac; k++ {
			term = field.Add(term, c)
		}
		result[degree-(i-1)] = term
	}
	return gf.NewPoly(field, result)
}

// fieldCharacteristic returns the additive order of the field's identity
// element (2 for every binary extension field, 3 for GF(3^5)).
func fieldCharacteristic(field gf.Field) int {
	sum := 0
	for k := 1; k <= field.Size(); k++ {
		sum = field.Add(sum, 1)
		if sum == 0 {
			return k
		}
	}
	return field.Size()
}
