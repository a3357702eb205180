package gf

// Poly represents a polynomial whose coefficients are elements of a Field.
// Instances are immutable. This is the same shape as the teacher's
// reedsolomon.GenericGFPoly, generalized to go through the Field interface's
// Add/Sub instead of a package-level XOR helper.
type Poly struct {
	field        Field
	coefficients []int
}

// NewPoly creates a new polynomial. Coefficients are ordered from
// highest-degree to lowest-degree.
func NewPoly(field Field, coefficients []int) *Poly {
	if len(coefficients) == 0 {
		panic("gf: empty coefficients")
	}
	if len(coefficients) > 1 && coefficients[0] == 0 {
		firstNonZero := 1
		for firstNonZero < len(coefficients) && coefficients[firstNonZero] == 0 {
			firstNonZero++
		}
		if firstNonZero == len(coefficients) {
			coefficients = []int{0}
		} else {
			newCoeff := make([]int, len(coefficients)-firstNonZero)
			copy(newCoeff, coefficients[firstNonZero:])
			coefficients = newCoeff
		}
	}
	return &Poly{field: field, coefficients: coefficients}
}

// Coefficients returns the polynomial coefficients, highest degree first.
func (p *Poly) Coefficients() []int {
	return p.coefficients
}

// Degree returns the degree of this polynomial.
func (p *Poly) Degree() int {
	return len(p.coefficients) - 1
}

// IsZero returns true if this is the zero polynomial.
func (p *Poly) IsZero() bool {
	return p.coefficients[0] == 0
}

// GetCoefficient returns the coefficient of x^degree.
func (p *Poly) GetCoefficient(degree int) int {
	return p.coefficients[len(p.coefficients)-1-degree]
}

// EvaluateAt evaluates this polynomial at a using Horner's method.
func (p *Poly) EvaluateAt(a int) int {
	if a == 0 {
		return p.GetCoefficient(0)
	}
	if a == 1 {
		result := 0
		for _, c := range p.coefficients {
			result = p.field.Add(result, c)
		}
		return result
	}
	result := p.coefficients[0]
	for i := 1; i < len(p.coefficients); i++ {
		result = p.field.Add(p.field.Multiply(a, result), p.coefficients[i])
	}
	return result
}

// Add returns p+other.
func (p *Poly) Add(other *Poly) *Poly {
	if p.IsZero() {
		return other
	}
	if other.IsZero() {
		return p
	}

	smallerCoeff := p.coefficients
	largerCoeff := other.coefficients
	if len(smallerCoeff) > len(largerCoeff) {
		smallerCoeff, largerCoeff = largerCoeff, smallerCoeff
	}

	sum := make([]int, len(largerCoeff))
	lengthDiff := len(largerCoeff) - len(smallerCoeff)
	copy(sum, largerCoeff[:lengthDiff])

	for i := lengthDiff; i < len(largerCoeff); i++ {
		sum[i] = p.field.Add(smallerCoeff[i-lengthDiff], largerCoeff[i])
	}

	return NewPoly(p.field, sum)
}

// Sub returns p-other.
func (p *Poly) Sub(other *Poly) *Poly {
	if other.IsZero() {
		return p
	}
	if p.IsZero() {
		return other.Negate()
	}

	smallerCoeff := p.coefficients
	largerCoeff := other.coefficients
	swapped := false
	if len(smallerCoeff) > len(largerCoeff) {
		smallerCoeff, largerCoeff = largerCoeff, smallerCoeff
		swapped = true
	}

	diff := make([]int, len(largerCoeff))
	lengthDiff := len(largerCoeff) - len(smallerCoeff)
	for i := 0; i < lengthDiff; i++ {
		v := largerCoeff[i]
		if swapped {
			diff[i] = v
		} else {
			diff[i] = p.field.Sub(0, v)
		}
	}
	for i := lengthDiff; i < len(largerCoeff); i++ {
		if swapped {
			diff[i] = p.field.Sub(largerCoeff[i], smallerCoeff[i-lengthDiff])
		} else {
			diff[i] = p.field.Sub(smallerCoeff[i-lengthDiff], largerCoeff[i])
		}
	}
	return NewPoly(p.field, diff)
}

// Negate returns -p.
func (p *Poly) Negate() *Poly {
	neg := make([]int, len(p.coefficients))
	for i, c := range p.coefficients {
		neg[i] = p.field.Sub(0, c)
	}
	return NewPoly(p.field, neg)
}

// Multiply returns p*other.
func (p *Poly) Multiply(other *Poly) *Poly {
	if p.IsZero() || other.IsZero() {
		return p.field.Zero()
	}
	aCoeff := p.coefficients
	bCoeff := other.coefficients
	product := make([]int, len(aCoeff)+len(bCoeff)-1)
	for i, ac := range aCoeff {
		for j, bc := range bCoeff {
			product[i+j] = p.field.Add(product[i+j], p.field.Multiply(ac, bc))
		}
	}
	return NewPoly(p.field, product)
}

// MultiplyScalar returns p*scalar.
func (p *Poly) MultiplyScalar(scalar int) *Poly {
	if scalar == 0 {
		return p.field.Zero()
	}
	if scalar == 1 {
		return p
	}
	product := make([]int, len(p.coefficients))
	for i, c := range p.coefficients {
		product[i] = p.field.Multiply(c, scalar)
	}
	return NewPoly(p.field, product)
}

// MultiplyByMonomial returns p * coefficient*x^degree.
func (p *Poly) MultiplyByMonomial(degree, coefficient int) *Poly {
	if degree < 0 {
		panic("gf: negative degree")
	}
	if coefficient == 0 {
		return p.field.Zero()
	}
	product := make([]int, len(p.coefficients)+degree)
	for i, c := range p.coefficients {
		product[i] = p.field.Multiply(c, coefficient)
	}
	return NewPoly(p.field, product)
}

// Divide divides p by other, returning [quotient, remainder].
func (p *Poly) Divide(other *Poly) [2]*Poly {
	if other.IsZero() {
		panic("gf: divide by zero")
	}

	quotient := p.field.Zero()
	remainder := p

	denominatorLeadingTerm := other.GetCoefficient(other.Degree())
	inverseDLT := p.field.Inverse(denominatorLeadingTerm)

	for remainder.Degree() >= other.Degree() && !remainder.IsZero() {
		degreeDiff := remainder.Degree() - other.Degree()
		scale := p.field.Multiply(remainder.GetCoefficient(remainder.Degree()), inverseDLT)
		term := other.MultiplyByMonomial(degreeDiff, scale)
		iterQuot := p.field.BuildMonomial(degreeDiff, scale)
		quotient = quotient.Add(iterQuot)
		remainder = remainder.Sub(term)
	}

	return [2]*Poly{quotient, remainder}
}
