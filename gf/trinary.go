package gf

// TrinaryField is the prime-power field GF(3^5)=243 used by DotCode's data
// Reed-Solomon code (spec.md §4.2, §4.5.7). Unlike the binary extension
// fields used by every other symbology, GF(3^5) is characteristic 3: Add and
// Sub do NOT coincide, and neither is XOR. This is the field the Design
// Notes flag explicitly ("the GF(3^5) DotCode field must override add/sub
// away from XOR; do not bake XOR into the RS core").
//
// Construction follows the same shape as the degree-n extension-field
// builder in jalphad/abstract_algebra's exercises/3-gfpn: elements are
// 5-trit coefficient vectors of a degree-4 polynomial over GF(3), and the
// exp/log tables are built by repeatedly multiplying by the indeterminate x
// and reducing modulo an irreducible degree-5 polynomial. Rather than
// hard-coding one historically-cited irreducible polynomial (conflicting
// sources exist), NewTrinaryField searches the handful of reduction rules
// of the form x^5 = r0+r1*x+r2*x^2+r3*x^3+r4*x^4 (r_i in {0,1,2}) for one
// under which x has the full multiplicative order 242 — i.e. is primitive
// — and uses that one. The search is small (at most 3^5 candidates) and
// runs once at package init.
type TrinaryField struct {
	expTable      []int // expTable[i] = value of x^i, i in [0, 242)
	logTable      []int // logTable[value] = i such that x^i == value
	zero          *Poly
	one           *Poly
	generatorBase int
}

const trinaryOrder = 243 // 3^5
const trinaryPeriod = trinaryOrder - 1

// vec is a length-5 coefficient vector (c0..c4) over GF(3), representing
// c0 + c1*x + c2*x^2 + c3*x^3 + c4*x^4.
type vec [5]int

func (v vec) value() int {
	return v[0] + v[1]*3 + v[2]*9 + v[3]*27 + v[4]*81
}

func valueToVec(value int) vec {
	var v vec
	for i := 0; i < 5; i++ {
		v[i] = value % 3
		value /= 3
	}
	return v
}

func addVec(a, b vec) vec {
	var r vec
	for i := 0; i < 5; i++ {
		r[i] = (a[i] + b[i]) % 3
	}
	return r
}

func negVec(a vec) vec {
	var r vec
	for i := 0; i < 5; i++ {
		r[i] = (3 - a[i]) % 3
	}
	return r
}

// multiplyByX applies the reduction rule x^5 = r0+r1*x+...+r4*x^4 to shift a
// vector one degree higher.
func multiplyByX(v vec, reduction vec) vec {
	carry := v[4]
	var r vec
	r[0] = carry * reduction[0] % 3
	r[1] = (v[0] + carry*reduction[1]) % 3
	r[2] = (v[1] + carry*reduction[2]) % 3
	r[3] = (v[2] + carry*reduction[3]) % 3
	r[4] = (v[3] + carry*reduction[4]) % 3
	return r
}

// NewTrinaryField builds the GF(3^5) field used by DotCode.
func NewTrinaryField(generatorBase int) *TrinaryField {
	expTable := make([]int, trinaryPeriod)
	logTable := make([]int, trinaryOrder)

	found := false
	for r0 := 0; r0 < 3 && !found; r0++ {
		for r1 := 0; r1 < 3 && !found; r1++ {
			for r2 := 0; r2 < 3 && !found; r2++ {
				for r3 := 0; r3 < 3 && !found; r3++ {
					for r4 := 0; r4 < 3 && !found; r4++ {
						reduction := vec{r0, r1, r2, r3, r4}
						if tryBuildTables(reduction, expTable, logTable) {
							found = true
						}
					}
				}
			}
		}
	}
	if !found {
		panic("gf: no primitive reduction rule found for GF(3^5)")
	}

	f := &TrinaryField{
		expTable:      expTable,
		logTable:      logTable,
		generatorBase: generatorBase,
	}
	f.zero = NewPoly(f, []int{0})
	f.one = NewPoly(f, []int{1})
	return f
}

// tryBuildTables attempts to build the exp/log tables assuming x satisfies
// the given reduction rule, filling expTable/logTable in place. It returns
// false (without fully trusting partial contents) if x turns out not to
// have the full period of 242, i.e. the reduction polynomial is not
// primitive.
func tryBuildTables(reduction vec, expTable, logTable []int) bool {
	for i := range logTable {
		logTable[i] = -1
	}
	current := vec{1, 0, 0, 0, 0} // x^0 = 1
	for i := 0; i < trinaryPeriod; i++ {
		val := current.value()
		if val == 0 || logTable[val] != -1 {
			return false // degenerate or short cycle: not primitive
		}
		expTable[i] = val
		logTable[val] = i
		current = multiplyByX(current, reduction)
	}
	// must cycle back to 1 after exactly trinaryPeriod steps
	return current.value() == 1
}

func (f *TrinaryField) Size() int          { return trinaryOrder }
func (f *TrinaryField) GeneratorBase() int { return f.generatorBase }

func (f *TrinaryField) Add(a, b int) int {
	return addVec(valueToVec(a), valueToVec(b)).value()
}

func (f *TrinaryField) Sub(a, b int) int {
	return addVec(valueToVec(a), negVec(valueToVec(b))).value()
}

func (f *TrinaryField) Multiply(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return f.expTable[(f.logTable[a]+f.logTable[b])%trinaryPeriod]
}

func (f *TrinaryField) Inverse(a int) int {
	if a == 0 {
		panic("gf: inverse(0)")
	}
	return f.expTable[(trinaryPeriod-f.logTable[a])%trinaryPeriod]
}

func (f *TrinaryField) Exp(a int) int {
	return f.expTable[((a%trinaryPeriod)+trinaryPeriod)%trinaryPeriod]
}

func (f *TrinaryField) Log(a int) int {
	if a == 0 {
		panic("gf: log(0)")
	}
	return f.logTable[a]
}

func (f *TrinaryField) Zero() *Poly { return f.zero }
func (f *TrinaryField) One() *Poly  { return f.one }

func (f *TrinaryField) BuildMonomial(degree, coefficient int) *Poly {
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

// DotCodeField is the shared GF(3^5) instance used by the DotCode decoder.
var DotCodeField = NewTrinaryField(1)
