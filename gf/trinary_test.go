package gf

import "testing"

func TestTrinaryFieldSize(t *testing.T) {
	if DotCodeField.Size() != 243 {
		t.Errorf("got size %d, want 243", DotCodeField.Size())
	}
}

func TestTrinaryFieldAddSubDoNotCoincide(t *testing.T) {
	// Characteristic 3: unlike the binary fields, Add and Sub must differ
	// for operands where XOR-style behavior would otherwise be mistaken for
	// correct arithmetic.
	a, b := 5, 7
	if DotCodeField.Add(a, b) == DotCodeField.Sub(a, b) {
		t.Errorf("Add(%d,%d) == Sub(%d,%d) == %d; expected a genuinely trinary field to differ here",
			a, b, a, b, DotCodeField.Add(a, b))
	}
}

func TestTrinaryFieldAddThenSubIsIdentity(t *testing.T) {
	for a := 0; a < 243; a += 7 {
		for b := 0; b < 243; b += 11 {
			sum := DotCodeField.Add(a, b)
			if got := DotCodeField.Sub(sum, b); got != a {
				t.Fatalf("Sub(Add(%d,%d), %d) = %d, want %d", a, b, b, got, a)
			}
		}
	}
}

func TestTrinaryFieldMultiplyIdentity(t *testing.T) {
	for a := 1; a < 243; a += 5 {
		if got := DotCodeField.Multiply(a, 1); got != a {
			t.Errorf("Multiply(%d, 1) = %d, want %d", a, got, a)
		}
	}
	if got := DotCodeField.Multiply(0, 17); got != 0 {
		t.Errorf("Multiply(0, 17) = %d, want 0", got)
	}
}

func TestTrinaryFieldMultiplyByInverseIsOne(t *testing.T) {
	for a := 1; a < 243; a++ {
		inv := DotCodeField.Inverse(a)
		if got := DotCodeField.Multiply(a, inv); got != 1 {
			t.Fatalf("Multiply(%d, Inverse(%d)=%d) = %d, want 1", a, a, inv, got)
		}
	}
}

func TestTrinaryFieldExpLogRoundTrip(t *testing.T) {
	for i := 0; i < 242; i++ {
		v := DotCodeField.Exp(i)
		if v == 0 {
			t.Fatalf("Exp(%d) == 0, should never happen for a primitive element", i)
		}
		if got := DotCodeField.Log(v); got != i {
			t.Errorf("Log(Exp(%d)=%d) = %d, want %d", i, v, got, i)
		}
	}
}

func TestTrinaryFieldExpWrapsModPeriod(t *testing.T) {
	if DotCodeField.Exp(0) != DotCodeField.Exp(242) {
		t.Errorf("Exp(0) = %d, Exp(242) = %d; exponents should wrap mod 242",
			DotCodeField.Exp(0), DotCodeField.Exp(242))
	}
}

func TestTrinaryFieldBuildMonomial(t *testing.T) {
	p := DotCodeField.BuildMonomial(3, 2)
	if got := p.EvaluateAt(1); got != 2 {
		t.Errorf("monomial 2x^3 at x=1: got %d, want 2", got)
	}
	zero := DotCodeField.BuildMonomial(4, 0)
	if zero != DotCodeField.Zero() {
		t.Error("BuildMonomial with a zero coefficient should return the field's Zero poly")
	}
}
