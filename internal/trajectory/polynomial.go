package trajectory

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// axisPolynomial is one scalar trajectory over [0, duration]:
//
//	p(t) = a + b*t + c*t^2 + d*t^3 + e*t^4 + f*t^5
//
// Coefficients are solved once per session from the boundary values; sampling
// is O(1) with no allocation.
type axisPolynomial struct {
	a, b, c, d, e, f float64
}

// update solves the two-point boundary-value fit for the selected spline
// method. The quintic and cubic systems are solved as dense linear systems in
// the duration T; both are nonsingular for T > 0, which the interpolator
// guarantees before calling here.
func (p *axisPolynomial) update(bc boundary) error {
	T := bc.duration
	*p = axisPolynomial{}

	switch bc.spline {
	case SplineLinear:
		p.a = bc.startPos
		p.b = (bc.goalPos - bc.startPos) / T
		return nil

	case SplineCubic:
		// p(0), p'(0), p(T), p'(T).
		A := mat.NewDense(4, 4, []float64{
			1, 0, 0, 0,
			0, 1, 0, 0,
			1, T, T * T, T * T * T,
			0, 1, 2 * T, 3 * T * T,
		})
		rhs := mat.NewVecDense(4, []float64{bc.startPos, bc.startVel, bc.goalPos, bc.goalVel})
		var x mat.VecDense
		if err := x.SolveVec(A, rhs); err != nil {
			return fmt.Errorf("cubic fit: %w", err)
		}
		p.a, p.b, p.c, p.d = x.AtVec(0), x.AtVec(1), x.AtVec(2), x.AtVec(3)
		return nil

	default:
		// p(0), p'(0), p''(0), p(T), p'(T), p''(T).
		T2, T3 := T*T, T*T*T
		T4, T5 := T2*T2, T2*T3
		A := mat.NewDense(6, 6, []float64{
			1, 0, 0, 0, 0, 0,
			0, 1, 0, 0, 0, 0,
			0, 0, 2, 0, 0, 0,
			1, T, T2, T3, T4, T5,
			0, 1, 2 * T, 3 * T2, 4 * T3, 5 * T4,
			0, 0, 2, 6 * T, 12 * T2, 20 * T3,
		})
		rhs := mat.NewVecDense(6, []float64{
			bc.startPos, bc.startVel, bc.startAcc,
			bc.goalPos, bc.goalVel, bc.goalAcc,
		})
		var x mat.VecDense
		if err := x.SolveVec(A, rhs); err != nil {
			return fmt.Errorf("quintic fit: %w", err)
		}
		p.a, p.b, p.c = x.AtVec(0), x.AtVec(1), x.AtVec(2)
		p.d, p.e, p.f = x.AtVec(3), x.AtVec(4), x.AtVec(5)
		return nil
	}
}

// sample returns position, velocity and acceleration at absolute time t.
func (p *axisPolynomial) sample(t float64) (pos, vel, acc float64) {
	pos = ((((p.f*t+p.e)*t+p.d)*t+p.c)*t+p.b)*t + p.a
	vel = (((5*p.f*t+4*p.e)*t+3*p.d)*t+2*p.c)*t + p.b
	acc = (20*p.f*t+12*p.e)*t*t + 6*p.d*t + 2*p.c
	return pos, vel, acc
}
