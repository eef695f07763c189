/*
 * prob.go, part of gomqc.
 *
 * Copyright 2021 The gomqc developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package hop

import (
	"fmt"

	mqc "github.com/molsim/gomqc"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//CavityData carries the per-step polaritonic quantities consumed by the
//cavity-coupled probability expression: the unitary into the instantaneous
//polaritonic eigenbasis, the uncoupled-basis Hamiltonian, the polaritonic
//scalar couplings, and the trivial-crossing signal from the backend. The
//Transform, when non-nil, is re-applied after a decoherence correction.
type CavityData struct {
	Unitary *mat.Dense
	HamD    *mat.Dense
	Pnacme  *mat.Dense
	//Trivial flags a detected near-diabatic crossing; the hop to
	//TrivialState is then forced deterministically.
	Trivial      bool
	TrivialState int

	Transform mqc.Transformer
}

//Effective returns the Hamiltonian in the instantaneous eigenbasis,
//U^T * H_d * U.
func (C *CavityData) Effective() *mat.Dense {
	var t, eff mat.Dense
	t.Mul(C.HamD, C.Unitary)
	eff.Mul(C.Unitary.T(), &t)
	return &eff
}

//checkShapes verifies that every matrix consumed this step is n x n (or
//n-state indexable). A mismatch here is a bug in the caller, not a physical
//condition, so it is fatal.
func (E *Engine) checkShapes(cav *CavityData) error {
	n := E.sys.NStates()
	if r, c := E.sys.Rho.Dims(); r != n || c != n {
		return Error{fmt.Sprintf("%s: density matrix is %dx%d, want %dx%d", BadShape, r, c, n, n), []string{"checkShapes"}}
	}
	if cav == nil {
		if r, c := E.sys.Nacme.Dims(); r != n || c != n {
			return Error{fmt.Sprintf("%s: NACME matrix is %dx%d, want %dx%d", BadShape, r, c, n, n), []string{"checkShapes"}}
		}
		return nil
	}
	for _, m := range []struct {
		name string
		mat  *mat.Dense
	}{{"unitary", cav.Unitary}, {"diabatic Hamiltonian", cav.HamD}, {"pNACME", cav.Pnacme}} {
		if m.mat == nil {
			return Error{BadShape + ": nil " + m.name + " matrix", []string{"checkShapes"}}
		}
		if r, c := m.mat.Dims(); r != n || c != n {
			return Error{fmt.Sprintf("%s: %s matrix is %dx%d, want %dx%d", BadShape, m.name, r, c, n, n), []string{"checkShapes"}}
		}
	}
	if cav.Trivial && (cav.TrivialState < 0 || cav.TrivialState >= n) {
		return Error{fmt.Sprintf("Trivial-crossing target %d out of range [0,%d)", cav.TrivialState, n), []string{"checkShapes"}}
	}
	return nil
}

//hopProb computes the fewest-switches hopping probabilities for this step
//and their cumulative prefix sums. Raw negative values (probability current
//flowing away from the target) clamp to zero. If the total exceeds one,
//both vectors are renormalized so the per-step hop probability stays a
//probability. A running-state population below Eps would make the formula
//undefined; the step then carries zero hop probability.
func (E *Engine) hopProb(cav *CavityData) error {
	if err := E.checkShapes(cav); err != nil {
		return errDecorate(err, "hopProb")
	}
	sys := E.sys
	n := sys.NStates()
	E.stateOld = E.state
	E.hopped = false
	E.frustrated = false
	for i := range E.prob {
		E.prob[i] = 0
	}
	for i := range E.acc {
		E.acc[i] = 0
	}
	r := E.state

	switch {
	case cav != nil && cav.Trivial:
		//Deterministic forced transition: all probability mass on the
		//flagged target, bypassing the stochastic expression.
		E.prob[cav.TrivialState] = 1
	case real(sys.Rho.At(r, r)) < mqc.Eps:
		return nil
	case cav != nil:
		heff := cav.Effective()
		pop := real(sys.Rho.At(r, r))
		for i := 0; i < n; i++ {
			if i == r {
				continue
			}
			p := -2 * (imag(sys.Rho.At(r, i))*heff.At(r, i) -
				real(sys.Rho.At(r, i))*cav.Pnacme.At(r, i)) * E.dt / pop
			if p < 0 {
				p = 0
			}
			E.prob[i] = p
		}
	default:
		pop := real(sys.Rho.At(r, r))
		for i := 0; i < n; i++ {
			if i == r {
				continue
			}
			p := -2 * real(sys.Rho.At(i, r)) * sys.Nacme.At(i, r) * E.dt / pop
			if p < 0 {
				p = 0
			}
			E.prob[i] = p
		}
	}

	floats.CumSum(E.acc[1:], E.prob)
	if psum := E.acc[n]; psum > 1 {
		floats.Scale(1/psum, E.prob)
		floats.Scale(1/psum, E.acc)
	}
	return nil
}
