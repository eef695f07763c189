/*
 * cavity.go, part of gomqc.
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

//Package cavity supports surface hopping on polaritonic states, i.e.
//molecular states dressed by a confined cavity photon mode. It keeps the
//unitary between the uncoupled (molecule x photon-number) basis and the
//instantaneous polaritonic eigenbasis, assembles the polaritonic scalar
//couplings, detects trivial (near-diabatic) crossings between consecutive
//steps, and moves amplitudes between the two representations.
package cavity

import (
	"fmt"
	"math"

	mqc "github.com/molsim/gomqc"
	"github.com/molsim/gomqc/hop"
	"gonum.org/v1/gonum/mat"
)

//DefaultOverlapThreshold is the diagonal-overlap value under which two
//consecutive eigenbases are taken to have swapped characters, flagging a
//trivial crossing.
const DefaultOverlapThreshold = 0.5

//Basis tracks the polaritonic eigenbasis of one trajectory across steps.
//It owns the uncoupled-basis copy of the electronic amplitudes and
//implements mqc.Transformer.
type Basis struct {
	n      int
	thresh float64

	u     *mat.Dense //current unitary, columns are polaritonic states
	uOld  *mat.Dense //unitary of the previous step, nil on the first
	coefD []complex128
}

//NewBasis builds a Basis for n polaritonic states. A non-positive
//threshold selects DefaultOverlapThreshold.
func NewBasis(n int, thresh float64) (*Basis, error) {
	if n < 2 {
		return nil, mqc.NewCError(fmt.Sprintf("A polaritonic basis needs at least 2 states, %d given", n), "NewBasis")
	}
	if thresh <= 0 {
		thresh = DefaultOverlapThreshold
	}
	return &Basis{n: n, thresh: thresh, coefD: make([]complex128, n)}, nil
}

//Update ingests the backend data of this step: the new unitary u, the
//uncoupled-basis Hamiltonian hamD and the uncoupled-basis scalar couplings
//k. It assembles the polaritonic couplings
//
//	pnacme = U^T * K * U + U^T * Udot
//
//with Udot the finite-difference time derivative of the unitary, detects a
//trivial crossing of the running state active, and returns the CavityData
//for the engine.
func (B *Basis) Update(u, hamD, k *mat.Dense, dt float64, active int) (*hop.CavityData, error) {
	for _, m := range []*mat.Dense{u, hamD, k} {
		if m == nil {
			return nil, mqc.NewCError("Nil matrix given", "Update")
		}
		if r, c := m.Dims(); r != B.n || c != B.n {
			return nil, mqc.NewCError(fmt.Sprintf("Matrix is %dx%d, want %dx%d", r, c, B.n, B.n), "Update")
		}
	}
	if dt <= 0 {
		return nil, mqc.NewCError(fmt.Sprintf("Non-positive time step %v", dt), "Update")
	}
	if active < 0 || active >= B.n {
		return nil, mqc.NewCError(fmt.Sprintf("Active state %d out of range [0,%d)", active, B.n), "Update")
	}

	var t, pnacme mat.Dense
	t.Mul(k, u)
	pnacme.Mul(u.T(), &t)
	if B.uOld != nil {
		var udot, corr mat.Dense
		udot.Sub(u, B.uOld)
		udot.Scale(1/dt, &udot)
		corr.Mul(u.T(), &udot)
		pnacme.Add(&pnacme, &corr)
	}

	cav := &hop.CavityData{
		Unitary:   u,
		HamD:      hamD,
		Pnacme:    &pnacme,
		Transform: B,
	}
	if B.uOld != nil {
		if target, trivial := B.detectTrivial(u, active); trivial {
			cav.Trivial = true
			cav.TrivialState = target
		}
	}
	B.uOld = mat.DenseCopyOf(u)
	B.u = u
	return cav, nil
}

//detectTrivial compares the running-state eigenvector with the previous
//step's basis. When the character of the state has migrated to another
//column (diagonal overlap below the threshold), the crossing was passed
//diabatically and the hop to the best-overlapping state must be forced.
func (B *Basis) detectTrivial(u *mat.Dense, active int) (int, bool) {
	self := math.Abs(columnDot(u, B.uOld, active, active))
	if self >= B.thresh {
		return 0, false
	}
	best := active
	bestOv := self
	for j := 0; j < B.n; j++ {
		if j == active {
			continue
		}
		if ov := math.Abs(columnDot(u, B.uOld, j, active)); ov > bestOv {
			best = j
			bestOv = ov
		}
	}
	if best == active {
		return 0, false
	}
	return best, true
}

//columnDot returns the dot product of column i of a with column j of b.
func columnDot(a, b *mat.Dense, i, j int) float64 {
	r, _ := a.Dims()
	d := 0.0
	for k := 0; k < r; k++ {
		d += a.At(k, i) * b.At(k, j)
	}
	return d
}

//Adiabatic2Diabatic refreshes the uncoupled-basis amplitudes owned by the
//Basis from the (possibly decoherence-corrected) polaritonic amplitudes of
//sys, c_d = U * c_a. The surface-hopping engine re-applies this after each
//correction so the electronic propagator keeps working on consistent
//amplitudes. It implements mqc.Transformer.
func (B *Basis) Adiabatic2Diabatic(sys *mqc.System) error {
	if B.u == nil {
		return mqc.NewCError("Basis never updated", "Adiabatic2Diabatic")
	}
	if sys.NStates() != B.n {
		return mqc.NewCError("System and Basis sizes differ", "Adiabatic2Diabatic")
	}
	ca := sys.Coefs()
	for i := 0; i < B.n; i++ {
		var d complex128
		for j := 0; j < B.n; j++ {
			d += complex(B.u.At(i, j), 0) * ca[j]
		}
		B.coefD[i] = d
	}
	return nil
}

//Diabatic2Adiabatic writes the polaritonic amplitudes c_a = U^T * c_d into
//sys from the uncoupled-basis amplitudes owned by the Basis, rebuilding the
//density matrix. The trajectory driver calls this after the electronic
//propagation, before the hopping decision.
func (B *Basis) Diabatic2Adiabatic(sys *mqc.System) error {
	if B.u == nil {
		return mqc.NewCError("Basis never updated", "Diabatic2Adiabatic")
	}
	if sys.NStates() != B.n {
		return mqc.NewCError("System and Basis sizes differ", "Diabatic2Adiabatic")
	}
	ca := make([]complex128, B.n)
	for i := 0; i < B.n; i++ {
		var d complex128
		for j := 0; j < B.n; j++ {
			d += complex(B.u.At(j, i), 0) * B.coefD[j]
		}
		ca[i] = d
	}
	sys.SetCoefs(ca)
	return nil
}

//DiabaticCoefs returns a copy of the uncoupled-basis amplitudes.
func (B *Basis) DiabaticCoefs() []complex128 {
	c := make([]complex128, len(B.coefD))
	copy(c, B.coefD)
	return c
}

//SetDiabaticCoefs sets the uncoupled-basis amplitudes owned by the Basis.
func (B *Basis) SetDiabaticCoefs(c []complex128) error {
	if len(c) != B.n {
		return mqc.NewCError("Amplitude slice and Basis sizes differ", "SetDiabaticCoefs")
	}
	copy(B.coefD, c)
	return nil
}
