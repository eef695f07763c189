/*
 * system.go, part of gomqc.
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

package mqc

import (
	"math/cmplx"

	"github.com/molsim/gomqc/v3"
	"gonum.org/v1/gonum/mat"
)

//State is one electronic (or polaritonic) state of the system: a
//potential-energy surface, the force it exerts on the nuclei, and the
//complex amplitude of the running wavefunction on it.
type State struct {
	Energy float64    //a.u.
	Force  *v3.Matrix //per-atom force, a.u.
	Coef   complex128 //amplitude in the representation the engine works in
}

//System is the shared mutable state of one trajectory: nuclear coordinates,
//velocities and masses, the electronic state set, the density matrix and the
//nonadiabatic couplings. It is owned by the trajectory driver and borrowed,
//one component at a time, by the backend, the electronic propagator and the
//surface-hopping engine. It is not safe for concurrent use; ensemble runs
//must build one System per trajectory.
type System struct {
	masses  []float64 //a.u. (electron masses)
	invmass []float64
	natQM   int

	States []*State
	Coord  *v3.Matrix
	Vel    *v3.Matrix

	//Rho is the complex Hermitian density matrix in the representation the
	//engine works in. Diagonal entries are real and non-negative.
	Rho *mat.CDense

	//Nac holds the vector nonadiabatic couplings, Nac[i][j] being the
	//coupling between states i and j (antisymmetric under i<->j). It is nil
	//when the backend provides only scalar couplings.
	Nac [][]*v3.Matrix

	//Nacme holds the scalar couplings sigma_ij = v . d_ij.
	Nacme *mat.Dense

	//ScalarOnly marks a backend without analytic coupling vectors. It
	//restricts the usable rescaling and rejection schemes.
	ScalarOnly bool

	Ekin   float64
	EkinQM float64
	Epot   float64
	Etot   float64
}

//NewSystem builds a System with the given atomic masses (a.u.) and number of
//electronic states, with natQM atoms belonging to the QM region. All
//matrices are allocated zeroed; the couplings are allocated as vector
//couplings (ScalarOnly false).
func NewSystem(masses []float64, nstates, natQM int) (*System, error) {
	if masses == nil {
		return nil, CError{string(ErrNilData), []string{"NewSystem"}}
	}
	if nstates < 2 {
		return nil, errorf("NewSystem", "A System needs at least 2 electronic states, %d given", nstates)
	}
	nat := len(masses)
	if natQM <= 0 || natQM > nat {
		return nil, errorf("NewSystem", "QM-region size %d incompatible with %d atoms", natQM, nat)
	}
	S := new(System)
	S.masses = make([]float64, nat)
	copy(S.masses, masses)
	S.invmass = make([]float64, nat)
	for i, m := range masses {
		if m <= 0 {
			return nil, errorf("NewSystem", "Non-positive mass %v for atom %d", m, i)
		}
		S.invmass[i] = 1 / m
	}
	S.natQM = natQM
	S.States = make([]*State, nstates)
	for i := range S.States {
		S.States[i] = &State{Force: v3.Zeros(nat)}
	}
	S.Coord = v3.Zeros(nat)
	S.Vel = v3.Zeros(nat)
	S.Rho = mat.NewCDense(nstates, nstates, nil)
	S.Nac = make([][]*v3.Matrix, nstates)
	for i := range S.Nac {
		S.Nac[i] = make([]*v3.Matrix, nstates)
		for j := range S.Nac[i] {
			S.Nac[i][j] = v3.Zeros(nat)
		}
	}
	S.Nacme = mat.NewDense(nstates, nstates, nil)
	return S, nil
}

//Masses returns a copy of the atomic masses, in a.u.
func (S *System) Masses() ([]float64, error) {
	if S.masses == nil {
		return nil, CError{string(ErrNilData), []string{"Masses"}}
	}
	m := make([]float64, len(S.masses))
	copy(m, S.masses)
	return m, nil
}

//MassSlice returns the internal mass slice. The caller must not modify it.
func (S *System) MassSlice() []float64 { return S.masses }

//InvMassSlice returns the internal inverse-mass slice. The caller must not
//modify it.
func (S *System) InvMassSlice() []float64 { return S.invmass }

//NAtoms returns the number of atoms in the system.
func (S *System) NAtoms() int { return len(S.masses) }

//NatQM returns the number of atoms in the QM region.
func (S *System) NatQM() int { return S.natQM }

//NStates returns the number of electronic states.
func (S *System) NStates() int { return len(S.States) }

//QMVel returns a view of the QM-region velocities. The view shares data
//with the full velocity matrix.
func (S *System) QMVel() *v3.Matrix { return S.Vel.VecSlice(0, S.natQM) }

//UpdateKinetic recomputes the total and QM-region kinetic energies from the
//current velocities.
func (S *System) UpdateKinetic() {
	nat := len(S.masses)
	full := 0.0
	qm := 0.0
	for i := 0; i < nat; i++ {
		v2 := 0.0
		for j := 0; j < 3; j++ {
			v := S.Vel.At(i, j)
			v2 += v * v
		}
		e := 0.5 * S.masses[i] * v2
		full += e
		if i < S.natQM {
			qm += e
		}
	}
	S.Ekin = full
	S.EkinQM = qm
}

//UpdateEnergy recomputes the potential and total energies, taking the state
//with index active as the one driving the nuclei. It panics on an
//out-of-range index.
func (S *System) UpdateEnergy(active int) {
	if active < 0 || active >= len(S.States) {
		panic(ErrStateIndex)
	}
	S.UpdateKinetic()
	S.Epot = S.States[active].Energy
	S.Etot = S.Epot + S.Ekin
}

//UpdateNacme recomputes the scalar couplings sigma_ij = v . d_ij from the
//current velocities and coupling vectors. It is a no-op for scalar-only
//backends, which fill Nacme themselves.
func (S *System) UpdateNacme() {
	if S.ScalarOnly {
		return
	}
	n := len(S.States)
	for i := 0; i < n; i++ {
		S.Nacme.Set(i, i, 0)
		for j := i + 1; j < n; j++ {
			s := S.Vel.Dot(S.Nac[i][j])
			S.Nacme.Set(i, j, s)
			S.Nacme.Set(j, i, -s)
		}
	}
}

//SyncRho rebuilds the density matrix from the state amplitudes as
//rho_ij = conj(c_i)*c_j.
func (S *System) SyncRho() {
	n := len(S.States)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r := cmplx.Conj(S.States[i].Coef) * S.States[j].Coef
			S.Rho.Set(i, j, r)
			S.Rho.Set(j, i, cmplx.Conj(r))
		}
	}
}

//PopulationNorm returns the trace of the density matrix, i.e. the total
//electronic population.
func (S *System) PopulationNorm() float64 {
	n := len(S.States)
	norm := 0.0
	for i := 0; i < n; i++ {
		norm += real(S.Rho.At(i, i))
	}
	return norm
}

//Populations returns the diagonal of the density matrix as a new slice.
func (S *System) Populations() []float64 {
	n := len(S.States)
	p := make([]float64, n)
	for i := 0; i < n; i++ {
		p[i] = real(S.Rho.At(i, i))
	}
	return p
}

//SetCoefs sets the state amplitudes from the given slice and rebuilds the
//density matrix. It panics if the slice length does not match the number
//of states.
func (S *System) SetCoefs(c []complex128) {
	if len(c) != len(S.States) {
		panic(ErrShape)
	}
	for i, v := range c {
		S.States[i].Coef = v
	}
	S.SyncRho()
}

//Coefs returns the state amplitudes as a new slice.
func (S *System) Coefs() []complex128 {
	c := make([]complex128, len(S.States))
	for i, st := range S.States {
		c[i] = st.Coef
	}
	return c
}
