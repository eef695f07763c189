/*
 * models.go, part of gomqc.
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

//Package models provides analytic one-dimensional two-state model
//potentials (Tully, J. Chem. Phys. 93, 1061 (1990)) implementing the
//mqc.Electronics backend interface. The particle moves along x; energies,
//forces and nonadiabatic couplings come from the exact diagonalization of
//the 2x2 diabatic potential.
package models

import (
	"math"

	mqc "github.com/molsim/gomqc"
)

//diabatic2 is a one-dimensional two-state diabatic potential: V returns
//the matrix elements (V11, V22, V12) at x, dV their derivatives.
type diabatic2 interface {
	V(x float64) (v11, v22, v12 float64)
	DV(x float64) (d11, d22, d12 float64)
}

//Model is a 1D two-state Electronics backend built from a diabatic
//potential.
type Model struct {
	pot diabatic2
}

//SimpleAvoidedCrossing is Tully's model I with the standard parameters
//(A=0.01, B=1.6, C=0.005, D=1.0 a.u.).
func SimpleAvoidedCrossing() *Model {
	return &Model{sac{A: 0.01, B: 1.6, C: 0.005, D: 1.0}}
}

//DualAvoidedCrossing is Tully's model II with the standard parameters
//(A=0.1, B=0.28, E0=0.05, C=0.015, D=0.06 a.u.).
func DualAvoidedCrossing() *Model {
	return &Model{dac{A: 0.1, B: 0.28, E0: 0.05, C: 0.015, D: 0.06}}
}

//Data fills the adiabatic energies, forces and coupling vectors of sys at
//its current geometry. The model is analytic, so forceOnly requests simply
//recompute everything. It implements mqc.Electronics.
func (M *Model) Data(sys *mqc.System, active []int, dt float64, step int, forceOnly bool) error {
	if sys.NStates() != 2 {
		return mqc.NewCError("Two-state model used with a system of a different size", "Data")
	}
	x := sys.Coord.At(0, 0)
	v11, v22, v12 := M.pot.V(x)
	d11, d22, d12 := M.pot.DV(x)

	m := 0.5 * (v11 + v22)
	h := 0.5 * (v11 - v22)
	root := math.Sqrt(h*h + v12*v12)
	sys.States[0].Energy = m - root
	sys.States[1].Energy = m + root

	//dE/dx of the eigenvalues; root cannot vanish while v12 != 0.
	dm := 0.5 * (d11 + d22)
	dh := 0.5 * (d11 - d22)
	droot := (h*dh + v12*d12) / root
	sys.States[0].Force.Set(0, 0, -(dm - droot))
	sys.States[1].Force.Set(0, 0, -(dm + droot))

	//First-order coupling d01 = d(theta)/dx with
	//theta = 0.5*atan2(2*V12, V11-V22).
	dv := v11 - v22
	ddv := d11 - d22
	d01 := (d12*dv - v12*ddv) / (dv*dv + 4*v12*v12)
	sys.Nac[0][1].Set(0, 0, d01)
	sys.Nac[1][0].Set(0, 0, -d01)
	return nil
}

//sac is the simple-avoided-crossing diabatic potential (Tully model I).
type sac struct {
	A, B, C, D float64
}

func (p sac) V(x float64) (v11, v22, v12 float64) {
	if x >= 0 {
		v11 = p.A * (1 - math.Exp(-p.B*x))
	} else {
		v11 = -p.A * (1 - math.Exp(p.B*x))
	}
	v22 = -v11
	v12 = p.C * math.Exp(-p.D*x*x)
	return
}

func (p sac) DV(x float64) (d11, d22, d12 float64) {
	d11 = p.A * p.B * math.Exp(-p.B*math.Abs(x))
	d22 = -d11
	d12 = -2 * p.C * p.D * x * math.Exp(-p.D*x*x)
	return
}

//dac is the dual-avoided-crossing diabatic potential (Tully model II).
type dac struct {
	A, B, E0, C, D float64
}

func (p dac) V(x float64) (v11, v22, v12 float64) {
	v11 = 0
	v22 = -p.A*math.Exp(-p.B*x*x) + p.E0
	v12 = p.C * math.Exp(-p.D*x*x)
	return
}

func (p dac) DV(x float64) (d11, d22, d12 float64) {
	d11 = 0
	d22 = 2 * p.A * p.B * x * math.Exp(-p.B*x*x)
	d12 = -2 * p.C * p.D * x * math.Exp(-p.D*x*x)
	return
}
