/*
 * elec.go, part of gomqc.
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

//Package elec integrates the electronic equation of motion of mixed
//quantum-classical dynamics,
//
//	dc_i/dt = -i*E_i*c_i - sum_j sigma_ij*c_j
//
//with E_i the state energies and sigma_ij = v.d_ij the scalar nonadiabatic
//couplings, using a classical fourth-order Runge-Kutta integrator with a
//configurable number of electronic substeps per nuclear step.
package elec

import (
	mqc "github.com/molsim/gomqc"
)

//RK4 is a fourth-order Runge-Kutta propagator for the electronic
//amplitudes. It implements mqc.Propagator.
type RK4 struct {
	substeps int
	//scratch buffers, reused across calls
	k1, k2, k3, k4, tmp []complex128
}

//NewRK4 returns an RK4 propagator taking substeps electronic steps per
//nuclear time step.
func NewRK4(substeps int) (*RK4, error) {
	if substeps < 1 {
		return nil, mqc.NewCError("RK4 needs at least 1 electronic substep", "NewRK4")
	}
	return &RK4{substeps: substeps}, nil
}

//deriv evaluates dc/dt into out, with the energies and couplings frozen at
//their current nuclear-step values.
func deriv(sys *mqc.System, c, out []complex128) {
	n := len(c)
	for i := 0; i < n; i++ {
		d := complex(0, -sys.States[i].Energy) * c[i]
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			d -= complex(sys.Nacme.At(i, j), 0) * c[j]
		}
		out[i] = d
	}
}

//Propagate advances the amplitudes of sys over one nuclear time step dt
//(a.u.) and rebuilds the density matrix from them.
func (P *RK4) Propagate(sys *mqc.System, dt float64) error {
	n := sys.NStates()
	if len(P.k1) != n {
		P.k1 = make([]complex128, n)
		P.k2 = make([]complex128, n)
		P.k3 = make([]complex128, n)
		P.k4 = make([]complex128, n)
		P.tmp = make([]complex128, n)
	}
	c := sys.Coefs()
	h := complex(dt/float64(P.substeps), 0)
	for s := 0; s < P.substeps; s++ {
		deriv(sys, c, P.k1)
		for i := range c {
			P.tmp[i] = c[i] + 0.5*h*P.k1[i]
		}
		deriv(sys, P.tmp, P.k2)
		for i := range c {
			P.tmp[i] = c[i] + 0.5*h*P.k2[i]
		}
		deriv(sys, P.tmp, P.k3)
		for i := range c {
			P.tmp[i] = c[i] + h*P.k3[i]
		}
		deriv(sys, P.tmp, P.k4)
		for i := range c {
			c[i] += h / 6 * (P.k1[i] + 2*P.k2[i] + 2*P.k3[i] + P.k4[i])
		}
	}
	sys.SetCoefs(c)
	return nil
}
