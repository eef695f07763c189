/*
 * interfaces.go, part of gomqc.
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

//Masser is anything able to return a slice with the masses of its particles.
type Masser interface {

	//Returns a column vector with the massess of all atoms
	Masses() ([]float64, error)
}

//Electronics is the on-the-fly electronic-structure backend. On each nuclear
//step it must fill the per-state energies, forces and (when available) the
//vector nonadiabatic couplings of the system, for the states listed in active.
//When forceOnly is true only the force of the state active[0] needs to be
//recomputed; this is requested after an accepted surface hop so the next
//nuclear step runs on the new surface.
type Electronics interface {
	Data(sys *System, active []int, dt float64, step int, forceOnly bool) error
}

//Propagator integrates the electronic equation of motion over one nuclear
//time step, updating the state amplitudes and the density matrix of sys
//in place.
type Propagator interface {
	Propagate(sys *System, dt float64) error
}

//Thermostat adjusts the nuclear velocities of sys to sample a target
//ensemble. It runs once per nuclear step, after the hopping decision.
type Thermostat interface {
	Run(sys *System) error
}

//Transformer moves the electronic amplitudes and density matrix of sys
//from the representation the surface-hopping engine works in (the
//instantaneous eigenbasis) back to the representation the electronic
//propagator works in. Cavity-coupled dynamics implements this with the
//polaritonic unitary; purely adiabatic dynamics does not need one.
type Transformer interface {
	Adiabatic2Diabatic(sys *System) error
}
