/*
 * doc.go, part of gomqc.
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

/*Package mqc is the main package of the goMQC library, a mixed quantum-classical
molecular dynamics toolkit. It provides the shared trajectory state (electronic
states, density matrix, nonadiabatic couplings, nuclear coordinates and
velocities) consumed by the subpackages, plus the interfaces for the
electronic-structure backend, the electronic propagator, thermostats and
basis transforms.


	**goMQC Capabilities**

    Fewest-switches surface hopping with four velocity-rescaling schemes
	(isotropic, along the coupling vector, along the coupling direction in
	momentum space, and the augmented scheme with isotropic fallback), two
	frustrated-hop policies (keep/reverse) and optional instantaneous or
	energy-based decoherence corrections (hop subpackage).

    Cavity-coupled (polaritonic) dynamics with basis transforms between
	the uncoupled and polaritonic representations and trivial-crossing
	detection (cavity subpackage).

    RK4 propagation of the electronic amplitudes (elec subpackage).

    Velocity-Verlet nuclear propagation with per-step reporting, compressed
	trajectory output and binary restart checkpoints (dyn, traj and restart
	subpackages).

    Analytic one-dimensional model potentials for testing and demonstration
	(models subpackage).

    Population and energy plotting (mqcplot subpackage).

All quantities are in Hartree atomic units unless stated otherwise.
*/
package mqc
