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

/*Package hop implements the fewest-switches surface-hopping transition
engine. Once per nuclear step the engine computes per-state hopping
probabilities from the density matrix and the nonadiabatic couplings, draws
one uniform random number to select a target state, solves the
energy-conservation equation for a velocity-rescaling factor, classifies
energetically forbidden ("frustrated") hops, and applies the configured
decoherence correction.

The engine owns the running-state index, the probability vectors and the
random source. It borrows the shared System of the trajectory for the
duration of each Step call, rescaling velocities and collapsing or damping
the electronic amplitudes in place. One Engine serves exactly one
trajectory; it is not safe for concurrent use.
*/
package hop
