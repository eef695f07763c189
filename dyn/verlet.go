/*
 * verlet.go, part of gomqc.
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

package dyn

import "strconv"

//Velocity-Verlet integration of the nuclei on the running surface. The
//force of the running state at the pre-step geometry is buffered by the
//position update and combined with the post-step force in the velocity
//update.

func (M *MD) positionUpdate() {
	sys := M.sys
	f := sys.States[M.active[0]].Force
	dt := M.cfg.Dt
	inv := sys.InvMassSlice()
	nat := sys.NAtoms()
	for i := 0; i < nat; i++ {
		for j := 0; j < 3; j++ {
			a := f.At(i, j) * inv[i]
			x := sys.Coord.At(i, j) + sys.Vel.At(i, j)*dt + 0.5*a*dt*dt
			sys.Coord.Set(i, j, x)
			M.prevForce[3*i+j] = f.At(i, j)
		}
	}
}

func (M *MD) velocityUpdate() {
	sys := M.sys
	f := sys.States[M.active[0]].Force
	dt := M.cfg.Dt
	inv := sys.InvMassSlice()
	nat := sys.NAtoms()
	for i := 0; i < nat; i++ {
		for j := 0; j < 3; j++ {
			a := 0.5 * (M.prevForce[3*i+j] + f.At(i, j)) * inv[i]
			sys.Vel.Set(i, j, sys.Vel.At(i, j)+a*dt)
		}
	}
	sys.UpdateKinetic()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
