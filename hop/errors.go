/*
 * errors.go, part of gomqc.
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

import "fmt"

//Error is the error type of the package. It fullfills mqc.Error.
//It covers the fatal conditions only: invalid configuration at construction
//and malformed input shapes at run time. Numeric degeneracies (zero
//population, no real rescaling root, insufficient kinetic energy) are not
//errors; they are handled by the frustration rules.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string {
	return fmt.Sprintf("surface hopping error: %s", err.message)
}

//Decorate adds new information to the error and returns the resulting
//decoration slice.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Common error messages
const (
	NilSystem        = "Nil System given"
	NilCavityData    = "Cavity variant requires per-step CavityData"
	UnexpectedCavity = "CavityData given to a non-cavity engine"
	NilActiveList    = "The caller-owned active-state list must have at least one element"
	ScalarCoupling   = "Backend provides scalar couplings only; vector-based rescaling/rejection unavailable"
	BadShape         = "Malformed matrix shape"
)
