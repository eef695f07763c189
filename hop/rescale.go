/*
 * rescale.go, part of gomqc.
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
	"math"

	mqc "github.com/molsim/gomqc"
)

//rescaleCoeffs builds the coefficients of the energy-conservation quadratic
//a*x^2 + b*x + c = 0 along the coupling direction for the proposed
//transition from -> to, with c = 2*gap. For the isotropic mode the
//coefficients stay at their neutral values (a=b=det=1): no quadratic is
//solved there, but the reversal factor -b/a of the frustrated-hop path then
//degenerates to the documented -1 sign flip. A coupling vector of
//(numerically) zero norm admits no real root; that is reported through a
//negative discriminant so the frustration rules take over instead of a
//division fault propagating.
func (E *Engine) rescaleCoeffs(from, to int, gap float64) (a, b, det float64) {
	a, b, det = 1, 1, 1
	if !E.opt.Rescale.quadratic() {
		return
	}
	sys := E.sys
	d := sys.Nac[from][to].VecSlice(0, sys.NatQM())
	vel := sys.QMVel()
	switch E.opt.Rescale {
	case RescaleVelocity:
		a = d.WeightedNorm2(sys.MassSlice())
		b = 2 * d.WeightedDot(vel, sys.MassSlice())
	default: //momentum and augment share the inverse-mass weighting
		a = d.WeightedNorm2(sys.InvMassSlice())
		b = 2 * d.Dot(vel)
	}
	if a < mqc.Eps {
		det = -1
		return
	}
	c := 2 * gap
	det = b*b - 4*a*c
	return
}

//quadraticRoot picks the root of the rescaling quadratic with the same sign
//convention as b, which selects the smaller-magnitude velocity change. The
//other root overshoots past the zero-adjustment point and is unphysical.
func quadraticRoot(a, b, det float64) float64 {
	if b < 0 {
		return 0.5 * (-b - math.Sqrt(det)) / a
	}
	return 0.5 * (-b + math.Sqrt(det)) / a
}

//isotropicFactor is the isotropic rescaling factor sqrt(1 - gap/Ekin).
//Callers must have established Ekin > 0 and Ekin >= gap.
func isotropicFactor(gap, ekin float64) float64 {
	return math.Sqrt(1 - gap/ekin)
}

//applyRescale adjusts the QM-region velocities with the factor x for the
//proposed transition from -> to. The det and gap arguments decide, for the
//augment mode, between the additive coupling-direction update and the
//multiplicative isotropic fallback.
func (E *Engine) applyRescale(x float64, from, to int, det, gap float64) {
	sys := E.sys
	vel := sys.QMVel()
	switch E.opt.Rescale {
	case RescaleEnergy:
		vel.Scale(x)
	case RescaleVelocity:
		vel.AddScaled(x, sys.Nac[from][to].VecSlice(0, sys.NatQM()))
	case RescaleMomentum:
		vel.AddScaledRows(x, sys.Nac[from][to].VecSlice(0, sys.NatQM()), sys.InvMassSlice())
	case RescaleAugment:
		if det > 0 || sys.EkinQM < gap {
			vel.AddScaledRows(x, sys.Nac[from][to].VecSlice(0, sys.NatQM()), sys.InvMassSlice())
		} else {
			vel.Scale(x)
		}
	}
}
