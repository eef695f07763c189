/*
 * decoherence.go, part of gomqc.
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
	"math/cmplx"

	mqc "github.com/molsim/gomqc"
)

//Fewest-switches surface hopping overestimates electronic coherence: the
//amplitudes keep interfering long after the nuclear wavepackets on the two
//surfaces have separated. The correctors here damp or collapse the
//amplitudes after each hop decision to counter that.

type corrector interface {
	correct(sys *mqc.System, active int, dt float64)
}

func newCorrector(s Scheme, edcParam float64) corrector {
	switch s {
	case DecIDC:
		return idc{}
	case DecEDC:
		return edc{edcParam}
	}
	return nil
}

//idc is the instantaneous decoherence correction: a full collapse onto the
//running state. The density matrix becomes the exact pure-state projector
//|active><active|.
type idc struct{}

func (idc) correct(sys *mqc.System, active int, dt float64) {
	for _, st := range sys.States {
		st.Coef = 0
	}
	sys.States[active].Coef = 1
	n := sys.NStates()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sys.Rho.Set(i, j, 0)
		}
	}
	sys.Rho.Set(active, active, 1)
}

//edc is the energy-based decoherence correction. Each non-running amplitude
//decays by exp(-dt/tau) with tau = (1 + C/Ekin)/|E_i - E_active|, and the
//running amplitude is rescaled so the total population is conserved. The
//density matrix is rebuilt from the damped amplitudes.
type edc struct {
	c float64
}

func (e edc) correct(sys *mqc.System, active int, dt float64) {
	//The engine guarantees Ekin > Eps before calling; degenerate states
	//(zero gap) simply do not decay.
	rhoAct := real(sys.Rho.At(active, active))
	if rhoAct < mqc.Eps {
		return
	}
	upd := 1.0
	eact := sys.States[active].Energy
	for i, st := range sys.States {
		if i == active {
			continue
		}
		gap := math.Abs(st.Energy - eact)
		if gap > mqc.Eps {
			tau := (1 + e.c/sys.EkinQM) / gap
			st.Coef *= complex(math.Exp(-dt/tau), 0)
		}
		upd -= real(cmplx.Conj(st.Coef) * st.Coef)
	}
	sys.States[active].Coef *= complex(math.Sqrt(upd/rhoAct), 0)
	sys.SyncRho()
}
