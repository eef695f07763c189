/*
 * decoherence_test.go, part of gomqc.
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
	"testing"
)

//TestIDC checks the instantaneous collapse: after the correction the
//density matrix must be the exact projector on the running state.
func TestIDC(Te *testing.T) {
	sys := testSystem(Te, []float64{2000}, 3)
	sys.SetCoefs([]complex128{complex(0.5, 0.1), complex(0.6, -0.2), complex(0.3, 0.4)})
	idc{}.correct(sys, 1, 0.5)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := complex128(0)
			if i == 1 && j == 1 {
				want = 1
			}
			if sys.Rho.At(i, j) != want {
				Te.Errorf("rho(%d,%d) = %v, want %v", i, j, sys.Rho.At(i, j), want)
			}
		}
	}
	if sys.States[1].Coef != 1 || sys.States[0].Coef != 0 || sys.States[2].Coef != 0 {
		Te.Errorf("amplitudes %v after the collapse", sys.Coefs())
	}
}

//TestEDC checks the energy-based correction on a 2-state case computed by
//hand: tau = (1 + C/Ekin)/gap, the non-running amplitude decays by
//exp(-dt/tau) and the total population stays exactly 1.
func TestEDC(Te *testing.T) {
	sys := testSystem(Te, []float64{2000}, 2)
	sys.States[0].Energy = 0
	sys.States[1].Energy = 0.01
	sys.Vel.Set(0, 0, math.Sqrt(2e-5))
	sys.UpdateKinetic() //EkinQM = 0.02
	c0 := complex(math.Sqrt(0.3), 0)
	c1 := complex(0, math.Sqrt(0.7))
	sys.SetCoefs([]complex128{c0, c1})

	edc{0.1}.correct(sys, 1, 1)

	//tau = (1 + 0.1/0.02)/0.01 = 600
	decay := math.Exp(-1.0 / 600)
	if got := cmplx.Abs(sys.States[0].Coef); !close64(got, math.Sqrt(0.3)*decay, 1e-12) {
		Te.Errorf("|c0| = %v, want %v", got, math.Sqrt(0.3)*decay)
	}
	if norm := sys.PopulationNorm(); !close64(norm, 1, 1e-12) {
		Te.Errorf("population norm %v after EDC, want 1", norm)
	}
	//the running amplitude must have picked up the lost population
	p1 := real(sys.Rho.At(1, 1))
	if want := 1 - 0.3*decay*decay; !close64(p1, want, 1e-12) {
		Te.Errorf("running population %v, want %v", p1, want)
	}
}

//TestEDCDegenerate checks that a state degenerate with the running one does
//not decay but still enters the population balance, keeping the norm at 1.
func TestEDCDegenerate(Te *testing.T) {
	sys := testSystem(Te, []float64{2000}, 3)
	sys.States[0].Energy = 0
	sys.States[1].Energy = 0.01
	sys.States[2].Energy = 0.01 //degenerate with the running state 1
	sys.Vel.Set(0, 0, math.Sqrt(2e-5))
	sys.UpdateKinetic()
	c2 := complex(math.Sqrt(0.2), 0)
	sys.SetCoefs([]complex128{complex(math.Sqrt(0.3), 0), complex(math.Sqrt(0.5), 0), c2})

	edc{0.1}.correct(sys, 1, 1)
	if sys.States[2].Coef != c2 {
		Te.Errorf("degenerate amplitude decayed: %v -> %v", c2, sys.States[2].Coef)
	}
	if norm := sys.PopulationNorm(); !close64(norm, 1, 1e-12) {
		Te.Errorf("population norm %v, want 1", norm)
	}
}

//TestEDCSkipZeroEkin checks, through the engine, that the correction passes
//the state through untouched when the QM kinetic energy vanishes.
func TestEDCSkipZeroEkin(Te *testing.T) {
	sys := testSystem(Te, []float64{2000}, 2)
	sys.States[1].Energy = 0.01
	sys.UpdateKinetic() //zero velocities, EkinQM = 0
	coefs := []complex128{complex(math.Sqrt(0.3), 0), complex(math.Sqrt(0.7), 0)}
	sys.SetCoefs(coefs)
	E := testEngine(Te, sys, 1, 1, Options{Dec: DecEDC, Seed: 1})
	if _, err := E.Step([]int{1}); err != nil {
		Te.Fatal(err)
	}
	got := sys.Coefs()
	for i := range coefs {
		if got[i] != coefs[i] {
			Te.Errorf("amplitude %d changed with zero kinetic energy: %v -> %v", i, coefs[i], got[i])
		}
	}
}

//TestIDCThroughEngine checks the trigger condition: the collapse runs after
//an accepted hop and lands on the new running state.
func TestIDCThroughEngine(Te *testing.T) {
	sys := downhillSystem(Te, math.Sqrt(2e-5))
	sys.SetCoefs([]complex128{complex(math.Sqrt(0.2), 0), complex(math.Sqrt(0.8), 0)})
	//rebuild the probability current erased by SetCoefs
	sys.Rho.Set(1, 1, 0.5)
	sys.Rho.Set(0, 1, complex(0.1, 0))
	sys.Rho.Set(1, 0, complex(0.1, 0))
	E := testEngine(Te, sys, 1, 1, Options{Rescale: RescaleMomentum, Dec: DecIDC, Seed: 1})
	tr, err := E.Step([]int{1})
	if err != nil {
		Te.Fatal(err)
	}
	if !tr.Accepted || tr.To != 0 {
		Te.Fatalf("transition %+v, want an accepted 1 -> 0 hop", tr)
	}
	if sys.States[0].Coef != 1 || sys.States[1].Coef != 0 {
		Te.Errorf("amplitudes %v after IDC, want a collapse on state 0", sys.Coefs())
	}
	if real(sys.Rho.At(0, 0)) != 1 {
		Te.Errorf("rho(0,0) = %v after IDC, want 1", sys.Rho.At(0, 0))
	}
}
