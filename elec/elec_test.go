/*
 * elec_test.go, part of gomqc.
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

package elec

import (
	"math"
	"math/cmplx"
	"testing"

	mqc "github.com/molsim/gomqc"
)

func TestNewRK4(Te *testing.T) {
	if _, err := NewRK4(0); err == nil {
		Te.Error("zero substeps accepted")
	}
	if _, err := NewRK4(20); err != nil {
		Te.Error(err)
	}
}

//TestPhaseEvolution propagates an uncoupled 2-state system and compares
//against the analytic phase factors exp(-i*E_i*t). Populations must be
//untouched.
func TestPhaseEvolution(Te *testing.T) {
	sys, err := mqc.NewSystem([]float64{2000}, 2, 1)
	if err != nil {
		Te.Fatal(err)
	}
	sys.States[0].Energy = -0.3
	sys.States[1].Energy = 1.0
	c0 := complex(math.Sqrt(0.4), 0)
	c1 := complex(0, math.Sqrt(0.6))
	sys.SetCoefs([]complex128{c0, c1})

	P, err := NewRK4(100)
	if err != nil {
		Te.Fatal(err)
	}
	dt := 0.5
	if err := P.Propagate(sys, dt); err != nil {
		Te.Fatal(err)
	}
	got := sys.Coefs()
	want0 := c0 * cmplx.Exp(complex(0, -sys.States[0].Energy*dt))
	want1 := c1 * cmplx.Exp(complex(0, -sys.States[1].Energy*dt))
	if cmplx.Abs(got[0]-want0) > 1e-10 || cmplx.Abs(got[1]-want1) > 1e-10 {
		Te.Errorf("amplitudes %v, want [%v %v]", got, want0, want1)
	}
	p := sys.Populations()
	if math.Abs(p[0]-0.4) > 1e-10 || math.Abs(p[1]-0.6) > 1e-10 {
		Te.Errorf("populations %v changed without coupling", p)
	}
}

//TestCoupledRotation propagates two degenerate states under a constant
//antisymmetric coupling, which is an exact rotation of the amplitude
//vector by sigma*t.
func TestCoupledRotation(Te *testing.T) {
	sys, err := mqc.NewSystem([]float64{2000}, 2, 1)
	if err != nil {
		Te.Fatal(err)
	}
	sigma := 0.1
	sys.Nacme.Set(0, 1, sigma)
	sys.Nacme.Set(1, 0, -sigma)
	sys.SetCoefs([]complex128{1, 0})

	P, err := NewRK4(100)
	if err != nil {
		Te.Fatal(err)
	}
	dt := 0.5
	if err := P.Propagate(sys, dt); err != nil {
		Te.Fatal(err)
	}
	got := sys.Coefs()
	th := sigma * dt
	if cmplx.Abs(got[0]-complex(math.Cos(th), 0)) > 1e-10 {
		Te.Errorf("c0 = %v, want cos(%v)", got[0], th)
	}
	if cmplx.Abs(got[1]-complex(math.Sin(th), 0)) > 1e-10 {
		Te.Errorf("c1 = %v, want sin(%v)", got[1], th)
	}
	if n := sys.PopulationNorm(); math.Abs(n-1) > 1e-10 {
		Te.Errorf("norm %v after propagation, want 1", n)
	}
}

//TestNormConservation runs many steps of a coupled, non-degenerate system
//and checks that the norm drifts by no more than the integrator error.
func TestNormConservation(Te *testing.T) {
	sys, err := mqc.NewSystem([]float64{2000}, 3, 1)
	if err != nil {
		Te.Fatal(err)
	}
	sys.States[0].Energy = 0
	sys.States[1].Energy = 0.01
	sys.States[2].Energy = 0.03
	sys.Nacme.Set(0, 1, 0.02)
	sys.Nacme.Set(1, 0, -0.02)
	sys.Nacme.Set(1, 2, -0.015)
	sys.Nacme.Set(2, 1, 0.015)
	sys.SetCoefs([]complex128{complex(math.Sqrt(0.5), 0), complex(0, math.Sqrt(0.5)), 0})

	P, err := NewRK4(20)
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 200; i++ {
		if err := P.Propagate(sys, 0.5); err != nil {
			Te.Fatal(err)
		}
	}
	if n := sys.PopulationNorm(); math.Abs(n-1) > 1e-8 {
		Te.Errorf("norm %v after 200 steps, want 1", n)
	}
}
