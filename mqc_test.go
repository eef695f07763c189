/*
 * mqc_test.go, part of gomqc.
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

import (
	"math"
	"math/cmplx"
	"testing"
)

//TestNewSystem exercises the constructor validation.
func TestNewSystem(Te *testing.T) {
	if _, err := NewSystem(nil, 2, 1); err == nil {
		Te.Error("nil masses accepted")
	}
	if _, err := NewSystem([]float64{2000}, 1, 1); err == nil {
		Te.Error("single-state system accepted")
	}
	if _, err := NewSystem([]float64{2000}, 2, 2); err == nil {
		Te.Error("QM region larger than the system accepted")
	}
	if _, err := NewSystem([]float64{-1}, 2, 1); err == nil {
		Te.Error("negative mass accepted")
	}
	sys, err := NewSystem([]float64{2000, 1000}, 3, 1)
	if err != nil {
		Te.Fatal(err)
	}
	if sys.NAtoms() != 2 || sys.NStates() != 3 || sys.NatQM() != 1 {
		Te.Errorf("sizes %d/%d/%d, want 2/3/1", sys.NAtoms(), sys.NStates(), sys.NatQM())
	}
	m, err := sys.Masses()
	if err != nil {
		Te.Fatal(err)
	}
	m[0] = 7 //the copy must not alias the internal slice
	if sys.MassSlice()[0] != 2000 {
		Te.Error("Masses returned the internal slice")
	}
	if inv := sys.InvMassSlice(); inv[1] != 1e-3 {
		Te.Errorf("inverse mass %v, want 1e-3", inv[1])
	}
}

//TestKinetic checks the total and QM-region kinetic energies on a 2-atom
//system with a 1-atom QM region.
func TestKinetic(Te *testing.T) {
	sys, err := NewSystem([]float64{2000, 1000}, 2, 1)
	if err != nil {
		Te.Fatal(err)
	}
	sys.Vel.Set(0, 0, 0.01)
	sys.Vel.Set(1, 1, 0.02)
	sys.Vel.Set(1, 2, 0.01)
	sys.UpdateKinetic()
	//0.5*2000*1e-4 = 0.1; 0.5*1000*(4e-4+1e-4) = 0.25
	if math.Abs(sys.Ekin-0.35) > 1e-12 {
		Te.Errorf("Ekin = %v, want 0.35", sys.Ekin)
	}
	if math.Abs(sys.EkinQM-0.1) > 1e-12 {
		Te.Errorf("EkinQM = %v, want 0.1", sys.EkinQM)
	}
	sys.States[0].Energy = -0.5
	sys.UpdateEnergy(0)
	if math.Abs(sys.Etot-(-0.15)) > 1e-12 {
		Te.Errorf("Etot = %v, want -0.15", sys.Etot)
	}
}

//TestNacme checks sigma_ij = v . d_ij and its antisymmetry.
func TestNacme(Te *testing.T) {
	sys, err := NewSystem([]float64{2000}, 2, 1)
	if err != nil {
		Te.Fatal(err)
	}
	sys.Vel.Set(0, 0, 0.01)
	sys.Vel.Set(0, 1, -0.02)
	sys.Nac[0][1].Set(0, 0, 1.5)
	sys.Nac[0][1].Set(0, 1, 0.5)
	sys.Nac[1][0].Set(0, 0, -1.5)
	sys.Nac[1][0].Set(0, 1, -0.5)
	sys.UpdateNacme()
	want := 0.01*1.5 - 0.02*0.5
	if got := sys.Nacme.At(0, 1); math.Abs(got-want) > 1e-14 {
		Te.Errorf("sigma(0,1) = %v, want %v", got, want)
	}
	if got := sys.Nacme.At(1, 0); math.Abs(got+want) > 1e-14 {
		Te.Errorf("sigma(1,0) = %v, want %v", got, -want)
	}
	if sys.Nacme.At(0, 0) != 0 || sys.Nacme.At(1, 1) != 0 {
		Te.Error("diagonal couplings are not zero")
	}
	//a scalar-only backend fills Nacme itself
	sys.ScalarOnly = true
	sys.Nacme.Set(0, 1, 42)
	sys.UpdateNacme()
	if sys.Nacme.At(0, 1) != 42 {
		Te.Error("UpdateNacme overwrote a scalar-only coupling")
	}
}

//TestRho checks the density-matrix rebuild from the amplitudes, the
//population readouts and the Hermitian symmetry.
func TestRho(Te *testing.T) {
	sys, err := NewSystem([]float64{2000}, 2, 1)
	if err != nil {
		Te.Fatal(err)
	}
	c0 := complex(math.Sqrt(0.3), 0)
	c1 := complex(0, math.Sqrt(0.7))
	sys.SetCoefs([]complex128{c0, c1})
	if p := sys.Populations(); math.Abs(p[0]-0.3) > 1e-12 || math.Abs(p[1]-0.7) > 1e-12 {
		Te.Errorf("populations %v, want [0.3 0.7]", p)
	}
	if n := sys.PopulationNorm(); math.Abs(n-1) > 1e-12 {
		Te.Errorf("norm %v, want 1", n)
	}
	r01 := sys.Rho.At(0, 1)
	if want := cmplx.Conj(c0) * c1; r01 != want {
		Te.Errorf("rho(0,1) = %v, want %v", r01, want)
	}
	if sys.Rho.At(1, 0) != cmplx.Conj(r01) {
		Te.Error("density matrix is not Hermitian")
	}
	got := sys.Coefs()
	got[0] = 0 //must be a copy
	if sys.States[0].Coef != c0 {
		Te.Error("Coefs returned aliased storage")
	}
}

//TestQMVel checks that the QM-velocity view shares storage with the full
//velocity matrix.
func TestQMVel(Te *testing.T) {
	sys, err := NewSystem([]float64{2000, 1000}, 2, 1)
	if err != nil {
		Te.Fatal(err)
	}
	qv := sys.QMVel()
	if qv.NVecs() != 1 {
		Te.Fatalf("QM view has %d vectors, want 1", qv.NVecs())
	}
	qv.Set(0, 2, 0.5)
	if sys.Vel.At(0, 2) != 0.5 {
		Te.Error("QM-velocity view does not share storage")
	}
}

//TestSymbolMass checks the table lookup and the amu conversion.
func TestSymbolMass(Te *testing.T) {
	m, ok := SymbolMass("H")
	if !ok {
		Te.Fatal("hydrogen missing from the mass table")
	}
	if math.Abs(m-1.008*Amu2Au) > 1e-9 {
		Te.Errorf("hydrogen mass %v a.u., want %v", m, 1.008*Amu2Au)
	}
	if _, ok := SymbolMass("Xx"); ok {
		Te.Error("fictional element found in the mass table")
	}
}

//TestErrors checks the decoration chain of the package error type.
func TestErrors(Te *testing.T) {
	err := NewCError("something broke", "inner")
	deco := err.Decorate("outer")
	if len(deco) != 2 || deco[0] != "inner" || deco[1] != "outer" {
		Te.Errorf("decoration chain %v, want [inner outer]", deco)
	}
	if err.Error() == "" {
		Te.Error("empty error message")
	}
}
