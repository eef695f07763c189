/*
 * v3.go, part of gomqc.
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

//Package v3 implements Natoms x 3 matrices of Cartesian data (coordinates,
//velocities, forces, coupling vectors) on top of gonum Dense matrices.
//Within the package it is understood that a "vector" is a row of the matrix,
//i.e. the Cartesian components of one atom.
package v3

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space. The underlying implementation
//is a gonum dense matrix with 3 columns.
type Matrix struct {
	*mat.Dense
}

//Dense2Matrix returns a Matrix backed by the data of A. It panics if A
//does not have 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

//Matrix2Dense returns the gonum matrix underlying A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//Zeros returns a zero-initialized Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	f := make([]float64, 3*vecs)
	return &Matrix{mat.NewDense(vecs, 3, f)}
}

//NVecs returns the number of vectors in the receiver.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//VecSlice returns a view of the vectors [i,j) of the receiver. The view
//shares data with the receiver.
func (F *Matrix) VecSlice(i, j int) *Matrix {
	r := F.Dense.Slice(i, j, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//Copy copies the content of A into the receiver. Both matrices must have
//the same number of vectors.
func (F *Matrix) Copy(A *Matrix) {
	if F.NVecs() != A.NVecs() {
		panic(ErrShape)
	}
	F.Dense.Copy(A.Dense)
}

//Clone returns a newly allocated copy of the receiver.
func (F *Matrix) Clone() *Matrix {
	r := Zeros(F.NVecs())
	r.Copy(F)
	return r
}

//Scale multiplies every element of the receiver by v, in place.
func (F *Matrix) Scale(v float64) {
	F.Dense.Scale(v, F.Dense)
}

//AddScaled adds v*A to the receiver, in place. Both matrices must have the
//same number of vectors.
func (F *Matrix) AddScaled(v float64, A *Matrix) {
	n := F.NVecs()
	if A.NVecs() != n {
		panic(ErrShape)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			F.Set(i, j, F.At(i, j)+v*A.At(i, j))
		}
	}
}

//AddScaledRows adds w[i]*v*A_i to row i of the receiver, i.e. a per-vector
//scaled addition. Typical use is adding a coupling vector divided by the
//atomic masses to a velocity, with w the inverse masses.
func (F *Matrix) AddScaledRows(v float64, A *Matrix, w []float64) {
	n := F.NVecs()
	if A.NVecs() != n {
		panic(ErrShape)
	}
	if len(w) < n {
		panic(ErrNotEnoughElements)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			F.Set(i, j, F.At(i, j)+v*w[i]*A.At(i, j))
		}
	}
}

//Dot returns the scalar product of the receiver and A taken as flat
//3N-dimensional vectors.
func (F *Matrix) Dot(A *Matrix) float64 {
	n := F.NVecs()
	if A.NVecs() != n {
		panic(ErrShape)
	}
	d := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			d += F.At(i, j) * A.At(i, j)
		}
	}
	return d
}

//WeightedDot returns the per-vector weighted scalar product
//sum_i w[i]*(F_i . A_i).
func (F *Matrix) WeightedDot(A *Matrix, w []float64) float64 {
	n := F.NVecs()
	if A.NVecs() != n {
		panic(ErrShape)
	}
	if len(w) < n {
		panic(ErrNotEnoughElements)
	}
	d := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			d += w[i] * F.At(i, j) * A.At(i, j)
		}
	}
	return d
}

//WeightedNorm2 returns sum_i w[i]*|F_i|^2.
func (F *Matrix) WeightedNorm2(w []float64) float64 {
	return F.WeightedDot(F, w)
}

//Norm2 returns the squared Euclidean norm of the receiver taken as a flat
//3N-dimensional vector.
func (F *Matrix) Norm2() float64 {
	return F.Dot(F)
}

//Norm returns the Euclidean norm of the receiver taken as a flat
//3N-dimensional vector.
func (F *Matrix) Norm() float64 {
	return math.Sqrt(F.Norm2())
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix      = PanicMsg("goMQC/v3: A Matrix should have 3 columns")
	ErrShape             = PanicMsg("goMQC/v3: Dimension mismatch")
	ErrNotEnoughElements = PanicMsg("goMQC/v3: not enough elements in Matrix")
)

//Error is the error type for the recoverable errors of the package.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return err.message }

//Decorate adds new information to the error, and returns the resulting
//decoration slice.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
