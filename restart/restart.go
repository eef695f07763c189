/*
 * restart.go, part of gomqc.
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

//Package restart persists and restores the full trajectory state between
//nuclear steps, so an interrupted run can be appended to. Checkpoints are
//msgpack-encoded and written atomically (temp file plus rename); a crash
//mid-write leaves the previous checkpoint intact.
package restart

import (
	"fmt"
	"os"

	mqc "github.com/molsim/gomqc"
	"github.com/vmihailenco/msgpack/v5"
)

//Checkpoint is the serializable snapshot of one trajectory at a step
//boundary. Complex quantities are split into real and imaginary parts;
//msgpack has no complex type.
type Checkpoint struct {
	Step   int       `msgpack:"step"`
	State  int       `msgpack:"state"`
	NatQM  int       `msgpack:"nat_qm"`
	Masses []float64 `msgpack:"masses"`
	Coord  []float64 `msgpack:"coord"`
	Vel    []float64 `msgpack:"vel"`
	CoefRe []float64 `msgpack:"coef_re"`
	CoefIm []float64 `msgpack:"coef_im"`
	RhoRe  []float64 `msgpack:"rho_re"`
	RhoIm  []float64 `msgpack:"rho_im"`
	//Per-state surfaces, so a resumed integrator starts its first
	//half-step from the checkpointed force instead of a zeroed one.
	Energy []float64 `msgpack:"energy"`
	Force  []float64 `msgpack:"force"` //nstates blocks of 3*natoms
}

//Snapshot captures the restartable state of sys, with the given running
//state and step indices.
func Snapshot(sys *mqc.System, state, step int) (*Checkpoint, error) {
	if sys == nil {
		return nil, mqc.NewCError("Nil System given", "Snapshot")
	}
	nat := sys.NAtoms()
	nst := sys.NStates()
	c := &Checkpoint{
		Step:   step,
		State:  state,
		NatQM:  sys.NatQM(),
		Coord:  make([]float64, 3*nat),
		Vel:    make([]float64, 3*nat),
		CoefRe: make([]float64, nst),
		CoefIm: make([]float64, nst),
		RhoRe:  make([]float64, nst*nst),
		RhoIm:  make([]float64, nst*nst),
		Energy: make([]float64, nst),
		Force:  make([]float64, nst*3*nat),
	}
	var err error
	c.Masses, err = sys.Masses()
	if err != nil {
		return nil, err
	}
	for i := 0; i < nat; i++ {
		for j := 0; j < 3; j++ {
			c.Coord[3*i+j] = sys.Coord.At(i, j)
			c.Vel[3*i+j] = sys.Vel.At(i, j)
		}
	}
	for s, st := range sys.States {
		c.CoefRe[s] = real(st.Coef)
		c.CoefIm[s] = imag(st.Coef)
		c.Energy[s] = st.Energy
		for i := 0; i < nat; i++ {
			for j := 0; j < 3; j++ {
				c.Force[(s*nat+i)*3+j] = st.Force.At(i, j)
			}
		}
	}
	for i := 0; i < nst; i++ {
		for j := 0; j < nst; j++ {
			r := sys.Rho.At(i, j)
			c.RhoRe[i*nst+j] = real(r)
			c.RhoIm[i*nst+j] = imag(r)
		}
	}
	return c, nil
}

//Apply writes the checkpointed state back into sys and returns the running
//state and step to resume from. The system must have the shape the
//checkpoint was taken from.
func (c *Checkpoint) Apply(sys *mqc.System) (state, step int, err error) {
	if sys == nil {
		return 0, 0, mqc.NewCError("Nil System given", "Apply")
	}
	nat := sys.NAtoms()
	nst := sys.NStates()
	if len(c.Masses) != nat || len(c.CoefRe) != nst || len(c.RhoRe) != nst*nst ||
		len(c.Energy) != nst || len(c.Force) != nst*3*nat {
		return 0, 0, mqc.NewCError("Checkpoint and System shapes differ", "Apply")
	}
	if c.State < 0 || c.State >= nst {
		return 0, 0, mqc.NewCError(fmt.Sprintf("Checkpointed state %d out of range [0,%d)", c.State, nst), "Apply")
	}
	for i := 0; i < nat; i++ {
		for j := 0; j < 3; j++ {
			sys.Coord.Set(i, j, c.Coord[3*i+j])
			sys.Vel.Set(i, j, c.Vel[3*i+j])
		}
	}
	for s, st := range sys.States {
		st.Coef = complex(c.CoefRe[s], c.CoefIm[s])
		st.Energy = c.Energy[s]
		for i := 0; i < nat; i++ {
			for j := 0; j < 3; j++ {
				st.Force.Set(i, j, c.Force[(s*nat+i)*3+j])
			}
		}
	}
	for i := 0; i < nst; i++ {
		for j := 0; j < nst; j++ {
			sys.Rho.Set(i, j, complex(c.RhoRe[i*nst+j], c.RhoIm[i*nst+j]))
		}
	}
	sys.UpdateEnergy(c.State)
	return c.State, c.Step, nil
}

//Save encodes c into name, atomically.
func Save(name string, c *Checkpoint) error {
	if c == nil {
		return mqc.NewCError("Nil Checkpoint given", "Save")
	}
	tmp := name + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return mqc.NewCError("Unable to create checkpoint: "+err.Error(), "Save")
	}
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(c); err != nil {
		f.Close()
		os.Remove(tmp)
		return mqc.NewCError("Unable to encode checkpoint: "+err.Error(), "Save")
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return mqc.NewCError("Unable to close checkpoint: "+err.Error(), "Save")
	}
	if err := os.Rename(tmp, name); err != nil {
		os.Remove(tmp)
		return mqc.NewCError("Unable to move checkpoint in place: "+err.Error(), "Save")
	}
	return nil
}

//Load decodes the checkpoint stored in name.
func Load(name string) (*Checkpoint, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, mqc.NewCError("Unable to open checkpoint: "+err.Error(), "Load")
	}
	defer f.Close()
	c := new(Checkpoint)
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(c); err != nil {
		return nil, mqc.NewCError("Unable to decode checkpoint: "+err.Error(), "Load")
	}
	return c, nil
}
