/*
 * main.go, part of gomqc.
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

//gomqc runs one surface-hopping trajectory on an analytic model potential,
//from a JSON input file, writing a compressed trajectory, a restart
//checkpoint and optional population/energy plots.
package main

import (
	"encoding/json"
	"flag"
	"os"

	mqc "github.com/molsim/gomqc"
	"github.com/molsim/gomqc/dyn"
	"github.com/molsim/gomqc/elec"
	"github.com/molsim/gomqc/hop"
	"github.com/molsim/gomqc/models"
	"github.com/molsim/gomqc/mqcplot"
	"github.com/molsim/gomqc/traj"
	"github.com/rs/zerolog"
)

type input struct {
	Model  string  `json:"model"` //"sac" or "dac"
	Istate int     `json:"istate"`
	Mass   float64 `json:"mass"` //a.u.
	X0     float64 `json:"x0"`   //bohr
	P0     float64 `json:"p0"`   //a.u.

	Dt      float64 `json:"dt"` //a.u.
	Nsteps  int     `json:"nsteps"`
	Nesteps int     `json:"nesteps"`
	OutFreq int     `json:"out_freq"`

	Rescale     string  `json:"rescale"`
	Reject      string  `json:"reject"`
	Decoherence string  `json:"decoherence"`
	EDCParam    float64 `json:"edc_param"`
	Seed        int64   `json:"seed"`

	Traj       string `json:"traj"`
	Checkpoint string `json:"checkpoint"`
	Append     bool   `json:"append"`
	Plot       string `json:"plot"` //base name for the PNG plots, empty for none
}

func main() {
	inputFile := flag.String("i", "input.json", "JSON input file")
	flag.Parse()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	in, err := readInput(*inputFile)
	if err != nil {
		log.Fatal().Err(err).Msg("could not read input")
	}
	if err := run(in, log); err != nil {
		log.Fatal().Err(err).Msg("trajectory failed")
	}
}

func readInput(name string) (*input, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	in := &input{
		Model:   "sac",
		Istate:  1,
		Mass:    2000,
		X0:      -10,
		P0:      15,
		Dt:      0.5 * mqc.Fs2Au / 10,
		Nsteps:  2000,
		Nesteps: 20,
		Rescale: "momentum",
		Reject:  "reverse",
	}
	if err := json.NewDecoder(f).Decode(in); err != nil {
		return nil, err
	}
	return in, nil
}

func run(in *input, log zerolog.Logger) error {
	var model *models.Model
	switch in.Model {
	case "sac":
		model = models.SimpleAvoidedCrossing()
	case "dac":
		model = models.DualAvoidedCrossing()
	default:
		return mqc.NewCError("Unknown model "+in.Model, "run")
	}

	if in.Istate < 0 || in.Istate > 1 {
		return mqc.NewCError("Initial state must be 0 or 1 for the two-state models", "run")
	}
	sys, err := mqc.NewSystem([]float64{in.Mass}, 2, 1)
	if err != nil {
		return err
	}
	sys.Coord.Set(0, 0, in.X0)
	sys.Vel.Set(0, 0, in.P0/in.Mass)
	coefs := make([]complex128, 2)
	coefs[in.Istate] = 1
	sys.SetCoefs(coefs)
	sys.UpdateKinetic()

	rescale, err := hop.ParseRescaleMode(in.Rescale)
	if err != nil {
		return err
	}
	reject, err := hop.ParseRejectMode(in.Reject)
	if err != nil {
		return err
	}
	dec, err := hop.ParseScheme(in.Decoherence)
	if err != nil {
		return err
	}
	eng, err := hop.New(sys, in.Istate, in.Dt, hop.Options{
		Rescale:  rescale,
		Reject:   reject,
		Dec:      dec,
		EDCParam: in.EDCParam,
		Seed:     in.Seed,
	})
	if err != nil {
		return err
	}

	nesteps := in.Nesteps
	if nesteps < 1 {
		nesteps = 20
	}
	prop, err := elec.NewRK4(nesteps)
	if err != nil {
		return err
	}

	md, err := dyn.New(sys, eng, model, prop, dyn.Config{
		Dt:        in.Dt,
		Nsteps:    in.Nsteps,
		OutFreq:   in.OutFreq,
		TrajFile:  in.Traj,
		CheckFile: in.Checkpoint,
		Append:    in.Append,
	}, log)
	if err != nil {
		return err
	}
	if err := md.Run(); err != nil {
		return err
	}

	if in.Plot != "" && in.Traj != "" {
		if err := plotRun(in.Traj, in.Dt, in.Plot); err != nil {
			return err
		}
		log.Info().Str("plot", in.Plot).Msg("wrote plots")
	}
	return nil
}

//plotRun reads the trajectory back and plots population and energy traces.
func plotRun(trajFile string, dt float64, base string) error {
	r, err := traj.NewReader(trajFile)
	if err != nil {
		return err
	}
	defer r.Close()
	var time, ekin, epot, etot []float64
	pops := make([][]float64, r.NStates())
	for {
		rec, err := r.Next()
		if err != nil {
			if _, last := err.(traj.LastFrameError); last {
				break
			}
			return err
		}
		time = append(time, float64(rec.Step)*dt)
		ekin = append(ekin, rec.Ekin)
		epot = append(epot, rec.Epot)
		etot = append(etot, rec.Etot)
		for i, p := range rec.Pop {
			pops[i] = append(pops[i], p)
		}
	}
	if err := mqcplot.Populations(time, pops, "State populations", base+"_pop"); err != nil {
		return err
	}
	return mqcplot.Energies(time, ekin, epot, etot, "Energy components", base+"_ener")
}
