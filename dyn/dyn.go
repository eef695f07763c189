/*
 * dyn.go, part of gomqc.
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

//Package dyn drives surface-hopping molecular dynamics: velocity-Verlet
//nuclear propagation interleaved, every step, with the backend data
//request, the electronic propagation, the hopping decision, the optional
//thermostat, the energy bookkeeping and the per-step reporting. One MD
//drives exactly one trajectory; ensemble runs build one MD (with its own
//System and Engine) per member.
package dyn

import (
	"github.com/molsim/gomqc/hop"
	"github.com/molsim/gomqc/restart"
	"github.com/molsim/gomqc/traj"
	"github.com/rs/zerolog"

	mqc "github.com/molsim/gomqc"
)

//Config collects the run parameters of one trajectory.
type Config struct {
	Dt     float64 //nuclear time step, a.u.
	Nsteps int
	//OutFreq is the reporting period in steps; every step is reported
	//when it is 1 (the default when 0). Transition events are always
	//reported on the step they happen.
	OutFreq int
	//TrajFile, when non-empty, receives the compressed per-step records.
	TrajFile string
	//CheckFile, when non-empty, receives a restart checkpoint every step.
	CheckFile string
	//Append resumes from the checkpoint in CheckFile instead of starting
	//at step zero.
	Append bool
}

//MD is the per-trajectory driver.
type MD struct {
	sys    *mqc.System
	eng    *hop.Engine
	el     mqc.Electronics
	prop   mqc.Propagator
	thermo mqc.Thermostat
	cfg    Config
	log    zerolog.Logger

	//active is the caller-owned state-index list of the engine contract;
	//the backend reads active[0] to know which surface drives the nuclei.
	active    []int
	prevForce []float64 //flat 3N buffer for the Verlet velocity half-step
	first     int       //first step to run, nonzero after a restart
}

//New builds a driver from its collaborators. el and eng are mandatory;
//prop may be nil for dynamics with frozen amplitudes (then the density
//matrix must be kept current by the caller between runs, which is only
//useful in tests).
func New(sys *mqc.System, eng *hop.Engine, el mqc.Electronics, prop mqc.Propagator, cfg Config, log zerolog.Logger) (*MD, error) {
	if sys == nil || eng == nil || el == nil {
		return nil, mqc.NewCError("Nil System, Engine or Electronics given", "dyn.New")
	}
	if cfg.Dt <= 0 {
		return nil, mqc.NewCError("Non-positive time step", "dyn.New")
	}
	if cfg.Nsteps < 1 {
		return nil, mqc.NewCError("A run needs at least 1 step", "dyn.New")
	}
	if cfg.OutFreq < 1 {
		cfg.OutFreq = 1
	}
	M := &MD{
		sys:       sys,
		eng:       eng,
		el:        el,
		prop:      prop,
		cfg:       cfg,
		log:       log,
		active:    []int{eng.State()},
		prevForce: make([]float64, 3*sys.NAtoms()),
	}
	if cfg.Append && cfg.CheckFile != "" {
		c, err := restart.Load(cfg.CheckFile)
		if err != nil {
			return nil, err
		}
		state, step, err := c.Apply(sys)
		if err != nil {
			return nil, err
		}
		if err := eng.SetState(state); err != nil {
			return nil, err
		}
		M.first = step + 1
		M.active[0] = state
	}
	return M, nil
}

//SetThermostat attaches a thermostat, run once per step after the hopping
//decision.
func (M *MD) SetThermostat(t mqc.Thermostat) { M.thermo = t }

//Active returns the index of the surface currently driving the nuclei.
func (M *MD) Active() int { return M.active[0] }

//Run propagates the trajectory for the configured number of steps.
func (M *MD) Run() error {
	var tw *traj.Writer
	var err error
	if M.cfg.TrajFile != "" {
		hdr := map[string]string{"dt": formatFloat(M.cfg.Dt), "kind": "surface-hopping"}
		if M.cfg.Append {
			tw, err = traj.NewAppendWriter(M.cfg.TrajFile, M.sys.NStates(), hdr)
		} else {
			tw, err = traj.NewWriter(M.cfg.TrajFile, M.sys.NStates(), hdr)
		}
		if err != nil {
			return err
		}
		defer tw.Close()
	}

	if M.first == 0 {
		//Initial point: full data request and a hopping decision before
		//the first nuclear step, like any other step but with no motion.
		if err := M.el.Data(M.sys, M.active, M.cfg.Dt, -1, false); err != nil {
			return err
		}
		M.sys.UpdateKinetic()
		M.sys.UpdateNacme()
		if err := M.decideHop(-1); err != nil {
			return err
		}
		M.sys.UpdateEnergy(M.active[0])
		M.report(-1, tw)
	}

	for step := M.first; step < M.cfg.Nsteps; step++ {
		M.positionUpdate()
		if err := M.el.Data(M.sys, M.active, M.cfg.Dt, step, false); err != nil {
			return err
		}
		M.velocityUpdate()
		M.sys.UpdateNacme()
		if M.prop != nil {
			if err := M.prop.Propagate(M.sys, M.cfg.Dt); err != nil {
				return err
			}
		}
		if err := M.decideHop(step); err != nil {
			return err
		}
		if M.thermo != nil {
			if err := M.thermo.Run(M.sys); err != nil {
				return err
			}
		}
		M.sys.UpdateEnergy(M.active[0])
		M.report(step, tw)
		if M.cfg.CheckFile != "" {
			c, err := restart.Snapshot(M.sys, M.active[0], step)
			if err != nil {
				return err
			}
			if err := restart.Save(M.cfg.CheckFile, c); err != nil {
				return err
			}
		}
	}
	return nil
}

//decideHop runs the transition engine and, on an accepted hop, refreshes
//the force of the new running surface so the next nuclear step uses it.
func (M *MD) decideHop(step int) error {
	tr, err := M.eng.Step(M.active)
	if err != nil {
		return err
	}
	if tr.Accepted {
		if err := M.el.Data(M.sys, M.active, M.cfg.Dt, step, true); err != nil {
			return err
		}
	}
	return nil
}

//report emits the per-step log line and the trajectory record. Transition
//events always get their own lines, on the step they happen.
func (M *MD) report(step int, tw *traj.Writer) {
	events := M.eng.Flush()
	for _, ev := range events {
		M.log.Info().Int("step", step+1).Str("event", ev).Msg("hop")
	}
	if (step+1)%M.cfg.OutFreq == 0 || len(events) > 0 {
		M.log.Info().
			Int("step", step+1).
			Int("state", M.active[0]).
			Float64("ekin", M.sys.Ekin).
			Float64("epot", M.sys.Epot).
			Float64("etot", M.sys.Etot).
			Float64("temp", M.temperature()).
			Float64("norm", M.sys.PopulationNorm()).
			Msg("md step")
	}
	if tw != nil {
		rec := &traj.Record{
			Step:  step + 1,
			State: M.active[0],
			Draw:  M.eng.LastDraw(),
			Ekin:  M.sys.Ekin,
			Epot:  M.sys.Epot,
			Etot:  M.sys.Etot,
			Prob:  M.eng.Probabilities(),
			Pop:   M.sys.Populations(),
		}
		if err := tw.WNext(rec); err != nil {
			M.log.Warn().Err(err).Msg("could not write trajectory record")
		}
	}
}

//temperature is the instantaneous kinetic temperature in Kelvin, with
//3N nuclear degrees of freedom.
func (M *MD) temperature() float64 {
	dof := 3 * M.sys.NAtoms()
	return M.sys.Ekin * 2 / float64(dof) * mqc.H2K
}
