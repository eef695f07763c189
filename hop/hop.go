/*
 * hop.go, part of gomqc.
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
	"fmt"
	"math/rand"

	mqc "github.com/molsim/gomqc"
)

//Transition records the outcome of one Step: the running state before and
//after, whether a hop was accepted or frustrated, and the rescaling factor
//applied to the velocities. A step on which the random draw misses every
//probability interval yields From == To with both flags false.
type Transition struct {
	From       int
	To         int
	Accepted   bool
	Frustrated bool
	Factor     float64
}

//Engine is the surface-hopping transition engine for one trajectory. It
//owns the running-state index, the probability and cumulative-probability
//vectors, the last random draw and the transition event log. It borrows
//the System passed to New for the duration of each Step.
type Engine struct {
	sys *mqc.System
	dt  float64
	opt Options
	rng *rand.Rand

	state    int
	stateOld int

	draw float64
	prob []float64
	acc  []float64

	hopped     bool
	frustrated bool

	corr   corrector
	events []string
}

//New builds an Engine running on sys, initially on the state with index
//istate, with nuclear time step dt (a.u.). Invalid mode combinations are
//rejected here: a scalar-coupling-only backend admits only the isotropic
//rescaling and the keep rejection policy, since every other scheme needs
//an analytic coupling vector.
func New(sys *mqc.System, istate int, dt float64, opt Options) (*Engine, error) {
	if sys == nil {
		return nil, Error{NilSystem, []string{"New"}}
	}
	n := sys.NStates()
	if n < 2 {
		return nil, Error{fmt.Sprintf("Surface hopping needs at least 2 states, %d given", n), []string{"New"}}
	}
	if istate < 0 || istate >= n {
		return nil, Error{fmt.Sprintf("Initial state %d out of range [0,%d)", istate, n), []string{"New"}}
	}
	if dt <= 0 {
		return nil, Error{fmt.Sprintf("Non-positive time step %v", dt), []string{"New"}}
	}
	if opt.Rescale < RescaleEnergy || opt.Rescale > RescaleAugment {
		return nil, Error{fmt.Sprintf("Invalid rescaling mode %d", opt.Rescale), []string{"New"}}
	}
	if opt.Reject < RejectKeep || opt.Reject > RejectReverse {
		return nil, Error{fmt.Sprintf("Invalid rejection mode %d", opt.Reject), []string{"New"}}
	}
	if opt.Dec < DecNone || opt.Dec > DecEDC {
		return nil, Error{fmt.Sprintf("Invalid decoherence scheme %d", opt.Dec), []string{"New"}}
	}
	if sys.ScalarOnly {
		if opt.Rescale.quadratic() {
			return nil, Error{ScalarCoupling + ": rescale " + opt.Rescale.String(), []string{"New"}}
		}
		if opt.Reject == RejectReverse {
			return nil, Error{ScalarCoupling + ": reject " + opt.Reject.String(), []string{"New"}}
		}
	}
	if opt.EDCParam < 0 {
		return nil, Error{fmt.Sprintf("Negative EDC energy parameter %v", opt.EDCParam), []string{"New"}}
	}
	if opt.EDCParam == 0 {
		opt.EDCParam = 0.1
	}
	E := &Engine{
		sys:      sys,
		dt:       dt,
		opt:      opt,
		rng:      rand.New(rand.NewSource(opt.Seed)),
		state:    istate,
		stateOld: istate,
		prob:     make([]float64, n),
		acc:      make([]float64, n+1),
		corr:     newCorrector(opt.Dec, opt.EDCParam),
	}
	return E, nil
}

//State returns the index of the running state.
func (E *Engine) State() int { return E.state }

//SetState moves the running state, for trajectories resumed from a
//checkpoint. It must not be called mid-step.
func (E *Engine) SetState(i int) error {
	if i < 0 || i >= E.sys.NStates() {
		return Error{fmt.Sprintf("State %d out of range [0,%d)", i, E.sys.NStates()), []string{"SetState"}}
	}
	E.state = i
	E.stateOld = i
	return nil
}

//LastDraw returns the random number drawn on the last Step.
func (E *Engine) LastDraw() float64 { return E.draw }

//Probabilities returns a copy of the per-state hopping probabilities of the
//last Step. The entry for the running state is always zero.
func (E *Engine) Probabilities() []float64 {
	p := make([]float64, len(E.prob))
	copy(p, E.prob)
	return p
}

//Cumulative returns a copy of the cumulative probability vector of the last
//Step. Its first element is always zero and it is non-decreasing.
func (E *Engine) Cumulative() []float64 {
	a := make([]float64, len(E.acc))
	copy(a, E.acc)
	return a
}

//Flush returns the accumulated transition event lines and clears the log.
func (E *Engine) Flush() []string {
	ev := E.events
	E.events = nil
	return ev
}

func (E *Engine) record(ev string) {
	E.events = append(E.events, ev)
}

//Step runs one full hopping decision for an adiabatic (non-cavity) engine:
//probabilities, stochastic selection, rescaling/frustration and decoherence,
//in that order, with exactly one random draw taken between the first two.
//active is the caller-owned state-index list consumed by the next backend
//request; its first element is updated to the running state. Step returns
//the Transition of this step. The only errors returned are fatal ones
//(malformed shapes, misuse); energetic and numeric degeneracies surface as
//frustrated transitions.
func (E *Engine) Step(active []int) (*Transition, error) {
	if E.opt.Cavity {
		return nil, Error{NilCavityData, []string{"Step"}}
	}
	return E.step(active, nil)
}

//StepCavity is Step for the cavity-coupled variant, which needs the
//per-step polaritonic data.
func (E *Engine) StepCavity(active []int, cav *CavityData) (*Transition, error) {
	if !E.opt.Cavity {
		return nil, Error{UnexpectedCavity, []string{"StepCavity"}}
	}
	if cav == nil {
		return nil, Error{NilCavityData, []string{"StepCavity"}}
	}
	return E.step(active, cav)
}

func (E *Engine) step(active []int, cav *CavityData) (*Transition, error) {
	if len(active) < 1 {
		return nil, Error{NilActiveList, []string{"Step"}}
	}
	if err := E.hopProb(cav); err != nil {
		return nil, errDecorate(err, "Step")
	}
	E.hopCheck(active)
	tr := E.evaluateHop(active, cav)
	if err := E.applyDecoherence(cav); err != nil {
		return nil, errDecorate(err, "Step")
	}
	return tr, nil
}

//hopCheck draws the one random number of the step and scans the cumulative
//intervals for it.
func (E *Engine) hopCheck(active []int) {
	E.draw = E.rng.Float64()
	E.selectTarget(E.draw, active)
}

//selectTarget scans the disjoint cumulative intervals (acc[i], acc[i+1]]
//for the draw r. The open-left, closed-right convention means a draw
//landing exactly on acc[i] does not select interval i. At most one
//interval can match; if none does, the step is hopless.
func (E *Engine) selectTarget(r float64, active []int) {
	n := E.sys.NStates()
	for i := 0; i < n; i++ {
		if i == E.state {
			continue
		}
		if r > E.acc[i] && r <= E.acc[i+1] {
			E.hopped = true
			E.state = i
			active[0] = E.state
		}
	}
}

//evaluateHop resolves a selected hop: it solves for the rescaling factor,
//applies the frustration rules in order, updates the velocities and rolls
//back the running state on rejection. Exactly one event line is recorded
//per accepted or frustrated hop; silent steps record nothing.
func (E *Engine) evaluateHop(active []int, cav *CavityData) *Transition {
	tr := &Transition{From: E.stateOld, To: E.state}
	if !E.hopped {
		return tr
	}
	sys := E.sys
	if cav != nil && cav.Trivial {
		//A detected trivial crossing forces the transition; no rescaling
		//and no frustration apply.
		tr.Accepted = true
		tr.Factor = 1
		E.record(fmt.Sprintf("trivial crossing: forced hop %d -> %d", E.stateOld, E.state))
		return tr
	}
	target := E.state
	gap := sys.States[target].Energy - sys.States[E.stateOld].Energy
	a, b, det := E.rescaleCoeffs(E.stateOld, target, gap)
	mode := E.opt.Rescale

	//Frustration rules, in order. Later rules override earlier ones,
	//except that the augment fallback wins over the no-real-root rule.
	reject := false
	if mode == RescaleEnergy && sys.EkinQM < mqc.Eps {
		reject = true
	}
	if sys.EkinQM < gap {
		reject = true
	}
	if det < 0 {
		reject = true
	}
	if mode == RescaleAugment && sys.EkinQM > gap {
		reject = false
	}

	var x float64
	if reject {
		E.frustrated = true
		tr.Frustrated = true
		tr.To = E.stateOld
		reason := "no real root for the rescaling factor"
		if sys.EkinQM < gap {
			reason = "kinetic energy below the potential gap"
		}
		if mode != RescaleEnergy && a < mqc.Eps {
			reason = "vanishing coupling vector"
		}
		if mode == RescaleEnergy && sys.EkinQM < mqc.Eps {
			reason = "vanishing kinetic energy"
		}
		//Roll back the running state and the caller's state-index list.
		E.hopped = false
		E.state = E.stateOld
		active[0] = E.state
		if E.opt.Reject == RejectKeep {
			E.record(fmt.Sprintf("frustrated hop %d -> %d: %s; velocity unchanged", E.stateOld, target, reason))
			sys.UpdateKinetic()
			return tr
		}
		//RejectReverse. The isotropic mode has no coupling direction, so
		//the reversal is a full sign flip of the QM velocities. A coupling
		//vector of zero norm gives the quadratic modes no direction either;
		//reversing along it is a no-op, not a division.
		if mode == RescaleEnergy {
			x = -1
		} else if a < mqc.Eps {
			E.record(fmt.Sprintf("frustrated hop %d -> %d: %s; velocity unchanged", E.stateOld, target, reason))
			sys.UpdateKinetic()
			return tr
		} else {
			x = -b / a
		}
		tr.Factor = x
		E.record(fmt.Sprintf("frustrated hop %d -> %d: %s; velocity reversed along the coupling direction", E.stateOld, target, reason))
		E.applyRescale(x, E.stateOld, target, det, gap)
		sys.UpdateKinetic()
		return tr
	}

	tr.Accepted = true
	fallback := false
	switch {
	case mode == RescaleEnergy:
		x = isotropicFactor(gap, sys.EkinQM)
	case mode == RescaleAugment && det < 0:
		x = isotropicFactor(gap, sys.EkinQM)
		fallback = true
	default:
		x = quadraticRoot(a, b, det)
	}
	tr.Factor = x
	E.applyRescale(x, E.stateOld, target, det, gap)
	sys.UpdateKinetic()
	if fallback {
		E.record(fmt.Sprintf("accepted hop %d -> %d: no real rescaling root, velocities isotropically rescaled by %.8f", E.stateOld, E.state, x))
	} else {
		E.record(fmt.Sprintf("accepted hop %d -> %d: rescaling factor %.8f", E.stateOld, E.state, x))
	}
	return tr
}

//applyDecoherence invokes the configured corrector. IDC runs only when a
//hop was attempted (accepted or frustrated); EDC runs every step unless
//the kinetic energy vanishes, in which case the time constant is undefined
//and the electronic state passes through unchanged. After a correction the
//cavity basis transform is re-applied so the next step computes
//probabilities in the right representation.
func (E *Engine) applyDecoherence(cav *CavityData) error {
	var corrected bool
	switch E.opt.Dec {
	case DecNone:
		return nil
	case DecIDC:
		if E.hopped || E.frustrated {
			E.corr.correct(E.sys, E.state, E.dt)
			corrected = true
		}
	case DecEDC:
		if E.sys.EkinQM > mqc.Eps {
			E.corr.correct(E.sys, E.state, E.dt)
			corrected = true
		}
	}
	if corrected && cav != nil && cav.Transform != nil {
		if err := cav.Transform.Adiabatic2Diabatic(E.sys); err != nil {
			return errDecorate(err, "applyDecoherence")
		}
	}
	return nil
}

//errDecorate asserts that err implements mqc.Error, decorates it with the
//caller's name and returns it.
func errDecorate(err error, caller string) error {
	err2 := err.(mqc.Error)
	err2.Decorate(caller)
	return err2
}
