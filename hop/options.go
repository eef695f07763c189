/*
 * options.go, part of gomqc.
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

import "strings"

//RescaleMode selects how the nuclear velocities are adjusted to conserve
//total energy across an accepted hop.
type RescaleMode int

const (
	//RescaleEnergy rescales all QM velocities isotropically by
	//sqrt(1 - gap/Ekin). It is the only mode usable when the backend
	//provides scalar couplings only.
	RescaleEnergy RescaleMode = iota
	//RescaleVelocity adds x*d to the velocities, with d the coupling vector
	//and x the root of a mass-weighted quadratic.
	RescaleVelocity
	//RescaleMomentum adds x*d/m to the velocities, i.e. the adjustment is
	//along the coupling direction in momentum space.
	RescaleMomentum
	//RescaleAugment behaves like RescaleMomentum but falls back to the
	//isotropic rescale when the quadratic has no real root, so it never
	//frustrates a hop on solvability alone.
	RescaleAugment
)

var rescaleNames = []string{"energy", "velocity", "momentum", "augment"}

func (m RescaleMode) String() string {
	if m < 0 || int(m) >= len(rescaleNames) {
		return "unknown"
	}
	return rescaleNames[m]
}

//quadratic reports whether the mode solves the coupling-direction quadratic.
func (m RescaleMode) quadratic() bool { return m != RescaleEnergy }

//ParseRescaleMode returns the RescaleMode named by s, case-insensitively.
func ParseRescaleMode(s string) (RescaleMode, error) {
	for i, n := range rescaleNames {
		if strings.ToLower(s) == n {
			return RescaleMode(i), nil
		}
	}
	return 0, Error{"Invalid rescaling method for accepted hops: " + s, []string{"ParseRescaleMode"}}
}

//RejectMode selects what happens to the velocities when a hop is frustrated.
type RejectMode int

const (
	//RejectKeep leaves the velocities untouched.
	RejectKeep RejectMode = iota
	//RejectReverse reverses the velocity component along the coupling
	//direction (a full sign flip in the isotropic RescaleEnergy mode).
	RejectReverse
)

var rejectNames = []string{"keep", "reverse"}

func (m RejectMode) String() string {
	if m < 0 || int(m) >= len(rejectNames) {
		return "unknown"
	}
	return rejectNames[m]
}

//ParseRejectMode returns the RejectMode named by s, case-insensitively.
func ParseRejectMode(s string) (RejectMode, error) {
	for i, n := range rejectNames {
		if strings.ToLower(s) == n {
			return RejectMode(i), nil
		}
	}
	return 0, Error{"Invalid rescaling method for frustrated hops: " + s, []string{"ParseRejectMode"}}
}

//Scheme selects the decoherence correction applied after each hop decision.
type Scheme int

const (
	//DecNone applies no correction.
	DecNone Scheme = iota
	//DecIDC is the instantaneous decoherence correction: after every
	//accepted or frustrated hop the electronic state collapses fully onto
	//the running state.
	DecIDC
	//DecEDC is the energy-based decoherence correction: every step, each
	//non-running amplitude decays with the Granucci-Persico energy-gap
	//time constant and the running amplitude is renormalized.
	DecEDC
)

var schemeNames = []string{"none", "idc", "edc"}

func (s Scheme) String() string {
	if s < 0 || int(s) >= len(schemeNames) {
		return "unknown"
	}
	return schemeNames[s]
}

//ParseScheme returns the decoherence Scheme named by s, case-insensitively.
//The empty string parses to DecNone.
func ParseScheme(s string) (Scheme, error) {
	if s == "" {
		return DecNone, nil
	}
	for i, n := range schemeNames {
		if strings.ToLower(s) == n {
			return Scheme(i), nil
		}
	}
	return 0, Error{"Invalid decoherence correction: " + s, []string{"ParseScheme"}}
}

//Options collects the construction-time choices of the engine. Invalid
//combinations are rejected by New, never silently adjusted.
type Options struct {
	Rescale RescaleMode
	Reject  RejectMode
	Dec     Scheme
	//EDCParam is the energy-scale constant C (a.u.) of the EDC time
	//constant tau = (1 + C/Ekin)/|dE|. Zero means the customary 0.1 a.u.
	EDCParam float64
	//Cavity marks the polaritonic variant: Step then requires per-step
	//CavityData and probabilities follow the cavity-coupled expression.
	Cavity bool
	//Seed feeds the engine-private random source.
	Seed int64
}
