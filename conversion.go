/*
 * conversion.go, part of gomqc.
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

//This provides useful conversion factors and other constants

//Conversions
const (
	H2Kcal  = 627.509 //Hartree 2 Kcal/mol
	Kcal2H  = 1 / 627.509
	A2Bohr  = 1.889725989
	Bohr2A  = 1 / 1.889725989
	Fs2Au   = 41.34137304 //femtosecond 2 atomic time units
	Au2Fs   = 1 / 41.34137304
	H2K     = 3.1577464e5 //Hartree 2 Kelvin
	Amu2Au  = 1822.888486 //atomic mass unit 2 electron masses
)

//Others
const (
	//Eps is the threshold under which populations, kinetic energies and
	//quadratic coefficients are taken as zero.
	Eps = 1.0e-12
)
