/*
 * atomicdata.go, part of gomqc.
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

//A map for assigning mass (in amu) to elements.
//Note that just the common elements in photochemical applications are present
var symbolMass = map[string]float64{
	"H":  1.008,
	"D":  2.014,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"F":  18.998,
	"Cl": 35.45,
	"Br": 79.904,
	"I":  126.90,
	"Si": 28.08,
	"Na": 22.99,
	"K":  39.1,
	"Mg": 24.30,
	"Ca": 40.08,
	"Zn": 65.38,
	"Fe": 55.84,
	"Ag": 107.87,
	"Au": 196.97,
}

//SymbolMass returns the mass of the element with the given chemical symbol,
//in electron masses (Hartree atomic units), and true, or 0 and false if the
//element is not in the internal table.
func SymbolMass(symbol string) (float64, bool) {
	m, ok := symbolMass[symbol]
	if !ok {
		return 0, false
	}
	return m * Amu2Au, true
}
