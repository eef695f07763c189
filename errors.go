/*
 * errors.go, part of gomqc.
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

import "fmt"

//This error predates the "wrapping" error system of Go (i.e. the "%w" directive and the errors package). We should avoid
//using the Decorate method and/or make it use the "%w" directive internally.

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Allows adding information to the error as it is passed up the calling stack. Each call also returns the current "decoration" slice. If passed an empty string, it should just return the current value, not add the empty string to the slice.
}

// CError (Concrete Error) implements the Error interface. It is the error type returned by the functions in this package.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

//Decorate adds the string given to the decoration slice of the error, and returns the resulting slice.
func (err CError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//NewCError builds a CError with the given message and caller stack.
func NewCError(msg string, deco ...string) CError {
	return CError{msg, deco}
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//goMQC only panics from "fundamental" functions, where a failure implies a bug in the
//calling program rather than a recoverable condition.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

//Constant PanicMsgs
const (
	ErrNilData       = PanicMsg("goMQC: Nil data given")
	ErrShape         = PanicMsg("goMQC: Dimension mismatch")
	ErrStateIndex    = PanicMsg("goMQC: Electronic state index out of range")
	ErrNotEnoughMass = PanicMsg("goMQC: Masses and coordinates have different lengths")
)

//errorf is a convenience wrapper building a CError from a format string.
func errorf(caller, format string, a ...interface{}) CError {
	return CError{fmt.Sprintf(format, a...), []string{caller}}
}
