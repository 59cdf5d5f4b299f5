/*
 * errors.go, part of chemrun.
 *
 * Copyright 2026 Esteban Moreno <emoreno{at}tutanotaDOTcom>
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

package chem

import "errors"

// The error kinds every package in this library reports. Callers match them
// with errors.Is; the concrete type carries the stage and detail.
var (
	//ErrConfiguration: invalid or conflicting calculator parameters,
	//detected before anything runs.
	ErrConfiguration = errors.New("invalid calculator configuration")

	//ErrCalculation: the calculator exited abnormally or produced no
	//usable output. Not retried here; retry policy belongs to the
	//workflow engine.
	ErrCalculation = errors.New("calculation failed")

	//ErrParse: the calculator ran but its output is malformed or
	//truncated and the required fields cannot be extracted.
	ErrParse = errors.New("cannot parse calculator output")

	//ErrStructure: the input structure or wrapper is missing its
	//expected shape.
	ErrStructure = errors.New("bad input structure")
)

// Error is the interface all errors of this library implement. The Decorate
// method adds information about the calling function when the error is
// passed up, without wrapping the error in something else. Passing an empty
// string just returns the current decoration trail.
type Error interface {
	error
	Decorate(string) []string
}

// CalcError is the concrete error type. Kind is one of the sentinel errors
// above, Program the calculator family, Name the job or input name, Message
// the underlying detail.
type CalcError struct {
	Kind    error
	Program string
	Name    string
	Message string
	deco    []string
}

func (err *CalcError) Error() string {
	s := err.Kind.Error()
	if err.Program != "" {
		s += " (" + err.Program
		if err.Name != "" {
			s += "/" + err.Name
		}
		s += ")"
	}
	if err.Message != "" {
		s += ": " + err.Message
	}
	return s
}

// Unwrap exposes the kind so errors.Is matches the sentinels.
func (err *CalcError) Unwrap() error {
	return err.Kind
}

func (err *CalcError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// NewError builds a CalcError for the given kind.
func NewError(kind error, program, name, message string) *CalcError {
	return &CalcError{Kind: kind, Program: program, Name: name, Message: message}
}

//errDecorate adds the caller name to err's decoration trail if err is one
//of ours, and returns err either way.
func errDecorate(err error, caller string) error {
	var e Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}
