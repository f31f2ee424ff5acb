// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package invoke

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLoader is returned when a loader is neither a string nor a list of strings.
	ErrInvalidLoader = errors.New("invalid loader")
	// ErrEmptyProgram is returned when a loader does not name a program.
	ErrEmptyProgram = errors.New("loader does not name a program")
	// ErrUnknownBuiltin is returned when a loader names a builtin that is not registered.
	ErrUnknownBuiltin = errors.New("unknown builtin")
	// ErrBuiltinArgs is returned when a builtin loader is given arguments.
	ErrBuiltinArgs = errors.New("builtin loaders do not take arguments")
	// ErrCouldNotStartProcess is returned when the handler program could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrSignalReceived is returned when a signal was passed on to the handler program and it failed.
	ErrSignalReceived = errors.New("signal received")
	// ErrDuplicateSignalReceived is returned when a duplicate signal is received, forcing process termination.
	ErrDuplicateSignalReceived = errors.New("duplicate signal received, process forcefully terminated")
	// ErrProcessKilled is returned when the context ends before the handler program exits.
	ErrProcessKilled = errors.New("process killed")
)

// ExitError is returned when a handler program exits with a non-zero code.
// Code is -1 when the program was terminated by a signal.
type ExitError struct {
	Program string
	Code    int
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Program, e.Code)
}

// PanicError is returned when a builtin panics.
type PanicError struct {
	Builtin string
	Value   any
}

// Error implements the error interface for PanicError.
func (e *PanicError) Error() string {
	prefix := "builtin " + e.Builtin + " panic:"

	switch x := e.Value.(type) {
	case string:
		return fmt.Sprintf("%s %s", prefix, x)
	case error:
		return fmt.Sprintf("%s %s", prefix, x.Error())
	default:
		return fmt.Sprintf("%s %v", prefix, x)
	}
}

// Unwrap returns the panic value if it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}

	return nil
}
