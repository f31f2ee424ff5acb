// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package invoke

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/matt-FFFFFF/yaam/internal/ctxlog"
	"github.com/matt-FFFFFF/yaam/internal/signalbroker"
)

// Program is an external handler program.
type Program struct {
	// Argv is the argument prefix. Argv[0] names the program.
	Argv []string
	// Dir is the directory relative program paths are resolved against.
	Dir   string
	sigCh chan os.Signal // Channel to receive signals, allows mocking in test.
}

// NewProgram creates a Program for argv, declared by a manifest in dir.
func NewProgram(dir string, argv []string) *Program {
	return &Program{
		Argv: slices.Clone(argv),
		Dir:  dir,
	}
}

// Path returns the executable path of the program.
// A name without a path separator is looked up on PATH.
func (p *Program) Path() (string, error) {
	name := p.Argv[0]

	switch {
	case filepath.IsAbs(name):
		return name, nil
	case strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator):
		return filepath.Join(p.Dir, name), nil
	default:
		return exec.LookPath(name)
	}
}

// Run starts the program with filePath appended to its arguments and waits for it to exit.
// The program shares the standard streams of yaam.
// A termination signal is passed on to the program; a second signal of the same kind kills it.
func (p *Program) Run(ctx context.Context, filePath string) error {
	logger := ctxlog.Logger(ctx).With("program", p.Argv[0])

	path, err := p.Path()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCouldNotStartProcess, err)
	}

	sigCh := p.sigCh
	if sigCh == nil {
		sigCh = signalbroker.New(ctx)
		defer signalbroker.Stop(sigCh)
	}

	args := append(slices.Clone(p.Argv), filePath)

	logger.Debug("starting process", "path", path, "args", args[1:])

	ps, err := os.StartProcess(path, args, &os.ProcAttr{
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "pid", ps.Pid)

	done := make(chan struct{})
	reason := make(chan error, 1)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		reason <- watch(ctx, ps, sigCh, done)
	}()

	state, waitErr := ps.Wait()

	close(done)
	wg.Wait()

	killReason := <-reason

	var exitErr error

	switch {
	case waitErr != nil:
		exitErr = waitErr
	case state.ExitCode() != 0:
		exitErr = &ExitError{Program: p.Argv[0], Code: state.ExitCode()}
	}

	logger.Debug("process finished", "error", exitErr)

	if exitErr == nil {
		return nil
	}

	if killReason != nil {
		return errors.Join(killReason, exitErr)
	}

	return exitErr
}

// watch passes signals on to ps and kills it on a duplicate signal or when ctx ends.
// It returns why the process was signalled, or nil.
func watch(ctx context.Context, ps *os.Process, sigCh <-chan os.Signal, done <-chan struct{}) error {
	seen := make(map[os.Signal]struct{})

	var reason error

	for {
		select {
		case s, ok := <-sigCh:
			if !ok {
				sigCh = nil
				continue
			}

			if _, dup := seen[s]; dup {
				ctxlog.Info(ctx, "received duplicate signal, killing process", "signal", s.String(), "pid", ps.Pid)
				killPs(ctx, ps)

				return ErrDuplicateSignalReceived
			}

			seen[s] = struct{}{}
			reason = ErrSignalReceived

			ctxlog.Info(ctx, "passing signal to process", "signal", s.String(), "pid", ps.Pid)

			if err := ps.Signal(s); err != nil {
				ctxlog.Info(ctx, "failed to send signal", "signal", s.String(), "error", err)
			}

		case <-ctx.Done():
			ctxlog.Info(ctx, "context done, killing process", "pid", ps.Pid)
			killPs(ctx, ps)

			return errors.Join(ErrProcessKilled, ctx.Err())

		case <-done:
			return reason
		}
	}
}

func killPs(ctx context.Context, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Debug(ctx, "process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Error(ctx, "process kill error", "pid", ps.Pid, "error", err)
	}
}
