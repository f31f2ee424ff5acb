// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/yaam/internal/ctxlog"
)

// Watch reads signals from sigCh until it is closed or the same signal arrives twice.
// On the second signal of a type it stops delivery to sigCh, closes it and calls cancel.
// The first signal is left to whatever is running, usually a handler program that has
// already received it.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for sig := range sigCh {
		if _, ok := seen[sig]; ok {
			ctxlog.Warn(ctx, "received signal twice, cancelling", "signal", sig.String())
			Stop(sigCh)
			close(sigCh)
			cancel()

			return
		}

		ctxlog.Info(ctx, "received signal, press again to cancel", "signal", sig.String())

		seen[sig] = struct{}{}
	}
}
