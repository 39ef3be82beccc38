package spigot

import (
	"context"

	"pi-spigot-service/internal/spigot/distributed"
)

// PiDistributed returns the first n decimal digits of π computed across s
// ranks (rank 0, the coordinator, plus s-1 workers) connected by the
// package's in-process net.Pipe transport (see internal/spigot/distributed).
// For s >= 2 it is algorithmically identical to PiParallel with k = s-1
// workers, but communicates over Links instead of Go channels, matching the
// message-passing design the real multi-process CLI transport also drives (via
// distributed.RunRank / distributed.RunLocal). s == 1 runs the coordinator
// alone: its n zero triggers pass straight through the carry-correction
// stream, so the result is n zeros, not digits of π.
//
// s must be >= 1; n <= 0 yields an empty stream. PiDistributed only ever
// returns a non-nil error if the in-process transport itself fails to wire
// up, which this transport cannot do — the error return exists to match the
// real multi-process transport's contract, where process/socket setup can
// fail.
func PiDistributed(ctx context.Context, n, s int) (<-chan Digit, error) {
	out := make(chan Digit)
	if n <= 0 {
		close(out)
		return out, nil
	}
	if s < 1 {
		s = 1
	}

	raw := distributed.RunLocal(ctx, n, s)
	go func() {
		defer close(out)
		for d := range raw {
			select {
			case out <- Digit(d):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
