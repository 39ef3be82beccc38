package distributed

import (
	"context"
	"net"
)

// RunLocal drives the full s-rank distributed pipeline in-process: rank 0
// (the coordinator) and ranks 1..s-1 (workers) each as a goroutine, wired
// into a ring of net.Pipe() pairs — rank 0 -> rank s-1 -> rank s-2 -> ... ->
// rank 1 -> rank 0 — matching the message schedule in the distributed
// component design exactly. No OS processes are spawned; this is the
// transport the library's PiDistributed entry point uses, and what its
// tests exercise.
//
// s must be >= 1. s == 1 degenerates to the coordinator alone, emitting n
// zeros through its own carry-correction stream with no workers at all.
func RunLocal(ctx context.Context, n, s int) <-chan int {
	if s <= 1 {
		return RunCoordinatorAlone(ctx, n)
	}

	numWorkers := s - 1
	l := (10 * n) / 3
	segs := Partition(l, numWorkers)

	// edge[x] carries the message sent by rank x to its ring successor:
	// rank 0 -> rank s-1 for x == 0, rank x -> rank x-1 for x in [1, s-1].
	// Each edge is one net.Pipe() pair; edge[x].send is held by rank x,
	// edge[x].recv by its successor.
	type edge struct{ send, recv net.Conn }
	edges := make([]edge, s)
	for x := 0; x < s; x++ {
		a, b := net.Pipe()
		edges[x] = edge{send: a, recv: b}
	}

	for r := 1; r < s; r++ {
		seg := segs[r-1]
		outLink := netLink{edges[r].send}
		var inLink netLink
		if r == s-1 {
			inLink = netLink{edges[0].recv}
		} else {
			inLink = netLink{edges[r+1].recv}
		}
		isLowest := r == 1
		go RunWorker(ctx, seg, isLowest, inLink, outLink)
	}

	toHighest := netLink{edges[0].send}
	fromLowest := netLink{edges[1].recv}
	return RunCoordinator(ctx, n, toHighest, fromLowest)
}

// RunCoordinatorAlone handles the s==1 degenerate case: no workers exist, so
// the coordinator feeds n zero-value carries directly into its own
// carry-correction stream.
func RunCoordinatorAlone(ctx context.Context, n int) <-chan int {
	out := make(chan int)
	go func() {
		defer close(out)
		stream := &carryStream{}
		for i := 0; i < n; i++ {
			for _, digit := range stream.push(0) {
				select {
				case out <- digit:
				case <-ctx.Done():
					return
				}
			}
		}
		for _, digit := range stream.close() {
			select {
			case out <- digit:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// netLink adapts a net.Conn to the Link interface (identical method set;
// kept as a distinct type so call sites read as "this is a Link", not "this
// happens to be a net.Conn").
type netLink struct {
	net.Conn
}
