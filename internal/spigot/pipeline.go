package spigot

import (
	"context"
	"log"
	"math"
	"sync"
)

// PiParallel returns the same digit stream as PiSequential, computed by a
// coordinator goroutine feeding k worker goroutines chained high-to-low: the
// coordinator sends N carry-zero triggers into the highest segment's worker,
// each worker folds its exclusively-owned segment and forwards the result to
// the next-lower worker, and worker 0's output (after the carry-correction
// stream) is the returned channel. bound is the capacity of every inter-stage
// channel and limits how far the coordinator can run ahead of the consumer.
//
// k <= 0 or n <= 0 yields an empty, already-closed stream.
func PiParallel(ctx context.Context, n, k, bound int) <-chan Digit {
	out := make(chan Digit)
	if n <= 0 || k <= 0 {
		close(out)
		return out
	}
	if bound < 1 {
		bound = 1
	}

	l := columnCount(n)
	segs := Partition(l, k)

	// stage[k] feeds worker k-1 (highest segment); stage[0] is worker 0's
	// output, the raw digit stream. The coordinator writes to stage[k],
	// worker k-1..0 each read from stage[w+1] and write to stage[w].
	stages := make([]chan int64, k+1)
	for i := range stages {
		stages[i] = make(chan int64, bound)
	}

	fail := make(chan struct{})
	var failOnce sync.Once
	reportFail := func(format string, args ...any) {
		failOnce.Do(func() {
			log.Printf(format, args...)
			close(fail)
		})
	}

	for w := 0; w < k; w++ {
		seg := segs[w]
		in := stages[w+1]
		outCh := stages[w]
		go func(w int, seg Segment, in <-chan int64, outCh chan<- int64) {
			defer close(outCh)
			defer func() {
				if r := recover(); r != nil {
					reportFail("spigot: parallel worker %d panicked: %v", w, r)
				}
			}()

			local := make([]int64, seg.Length)
			for i := range local {
				local[i] = 2
			}

			for {
				var carry int64
				select {
				case c, ok := <-in:
					if !ok {
						return
					}
					carry = c
				case <-fail:
					return
				case <-ctx.Done():
					return
				}

				for li := seg.Length - 1; li >= 0; li-- {
					global := int64(seg.Start + li)
					den, err := Denominator(global)
					if err != nil {
						reportFail("spigot: parallel: %v", err)
						return
					}
					x := local[li]*10 + carry*(global+1)
					local[li] = x % den
					carry = x / den
					if local[li] > math.MaxInt32 {
						reportFail("spigot: parallel: %v", ErrOverflow)
						return
					}
				}

				select {
				case outCh <- carry:
				case <-fail:
					return
				case <-ctx.Done():
					return
				}
			}
		}(w, seg, in, outCh)
	}

	// Coordinator: send N carry-zero triggers to worker k-1's input, then
	// close it; propagation to worker 0 happens through the chain above.
	go func() {
		defer close(stages[k])
		for d := 0; d < n; d++ {
			select {
			case stages[k] <- 0:
			case <-fail:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	// Consumer: read worker 0's raw output, run it through the carry
	// correction stream, and emit final digits.
	go func() {
		defer close(out)
		raw := stages[0]
		stream := NewCarryStream()
		count := 0
		for count < n {
			select {
			case r, ok := <-raw:
				if !ok {
					return
				}
				count++
				for _, digit := range stream.Push(int(r)) {
					select {
					case out <- Digit(digit):
					case <-ctx.Done():
						return
					}
				}
			case <-fail:
				return
			case <-ctx.Done():
				return
			}
		}
		for _, digit := range stream.Close() {
			select {
			case out <- Digit(digit):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
