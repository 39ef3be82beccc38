package distributed

import (
	"context"
	"errors"
	"math"
)

// ErrOverflow mirrors spigot.ErrOverflow: a settled segment cell exceeded the
// 32-bit range this module guarantees. Kept as its own sentinel here (rather
// than importing the top-level spigot package) so that this package has no
// dependency on its own caller — spigot.PiDistributed imports distributed,
// not the other way around.
var ErrOverflow = errors.New("distributed: arithmetic overflow")

// Segment is the distributed analogue of spigot.Segment: the contiguous
// global-index range one rank owns for the computation's lifetime.
type Segment struct {
	Start  int
	Length int
}

// Partition splits a buffer of the given length into k near-equal segments,
// identical in contract to spigot.Partition (duplicated here to keep this
// package import-free of its caller).
func Partition(length, k int) []Segment {
	if k <= 0 {
		return nil
	}
	base := length / k
	rem := length % k
	segs := make([]Segment, k)
	start := 0
	for j := 0; j < k; j++ {
		size := base
		if j < rem {
			size++
		}
		segs[j] = Segment{Start: start, Length: size}
		start += size
	}
	return segs
}

func denominator(i int64) int64 {
	if i == 0 {
		return 10
	}
	return 2*i + 1
}

// carryStream is the distributed package's own copy of the held-digit/
// nines-run transducer (see spigot.CarryStream for the documented algorithm
// this mirrors exactly).
type carryStream struct {
	held    int
	hasHeld bool
	nines   int
}

func (c *carryStream) push(d int) []int {
	switch {
	case d == 9:
		c.nines++
		return nil
	case d < 9:
		var out []int
		if c.hasHeld {
			out = append(out, c.held)
		}
		for i := 0; i < c.nines; i++ {
			out = append(out, 9)
		}
		c.held, c.hasHeld, c.nines = d, true, 0
		return out
	default:
		var out []int
		if c.hasHeld {
			out = append(out, c.held+1)
		}
		for i := 0; i < c.nines; i++ {
			out = append(out, 0)
		}
		c.held, c.hasHeld, c.nines = d%10, true, 0
		return out
	}
}

func (c *carryStream) close() []int {
	var out []int
	if c.hasHeld {
		out = append(out, c.held)
	}
	for i := 0; i < c.nines; i++ {
		out = append(out, 9)
	}
	c.hasHeld = false
	c.nines = 0
	return out
}

// RunCoordinator is rank 0. It sends n carry-zero triggers followed by an END
// sentinel down toHighest (rank S-1's inbound link), and concurrently reads n
// CARRY frames from fromLowest (rank 1's outbound link to rank 0), pushing
// each through a carry-correction stream and writing the resulting final
// digits (values 0-9) to the returned channel, which is closed after n
// digits, on transport error, or when ctx is cancelled.
func RunCoordinator(ctx context.Context, n int, toHighest, fromLowest Link) <-chan int {
	out := make(chan int)

	go func() {
		defer toHighest.Close()
		for d := 0; d < n; d++ {
			if err := sendCarry(toHighest, 0); err != nil {
				return
			}
		}
		sendEnd(toHighest)
	}()

	go func() {
		defer close(out)
		defer fromLowest.Close()
		stream := &carryStream{}
		for count := 0; count < n; count++ {
			v, end, err := recvFrame(fromLowest)
			if err != nil || end {
				return
			}
			for _, digit := range stream.push(int(v)) {
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

// RunWorker is rank r in [1, S-1]. It owns seg exclusively for its lifetime,
// receiving carries on in (from rank r+1, or from rank 0 if this is the
// highest rank) and sending the folded result on out (to rank r-1). isLowest
// must be true exactly for rank 1: the lowest rank terminates silently on the
// END sentinel instead of forwarding it further (rank 0's receive loop never
// expects one).
func RunWorker(ctx context.Context, seg Segment, isLowest bool, in, out Link) error {
	defer in.Close()
	defer out.Close()
	local := make([]int64, seg.Length)
	for i := range local {
		local[i] = 2
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		v, end, err := recvFrame(in)
		if err != nil {
			return err
		}
		if end {
			if !isLowest {
				return sendEnd(out)
			}
			return nil
		}

		carry := int64(v)
		for li := seg.Length - 1; li >= 0; li-- {
			global := int64(seg.Start + li)
			den := denominator(global)
			x := local[li]*10 + carry*(global+1)
			local[li] = x % den
			carry = x / den
			if local[li] > math.MaxInt32 {
				return ErrOverflow
			}
		}

		if err := sendCarry(out, int32(carry)); err != nil {
			return err
		}
	}
}
