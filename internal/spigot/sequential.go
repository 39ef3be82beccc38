package spigot

import (
	"context"
	"log"
	"math"
)

// columnCount returns the accumulator length L = floor(10*n/3) for n
// requested digits.
func columnCount(n int) int {
	return (10 * n) / 3
}

// PiSequential returns a lazily-pulled stream of the first n decimal digits
// of π (D[0] == 3), computed with a single right-to-left sweep of the
// accumulator per output digit. The channel is closed after n digits, after
// ctx is cancelled, or early if an internal arithmetic overflow is detected
// (in which case fewer than n digits are delivered; the failure is logged,
// matching the teacher's log.Printf-on-fatal-condition convention since this
// signature carries no error return).
func PiSequential(ctx context.Context, n int) <-chan Digit {
	out := make(chan Digit)
	if n <= 0 {
		close(out)
		return out
	}

	go func() {
		defer close(out)
		defer func() {
			if r := recover(); r != nil {
				log.Printf("spigot: sequential worker panicked: %v", r)
			}
		}()

		l := columnCount(n)
		a := make([]int64, l)
		for i := range a {
			a[i] = 2
		}

		stream := NewCarryStream()
		for d := 0; d < n; d++ {
			if d&63 == 0 {
				select {
				case <-ctx.Done():
					return
				default:
				}
			}

			carry := int64(0)
			for i := l - 1; i >= 0; i-- {
				den, err := Denominator(int64(i))
				if err != nil {
					log.Printf("spigot: sequential: %v", err)
					return
				}
				x := a[i]*10 + carry*int64(i+1)
				a[i] = x % den
				carry = x / den
				if i == 0 {
					break
				}
				if a[i] > math.MaxInt32 {
					log.Printf("spigot: sequential: %v", ErrOverflow)
					return
				}
			}
			raw := int(carry)

			for _, digit := range stream.Push(raw) {
				select {
				case out <- Digit(digit):
				case <-ctx.Done():
					return
				}
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
