// Command pi-sequential prints the first N decimal digits of π computed by
// the single-goroutine spigot engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"pi-spigot-service/internal/spigot"
)

func main() {
	digits := flag.Int("digits", 1000, "number of decimal digits of pi to compute")
	flag.Parse()

	if *digits < 1 {
		log.Fatalf("pi-sequential: -digits must be >= 1")
	}

	stream := spigot.PiSequential(context.Background(), *digits)

	count := 0
	fmt.Print("PI: 3.")
	for d := range stream {
		if count == 0 {
			count++
			continue // D[0] == 3, already printed above
		}
		fmt.Print(int(d))
		count++
	}
	fmt.Println()

	if count < *digits {
		log.Printf("pi-sequential: stream closed early, got %d of %d digits", count, *digits)
		os.Exit(1)
	}
}
