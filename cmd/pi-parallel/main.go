// Command pi-parallel prints the first N decimal digits of π computed by the
// shared-memory worker pipeline (K goroutines chained over bounded channels).
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
	workers := flag.Int("workers", 4, "number of pipeline workers")
	bound := flag.Int("bound", 64, "capacity of each inter-stage channel")
	flag.Parse()

	if *digits < 1 {
		log.Fatalf("pi-parallel: -digits must be >= 1")
	}
	if *workers < 1 {
		log.Fatalf("pi-parallel: -workers must be >= 1")
	}

	stream := spigot.PiParallel(context.Background(), *digits, *workers, *bound)

	count := 0
	fmt.Print("PI: 3.")
	for d := range stream {
		if count == 0 {
			count++
			continue
		}
		fmt.Print(int(d))
		count++
	}
	fmt.Println()

	if count < *digits {
		log.Printf("pi-parallel: stream closed early, got %d of %d digits", count, *digits)
		os.Exit(1)
	}
}
