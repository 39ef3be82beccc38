//go:build distributed

// Command pi-distributed prints the first N decimal digits of π computed by
// a ring of self-relaunched worker processes connected over loopback TCP.
// Build with -tags distributed; the invoked process becomes rank 0 (the
// coordinator) and spawns its own ranks 1..workers as children — no external
// launcher is required.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"

	"pi-spigot-service/internal/spigot/distributed"
)

func main() {
	if _, err := distributed.ConfigFromEnv(); err == nil {
		runChild()
		return
	}
	runCoordinator()
}

// runChild is executed in a self-relaunched worker process; its rank, total,
// base port and digit count arrive via environment variables set by
// distributed.SpawnWorkers.
func runChild() {
	cfg, err := distributed.ConfigFromEnv()
	if err != nil {
		log.Fatalf("pi-distributed: child: %v", err)
	}
	if _, err := distributed.RunRank(context.Background(), cfg); err != nil {
		log.Fatalf("pi-distributed: rank %d: %v", cfg.Rank, err)
	}
}

func runCoordinator() {
	digits := flag.Int("digits", 1000, "number of decimal digits of pi to compute")
	workers := flag.Int("workers", 4, "number of worker processes (ranks 1..workers)")
	basePort := flag.Int("base-port", 19000, "first TCP port of the ring; rank r listens on base-port+r")
	flag.Parse()

	if *digits < 1 {
		log.Fatalf("pi-distributed: -digits must be >= 1")
	}
	if *workers < 1 {
		log.Fatalf("pi-distributed: -workers must be >= 1")
	}

	exePath, err := os.Executable()
	if err != nil {
		log.Fatalf("pi-distributed: resolving own executable path: %v", err)
	}

	total := *workers + 1
	cmds, err := distributed.SpawnWorkers(exePath, total, *basePort, *digits)
	if err != nil {
		log.Fatalf("pi-distributed: spawning worker ranks: %v", err)
	}
	defer reapAll(cmds)

	cfg := distributed.ProcessConfig{Rank: 0, Total: total, BasePort: *basePort, Digits: *digits}
	stream, err := distributed.RunRank(context.Background(), cfg)
	if err != nil {
		log.Fatalf("pi-distributed: rank 0: %v", err)
	}

	count := 0
	fmt.Print("PI: 3.")
	for d := range stream {
		if count == 0 {
			count++
			continue
		}
		fmt.Print(d)
		count++
	}
	fmt.Println()

	if count < *digits {
		log.Printf("pi-distributed: stream closed early, got %d of %d digits", count, *digits)
		os.Exit(1)
	}
}

func reapAll(cmds []*exec.Cmd) {
	for _, c := range cmds {
		_ = c.Wait()
	}
}
