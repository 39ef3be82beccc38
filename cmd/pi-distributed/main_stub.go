//go:build !distributed

// pi-distributed's real implementation self-relaunches child processes and
// is only compiled in under the "distributed" build tag, since it spawns
// real OS processes and binds real TCP ports — behavior that should never
// be exercised by an unqualified `go build`/`go test` of this module.
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "pi-distributed: built without the 'distributed' build tag; rebuild with -tags distributed")
	os.Exit(1)
}
