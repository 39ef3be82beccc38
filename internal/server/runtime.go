package server

import (
	"os"
	"sync/atomic"
	"time"
)

var (
	started  = time.Now()
	connSeen uint64
)

func markConnAccepted() { atomic.AddUint64(&connSeen, 1) }

// ListenAndServe llama a markConnAccepted() por cada socket aceptado;
// ConnCount devuelve ese total.

func Uptime() time.Duration               { return time.Since(started) }
func ConnCount() uint64                   { return atomic.LoadUint64(&connSeen) }
func PID() int                            { return os.Getpid() }
func StartedAt() time.Time                { return started }
