// Package handlers adapts the internal/spigot engine to the HTTP job surface
// (internal/resp.Result), the way the teacher's cpu.go adapted its CPU-bound
// kernels.
package handlers

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"pi-spigot-service/internal/resp"
	"pi-spigot-service/internal/spigot"
)

// ============================================================================
// /pi — first N decimal digits of π, computed by the sequential, parallel or
// distributed spigot engine.
//   - Parám. requeridos: digits (>=1; cap a maxDigits)
//   - Parám. opcionales : method=sequential|parallel|distributed (default: sequential)
//                         workers (parallel/distributed only, default 4)
//                         bound   (parallel only, channel capacity, default 64)
//   - Cancelación       : ctx propagado hasta el engine; sin timeout local propio.
//   - JSON              : { "digits","method","pi","truncated","elapsed_ms" }
// ============================================================================
func PiJSONCtx(ctx context.Context, params map[string]string) resp.Result {
	const maxDigits = 100000

	d, err := strconv.Atoi(params["digits"])
	if err != nil || d < 1 {
		return resp.BadReq("digits", "digits must be integer >= 1")
	}
	if d > maxDigits {
		d = maxDigits
	}

	method := params["method"]
	if method == "" {
		method = "sequential"
	}
	if method != "sequential" && method != "parallel" && method != "distributed" {
		return resp.BadReq("method", "use method=sequential|parallel|distributed")
	}

	start := time.Now()

	var stream <-chan spigot.Digit
	switch method {
	case "sequential":
		stream = spigot.PiSequential(ctx, d)
	case "parallel":
		workers := intParam(params, "workers", 4)
		bound := intParam(params, "bound", 64)
		stream = spigot.PiParallel(ctx, d, workers, bound)
	case "distributed":
		workers := intParam(params, "workers", 4)
		s, err := spigot.PiDistributed(ctx, d, workers+1)
		if err != nil {
			return resp.IntErr("distributed_init", err.Error())
		}
		stream = s
	}

	digits, truncated := drain(stream, d)

	type outT struct {
		Digits    int    `json:"digits"`
		Method    string `json:"method"`
		Truncated bool   `json:"truncated"`
		Pi        string `json:"pi"`
		Elapsed   int64  `json:"elapsed_ms"`
	}
	out := outT{
		Digits:    d,
		Method:    method,
		Truncated: truncated,
		Pi:        digits,
		Elapsed:   time.Since(start).Milliseconds(),
	}
	b, _ := json.Marshal(out)
	return resp.JSONOK(string(b))
}

// drain renders a spigot.Digit stream as "3.D1D2..." (n>=1 guaranteed by the
// caller). truncated is true when the stream closed early (cancellation or
// an internal overflow), i.e. fewer than n digits arrived.
func drain(stream <-chan spigot.Digit, n int) (string, bool) {
	out := make([]byte, 0, n+2)
	count := 0
	for dg := range stream {
		if count == 0 {
			out = append(out, byte('0'+int(dg)), '.')
		} else {
			out = append(out, byte('0'+int(dg)))
		}
		count++
	}
	if count == 0 {
		return "", true
	}
	return string(out), count < n
}

func intParam(params map[string]string, key string, def int) int {
	v, ok := params[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}
