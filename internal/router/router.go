package router

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"pi-spigot-service/internal/handlers"
	"pi-spigot-service/internal/http10"
	"pi-spigot-service/internal/jobs"
	"pi-spigot-service/internal/resp"
	"pi-spigot-service/internal/sched"
)

// -----------------------------------------------------------------------------
// Config de timeout de ejecución para jobs CPU-bound (el único tipo que
// expone este servicio), desde variable de entorno.
//   TIMEOUT_CPU: ej. "60s" (default 60s)
// -----------------------------------------------------------------------------
var cpuTimeout = getDurEnv("TIMEOUT_CPU", 60*time.Second)

func getDurEnv(key string, def time.Duration) time.Duration {
	if s := os.Getenv(key); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			return d
		}
	}
	return def
}

// Manager global para pools.
var manager = sched.NewManager()

var jobman = jobs.NewManager(manager, 10*time.Minute)

// InitPools registra el pool "pi" con la configuración dada.
func InitPools(cfg map[string]int) {
	_ = manager.Register("pi", sched.NewPool("pi",
		func(ctx context.Context, p map[string]string) resp.Result { return handlers.PiJSONCtx(ctx, p) },
		cfg["workers.pi"], cfg["queue.pi"]))
}

// Dispatch resuelve rutas sobre HTTP/1.0 (GET).
func Dispatch(method, target string) resp.Result {
	if method != "GET" {
		return resp.BadReq("method", "only GET")
	}

	path, q := http10.SplitTarget(target)
	args := http10.ParseQuery(q)

	switch path {
	case "/":
		return resp.PlainOK("pi-spigot-service\n")

	// Métricas
	case "/metrics":
		return resp.JSONOK(manager.MetricsJSON())

	// CPU-bound
	case "/pi":
		r, _ := submitSync("pi", args, cpuTimeout)
		return r

	// Jobs
	case "/jobs/submit":
		task := args["task"]
		if task == "" {
			return resp.BadReq("task", "task=<pool_name> required")
		}
		// el timeout lo maneja el Job Manager internamente; aquí sólo encolamos
		params := make(map[string]string, len(args))
		for k, v := range args {
			if k == "task" {
				continue
			}
			params[k] = v
		}
		id := jobman.Submit(task, params, cpuTimeout) // puedes separar por tipo si quieres
		if id == "" {
			return resp.NotFound("no_pool", "pool not found")
		}
		out := map[string]any{"job_id": id, "status": "queued"}
		b, _ := json.Marshal(out)
		return resp.JSONOK(string(b))

	case "/jobs/status":
		id := args["id"]
		if id == "" {
			return resp.BadReq("id", "id required")
		}
		if js, ok := jobman.SnapshotJSON(id); ok {
			return resp.JSONOK(js)
		}
		return resp.NotFound("not_found", "job not found")

	case "/jobs/result":
		id := args["id"]
		if id == "" {
			return resp.BadReq("id", "id required")
		}
		body, ok, err := jobman.ResultJSON(id)
		if !ok {
			return resp.NotFound("not_found", "job not found")
		}
		if err != nil {
			return resp.BadReq("not_ready", "job not finished yet")
		}
		return resp.JSONOK(body)

	case "/jobs/cancel":
		id := args["id"]
		if id == "" {
			return resp.BadReq("id", "id required")
		}
		st, ok := jobman.Cancel(id)
		if !ok {
			return resp.NotFound("not_found", "job not found")
		}
		out := map[string]any{"status": st}
		b, _ := json.Marshal(out)
		return resp.JSONOK(string(b))

	case "/jobs/list":
		return resp.JSONOK(jobman.ListJSON())
	}

	return resp.NotFound("not_found", "route")
}

// submitSync encola con timeout y espera resultado/timeout de ejecución.
// Devuelve (resultado, encolado?). Si encolado=false → backpressure (503).
func submitSync(name string, args map[string]string, timeout time.Duration) (resp.Result, bool) {
	p, ok := manager.Pool(name)
	if !ok {
		return resp.IntErr("no_pool", "pool not found"), true
	}
	return p.SubmitAndWait(args, timeout)
}

// Close cierra recursos del router (Job Manager).
func Close() {
	if jobman != nil {
		jobman.Close()
	}
}

// PoolsSummary devuelve un mapa resumido por pool para /status (sin ciclo).
func PoolsSummary() map[string]any {
	var raw map[string]any
	_ = json.Unmarshal([]byte(manager.MetricsJSON()), &raw)

	pools := make(map[string]any, len(raw))
	for name, v := range raw {
		m := v.(map[string]any)
		w := m["workers"].(map[string]any)
		pools[name] = map[string]any{
			"workers": map[string]any{
				"total": w["total"],
				"busy":  w["busy"],
				"idle":  w["idle"],
			},
			"queue_len": m["queue_len"],
			"queue_cap": m["queue_cap"],
		}
	}
	return pools
}
