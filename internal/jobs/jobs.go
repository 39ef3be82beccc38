package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"pi-spigot-service/internal/resp"
	"pi-spigot-service/internal/sched"
	"pi-spigot-service/internal/util"
)

// ErrJobNotFinished is returned by ResultJSON when the job exists but hasn't
// reached a terminal status yet.
var ErrJobNotFinished = errors.New("jobs: result not ready")

type Status string

const (
	StatusQueued  Status = "queued"
	StatusRunning Status = "running"
	StatusDone     Status = "done"
	StatusFailed   Status = "failed"
	StatusTimeout  Status = "timeout"
	StatusCanceled Status = "canceled"
)

type Job struct {
	ID         string            `json:"id"`
	Task       string            `json:"task"`
	Params     map[string]string `json:"params,omitempty"`
	Status     Status            `json:"status"`
	EnqueuedAt time.Time         `json:"enqueued_at"`
	StartedAt  *time.Time        `json:"started_at,omitempty"`
	EndedAt    *time.Time        `json:"ended_at,omitempty"`
	Result     *resp.Result      `json:"result,omitempty"`

	cancel context.CancelFunc
}

// Manager mantiene un registro en memoria de jobs y ejecuta cada job
// en el pool correspondiente de sched.Manager.
type Manager struct {
	sched *sched.Manager

	mu   sync.RWMutex
	jobs map[string]*Job

	ttl   time.Duration
	stopC chan struct{}
}

// NewManager crea un Job Manager con TTL de limpieza para jobs finalizados.
func NewManager(s *sched.Manager, ttl time.Duration) *Manager {
	m := &Manager{
		sched: s,
		jobs:  make(map[string]*Job),
		ttl:   ttl,
		stopC: make(chan struct{}),
	}
	go m.gcLoop()
	return m
}

// Close detiene la goroutine de GC.
func (m *Manager) Close() { close(m.stopC) }

func (m *Manager) gcLoop() {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			m.cleanup()
		case <-m.stopC:
			return
		}
	}
}

func (m *Manager) cleanup() {
	cut := time.Now().Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, j := range m.jobs {
		if (j.Status == StatusDone || j.Status == StatusFailed || j.Status == StatusTimeout || j.Status == StatusCanceled) &&
			j.EndedAt != nil && j.EndedAt.Before(cut) {
			delete(m.jobs, id)
		}
	}
}

// Submit crea un job y lo ejecuta en background. Devuelve el ID.
// Si el pool no existe, no crea el job y retorna vacío.
func (m *Manager) Submit(task string, params map[string]string, execTimeout time.Duration) string {
	// valida que exista el pool
	if _, ok := m.sched.Pool(task); !ok {
		return ""
	}

	id := util.NewReqID()
	now := time.Now()
	ctx, cancel := context.WithCancel(context.Background())
	job := &Job{
		ID:         id,
		Task:       task,
		Params:     params,
		Status:     StatusQueued,
		EnqueuedAt: now,
		cancel:     cancel,
	}
	m.mu.Lock()
	m.jobs[id] = job
	m.mu.Unlock()

	// Ejecuta en background
	go func() {
		p, _ := m.sched.Pool(task)

		// Marcamos como "running" cuando intentamos encolar.
		start := time.Now()
		m.mu.Lock()
		job.StartedAt = &start
		job.Status = StatusRunning
		m.mu.Unlock()

		res, enq := p.SubmitAndWaitCtx(ctx, id, params, execTimeout)
		end := time.Now()

		m.mu.Lock()
		defer m.mu.Unlock()
		job.EndedAt = &end
		job.Result = &res
		if !enq {
			// backpressure de encolado
			job.Status = StatusFailed
			return
		}
		// Mapeo de status por conveniencia
		if res.Status == 503 && res.Err != nil {
			// puede ser timeout (execution) o cancelación
			switch res.Err.Code {
			case "timeout":
				job.Status = StatusTimeout
				return
			case "canceled":
				job.Status = StatusCanceled
				return
			}
		}
		if res.Status >= 200 && res.Status < 300 {
			job.Status = StatusDone
		} else {
			job.Status = StatusFailed
		}
	}()

	return id
}

// SnapshotJSON devuelve un JSON con metadatos del job sin mutar el original.
func (m *Manager) SnapshotJSON(id string) (string, bool) {
	m.mu.RLock()
	j, ok := m.jobs[id]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}
	cp := struct {
		ID         string            `json:"id"`
		Task       string            `json:"task"`
		Params     map[string]string `json:"params,omitempty"`
		Status     Status            `json:"status"`
		EnqueuedAt time.Time         `json:"enqueued_at"`
		StartedAt  *time.Time        `json:"started_at,omitempty"`
		EndedAt    *time.Time        `json:"ended_at,omitempty"`
		Result     *resp.Result      `json:"result,omitempty"`
	}{
		ID:         j.ID,
		Task:       j.Task,
		Params:     j.Params,
		Status:     j.Status,
		EnqueuedAt: j.EnqueuedAt,
		StartedAt:  j.StartedAt,
		EndedAt:    j.EndedAt,
		Result:     j.Result,
	}
	b, _ := json.Marshal(cp)
	return string(b), true
}

// Cancel requests cancellation of a job's context. A job already in a
// terminal status is left untouched (its own Status is returned) so a
// caller can distinguish "too late" from "not found". Returns ok=false only
// when id names no known job.
func (m *Manager) Cancel(id string) (Status, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return "", false
	}
	switch j.Status {
	case StatusDone, StatusFailed, StatusTimeout, StatusCanceled:
		return j.Status, true
	}
	j.cancel()
	return j.Status, true
}

// ResultJSON returns the job's stored resp.Result as JSON once it has
// finished. ok reports whether the job exists at all; a non-nil error means
// the job exists but hasn't reached a terminal status yet
// (ErrJobNotFinished).
func (m *Manager) ResultJSON(id string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.jobs[id]
	if !ok {
		return "", false, nil
	}
	if j.Result == nil {
		return "", true, ErrJobNotFinished
	}
	b, _ := json.Marshal(j.Result)
	return string(b), true, nil
}

// ListJSON lista los jobs actuales (activos y finalizados no vencidos).
func (m *Manager) ListJSON() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	type lite struct {
		ID     string `json:"id"`
		Task   string `json:"task"`
		Status Status `json:"status"`
	}
	out := make([]lite, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, lite{ID: j.ID, Task: j.Task, Status: j.Status})
	}
	b, _ := json.Marshal(out)
	return string(b)
}
