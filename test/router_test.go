package test

import (
	"encoding/json"
	"testing"

	"pi-spigot-service/internal/router"
)

func TestRouterAllBasics(t *testing.T) {
	if r := router.Dispatch("GET", "/"); r.Status != 200 || r.JSON || r.Body != "pi-spigot-service\n" {
		t.Fatalf("/ -> %+v", r)
	}
	if r := router.Dispatch("GET", "/metrics"); r.Status != 200 || !r.JSON {
		t.Fatalf("/metrics -> %+v", r)
	}
	if r := router.Dispatch("GET", "/nope"); r.Status != 404 || r.Err == nil {
		t.Fatalf("404: %+v", r)
	}

	// valida que los JSON sean parseables donde aplica
	for _, tcase := range []string{"/metrics"} {
		r := router.Dispatch("GET", tcase)
		if err := json.Unmarshal([]byte(r.Body), &map[string]any{}); err != nil {
			t.Fatalf("%s json: %v", tcase, err)
		}
	}
}

func TestRouter_Pi_JobsFlow(t *testing.T) {
	router.InitPools(map[string]int{"workers.pi": 1, "queue.pi": 1})
	sub := router.Dispatch("GET", "/jobs/submit?task=pi&digits=10")
	if sub.Status != 200 || !sub.JSON {
		t.Fatalf("router submit: %+v", sub)
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(sub.Body), &obj); err != nil {
		t.Fatalf("unmarshal submit: %v", err)
	}
	id, _ := obj["job_id"].(string)
	if id == "" {
		t.Fatalf("job_id missing: %v", obj)
	}

	st := router.Dispatch("GET", "/jobs/status?id="+id)
	if st.Status != 200 || !st.JSON {
		t.Fatalf("router status: %+v", st)
	}
}
