package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDefaultTargets(t *testing.T) {
	targets, err := DefaultTargets("http://localhost:8080/auth", "http://localhost:8081/api/")
	if err != nil {
		t.Fatalf("targets: %v", err)
	}
	want := []string{
		"http://localhost:8080/actuator/health",
		"http://localhost:8081/actuator/health",
		"http://localhost:8080/auth/test",
		"http://localhost:8081/api/test",
	}
	if len(targets) != len(want) {
		t.Fatalf("expected %d targets, got %d", len(want), len(targets))
	}
	for i, w := range want {
		if targets[i].URL != w {
			t.Fatalf("target %d: expected %s, got %s", i, w, targets[i].URL)
		}
	}
}

func TestDefaultTargets_RelativeURL(t *testing.T) {
	if _, err := DefaultTargets("/auth", "http://localhost:8081/api"); err == nil {
		t.Fatalf("expected error for relative url")
	}
}

func TestRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/actuator/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	targets := []Target{
		{Name: "health", URL: srv.URL + "/actuator/health"},
		{Name: "missing route", URL: srv.URL + "/nope"},
		{Name: "down", URL: "http://127.0.0.1:1/actuator/health"},
	}
	results := Run(context.Background(), &http.Client{Timeout: time.Second}, targets)

	if results[0].Status != http.StatusOK || !results[0].Reachable() {
		t.Fatalf("unexpected health result: %+v", results[0])
	}
	if results[1].Status != http.StatusNotFound || !results[1].Reachable() {
		t.Fatalf("404 still counts as reachable: %+v", results[1])
	}
	if results[2].Reachable() {
		t.Fatalf("closed port must be unreachable")
	}
	if AllReachable(results) {
		t.Fatalf("expected AllReachable to be false")
	}
	if !AllReachable(results[:2]) {
		t.Fatalf("expected first two to be reachable")
	}
}
