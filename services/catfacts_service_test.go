package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func newFactServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fact" {
			http.NotFound(w, r)
			return
		}
		n := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"fact":"cat fact %d","length":10}`, n)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newFactService(upstream string) *CatFactsService {
	return &CatFactsService{
		BaseURL:    upstream,
		HTTPClient: http.DefaultClient,
	}
}

func TestRandomFact(t *testing.T) {
	srv, _ := newFactServer(t)
	svc := newFactService(srv.URL)

	fact, err := svc.RandomFact(context.Background())
	if err != nil {
		t.Fatalf("random fact: %v", err)
	}
	if fact.Fact == "" || fact.Length != 10 {
		t.Fatalf("unexpected fact: %+v", fact)
	}
}

func TestFactsForGame(t *testing.T) {
	srv, calls := newFactServer(t)
	svc := newFactService(srv.URL)

	facts, err := svc.FactsForGame(context.Background(), 5)
	if err != nil {
		t.Fatalf("facts for game: %v", err)
	}
	if len(facts) != 5 {
		t.Fatalf("expected 5 facts, got %d", len(facts))
	}
	for i, f := range facts {
		if f == "" {
			t.Fatalf("fact %d is empty", i)
		}
	}
	if calls.Load() != 5 {
		t.Fatalf("expected 5 upstream calls, got %d", calls.Load())
	}
}

func TestFactsForGameFallsBackToPool(t *testing.T) {
	srv, _ := newFactServer(t)
	svc := newFactService(srv.URL)

	if _, err := svc.WarmPool(context.Background()); err != nil {
		t.Fatalf("warm pool: %v", err)
	}
	if svc.PoolSize() == 0 {
		t.Fatalf("expected a warmed pool")
	}

	// Upstream goes away; the warmed pool keeps game setup working.
	srv.Close()
	facts, err := svc.FactsForGame(context.Background(), 4)
	if err != nil {
		t.Fatalf("expected pool fallback, got error: %v", err)
	}
	if len(facts) != 4 {
		t.Fatalf("expected 4 facts, got %d", len(facts))
	}
}

func TestFactsForGameEmptyPoolSurfacesError(t *testing.T) {
	srv, _ := newFactServer(t)
	svc := newFactService(srv.URL)
	srv.Close()

	if _, err := svc.FactsForGame(context.Background(), 3); err == nil {
		t.Fatalf("expected error with dead upstream and empty pool")
	}
}

func TestRandomFactUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	svc := newFactService(srv.URL)

	if _, err := svc.RandomFact(context.Background()); err == nil {
		t.Fatalf("expected error on upstream 500")
	}
}
