package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"catfacts-api/utils"
)

const (
	factPoolWarmBatch = 10
	factPoolMaxSize   = 200
)

// CatFact mirrors the upstream catfact.ninja response.
type CatFact struct {
	Fact   string `json:"fact"`
	Length int    `json:"length"`
}

// CatFactsService proxies the third-party fact API. It keeps a small warmed
// pool of facts so a flaky upstream doesn't break game setup; the pool is
// refreshed by a background worker.
type CatFactsService struct {
	BaseURL    string
	HTTPClient *http.Client

	mu   sync.RWMutex
	pool []string
}

func NewCatFactsService() *CatFactsService {
	return &CatFactsService{
		BaseURL:    utils.Getenv("CATFACTS_API_URL", "https://catfact.ninja"),
		HTTPClient: utils.HTTPClient,
	}
}

// RandomFact fetches a single fact from the upstream API.
func (s *CatFactsService) RandomFact(ctx context.Context) (*CatFact, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/fact", nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call cat facts API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("cat facts API returned status %d: %s", resp.StatusCode, string(body))
	}

	var fact CatFact
	if err := json.NewDecoder(resp.Body).Decode(&fact); err != nil {
		return nil, fmt.Errorf("failed to decode cat fact: %w", err)
	}
	return &fact, nil
}

// FactsForGame fetches one fact per pair, concurrently. Slots the upstream
// fails to fill fall back to the warmed pool; an empty pool surfaces the
// error.
func (s *CatFactsService) FactsForGame(ctx context.Context, pairs int) ([]string, error) {
	facts := make([]string, pairs)
	errs := make([]error, pairs)

	var wg sync.WaitGroup
	for i := 0; i < pairs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fact, err := s.RandomFact(ctx)
			if err != nil {
				errs[i] = err
				return
			}
			facts[i] = fact.Fact
		}(i)
	}
	wg.Wait()

	for i := range facts {
		if errs[i] == nil {
			continue
		}
		pooled, ok := s.poolFact(i)
		if !ok {
			return nil, errs[i]
		}
		facts[i] = pooled
	}
	return facts, nil
}

// WarmPool tops up the fallback pool from the upstream API.
func (s *CatFactsService) WarmPool(ctx context.Context) (int, error) {
	fetched := 0
	for i := 0; i < factPoolWarmBatch; i++ {
		fact, err := s.RandomFact(ctx)
		if err != nil {
			if fetched == 0 {
				return 0, err
			}
			break
		}
		s.addToPool(fact.Fact)
		fetched++
	}
	return fetched, nil
}

// PoolSize returns the current number of warmed facts.
func (s *CatFactsService) PoolSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pool)
}

func (s *CatFactsService) poolFact(i int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.pool) == 0 {
		return "", false
	}
	return s.pool[i%len(s.pool)], true
}

func (s *CatFactsService) addToPool(fact string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.pool {
		if f == fact {
			return
		}
	}
	if len(s.pool) >= factPoolMaxSize {
		s.pool = s.pool[1:]
	}
	s.pool = append(s.pool, fact)
}
