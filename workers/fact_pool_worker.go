package workers

import (
	"context"
	"log"
	"time"

	"catfacts-api/services"
)

// WarmFactPool keeps the cat-fact fallback pool topped up so game setup still
// works through upstream hiccups. Runs until the context is cancelled; one
// warm pass happens immediately on start.
func WarmFactPool(ctx context.Context, svc *services.CatFactsService, interval time.Duration) {
	log.Println("Starting cat fact pool warmer...")

	warm := func() {
		n, err := svc.WarmPool(ctx)
		if err != nil {
			log.Printf("❌ Fact pool warm-up failed: %v", err)
			return
		}
		log.Printf("📥 Warmed %d cat fact(s), pool size now %d", n, svc.PoolSize())
	}
	warm()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Fact pool warmer stopped.")
			return
		case <-ticker.C:
			warm()
		}
	}
}
