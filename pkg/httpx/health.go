package httpx

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// HealthChecker is a backend that can be pinged.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks holds the set of dependencies to probe in the health endpoint.
// A nil checker is reported as "disabled" and does not degrade the status:
// the catalog serves reads and writes without any of them.
type HealthChecks struct {
	Database HealthChecker
	Redis    HealthChecker
	EventBus HealthChecker
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
	EventBus string `json:"event_bus"`
}

func probe(ctx context.Context, c HealthChecker) string {
	if c == nil {
		return "disabled"
	}
	if err := c.Ping(ctx); err != nil {
		return "unreachable"
	}
	return "ok"
}

// HealthHandler probes every configured backend concurrently within a 2s
// budget. Any unreachable backend turns the response into a 503 "degraded".
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		targets := []struct {
			checker HealthChecker
			result  *string
		}{
			{checks.Database, &resp.Database},
			{checks.Redis, &resp.Redis},
			{checks.EventBus, &resp.EventBus},
		}

		var wg sync.WaitGroup
		for _, t := range targets {
			wg.Add(1)
			go func() {
				defer wg.Done()
				*t.result = probe(ctx, t.checker)
			}()
		}
		wg.Wait()

		for _, t := range targets {
			if *t.result == "unreachable" {
				resp.Status = "degraded"
			}
		}

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}
