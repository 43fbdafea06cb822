package main

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
)

const (
	baseURL      = "http://127.0.0.1:8080"
	numWorkers   = 50
	testDuration = 10 * time.Second
)

var productIDs = []string{
	"PROD-001", "PROD-002", "PROD-003", "PROD-004",
	"PROD-005", "PROD-006", "PROD-007", "PROD-008",
}

var filters = []string{"pending", "acknowledged", "all"}

var client = newClient()

func newClient() *resty.Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5 * time.Second).
		SetHeader("Content-Type", "application/json")
	c.JSONMarshal = json.Marshal
	c.JSONUnmarshal = json.Unmarshal
	return c
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== Alerts Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Products: %d\n\n", numWorkers, testDuration, len(productIDs))

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := client.R().Get("/health")
		if err == nil && resp.StatusCode() == 200 {
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not ready")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Read only (GET /alerts) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doGetAlerts()
	})

	fmt.Println("\n--- Phase 2: Mixed load (40% toggles, 60% reads) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.40:
			return doToggle(rng)
		case r < 0.85:
			return doGetAlerts()
		case r < 0.95:
			return doSetFilter(rng)
		default:
			return doGetNotice()
		}
	})

	fmt.Println("\n--- Phase 3: Read-heavy load (5% toggles) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.05:
			return doToggle(rng)
		case r < 0.90:
			return doGetAlerts()
		default:
			return doGetExport()
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-26s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 92))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-26s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 92))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func timed(endpoint string, ok func(status int) bool, do func() (*resty.Response, error)) result {
	start := time.Now()
	resp, err := do()
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	return result{endpoint, resp.StatusCode(), lat, !ok(resp.StatusCode())}
}

func is200(status int) bool { return status == 200 }

func doGetAlerts() result {
	return timed("GET /alerts", is200, func() (*resty.Response, error) {
		return client.R().Get("/alerts")
	})
}

// 404 cannot happen for the fixed ids, 502 means the store rejected the write.
func doToggle(rng *rand.Rand) result {
	body := map[string]interface{}{
		"productId":      productIDs[rng.Intn(len(productIDs))],
		"checked":        rng.Intn(2) == 0,
		"acknowledgedBy": "loadtest",
	}
	return timed("POST /alerts/acknowledge", is200, func() (*resty.Response, error) {
		return client.R().SetBody(body).Post("/alerts/acknowledge")
	})
}

func doSetFilter(rng *rand.Rand) result {
	body := map[string]string{"filter": filters[rng.Intn(len(filters))]}
	return timed("POST /filter", is200, func() (*resty.Response, error) {
		return client.R().SetBody(body).Post("/filter")
	})
}

func doGetNotice() result {
	return timed("GET /notice", func(status int) bool { return status == 200 || status == 204 }, func() (*resty.Response, error) {
		return client.R().Get("/notice")
	})
}

func doGetExport() result {
	return timed("GET /acknowledged/export", is200, func() (*resty.Response, error) {
		return client.R().Get("/acknowledged/export")
	})
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
