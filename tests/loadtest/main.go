package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBaseURL = "http://127.0.0.1:8090"
	workers        = 50
	phaseDuration  = 10 * time.Second
)

var moods = []string{"happy", "sad", "anxious", "calm", "stressed", "content", "overwhelmed", "peaceful", "excited", "lonely"}

var httpClient = &http.Client{
	Timeout: 30 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

// outcome classes; 409 is the expected answer for a superseded view load
// or a workflow edit racing another client.
type outcome int

const (
	outcomeOK outcome = iota
	outcomeConflict
	outcomeFailed
)

type sample struct {
	route   string
	outcome outcome
	latency time.Duration
}

type call struct {
	weight int
	run    func(c *client, rng *rand.Rand) sample
}

type phase struct {
	name  string
	calls []call
}

func (p phase) pick(rng *rand.Rand) call {
	total := 0
	for _, c := range p.calls {
		total += c.weight
	}
	n := rng.IntN(total)
	for _, c := range p.calls {
		if n < c.weight {
			return c
		}
		n -= c.weight
	}
	return p.calls[len(p.calls)-1]
}

type client struct {
	baseURL string
}

func (c *client) do(method, path string, body any) sample {
	route := method + " " + path
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return sample{route: route, outcome: outcomeFailed}
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return sample{route: route, outcome: outcomeFailed}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		return sample{route: route, outcome: outcomeFailed, latency: latency}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict:
		return sample{route: route, outcome: outcomeConflict, latency: latency}
	case resp.StatusCode < 300:
		return sample{route: route, outcome: outcomeOK, latency: latency}
	default:
		return sample{route: route, outcome: outcomeFailed, latency: latency}
	}
}

func get(path string) func(c *client, _ *rand.Rand) sample {
	return func(c *client, _ *rand.Rand) sample { return c.do(http.MethodGet, path, nil) }
}

// moodCycle walks one submission through the workflow and reports it as a
// single sample timed from select to reset.
func moodCycle(c *client, rng *rand.Rand) sample {
	start := time.Now()
	steps := []struct {
		path string
		body any
	}{
		{"/mood/select", map[string]any{"mood": moods[rng.IntN(len(moods))]}},
		{"/mood/intensity", map[string]any{"intensity": 1 + rng.IntN(10)}},
		{"/mood/journal", map[string]any{"text": "load test entry"}},
		{"/mood/submit", nil},
		{"/mood/reset", nil},
	}
	result := outcomeOK
	for _, step := range steps {
		s := c.do(http.MethodPost, step.path, step.body)
		if s.outcome != outcomeOK {
			result = s.outcome
			break
		}
	}
	return sample{route: "mood cycle", outcome: result, latency: time.Since(start)}
}

func runPhase(ctx context.Context, c *client, p phase) map[string][]sample {
	ctx, cancel := context.WithTimeout(ctx, phaseDuration)
	defer cancel()

	var (
		mu      sync.Mutex
		byRoute = make(map[string][]sample)
	)
	g, ctx := errgroup.WithContext(ctx)
	for i := range workers {
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(i)))
			for ctx.Err() == nil {
				s := p.pick(rng).run(c, rng)
				mu.Lock()
				byRoute[s.route] = append(byRoute[s.route], s)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return byRoute
}

func report(p phase, byRoute map[string][]sample) {
	fmt.Printf("\n--- %s ---\n", p.name)
	fmt.Printf("  %-22s %8s %6s %6s %10s %10s %10s\n", "Route", "Reqs", "409", "Fail", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 78))

	routes := make([]string, 0, len(byRoute))
	for r := range byRoute {
		routes = append(routes, r)
	}
	slices.Sort(routes)

	var total, conflicts, failed int
	for _, r := range routes {
		samples := byRoute[r]
		latencies := make([]time.Duration, len(samples))
		var c, f int
		for i, s := range samples {
			latencies[i] = s.latency
			switch s.outcome {
			case outcomeConflict:
				c++
			case outcomeFailed:
				f++
			}
		}
		slices.Sort(latencies)
		total += len(samples)
		conflicts += c
		failed += f
		fmt.Printf("  %-22s %8d %6d %6d %10s %10s %10s\n", r, len(samples), c, f,
			formatLatency(quantile(latencies, 0.50)), formatLatency(quantile(latencies, 0.95)), formatLatency(quantile(latencies, 0.99)))
	}

	fmt.Println("  " + strings.Repeat("-", 78))
	if total == 0 {
		fmt.Println("  no requests completed")
		return
	}
	fmt.Printf("  %d reqs, %.0f/s | conflicts %.1f%% | failures %.1f%%\n",
		total, float64(total)/phaseDuration.Seconds(),
		float64(conflicts)/float64(total)*100, float64(failed)/float64(total)*100)
}

func quantile(sorted []time.Duration, q float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[min(int(float64(len(sorted))*q), len(sorted)-1)]
}

func formatLatency(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000)
}

func waitForServer(c *client) bool {
	for range 30 {
		if s := c.do(http.MethodGet, "/health", nil); s.outcome == outcomeOK {
			return true
		}
		time.Sleep(200 * time.Millisecond)
	}
	return false
}

// Load test for the local API started with `mindmate serve`. Aggregate
// reads fan out to the backend, so run it against a stub backend.
func main() {
	c := &client{baseURL: defaultBaseURL}
	if v := os.Getenv("MINDMATE_API_URL"); v != "" {
		c.baseURL = strings.TrimRight(v, "/")
	}
	fmt.Println("=== MindMate Load Test ===")
	fmt.Printf("Target: %s | Workers: %d | Phase: %s\n", c.baseURL, workers, phaseDuration)

	if !waitForServer(c) {
		fmt.Println("FAILED: server not responding")
		os.Exit(1)
	}

	phases := []phase{
		{name: "Local reads", calls: []call{
			{weight: 1, run: get("/mood")},
			{weight: 1, run: get("/moods")},
			{weight: 1, run: get("/health")},
		}},
		{name: "Aggregate views (superseded loads answer 409)", calls: []call{
			{weight: 1, run: get("/daily")},
			{weight: 1, run: get("/weekly")},
		}},
		{name: "Mood cycles mixed with views", calls: []call{
			{weight: 2, run: moodCycle},
			{weight: 3, run: get("/mood")},
			{weight: 3, run: get("/daily")},
			{weight: 2, run: get("/weekly")},
		}},
	}
	for _, p := range phases {
		report(p, runPhase(context.Background(), c, p))
	}
}
