// Package benchmark fires concurrent requests at the HTTP API and
// summarises latency and status codes.
package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"
)

// LoadRunner sends Requests requests to BaseURL with at most Concurrency in flight
type LoadRunner struct {
	BaseURL     string
	Concurrency int
	Requests    int
	AuthToken   string
	Client      *http.Client
}

// LoadResult summarises one run
type LoadResult struct {
	URL            string        `json:"url"`
	Method         string        `json:"method"`
	Concurrency    int           `json:"concurrency"`
	TotalRequests  int           `json:"total_requests"`
	SuccessCount   int           `json:"success_count"`
	FailureCount   int           `json:"failure_count"`
	TotalTime      time.Duration `json:"total_time"`
	AverageTime    time.Duration `json:"average_time"`
	P95Time        time.Duration `json:"p95_time"`
	MaxTime        time.Duration `json:"max_time"`
	RequestsPerSec float64       `json:"requests_per_sec"`
	StatusCodes    map[int]int   `json:"status_codes"`
	Errors         []string      `json:"errors"`
}

type requestResult struct {
	duration   time.Duration
	statusCode int
	err        error
}

// NewLoadRunner creates a runner with a 10s client timeout
func NewLoadRunner(baseURL string, concurrency, requests int, authToken string) *LoadRunner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &LoadRunner{
		BaseURL:     baseURL,
		Concurrency: concurrency,
		Requests:    requests,
		AuthToken:   authToken,
		Client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// RunGET benchmarks GET path
func (r *LoadRunner) RunGET(path string) *LoadResult {
	return r.run(http.MethodGet, r.BaseURL+path, func(int) []byte { return nil })
}

// RunPOST benchmarks POST path with the same payload every time
func (r *LoadRunner) RunPOST(path string, payload interface{}) *LoadResult {
	return r.RunPOSTEach(path, func(int) interface{} { return payload })
}

// RunPOSTEach benchmarks POST path with payload(i) as the i-th body
func (r *LoadRunner) RunPOSTEach(path string, payload func(i int) interface{}) *LoadResult {
	url := r.BaseURL + path
	bodies := make([][]byte, r.Requests)
	for i := range bodies {
		data, err := json.Marshal(payload(i))
		if err != nil {
			return &LoadResult{URL: url, Method: http.MethodPost, Errors: []string{fmt.Sprintf("encode payload: %v", err)}}
		}
		bodies[i] = data
	}
	return r.run(http.MethodPost, url, func(i int) []byte { return bodies[i] })
}

func (r *LoadRunner) run(method, url string, body func(i int) []byte) *LoadResult {
	results := make(chan requestResult, r.Requests)
	limiter := make(chan struct{}, r.Concurrency)
	var wg sync.WaitGroup

	start := time.Now()
	for i := 0; i < r.Requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			limiter <- struct{}{}
			defer func() { <-limiter }()
			results <- r.do(method, url, body(i))
		}(i)
	}
	wg.Wait()
	close(results)
	elapsed := time.Since(start)

	res := &LoadResult{
		URL:           url,
		Method:        method,
		Concurrency:   r.Concurrency,
		TotalRequests: r.Requests,
		TotalTime:     elapsed,
		StatusCodes:   make(map[int]int),
	}

	durations := make([]time.Duration, 0, r.Requests)
	var total time.Duration
	for result := range results {
		if result.err != nil {
			res.FailureCount++
			res.Errors = append(res.Errors, result.err.Error())
			continue
		}
		durations = append(durations, result.duration)
		total += result.duration
		res.StatusCodes[result.statusCode]++
		if result.statusCode >= 200 && result.statusCode < 300 {
			res.SuccessCount++
		} else {
			res.FailureCount++
		}
	}

	if n := len(durations); n > 0 {
		sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
		res.AverageTime = total / time.Duration(n)
		res.P95Time = durations[(n*95-1)/100]
		res.MaxTime = durations[n-1]
	}
	if elapsed > 0 {
		res.RequestsPerSec = float64(r.Requests) / elapsed.Seconds()
	}
	return res
}

func (r *LoadRunner) do(method, url string, body []byte) requestResult {
	start := time.Now()
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return requestResult{err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if r.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.AuthToken)
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return requestResult{err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return requestResult{duration: time.Since(start), statusCode: resp.StatusCode}
}

// SuccessRate is the share of 2xx responses in percent
func (r *LoadResult) SuccessRate() float64 {
	if r.TotalRequests == 0 {
		return 0
	}
	return float64(r.SuccessCount) / float64(r.TotalRequests) * 100
}

// String renders the result for test logs
func (r *LoadResult) String() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s %s: %d requests, concurrency %d\n", r.Method, r.URL, r.TotalRequests, r.Concurrency)
	fmt.Fprintf(&b, "  ok %d, failed %d, %.2f req/s\n", r.SuccessCount, r.FailureCount, r.RequestsPerSec)
	fmt.Fprintf(&b, "  avg %s, p95 %s, max %s\n", r.AverageTime, r.P95Time, r.MaxTime)

	codes := make([]int, 0, len(r.StatusCodes))
	for code := range r.StatusCodes {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		fmt.Fprintf(&b, "  %d: %d\n", code, r.StatusCodes[code])
	}
	for i, err := range r.Errors {
		if i >= 5 {
			fmt.Fprintf(&b, "  ... %d more errors\n", len(r.Errors)-5)
			break
		}
		fmt.Fprintf(&b, "  %s\n", err)
	}
	return b.String()
}
