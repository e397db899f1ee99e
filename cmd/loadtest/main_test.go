package main

import (
	"encoding/json"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func withCLIArgs(t *testing.T, args []string, fn func()) {
	t.Helper()

	oldArgs := os.Args
	oldCommandLine := flag.CommandLine

	os.Args = append([]string{"loadtest"}, args...)
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	flag.CommandLine = fs

	defer func() {
		os.Args = oldArgs
		flag.CommandLine = oldCommandLine
	}()

	fn()
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read captured output: %v", err)
	}
	_ = r.Close()

	return string(data)
}

func newPlaceOrderServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func writePlaceOrderResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"order_id": "ord-1",
		"payment":  map[string]interface{}{"status": "completed", "transaction_id": "TX-1"},
		"shipping": map[string]interface{}{"status": "accepted"},
	})
}

func okPlaceOrderHandler(calls *int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt64(calls, 1)
		}
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		writePlaceOrderResponse(w)
	}
}

func TestParseConfig(t *testing.T) {
	t.Run("count mode", func(t *testing.T) {
		withCLIArgs(t, []string{
			"-url=http://localhost:9999",
			"-total=10",
			"-concurrency=3",
			"-timeout=5s",
		}, func() {
			cfg, err := parseConfig()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.baseURL != "http://localhost:9999" {
				t.Fatalf("unexpected url: %q", cfg.baseURL)
			}
			if cfg.total != 10 || !cfg.totalSet {
				t.Fatalf("unexpected total: %d set=%v", cfg.total, cfg.totalSet)
			}
			if cfg.concurrency != 3 {
				t.Fatalf("unexpected concurrency: %d", cfg.concurrency)
			}
			if cfg.timeout != 5*time.Second {
				t.Fatalf("unexpected timeout: %s", cfg.timeout)
			}
			if cfg.duration != 0 {
				t.Fatalf("unexpected duration: %s", cfg.duration)
			}
		})
	})

	t.Run("duration mode without explicit total", func(t *testing.T) {
		withCLIArgs(t, []string{"-duration=2m"}, func() {
			cfg, err := parseConfig()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.duration != 2*time.Minute {
				t.Fatalf("unexpected duration: %s", cfg.duration)
			}
			if cfg.totalSet {
				t.Fatalf("total must not be marked as explicitly set")
			}
		})
	})

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "empty url", args: []string{"-url= "}, wantErr: "url is required"},
		{name: "zero total", args: []string{"-total=0"}, wantErr: "total must be > 0"},
		{name: "bad timeout", args: []string{"-timeout=abc"}, wantErr: "parse timeout"},
		{name: "bad duration", args: []string{"-duration=abc"}, wantErr: "parse duration"},
		{name: "zero concurrency", args: []string{"-concurrency=0"}, wantErr: "concurrency must be > 0"},
		{name: "zero connections", args: []string{"-connections=0"}, wantErr: "connections must be > 0"},
		{name: "zero qty", args: []string{"-qty=0"}, wantErr: "qty must be > 0"},
		{name: "zero price", args: []string{"-unit-price=0"}, wantErr: "unit-price must be > 0"},
		{name: "empty product id", args: []string{"-product-id= "}, wantErr: "product-id is required"},
		{name: "empty customer tag", args: []string{"-customer-tag= "}, wantErr: "customer-tag is required"},
		{name: "explicit zero total with duration", args: []string{"-duration=1m", "-total=0"}, wantErr: "total must be > 0 when explicitly set"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			withCLIArgs(t, tc.args, func() {
				_, err := parseConfig()
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
				}
			})
		})
	}
}

func TestDispatchJobs(t *testing.T) {
	t.Run("count mode sends exactly total", func(t *testing.T) {
		jobs := make(chan int, 16)
		dispatchJobs(jobs, config{total: 7})

		var got int
		for range jobs {
			got++
		}
		if got != 7 {
			t.Fatalf("expected 7 jobs, got %d", got)
		}
	})

	t.Run("duration mode stops on timer", func(t *testing.T) {
		jobs := make(chan int, 1024)
		done := make(chan struct{})
		go func() {
			dispatchJobs(jobs, config{duration: 30 * time.Millisecond})
			close(done)
		}()

		go func() {
			for range jobs {
			}
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("dispatchJobs did not stop after duration")
		}
	})

	t.Run("duration mode honors explicit total cap", func(t *testing.T) {
		jobs := make(chan int, 64)
		dispatchJobs(jobs, config{duration: time.Minute, total: 5, totalSet: true})

		var got int
		for range jobs {
			got++
		}
		if got != 5 {
			t.Fatalf("expected 5 jobs, got %d", got)
		}
	})
}

func TestCollectorAndReport(t *testing.T) {
	col := newCollector()
	col.record("scenario", 10*time.Millisecond, "200", true)
	col.record("scenario", 20*time.Millisecond, "200", true)
	col.record("scenario", 30*time.Millisecond, "500", false)
	col.record("PlaceOrder", 5*time.Millisecond, "200", true)
	col.record("PlaceOrder", 7*time.Millisecond, "400", false)

	startedAt := time.Now().Add(-time.Second)
	result := col.buildReport(startedAt, time.Second)

	if result.TotalScenarios != 3 || result.SuccessScenarios != 2 || result.FailedScenarios != 1 {
		t.Fatalf("unexpected scenario totals: %+v", result)
	}
	if result.ErrorRate < 0.33 || result.ErrorRate > 0.34 {
		t.Fatalf("unexpected error rate: %f", result.ErrorRate)
	}
	if result.RPS != 3 {
		t.Fatalf("unexpected rps: %f", result.RPS)
	}

	place, found := result.Methods["PlaceOrder"]
	if !found {
		t.Fatalf("expected PlaceOrder stats")
	}
	if place.Calls != 2 || place.Success != 1 || place.Failed != 1 {
		t.Fatalf("unexpected PlaceOrder stats: %+v", place)
	}
	if place.Codes["200"] != 1 || place.Codes["400"] != 1 {
		t.Fatalf("unexpected PlaceOrder codes: %+v", place.Codes)
	}
	if result.ScenarioLatencyMs.Min != 10 || result.ScenarioLatencyMs.Max != 30 {
		t.Fatalf("unexpected scenario latency: %+v", result.ScenarioLatencyMs)
	}
}

func TestUtilityFunctions(t *testing.T) {
	if got := ratio(0, 0); got != 0 {
		t.Fatalf("ratio on empty totals must be 0, got %f", got)
	}
	if got := ratio(1, 4); got != 0.25 {
		t.Fatalf("unexpected ratio: %f", got)
	}

	if got := percentile(nil, 95); got != 0 {
		t.Fatalf("percentile on empty slice must be 0, got %f", got)
	}
	if got := percentile([]float64{42}, 99); got != 42 {
		t.Fatalf("percentile on single value must return it, got %f", got)
	}
	if got := percentile([]float64{10, 20}, 50); got != 15 {
		t.Fatalf("expected interpolated median 15, got %f", got)
	}

	summary := buildLatencySummary([]float64{30, 10, 20})
	if summary.Min != 10 || summary.Max != 30 || summary.Avg != 20 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.P50 != 20 {
		t.Fatalf("unexpected p50: %f", summary.P50)
	}

	if got := buildLatencySummary(nil); got != (latencySummary{}) {
		t.Fatalf("empty summary must be zero value, got %+v", got)
	}
}

func TestWriteJSONReport(t *testing.T) {
	t.Run("writes indented json", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "report.json")

		if err := writeJSONReport(path, report{TotalScenarios: 3}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read report: %v", err)
		}

		var decoded report
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("decode report: %v", err)
		}
		if decoded.TotalScenarios != 3 {
			t.Fatalf("unexpected decoded report: %+v", decoded)
		}
	})

	t.Run("rejects escaping paths", func(t *testing.T) {
		err := writeJSONReport("../outside.json", report{})
		if err == nil || !strings.Contains(err.Error(), "inside current directory") {
			t.Fatalf("expected traversal guard error, got %v", err)
		}
	})
}

func TestRunScenario(t *testing.T) {
	cfgFor := func(url string) config {
		return config{
			baseURL:     url,
			productID:   "p1",
			productName: "book",
			qty:         2,
			unitPrice:   10,
			customerTag: "load",
		}
	}

	t.Run("success", func(t *testing.T) {
		var calls int64
		srv := newPlaceOrderServer(t, okPlaceOrderHandler(&calls))

		col := newCollector()
		if err := runScenario(srv.Client(), cfgFor(srv.URL), 0, "run-1", col); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if atomic.LoadInt64(&calls) != 1 {
			t.Fatalf("expected 1 HTTP call, got %d", calls)
		}

		result := col.buildReport(time.Now(), time.Second)
		if result.SuccessScenarios != 1 || result.FailedScenarios != 0 {
			t.Fatalf("unexpected report: %+v", result)
		}
		if result.Methods["PlaceOrder"].Codes["200"] != 1 {
			t.Fatalf("expected one 200 response, got %+v", result.Methods["PlaceOrder"].Codes)
		}
	})

	t.Run("request body carries generated customer id", func(t *testing.T) {
		var gotBody map[string]interface{}
		srv := newPlaceOrderServer(t, func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("decode request: %v", err)
			}
			writePlaceOrderResponse(w)
		})

		col := newCollector()
		if err := runScenario(srv.Client(), cfgFor(srv.URL), 7, "run-9", col); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		customerID, _ := gotBody["customerid"].(string)
		if customerID != "load-run-9-7" {
			t.Fatalf("unexpected customer id: %q", customerID)
		}
		products, _ := gotBody["product"].([]interface{})
		if len(products) != 1 {
			t.Fatalf("expected one product tuple, got %v", gotBody["product"])
		}
	})

	t.Run("http error status fails scenario", func(t *testing.T) {
		srv := newPlaceOrderServer(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
		})

		col := newCollector()
		if err := runScenario(srv.Client(), cfgFor(srv.URL), 0, "run-1", col); err == nil {
			t.Fatalf("expected error for 400 response")
		}

		result := col.buildReport(time.Now(), time.Second)
		if result.FailedScenarios != 1 {
			t.Fatalf("expected failed scenario, got %+v", result)
		}
		if result.Methods["PlaceOrder"].Codes["400"] != 1 {
			t.Fatalf("expected 400 code recorded, got %+v", result.Methods["PlaceOrder"].Codes)
		}
	})

	t.Run("empty order id fails scenario", func(t *testing.T) {
		srv := newPlaceOrderServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write([]byte(`{"order_id":""}`))
		})

		col := newCollector()
		err := runScenario(srv.Client(), cfgFor(srv.URL), 0, "run-1", col)
		if err == nil || !strings.Contains(err.Error(), "empty order id") {
			t.Fatalf("expected empty order id error, got %v", err)
		}
	})

	t.Run("transport error is recorded", func(t *testing.T) {
		col := newCollector()
		client := &http.Client{Timeout: 200 * time.Millisecond}
		err := runScenario(client, cfgFor("http://127.0.0.1:1"), 0, "run-1", col)
		if err == nil {
			t.Fatalf("expected transport error")
		}

		result := col.buildReport(time.Now(), time.Second)
		if result.Methods["PlaceOrder"].Codes[statusTransportError] != 1 {
			t.Fatalf("expected transport_error code, got %+v", result.Methods["PlaceOrder"].Codes)
		}
	})
}

func TestPrintReport(t *testing.T) {
	result := report{
		TotalScenarios:   10,
		SuccessScenarios: 9,
		FailedScenarios:  1,
		ErrorRate:        0.1,
		DurationSeconds:  2,
		RPS:              5,
		Methods: map[string]methodReport{
			"scenario":   {Calls: 10},
			"PlaceOrder": {Calls: 10, Success: 9, Failed: 1, ErrorRate: 0.1},
		},
	}

	out := captureStdout(t, func() {
		printReport(result, config{total: 10})
	})

	if !strings.Contains(out, "Load test summary") {
		t.Fatalf("missing summary header: %q", out)
	}
	if !strings.Contains(out, "run=count:10") {
		t.Fatalf("missing run target: %q", out)
	}
	if !strings.Contains(out, "PlaceOrder: calls=10") {
		t.Fatalf("missing method line: %q", out)
	}
	if strings.Contains(out, "scenario: calls") {
		t.Fatalf("scenario pseudo-method must not appear in method list: %q", out)
	}
}

func TestRunTarget(t *testing.T) {
	if got := runTarget(config{total: 5}); got != "count:5" {
		t.Fatalf("unexpected target: %q", got)
	}
	if got := runTarget(config{duration: time.Minute}); got != "duration:1m0s" {
		t.Fatalf("unexpected target: %q", got)
	}
	if got := runTarget(config{duration: time.Minute, total: 5, totalSet: true}); got != "duration:1m0s,max-total:5" {
		t.Fatalf("unexpected target: %q", got)
	}
}

func TestMainSmoke(t *testing.T) {
	srv := newPlaceOrderServer(t, okPlaceOrderHandler(nil))

	dir := t.TempDir()
	outPath := filepath.Join(dir, "main-report.json")

	withCLIArgs(t, []string{
		"-url=" + srv.URL,
		"-total=5",
		"-concurrency=2",
		"-connections=1",
		"-timeout=2s",
		"-output=" + outPath,
	}, func() {
		main()
	})

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("expected report file from main: %v", err)
	}

	var result report
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if result.TotalScenarios != 5 || result.FailedScenarios != 0 {
		t.Fatalf("unexpected report: %+v", result)
	}
}
