package admin

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"projectile-sim/internal/config"
	"projectile-sim/internal/metrics"
	"projectile-sim/internal/scenario"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	runner := scenario.NewRunner(config.Default())
	rec := metrics.NewRecorder()
	runner.Observer = rec
	s := NewServer(runner, rec)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.StatusCode
}

func TestHandleTrajectory(t *testing.T) {
	_, ts := newTestServer(t)
	var res scenario.RunResult
	if code := getJSON(t, ts.URL+"/api/trajectory?speed=50&angle=45", &res); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if res.Trajectory.Len() != 361 {
		t.Fatalf("expected 361 samples, got %d", res.Trajectory.Len())
	}
	if res.Metrics.Range < 254 || res.Metrics.Range > 255 {
		t.Fatalf("unexpected range %v", res.Metrics.Range)
	}

	var drag scenario.RunResult
	getJSON(t, ts.URL+"/api/trajectory?speed=50&angle=45&drag=true", &drag)
	if drag.Trajectory.Mode != "numerical" || drag.Metrics.Range >= res.Metrics.Range {
		t.Fatalf("drag run not stepped or not shorter: %+v", drag.Metrics)
	}
}

func TestHandleTrajectoryBadQuery(t *testing.T) {
	_, ts := newTestServer(t)
	for _, q := range []string{"speed=fast", "drag=maybe", "gravity=0", "speed=-3"} {
		var body map[string]string
		if code := getJSON(t, ts.URL+"/api/trajectory?"+q, &body); code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, code)
		}
		if body["error"] == "" {
			t.Errorf("%s: missing error message", q)
		}
	}
}

func TestHandleSweepCompareAndPlanets(t *testing.T) {
	_, ts := newTestServer(t)

	var sweep scenario.SweepResult
	if code := getJSON(t, ts.URL+"/api/sweep?speed=50", &sweep); code != http.StatusOK {
		t.Fatalf("sweep status = %d", code)
	}
	if len(sweep.Rows) != 13 || sweep.BestAngleDeg != 45 {
		t.Fatalf("unexpected sweep: %d rows, best %v", len(sweep.Rows), sweep.BestAngleDeg)
	}

	var bad map[string]string
	if code := getJSON(t, ts.URL+"/api/sweep?step=0", &bad); code != http.StatusBadRequest {
		t.Fatalf("zero step status = %d", code)
	}
	if code := getJSON(t, ts.URL+"/api/sweep?from=0&to=1e9&step=1e-6", &bad); code != http.StatusBadRequest {
		t.Fatalf("oversized sweep status = %d", code)
	}

	var cmp scenario.DragComparison
	getJSON(t, ts.URL+"/api/compare?speed=50&angle=45", &cmp)
	if cmp.RangeReductionPct == nil || *cmp.RangeReductionPct <= 0 {
		t.Fatalf("expected positive reduction, got %+v", cmp)
	}

	var planets scenario.PlanetComparison
	getJSON(t, ts.URL+"/api/planets", &planets)
	if len(planets.Rows) != len(config.DefaultPlanets()) {
		t.Fatalf("expected %d planets, got %d", len(config.DefaultPlanets()), len(planets.Rows))
	}
}

func TestIndexAndMetrics(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/?angle=60")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "<polyline") || !strings.Contains(string(body), `value="60"`) {
		t.Fatalf("index page missing plot or params")
	}

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), `projectile_runs_total{mode="analytic"} 1`) {
		t.Fatalf("metrics did not record the index run:\n%s", body)
	}
}

func TestStreamTrajectory(t *testing.T) {
	_, ts := newTestServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/trajectory?speed=20&angle=30"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	samples := 0
	for {
		var msg map[string]any
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("stream ended before summary: %v", err)
		}
		if msg["type"] == "summary" {
			m, ok := msg["metrics"].(map[string]any)
			if !ok || m["range"].(float64) <= 0 {
				t.Fatalf("bad summary frame: %v", msg)
			}
			break
		}
		if msg["type"] != "sample" {
			t.Fatalf("unexpected frame %v", msg)
		}
		if int(msg["i"].(float64)) != samples {
			t.Fatalf("frame %d out of order: %v", samples, msg)
		}
		samples++
	}
	// 20 m/s at 30°: flight time 2.04 s, 0.02 s step.
	if samples < 100 || samples > 103 {
		t.Fatalf("unexpected sample count %d", samples)
	}
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Fatalf("expected normal close after summary, got %v", err)
	}
}

func TestStreamRejectsBadQuery(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/ws/trajectory?angle=steep")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
