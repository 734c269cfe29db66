package admin

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"projectile-sim/internal/config"
	"projectile-sim/internal/logging"
	"projectile-sim/internal/metrics"
	"projectile-sim/internal/scenario"
	"projectile-sim/internal/trajectory"
)

//go:embed templates/index.html
var content embed.FS

const (
	plotWidth  = 600.0
	plotHeight = 300.0
)

// Server exposes the scenario runner over HTTP and WebSocket.
type Server struct {
	Runner   *scenario.Runner
	Recorder *metrics.Recorder

	tpl      *template.Template
	router   *mux.Router
	upgrader websocket.Upgrader
}

// NewServer wires routes for runner. rec may be nil, which disables /metrics.
func NewServer(runner *scenario.Runner, rec *metrics.Recorder) *Server {
	s := &Server{
		Runner:   runner,
		Recorder: rec,
		tpl:      template.Must(template.New("index.html").ParseFS(content, "templates/index.html")),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/api/trajectory", s.handleTrajectory).Methods(http.MethodGet)
	r.HandleFunc("/api/sweep", s.handleSweep).Methods(http.MethodGet)
	r.HandleFunc("/api/compare", s.handleCompare).Methods(http.MethodGet)
	r.HandleFunc("/api/planets", s.handlePlanets).Methods(http.MethodGet)
	r.HandleFunc("/ws/trajectory", s.handleStream)
	if s.Recorder != nil {
		r.Handle("/metrics", s.Recorder.Handler()).Methods(http.MethodGet)
	}
	s.router = r
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler { return s.router }

// Start serves on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	log := logging.FromContext(ctx)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info("http server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type queryError struct {
	key string
	err error
}

func (e *queryError) Error() string { return fmt.Sprintf("query %s: %v", e.key, e.err) }

type query struct {
	values map[string][]string
	err    error
}

func (q *query) floatParam(key string, def float64) float64 {
	raw := strings.TrimSpace(firstValue(q.values, key))
	if raw == "" || q.err != nil {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		q.err = &queryError{key: key, err: err}
		return def
	}
	return v
}

func (q *query) boolParam(key string, def bool) bool {
	raw := strings.TrimSpace(firstValue(q.values, key))
	if raw == "" || q.err != nil {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		q.err = &queryError{key: key, err: err}
		return def
	}
	return v
}

func firstValue(values map[string][]string, key string) string {
	if v := values[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func (s *Server) params(r *http.Request) (trajectory.Params, error) {
	q := &query{values: r.URL.Query()}
	base := s.Runner.Base
	p := trajectory.Params{
		InitialSpeed:    q.floatParam("speed", base.InitialSpeed),
		LaunchAngleDeg:  q.floatParam("angle", base.LaunchAngleDeg),
		Gravity:         q.floatParam("gravity", base.Gravity),
		DragEnabled:     q.boolParam("drag", base.DragEnabled),
		DragCoefficient: q.floatParam("cd", base.DragCoefficient),
		Mass:            q.floatParam("mass", base.Mass),
	}
	if q.err != nil {
		return p, q.err
	}
	return p, s.Runner.Validate(p)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var qe *queryError
	status := http.StatusInternalServerError
	if errors.As(err, &qe) || errors.Is(err, scenario.ErrInvalidParams) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleTrajectory(w http.ResponseWriter, r *http.Request) {
	p, err := s.params(r)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.Runner.Single(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	q := &query{values: r.URL.Query()}
	speed := q.floatParam("speed", s.Runner.Base.InitialSpeed)
	sweep := config.Sweep{
		FromDeg: q.floatParam("from", s.Runner.Sweep.FromDeg),
		ToDeg:   q.floatParam("to", s.Runner.Sweep.ToDeg),
		StepDeg: q.floatParam("step", s.Runner.Sweep.StepDeg),
	}
	if q.err != nil {
		writeError(w, q.err)
		return
	}
	res, err := s.Runner.AngleSweep(r.Context(), speed, sweep)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	q := &query{values: r.URL.Query()}
	speed := q.floatParam("speed", s.Runner.Base.InitialSpeed)
	angle := q.floatParam("angle", s.Runner.Base.LaunchAngleDeg)
	if q.err != nil {
		writeError(w, q.err)
		return
	}
	res, err := s.Runner.DragComparison(r.Context(), speed, angle)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePlanets(w http.ResponseWriter, r *http.Request) {
	q := &query{values: r.URL.Query()}
	speed := q.floatParam("speed", s.Runner.Base.InitialSpeed)
	angle := q.floatParam("angle", s.Runner.Base.LaunchAngleDeg)
	if q.err != nil {
		writeError(w, q.err)
		return
	}
	res, err := s.Runner.PlanetComparison(r.Context(), speed, angle, s.Runner.Planets)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// sampleFrame carries one trajectory sample over the WebSocket stream.
type sampleFrame struct {
	Type  string  `json:"type"`
	Index int     `json:"i"`
	Time  float64 `json:"t"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// summaryFrame ends a stream.
type summaryFrame struct {
	Type      string              `json:"type"`
	Metrics   *trajectory.Metrics `json:"metrics,omitempty"`
	Truncated bool                `json:"truncated"`
	Error     string              `json:"error,omitempty"`
}

// handleStream sends every sample as its own frame followed by a summary.
// interval_ms paces the frames for animation.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	p, err := s.params(r)
	q := &query{values: r.URL.Query()}
	interval := time.Duration(q.floatParam("interval_ms", 0) * float64(time.Millisecond))
	if err == nil {
		err = q.err
	}
	if err != nil {
		writeError(w, err)
		return
	}

	log := logging.FromContext(r.Context())
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer ws.Close()

	res, err := s.Runner.Single(r.Context(), p)
	if err != nil {
		if werr := ws.WriteJSON(summaryFrame{Type: "error", Error: err.Error()}); werr != nil {
			log.Debug("websocket error frame not sent", "err", werr)
		}
		return
	}
	tr := res.Trajectory
	for i, pt := range tr.Points {
		if err := ws.WriteJSON(sampleFrame{Type: "sample", Index: i, Time: float64(i) * tr.Step, X: pt.X, Y: pt.Y}); err != nil {
			log.Debug("websocket client gone", "err", err)
			return
		}
		if interval > 0 {
			select {
			case <-r.Context().Done():
				return
			case <-time.After(interval):
			}
		}
	}
	if err := ws.WriteJSON(summaryFrame{Type: "summary", Metrics: &res.Metrics, Truncated: tr.Truncated}); err != nil {
		log.Debug("websocket summary frame not sent", "err", err)
		return
	}
	if err := ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")); err != nil {
		log.Debug("websocket close frame not sent", "err", err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	p, err := s.params(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := s.Runner.Single(r.Context(), p)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	data := struct {
		Params  trajectory.Params
		Metrics trajectory.Metrics
		Samples int
		Points  string
		Width   float64
		Height  float64
	}{
		Params:  p,
		Metrics: res.Metrics,
		Samples: res.Trajectory.Len(),
		Points:  svgPoints(res.Trajectory, res.Metrics),
		Width:   plotWidth,
		Height:  plotHeight,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tpl.Execute(w, data); err != nil {
		logging.FromContext(r.Context()).Error("render index", "err", err)
	}
}

// svgPoints scales samples into the plot box with y pointing down.
func svgPoints(tr trajectory.Trajectory, m trajectory.Metrics) string {
	sx, sy := 0.0, 0.0
	if m.Range > 0 {
		sx = plotWidth / m.Range
	}
	if m.MaxHeight > 0 {
		sy = plotHeight / m.MaxHeight
	}
	var b strings.Builder
	for i, pt := range tr.Points {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.1f,%.1f", pt.X*sx, plotHeight-pt.Y*sy)
	}
	return b.String()
}
