package report

import (
	"context"
	"fmt"
	"net"
	"strconv"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"projectile-sim/internal/config"
	"projectile-sim/internal/logging"
	"projectile-sim/internal/scenario"
)

type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter exports trajectory samples and per-configuration metrics
// to GreptimeDB. Samples go to the configured table, metrics to "<table>_metrics".
type GreptimeDBWriter struct {
	client       greptimeClient
	sampleTable  string
	metricsTable string
	ctx          context.Context
}

// NewGreptimeDBWriter connects to the endpoint in cfg ("host" or "host:port").
func NewGreptimeDBWriter(ctx context.Context, cfg config.Greptime) (*GreptimeDBWriter, error) {
	host, port := cfg.Endpoint, 0
	if h, p, err := net.SplitHostPort(cfg.Endpoint); err == nil {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("greptime endpoint %q: invalid port: %w", cfg.Endpoint, err)
		}
		host, port = h, n
	}
	gcfg := greptime.NewConfig(host).WithDatabase(cfg.Database)
	if port > 0 {
		gcfg = gcfg.WithPort(port)
	}
	client, err := greptime.NewClient(gcfg)
	if err != nil {
		return nil, fmt.Errorf("greptime client: %w", err)
	}
	return newGreptimeDBWriter(ctx, client, cfg.Table), nil
}

func newGreptimeDBWriter(ctx context.Context, client greptimeClient, name string) *GreptimeDBWriter {
	if name == "" {
		name = "projectile_samples"
	}
	return &GreptimeDBWriter{client: client, sampleTable: name, metricsTable: name + "_metrics", ctx: ctx}
}

// Write inserts one result.
func (w *GreptimeDBWriter) Write(res scenario.Result) error {
	return w.WriteBatch([]scenario.Result{res})
}

// WriteBatch inserts the samples and metrics of several results in one request.
func (w *GreptimeDBWriter) WriteBatch(results []scenario.Result) error {
	var samples []SampleRow
	var metrics []MetricRow
	for _, r := range results {
		samples = append(samples, Samples(r)...)
		metrics = append(metrics, Metrics(r)...)
	}

	var tables []*table.Table
	if len(samples) > 0 {
		tbl, err := w.samplesTable(samples)
		if err != nil {
			return err
		}
		tables = append(tables, tbl)
	}
	if len(metrics) > 0 {
		tbl, err := w.metricTable(metrics)
		if err != nil {
			return err
		}
		tables = append(tables, tbl)
	}
	if len(tables) == 0 {
		return nil
	}

	log := logging.FromContext(w.ctx)
	if _, err := w.client.Write(w.ctx, tables...); err != nil {
		log.Error("greptime write failed", "err", err)
		return err
	}
	log.Debug("greptime rows written", "samples", len(samples), "metrics", len(metrics))
	return nil
}

func (w *GreptimeDBWriter) samplesTable(rows []SampleRow) (*table.Table, error) {
	tbl, err := table.New(w.sampleTable)
	if err != nil {
		return nil, err
	}
	cols := []error{
		tbl.AddTagColumn("run_id", types.STRING),
		tbl.AddTagColumn("mode", types.STRING),
		tbl.AddFieldColumn("scenario", types.STRING),
		tbl.AddFieldColumn("sample", types.INT64),
		tbl.AddFieldColumn("t", types.FLOAT64),
		tbl.AddFieldColumn("x", types.FLOAT64),
		tbl.AddFieldColumn("y", types.FLOAT64),
		tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND),
	}
	for _, err := range cols {
		if err != nil {
			return nil, err
		}
	}
	for _, r := range rows {
		if err := tbl.AddRow(r.RunID, string(r.Mode), r.Scenario, int64(r.Index), r.Time, r.X, r.Y, r.Timestamp); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

func (w *GreptimeDBWriter) metricTable(rows []MetricRow) (*table.Table, error) {
	tbl, err := table.New(w.metricsTable)
	if err != nil {
		return nil, err
	}
	cols := []error{
		tbl.AddTagColumn("result_id", types.STRING),
		tbl.AddTagColumn("label", types.STRING),
		tbl.AddFieldColumn("scenario", types.STRING),
		tbl.AddFieldColumn("kind", types.STRING),
		tbl.AddFieldColumn("mode", types.STRING),
		tbl.AddFieldColumn("speed", types.FLOAT64),
		tbl.AddFieldColumn("angle_deg", types.FLOAT64),
		tbl.AddFieldColumn("gravity", types.FLOAT64),
		tbl.AddFieldColumn("range", types.FLOAT64),
		tbl.AddFieldColumn("max_height", types.FLOAT64),
		tbl.AddFieldColumn("flight_time", types.FLOAT64),
		tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND),
	}
	for _, err := range cols {
		if err != nil {
			return nil, err
		}
	}
	for _, r := range rows {
		if err := tbl.AddRow(r.ResultID, r.Label, r.Scenario, string(r.Kind), string(r.Mode),
			r.Speed, r.AngleDeg, r.Gravity, r.Range, r.MaxHeight, r.FlightTime, r.Timestamp); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}
