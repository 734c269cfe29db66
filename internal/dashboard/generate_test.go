package dashboard

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderMissingEnv(t *testing.T) {
	t.Setenv("PROMETHEUS_DATASOURCE_UID", "")
	t.Setenv("GREPTIMEDB_DATASOURCE_UID", "")
	if err := Render(t.TempDir()); err == nil {
		t.Fatalf("expected error for missing env vars")
	}
}

func TestRenderSuccess(t *testing.T) {
	t.Setenv("PROMETHEUS_DATASOURCE_UID", "prom-uid")
	t.Setenv("GREPTIMEDB_DATASOURCE_UID", "greptime-uid")

	dir := t.TempDir()
	if err := Render(dir); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for file, uid := range map[string]string{
		"grafana-projectile.json": "prom-uid",
		"grafana-greptime.json":   "greptime-uid",
	} {
		b, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			t.Fatalf("read %s: %v", file, err)
		}
		if !strings.Contains(string(b), uid) {
			t.Fatalf("%s: datasource uid not rendered", file)
		}
		var doc map[string]any
		if err := json.Unmarshal(b, &doc); err != nil {
			t.Fatalf("%s is not valid JSON: %v", file, err)
		}
	}

	b, _ := os.ReadFile(filepath.Join(dir, "grafana-projectile.json"))
	if !strings.Contains(string(b), `"legendFormat": "{{mode}}"`) {
		t.Fatalf("legend placeholder not preserved")
	}
}
