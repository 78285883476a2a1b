package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gyaneshwarpardhi/circuitflow/internal/api"
	"github.com/gyaneshwarpardhi/circuitflow/internal/circuit"
	"github.com/gyaneshwarpardhi/circuitflow/internal/config"
	"github.com/gyaneshwarpardhi/circuitflow/internal/engine"
	"github.com/gyaneshwarpardhi/circuitflow/internal/hint"
)

const testCircuitYAML = `
version: v1
circuit:
  inputs: [x]
  constants:
    - name: seven
      value: 7
  gates:
    - {name: s, op: add, a: x, b: seven}
    - {name: r, op: hint, fn: isqrt, args: [s]}
    - {name: check, op: mul, a: r, b: r}
  constraints:
    - {a: check, b: s}
`

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	path := filepath.Join(t.TempDir(), "circuit.yaml")
	if err := os.WriteFile(path, []byte(testCircuitYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	loader, err := config.NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}
	cfg := loader.Config()
	if err := config.Validate(cfg); err != nil {
		t.Fatalf("fixture config invalid: %v", err)
	}

	hints := hint.NewRegistry()
	hint.RegisterBuiltins(hints)
	bp, err := circuit.Compile(&cfg.Circuit, hints)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	eng := engine.New(context.Background(), bp, cfg.Engine)
	t.Cleanup(eng.Shutdown)
	return api.New(eng, loader, hints)
}

func TestEvalAssignment_OK(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("POST", "/v1/assignments", strings.NewReader(`{"inputs":{"x":2}}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body)
	}
	var res engine.EvalResult
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !res.Satisfied {
		t.Errorf("expected satisfied result, got %+v", res)
	}
	if res.Values["check"] != 9 {
		t.Errorf("check = %d, want 9", res.Values["check"])
	}
	if res.AssignmentID == "" {
		t.Error("expected a generated assignment id")
	}
}

func TestEvalBatch_NullElementRejected(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("POST", "/v1/assignments/batch", strings.NewReader(`[{"inputs":{"x":2}}, null]`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body)
	}
	var envelope struct {
		Status int    `json:"status"`
		Error  string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Status != http.StatusBadRequest {
		t.Errorf("envelope status = %d, want 400", envelope.Status)
	}
	if !strings.Contains(envelope.Error, "null") {
		t.Errorf("error = %q, want mention of the null element", envelope.Error)
	}
}

func TestEvalBatch_Accepted(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("POST", "/v1/assignments/batch", strings.NewReader(`[{"inputs":{"x":2}},{"inputs":{"x":9}}]`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202 (body %s)", rec.Code, rec.Body)
	}
	var res struct {
		Total  int `json:"total"`
		Queued int `json:"queued"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Total != 2 || res.Queued != 2 {
		t.Errorf("total/queued = %d/%d, want 2/2", res.Total, res.Queued)
	}
}

func TestDescribeCircuit(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("GET", "/v1/circuit", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body)
	}
	var res struct {
		Nodes []struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
		} `json:"nodes"`
		Hints []string `json:"hints"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Nodes) != 5 {
		t.Errorf("len(nodes) = %d, want 5", len(res.Nodes))
	}
	if len(res.Hints) != 3 {
		t.Errorf("hints = %v, want the three builtins", res.Hints)
	}
}
