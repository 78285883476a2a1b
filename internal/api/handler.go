package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gyaneshwarpardhi/circuitflow/internal/circuit"
	"github.com/gyaneshwarpardhi/circuitflow/internal/config"
	"github.com/gyaneshwarpardhi/circuitflow/internal/engine"
	"github.com/gyaneshwarpardhi/circuitflow/internal/export"
	"github.com/gyaneshwarpardhi/circuitflow/internal/hint"
	"github.com/gyaneshwarpardhi/circuitflow/internal/metrics"
	"github.com/gyaneshwarpardhi/circuitflow/internal/witness"
)

const maxBatchSize = 100

// Handler holds all HTTP handler dependencies.
type Handler struct {
	eng    *engine.Engine
	loader *config.Loader
	hints  *hint.Registry
	mux    *http.ServeMux
}

// New creates an HTTP handler and registers all routes.
func New(eng *engine.Engine, loader *config.Loader, hints *hint.Registry) http.Handler {
	h := &Handler{eng: eng, loader: loader, hints: hints, mux: http.NewServeMux()}

	h.mux.HandleFunc("POST /v1/assignments", h.evalAssignment)
	h.mux.HandleFunc("POST /v1/assignments/batch", h.evalBatch)
	h.mux.HandleFunc("GET /v1/circuit", h.describeCircuit)
	h.mux.HandleFunc("GET /v1/circuit/dot", h.exportDOT)
	h.mux.HandleFunc("POST /v1/circuit/reload", h.reloadCircuit)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.HandleFunc("GET /readyz", h.readyz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(h.mux)
}

// POST /v1/assignments — synchronous single-assignment evaluation.
func (h *Handler) evalAssignment(w http.ResponseWriter, r *http.Request) {
	var asg witness.Assignment
	if err := json.NewDecoder(r.Body).Decode(&asg); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if asg.ID == "" {
		asg.ID = uuid.New().String()
	}
	asg.ReceivedAt = time.Now()

	res, err := h.eng.EvalSync(r.Context(), &asg)
	if err != nil {
		writeError(w, evalStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /v1/assignments/batch — async batch evaluation (up to 100).
func (h *Handler) evalBatch(w http.ResponseWriter, r *http.Request) {
	var assignments []*witness.Assignment
	if err := json.NewDecoder(r.Body).Decode(&assignments); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if len(assignments) == 0 {
		writeError(w, http.StatusBadRequest, "batch must contain at least one assignment")
		return
	}
	if len(assignments) > maxBatchSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("batch size %d exceeds max %d", len(assignments), maxBatchSize))
		return
	}
	for i, asg := range assignments {
		if asg == nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("batch element %d is null", i))
			return
		}
	}

	now := time.Now()
	jobID := uuid.New().String()
	queued := 0
	for _, asg := range assignments {
		if asg.ID == "" {
			asg.ID = uuid.New().String()
		}
		asg.ReceivedAt = now
		if h.eng.EvalAsync(asg) {
			queued++
		}
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id":   jobID,
		"total":    len(assignments),
		"queued":   queued,
		"rejected": len(assignments) - queued,
	})
}

// nodeView is one graph node in the /v1/circuit listing.
type nodeView struct {
	ID       string   `json:"id"`
	Name     string   `json:"name,omitempty"`
	Kind     string   `json:"kind"`
	Operands []string `json:"operands,omitempty"`
	Label    string   `json:"label"`
}

// GET /v1/circuit — enumerate nodes and constraints of the loaded circuit.
func (h *Handler) describeCircuit(w http.ResponseWriter, r *http.Request) {
	inst := h.eng.Blueprint().Instantiate()
	g := inst.Graph()

	nodes := make([]nodeView, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		nv := nodeView{
			ID:    n.ID().String(),
			Name:  inst.Name(n.ID()),
			Kind:  "input",
			Label: n.Label(),
		}
		if op := n.Op(); op != nil {
			nv.Kind = string(op.Kind)
			for _, operand := range op.Operands {
				nv.Operands = append(nv.Operands, operand.String())
			}
		}
		nodes = append(nodes, nv)
	}

	constraints := make([]map[string]string, 0, len(g.Constraints()))
	for _, c := range g.Constraints() {
		constraints = append(constraints, map[string]string{
			"a": inst.Name(c.A),
			"b": inst.Name(c.B),
		})
	}

	hintNames := h.hints.Names()
	sort.Strings(hintNames)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"version":     h.loader.Config().Version,
		"nodes":       nodes,
		"constraints": constraints,
		"hints":       hintNames,
	})
}

// GET /v1/circuit/dot — DOT rendering of the (unevaluated) circuit.
func (h *Handler) exportDOT(w http.ResponseWriter, r *http.Request) {
	inst := h.eng.Blueprint().Instantiate()
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_ = export.WriteDOT(w, inst.Graph(), inst.Names())
}

// POST /v1/circuit/reload — reload the definition from disk, recompile, swap.
func (h *Handler) reloadCircuit(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.loader.Reload()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := config.Validate(cfg); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	bp, err := circuit.Compile(&cfg.Circuit, h.hints)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.eng.SwapBlueprint(bp)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reloaded":    true,
		"nodes":       bp.NodeCount(),
		"constraints": bp.ConstraintCount(),
	})
}

// GET /healthz — always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /readyz — 503 if evaluation queue >80% full.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	util := h.eng.QueueUtilization()
	metrics.QueueUtilization.Set(util)
	if util > 0.8 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":            "overloaded",
			"queue_utilization": util,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "ready",
		"queue_utilization": util,
	})
}
