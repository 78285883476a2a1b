package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gyaneshwarpardhi/circuitflow/internal/api"
	"github.com/gyaneshwarpardhi/circuitflow/internal/circuit"
	"github.com/gyaneshwarpardhi/circuitflow/internal/config"
	"github.com/gyaneshwarpardhi/circuitflow/internal/engine"
	"github.com/gyaneshwarpardhi/circuitflow/internal/export"
	"github.com/gyaneshwarpardhi/circuitflow/internal/hint"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	cfgPath := flag.String("config", "configs/circuit.yaml", "Path to circuit YAML definition")
	dotPath := flag.String("dot", "", "Write the circuit in DOT format to this path at startup")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// ── Load config ──────────────────────────────────────────────────────────
	loader, err := config.NewLoader(*cfgPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	cfg := loader.Config()
	if err := config.Validate(cfg); err != nil {
		slog.Error("config validation failed", "err", err)
		os.Exit(1)
	}

	// ── Hint registry ─────────────────────────────────────────────────────────
	hints := hint.NewRegistry()
	hint.RegisterBuiltins(hints)

	// ── Compile initial circuit ───────────────────────────────────────────────
	bp, err := circuit.Compile(&cfg.Circuit, hints)
	if err != nil {
		slog.Error("failed to compile circuit", "err", err)
		os.Exit(1)
	}
	slog.Info("circuit compiled", "nodes", bp.NodeCount(), "constraints", bp.ConstraintCount())

	if *dotPath != "" {
		inst := bp.Instantiate()
		if err := export.WriteDOTFile(*dotPath, inst.Graph(), inst.Names()); err != nil {
			slog.Error("failed to write DOT file", "path", *dotPath, "err", err)
			os.Exit(1)
		}
		slog.Info("circuit exported", "path", *dotPath)
	}

	// ── Engine ────────────────────────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng := engine.New(ctx, bp, cfg.Engine)

	// ── Hot-reload watcher ────────────────────────────────────────────────────
	loader.OnChange(func(newCfg *config.Config) {
		if err := config.Validate(newCfg); err != nil {
			slog.Warn("hot-reload skipped: config invalid", "err", err)
			return
		}
		newBP, err := circuit.Compile(&newCfg.Circuit, hints)
		if err != nil {
			slog.Warn("hot-reload skipped: circuit compile failed", "err", err)
			return
		}
		eng.SwapBlueprint(newBP)
		slog.Info("circuit hot-reloaded", "nodes", newBP.NodeCount())
	})
	stopWatch, err := loader.Watch()
	if err != nil {
		slog.Warn("config watcher unavailable (hot-reload disabled)", "err", err)
	} else {
		defer stopWatch()
	}

	// ── HTTP server ───────────────────────────────────────────────────────────
	handler := api.New(eng, loader, hints)
	srv := &http.Server{
		Addr:         *addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down…")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	_ = srv.Shutdown(shutCtx)
	cancel() // stop worker pool
	eng.Shutdown()
	slog.Info("goodbye")
}
