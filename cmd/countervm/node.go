// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/neilotoole/errgroup"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/config"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/rpc"
	"github.com/ava-labs/countervm/server"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/trace"
	"github.com/ava-labs/countervm/vm"
)

const (
	logsDir         = "logs"
	metricsBase     = "metrics"
	metricsEndpoint = ""

	// The server and the shutdown watcher must run at the same time.
	lifecycleWorkers = 2
)

// run serves the node until [ctx] is canceled or the HTTP server fails.
func run(ctx context.Context, cfg *config.Config) error {
	logDir := cfg.LogDir
	if len(logDir) == 0 {
		logDir = filepath.Join(cfg.DataDir, logsDir)
	}
	if err := os.MkdirAll(logDir, perms.ReadWriteExecute); err != nil {
		return err
	}
	log := newLogger(cfg, logDir)
	defer log.Stop()

	log.Info("starting node",
		zap.String("version", consts.Version.String()),
		zap.Stringer("chainID", cfg.GetChainID()),
		zap.String("dataDir", cfg.DataDir),
	)

	registry := prometheus.NewRegistry()
	db, err := storage.New(cfg.Pebble, cfg.DataDir, storage.StateDB, registry)
	if err != nil {
		return err
	}
	tracer, err := trace.New(cfg.GetTraceConfig())
	if err != nil {
		_ = db.Close()
		return err
	}
	defer func() {
		if err := tracer.Close(); err != nil {
			log.Warn("failed to close tracer", zap.Error(err))
		}
	}()

	node, err := vm.New(
		log,
		tracer,
		registry,
		db,
		vm.NewRules(cfg.GetChainID(), cfg.ValidityWindow, cfg.BaseComputeUnits),
	)
	if err != nil {
		_ = db.Close()
		return err
	}

	listener, err := net.Listen("tcp", cfg.GetHTTPAddress())
	if err != nil {
		_ = node.Shutdown(ctx)
		return err
	}
	srv := server.New(
		cfg.BasePath,
		log,
		listener,
		cfg.HTTP,
		cfg.AllowedOrigins,
		cfg.AllowedHosts,
		cfg.ShutdownTimeout,
	)
	if err := rpc.Register(srv, node, cfg.WebSocket); err != nil {
		_ = node.Shutdown(ctx)
		return err
	}
	if err := srv.AddRoute(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), metricsBase, metricsEndpoint); err != nil {
		_ = node.Shutdown(ctx)
		return err
	}

	g, gctx := errgroup.WithContextN(ctx, lifecycleWorkers, lifecycleWorkers)
	g.Go(func() error {
		if err := srv.Dispatch(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		return srv.Shutdown()
	})
	err = g.Wait()
	if shutdownErr := node.Shutdown(context.Background()); shutdownErr != nil {
		log.Error("failed to shut down vm", zap.Error(shutdownErr))
	}
	return err
}
