package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/agusespa/chateval/internal/observability"
	"github.com/agusespa/chateval/internal/server"
	"github.com/agusespa/chateval/internal/store"
)

const shutdownTimeout = 10 * time.Second

func runServe(cmd *cobra.Command, addr string, noStore bool) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	runner := a.newRunner().WithRecorder(observability.NewMetrics(reg))

	var st *store.Store
	if !noStore {
		st, err = store.Open(a.cfg.Storage.Path, a.logger)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	srvCfg := a.cfg.Server
	if addr != "" {
		srvCfg.Addr = addr
	}

	httpSrv := server.New(server.Deps{
		Runner:           runner,
		Store:            st,
		Thresholds:       a.thresholds(),
		OverallThreshold: a.overallThreshold(),
		Gatherer:         reg,
		Logger:           a.logger,
	}).HTTPServer(srvCfg)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", srvCfg.Addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-cmd.Context().Done():
	}

	a.logger.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}
