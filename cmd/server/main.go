// Saporium - Culinary Entity Suggestion Service
// Copyright 2026 Marc Aubert (maubert)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maubert/saporium

// Command server runs the Saporium suggestion service: the HTTP API in
// front of the static index, the external knowledge-base and encyclopedia
// sources behind their resilience wrappers, and the Prometheus metrics
// endpoint.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/maubert/saporium/internal/api"
	"github.com/maubert/saporium/internal/breaker"
	"github.com/maubert/saporium/internal/cache"
	"github.com/maubert/saporium/internal/config"
	"github.com/maubert/saporium/internal/logging"
	"github.com/maubert/saporium/internal/lookup"
	"github.com/maubert/saporium/internal/quota"
	"github.com/maubert/saporium/internal/suggest"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Bool("knowledge_enabled", cfg.Knowledge.Enabled).
		Bool("encyclopedia_enabled", cfg.Encyclopedia.Enabled).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Saporium")

	// Shared result cache. One instance serves every external source;
	// entries are keyed per service.
	resultCache := cache.New(cfg.Suggest.CacheTTL, cfg.Suggest.CacheSweepInterval)
	defer resultCache.Stop()

	// Quota accounting for paid/throttled upstreams
	var recorder quota.Recorder = quota.NoopRecorder{}
	if cfg.Quota.Enabled {
		recorder = quota.NewHTTPRecorder(cfg.Quota.URL, cfg.Quota.Timeout)
		logging.Info().Str("url", cfg.Quota.URL).Msg("Quota accounting enabled")
	}

	var sources []suggest.Lookuper
	var breakers []*breaker.Breaker

	if cfg.Knowledge.Enabled {
		kb := breaker.New(lookup.ServiceKnowledge, cfg.Suggest.BreakerMaxFailures, cfg.Suggest.BreakerWindow)
		breakers = append(breakers, kb)
		sources = append(sources, lookup.NewResilientClient(
			lookup.NewKnowledgeClient(cfg.Knowledge.URL, cfg.Knowledge.UserAgent, cfg.Knowledge.Timeout),
			lookup.ResilientOptions{
				Cache:     resultCache,
				Breaker:   kb,
				Quota:     recorder,
				RateLimit: cfg.Knowledge.RateLimit,
				RateBurst: cfg.Knowledge.RateBurst,
				Timeout:   cfg.Knowledge.Timeout,
			},
		))
		logging.Info().Str("url", cfg.Knowledge.URL).Msg("Knowledge base source enabled")
	}

	if cfg.Encyclopedia.Enabled {
		eb := breaker.New(lookup.ServiceEncyclopedia, cfg.Suggest.BreakerMaxFailures, cfg.Suggest.BreakerWindow)
		breakers = append(breakers, eb)
		sources = append(sources, lookup.NewResilientClient(
			lookup.NewEncyclopediaClient(cfg.Encyclopedia.URL, lookup.EncyclopediaOptions{
				UserAgent:   cfg.Encyclopedia.UserAgent,
				Timeout:     cfg.Encyclopedia.Timeout,
				SearchLimit: cfg.Encyclopedia.SearchLimit,
				Suffixes:    cfg.Suggest.DemonymSuffixes,
				VerifyMax:   cfg.Suggest.VerifyMax,
			}),
			lookup.ResilientOptions{
				Cache:     resultCache,
				Breaker:   eb,
				Quota:     recorder,
				RateLimit: cfg.Encyclopedia.RateLimit,
				RateBurst: cfg.Encyclopedia.RateBurst,
				Timeout:   cfg.Encyclopedia.Timeout,
			},
		))
		logging.Info().Str("url", cfg.Encyclopedia.URL).Msg("Encyclopedia source enabled")
	}

	static := suggest.NewStaticIndex(suggest.DefaultStaticData(), cfg.Suggest.DemonymSuffixes)
	orchestrator := suggest.NewOrchestrator(static, suggest.Options{
		Sources:         sources,
		ScarceThreshold: cfg.Suggest.ScarceThreshold,
	})

	handler := api.NewHandler(orchestrator, resultCache, breakers, cfg.API.DefaultLimit, cfg.API.MaxLimit)
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins:       cfg.API.CORSOrigins,
		RateLimitReqs:     cfg.API.RateLimitReqs,
		RateLimitWindow:   cfg.API.RateLimitWindow,
		RateLimitDisabled: cfg.API.RateLimitDisabled,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}

	logging.Info().Msg("Application stopped gracefully")
}
