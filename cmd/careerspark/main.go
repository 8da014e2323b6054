//
// Copyright (C) 2026 CareerSpark. All rights reserved.
//
// careerspark is licensed under the Apache License Version 2.0.
//
//

// Package main runs the CareerSpark API server: the HTTP surface, the
// Bedrock-backed supervisor orchestrator, session memory and the chat
// helpers, wired together from environment configuration.
//
// Usage:
//
//	go run ./cmd/careerspark
//	go run ./cmd/careerspark -addr :9090
//
// Required environment:
//
//	AGENTCORE_PLANNER_AGENT_ID  supervisor agent ID
//	AGENTCORE_PLANNER_ALIAS_ID  supervisor agent alias ID
//
// Optional environment:
//
//	AWS_REGION         Bedrock region (default us-east-1)
//	PORT               listen port when -addr is not given
//	LOG_LEVEL          debug, info, warn, error (default info)
//	REDIS_URL          enables redis session memory
//	MEMORY_TTL         redis memory expiry, Go duration
//	OPENAI_API_KEY     enables the intro/classification helpers
//	OPENAI_MODEL       overrides the chat model
//	OTEL_TRACES        "1" enables OTLP trace export
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/careerspark/careerspark/agentcore/bedrock"
	"github.com/careerspark/careerspark/chat"
	"github.com/careerspark/careerspark/log"
	"github.com/careerspark/careerspark/memory"
	"github.com/careerspark/careerspark/memory/inmemory"
	memredis "github.com/careerspark/careerspark/memory/redis"
	"github.com/careerspark/careerspark/orchestrator"
	"github.com/careerspark/careerspark/server"
	"github.com/careerspark/careerspark/telemetry/trace"
)

const defaultRegion = "us-east-1"

func main() {
	addr := flag.String("addr", "", "Listen address (overrides PORT)")
	flag.Parse()

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		log.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if os.Getenv("OTEL_TRACES") == "1" {
		shutdown, err := trace.Start(ctx)
		if err != nil {
			log.Warnf("trace export disabled: %v", err)
		} else {
			defer func() {
				if err := shutdown(); err != nil {
					log.Warnf("trace shutdown: %v", err)
				}
			}()
		}
	}

	agentID := os.Getenv("AGENTCORE_PLANNER_AGENT_ID")
	agentAliasID := os.Getenv("AGENTCORE_PLANNER_ALIAS_ID")
	if agentID == "" || agentAliasID == "" {
		log.Fatalf("AGENTCORE_PLANNER_AGENT_ID and AGENTCORE_PLANNER_ALIAS_ID are required")
	}
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = defaultRegion
	}

	invoker, err := bedrock.New(ctx, bedrock.WithRegion(region))
	if err != nil {
		log.Fatalf("create bedrock invoker: %v", err)
	}

	memorySvc := buildMemoryService()
	recorder, err := memory.NewRecorder(memorySvc)
	if err != nil {
		log.Fatalf("create memory recorder: %v", err)
	}
	defer recorder.Close()

	planner := orchestrator.New(invoker, agentID, agentAliasID,
		orchestrator.WithRecorder(recorder))

	serverOpts := []server.Option{
		server.WithMemoryService(memorySvc),
		server.WithAgentInfo(server.AgentInfo{
			PlannerID:      agentID,
			PlannerAliasID: agentAliasID,
			Region:         region,
		}),
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		chatOpts := []chat.Option{chat.WithAPIKey(apiKey)}
		if model := os.Getenv("OPENAI_MODEL"); model != "" {
			chatOpts = append(chatOpts, chat.WithModel(model))
		}
		serverOpts = append(serverOpts,
			server.WithChatService(chat.NewService(chat.NewOpenAICompleter(chatOpts...))))
	} else {
		log.Warnf("OPENAI_API_KEY not set, intro and goal processing run on fallbacks only")
	}

	srv := server.New(planner, serverOpts...)

	listenAddr := *addr
	if listenAddr == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8000"
		}
		listenAddr = ":" + port
	}

	httpSrv := &http.Server{
		Addr:              listenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Warnf("server shutdown: %v", err)
		}
	}()

	log.Infof("CareerSpark API listening on %s (region=%s agent=%s)", listenAddr, region, agentID)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
}

func buildMemoryService() memory.Service {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		log.Infof("session memory: in-memory backend")
		return inmemory.NewService()
	}
	opts := []memredis.Option{memredis.WithURL(url)}
	if ttl := os.Getenv("MEMORY_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			log.Warnf("invalid MEMORY_TTL %q, ignoring: %v", ttl, err)
		} else {
			opts = append(opts, memredis.WithTTL(d))
		}
	}
	svc, err := memredis.NewService(opts...)
	if err != nil {
		log.Warnf("redis memory unavailable, falling back to in-memory: %v", err)
		return inmemory.NewService()
	}
	log.Infof("session memory: redis backend")
	return svc
}
